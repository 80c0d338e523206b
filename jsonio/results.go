// File: results.go
// Role: JSON-ready shapes for FlowSummary, CapacityEnvelope, and
// FailurePatternResult, with canonical numeric-key round tripping for
// cost_distribution and frequencies.
package jsonio

import (
	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/maxflow"
	"github.com/networmix/netgraph-go/results"
)

// EdgeTuple is the (source, target, key) triple used to identify an edge
// in min-cut and edge-flow exports.
type EdgeTuple struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Key    int64  `json:"key"`
}

// FlowSummaryDoc is the JSON-ready shape of a maxflow.FlowSummary:
// {total_flow, edge_flow, residual_cap, reachable, min_cut, cost_distribution}.
type FlowSummaryDoc struct {
	TotalFlow        float64            `json:"total_flow"`
	EdgeFlow         []EdgeFlowEntry    `json:"edge_flow"`
	ResidualCap      []EdgeFlowEntry    `json:"residual_cap"`
	Reachable        []string           `json:"reachable"`
	MinCut           []EdgeTuple        `json:"min_cut"`
	CostDistribution map[string]float64 `json:"cost_distribution"`
}

// EdgeFlowEntry pairs an EdgeTuple with its scalar value; used for both
// edge_flow and residual_cap, which share the same (edge -> value) shape.
type EdgeFlowEntry struct {
	Edge  EdgeTuple `json:"edge"`
	Value float64   `json:"value"`
}

// EncodeFlowSummary renders s as the JSON-ready doc. g is the graph s was
// computed over, used to resolve each edge id to its (source, target)
// endpoints since FlowSummary itself only tracks ids.
func EncodeFlowSummary(g *digraph.Graph, s *maxflow.FlowSummary) FlowSummaryDoc {
	edgeTuple := func(id int64) EdgeTuple {
		e, err := g.GetEdgeData(id)
		if err != nil {
			return EdgeTuple{Key: id}
		}
		return EdgeTuple{Source: e.From, Target: e.To, Key: id}
	}

	doc := FlowSummaryDoc{
		TotalFlow:        s.TotalFlow,
		CostDistribution: EncodeFloat64Float64Map(s.CostDistribution),
	}
	for _, id := range g.Edges() {
		if v, ok := s.EdgeFlow[id]; ok {
			doc.EdgeFlow = append(doc.EdgeFlow, EdgeFlowEntry{Edge: edgeTuple(id), Value: v})
		}
		if v, ok := s.EdgeResidual[id]; ok {
			doc.ResidualCap = append(doc.ResidualCap, EdgeFlowEntry{Edge: edgeTuple(id), Value: v})
		}
	}
	for n := range s.ReachableFromSrc {
		doc.Reachable = append(doc.Reachable, n)
	}
	for _, id := range s.MinCutEdges {
		doc.MinCut = append(doc.MinCut, edgeTuple(id))
	}
	return doc
}

// CapacityEnvelopeDoc is the JSON-ready shape of a results.CapacityEnvelope.
type CapacityEnvelopeDoc struct {
	SourcePattern string           `json:"source_pattern"`
	SinkPattern   string           `json:"sink_pattern"`
	Mode          string           `json:"mode"`
	Frequencies   map[string]int64 `json:"frequencies"`
	MinCapacity   float64          `json:"min_capacity"`
	MaxCapacity   float64          `json:"max_capacity"`
	MeanCapacity  float64          `json:"mean_capacity"`
	StdevCapacity float64          `json:"stdev_capacity"`
	TotalSamples  int64            `json:"total_samples"`
}

// EncodeCapacityEnvelope renders e as the JSON-ready doc.
func EncodeCapacityEnvelope(e *results.CapacityEnvelope) CapacityEnvelopeDoc {
	return CapacityEnvelopeDoc{
		SourcePattern: e.SourcePattern,
		SinkPattern:   e.SinkPattern,
		Mode:          e.Mode,
		Frequencies:   EncodeFloat64Int64Map(e.Frequencies),
		MinCapacity:   e.MinCapacity,
		MaxCapacity:   e.MaxCapacity,
		MeanCapacity:  e.MeanCapacity,
		StdevCapacity: e.StdevCapacity,
		TotalSamples:  e.TotalSamples,
	}
}

// DecodeCapacityEnvelope is the inverse of EncodeCapacityEnvelope.
func DecodeCapacityEnvelope(d CapacityEnvelopeDoc) (*results.CapacityEnvelope, error) {
	freq, err := DecodeFloat64Int64Map(d.Frequencies)
	if err != nil {
		return nil, err
	}
	return &results.CapacityEnvelope{
		SourcePattern: d.SourcePattern,
		SinkPattern:   d.SinkPattern,
		Mode:          d.Mode,
		Frequencies:   freq,
		MinCapacity:   d.MinCapacity,
		MaxCapacity:   d.MaxCapacity,
		MeanCapacity:  d.MeanCapacity,
		StdevCapacity: d.StdevCapacity,
		TotalSamples:  d.TotalSamples,
	}, nil
}

// FailurePatternResultDoc is the JSON-ready shape of a
// results.FailurePatternResult.
type FailurePatternResultDoc struct {
	ExcludedNodes  []string           `json:"excluded_nodes"`
	ExcludedLinks  []string           `json:"excluded_links"`
	CapacityMatrix map[string]float64 `json:"capacity_matrix"`
	Count          int                `json:"count"`
	IsBaseline     bool               `json:"is_baseline"`
}

// EncodeFailurePatternResult renders r as the JSON-ready doc.
func EncodeFailurePatternResult(r *results.FailurePatternResult) FailurePatternResultDoc {
	return FailurePatternResultDoc{
		ExcludedNodes:  r.ExcludedNodes,
		ExcludedLinks:  r.ExcludedLinks,
		CapacityMatrix: r.CapacityMatrix,
		Count:          r.Count,
		IsBaseline:     r.IsBaseline,
	}
}

// DecodeFailurePatternResult is the inverse of EncodeFailurePatternResult.
func DecodeFailurePatternResult(d FailurePatternResultDoc) *results.FailurePatternResult {
	return &results.FailurePatternResult{
		ExcludedNodes:  d.ExcludedNodes,
		ExcludedLinks:  d.ExcludedLinks,
		CapacityMatrix: d.CapacityMatrix,
		Count:          d.Count,
		IsBaseline:     d.IsBaseline,
	}
}
