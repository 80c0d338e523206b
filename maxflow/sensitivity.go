// File: sensitivity.go
// Role: derived max-flow operations: SaturatedEdges and RunSensitivity.
package maxflow

import (
	"sort"

	"github.com/networmix/netgraph-go/digraph"
)

// sensitivityEpsilon is the magnitude below which RunSensitivity reports a
// total-flow delta as exactly 0. Probe capacities are clamped at 0, not at
// this value.
const sensitivityEpsilon = 1e-9

// SaturatedEdges runs CalcMaxFlow and returns every edge id with
// capacity-flow <= tolerance.
func SaturatedEdges(g *digraph.Graph, src, dst string, opts ...Option) ([]int64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	summaryOpts := append(append([]Option{}, opts...), WithReturnSummary(true))
	_, summary, _, err := CalcMaxFlow(g, src, dst, summaryOpts...)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(summary.EdgeResidual))
	for id := range summary.EdgeResidual {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []int64
	for _, id := range ids {
		if summary.EdgeResidual[id] <= cfg.tolerance {
			out = append(out, id)
		}
	}
	return out, nil
}

// RunSensitivity adjusts each saturated edge's capacity by change (clamped
// so the result is never negative), recomputes max-flow on a fresh copy of
// g, and returns the resulting total-flow delta per edge id. A delta whose
// magnitude is below sensitivityEpsilon is reported as exactly 0.
func RunSensitivity(g *digraph.Graph, src, dst string, change float64, opts ...Option) (map[int64]float64, error) {
	baseline, _, _, err := CalcMaxFlow(g, src, dst, opts...)
	if err != nil {
		return nil, err
	}

	saturated, err := SaturatedEdges(g, src, dst, opts...)
	if err != nil {
		return nil, err
	}

	out := map[int64]float64{}
	for _, id := range saturated {
		probe := g.Clone()
		e, err := probe.GetEdgeData(id)
		if err != nil {
			continue
		}
		newCap := e.Capacity + change
		if newCap < 0 {
			newCap = 0
		}
		e.Capacity = newCap

		probeOpts := append(append([]Option{}, opts...), WithCopyGraph(false))
		probeTotal, _, _, err := CalcMaxFlow(probe, src, dst, probeOpts...)
		if err != nil {
			return nil, err
		}

		delta := probeTotal - baseline
		if delta < sensitivityEpsilon && delta > -sensitivityEpsilon {
			delta = 0
		}
		out[id] = delta
	}
	return out, nil
}
