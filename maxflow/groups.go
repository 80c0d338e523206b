// File: groups.go
// Role: group-level max-flow wrappers: attach a pseudo-source and
// pseudo-sink around the matched node groups and run CalcMaxFlow between
// them, without ever mutating the base network or its view's cached
// working graph.
package maxflow

import (
	"fmt"
	"math"

	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/network"
)

// GroupMode selects how source/sink node groups combine into pseudo-flows.
type GroupMode int

const (
	// Combine attaches one pseudo-source to every matched source node and
	// one pseudo-sink to every matched sink node, computing a single flow.
	Combine GroupMode = iota
	// Pairwise computes one flow per (source-label, sink-label) pair.
	Pairwise
)

// GroupResult is one (src-label, dst-label) flow result; Summary and Graph
// are nil unless requested via WithReturnSummary/WithReturnGraph.
type GroupResult struct {
	SrcLabel  string
	DstLabel  string
	TotalFlow float64
	Summary   *FlowSummary
	Graph     *digraph.Graph
}

const (
	pseudoSrcPrefix  = "__pseudo_src__:"
	pseudoSinkPrefix = "__pseudo_sink__:"
)

// MaxFlow computes group-level max-flow(s) between nodes matching srcPath
// and dstPath (regex or "attr:" selectors, per network.SelectNodeGroupsByPath).
func MaxFlow(view *network.NetworkView, srcPath, dstPath string, mode GroupMode, opts ...Option) ([]GroupResult, error) {
	return groupMaxFlow(view, srcPath, dstPath, mode, opts)
}

// MaxFlowWithSummary is MaxFlow with WithReturnSummary forced on.
func MaxFlowWithSummary(view *network.NetworkView, srcPath, dstPath string, mode GroupMode, opts ...Option) ([]GroupResult, error) {
	return groupMaxFlow(view, srcPath, dstPath, mode, append(append([]Option{}, opts...), WithReturnSummary(true)))
}

// MaxFlowDetailed is MaxFlow with WithReturnSummary and WithReturnGraph
// forced on.
func MaxFlowDetailed(view *network.NetworkView, srcPath, dstPath string, mode GroupMode, opts ...Option) ([]GroupResult, error) {
	forced := append(append([]Option{}, opts...), WithReturnSummary(true), WithReturnGraph(true))
	return groupMaxFlow(view, srcPath, dstPath, mode, forced)
}

func groupMaxFlow(view *network.NetworkView, srcPath, dstPath string, mode GroupMode, opts []Option) ([]GroupResult, error) {
	srcGroups, err := view.SelectNodeGroupsByPath(srcPath)
	if err != nil {
		return nil, fmt.Errorf("maxflow: src group selection: %w", err)
	}
	dstGroups, err := view.SelectNodeGroupsByPath(dstPath)
	if err != nil {
		return nil, fmt.Errorf("maxflow: dst group selection: %w", err)
	}
	if srcGroups.Len() == 0 || dstGroups.Len() == 0 {
		return nil, fmt.Errorf("maxflow: %w: no nodes matched src or dst pattern", ErrInvalidArgument)
	}

	base, err := view.WorkingGraph(false, false)
	if err != nil {
		return nil, err
	}

	switch mode {
	case Combine:
		var srcMembers, dstMembers []string
		for _, label := range srcGroups.Labels() {
			for _, n := range srcGroups.Members(label) {
				srcMembers = append(srcMembers, n.Name)
			}
		}
		for _, label := range dstGroups.Labels() {
			for _, n := range dstGroups.Members(label) {
				dstMembers = append(dstMembers, n.Name)
			}
		}
		r, err := runPseudoFlow(base, srcMembers, dstMembers, opts)
		if err != nil {
			return nil, err
		}
		r.SrcLabel, r.DstLabel = "combine", "combine"
		return []GroupResult{r}, nil

	case Pairwise:
		var results []GroupResult
		for _, sl := range srcGroups.Labels() {
			var srcMembers []string
			for _, n := range srcGroups.Members(sl) {
				srcMembers = append(srcMembers, n.Name)
			}
			for _, dl := range dstGroups.Labels() {
				var dstMembers []string
				for _, n := range dstGroups.Members(dl) {
					dstMembers = append(dstMembers, n.Name)
				}
				r, err := runPseudoFlow(base, srcMembers, dstMembers, opts)
				if err != nil {
					return nil, err
				}
				r.SrcLabel, r.DstLabel = sl, dl
				results = append(results, r)
			}
		}
		return results, nil

	default:
		return nil, fmt.Errorf("maxflow: %w: unsupported group mode %d", ErrInvalidArgument, mode)
	}
}

func runPseudoFlow(base *digraph.Graph, srcMembers, dstMembers []string, opts []Option) (GroupResult, error) {
	g := base.Clone()
	pseudoSrc := pseudoSrcPrefix + fmt.Sprint(len(srcMembers))
	pseudoSink := pseudoSinkPrefix + fmt.Sprint(len(dstMembers))
	for g.HasNode(pseudoSrc) {
		pseudoSrc += "_"
	}
	for g.HasNode(pseudoSink) {
		pseudoSink += "_"
	}
	if err := g.AddNode(pseudoSrc, nil); err != nil {
		return GroupResult{}, err
	}
	if err := g.AddNode(pseudoSink, nil); err != nil {
		return GroupResult{}, err
	}
	for _, m := range srcMembers {
		if _, err := g.AddEdge(pseudoSrc, m, -1, 0, math.Inf(1), nil); err != nil {
			return GroupResult{}, err
		}
	}
	for _, m := range dstMembers {
		if _, err := g.AddEdge(m, pseudoSink, -1, 0, math.Inf(1), nil); err != nil {
			return GroupResult{}, err
		}
	}

	total, summary, flowGraph, err := CalcMaxFlow(g, pseudoSrc, pseudoSink, append(append([]Option{}, opts...), WithCopyGraph(false))...)
	if err != nil {
		return GroupResult{}, err
	}
	return GroupResult{TotalFlow: total, Summary: summary, Graph: flowGraph}, nil
}
