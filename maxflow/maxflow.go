// File: maxflow.go
// Role: calc_max_flow — iterated SPF + blocking-flow augmentation to
// saturation, with optional FlowSummary and min-cut.
//
// Follows the same outer-loop shape as a classic Dinic implementation
// (repeat level-graph-plus-blocking-flow until no augmenting structure
// remains), adapted here to one SPF-plus-capacity augmentation per
// iteration instead of one Dinic phase, since cost tracking
// (cost_distribution) must interleave with SPF between augmentations.
package maxflow

import (
	"fmt"

	"github.com/networmix/netgraph-go/capacity"
	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/spf"
)

// CalcMaxFlow computes the maximum flow from src to dst on g, returning
// the total flow, an optional FlowSummary, and (if requested) the mutated
// flow graph it operated on.
func CalcMaxFlow(g *digraph.Graph, src, dst string, opts ...Option) (float64, *FlowSummary, *digraph.Graph, error) {
	if src == dst {
		return 0, nil, nil, fmt.Errorf("maxflow: %w: src and dst must differ", ErrInvalidArgument)
	}
	if !g.HasNode(src) {
		return 0, nil, nil, fmt.Errorf("maxflow: %w: unknown src %q", ErrInvalidArgument, src)
	}
	if !g.HasNode(dst) {
		return 0, nil, nil, fmt.Errorf("maxflow: %w: unknown dst %q", ErrInvalidArgument, dst)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	work := g
	if cfg.copyGraph {
		work = g.Clone()
	}
	work.EnsureFlowState(cfg.resetFlowGraph)

	costDistribution := map[float64]float64{}
	var total float64

	for {
		res, err := spf.SPF(work, src, spf.WithEdgeSelect(spf.AllMinCostWithCapRemaining{}), spf.WithMultipath(!cfg.shortestPath), spf.WithDst(dst))
		if err != nil {
			return 0, nil, nil, err
		}
		cost, reachable := res.Costs[dst]
		if !reachable {
			break
		}

		f, flowDict, err := capacity.CalcGraphCapacity(work, src, dst, capacity.Pred(res.Pred), cfg.placement)
		if err != nil {
			return 0, nil, nil, err
		}
		if f <= cfg.tolerance {
			break
		}

		applyAugmentation(work, res.Pred, flowDict, f, cfg.placement)

		total += f
		costDistribution[cost] += f

		if cfg.shortestPath {
			break
		}
	}

	var summary *FlowSummary
	if cfg.returnSummary {
		summary = buildSummary(work, src, total, costDistribution, cfg.tolerance)
	}

	var outGraph *digraph.Graph
	if cfg.returnGraph {
		outGraph = work
	}

	return total, summary, outGraph, nil
}

// applyAugmentation distributes f*frac across each bundle's parallel
// edges (capacity-weighted for PROPORTIONAL, equal for EQUAL_BALANCED) and
// records the addition on edge.Flow and the upstream node's Flow
// bookkeeping field.
func applyAugmentation(g *digraph.Graph, pred map[string]map[string][]int64, flowDict map[string]map[string]float64, f float64, placement capacity.Placement) {
	for v, preds := range pred {
		for u, edgeIDs := range preds {
			frac := flowDict[u][v]
			if frac <= 0 {
				continue
			}
			amt := f * frac
			shares := splitAmongEdges(g, edgeIDs, amt, placement)
			for id, share := range shares {
				e, err := g.GetEdgeData(id)
				if err != nil {
					continue
				}
				e.Flow += share
			}
			if nd, err := g.GetNodeData(u); err == nil {
				nd.Flow += amt
			}
		}
	}
}

func splitAmongEdges(g *digraph.Graph, edgeIDs []int64, amt float64, placement capacity.Placement) map[int64]float64 {
	out := map[int64]float64{}
	if len(edgeIDs) == 0 {
		return out
	}
	if placement == capacity.EqualBalanced {
		share := amt / float64(len(edgeIDs))
		for _, id := range edgeIDs {
			out[id] = share
		}
		return out
	}

	var totalCap float64
	for _, id := range edgeIDs {
		if e, err := g.GetEdgeData(id); err == nil {
			totalCap += e.Capacity
		}
	}
	if totalCap <= 0 {
		share := amt / float64(len(edgeIDs))
		for _, id := range edgeIDs {
			out[id] = share
		}
		return out
	}
	for _, id := range edgeIDs {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		out[id] = amt * (e.Capacity / totalCap)
	}
	return out
}

func buildSummary(g *digraph.Graph, src string, total float64, costDistribution map[float64]float64, tolerance float64) *FlowSummary {
	edgeFlow := map[int64]float64{}
	edgeResidual := map[int64]float64{}
	for _, id := range g.Edges() {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		edgeFlow[id] = e.Flow
		edgeResidual[id] = e.Capacity - e.Flow
	}

	reachable := reachableFromSrc(g, src, tolerance)

	var minCut []int64
	for _, id := range g.Edges() {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		_, uReachable := reachable[e.From]
		_, vReachable := reachable[e.To]
		if uReachable && !vReachable && (e.Capacity-e.Flow) <= tolerance {
			minCut = append(minCut, id)
		}
	}

	return &FlowSummary{
		TotalFlow:        total,
		EdgeFlow:         edgeFlow,
		EdgeResidual:     edgeResidual,
		ReachableFromSrc: reachable,
		MinCutEdges:      minCut,
		CostDistribution: costDistribution,
	}
}

// reachableFromSrc walks the residual network from src, following forward
// arcs with capacity-flow>tolerance and reverse arcs with flow>tolerance.
func reachableFromSrc(g *digraph.Graph, src string, tolerance float64) map[string]struct{} {
	visited := map[string]struct{}{src: {}}
	queue := []string{src}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range g.Successors(u) {
			if _, seen := visited[v]; seen {
				continue
			}
			if hasForwardResidual(g, u, v, tolerance) {
				visited[v] = struct{}{}
				queue = append(queue, v)
			}
		}
		for _, v := range g.Predecessors(u) {
			if _, seen := visited[v]; seen {
				continue
			}
			if hasReverseResidual(g, v, u, tolerance) {
				visited[v] = struct{}{}
				queue = append(queue, v)
			}
		}
	}
	return visited
}

func hasForwardResidual(g *digraph.Graph, u, v string, tolerance float64) bool {
	for _, id := range g.EdgesBetween(u, v) {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		if e.Capacity-e.Flow > tolerance {
			return true
		}
	}
	return false
}

func hasReverseResidual(g *digraph.Graph, v, u string, tolerance float64) bool {
	for _, id := range g.EdgesBetween(v, u) {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		if e.Flow > tolerance {
			return true
		}
	}
	return false
}
