// File: selectors.go
// Role: the five edge-selection policies, realized as a closed
// EdgeSelector interface plus a UserDefined wrapper rather than a closure
// map, so the two mandatory fast paths can be special-cased by
// type-switch in the SPF inner loop (see spf.go).
package spf

import (
	"math"
	"sort"

	"github.com/networmix/netgraph-go/digraph"
)

// EdgeSelector chooses, among the parallel edges u->v, which to use for
// relaxation and at what aggregate cost. Returning math.Inf(1) or an empty
// edge slice means "no usable edge" and the neighbor is skipped.
type EdgeSelector interface {
	Select(g *digraph.Graph, u, v string, edgeIDs []int64,
		excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (cost float64, edges []int64)
}

func filterExcluded(g *digraph.Graph, edgeIDs []int64, excludedEdges map[int64]struct{}) []int64 {
	if len(excludedEdges) == 0 {
		return edgeIDs
	}
	out := make([]int64, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		if _, excluded := excludedEdges[id]; !excluded {
			out = append(out, id)
		}
	}
	return out
}

// AllMinCost selects every edge u->v whose cost equals the minimum among
// them; the selected cost is that minimum.
type AllMinCost struct{}

func (AllMinCost) Select(g *digraph.Graph, u, v string, edgeIDs []int64,
	excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (float64, []int64) {
	if _, excluded := excludedNodes[v]; excluded {
		return math.Inf(1), nil
	}
	edgeIDs = filterExcluded(g, edgeIDs, excludedEdges)
	return allMinCost(g, edgeIDs, false)
}

// AllMinCostWithCapRemaining is AllMinCost but ignores edges with
// capacity-flow <= 0.
type AllMinCostWithCapRemaining struct{}

func (AllMinCostWithCapRemaining) Select(g *digraph.Graph, u, v string, edgeIDs []int64,
	excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (float64, []int64) {
	if _, excluded := excludedNodes[v]; excluded {
		return math.Inf(1), nil
	}
	edgeIDs = filterExcluded(g, edgeIDs, excludedEdges)
	return allMinCost(g, edgeIDs, true)
}

func allMinCost(g *digraph.Graph, edgeIDs []int64, capAware bool) (float64, []int64) {
	best := math.Inf(1)
	type cand struct {
		id   int64
		cost float64
	}
	var cands []cand
	for _, id := range edgeIDs {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		if capAware && e.Capacity-e.Flow <= 0 {
			continue
		}
		cands = append(cands, cand{id, e.Cost})
		if e.Cost < best {
			best = e.Cost
		}
	}
	if math.IsInf(best, 1) {
		return math.Inf(1), nil
	}
	out := make([]int64, 0, len(cands))
	for _, c := range cands {
		if c.cost == best {
			out = append(out, c.id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return best, out
}

// SingleMinCost selects one lowest-cost edge; ties break by ascending edge
// id.
type SingleMinCost struct{}

func (SingleMinCost) Select(g *digraph.Graph, u, v string, edgeIDs []int64,
	excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (float64, []int64) {
	if _, excluded := excludedNodes[v]; excluded {
		return math.Inf(1), nil
	}
	edgeIDs = filterExcluded(g, edgeIDs, excludedEdges)
	return singleMinCost(g, edgeIDs, false)
}

// SingleMinCostWithCapRemaining is SingleMinCost but residual-aware.
type SingleMinCostWithCapRemaining struct{}

func (SingleMinCostWithCapRemaining) Select(g *digraph.Graph, u, v string, edgeIDs []int64,
	excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (float64, []int64) {
	if _, excluded := excludedNodes[v]; excluded {
		return math.Inf(1), nil
	}
	edgeIDs = filterExcluded(g, edgeIDs, excludedEdges)
	return singleMinCost(g, edgeIDs, true)
}

func singleMinCost(g *digraph.Graph, edgeIDs []int64, capAware bool) (float64, []int64) {
	bestID := int64(-1)
	bestCost := math.Inf(1)
	for _, id := range edgeIDs {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		if capAware && e.Capacity-e.Flow <= 0 {
			continue
		}
		if e.Cost < bestCost || (e.Cost == bestCost && id < bestID) {
			bestCost = e.Cost
			bestID = id
		}
	}
	if bestID < 0 {
		return math.Inf(1), nil
	}
	return bestCost, []int64{bestID}
}

// UserDefinedFn is the caller-supplied selection closure. Returning an
// infinite cost means "no edge".
type UserDefinedFn func(g *digraph.Graph, u, v string, edgeIDs []int64,
	excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (cost float64, edges []int64)

// UserDefined wraps a caller-supplied selection function so it satisfies
// EdgeSelector.
type UserDefined struct{ Fn UserDefinedFn }

func (u UserDefined) Select(g *digraph.Graph, from, to string, edgeIDs []int64,
	excludedEdges map[int64]struct{}, excludedNodes map[string]struct{}) (float64, []int64) {
	return u.Fn(g, from, to, edgeIDs, excludedEdges, excludedNodes)
}
