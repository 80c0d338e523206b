// File: ksp.go
// Role: Yen-like k-shortest-paths by iterated exclusion.
// Each subsequent candidate reruns SPF with every edge of every previously
// yielded path excluded, rather than Yen's classical spur-node bookkeeping
// over a candidate heap. Yielded paths are therefore edge-disjoint; a path
// that shares any edge with an earlier one is never yielded.
package spf

import (
	"fmt"
	"math"

	"github.com/networmix/netgraph-go/digraph"
)

// KSPResult pairs one yielded path's SPF costs/predecessors, in
// non-decreasing total cost order; the concrete path is recovered via
// ResolveToPaths(result, src, dst, ...).
type KSPResult struct {
	Costs map[string]float64
	Pred  map[string]map[string][]int64
}

// KSPOption configures KSP.
type KSPOption func(*kspConfig)

type kspConfig struct {
	maxK               int
	maxPathCost        float64
	hasMaxPathCost     bool
	maxPathCostFactor  float64
	hasCostFactor      bool
	selector           EdgeSelector
}

func defaultKSPConfig() *kspConfig {
	return &kspConfig{maxK: 1, maxPathCost: math.Inf(1), selector: AllMinCost{}}
}

// WithMaxK bounds the number of yielded paths.
func WithMaxK(k int) KSPOption { return func(c *kspConfig) { c.maxK = k } }

// WithMaxPathCost sets an absolute cost cap on yielded paths.
func WithMaxPathCost(cost float64) KSPOption {
	return func(c *kspConfig) { c.maxPathCost = cost; c.hasMaxPathCost = true }
}

// WithMaxPathCostFactor caps yielded path cost at factor * (best path cost).
func WithMaxPathCostFactor(factor float64) KSPOption {
	return func(c *kspConfig) { c.maxPathCostFactor = factor; c.hasCostFactor = true }
}

// WithKSPEdgeSelect overrides the default AllMinCost selection policy used
// by each internal SPF call.
func WithKSPEdgeSelect(sel EdgeSelector) KSPOption {
	return func(c *kspConfig) { c.selector = sel }
}

// KSP yields up to maxK src->dst paths in non-decreasing total cost,
// excluding at each step all edges used by previously yielded paths, so
// only edge-disjoint paths are returned.
func KSP(g *digraph.Graph, src, dst string, opts ...KSPOption) ([]KSPResult, error) {
	cfg := defaultKSPConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var results []KSPResult
	var bestCost float64
	haveBest := false
	seen := map[string]struct{}{}
	excludedEdges := map[int64]struct{}{}

	for len(results) < cfg.maxK {
		runOpts := []Option{
			WithEdgeSelect(cfg.selector),
			WithDst(dst),
		}
		if len(excludedEdges) > 0 {
			ids := make([]int64, 0, len(excludedEdges))
			for id := range excludedEdges {
				ids = append(ids, id)
			}
			runOpts = append(runOpts, WithExcludedEdges(ids...))
		}

		res, err := SPF(g, src, runOpts...)
		if err != nil {
			return results, fmt.Errorf("spf: ksp: %w", err)
		}
		cost, reachable := res.Costs[dst]
		if !reachable {
			break
		}
		if cfg.hasMaxPathCost && cost > cfg.maxPathCost {
			break
		}
		if haveBest && cfg.hasCostFactor && cost > bestCost*cfg.maxPathCostFactor {
			break
		}
		if !haveBest {
			bestCost = cost
			haveBest = true
		}

		bundle, err := ResolveToPaths(res, src, dst, false)
		if err != nil {
			return results, err
		}

		progressed := false
		for _, p := range bundle.Paths {
			key := pathKey(p.Edges)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			results = append(results, KSPResult{Costs: res.Costs, Pred: res.Pred})
			for _, id := range p.Edges {
				excludedEdges[id] = struct{}{}
			}
			progressed = true
			if len(results) >= cfg.maxK {
				break
			}
			break // one new candidate per iteration: picks the cheapest new candidate
		}
		if !progressed {
			break
		}
	}

	return results, nil
}

func pathKey(edges []int64) string {
	s := make([]byte, 0, len(edges)*8)
	for _, id := range edges {
		s = append(s, byte(id), byte(id>>8), byte(id>>16), byte(id>>24),
			byte(id>>32), byte(id>>40), byte(id>>48), byte(id>>56))
	}
	return string(s)
}
