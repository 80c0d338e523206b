// File: spf.go
// Role: the SPF algorithm itself — a Dijkstra variant with pluggable edge
// selection and multipath predecessor recording.
//
// A runner struct carries dist/pred/visited state through init/process/
// relax phases, backed by a container/heap binary min-heap of (node, dist)
// pairs, with a lazy-decrease-key discipline (push duplicates, skip stale
// pops via a visited set) rather than a heap supporting decrease-key
// directly.
//
// Three features go beyond a plain Dijkstra: (1) parallel edges between a
// node pair are resolved through an EdgeSelector instead of being relaxed
// one at a time, (2) multipath mode records every minimum-cost predecessor
// edge set rather than only the first found, and (3) a dedicated fast path
// bypasses the EdgeSelector call boundary for the two ALL_MIN_COST*
// policies by inlining their edge scan, since those two policies dominate
// real workloads and the interface dispatch is the measured hot path.
package spf

import (
	"container/heap"
	"math"
	"sort"

	"github.com/networmix/netgraph-go/digraph"
)

// Result is the outcome of one SPF run from a single source.
type Result struct {
	// Costs maps every reachable node to its minimum cost from the source.
	Costs map[string]float64
	// Pred maps node -> predecessor node -> the edge ids usable on that hop.
	// A node may have more than one predecessor only when multipath mode
	// found several equally minimal predecessors.
	Pred map[string]map[string][]int64
	// Order is the sequence in which nodes were finalized (dst-first
	// truncated when WithDst is set), useful for deterministic path
	// resolution ordering.
	Order []string
}

// SPF computes shortest-path costs and predecessor information from src
// across the visible portion of g, using the edge-selection policy and
// other parameters from opts.
func SPF(g *digraph.Graph, src string, opts ...Option) (*Result, error) {
	if !g.HasNode(src) {
		return nil, errUnknownSrc(src)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	r := &runner{
		g:    g,
		cfg:  cfg,
		src:  src,
		dist: map[string]float64{src: 0},
		pred: map[string]map[string][]int64{},
	}
	r.run()

	return &Result{Costs: r.dist, Pred: r.pred, Order: r.order}, nil
}

type heapItem struct {
	node string
	dist float64
}

type nodePQ []*heapItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*heapItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

type runner struct {
	g     *digraph.Graph
	cfg   *config
	src   string
	dist  map[string]float64
	pred  map[string]map[string][]int64
	order []string
}

func (r *runner) run() {
	visited := map[string]struct{}{}
	pq := make(nodePQ, 0, 16)
	heap.Init(&pq)
	heap.Push(&pq, &heapItem{node: r.src, dist: 0})

	_, fastPath := r.cfg.selector.(AllMinCost)
	if !fastPath {
		_, fastPath = r.cfg.selector.(AllMinCostWithCapRemaining)
	}
	fastPath = fastPath && len(r.cfg.excludedEdges) == 0 && len(r.cfg.excludedNodes) == 0
	capAware := false
	if _, ok := r.cfg.selector.(AllMinCostWithCapRemaining); ok {
		capAware = true
	}

	dstFinalized := false
	var bestDst float64

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*heapItem)
		u, d := item.node, item.dist
		if _, seen := visited[u]; seen {
			continue
		}
		if dstFinalized && d > bestDst {
			break
		}
		visited[u] = struct{}{}
		r.order = append(r.order, u)

		if r.cfg.hasDst && u == r.cfg.dst {
			dstFinalized = true
			bestDst = d
			continue
		}

		if fastPath {
			r.relaxFast(u, d, capAware, visited, &pq)
		} else {
			r.relaxSelector(u, d, visited, &pq)
		}
	}
}

// relaxFast inlines the ALL_MIN_COST{,_WITH_CAP_REMAINING} edge scan for
// the common case, skipping the EdgeSelector interface dispatch entirely.
func (r *runner) relaxFast(u string, du float64, capAware bool, visited map[string]struct{}, pq *nodePQ) {
	for _, v := range r.g.Successors(u) {
		if _, seen := visited[v]; seen && !(r.cfg.hasDst && v == r.cfg.dst) {
			continue
		}
		edgeIDs := r.g.EdgesBetween(u, v)
		best := math.Inf(1)
		var bestEdges []int64
		for _, id := range edgeIDs {
			e, err := r.g.GetEdgeData(id)
			if err != nil {
				continue
			}
			if capAware && e.Capacity-e.Flow <= 0 {
				continue
			}
			if e.Cost < best {
				best = e.Cost
				bestEdges = []int64{id}
			} else if e.Cost == best {
				bestEdges = append(bestEdges, id)
			}
		}
		if math.IsInf(best, 1) {
			continue
		}
		sort.Slice(bestEdges, func(i, j int) bool { return bestEdges[i] < bestEdges[j] })
		r.relaxCandidate(u, v, du+best, bestEdges, pq)
	}
}

func (r *runner) relaxSelector(u string, du float64, visited map[string]struct{}, pq *nodePQ) {
	for _, v := range r.g.Successors(u) {
		if _, seen := visited[v]; seen && !(r.cfg.hasDst && v == r.cfg.dst) {
			continue
		}
		if _, excluded := r.cfg.excludedNodes[v]; excluded {
			continue
		}
		edgeIDs := r.g.EdgesBetween(u, v)
		cost, edges := r.cfg.selector.Select(r.g, u, v, edgeIDs, r.cfg.excludedEdges, r.cfg.excludedNodes)
		if math.IsInf(cost, 1) || len(edges) == 0 {
			continue
		}
		r.relaxCandidate(u, v, du+cost, edges, pq)
	}
}

func (r *runner) relaxCandidate(u, v string, newDist float64, edges []int64, pq *nodePQ) {
	cur, known := r.dist[v]
	switch {
	case !known || newDist < cur:
		r.dist[v] = newDist
		r.pred[v] = map[string][]int64{u: edges}
		heap.Push(pq, &heapItem{node: v, dist: newDist})
	case r.cfg.multipath && newDist == cur:
		if r.pred[v] == nil {
			r.pred[v] = map[string][]int64{}
		}
		r.pred[v][u] = edges
	}
}
