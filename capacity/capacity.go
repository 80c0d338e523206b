// File: capacity.go
// Role: given a flow-initialized graph and an SPF predecessor DAG,
// compute the total flow and per-edge forward fractions achievable
// between src and dst.
//
// PROPORTIONAL is a BFS level graph followed by an iterator-indexed DFS
// blocking-flow push, run over the DAG's bundle capacities instead of a
// plain adjacency capacity map, and rooted so levels measure distance to
// dst rather than from src (an equivalent formulation of the same
// layered-graph idea, since a node's level in the blocking-flow DFS only
// needs to decrease by exactly one hop per step toward the sink).
// EQUAL_BALANCED is a nominal-split BFS over the same predecessor-DAG
// walk, splitting a unit of flow evenly across equal-cost bundles and
// scaling by the tightest capacity/nominal ratio.
package capacity

import (
	"fmt"
	"sort"

	"github.com/networmix/netgraph-go/digraph"
)

// Pred is the predecessor-DAG shape produced by spf.Result.Pred: node ->
// predecessor node -> edge ids usable on that hop.
type Pred map[string]map[string][]int64

// CalcGraphCapacity computes (total_flow, flow_dict) for the DAG described
// by pred, rooted at src and dst, using the given placement policy.
// flow_dict[u][v] is the forward-oriented fraction of total_flow carried
// on the u->v bundle; fractions sum to 1 across src's outgoing bundles
// when total_flow > 0.
func CalcGraphCapacity(g *digraph.Graph, src, dst string, pred Pred, placement Placement) (float64, map[string]map[string]float64, error) {
	if src == dst {
		return 0, nil, fmt.Errorf("capacity: %w: src and dst must differ", ErrInvalidArgument)
	}
	if !g.HasNode(src) {
		return 0, nil, fmt.Errorf("capacity: %w: unknown src %q", ErrInvalidArgument, src)
	}
	if !g.HasNode(dst) {
		return 0, nil, fmt.Errorf("capacity: %w: unknown dst %q", ErrInvalidArgument, dst)
	}

	dag := buildDAG(pred)

	switch placement {
	case Proportional:
		return calcProportional(g, src, dst, dag)
	case EqualBalanced:
		return calcEqualBalanced(g, src, dst, dag)
	default:
		return 0, nil, fmt.Errorf("capacity: %w: unsupported placement %d", ErrInvalidArgument, placement)
	}
}

// dagEdge is one u->v bundle: the parallel edge ids a predecessor
// contributed on that hop.
type dagEdge struct {
	to    string
	edges []int64
}

// buildDAG inverts the child->predecessor Pred map into a forward
// adjacency (predecessor -> successors), sorted for deterministic
// traversal order.
func buildDAG(pred Pred) map[string][]dagEdge {
	fwd := map[string][]dagEdge{}
	for v, preds := range pred {
		us := make([]string, 0, len(preds))
		for u := range preds {
			us = append(us, u)
		}
		sort.Strings(us)
		for _, u := range us {
			fwd[u] = append(fwd[u], dagEdge{to: v, edges: preds[u]})
		}
	}
	return fwd
}

func bundleCapacity(g *digraph.Graph, edgeIDs []int64) float64 {
	var total float64
	for _, id := range edgeIDs {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		r := e.Capacity - e.Flow
		if r > 0 {
			total += r
		}
	}
	return total
}

// calcProportional computes a Dinic-style blocking flow over the DAG's
// bundle capacities, rooted so BFS levels measure hop-distance from dst.
func calcProportional(g *digraph.Graph, src, dst string, dag map[string][]dagEdge) (float64, map[string]map[string]float64, error) {
	capMap := map[string]map[string]float64{}
	for u, edges := range dag {
		for _, e := range edges {
			if capMap[u] == nil {
				capMap[u] = map[string]float64{}
			}
			capMap[u][e.to] += bundleCapacity(g, e.edges)
		}
	}

	var total float64
	for {
		level := bfsLevelsFromDst(dag, dst)
		if _, ok := level[src]; !ok {
			break
		}
		next := map[string][]string{}
		for u, edges := range dag {
			lu, ok := level[u]
			if !ok {
				continue
			}
			for _, e := range edges {
				if lv, ok := level[e.to]; ok && lv == lu-1 {
					next[u] = append(next[u], e.to)
				}
			}
		}

		iter := map[string]int{}
		roundTotal := 0.0
		for {
			p := dfsBlockingPush(capMap, next, iter, src, dst, posInf)
			if p <= 0 {
				break
			}
			total += p
			roundTotal += p
		}
		if roundTotal == 0 {
			break
		}
	}

	flowDict := map[string]map[string]float64{}
	for u, edges := range dag {
		for _, e := range edges {
			sent := sumCap(capMap, e.to, u)
			if flowDict[u] == nil {
				flowDict[u] = map[string]float64{}
			}
			if total > 0 {
				flowDict[u][e.to] = sent / total
			} else {
				flowDict[u][e.to] = 0
			}
		}
	}

	return total, flowDict, nil
}

const posInf = 1e18

func sumCap(capMap map[string]map[string]float64, u, v string) float64 {
	if capMap[u] == nil {
		return 0
	}
	return capMap[u][v]
}

func bfsLevelsFromDst(dag map[string][]dagEdge, dst string) map[string]int {
	rev := map[string][]string{}
	for u, edges := range dag {
		for _, e := range edges {
			rev[e.to] = append(rev[e.to], u)
		}
	}
	level := map[string]int{dst: 0}
	queue := []string{dst}
	for i := 0; i < len(queue); i++ {
		node := queue[i]
		preds := rev[node]
		sort.Strings(preds)
		for _, p := range preds {
			if _, seen := level[p]; !seen {
				level[p] = level[node] + 1
				queue = append(queue, p)
			}
		}
	}
	return level
}

func dfsBlockingPush(capMap map[string]map[string]float64, next map[string][]string, iter map[string]int, u, dst string, available float64) float64 {
	if u == dst {
		return available
	}
	nbrs := next[u]
	for i := iter[u]; i < len(nbrs); i++ {
		iter[u] = i + 1
		v := nbrs[i]
		c := capMap[u][v]
		if c <= 0 {
			continue
		}
		send := available
		if c < send {
			send = c
		}
		if send == 0 {
			continue
		}
		pushed := dfsBlockingPush(capMap, next, iter, v, dst, send)
		if pushed > 0 {
			capMap[u][v] -= pushed
			if capMap[v] == nil {
				capMap[v] = map[string]float64{}
			}
			capMap[v][u] += pushed
			return pushed
		}
	}
	return 0
}

// calcEqualBalanced splits a nominal unit of flow equally across
// equal-cost bundles (here: every distinct successor bundle of a node, an
// SPF pred-DAG already restricts successors to min-cost hops) and equally
// across parallel edges within a bundle, then scales by the tightest
// capacity/nominal ratio.
func calcEqualBalanced(g *digraph.Graph, src, dst string, dag map[string][]dagEdge) (float64, map[string]map[string]float64, error) {
	nominal := map[string]map[string]float64{}

	queue := []string{src}
	incoming := map[string]float64{src: 1.0}
	visited := map[string]struct{}{}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if _, done := visited[u]; done {
			continue
		}
		visited[u] = struct{}{}
		edges := dag[u]
		if len(edges) == 0 {
			continue
		}
		share := incoming[u] / float64(len(edges))
		for _, e := range edges {
			if nominal[u] == nil {
				nominal[u] = map[string]float64{}
			}
			nominal[u][e.to] += share
			incoming[e.to] += share
			queue = append(queue, e.to)
		}
	}

	scale := posInf
	for u, edges := range dag {
		for _, e := range edges {
			n := nominal[u][e.to]
			if n <= 0 {
				continue
			}
			// Each parallel edge carries an equal share, so the edge with
			// the least residual capacity bounds the whole bundle.
			var minCap float64
			found := false
			for _, id := range e.edges {
				ed, err := g.GetEdgeData(id)
				if err != nil {
					continue
				}
				r := ed.Capacity - ed.Flow
				if r < 0 {
					r = 0
				}
				if !found || r < minCap {
					minCap, found = r, true
				}
			}
			ratio := minCap * float64(len(e.edges)) / n
			if ratio < scale {
				scale = ratio
			}
		}
	}
	if scale == posInf || scale < 0 {
		scale = 0
	}

	flowDict := map[string]map[string]float64{}
	for u, edges := range dag {
		for _, e := range edges {
			if flowDict[u] == nil {
				flowDict[u] = map[string]float64{}
			}
			flowDict[u][e.to] = nominal[u][e.to] * scale
		}
	}

	total := scale
	if total > 0 {
		for u := range flowDict {
			for v := range flowDict[u] {
				flowDict[u][v] /= total
			}
		}
	}
	return total, flowDict, nil
}
