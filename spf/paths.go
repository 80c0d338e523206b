// File: paths.go
// Role: turns a predecessor DAG (spf.Result.Pred) into concrete PathTuple
// values. With multipath predecessors, a destination can have many
// equally-minimal shortest paths; this walks the DAG backwards from dst
// with explicit recursion, accumulating the node/edge sequence for each
// branch as it goes.
package spf

import "fmt"

// ResolveToPaths enumerates every src->dst path recorded in res.Pred, each
// as a PathTuple listing the node sequence, the edge id chosen at each hop,
// and the path's total cost. If splitParallelEdges is true, a hop with
// several equally-minimal parallel edges yields one PathTuple per edge
// instead of bundling them into PathTuple.Edges; otherwise each PathTuple's
// Edges field lists every equally-minimal edge id usable at that hop and
// the tuple represents all of them collectively.
func ResolveToPaths(res *Result, src, dst string, splitParallelEdges bool) (*PathBundle, error) {
	if _, ok := res.Costs[dst]; !ok {
		return &PathBundle{}, nil
	}
	if src == dst {
		return &PathBundle{Paths: []PathTuple{{Nodes: []string{src}, Cost: 0}}}, nil
	}

	var out []PathTuple
	var walk func(node string, nodes []string, edgeHops [][]int64) error
	walk = func(node string, nodes []string, edgeHops [][]int64) error {
		nodes = append([]string{node}, nodes...)
		if node == src {
			if splitParallelEdges {
				for _, tuple := range cartesianEdges(edgeHops) {
					out = append(out, PathTuple{Nodes: nodes, Edges: tuple, Cost: res.Costs[dst]})
				}
			} else {
				flat := make([]int64, 0, len(edgeHops))
				for _, hop := range edgeHops {
					flat = append(flat, hop...)
				}
				out = append(out, PathTuple{Nodes: nodes, Edges: flat, Cost: res.Costs[dst]})
			}
			return nil
		}
		preds, ok := res.Pred[node]
		if !ok || len(preds) == 0 {
			return fmt.Errorf("spf: %w: no predecessor recorded for %q", ErrInvalidArgument, node)
		}
		for pred, edges := range preds {
			if err := walk(pred, nodes, append([][]int64{edges}, edgeHops...)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(dst, nil, nil); err != nil {
		return nil, err
	}
	return &PathBundle{Paths: out}, nil
}

// cartesianEdges expands per-hop parallel-edge candidate sets into one
// concrete edge slice per combination, preserving hop order.
func cartesianEdges(hops [][]int64) [][]int64 {
	combos := [][]int64{{}}
	for _, hop := range hops {
		var next [][]int64
		for _, combo := range combos {
			for _, id := range hop {
				extended := append(append([]int64{}, combo...), id)
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
