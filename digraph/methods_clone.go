// File: methods_clone.go
// Role: Cloning graph instances.
//
// Determinism:
//   - Clone carries over nextEdgeID so future AddEdge calls on the clone
//     continue the same id sequence and never collide with the source.
// Concurrency:
//   - Read locks for snapshotting; no mutation of the source graph.
//
// Clone is a single deep-clone primitive that copies adjacency and
// attributes in one pass rather than a general-purpose per-object
// deep-copy mechanism, building the clone's maps directly instead of
// reflecting over the source.
package digraph

import "sync/atomic"

// Clone returns a deep copy of g: nodes, edges, adjacency, and the running
// edge-id sequence. Required to be substantially faster than a naive
// per-entity deep clone for 10^5-edge graphs, which this achieves by
// copying the four maps directly rather than walking a generic object
// graph.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()

	clone := New()
	atomic.StoreInt64(&clone.nextEdgeID, atomic.LoadInt64(&g.nextEdgeID))

	for name, nd := range g.nodes {
		clone.nodes[name] = nd.clone()
	}
	for id, e := range g.edges {
		clone.edges[id] = e.clone()
	}
	for u, inner := range g.adjacency {
		m := make(map[string]map[int64]struct{}, len(inner))
		for v, ids := range inner {
			idc := make(map[int64]struct{}, len(ids))
			for id := range ids {
				idc[id] = struct{}{}
			}
			m[v] = idc
		}
		clone.adjacency[u] = m
	}
	for v, inner := range g.reverse {
		m := make(map[string]map[int64]struct{}, len(inner))
		for u, ids := range inner {
			idc := make(map[int64]struct{}, len(ids))
			for id := range ids {
				idc[id] = struct{}{}
			}
			m[u] = idc
		}
		clone.reverse[v] = m
	}

	return clone
}

// EnsureFlowState makes sure every edge's Flow/Flows and every node's
// Flow/Flows are initialized, overwriting existing values when reset is
// true. Max-flow always runs against a graph where flow bookkeeping is
// present before the first augmentation.
func (g *Graph) EnsureFlowState(reset bool) {
	g.muNodes.Lock()
	for _, nd := range g.nodes {
		if reset || nd.Flows == nil {
			nd.Flow = 0
			nd.Flows = make(map[FlowIndex]float64)
		}
	}
	g.muNodes.Unlock()

	g.muEdges.Lock()
	for _, e := range g.edges {
		if reset || e.Flows == nil {
			e.Flow = 0
			e.Flows = make(map[FlowIndex]float64)
		}
	}
	g.muEdges.Unlock()
}
