// File: methods_nodes.go
// Role: Node lifecycle & queries: AddNode/RemoveNode/HasNode/Nodes/NodeCount.
//
// Determinism:
//   - Nodes() returns names sorted lexicographically ascending.
//
// Concurrency:
//   - Node catalog protected by muNodes; adjacency bootstrap/teardown under
//     muEdges to keep the adjacency invariants consistent.
package digraph

import "sort"

// AddNode registers a new node. It is an error (ErrDuplicateEntity) to add
// a node name that already exists: the working-graph builder relies on a
// strict add failing loudly on an accidental duplicate rather than
// silently upserting over it.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(name string, attrs map[string]interface{}) error {
	if name == "" {
		return errUnknownNode(name)
	}
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	if _, ok := g.nodes[name]; ok {
		return errDuplicateNode(name)
	}
	g.nodes[name] = &NodeData{Attrs: attrs}

	g.muEdges.Lock()
	g.adjacency[name] = make(map[string]map[int64]struct{})
	g.reverse[name] = make(map[string]map[int64]struct{})
	g.muEdges.Unlock()

	return nil
}

// HasNode reports whether name is present.
func (g *Graph) HasNode(name string) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[name]
	return ok
}

// Nodes returns all node names, sorted ascending for deterministic
// iteration.
func (g *Graph) Nodes() []string {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return len(g.nodes)
}

// GetNodeData returns the node's data, or ErrUnknownEntity.
func (g *Graph) GetNodeData(name string) (*NodeData, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	nd, ok := g.nodes[name]
	if !ok {
		return nil, errUnknownNode(name)
	}
	return nd, nil
}

// RemoveNode deletes name and every edge incident to it. Returns
// ErrUnknownEntity if absent.
//
// Complexity: O(deg(name)).
func (g *Graph) RemoveNode(name string) error {
	g.muNodes.Lock()
	if _, ok := g.nodes[name]; !ok {
		g.muNodes.Unlock()
		return errUnknownNode(name)
	}
	delete(g.nodes, name)
	g.muNodes.Unlock()

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	// Remove outgoing edges.
	for to, ids := range g.adjacency[name] {
		for id := range ids {
			delete(g.edges, id)
			if m := g.reverse[to]; m != nil {
				delete(m[name], id)
				if len(m[name]) == 0 {
					delete(m, name)
				}
			}
		}
	}
	delete(g.adjacency, name)

	// Remove incoming edges.
	for from, ids := range g.reverse[name] {
		for id := range ids {
			delete(g.edges, id)
			if m := g.adjacency[from]; m != nil {
				delete(m[name], id)
				if len(m[name]) == 0 {
					delete(m, name)
				}
			}
		}
	}
	delete(g.reverse, name)

	return nil
}
