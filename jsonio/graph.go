// File: graph.go
// Role: thin aliases over digraph's node-link/edge-list codecs, so callers
// that only import jsonio still reach the one concrete implementation in
// digraph/export.go rather than a second copy of the same logic.
package jsonio

import "github.com/networmix/netgraph-go/digraph"

// NodeLink is the JSON-ready export shape of a graph's nodes and edges.
type NodeLink = digraph.NodeLink

// ToNodeLink exports g's node-link representation.
func ToNodeLink(g *digraph.Graph, graphAttrs map[string]interface{}) NodeLink {
	return g.ToNodeLink(graphAttrs)
}

// FromNodeLink is the inverse of ToNodeLink.
func FromNodeLink(nl NodeLink) (*digraph.Graph, error) {
	return digraph.FromNodeLink(nl)
}

// ToEdgeList renders g as a line-oriented edge list.
func ToEdgeList(g *digraph.Graph, sep string) []string {
	return g.ToEdgeList(sep)
}
