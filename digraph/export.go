// File: export.go
// Role: node-link and edge-list export to JSON-ready structures, using
// deterministic iteration (sorted node names, sorted edge ids) so exports
// are byte-reproducible across runs.
package digraph

import (
	"fmt"
	"sort"
	"strings"
)

// NodeLinkNode is one entry of the NodeLink.Nodes array.
type NodeLinkNode struct {
	ID   string                 `json:"id"`
	Attr map[string]interface{} `json:"attr"`
}

// NodeLinkEdge is one entry of the NodeLink.Links array; Source/Target are
// indices into NodeLink.Nodes.
type NodeLinkEdge struct {
	Source int64                  `json:"source"`
	Target int64                  `json:"target"`
	Key    int64                  `json:"key"`
	Attr   map[string]interface{} `json:"attr"`
}

// NodeLink is the JSON-ready export shape: {"graph": attrs, "nodes": [...],
// "links": [...]}.
type NodeLink struct {
	Graph map[string]interface{} `json:"graph"`
	Nodes []NodeLinkNode          `json:"nodes"`
	Links []NodeLinkEdge          `json:"links"`
}

// ToNodeLink exports g deterministically: nodes sorted by name, links
// sorted by edge id, with per-edge Cost/Capacity/Flow folded into Attr
// under reserved keys so the export is self-describing.
func (g *Graph) ToNodeLink(graphAttrs map[string]interface{}) NodeLink {
	names := g.Nodes()
	index := make(map[string]int64, len(names))
	nl := NodeLink{Graph: graphAttrs, Nodes: make([]NodeLinkNode, 0, len(names))}
	for i, name := range names {
		index[name] = int64(i)
		nd, _ := g.GetNodeData(name)
		nl.Nodes = append(nl.Nodes, NodeLinkNode{ID: name, Attr: nd.Attrs})
	}

	ids := g.Edges()
	nl.Links = make([]NodeLinkEdge, 0, len(ids))
	for _, id := range ids {
		e, _ := g.GetEdgeData(id)
		attr := make(map[string]interface{}, len(e.Attrs)+3)
		for k, v := range e.Attrs {
			attr[k] = v
		}
		attr["cost"] = e.Cost
		attr["capacity"] = e.Capacity
		attr["flow"] = e.Flow
		nl.Links = append(nl.Links, NodeLinkEdge{
			Source: index[e.From], Target: index[e.To], Key: id, Attr: attr,
		})
	}
	return nl
}

// FromNodeLink is the inverse of ToNodeLink; it errors if a node has an
// empty id or a link references an out-of-range node index. A node or link
// with a missing or null attr is accepted and imported with no attributes.
func FromNodeLink(nl NodeLink) (*Graph, error) {
	g := New()
	for _, n := range nl.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("digraph: node-link import: missing node id")
		}
		if err := g.AddNode(n.ID, n.Attr); err != nil {
			return nil, err
		}
	}
	for i, l := range nl.Links {
		if l.Source < 0 || int(l.Source) >= len(nl.Nodes) || l.Target < 0 || int(l.Target) >= len(nl.Nodes) {
			return nil, fmt.Errorf("digraph: node-link import: link %d references out-of-range node index", i)
		}
		src := nl.Nodes[l.Source].ID
		dst := nl.Nodes[l.Target].ID
		cost, _ := l.Attr["cost"].(float64)
		capacity, _ := l.Attr["capacity"].(float64)
		attr := make(map[string]interface{}, len(l.Attr))
		for k, v := range l.Attr {
			if k == "cost" || k == "capacity" || k == "flow" {
				continue
			}
			attr[k] = v
		}
		if _, err := g.AddEdge(src, dst, l.Key, cost, capacity, attr); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// edgeListBaseColumns is the default column order for ToEdgeList when no sorted
// attribute names are requested beyond [src, dst, key].
var edgeListBaseColumns = []string{"src", "dst", "key"}

// ToEdgeList renders a line-oriented edge list: one edge per line, default
// columns [src, dst, key, ...sorted-attr-names] joined by sep (a single
// space if sep == ""). Missing attribute values are emitted as empty
// tokens.
func (g *Graph) ToEdgeList(sep string) []string {
	if sep == "" {
		sep = " "
	}
	ids := g.Edges()

	// Collect the union of attribute names across all edges, sorted, so
	// the column set is stable regardless of which edge happens to carry
	// which key.
	attrNames := map[string]struct{}{}
	for _, id := range ids {
		e, _ := g.GetEdgeData(id)
		for k := range e.Attrs {
			attrNames[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(attrNames))
	for k := range attrNames {
		names = append(names, k)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		e, _ := g.GetEdgeData(id)
		cols := make([]string, 0, len(edgeListBaseColumns)+len(names))
		cols = append(cols, e.From, e.To, fmt.Sprintf("%d", id))
		for _, n := range names {
			v, ok := e.Attrs[n]
			if !ok {
				cols = append(cols, "")
				continue
			}
			cols = append(cols, fmt.Sprintf("%v", v))
		}
		lines = append(lines, strings.Join(cols, sep))
	}
	return lines
}
