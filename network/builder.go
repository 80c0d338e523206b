// File: builder.go
// Role: Working-graph builder: materializes a digraph.Graph from a
// Network or NetworkView's visible entities.
//
// Builds a fresh graph with explicit construction, copying only visible
// entities and never mutating the source.
package network

import "github.com/networmix/netgraph-go/digraph"

// visibleSource is satisfied by both *Network (fully visible) and
// *NetworkView (exclusion-restricted) so the builder is written once.
type visibleSource interface {
	nodeLister
	visibleLinksSource() []*Link
}

func (n *Network) visibleLinksSource() []*Link { return n.Links() }
func (v *NetworkView) visibleLinksSource() []*Link { return v.VisibleLinks() }

// BuildWorkingGraph materializes a digraph.Graph from src's visible nodes
// and links. If addReverse, each link also contributes a synthetic
// target->source edge with the same cost/capacity. If compact,
// only cost/capacity are copied onto edges and nodes carry no attributes;
// otherwise the original link id and all attributes are preserved as the
// edge's Attrs["link_id"] plus a copy of Link.Attrs.
func BuildWorkingGraph(src visibleSource, addReverse, compact bool) (*digraph.Graph, error) {
	g := digraph.New()

	for _, n := range src.visibleNodes() {
		var attrs map[string]interface{}
		if !compact {
			attrs = cloneAnyMap(n.Attrs)
		}
		if err := g.AddNode(n.Name, attrs); err != nil {
			return nil, err
		}
	}

	for _, l := range src.visibleLinksSource() {
		fwdAttrs, revAttrs := edgeAttrs(l, compact)
		if _, err := g.AddEdge(l.Source, l.Target, -1, l.Cost, l.Capacity, fwdAttrs); err != nil {
			return nil, err
		}
		if addReverse {
			if _, err := g.AddEdge(l.Target, l.Source, -1, l.Cost, l.Capacity, revAttrs); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func edgeAttrs(l *Link, compact bool) (fwd, rev map[string]interface{}) {
	if compact {
		return nil, nil
	}
	base := cloneAnyMap(l.Attrs)
	base["link_id"] = l.ID
	// The reverse synthetic edge gets its own copy so mutating one edge's
	// Attrs (e.g. during compaction elsewhere) never aliases the other.
	revCopy := make(map[string]interface{}, len(base))
	for k, v := range base {
		revCopy[k] = v
	}
	return base, revCopy
}

func cloneAnyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
