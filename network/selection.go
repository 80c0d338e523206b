// File: selection.go
// Role: SelectNodeGroupsByPath, grouping nodes by a regex or "attr:"
// directive, implemented identically for Network and NetworkView via the
// nodeLister interface below.
//
// Uses stdlib regexp's documented FindStringSubmatchIndex semantics plus
// an explicit start-anchoring check, so a pattern matches only when it
// matches from the beginning of the node name (not merely somewhere
// within it).
package network

import (
	"fmt"
	"regexp"
	"strings"
)

// nodeLister is satisfied by both *Network and *NetworkView so selection
// logic is written once and shared: the view exposes the same selection
// and query API as Network, restricted to visible entities.
type nodeLister interface {
	visibleNodes() []*Node
}

func (n *Network) visibleNodes() []*Node { return n.Nodes() }

// SelectNodeGroupsByPath groups nodes by a regex or "attr:" directive. The
// result is a stable, insertion-ordered mapping from label to member
// nodes; empty when nothing matches.
func SelectNodeGroupsByPath(nl nodeLister, pattern string) (*NodeGroups, error) {
	if strings.HasPrefix(pattern, "attr:") {
		return selectByAttr(nl, pattern[len("attr:"):]), nil
	}
	return selectByRegex(nl, pattern)
}

// NodeGroups is a stable, insertion-ordered label->nodes mapping.
type NodeGroups struct {
	order  []string
	groups map[string][]*Node
}

func newNodeGroups() *NodeGroups {
	return &NodeGroups{groups: make(map[string][]*Node)}
}

func (g *NodeGroups) add(label string, n *Node) {
	if _, ok := g.groups[label]; !ok {
		g.order = append(g.order, label)
	}
	g.groups[label] = append(g.groups[label], n)
}

// Labels returns the group labels in first-insertion order.
func (g *NodeGroups) Labels() []string { return append([]string(nil), g.order...) }

// Members returns the nodes in the given label's group.
func (g *NodeGroups) Members(label string) []*Node { return g.groups[label] }

// Len reports the number of distinct labels.
func (g *NodeGroups) Len() int { return len(g.order) }

// All flattens every group into one slice, in group-then-member order.
func (g *NodeGroups) All() []*Node {
	var out []*Node
	for _, label := range g.order {
		out = append(out, g.groups[label]...)
	}
	return out
}

func selectByAttr(nl nodeLister, attrName string) *NodeGroups {
	out := newNodeGroups()
	for _, n := range nl.visibleNodes() {
		v, ok := n.Attrs[attrName]
		if !ok {
			continue
		}
		out.add(fmt.Sprintf("%v", v), n)
	}
	return out
}

func selectByRegex(nl nodeLister, pattern string) (*NodeGroups, error) {
	// Only match-at-start is required, not full-string match: compile the
	// pattern as given and require the match begin at index 0, without
	// forcing a trailing "$".
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("network: %w: invalid regex %q: %v", ErrInvalidArgument, pattern, err)
	}
	out := newNodeGroups()
	for _, n := range nl.visibleNodes() {
		loc := re.FindStringSubmatchIndex(n.Name)
		if loc == nil || loc[0] != 0 {
			continue
		}
		label := pattern
		if re.NumSubexp() > 0 {
			parts := make([]string, 0, re.NumSubexp())
			for i := 1; i <= re.NumSubexp(); i++ {
				if 2*i+1 < len(loc) && loc[2*i] >= 0 {
					parts = append(parts, n.Name[loc[2*i]:loc[2*i+1]])
				} else {
					parts = append(parts, "")
				}
			}
			label = strings.Join(parts, "|")
		}
		out.add(label, n)
	}
	return out, nil
}
