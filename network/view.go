// File: view.go
// Role: NetworkView, the read-only exclusion overlay over a Network,
// with a working-graph cache keyed by (addReverse, compact).
//
// The view never mutates its base Network: every read takes a snapshot
// under a read lock and builds a fresh graph rather than touching the
// source. The cache uses golang.org/x/sync/singleflight so concurrent
// readers requesting the same (addReverse, compact) variant collapse
// into a single build instead of racing to construct duplicate graphs.
package network

import (
	"fmt"
	"sort"
	"sync"

	"github.com/networmix/netgraph-go/digraph"
	"golang.org/x/sync/singleflight"
)

// NetworkView borrows a Network and overlays a frozen pair of exclusion
// sets on top of it. It does not own the Network and must not outlive it.
type NetworkView struct {
	base           *Network
	excludedNodes  map[string]struct{}
	excludedLinks  map[string]struct{}

	cacheMu sync.RWMutex
	cache   map[cacheKey]*digraph.Graph
	group   singleflight.Group
}

type cacheKey struct {
	addReverse bool
	compact    bool
}

// FromExcludedSets constructs a NetworkView over base with the given frozen
// exclusion sets (nil is treated as empty).
func FromExcludedSets(base *Network, excludedNodes, excludedLinks []string) *NetworkView {
	v := &NetworkView{
		base:          base,
		excludedNodes: make(map[string]struct{}, len(excludedNodes)),
		excludedLinks: make(map[string]struct{}, len(excludedLinks)),
		cache:         make(map[cacheKey]*digraph.Graph),
	}
	for _, n := range excludedNodes {
		v.excludedNodes[n] = struct{}{}
	}
	for _, l := range excludedLinks {
		v.excludedLinks[l] = struct{}{}
	}
	return v
}

// ExcludedNodes / ExcludedLinks return the frozen exclusion sets, sorted.
func (v *NetworkView) ExcludedNodes() []string { return sortedKeys(v.excludedNodes) }
func (v *NetworkView) ExcludedLinks() []string { return sortedKeys(v.excludedLinks) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// nodeHidden reports whether name is hidden: excluded by the view, or
// disabled on the base Network.
func (v *NetworkView) nodeHidden(n *Node) bool {
	if n.Disabled {
		return true
	}
	_, excluded := v.excludedNodes[n.Name]
	return excluded
}

// linkHidden reports whether l is hidden: excluded by the view, disabled,
// or either endpoint hidden.
func (v *NetworkView) linkHidden(l *Link) bool {
	if l.Disabled {
		return true
	}
	if _, excluded := v.excludedLinks[l.ID]; excluded {
		return true
	}
	srcNode, err := v.base.GetNode(l.Source)
	if err != nil || v.nodeHidden(srcNode) {
		return true
	}
	dstNode, err := v.base.GetNode(l.Target)
	if err != nil || v.nodeHidden(dstNode) {
		return true
	}
	return false
}

// visibleNodes implements nodeLister for node-group selection.
func (v *NetworkView) visibleNodes() []*Node {
	var out []*Node
	for _, n := range v.base.Nodes() {
		if !v.nodeHidden(n) {
			out = append(out, n)
		}
	}
	return out
}

// VisibleNodes / VisibleLinks expose the same selection and query API as
// Network, restricted to entities this view has not excluded.
func (v *NetworkView) VisibleNodes() []*Node { return v.visibleNodes() }

func (v *NetworkView) VisibleLinks() []*Link {
	var out []*Link
	for _, l := range v.base.Links() {
		if !v.linkHidden(l) {
			out = append(out, l)
		}
	}
	return out
}

// SelectNodeGroupsByPath restricted to visible nodes.
func (v *NetworkView) SelectNodeGroupsByPath(pattern string) (*NodeGroups, error) {
	return SelectNodeGroupsByPath(v, pattern)
}

// WorkingGraph returns the cached working digraph.Graph for
// (addReverse, compact), building it at most once even under concurrent
// callers.
func (v *NetworkView) WorkingGraph(addReverse, compact bool) (*digraph.Graph, error) {
	key := cacheKey{addReverse, compact}

	v.cacheMu.RLock()
	if g, ok := v.cache[key]; ok {
		v.cacheMu.RUnlock()
		return g, nil
	}
	v.cacheMu.RUnlock()

	groupKey := fmt.Sprintf("%v|%v", addReverse, compact)
	result, err, _ := v.group.Do(groupKey, func() (interface{}, error) {
		// Re-check under the group: another goroutine may have populated
		// the cache while we waited to enter Do.
		v.cacheMu.RLock()
		if g, ok := v.cache[key]; ok {
			v.cacheMu.RUnlock()
			return g, nil
		}
		v.cacheMu.RUnlock()

		g, err := BuildWorkingGraph(v, addReverse, compact)
		if err != nil {
			return nil, err
		}
		v.cacheMu.Lock()
		v.cache[key] = g
		v.cacheMu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*digraph.Graph), nil
}
