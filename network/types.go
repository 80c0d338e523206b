// Package network implements the authoritative Network topology, its
// read-only NetworkView exclusion overlay, node-group selection, and the
// working-graph builder that materializes a digraph.Graph for analysis.
//
// The view follows a non-mutating derived-graph idiom: snapshot under a
// read lock, build a fresh graph, never touch the source. The view's
// (addReverse, compact) cache keys follow the same immutable
// resolved-config-from-options pattern used for functional options
// elsewhere in this module.
package network

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/networmix/netgraph-go/ngerr"
)

// Sentinel errors, wrapped with package context.
var (
	ErrUnknownEntity   = ngerr.ErrUnknownEntity
	ErrDuplicateEntity = ngerr.ErrDuplicateEntity
	ErrInvalidArgument = ngerr.ErrInvalidArgument
	ErrNoMatch         = ngerr.ErrNoMatch
)

func errUnknownNode(name string) error {
	return fmt.Errorf("network: %w: node %q", ErrUnknownEntity, name)
}
func errUnknownLink(id string) error {
	return fmt.Errorf("network: %w: link %q", ErrUnknownEntity, id)
}
func errDuplicateNode(name string) error {
	return fmt.Errorf("network: %w: node %q", ErrDuplicateEntity, name)
}
func errNoMatch(expr string) error {
	return fmt.Errorf("network: %w: expression %q matched nothing", ErrNoMatch, expr)
}

// Node is a named, uniquely-identified vertex of a Network.
type Node struct {
	Name       string
	Disabled   bool
	RiskGroups map[string]struct{}
	Attrs      map[string]interface{}
}

// Link is a directed multi-edge with cost/capacity attributes. Its ID has
// the stable form "source|target|<rand22>", generated at construction time;
// AddLink offers no way to choose the id.
type Link struct {
	ID         string
	Source     string
	Target     string
	Capacity   float64
	Cost       float64
	Disabled   bool
	RiskGroups map[string]struct{}
	Attrs      map[string]interface{}
}

// newLinkID synthesizes the stable "source|target|<rand22>" id form. The
// random suffix is a uuid.New() with hyphens stripped, truncated to 22
// chars.
func newLinkID(source, target string) string {
	raw := uuid.New().String()
	suffix := ""
	for _, r := range raw {
		if r == '-' {
			continue
		}
		suffix += string(r)
		if len(suffix) == 22 {
			break
		}
	}
	return fmt.Sprintf("%s|%s|%s", source, target, suffix)
}

// RiskGroup is a named shared-failure domain; failing one member may
// cascade to all members when a FailurePolicy enables risk-group
// expansion.
type RiskGroup struct {
	Name     string
	Children []*RiskGroup
	Disabled bool
	Attrs    map[string]interface{}
}

// Network is the authoritative topology store: never mutated during an
// analysis iteration.
type Network struct {
	mu sync.RWMutex

	nodes      map[string]*Node
	links      map[string]*Link
	riskGroups map[string]*RiskGroup
	attrs      map[string]interface{}
}

// New returns an empty Network.
func New() *Network {
	return &Network{
		nodes:      make(map[string]*Node),
		links:      make(map[string]*Link),
		riskGroups: make(map[string]*RiskGroup),
	}
}

// AddNode registers a node; returns ErrDuplicateEntity if name is taken.
func (n *Network) AddNode(name string, attrs map[string]interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.nodes[name]; ok {
		return errDuplicateNode(name)
	}
	n.nodes[name] = &Node{Name: name, RiskGroups: map[string]struct{}{}, Attrs: attrs}
	return nil
}

// AddLink creates a Link between two existing nodes and returns it. Errors
// with ErrUnknownEntity if either endpoint is absent.
func (n *Network) AddLink(source, target string, capacity, cost float64, attrs map[string]interface{}) (*Link, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.nodes[source]; !ok {
		return nil, errUnknownNode(source)
	}
	if _, ok := n.nodes[target]; !ok {
		return nil, errUnknownNode(target)
	}
	l := &Link{
		ID: newLinkID(source, target), Source: source, Target: target,
		Capacity: capacity, Cost: cost, RiskGroups: map[string]struct{}{}, Attrs: attrs,
	}
	n.links[l.ID] = l
	return l, nil
}

// DisableNode / EnableNode flip a node's disabled flag.
func (n *Network) DisableNode(name string) error { return n.setNodeDisabled(name, true) }
func (n *Network) EnableNode(name string) error  { return n.setNodeDisabled(name, false) }

func (n *Network) setNodeDisabled(name string, v bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[name]
	if !ok {
		return errUnknownNode(name)
	}
	nd.Disabled = v
	return nil
}

// DisableLink / EnableLink flip a link's disabled flag.
func (n *Network) DisableLink(id string) error { return n.setLinkDisabled(id, true) }
func (n *Network) EnableLink(id string) error  { return n.setLinkDisabled(id, false) }

func (n *Network) setLinkDisabled(id string, v bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	l, ok := n.links[id]
	if !ok {
		return errUnknownLink(id)
	}
	l.Disabled = v
	return nil
}

// AddRiskGroup registers a risk group at the top level, or nests it under
// parent if parent != "".
func (n *Network) AddRiskGroup(name string, parent string, attrs map[string]interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.riskGroups[name]; ok {
		return fmt.Errorf("network: %w: risk group %q", ErrDuplicateEntity, name)
	}
	rg := &RiskGroup{Name: name, Attrs: attrs}
	n.riskGroups[name] = rg
	if parent != "" {
		p, ok := n.riskGroups[parent]
		if !ok {
			return fmt.Errorf("network: %w: risk group %q", ErrUnknownEntity, parent)
		}
		p.Children = append(p.Children, rg)
	}
	return nil
}

// TagNodeRiskGroup / TagLinkRiskGroup associate an entity with a risk group
// name. The risk group need not pre-exist as an AddRiskGroup entry; a
// failure policy may resolve tags that were never formally registered.
func (n *Network) TagNodeRiskGroup(name, riskGroup string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[name]
	if !ok {
		return errUnknownNode(name)
	}
	nd.RiskGroups[riskGroup] = struct{}{}
	return nil
}

func (n *Network) TagLinkRiskGroup(id, riskGroup string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	l, ok := n.links[id]
	if !ok {
		return errUnknownLink(id)
	}
	l.RiskGroups[riskGroup] = struct{}{}
	return nil
}

// DisableRiskGroup disables the named risk group and, if recursive, every
// descendant risk group beneath it.
func (n *Network) DisableRiskGroup(name string, recursive bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	rg, ok := n.riskGroups[name]
	if !ok {
		return fmt.Errorf("network: %w: risk group %q", ErrUnknownEntity, name)
	}
	var walk func(*RiskGroup)
	walk = func(g *RiskGroup) {
		g.Disabled = true
		if recursive {
			for _, c := range g.Children {
				walk(c)
			}
		}
	}
	walk(rg)
	return nil
}

// Nodes returns a snapshot slice of all nodes, sorted by name.
func (n *Network) Nodes() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, 0, len(n.nodes))
	for _, nd := range n.nodes {
		out = append(out, nd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Links returns a snapshot slice of all links, sorted by id.
func (n *Network) Links() []*Link {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Link, 0, len(n.links))
	for _, l := range n.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RiskGroups returns a snapshot slice of every registered risk group
// (every level of nesting; AddRiskGroup enforces one flat namespace for
// names regardless of parent), sorted by name.
func (n *Network) RiskGroups() []*RiskGroup {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*RiskGroup, 0, len(n.riskGroups))
	for _, rg := range n.riskGroups {
		out = append(out, rg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetRiskGroup looks up a single risk group by name.
func (n *Network) GetRiskGroup(name string) (*RiskGroup, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	rg, ok := n.riskGroups[name]
	if !ok {
		return nil, fmt.Errorf("network: %w: risk group %q", ErrUnknownEntity, name)
	}
	return rg, nil
}

// GetNode / GetLink look up a single entity.
func (n *Network) GetNode(name string) (*Node, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	nd, ok := n.nodes[name]
	if !ok {
		return nil, errUnknownNode(name)
	}
	return nd, nil
}

func (n *Network) GetLink(id string) (*Link, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	l, ok := n.links[id]
	if !ok {
		return nil, errUnknownLink(id)
	}
	return l, nil
}

// FindLinks returns every link whose source and/or target match the given
// predicates (nil predicate = match-all).
func (n *Network) FindLinks(sourceMatch, targetMatch func(string) bool) []*Link {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []*Link
	for _, l := range n.links {
		if sourceMatch != nil && !sourceMatch(l.Source) {
			continue
		}
		if targetMatch != nil && !targetMatch(l.Target) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetLinksBetween returns all links source->target, sorted by id.
func (n *Network) GetLinksBetween(source, target string) []*Link {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []*Link
	for _, l := range n.links {
		if l.Source == source && l.Target == target {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
