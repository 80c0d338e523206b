// Package digraph implements StrictMultiDiGraph: the directed multigraph
// every analysis algorithm in this module runs on. It is keyed by string
// node name and by opaque, monotonically increasing int64 edge id.
//
// Mutation APIs are strict: adding an existing node or an edge whose key is
// already in use is an error, and removing an absent entity is an error —
// callers are expected to know the shape of the graph they are building
// rather than relying on idempotent upserts. A silently-ignored duplicate
// add would mask a builder bug rather than surface it, which matters most
// for the working-graph builder (network package) that is this graph's
// primary producer.
//
// Concurrency: muNodes guards the node catalog; muEdges guards the edge
// catalog and both adjacency directions. The two are always acquired in
// that order.
package digraph

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/networmix/netgraph-go/ngerr"
)

// FlowIndex identifies one placed flow's contribution to an edge or node's
// aggregate flow bookkeeping: (Src, Dst, FlowClass, FlowID).
type FlowIndex struct {
	Src       string
	Dst       string
	FlowClass int
	FlowID    uint64
}

// Sentinel errors, re-exported from ngerr for errors.Is compatibility and
// given digraph-specific message context at each call site.
var (
	ErrUnknownEntity   = ngerr.ErrUnknownEntity
	ErrDuplicateEntity = ngerr.ErrDuplicateEntity
)

func errUnknownNode(name string) error {
	return fmt.Errorf("digraph: %w: node %q", ErrUnknownEntity, name)
}
func errUnknownEdge(id int64) error {
	return fmt.Errorf("digraph: %w: edge %d", ErrUnknownEntity, id)
}
func errDuplicateNode(name string) error {
	return fmt.Errorf("digraph: %w: node %q", ErrDuplicateEntity, name)
}
func errDuplicateEdge(id int64) error {
	return fmt.Errorf("digraph: %w: edge %d", ErrDuplicateEntity, id)
}

// EdgeData holds the mutable per-edge state the analysis algorithms read
// and write: static Cost/Capacity plus running Flow bookkeeping.
type EdgeData struct {
	From, To string
	Cost     float64
	Capacity float64
	Flow     float64
	Flows    map[FlowIndex]float64
	Attrs    map[string]interface{}
}

// Clone returns a deep copy of e (used by Graph.Clone).
func (e *EdgeData) clone() *EdgeData {
	ne := &EdgeData{
		From: e.From, To: e.To, Cost: e.Cost, Capacity: e.Capacity, Flow: e.Flow,
	}
	if e.Flows != nil {
		ne.Flows = make(map[FlowIndex]float64, len(e.Flows))
		for k, v := range e.Flows {
			ne.Flows[k] = v
		}
	}
	if e.Attrs != nil {
		ne.Attrs = make(map[string]interface{}, len(e.Attrs))
		for k, v := range e.Attrs {
			ne.Attrs[k] = v
		}
	}
	return ne
}

// NodeData holds the mutable per-node state: aggregate Flow bookkeeping plus
// the attribute bag.
type NodeData struct {
	Flow  float64
	Flows map[FlowIndex]float64
	Attrs map[string]interface{}
}

func (n *NodeData) clone() *NodeData {
	nn := &NodeData{Flow: n.Flow}
	if n.Flows != nil {
		nn.Flows = make(map[FlowIndex]float64, len(n.Flows))
		for k, v := range n.Flows {
			nn.Flows[k] = v
		}
	}
	if n.Attrs != nil {
		nn.Attrs = make(map[string]interface{}, len(n.Attrs))
		for k, v := range n.Attrs {
			nn.Attrs[k] = v
		}
	}
	return nn
}

// Graph is StrictMultiDiGraph. Edge ids are never reused, even across
// removals: removing then re-adding a node always produces a fresh
// identity rather than resurrecting the old one's edges.
type Graph struct {
	muNodes sync.RWMutex
	muEdges sync.RWMutex

	nextEdgeID int64 // atomic, monotonic, never recycled

	nodes map[string]*NodeData

	edges map[int64]*EdgeData
	// adjacency[u][v] = set of edge ids for edges u->v.
	adjacency map[string]map[string]map[int64]struct{}
	// reverse[v][u] mirrors adjacency for O(1) predecessor lookups: every
	// forward entry has a reverse back-pointer.
	reverse map[string]map[string]map[int64]struct{}
}

// New returns an empty StrictMultiDiGraph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]*NodeData),
		edges:     make(map[int64]*EdgeData),
		adjacency: make(map[string]map[string]map[int64]struct{}),
		reverse:   make(map[string]map[string]map[int64]struct{}),
	}
}

func (g *Graph) nextID() int64 {
	return atomic.AddInt64(&g.nextEdgeID, 1) - 1
}
