// File: types.go
// Role: FlowPolicy configuration, following the same functional-options
// config pattern used across this module.
package flowpolicy

import (
	"github.com/networmix/netgraph-go/capacity"
	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/spf"
)

// PathAlg selects how a new flow's path bundle is discovered.
type PathAlg int

const (
	// SPFAlg uses a single shortest-path-first run.
	SPFAlg PathAlg = iota
	// KSPYens uses Yen-like k-shortest-paths, one new path per flow.
	KSPYens
)

type config struct {
	pathAlg                      PathAlg
	edgeSelect                   spf.EdgeSelector
	flowPlacement                capacity.Placement
	minFlowCount                 int
	maxFlowCount                 int
	hasMaxFlowCount               bool
	maxPathCost                  float64
	hasMaxPathCost               bool
	maxPathCostFactor            float64
	hasMaxPathCostFactor         bool
	staticPaths                  []*spf.PathBundle
	shortestPath                 bool
	reoptimizeOnEachPlacement    bool
	diminishingReturnsEnabled    bool
	diminishingReturnsIters      int
	stagnationTolerance          float64
	tolerance                    float64
}

func defaultConfig() *config {
	return &config{
		pathAlg:                 SPFAlg,
		edgeSelect:              spf.AllMinCostWithCapRemaining{},
		flowPlacement:           capacity.Proportional,
		minFlowCount:            1,
		maxPathCost:             1e18,
		diminishingReturnsIters: 3,
		stagnationTolerance:     1e-6,
		tolerance:               1e-9,
	}
}

// Option configures a FlowPolicy.
type Option func(*config)

func WithPathAlg(alg PathAlg) Option { return func(c *config) { c.pathAlg = alg } }
func WithEdgeSelect(sel spf.EdgeSelector) Option {
	return func(c *config) { c.edgeSelect = sel }
}
func WithFlowPlacement(p capacity.Placement) Option {
	return func(c *config) { c.flowPlacement = p }
}
func WithMinFlowCount(n int) Option { return func(c *config) { c.minFlowCount = n } }
func WithMaxFlowCount(n int) Option {
	return func(c *config) { c.maxFlowCount = n; c.hasMaxFlowCount = true }
}
func WithMaxPathCost(cost float64) Option {
	return func(c *config) { c.maxPathCost = cost; c.hasMaxPathCost = true }
}
func WithMaxPathCostFactor(factor float64) Option {
	return func(c *config) { c.maxPathCostFactor = factor; c.hasMaxPathCostFactor = true }
}
func WithStaticPaths(paths ...*spf.PathBundle) Option {
	return func(c *config) { c.staticPaths = paths }
}
func WithShortestPath(enabled bool) Option { return func(c *config) { c.shortestPath = enabled } }
func WithReoptimizeOnEachPlacement(enabled bool) Option {
	return func(c *config) { c.reoptimizeOnEachPlacement = enabled }
}
func WithDiminishingReturns(enabled bool, iters int, stagnationTolerance float64) Option {
	return func(c *config) {
		c.diminishingReturnsEnabled = enabled
		c.diminishingReturnsIters = iters
		c.stagnationTolerance = stagnationTolerance
	}
}
func WithTolerance(t float64) Option { return func(c *config) { c.tolerance = t } }

// Flow is one path-bundle-bound flow managed by a FlowPolicy.
type Flow struct {
	Index        digraph.FlowIndex
	Pred         capacity.Pred
	Cost         float64
	PlacedVolume float64

	edgeContrib map[int64]float64
	nodeContrib map[string]float64
}

// FlowPolicy converts a (src, dst, class, volume) demand into one or more
// Flow objects on a flow-initialized graph, per its configured path
// algorithm and placement policy.
type FlowPolicy struct {
	cfg   *config
	flows []*Flow

	bound      bool
	src, dst   string
	class      int
	nextFlowID uint64
}

// New constructs a FlowPolicy with the given options.
func New(opts ...Option) *FlowPolicy {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &FlowPolicy{cfg: cfg}
}

// Flows returns the policy's current flow registry (read-only snapshot).
func (p *FlowPolicy) Flows() []*Flow {
	out := make([]*Flow, len(p.flows))
	copy(out, p.flows)
	return out
}
