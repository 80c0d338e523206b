// File: types.go
// Role: functional-options config for CalcMaxFlow, following the same
// functional-options pattern already used by spf.Option.
package maxflow

import "github.com/networmix/netgraph-go/capacity"

type config struct {
	placement      capacity.Placement
	shortestPath   bool
	resetFlowGraph bool
	copyGraph      bool
	tolerance      float64
	returnSummary  bool
	returnGraph    bool
}

func defaultConfig() *config {
	return &config{
		placement: capacity.Proportional,
		copyGraph: true,
		tolerance: 1e-9,
	}
}

// Option configures a call to CalcMaxFlow.
type Option func(*config)

// WithPlacement selects the capacity-placement policy (default Proportional).
func WithPlacement(p capacity.Placement) Option { return func(c *config) { c.placement = p } }

// WithShortestPath stops after the first non-zero augmentation instead of
// iterating to exhaustion.
func WithShortestPath(enabled bool) Option { return func(c *config) { c.shortestPath = enabled } }

// WithResetFlowGraph overwrites any pre-existing flow/flows attributes
// during preparation instead of only filling in missing ones.
func WithResetFlowGraph(enabled bool) Option { return func(c *config) { c.resetFlowGraph = enabled } }

// WithCopyGraph controls whether CalcMaxFlow mutates g directly (false) or
// a deep clone (true, the default), so a caller can run a non-destructive
// computation against a graph it still needs afterward.
func WithCopyGraph(enabled bool) Option { return func(c *config) { c.copyGraph = enabled } }

// WithTolerance sets the numeric epsilon below which an augmentation or a
// residual capacity is treated as zero.
func WithTolerance(t float64) Option { return func(c *config) { c.tolerance = t } }

// WithReturnSummary requests a FlowSummary alongside total_flow.
func WithReturnSummary(enabled bool) Option { return func(c *config) { c.returnSummary = enabled } }

// WithReturnGraph requests the mutated flow graph alongside total_flow.
func WithReturnGraph(enabled bool) Option { return func(c *config) { c.returnGraph = enabled } }

// FlowSummary is the immutable output of one CalcMaxFlow call.
type FlowSummary struct {
	TotalFlow float64
	// EdgeFlow maps edge id to the absolute flow it carries.
	EdgeFlow map[int64]float64
	// EdgeResidual maps edge id to its remaining capacity-flow.
	EdgeResidual map[int64]float64
	// ReachableFromSrc is the residual-network reachable set from src,
	// considering both forward residual (capacity-flow) and reverse
	// residual (flow).
	ReachableFromSrc map[string]struct{}
	// MinCutEdges lists every edge (u,v) with u reachable, v unreachable,
	// and residual <= tolerance.
	MinCutEdges []int64
	// CostDistribution maps the SPF cost at which an augmentation
	// occurred to the total flow volume placed at that cost.
	CostDistribution map[float64]float64
}
