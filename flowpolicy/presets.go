// File: presets.go
// Role: named FlowPolicy presets, each a thin wrapper over New with a
// fixed set of Options describing one routing style (strict
// shortest-path, ECMP, TE-style multipath). Exact preset names are an
// API-compatibility concern, not a behavioral one; the behavior each
// preset fixes is the Option list below it.
package flowpolicy

import (
	"github.com/networmix/netgraph-go/capacity"
	"github.com/networmix/netgraph-go/spf"
)

// NewShortestPath returns the strict single-path preset: one flow,
// single-augmentation placement, no multipath fan-out. Extra Options
// override the defaults below.
func NewShortestPath(opts ...Option) *FlowPolicy {
	base := []Option{
		WithPathAlg(SPFAlg),
		WithEdgeSelect(spf.SingleMinCostWithCapRemaining{}),
		WithMinFlowCount(1),
		WithMaxFlowCount(1),
		WithShortestPath(true),
	}
	return New(append(base, opts...)...)
}

// NewECMP returns the IP-forwarding-with-ECMP preset: equal-cost
// multipath, PROPORTIONAL placement across parallel equal-cost edges,
// single flow object fanning out over every SPF-selected path.
func NewECMP(opts ...Option) *FlowPolicy {
	base := []Option{
		WithPathAlg(SPFAlg),
		WithEdgeSelect(spf.AllMinCostWithCapRemaining{}),
		WithFlowPlacement(capacity.Proportional),
		WithMinFlowCount(1),
		WithMaxFlowCount(1),
	}
	return New(append(base, opts...)...)
}

// NewUCMP returns the IP-with-UCMP preset: equal-cost multipath with
// EQUAL_BALANCED placement (unequal-cost-multipath-style balancing across
// parallel members irrespective of residual capacity weighting).
func NewUCMP(opts ...Option) *FlowPolicy {
	base := []Option{
		WithPathAlg(SPFAlg),
		WithEdgeSelect(spf.AllMinCostWithCapRemaining{}),
		WithFlowPlacement(capacity.EqualBalanced),
		WithMinFlowCount(1),
		WithMaxFlowCount(1),
	}
	return New(append(base, opts...)...)
}

// NewTEWCMP returns the MPLS-like traffic-engineered weighted-multipath
// preset: K shortest paths via Yen's algorithm, one flow per discovered
// path, reoptimized on each placement round so later flows can still
// shift volume off newly-saturated earlier ones.
func NewTEWCMP(minPaths, maxPaths int, opts ...Option) *FlowPolicy {
	base := []Option{
		WithPathAlg(KSPYens),
		WithEdgeSelect(spf.AllMinCostWithCapRemaining{}),
		WithFlowPlacement(capacity.Proportional),
		WithMinFlowCount(minPaths),
		WithMaxFlowCount(maxPaths),
		WithReoptimizeOnEachPlacement(true),
	}
	return New(append(base, opts...)...)
}
