// File: types.go
// Role: functional-options config for SPF plus the PathBundle result
// type used by ResolveToPaths.
package spf

// config collects SPF's resolved parameters. Built only through Option
// values returned by the With* constructors below.
type config struct {
	selector      EdgeSelector
	multipath     bool
	dst           string
	hasDst        bool
	excludedEdges map[int64]struct{}
	excludedNodes map[string]struct{}
}

func defaultConfig() *config {
	return &config{
		selector:      AllMinCost{},
		excludedEdges: map[int64]struct{}{},
		excludedNodes: map[string]struct{}{},
	}
}

// Option configures a call to SPF.
type Option func(*config)

// WithEdgeSelect overrides the default AllMinCost edge-selection policy.
func WithEdgeSelect(sel EdgeSelector) Option {
	return func(c *config) { c.selector = sel }
}

// WithMultipath records every equally-reachable predecessor edge set
// instead of only the first one discovered, enabling ECMP-style downstream
// path enumeration.
func WithMultipath(enabled bool) Option {
	return func(c *config) { c.multipath = enabled }
}

// WithDst limits the run to reaching dst: dst itself is not expanded, and
// once dst is finalized the run stops at the first popped node whose
// distance exceeds dst's, so nodes popped at dst's distance are still
// processed and can add equal-cost predecessors to dst.
func WithDst(dst string) Option {
	return func(c *config) { c.dst = dst; c.hasDst = true }
}

// WithExcludedEdges removes the given edge ids from consideration.
func WithExcludedEdges(ids ...int64) Option {
	return func(c *config) {
		for _, id := range ids {
			c.excludedEdges[id] = struct{}{}
		}
	}
}

// WithExcludedNodes removes the given nodes (and their incident edges) from
// consideration.
func WithExcludedNodes(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.excludedNodes[n] = struct{}{}
		}
	}
}

// PathTuple is one concrete source-to-destination path: the ordered node
// sequence and the parallel edge id chosen at each hop.
type PathTuple struct {
	Nodes []string
	Edges []int64
	Cost  float64
}

// PathBundle is the materialized result of resolving a predecessor DAG
// into concrete paths: every field here is computed eagerly by
// ResolveToPaths, never derived on access.
type PathBundle struct {
	Paths []PathTuple
}
