// File: manager.go
// Role: FailureManager: ComputeExclusions, CreateNetworkView, and
// RunMonteCarloAnalysis's exclusion-set deduplication over a bounded
// worker pool.
//
// Parallel iterations run through golang.org/x/sync/errgroup, which gives
// bounded concurrency with first-error propagation and context
// cancellation for free.
package failure

import (
	"context"
	"sort"
	"strings"

	"github.com/networmix/netgraph-go/network"
	"github.com/networmix/netgraph-go/seed"
	"golang.org/x/sync/errgroup"
)

// AnalysisFunc is one Monte-Carlo iteration's unit of work: it receives a
// NetworkView built from that iteration's exclusion set and returns an
// arbitrary result.
type AnalysisFunc func(view *network.NetworkView) (interface{}, error)

// MonteCarloOptions configures RunMonteCarloAnalysis.
type MonteCarloOptions struct {
	Iterations  int
	Parallelism int
	Baseline    bool
	// Seed is the master seed passed to seed.DeriveIteration per
	// iteration; nil means non-deterministic mode.
	Seed *uint64
	// AnalysisTag identifies this analysis kind for seed derivation:
	// derive(masterSeed, analysisTag, iterationIndex).
	AnalysisTag          string
	StoreFailurePatterns bool
}

// IterationResult is one iteration's outcome. Iterations run concurrently
// but the manager re-assembles results into original iteration order
// before returning them.
type IterationResult struct {
	Index         int
	Result        interface{}
	ExcludedNodes []string
	ExcludedLinks []string
	IsBaseline    bool
}

// PatternRecord is one deduplicated exclusion pattern's replicated
// outcome. The convenience drivers (RunMaxFlowMonteCarlo,
// RunDemandPlacementMonteCarlo, RunSensitivityMonteCarlo) return these
// records as they are.
type PatternRecord struct {
	ExcludedNodes []string
	ExcludedLinks []string
	Result        interface{}
	Count         int
	IsBaseline    bool
}

// FailureManager orchestrates Monte-Carlo analysis over one immutable base
// Network with one FailurePolicy.
type FailureManager struct {
	net    *network.Network
	policy *FailurePolicy
}

// NewFailureManager binds a manager to its base network and policy.
func NewFailureManager(net *network.Network, policy *FailurePolicy) *FailureManager {
	return &FailureManager{net: net, policy: policy}
}

// ComputeExclusions applies the active policy once (or override if non-nil)
// and returns the resulting exclusion sets.
func (m *FailureManager) ComputeExclusions(override *FailurePolicy, iterationSeed *uint64) (excludedNodes, excludedLinks []string, err error) {
	p := m.policy
	if override != nil {
		p = override
	}
	return p.ApplyFailures(m.net.Nodes(), m.net.Links(), m.net.RiskGroups(), iterationSeed)
}

// CreateNetworkView builds a NetworkView over the base network restricted
// by the given exclusion sets.
func (m *FailureManager) CreateNetworkView(excludedNodes, excludedLinks []string) *network.NetworkView {
	return network.FromExcludedSets(m.net, excludedNodes, excludedLinks)
}

func groupKeyOf(excludedNodes, excludedLinks []string) string {
	n := append([]string(nil), excludedNodes...)
	l := append([]string(nil), excludedLinks...)
	sort.Strings(n)
	sort.Strings(l)
	return strings.Join(n, ",") + "||" + strings.Join(l, ",")
}

// RunMonteCarloAnalysis executes fn across opts.Iterations, deduplicating
// iterations that share the same exclusion set so total work is
// |unique groups|, not Iterations.
func (m *FailureManager) RunMonteCarloAnalysis(ctx context.Context, fn AnalysisFunc, opts MonteCarloOptions) ([]IterationResult, []PatternRecord, error) {
	hasRules := len(m.policy.Rules) > 0
	if !hasRules {
		if !opts.Baseline && opts.Iterations != 1 {
			return nil, nil, errMonteCarloConfig("with no effective failure rules, baseline must be true or iterations must equal 1")
		}
	}
	if opts.Baseline && opts.Iterations < 2 {
		return nil, nil, errMonteCarloConfig("baseline requires iterations >= 2")
	}
	if opts.Iterations <= 0 {
		return nil, nil, errMonteCarloConfig("iterations must be positive")
	}

	type iterInfo struct {
		index         int
		isBaseline    bool
		excludedNodes []string
		excludedLinks []string
		key           string
	}
	iters := make([]iterInfo, opts.Iterations)

	for i := 0; i < opts.Iterations; i++ {
		isBaseline := opts.Baseline && i == 0
		info := iterInfo{index: i, isBaseline: isBaseline}
		if !isBaseline {
			iterSeed := seed.DeriveIteration(opts.Seed, opts.AnalysisTag, i)
			excludedNodes, excludedLinks, err := m.ComputeExclusions(m.policy, iterSeed)
			if err != nil {
				return nil, nil, err
			}
			info.excludedNodes, info.excludedLinks = excludedNodes, excludedLinks
		}
		info.key = groupKeyOf(info.excludedNodes, info.excludedLinks)
		iters[i] = info
	}

	type group struct {
		excludedNodes []string
		excludedLinks []string
		isBaseline    bool
		members       []int
		result        interface{}
	}
	groups := map[string]*group{}
	var order []string
	for _, it := range iters {
		g, ok := groups[it.key]
		if !ok {
			g = &group{excludedNodes: it.excludedNodes, excludedLinks: it.excludedLinks, isBaseline: it.isBaseline}
			groups[it.key] = g
			order = append(order, it.key)
		}
		g.members = append(g.members, it.index)
		// A baseline iteration's empty-key group may also be reached by a
		// non-baseline iteration whose policy happened to select nothing;
		// once any member is the true baseline, preserve that flag.
		if it.isBaseline {
			g.isBaseline = true
		}
	}

	parallelism := opts.Parallelism
	if parallelism <= 1 {
		for _, key := range order {
			g := groups[key]
			view := m.CreateNetworkView(g.excludedNodes, g.excludedLinks)
			res, err := fn(view)
			if err != nil {
				return nil, nil, err
			}
			g.result = res
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(parallelism)
		for _, key := range order {
			key := key
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				g := groups[key]
				view := m.CreateNetworkView(g.excludedNodes, g.excludedLinks)
				res, err := fn(view)
				if err != nil {
					return err
				}
				g.result = res
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, nil, err
		}
	}

	results := make([]IterationResult, opts.Iterations)
	for _, key := range order {
		g := groups[key]
		for _, idx := range g.members {
			results[idx] = IterationResult{
				Index:         idx,
				Result:        g.result,
				ExcludedNodes: g.excludedNodes,
				ExcludedLinks: g.excludedLinks,
				IsBaseline:    g.isBaseline,
			}
		}
	}

	var patterns []PatternRecord
	if opts.StoreFailurePatterns {
		patterns = make([]PatternRecord, 0, len(order))
		for _, key := range order {
			g := groups[key]
			patterns = append(patterns, PatternRecord{
				ExcludedNodes: g.excludedNodes,
				ExcludedLinks: g.excludedLinks,
				Result:        g.result,
				Count:         len(g.members),
				IsBaseline:    g.isBaseline,
			})
		}
	}

	return results, patterns, nil
}
