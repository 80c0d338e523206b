// File: drivers.go
// Role: the three convenience Monte-Carlo drivers: thin wrappers over
// RunMonteCarloAnalysis that supply the analysis function and aggregate
// outcomes into a CapacityEnvelope.
package failure

import (
	"context"
	"fmt"

	"github.com/networmix/netgraph-go/demand"
	"github.com/networmix/netgraph-go/maxflow"
	"github.com/networmix/netgraph-go/network"
	"github.com/networmix/netgraph-go/results"
)

// RunMaxFlowMonteCarlo runs CalcMaxFlow(src, dst) over every unique
// exclusion pattern and aggregates total_flow into a CapacityEnvelope.
func (m *FailureManager) RunMaxFlowMonteCarlo(ctx context.Context, src, dst string, opts MonteCarloOptions, maxflowOpts ...maxflow.Option) (*results.CapacityEnvelope, []PatternRecord, error) {
	if opts.AnalysisTag == "" {
		opts.AnalysisTag = "max_flow"
	}
	opts.StoreFailurePatterns = true

	fn := func(view *network.NetworkView) (interface{}, error) {
		g, err := view.WorkingGraph(false, false)
		if err != nil {
			return nil, err
		}
		total, _, _, err := maxflow.CalcMaxFlow(g, src, dst, maxflowOpts...)
		if err != nil {
			return nil, err
		}
		return total, nil
	}

	iterResults, patterns, err := m.RunMonteCarloAnalysis(ctx, fn, opts)
	if err != nil {
		return nil, nil, err
	}

	samples := make([]float64, len(iterResults))
	for i, r := range iterResults {
		f, ok := r.Result.(float64)
		if !ok {
			return nil, nil, fmt.Errorf("failure: %w: max-flow analysis produced a non-float64 result", ErrInvalidArgument)
		}
		samples[i] = f
	}
	envelope := results.NewCapacityEnvelope(src, dst, "combine", samples)
	return envelope, patterns, nil
}

// RunDemandPlacementMonteCarlo places every spec through a fresh
// demand.Manager per iteration view and aggregates total placed volume
// into a CapacityEnvelope.
func (m *FailureManager) RunDemandPlacementMonteCarlo(ctx context.Context, specs []demand.TrafficDemandSpec, placeOpts demand.PlaceOptions, opts MonteCarloOptions) (*results.CapacityEnvelope, []PatternRecord, error) {
	if opts.AnalysisTag == "" {
		opts.AnalysisTag = "demand_placement"
	}
	opts.StoreFailurePatterns = true

	fn := func(view *network.NetworkView) (interface{}, error) {
		g, err := view.WorkingGraph(false, false)
		if err != nil {
			return nil, err
		}
		g.EnsureFlowState(true)

		mgr := demand.NewManager(g)
		if err := mgr.Expand(view, specs); err != nil {
			return nil, err
		}
		placed, err := mgr.PlaceAll(placeOpts)
		if err != nil {
			return nil, err
		}
		return placed, nil
	}

	iterResults, patterns, err := m.RunMonteCarloAnalysis(ctx, fn, opts)
	if err != nil {
		return nil, nil, err
	}

	samples := make([]float64, len(iterResults))
	for i, r := range iterResults {
		f, ok := r.Result.(float64)
		if !ok {
			return nil, nil, fmt.Errorf("failure: %w: demand placement analysis produced a non-float64 result", ErrInvalidArgument)
		}
		samples[i] = f
	}
	envelope := results.NewCapacityEnvelope("", "", "demand_placement", samples)
	return envelope, patterns, nil
}

// RunSensitivityMonteCarlo runs RunSensitivity(src, dst, change) per
// unique exclusion pattern and returns the raw per-edge delta maps
// alongside the pattern records (no single scalar CapacityEnvelope
// applies to a per-edge result).
func (m *FailureManager) RunSensitivityMonteCarlo(ctx context.Context, src, dst string, change float64, opts MonteCarloOptions, maxflowOpts ...maxflow.Option) ([]map[int64]float64, []PatternRecord, error) {
	if opts.AnalysisTag == "" {
		opts.AnalysisTag = "sensitivity"
	}
	opts.StoreFailurePatterns = true

	fn := func(view *network.NetworkView) (interface{}, error) {
		g, err := view.WorkingGraph(false, false)
		if err != nil {
			return nil, err
		}
		return maxflow.RunSensitivity(g, src, dst, change, maxflowOpts...)
	}

	iterResults, patterns, err := m.RunMonteCarloAnalysis(ctx, fn, opts)
	if err != nil {
		return nil, nil, err
	}

	out := make([]map[int64]float64, len(iterResults))
	for i, r := range iterResults {
		deltas, ok := r.Result.(map[int64]float64)
		if !ok {
			return nil, nil, fmt.Errorf("failure: %w: sensitivity analysis produced an unexpected result type", ErrInvalidArgument)
		}
		out[i] = deltas
	}
	return out, patterns, nil
}
