package failure_test

import (
	"context"
	"testing"

	"github.com/networmix/netgraph-go/failure"
	"github.com/networmix/netgraph-go/network"
	"github.com/stretchr/testify/require"
)

func buildLinearNetwork(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, n.AddNode(name, nil))
	}
	_, err := n.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)
	_, err = n.AddLink("B", "C", 5, 1, nil)
	require.NoError(t, err)
	return n
}

func TestRunMonteCarloAnalysis_NoRulesRequiresBaselineOrSingleIteration(t *testing.T) {
	n := buildLinearNetwork(t)
	policy := failure.NewFailurePolicy("empty")
	mgr := failure.NewFailureManager(n, policy)

	_, _, err := mgr.RunMonteCarloAnalysis(context.Background(), func(v *network.NetworkView) (interface{}, error) {
		return 1.0, nil
	}, failure.MonteCarloOptions{Iterations: 3})
	require.Error(t, err)

	results, _, err := mgr.RunMonteCarloAnalysis(context.Background(), func(v *network.NetworkView) (interface{}, error) {
		return 1.0, nil
	}, failure.MonteCarloOptions{Iterations: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestRunMonteCarloAnalysis_DedupesByExclusionSet(t *testing.T) {
	n := buildLinearNetwork(t)
	policy := failure.NewFailurePolicy("fixed-node").WithRule(failure.FailureRule{
		EntityScope: failure.ScopeNode,
		Conditions:  []failure.FailureCondition{{Attr: "__never__", Operator: failure.OpNoValue}},
		RuleType:    failure.RuleAll,
	})
	mgr := failure.NewFailureManager(n, policy)

	var calls int
	results, patterns, err := mgr.RunMonteCarloAnalysis(context.Background(), func(v *network.NetworkView) (interface{}, error) {
		calls++
		return float64(len(v.VisibleNodes())), nil
	}, failure.MonteCarloOptions{Iterations: 5, Seed: ptrU64(7), AnalysisTag: "t"})
	require.NoError(t, err)
	require.Len(t, results, 5)
	// Every node always matches __never__'s no_value condition, so every
	// iteration excludes the same (all-nodes) set: one unique group.
	require.Equal(t, 1, calls)
	require.Nil(t, patterns) // StoreFailurePatterns not requested
}

func TestRunMonteCarloAnalysis_BaselineIsEmptyExclusion(t *testing.T) {
	n := buildLinearNetwork(t)
	policy := failure.NewFailurePolicy("choice-one").WithRule(failure.FailureRule{
		EntityScope: failure.ScopeNode,
		RuleType:    failure.RuleChoice,
		Count:       1,
	})
	mgr := failure.NewFailureManager(n, policy)

	results, _, err := mgr.RunMonteCarloAnalysis(context.Background(), func(v *network.NetworkView) (interface{}, error) {
		return float64(len(v.VisibleNodes())), nil
	}, failure.MonteCarloOptions{Iterations: 2, Baseline: true, Seed: ptrU64(1), AnalysisTag: "t"})
	require.NoError(t, err)
	require.True(t, results[0].IsBaseline)
	require.Equal(t, 3.0, results[0].Result)
	require.Empty(t, results[0].ExcludedNodes)
}

func TestRunMaxFlowMonteCarlo_ProducesEnvelope(t *testing.T) {
	n := buildLinearNetwork(t)
	policy := failure.NewFailurePolicy("none")
	mgr := failure.NewFailureManager(n, policy)

	env, patterns, err := mgr.RunMaxFlowMonteCarlo(context.Background(), "A", "C",
		failure.MonteCarloOptions{Iterations: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), env.TotalSamples)
	require.Equal(t, 5.0, env.MeanCapacity)
	require.Len(t, patterns, 1)
}

func ptrU64(v uint64) *uint64 { return &v }
