package failure_test

import (
	"testing"

	"github.com/networmix/netgraph-go/failure"
	"github.com/networmix/netgraph-go/network"
	"github.com/stretchr/testify/require"
)

func buildRiskGroupNetwork(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddNode("A", map[string]interface{}{"role": "spine"}))
	require.NoError(t, n.AddNode("B", map[string]interface{}{"role": "leaf"}))
	require.NoError(t, n.AddNode("C", map[string]interface{}{"role": "leaf"}))
	l, err := n.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)
	require.NoError(t, n.AddRiskGroup("rack1", "", nil))
	require.NoError(t, n.AddRiskGroup("rack1-psu", "rack1", nil))
	require.NoError(t, n.TagNodeRiskGroup("A", "rack1"))
	require.NoError(t, n.TagLinkRiskGroup(l.ID, "rack1-psu"))
	require.NoError(t, n.TagNodeRiskGroup("C", "rack1-psu"))
	return n
}

func TestApplyFailures_AllRule(t *testing.T) {
	n := buildRiskGroupNetwork(t)
	policy := failure.NewFailurePolicy("spine-all").WithRule(failure.FailureRule{
		EntityScope: failure.ScopeNode,
		Conditions:  []failure.FailureCondition{{Attr: "role", Operator: failure.OpEQ, Value: "spine"}},
		RuleType:    failure.RuleAll,
	})

	nodes, links, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, nodes)
	require.Empty(t, links)
}

func TestApplyFailures_RiskGroupCascade(t *testing.T) {
	n := buildRiskGroupNetwork(t)
	policy := failure.NewFailurePolicy("rack-cascade").
		WithRule(failure.FailureRule{
			EntityScope: failure.ScopeNode,
			Conditions:  []failure.FailureCondition{{Attr: "role", Operator: failure.OpEQ, Value: "spine"}},
			RuleType:    failure.RuleAll,
		}).
		WithRiskGroupCascade(true, true)

	nodes, links, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), nil)
	require.NoError(t, err)
	// A is in rack1; rack1's child rack1-psu also cascades, bringing in
	// the link (tagged rack1-psu) and node C (tagged rack1-psu).
	require.ElementsMatch(t, []string{"A", "C"}, nodes)
	require.NotEmpty(t, links)
}

func TestApplyFailures_ChoiceIsSeeded(t *testing.T) {
	n := buildRiskGroupNetwork(t)
	policy := failure.NewFailurePolicy("choice").WithRule(failure.FailureRule{
		EntityScope: failure.ScopeNode,
		RuleType:    failure.RuleChoice,
		Count:       1,
	})

	s := uint64(42)
	nodes1, _, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), &s)
	require.NoError(t, err)
	nodes2, _, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), &s)
	require.NoError(t, err)
	require.Equal(t, nodes1, nodes2)
	require.Len(t, nodes1, 1)
}

func TestApplyFailures_MatchCacheReused(t *testing.T) {
	n := buildRiskGroupNetwork(t)
	policy := failure.NewFailurePolicy("cached").WithRule(failure.FailureRule{
		EntityScope: failure.ScopeNode,
		Conditions:  []failure.FailureCondition{{Attr: "role", Operator: failure.OpEQ, Value: "leaf"}},
		RuleType:    failure.RuleAll,
	})
	require.True(t, policy.UseCache)

	nodes1, _, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), nil)
	require.NoError(t, err)
	nodes2, _, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), nil)
	require.NoError(t, err)
	require.Equal(t, nodes1, nodes2)

	policy.InvalidateCache()
	nodes3, _, err := policy.ApplyFailures(n.Nodes(), n.Links(), n.RiskGroups(), nil)
	require.NoError(t, err)
	require.Equal(t, nodes1, nodes3)
}
