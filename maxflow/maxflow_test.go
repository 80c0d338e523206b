package maxflow_test

import (
	"testing"

	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/maxflow"
	"github.com/networmix/netgraph-go/network"
	"github.com/stretchr/testify/require"
)

// diamond builds A-B-D and A-C-D, equal cost and capacity, so max-flow
// should saturate both paths.
func diamond(t *testing.T, capAB, capBD, capAC, capCD float64) *digraph.Graph {
	t.Helper()
	g := digraph.New()
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddNode(n, nil))
	}
	_, err := g.AddEdge("A", "B", -1, 1, capAB, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "D", -1, 1, capBD, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "C", -1, 1, capAC, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("C", "D", -1, 1, capCD, nil)
	require.NoError(t, err)
	return g
}

func TestCalcMaxFlowSaturatesBothPaths(t *testing.T) {
	g := diamond(t, 10, 10, 10, 10)
	total, _, _, err := maxflow.CalcMaxFlow(g, "A", "D")
	require.NoError(t, err)
	require.Equal(t, 20.0, total)
}

func TestCalcMaxFlowDoesNotMutateOriginalByDefault(t *testing.T) {
	g := diamond(t, 10, 10, 10, 10)
	_, _, _, err := maxflow.CalcMaxFlow(g, "A", "D")
	require.NoError(t, err)
	e, err := g.GetEdgeData(g.EdgesBetween("A", "B")[0])
	require.NoError(t, err)
	require.Equal(t, 0.0, e.Flow)
}

func TestCalcMaxFlowShortestPathStopsAfterFirstAugmentation(t *testing.T) {
	g := diamond(t, 10, 10, 10, 10)
	total, _, _, err := maxflow.CalcMaxFlow(g, "A", "D", maxflow.WithShortestPath(true))
	require.NoError(t, err)
	require.Equal(t, 10.0, total)
}

func TestCalcMaxFlowSummaryReportsMinCut(t *testing.T) {
	g := diamond(t, 5, 5, 5, 5)
	_, summary, _, err := maxflow.CalcMaxFlow(g, "A", "D", maxflow.WithReturnSummary(true))
	require.NoError(t, err)
	require.Equal(t, 10.0, summary.TotalFlow)
	require.NotEmpty(t, summary.MinCutEdges)
}

func TestSaturatedEdgesListsAllBottlenecks(t *testing.T) {
	g := diamond(t, 10, 2, 10, 10)
	ids, err := maxflow.SaturatedEdges(g, "A", "D")
	require.NoError(t, err)
	require.NotEmpty(t, ids)
}

func TestRunSensitivityReflectsCapacityIncrease(t *testing.T) {
	g := diamond(t, 10, 2, 10, 10)
	deltas, err := maxflow.RunSensitivity(g, "A", "D", 1)
	require.NoError(t, err)
	require.NotEmpty(t, deltas)
	for _, d := range deltas {
		require.GreaterOrEqual(t, d, 0.0)
	}
}

func TestGroupMaxFlowCombineUsesPseudoNodes(t *testing.T) {
	n := network.New()
	for _, name := range []string{"s1", "s2", "t1", "mid"} {
		require.NoError(t, n.AddNode(name, nil))
	}
	_, err := n.AddLink("s1", "mid", 5, 1, nil)
	require.NoError(t, err)
	_, err = n.AddLink("s2", "mid", 5, 1, nil)
	require.NoError(t, err)
	_, err = n.AddLink("mid", "t1", 100, 1, nil)
	require.NoError(t, err)

	view := network.FromExcludedSets(n, nil, nil)
	results, err := maxflow.MaxFlow(view, "s.*", "t.*", maxflow.Combine)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 10.0, results[0].TotalFlow)
}

func TestGroupMaxFlowNeverMutatesView(t *testing.T) {
	n := network.New()
	for _, name := range []string{"s1", "t1"} {
		require.NoError(t, n.AddNode(name, nil))
	}
	_, err := n.AddLink("s1", "t1", 5, 1, nil)
	require.NoError(t, err)

	view := network.FromExcludedSets(n, nil, nil)
	g1, err := view.WorkingGraph(false, false)
	require.NoError(t, err)

	_, err = maxflow.MaxFlow(view, "s1", "t1", maxflow.Combine)
	require.NoError(t, err)

	require.False(t, g1.HasNode("__pseudo_src__:1"))
	e, err := g1.GetEdgeData(g1.EdgesBetween("s1", "t1")[0])
	require.NoError(t, err)
	require.Equal(t, 0.0, e.Flow)
}
