package flowpolicy_test

import (
	"testing"

	"github.com/networmix/netgraph-go/capacity"
	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/flowpolicy"
	"github.com/stretchr/testify/require"
)

func diamond(t *testing.T) *digraph.Graph {
	t.Helper()
	g := digraph.New()
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddNode(n, nil))
	}
	_, err := g.AddEdge("A", "B", -1, 1, 10, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "C", -1, 1, 10, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "D", -1, 1, 10, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("C", "D", -1, 1, 10, nil)
	require.NoError(t, err)
	g.EnsureFlowState(true)
	return g
}

func TestNewShortestPath_PlacesOnce(t *testing.T) {
	g := diamond(t)
	p := flowpolicy.NewShortestPath()
	placed, remaining, err := p.PlaceDemand(g, "A", "D", 0, 20)
	require.NoError(t, err)
	require.Equal(t, 10.0, placed)
	require.Equal(t, 10.0, remaining)
}

func TestNewECMP_SaturatesBothPaths(t *testing.T) {
	g := diamond(t)
	p := flowpolicy.NewECMP()
	placed, remaining, err := p.PlaceDemand(g, "A", "D", 0, 20)
	require.NoError(t, err)
	require.InDelta(t, 20.0, placed, 1e-6)
	require.InDelta(t, 0.0, remaining, 1e-6)
}

func TestNewTEWCMP_UsesMultiplePaths(t *testing.T) {
	g := diamond(t)
	p := flowpolicy.NewTEWCMP(2, 2)
	placed, _, err := p.PlaceDemand(g, "A", "D", 0, 20)
	require.NoError(t, err)
	require.InDelta(t, 20.0, placed, 1e-6)
	require.Len(t, p.Flows(), 2)
}

func TestNewUCMP_UsesEqualBalanced(t *testing.T) {
	p := flowpolicy.NewUCMP()
	require.NotNil(t, p)

	// Two parallel A->B edges of capacity 3 and 7: an equal split across
	// them is bounded by the smaller edge, so only 3+3 is placed, where a
	// proportional split would place all 10.
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	_, err := g.AddEdge("A", "B", -1, 1, 3, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", -1, 1, 7, nil)
	require.NoError(t, err)
	g.EnsureFlowState(true)

	placed, _, err := p.PlaceDemand(g, "A", "B", 0, 20)
	require.NoError(t, err)
	require.InDelta(t, 6.0, placed, 1e-9)
	_ = capacity.EqualBalanced
}
