package network_test

import (
	"testing"

	"github.com/networmix/netgraph-go/network"
	"github.com/stretchr/testify/require"
)

func diamond(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, n.AddNode(name, nil))
	}
	_, err := n.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)
	_, err = n.AddLink("A", "C", 10, 1, nil)
	require.NoError(t, err)
	_, err = n.AddLink("B", "D", 10, 1, nil)
	require.NoError(t, err)
	_, err = n.AddLink("C", "D", 10, 1, nil)
	require.NoError(t, err)
	return n
}

func TestViewExcludesNodeAndIncidentLinks(t *testing.T) {
	n := diamond(t)
	v := network.FromExcludedSets(n, []string{"B"}, nil)
	g, err := v.WorkingGraph(false, false)
	require.NoError(t, err)

	require.True(t, g.HasNode("A"))
	require.False(t, g.HasNode("B"))
	require.True(t, g.HasNode("C"))
	require.True(t, g.HasNode("D"))
	// A->B and B->D must be gone since B is hidden.
	require.Empty(t, g.EdgesBetween("A", "B"))
	require.Empty(t, g.EdgesBetween("B", "D"))
	require.NotEmpty(t, g.EdgesBetween("A", "C"))
}

func TestViewCachePerParamTuple(t *testing.T) {
	n := diamond(t)
	v := network.FromExcludedSets(n, nil, nil)
	g1, err := v.WorkingGraph(false, false)
	require.NoError(t, err)
	g2, err := v.WorkingGraph(false, false)
	require.NoError(t, err)
	require.Same(t, g1, g2)

	g3, err := v.WorkingGraph(true, false)
	require.NoError(t, err)
	require.NotSame(t, g1, g3)
	// reverse variant must have twice the edges
	require.Equal(t, g1.EdgeCount()*2, g3.EdgeCount())
}

func TestViewDoesNotMutateBase(t *testing.T) {
	n := diamond(t)
	v := network.FromExcludedSets(n, []string{"B"}, nil)
	_, err := v.WorkingGraph(false, false)
	require.NoError(t, err)

	nd, err := n.GetNode("B")
	require.NoError(t, err)
	require.False(t, nd.Disabled)
	require.Len(t, n.Links(), 4)
}

func TestSelectNodeGroupsByPathRegexCaptures(t *testing.T) {
	n := network.New()
	for _, name := range []string{"east-a1", "east-a2", "west-b1"} {
		require.NoError(t, n.AddNode(name, nil))
	}
	groups, err := network.SelectNodeGroupsByPath(n, `(east|west)-\w+`)
	require.NoError(t, err)
	require.Equal(t, []string{"east", "west"}, groups.Labels())
	require.Len(t, groups.Members("east"), 2)
	require.Len(t, groups.Members("west"), 1)
}

func TestSelectNodeGroupsByPathAttr(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddNode("a", map[string]interface{}{"region": "us"}))
	require.NoError(t, n.AddNode("b", map[string]interface{}{"region": "eu"}))
	require.NoError(t, n.AddNode("c", nil))
	groups, err := network.SelectNodeGroupsByPath(n, "attr:region")
	require.NoError(t, err)
	require.Equal(t, 2, groups.Len())
}
