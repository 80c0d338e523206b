package digraph_test

import (
	"errors"
	"testing"

	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/ngerr"
	"github.com/stretchr/testify/require"
)

func TestAddNodeDuplicate(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	err := g.AddNode("A", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ngerr.ErrDuplicateEntity))
}

func TestRemoveNodeRemovesIncidentEdges(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	require.NoError(t, g.AddNode("C", nil))
	_, err := g.AddEdge("A", "B", -1, 1, 10, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "C", -1, 1, 10, nil)
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode("B"))
	require.Equal(t, 0, g.EdgeCount())
	require.False(t, g.HasNode("B"))
}

func TestRemoveNodeUnknown(t *testing.T) {
	g := digraph.New()
	err := g.RemoveNode("nope")
	require.True(t, errors.Is(err, ngerr.ErrUnknownEntity))
}

func TestRemoveThenReAddFreshIdentity(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddNode("A", map[string]interface{}{"x": 1}))
	require.NoError(t, g.RemoveNode("A"))
	require.NoError(t, g.AddNode("A", nil))
	nd, err := g.GetNodeData("A")
	require.NoError(t, err)
	require.Nil(t, nd.Attrs)
}

func TestNodesSortedOrder(t *testing.T) {
	g := digraph.New()
	for _, n := range []string{"C", "A", "B"} {
		require.NoError(t, g.AddNode(n, nil))
	}
	require.Equal(t, []string{"A", "B", "C"}, g.Nodes())
}
