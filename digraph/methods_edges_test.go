package digraph_test

import (
	"errors"
	"testing"

	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/ngerr"
	"github.com/stretchr/testify/require"
)

func newAB(t *testing.T) *digraph.Graph {
	t.Helper()
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	return g
}

func TestAddEdgeUnknownEndpoint(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	_, err := g.AddEdge("A", "missing", -1, 1, 1, nil)
	require.True(t, errors.Is(err, ngerr.ErrUnknownEntity))
}

func TestAddEdgeMonotonicIDsNeverRecycled(t *testing.T) {
	g := newAB(t)
	id1, err := g.AddEdge("A", "B", -1, 1, 1, nil)
	require.NoError(t, err)
	id2, err := g.AddEdge("A", "B", -1, 1, 1, nil)
	require.NoError(t, err)
	require.Less(t, id1, id2)

	require.NoError(t, g.RemoveEdgeByID(id1))
	id3, err := g.AddEdge("A", "B", -1, 1, 1, nil)
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)
	require.Greater(t, id3, id2)
}

func TestAddEdgeExplicitKeyDuplicate(t *testing.T) {
	g := newAB(t)
	_, err := g.AddEdge("A", "B", 5, 1, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", 5, 1, 1, nil)
	require.True(t, errors.Is(err, ngerr.ErrDuplicateEntity))
}

func TestEdgesBetweenEmpty(t *testing.T) {
	g := newAB(t)
	require.Empty(t, g.EdgesBetween("A", "B"))
}

func TestCloneIndependentAndContinuesIDSequence(t *testing.T) {
	g := newAB(t)
	id, err := g.AddEdge("A", "B", -1, 2, 10, map[string]interface{}{"k": "v"})
	require.NoError(t, err)

	clone := g.Clone()
	e, err := clone.GetEdgeData(id)
	require.NoError(t, err)
	e.Capacity = 999

	orig, err := g.GetEdgeData(id)
	require.NoError(t, err)
	require.Equal(t, 10.0, orig.Capacity)

	// clone continues the same id sequence
	nid, err := clone.AddEdge("A", "B", -1, 1, 1, nil)
	require.NoError(t, err)
	require.Greater(t, nid, id)
}

func TestEdgesSortedOrder(t *testing.T) {
	g := newAB(t)
	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := g.AddEdge("A", "B", -1, 1, 1, nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.Equal(t, ids, g.Edges())
}
