package capacity_test

import (
	"testing"

	"github.com/networmix/netgraph-go/capacity"
	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/spf"
	"github.com/stretchr/testify/require"
)

// diamond builds A-B-C-D with two equal-cost, equal-capacity parallel
// paths so both placement policies should split flow 50/50.
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

func spfPred(t *testing.T, g *digraph.Graph) capacity.Pred {
	t.Helper()
	res, err := spf.SPF(g, "A", spf.WithMultipath(true))
	require.NoError(t, err)
	return capacity.Pred(res.Pred)
}

func TestCalcGraphCapacityProportionalEvenSplit(t *testing.T) {
	g := diamond(t, 10, 10, 10, 10)
	pred := spfPred(t, g)
	total, flows, err := capacity.CalcGraphCapacity(g, "A", "D", pred, capacity.Proportional)
	require.NoError(t, err)
	require.Equal(t, 20.0, total)
	require.InDelta(t, 0.5, flows["A"]["B"], 1e-9)
	require.InDelta(t, 0.5, flows["A"]["C"], 1e-9)
}

func TestCalcGraphCapacityProportionalBottleneck(t *testing.T) {
	g := diamond(t, 10, 2, 10, 10)
	pred := spfPred(t, g)
	total, _, err := capacity.CalcGraphCapacity(g, "A", "D", pred, capacity.Proportional)
	require.NoError(t, err)
	// A-B-D path is bottlenecked at 2; A-C-D can carry up to 10.
	require.Equal(t, 12.0, total)
}

func TestCalcGraphCapacityEqualBalancedScalesToBottleneck(t *testing.T) {
	g := diamond(t, 10, 1, 10, 10)
	pred := spfPred(t, g)
	total, flows, err := capacity.CalcGraphCapacity(g, "A", "D", pred, capacity.EqualBalanced)
	require.NoError(t, err)
	require.InDelta(t, 0.5, flows["A"]["B"], 1e-9)
	require.InDelta(t, 0.5, flows["A"]["C"], 1e-9)
	require.Greater(t, total, 0.0)
}

func TestCalcGraphCapacityRejectsSameSrcDst(t *testing.T) {
	g := diamond(t, 10, 10, 10, 10)
	pred := spfPred(t, g)
	_, _, err := capacity.CalcGraphCapacity(g, "A", "A", pred, capacity.Proportional)
	require.ErrorIs(t, err, capacity.ErrInvalidArgument)
}

func TestCalcGraphCapacityUnknownNode(t *testing.T) {
	g := diamond(t, 10, 10, 10, 10)
	pred := spfPred(t, g)
	_, _, err := capacity.CalcGraphCapacity(g, "A", "Z", pred, capacity.Proportional)
	require.ErrorIs(t, err, capacity.ErrInvalidArgument)
}
