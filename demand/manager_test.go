package demand_test

import (
	"testing"

	"github.com/networmix/netgraph-go/demand"
	"github.com/networmix/netgraph-go/flowpolicy"
	"github.com/networmix/netgraph-go/network"
	"github.com/stretchr/testify/require"
)

func buildDiamondNetwork(t *testing.T) *network.Network {
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

func TestExpand_FullMesh_SplitsExactly(t *testing.T) {
	n := buildDiamondNetwork(t)
	view := network.FromExcludedSets(n, nil, nil)
	g, err := view.WorkingGraph(false, false)
	require.NoError(t, err)
	g.EnsureFlowState(true)

	spec := demand.TrafficDemandSpec{
		Name: "mesh", SourcePath: "^(A|B)$", SinkPath: "^(C|D)$",
		Mode: demand.FullMesh, Volume: 10,
	}
	ds, err := demand.Expand(g, view, spec)
	require.NoError(t, err)
	require.Len(t, ds, 4) // (A,C)(A,D)(B,C)(B,D)

	var sum float64
	for _, d := range ds {
		sum += d.Volume
	}
	require.InDelta(t, 10.0, sum, 1e-12)
}

func TestExpand_Combine_AddsPseudoNodes(t *testing.T) {
	n := buildDiamondNetwork(t)
	view := network.FromExcludedSets(n, nil, nil)
	g, err := view.WorkingGraph(false, false)
	require.NoError(t, err)
	g.EnsureFlowState(true)

	spec := demand.TrafficDemandSpec{
		Name: "combined", SourcePath: "^A$", SinkPath: "^D$",
		Mode: demand.Combine, Volume: 20,
	}
	ds, err := demand.Expand(g, view, spec)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Equal(t, 20.0, ds[0].Volume)
	require.True(t, g.HasNode(ds[0].Src))
	require.True(t, g.HasNode(ds[0].Dst))
}

func TestManager_PlaceAll_PlacesCombinedDemand(t *testing.T) {
	n := buildDiamondNetwork(t)
	view := network.FromExcludedSets(n, nil, nil)
	g, err := view.WorkingGraph(false, false)
	require.NoError(t, err)
	g.EnsureFlowState(true)

	mgr := demand.NewManager(g)
	specs := []demand.TrafficDemandSpec{
		{Name: "high", SourcePath: "^A$", SinkPath: "^D$", Priority: 0, Volume: 20,
			NewPolicy: func() *flowpolicy.FlowPolicy { return flowpolicy.NewECMP() }},
	}
	require.NoError(t, mgr.Expand(view, specs))

	placed, err := mgr.PlaceAll(demand.PlaceOptions{Auto: true})
	require.NoError(t, err)
	require.InDelta(t, 20.0, placed, 1e-6)

	details := mgr.GetFlowDetails()
	require.Len(t, details, 1)
	require.InDelta(t, 0.0, details[0].Remaining, 1e-6)

	usage := mgr.SummarizeLinkUsage()
	require.NotEmpty(t, usage)
}
