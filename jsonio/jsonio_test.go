package jsonio_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/jsonio"
	"github.com/networmix/netgraph-go/maxflow"
	"github.com/networmix/netgraph-go/results"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFloatKeys_RoundTrip(t *testing.T) {
	m := map[float64]float64{
		1.0 / 3.0: 1,
		math.Pi:   2,
		0:         3,
	}
	enc := jsonio.EncodeFloat64Float64Map(m)
	raw, err := json.Marshal(enc)
	require.NoError(t, err)

	var back map[string]float64
	require.NoError(t, json.Unmarshal(raw, &back))

	dec, err := jsonio.DecodeFloat64Float64Map(back)
	require.NoError(t, err)
	require.Equal(t, m, dec)
}

func TestNodeLink_RoundTrip(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	_, err := g.AddEdge("A", "B", -1, 1, 10, nil)
	require.NoError(t, err)

	nl := jsonio.ToNodeLink(g, nil)
	raw, err := json.Marshal(nl)
	require.NoError(t, err)

	var back jsonio.NodeLink
	require.NoError(t, json.Unmarshal(raw, &back))
	g2, err := jsonio.FromNodeLink(back)
	require.NoError(t, err)
	require.ElementsMatch(t, g.Nodes(), g2.Nodes())
}

func TestEncodeFlowSummary(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	id, err := g.AddEdge("A", "B", -1, 1, 10, nil)
	require.NoError(t, err)
	g.EnsureFlowState(true)

	s := &maxflow.FlowSummary{
		TotalFlow:        5,
		EdgeFlow:         map[int64]float64{id: 5},
		EdgeResidual:     map[int64]float64{id: 5},
		ReachableFromSrc: map[string]struct{}{"A": {}},
		MinCutEdges:      []int64{id},
		CostDistribution: map[float64]float64{1: 5},
	}
	doc := jsonio.EncodeFlowSummary(g, s)
	require.Equal(t, 5.0, doc.TotalFlow)
	require.Len(t, doc.EdgeFlow, 1)
	require.Equal(t, "A", doc.EdgeFlow[0].Edge.Source)
	require.Equal(t, "B", doc.EdgeFlow[0].Edge.Target)
	require.Len(t, doc.MinCut, 1)
}

func TestCapacityEnvelope_RoundTrip(t *testing.T) {
	env := results.NewCapacityEnvelope("^A.*", "^D.*", "combine", []float64{1, 2, 2})
	doc := jsonio.EncodeCapacityEnvelope(env)
	back, err := jsonio.DecodeCapacityEnvelope(doc)
	require.NoError(t, err)
	require.Equal(t, env.Frequencies, back.Frequencies)
	require.Equal(t, env.TotalSamples, back.TotalSamples)
}
