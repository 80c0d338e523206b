package results_test

import (
	"testing"

	"github.com/networmix/netgraph-go/results"
	"github.com/stretchr/testify/require"
)

func TestNewCapacityEnvelope_Basic(t *testing.T) {
	env := results.NewCapacityEnvelope("^A.*", "^D.*", "combine", []float64{10, 10, 5, 20})
	require.Equal(t, int64(4), env.TotalSamples)
	require.Equal(t, 5.0, env.MinCapacity)
	require.Equal(t, 20.0, env.MaxCapacity)
	require.InDelta(t, 11.25, env.MeanCapacity, 1e-9)
	require.Equal(t, int64(2), env.Frequencies[10])
	require.Equal(t, int64(1), env.Frequencies[5])
}

func TestNewCapacityEnvelope_Empty(t *testing.T) {
	env := results.NewCapacityEnvelope("s", "d", "combine", nil)
	require.Equal(t, int64(0), env.TotalSamples)
	require.Empty(t, env.Frequencies)
}

func TestCapacityEnvelope_Percentile(t *testing.T) {
	env := results.NewCapacityEnvelope("s", "d", "combine", []float64{1, 2, 3, 4, 5})
	require.Equal(t, 1.0, env.Percentile(0))
	require.Equal(t, 5.0, env.Percentile(100))
	require.Equal(t, 3.0, env.Percentile(50))
}

func TestCapacityEnvelope_SortedValues(t *testing.T) {
	env := results.NewCapacityEnvelope("s", "d", "combine", []float64{3, 1, 2, 1})
	require.Equal(t, []float64{1, 2, 3}, env.SortedValues())
}
