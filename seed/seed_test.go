package seed_test

import (
	"testing"

	"github.com/networmix/netgraph-go/seed"
	"github.com/stretchr/testify/require"
)

func TestDerive_Deterministic(t *testing.T) {
	master := uint64(42)
	a := seed.Derive(&master, "failure_policy", "p1")
	b := seed.Derive(&master, "failure_policy", "p1")
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.Equal(t, *a, *b)
}

func TestDerive_TagOrderMatters(t *testing.T) {
	master := uint64(42)
	a := seed.Derive(&master, "x", "y")
	b := seed.Derive(&master, "y", "x")
	require.NotEqual(t, *a, *b)
}

func TestDerive_DifferentMasterDiffers(t *testing.T) {
	m1, m2 := uint64(1), uint64(2)
	a := seed.Derive(&m1, "analysis", "0")
	b := seed.Derive(&m2, "analysis", "0")
	require.NotEqual(t, *a, *b)
}

func TestDerive_NilMasterIsNonDeterministic(t *testing.T) {
	require.Nil(t, seed.Derive(nil, "anything"))
	require.Nil(t, seed.DeriveIteration(nil, "maxflow", 3))
}

func TestDeriveIteration_MatchesManualTags(t *testing.T) {
	master := uint64(7)
	a := seed.DeriveIteration(&master, "maxflow", 3)
	b := seed.Derive(&master, "maxflow", "3")
	require.Equal(t, *a, *b)
}

func TestDerivePolicy_MatchesManualTags(t *testing.T) {
	master := uint64(7)
	a := seed.DerivePolicy(&master, "choice-1")
	b := seed.Derive(&master, "failure_policy", "choice-1")
	require.Equal(t, *a, *b)
}
