package rng_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/rng"
)

func TestPCGDeterministic(t *testing.T) {
	a := rng.NewPCG(42)
	b := rng.NewPCG(42)

	for i := 0; i < 50; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestPCGDifferentSeeds(t *testing.T) {
	a := rng.NewPCG(1)
	b := rng.NewPCG(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	require.False(t, same, "different seeds should diverge")
}

func TestScriptedCycles(t *testing.T) {
	s := rng.NewScripted([]float64{0.1, 0.9}, []int{2})

	require.Equal(t, 0.1, s.Float64())
	require.Equal(t, 0.9, s.Float64())
	require.Equal(t, 0.1, s.Float64())

	require.Equal(t, 2, s.Intn(5))
	require.Equal(t, 2, s.Intn(5))
}

func TestScriptedReset(t *testing.T) {
	s := rng.NewScripted([]float64{0.3, 0.6}, nil)
	s.Float64()
	s.Reset()
	require.Equal(t, 0.3, s.Float64())
}

func TestAlways(t *testing.T) {
	s := rng.Always(0.0)
	require.Equal(t, 0.0, s.Float64())
	require.Equal(t, 0.0, s.Float64())
}
