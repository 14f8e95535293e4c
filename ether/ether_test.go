package ether_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/ether"
)

func TestSlotCostGeometricCurve(t *testing.T) {
	require.Equal(t, 100, ether.SlotCost(0))
	require.Equal(t, 110, ether.SlotCost(1))
	require.Equal(t, 121, ether.SlotCost(2))
}

func TestSlotsForMonotonicNonDecreasing(t *testing.T) {
	prev := 0
	for points := 0; points <= 3000; points += 37 {
		n := ether.SlotsFor(points)
		require.GreaterOrEqual(t, n, prev)
		require.LessOrEqual(t, n, ether.MaxSlots)
		prev = n
	}
}

func TestSlotsForBoundedByMaxSlots(t *testing.T) {
	require.Equal(t, ether.MaxSlots, ether.SlotsFor(1_000_000))
}

func TestSlotsForZeroPoints(t *testing.T) {
	require.Equal(t, 0, ether.SlotsFor(0))
	require.Equal(t, 0, ether.SlotsFor(99))
	require.Equal(t, 1, ether.SlotsFor(100))
}

func TestBasicPairAccumulationScenarioS1(t *testing.T) {
	usage := ether.UsageCounts{}
	delta, next := ether.Accumulate(12, "pair", 2.0, usage)

	require.Equal(t, 24, delta)
	require.Equal(t, 1, next.Count("pair"))
}

func TestDeflationAppliesOnRepeatedCombo(t *testing.T) {
	usage := ether.UsageCounts{"pair": 1}
	delta, next := ether.Accumulate(12, "pair", 2.0, usage)

	// 12 * 2.0 * 0.8^1 = 19.2 -> floor 19
	require.Equal(t, 19, delta)
	require.Equal(t, 2, next.Count("pair"))
}

func TestAccumulateDoesNotMutateInputUsage(t *testing.T) {
	usage := ether.UsageCounts{"pair": 1}
	_, _ = ether.Accumulate(10, "pair", 1.0, usage)

	require.Equal(t, 1, usage.Count("pair"))
}

func TestPointsForCard(t *testing.T) {
	require.Equal(t, 11, ether.PointsForCard(6, 5))
}
