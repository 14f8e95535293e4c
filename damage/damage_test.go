package damage_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/riftkeep/battlecore/damage"
	"github.com/riftkeep/battlecore/damage/mock"
	"github.com/riftkeep/battlecore/rng"
)

func TestCrushVsBlockScenarioS3(t *testing.T) {
	in := damage.Input{
		BaseDamage:      10,
		AttackMult:      1,
		CrushMultiplier: 2,
	}
	src := rng.Always(0.99) // avoid crit and dodge

	result := damage.Calculate(in, 6, 1, src)

	require.Equal(t, 7, result.TotalFinal)
	require.Equal(t, 3, result.TotalBlocked)
	require.Equal(t, 0, result.RemainingBlock)
}

func TestBlockGreaterThanRawDamageZerosFinal(t *testing.T) {
	in := damage.Input{BaseDamage: 5, AttackMult: 1}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 100, 1, src)

	require.Equal(t, 0, result.TotalFinal)
	require.Equal(t, 5, result.TotalBlocked)
}

func TestGuaranteedCritOverridesZeroChance(t *testing.T) {
	in := damage.Input{
		BaseDamage:     10,
		AttackMult:     1,
		GuaranteedCrit: true,
	}
	src := rng.Always(0.999999)

	result := damage.Calculate(in, 0, 1, src)
	require.Equal(t, 20, result.TotalFinal)
}

func TestDodgeChanceOneWithIgnoreEvasionFullPreventsDodge(t *testing.T) {
	in := damage.Input{
		BaseDamage:       10,
		AttackMult:       1,
		DodgeChance:      1,
		IgnoreEvasionPct: 1,
	}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 0, 1, src)
	require.False(t, result.Hits[0].IsDodged)
	require.Equal(t, 10, result.TotalFinal)
}

func TestDodgeFullyPreventsDamage(t *testing.T) {
	in := damage.Input{
		BaseDamage:  10,
		AttackMult:  1,
		DodgeChance: 1,
	}
	src := rng.Always(0)

	result := damage.Calculate(in, 5, 1, src)
	require.True(t, result.Hits[0].IsDodged)
	require.Equal(t, 0, result.TotalFinal)
	require.Equal(t, 5, result.RemainingBlock)
}

func TestVulnerabilityMultipliesAfterBlock(t *testing.T) {
	in := damage.Input{
		BaseDamage:      10,
		AttackMult:      1,
		DamageTakenMult: 1.5,
	}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 0, 1, src)
	require.Equal(t, 15, result.TotalFinal)
}

func TestFixedReductionAppliesLast(t *testing.T) {
	in := damage.Input{
		BaseDamage:      10,
		AttackMult:      1,
		DamageReduction: 3,
	}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 0, 1, src)
	require.Equal(t, 7, result.TotalFinal)
}

func TestFixedReductionNeverGoesNegative(t *testing.T) {
	in := damage.Input{BaseDamage: 2, AttackMult: 1, DamageReduction: 50}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 0, 1, src)
	require.Equal(t, 0, result.TotalFinal)
}

func TestMultiHitThreadsBlockAcrossHits(t *testing.T) {
	in := damage.Input{BaseDamage: 5, AttackMult: 1}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 6, 3, src)

	require.Len(t, result.Hits, 3)
	require.Equal(t, 0, result.Hits[0].Final)
	require.Equal(t, 5, result.Hits[0].Blocked)
	require.Equal(t, 4, result.Hits[1].Final)
	require.Equal(t, 1, result.Hits[1].Blocked)
	require.Equal(t, 5, result.Hits[2].Final)
	require.Equal(t, 0, result.Hits[2].Blocked)
}

func TestLifestealAndReflect(t *testing.T) {
	require.Equal(t, 5, damage.Lifesteal(10, 0.5))
	require.Equal(t, 10, damage.Reflect(10, 2))
}

func TestCalculateDrawsExactlyTwoRollsPerHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockSource(ctrl)
	src.EXPECT().Float64().Return(0.99).Times(6) // crit + dodge roll, 3 hits

	in := damage.Input{BaseDamage: 10, AttackMult: 1}
	result := damage.Calculate(in, 0, 3, src)

	require.Len(t, result.Hits, 3)
	require.Equal(t, 30, result.TotalFinal)
}

func TestIgnoreBlockSkipsBlockStage(t *testing.T) {
	in := damage.Input{BaseDamage: 10, AttackMult: 1, IgnoreBlock: true}
	src := rng.Always(0.99)

	result := damage.Calculate(in, 100, 1, src)
	require.Equal(t, 10, result.TotalFinal)
	require.Equal(t, 100, result.RemainingBlock)
}
