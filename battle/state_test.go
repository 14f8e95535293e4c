package battle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/battle"
	"github.com/riftkeep/battlecore/battleerr"
)

func TestNewBattleDrawsHandAndDraftsEnemyPlan(t *testing.T) {
	b, err := battle.NewBattle(testSpec(), testCatalog(), 1)
	require.NoError(t, err)

	view := b.View()
	require.Equal(t, battle.PhaseSelect, view.Phase)
	require.Equal(t, 2, view.Hand)
	require.Equal(t, 30, view.Player.HP)
	require.NotEmpty(t, b.Enemy.Plan.Actions)
}

func TestNewBattleAppliesAnomalyStatBonus(t *testing.T) {
	spec := testSpec()
	spec.AnomalyIDs = []string{"bolster"}

	b, err := battle.NewBattle(spec, testCatalog(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, b.Player.Strength)
}

func TestNewBattleMissingPlayerCardIsCatalogError(t *testing.T) {
	spec := testSpec()
	spec.Player.DeckCardIDs = []string{"does-not-exist"}

	_, err := battle.NewBattle(spec, testCatalog(), 1)
	require.Error(t, err)
	require.Equal(t, battleerr.CodeMissingCard, battleerr.GetCode(err))
}

func TestNewBattleMissingEnemyIsCatalogError(t *testing.T) {
	spec := testSpec()
	spec.EnemyID = "does-not-exist"

	_, err := battle.NewBattle(spec, testCatalog(), 1)
	require.Error(t, err)
	require.Equal(t, battleerr.CodeMissingEnemy, battleerr.GetCode(err))
}
