package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/battle"
	"github.com/riftkeep/battlecore/catalog"
	"github.com/riftkeep/battlecore/sim"
)

func testCatalog() *catalog.Catalog {
	cards := []catalog.CardDef{
		{ID: "strike", Category: catalog.CategoryAttack, SpeedCost: 2, ActionCost: 1, Damage: 10},
		{ID: "guard", Category: catalog.CategoryDefense, SpeedCost: 1, ActionCost: 1, Block: 6},
		{ID: "enemy_claw", Category: catalog.CategoryAttack, SpeedCost: 1, Damage: 4},
	}
	enemies := []catalog.EnemyDef{
		{
			ID: "grub", Mode: "aggressive", EtherCapacity: 100,
			Units: []catalog.EnemyUnitDef{{ID: "u1", HP: 20, Deck: []string{"enemy_claw"}, CardsPerTurn: 1}},
		},
	}
	return catalog.New(cards, nil, enemies, nil)
}

func testSpec(id string) catalog.EncounterSpec {
	return catalog.EncounterSpec{
		ID: id, EnemyID: "grub",
		Player: catalog.PlayerLoadout{
			DeckCardIDs: []string{"strike", "guard"}, MaxHP: 30, MaxSpeed: 10, MaxEnergy: 10, HandSize: 2, EtherCap: 100,
		},
	}
}

// autoDriver plays whatever is in hand each select phase and steps
// resolution to completion, turn after turn, until the battle ends.
func autoDriver(b *battle.Battle) (bool, error) {
	switch b.Phase {
	case battle.PhaseSelect:
		uids := make([]string, len(b.Hand))
		for i, c := range b.Hand {
			uids[i] = c.UID
		}
		return true, b.SubmitSelection(uids)
	case battle.PhaseRespond:
		return true, b.BeginResolve()
	case battle.PhaseResolve:
		_, err := b.StepOnce()
		return true, err
	case battle.PhaseEndOfTurn:
		return true, b.FinishTurn()
	default:
		return false, nil
	}
}

func TestRunManyDrivesIsolatedBattlesToCompletion(t *testing.T) {
	specs := []catalog.EncounterSpec{testSpec("a"), testSpec("b"), testSpec("c")}
	seeds := []uint64{1, 2, 3}

	outcomes, err := sim.RunMany(context.Background(), testCatalog(), specs, seeds, autoDriver)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		require.NoError(t, o.Err)
		require.Contains(t, []string{"player", "enemy"}, o.Winner)
		require.Greater(t, o.Events, 0)
	}
}

func TestRunManyRejectsMismatchedLengths(t *testing.T) {
	_, err := sim.RunMany(context.Background(), testCatalog(), []catalog.EncounterSpec{testSpec("a")}, nil, autoDriver)
	require.Error(t, err)
}
