package battle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/battle"
	"github.com/riftkeep/battlecore/battleerr"
)

func newTestBattle(t *testing.T) *battle.Battle {
	t.Helper()
	b, err := battle.NewBattle(testSpec(), testCatalog(), 7)
	require.NoError(t, err)
	return b
}

func handUIDs(b *battle.Battle) []string {
	uids := make([]string, len(b.Hand))
	for i, c := range b.Hand {
		uids[i] = c.UID
	}
	return uids
}

func TestSubmitSelectionMovesToRespond(t *testing.T) {
	b := newTestBattle(t)
	uids := handUIDs(b)

	err := b.SubmitSelection(uids)
	require.NoError(t, err)
	require.Equal(t, battle.PhaseRespond, b.Phase)
	require.Len(t, b.Selected, len(uids))
}

func TestSubmitSelectionRejectsWrongPhase(t *testing.T) {
	b := newTestBattle(t)
	require.NoError(t, b.SubmitSelection(handUIDs(b)))

	err := b.SubmitSelection(nil)
	require.Equal(t, battleerr.CodeWrongPhase, battleerr.GetCode(err))
}

func TestSubmitSelectionRejectsUnknownUID(t *testing.T) {
	b := newTestBattle(t)

	err := b.SubmitSelection([]string{"not-a-real-uid"})
	require.Equal(t, battleerr.CodeNotInHand, battleerr.GetCode(err))
}

func TestSubmitSelectionRejectsTooManyCards(t *testing.T) {
	b := newTestBattle(t)

	uids := make([]string, battle.MaxSubmitCards+1)
	for i := range uids {
		uids[i] = "x"
	}
	err := b.SubmitSelection(uids)
	require.Equal(t, battleerr.CodeTooManyCards, battleerr.GetCode(err))
}

func TestSubmitSelectionRejectsOverSpeedBudget(t *testing.T) {
	spec := testSpec()
	spec.Player.MaxSpeed = 1 // strike alone costs 2
	b, err := battle.NewBattle(spec, testCatalog(), 1)
	require.NoError(t, err)

	var strikeUID string
	for _, c := range b.Hand {
		if c.DefID == "strike" {
			strikeUID = c.UID
		}
	}
	require.NotEmpty(t, strikeUID)

	err = b.SubmitSelection([]string{strikeUID})
	require.Equal(t, battleerr.CodeOverSpeed, battleerr.GetCode(err))
}
