package battle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/battle"
	"github.com/riftkeep/battlecore/battleerr"
)

func TestRewindRestoresSelectionAndReturnsToSelect(t *testing.T) {
	b := newTestBattle(t)
	uids := handUIDs(b)
	require.NoError(t, b.SubmitSelection(uids))
	require.Equal(t, battle.PhaseRespond, b.Phase)

	require.NoError(t, b.Rewind())
	require.Equal(t, battle.PhaseSelect, b.Phase)
	require.Len(t, b.Selected, len(uids))
	require.Len(t, b.Hand, len(uids))
}

func TestRewindRejectsSecondUseSameTurn(t *testing.T) {
	b := newTestBattle(t)
	require.NoError(t, b.SubmitSelection(handUIDs(b)))
	require.NoError(t, b.Rewind())

	require.NoError(t, b.SubmitSelection(handUIDs(b)))
	err := b.Rewind()
	require.Equal(t, battleerr.CodeRewindAlreadyUsed, battleerr.GetCode(err))
}

func TestRewindRejectsOutsideRespond(t *testing.T) {
	b := newTestBattle(t)

	err := b.Rewind()
	require.Equal(t, battleerr.CodeWrongPhase, battleerr.GetCode(err))
}
