package commandlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/commandlog"
)

func TestAppendAssignsSeqAndTurn(t *testing.T) {
	l := commandlog.NewLog()

	first := commandlog.Append(l, 1, commandlog.PhaseChanged{From: "select", To: "respond"})
	second := commandlog.Append(l, 1, commandlog.CardSelected{Actor: "player", CardUID: "uid-1", CardID: "strike", SP: 3})

	require.Equal(t, 0, first.Seq())
	require.Equal(t, 1, first.Turn())
	require.Equal(t, commandlog.KindPhaseChanged, first.Kind())

	require.Equal(t, 1, second.Seq())
	require.Equal(t, 1, second.Turn())

	selected, ok := second.(commandlog.CardSelected)
	require.True(t, ok)
	require.Equal(t, "strike", selected.CardID)
	require.Equal(t, 3, selected.SP)
}

func TestLogAllPreservesOrder(t *testing.T) {
	l := commandlog.NewLog()
	commandlog.Append(l, 1, commandlog.TurnEnded{})
	commandlog.Append(l, 2, commandlog.TurnEnded{})
	commandlog.Append(l, 3, commandlog.TurnEnded{})

	all := l.All()
	require.Len(t, all, 3)
	for i, ev := range all {
		require.Equal(t, i, ev.Seq())
		require.Equal(t, i+1, ev.Turn())
	}
	require.Equal(t, 3, l.Len())
}

func TestLogSince(t *testing.T) {
	l := commandlog.NewLog()
	for i := 0; i < 5; i++ {
		commandlog.Append(l, 1, commandlog.TurnEnded{})
	}

	require.Len(t, l.Since(3), 2)
	require.Equal(t, 3, l.Since(3)[0].Seq())
	require.Len(t, l.Since(0), 5)
	require.Nil(t, l.Since(5))
}

func TestLogSinceNegativeCursorClampsToZero(t *testing.T) {
	l := commandlog.NewLog()
	commandlog.Append(l, 1, commandlog.TurnEnded{})
	commandlog.Append(l, 1, commandlog.TurnEnded{})

	require.Len(t, l.Since(-4), 2)
}

func TestFizzleAndAnomalyDetectedRoundTrip(t *testing.T) {
	l := commandlog.NewLog()
	fizzle := commandlog.Append(l, 2, commandlog.Fizzle{
		Actor:        "enemy-1",
		CardUID:      "uid-9",
		MissingToken: "offense",
	})
	anomaly := commandlog.Append(l, 2, commandlog.AnomalyDetected{Reason: "queue empty mid-resolve"})

	require.Equal(t, commandlog.KindFizzle, fizzle.Kind())
	require.Equal(t, commandlog.KindAnomalyDetected, anomaly.Kind())

	a, ok := anomaly.(commandlog.AnomalyDetected)
	require.True(t, ok)
	require.Equal(t, "queue empty mid-resolve", a.Reason)
}
