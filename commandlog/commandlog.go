// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package commandlog provides the ordered, serializable event list the
// battle engine emits (spec §4.8): "Every state mutation emits one or more
// typed events... Events are immutable, ordered, and sufficient to
// reconstruct the terminal state from the initial state + RNG seed."
//
// Purpose:
// This is the engine's only logging surface. Rather than a generic
// structured logger, the battle state machine logs in its own domain
// vocabulary (CardResolved, CrossFired, TurnEnded, ...) so the log is
// simultaneously: a replay source, the data a UI renders, and the
// assertion surface for tests (spec §8 property 6, scenarios S1-S6).
//
// Grounded on the teacher's events package (events.Event: Type/Source/
// Target/Context), but simplified from a subscriber pub/sub bus down to a
// flat, append-only, replayable slice: spec §4.8 asks for a log, not a
// dispatch mechanism, and nothing in the battle engine subscribes to its
// own events mid-resolve.
package commandlog

// EventKind names one of the event variants spec §4.8 enumerates, plus the
// two self-healing variants spec §7 requires (Fizzle, AnomalyDetected) and
// the token-predicate variants (ImmunityBlocked, ReviveTriggered,
// RegenApplied).
type EventKind string

const (
	KindCardSelected    EventKind = "card_selected"
	KindCardResolved    EventKind = "card_resolved"
	KindTokenAdded      EventKind = "token_added"
	KindTokenRemoved    EventKind = "token_removed"
	KindTokenCancelled  EventKind = "token_cancelled"
	KindCrossFired      EventKind = "cross_fired"
	KindCounterFired    EventKind = "counter_fired"
	KindEtherGained     EventKind = "ether_gained"
	KindTurnEnded       EventKind = "turn_ended"
	KindPhaseChanged    EventKind = "phase_changed"
	KindQueueRecovered  EventKind = "queue_recovered"
	KindBattleEnded     EventKind = "battle_ended"
	KindFizzle          EventKind = "fizzle"
	KindAnomalyDetected EventKind = "anomaly_detected"
	KindImmunityBlocked EventKind = "immunity_blocked"
	KindReviveTriggered EventKind = "revive_triggered"
	KindRegenApplied    EventKind = "regen_applied"
)

// Event is the closed set of things a Battle can log. Every variant below
// implements it. Implementations are immutable value types.
type Event interface {
	// Kind identifies which variant this is.
	Kind() EventKind
	// Seq is this event's position in the log, assigned on Append.
	Seq() int
	// Turn is the battle turn number the event occurred during.
	Turn() int
}

// base is embedded by every concrete event to provide Seq/Turn for free.
type base struct {
	seq  int
	turn int
}

func (b base) Seq() int  { return b.seq }
func (b base) Turn() int { return b.turn }

// stamped is implemented by every concrete event via its embedded base,
// letting Log.Append assign Seq/Turn without a type switch per variant.
type stamped interface {
	Event
	withStamp(seq, turn int) Event
}

func (c CardSelected) withStamp(seq, turn int) Event    { c.base = base{seq, turn}; return c }
func (c CardResolved) withStamp(seq, turn int) Event    { c.base = base{seq, turn}; return c }
func (t TokenAdded) withStamp(seq, turn int) Event      { t.base = base{seq, turn}; return t }
func (t TokenRemoved) withStamp(seq, turn int) Event    { t.base = base{seq, turn}; return t }
func (t TokenCancelled) withStamp(seq, turn int) Event  { t.base = base{seq, turn}; return t }
func (c CrossFired) withStamp(seq, turn int) Event      { c.base = base{seq, turn}; return c }
func (c CounterFired) withStamp(seq, turn int) Event    { c.base = base{seq, turn}; return c }
func (e EtherGained) withStamp(seq, turn int) Event     { e.base = base{seq, turn}; return e }
func (t TurnEnded) withStamp(seq, turn int) Event       { t.base = base{seq, turn}; return t }
func (p PhaseChanged) withStamp(seq, turn int) Event    { p.base = base{seq, turn}; return p }
func (q QueueRecovered) withStamp(seq, turn int) Event  { q.base = base{seq, turn}; return q }
func (b BattleEnded) withStamp(seq, turn int) Event     { b.base = base{seq, turn}; return b }
func (f Fizzle) withStamp(seq, turn int) Event          { f.base = base{seq, turn}; return f }
func (a AnomalyDetected) withStamp(seq, turn int) Event { a.base = base{seq, turn}; return a }
func (i ImmunityBlocked) withStamp(seq, turn int) Event { i.base = base{seq, turn}; return i }
func (r ReviveTriggered) withStamp(seq, turn int) Event { r.base = base{seq, turn}; return r }
func (r RegenApplied) withStamp(seq, turn int) Event    { r.base = base{seq, turn}; return r }

// CardSelected records a card entering the player's `selected` list, or a
// ghost card from a sub-selection entering the queue.
type CardSelected struct {
	base
	Actor    string
	CardUID  string
	CardID   string
	SP       int
	ActionID int
}

// Kind implements Event.
func (CardSelected) Kind() EventKind { return KindCardSelected }

// CardResolved records a single queue item fully resolving, including the
// damage pipeline breakdown spec §4.2 produces.
type CardResolved struct {
	base
	Actor   string
	Target  string
	CardUID string
	Damage  int
	Blocked int
	Crit    bool
	Dodge   bool
	Hits    int
}

// Kind implements Event.
func (CardResolved) Kind() EventKind { return KindCardResolved }

// TokenAdded records stacks added to a combatant's token map (after any
// opposite-pair cancellation has already been netted out).
type TokenAdded struct {
	base
	Owner   string
	TokenID string
	Stacks  int
}

// Kind implements Event.
func (TokenAdded) Kind() EventKind { return KindTokenAdded }

// TokenRemoved records stacks removed from a combatant's token map.
type TokenRemoved struct {
	base
	Owner   string
	TokenID string
	Stacks  int
}

// Kind implements Event.
func (TokenRemoved) Kind() EventKind { return KindTokenRemoved }

// TokenCancelled records one-for-one cancellation between an opposite pair.
type TokenCancelled struct {
	base
	Owner      string
	TokenID    string
	OppositeID string
	Amount     int
}

// Kind implements Event.
func (TokenCancelled) Kind() EventKind { return KindTokenCancelled }

// CrossFired records a cross-bonus firing for a crossed pair (spec §4.5).
type CrossFired struct {
	base
	SP            int
	PlayerCardUID string
	EnemyCardUID  string
	Bonus         string
}

// Kind implements Event.
func (CrossFired) Kind() EventKind { return KindCrossFired }

// CounterFired records a counter/reflect triggering on the defender.
type CounterFired struct {
	base
	Source string
	Target string
	Damage int
}

// Kind implements Event.
func (CounterFired) Kind() EventKind { return KindCounterFired }

// EtherGained records the ether one side committed at end of turn, from
// all the cards it executed that turn (spec §4.4).
type EtherGained struct {
	base
	Actor      string
	Amount     int
	ComboName  string
	Multiplier float64
}

// Kind implements Event.
func (EtherGained) Kind() EventKind { return KindEtherGained }

// TurnEnded records the end-of-turn transition.
type TurnEnded struct {
	base
}

// Kind implements Event.
func (TurnEnded) Kind() EventKind { return KindTurnEnded }

// PhaseChanged records a battle state machine transition (spec §4.7).
type PhaseChanged struct {
	base
	From string
	To   string
}

// Kind implements Event.
func (PhaseChanged) Kind() EventKind { return KindPhaseChanged }

// QueueRecovered records the scheduler rebuilding queue from fixed_order
// after finding an empty queue mid-resolve (spec §4.5 Recovery).
type QueueRecovered struct {
	base
	RebuiltCount int
}

// Kind implements Event.
func (QueueRecovered) Kind() EventKind { return KindQueueRecovered }

// BattleEnded records the terminal transition, win/loss/abort.
type BattleEnded struct {
	base
	Winner string // "player", "enemy", or "aborted"
}

// Kind implements Event.
func (BattleEnded) Kind() EventKind { return KindBattleEnded }

// Fizzle records a queue item whose required tokens were missing, per
// spec §4.5 step 2 ("Evaluate required tokens; if missing, emit
// FizzleEvent and advance").
type Fizzle struct {
	base
	Actor        string
	CardUID      string
	MissingToken string
}

// Kind implements Event.
func (Fizzle) Kind() EventKind { return KindFizzle }

// AnomalyDetected records a self-healed internal inconsistency (spec §7):
// queue/fixed_order drift, negative stacks, or an unknown token id. The
// engine never raises an exception for these; it logs and corrects.
type AnomalyDetected struct {
	base
	Reason string
}

// Kind implements Event.
func (AnomalyDetected) Kind() EventKind { return KindAnomalyDetected }

// ImmunityBlocked records a hit that would have dealt damage being fully
// prevented by the target's immunity token (spec §4.1 CheckImmunity).
type ImmunityBlocked struct {
	base
	Target    string
	CardUID   string
	Prevented int
}

// Kind implements Event.
func (ImmunityBlocked) Kind() EventKind { return KindImmunityBlocked }

// ReviveTriggered records a pending revive token firing in place of a
// lethal hit committing death (spec §4.1 CheckRevive).
type ReviveTriggered struct {
	base
	Actor string
}

// Kind implements Event.
func (ReviveTriggered) Kind() EventKind { return KindReviveTriggered }

// RegenApplied records end-of-turn regen healing (spec §4.7 "apply
// regen/poison").
type RegenApplied struct {
	base
	Actor  string
	Amount int
}

// Kind implements Event.
func (RegenApplied) Kind() EventKind { return KindRegenApplied }

// Log is an append-only, ordered event list. It is the sole mutation point
// for a Battle's history; nothing ever removes or reorders an entry.
type Log struct {
	events []Event
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append assigns the next sequence number to ev and appends it. The caller
// builds ev as an ordinary struct literal (e.g.
// commandlog.CardSelected{Actor: "player", CardUID: uid}); Append stamps
// Seq/Turn and returns the stamped copy so the caller can read it back.
func Append(l *Log, turn int, ev Event) Event {
	if s, ok := ev.(stamped); ok {
		ev = s.withStamp(len(l.events), turn)
	}
	l.events = append(l.events, ev)
	return ev
}

// All returns every event recorded so far, in order. The returned slice
// must not be mutated by the caller.
func (l *Log) All() []Event {
	return l.events
}

// Since returns every event with Seq() >= cursor, matching the external
// interface's `events_since(battle, cursor) -> [Event]` (spec §6).
func (l *Log) Since(cursor int) []Event {
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(l.events) {
		return nil
	}
	out := make([]Event, len(l.events)-cursor)
	copy(out, l.events[cursor:])
	return out
}

// Len returns the total number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}
