// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package timeline implements the Timeline Scheduler (spec §4.5): building
// the shared speed-point execution queue from both actors' chosen cards,
// detecting crossed pairs, inserting ghost cards mid-resolve, and
// recovering a queue that was erroneously emptied.
//
// Purpose:
// The teacher's pipeline package informed the design, but its
// suspend/resume Result type is not carried over: the one place resolve
// suspends — breach/creation sub-selection (spec §4.5 step 1) — lives in
// battle (StepOnce's StepOutcome), and this package only offers
// InsertAfter for the ghost card that follows. Pipeline's generic
// Stage/Data abstraction has no equivalent in a single fixed queue of
// combat actions, so it is not carried over either.
package timeline

import "sort"

// Actor names which side a queue item belongs to.
type Actor string

const (
	ActorPlayer Actor = "player"
	ActorEnemy  Actor = "enemy"
)

// Card is the minimal view the scheduler needs over a runtime card
// instance. catalog.RuntimeCardInstance satisfies this; declared locally
// so timeline does not need to import catalog's CardDef internals.
type Card interface {
	IsGhost() bool
}

// QueueItem is one entry in the execution queue (spec §4.5 "queue:
// [QueueItem{ actor, card, sp, original_index, cross_mark? }]").
type QueueItem struct {
	Actor         Actor
	Card          Card
	SP            int
	OriginalIndex int
	Crossed       bool
	SourceUnitID  string
}

// PendingItem is one actor's drafted card before it enters the shared
// queue: sp and original_index are assigned by the caller (battle, for
// both the player's selection and the planner's enemy actions) via
// AssignSP.
type PendingItem struct {
	Card          Card
	SP            int
	OriginalIndex int
	SourceUnitID  string
}

// AssignSP assigns each card a sequential speed-point position equal to
// the running total of its own speed_cost (spec §4.6 step 4: "assign
// sequential speed_cost-based sp"). costs[i] is cards[i]'s speed_cost.
func AssignSP(costs []int) []int {
	sp := make([]int, len(costs))
	total := 0
	for i, c := range costs {
		total += c
		sp[i] = total
	}
	return sp
}

// BuildQueue merges player and enemy pending items into one sorted queue
// (spec §4.5 "Building the queue"), then marks crossed pairs.
func BuildQueue(player, enemy []PendingItem) []QueueItem {
	queue := make([]QueueItem, 0, len(player)+len(enemy))
	for _, p := range player {
		queue = append(queue, QueueItem{
			Actor: ActorPlayer, Card: p.Card, SP: p.SP,
			OriginalIndex: p.OriginalIndex, SourceUnitID: p.SourceUnitID,
		})
	}
	for _, e := range enemy {
		queue = append(queue, QueueItem{
			Actor: ActorEnemy, Card: e.Card, SP: e.SP,
			OriginalIndex: e.OriginalIndex, SourceUnitID: e.SourceUnitID,
		})
	}
	Sort(queue)
	MarkCrossedCards(queue)
	return queue
}

// less implements the canonical ordering key (spec §4.5: "sp asc,
// ghost-first, actor=player-first, original_index asc").
func less(a, b QueueItem) bool {
	if a.SP != b.SP {
		return a.SP < b.SP
	}
	ag, bg := a.Card.IsGhost(), b.Card.IsGhost()
	if ag != bg {
		return ag
	}
	if a.Actor != b.Actor {
		return a.Actor == ActorPlayer
	}
	return a.OriginalIndex < b.OriginalIndex
}

// Sort orders queue in place by (sp asc, ghost-first, actor=player-first,
// original_index asc), stable so ties preserve insertion order (spec §4.5
// "Sorting of the remaining suffix is re-stable").
func Sort(queue []QueueItem) {
	sort.SliceStable(queue, func(i, j int) bool {
		return less(queue[i], queue[j])
	})
}

// IsSorted reports whether queue already satisfies the Sort order (spec
// §8 property 5: "queue is sorted by the defined key immediately after
// any mutation").
func IsSorted(queue []QueueItem) bool {
	for i := 1; i < len(queue); i++ {
		if less(queue[i], queue[i-1]) {
			return false
		}
	}
	return true
}

// MarkCrossedCards sets Crossed on every item whose sp is shared by at
// least one item of each actor (spec §4.5 "Cross-over detection"). It
// mutates queue in place and also returns the crossed sp values found.
func MarkCrossedCards(queue []QueueItem) []int {
	hasPlayer := map[int]bool{}
	hasEnemy := map[int]bool{}
	for _, item := range queue {
		if item.Actor == ActorPlayer {
			hasPlayer[item.SP] = true
		} else {
			hasEnemy[item.SP] = true
		}
	}
	var crossedSPs []int
	for sp := range hasPlayer {
		if hasEnemy[sp] {
			crossedSPs = append(crossedSPs, sp)
		}
	}
	sort.Ints(crossedSPs)
	crossedSet := make(map[int]bool, len(crossedSPs))
	for _, sp := range crossedSPs {
		crossedSet[sp] = true
	}
	for i := range queue {
		if crossedSet[queue[i].SP] {
			queue[i].Crossed = true
		}
	}
	return crossedSPs
}

// InsertAfter splices newItems into queue immediately after index
// (typically q_index, the cursor of the item that spawned them), then
// re-sorts only the affected suffix so earlier, already-resolved entries
// are untouched (spec §4.5 "Ghost cards... inserted after current
// q_index... sorting of the remaining suffix is re-stable").
func InsertAfter(queue []QueueItem, index int, newItems []QueueItem) []QueueItem {
	if index < 0 {
		index = 0
	}
	if index > len(queue)-1 {
		index = len(queue) - 1
	}
	head := append([]QueueItem{}, queue[:index+1]...)
	tail := append([]QueueItem{}, queue[index+1:]...)
	suffix := append(append([]QueueItem{}, newItems...), tail...)
	Sort(suffix)
	return append(head, suffix...)
}

// Recover rebuilds queue from fixedOrder when queue has been erroneously
// emptied mid-resolve (spec §4.5 "Recovery"). Returns the rebuilt queue,
// a reset q_index of 0, and whether recovery actually fired.
func Recover(queue []QueueItem, fixedOrder []QueueItem) (rebuilt []QueueItem, qIndex int, recovered bool) {
	if len(queue) > 0 || len(fixedOrder) == 0 {
		return queue, 0, false
	}
	rebuilt = append([]QueueItem{}, fixedOrder...)
	return rebuilt, 0, true
}
