// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package token implements the Token Engine (spec §4.1): applying,
// removing, and cancelling stackable modifiers, and deriving the attack,
// defense, and damage-taken multipliers the Damage Pipeline consumes.
//
// Purpose:
// Every operation here is a pure function over a Tokens map — "no
// in-place mutation" per spec §4.1 — returning the next map plus any
// commandlog events the mutation produced. Grounded on the teacher's
// mechanics/effects stack-tracking shape and mechanics/conditions'
// category-based bulk clear, reimplemented against the spec's simpler
// usage/turn/permanent lifecycle rather than kept as a dependency.
package token

import "github.com/riftkeep/battlecore/commandlog"

// Tokens maps a token id to its current stack count. Spec §3 invariant 4:
// an id with stacks == 0 must be absent from the map, never present at 0.
type Tokens map[string]int

// Defs resolves a token id to its catalog definition. Satisfied by
// *catalog.Catalog; declared locally to avoid an import cycle (catalog
// never needs to know about token).
type Defs interface {
	TokenKind(id string) (kind string, category string, maxStacks int, oppositeID string, ok bool)
}

// Clone returns a shallow copy so callers never share a mutable map.
func (t Tokens) Clone() Tokens {
	out := make(Tokens, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Has reports whether id has any stacks.
func (t Tokens) Has(id string) bool {
	return t[id] > 0
}

// GetStacks returns the current stack count for id (0 if absent).
func (t Tokens) GetStacks(id string) int {
	return t[id]
}

func purge(t Tokens, id string) {
	if t[id] <= 0 {
		delete(t, id)
	}
}

// Add applies stacks of id to owner's tokens. If id has an opposite with
// stacks > 0, it cancels one-for-one first (spec §4.1 "if opposite has
// stacks, cancel one-for-one, then add remainder"); the remainder is
// capped at the def's max_stacks. Returns the new map and the events the
// mutation produced, unstamped (caller Appends them to a commandlog.Log).
func Add(tokens Tokens, defs Defs, owner, id string, stacks int) (Tokens, []commandlog.Event) {
	if stacks <= 0 {
		return tokens, nil
	}
	next := tokens.Clone()
	_, _, maxStacks, oppositeID, ok := defs.TokenKind(id)
	if !ok {
		return next, []commandlog.Event{commandlog.AnomalyDetected{Reason: "unknown token id: " + id}}
	}

	var events []commandlog.Event
	remainder := stacks
	if oppositeID != "" && next[oppositeID] > 0 {
		cancelled := min(remainder, next[oppositeID])
		next[oppositeID] -= cancelled
		purge(next, oppositeID)
		remainder -= cancelled
		if cancelled > 0 {
			events = append(events, commandlog.TokenCancelled{
				Owner: owner, TokenID: id, OppositeID: oppositeID, Amount: cancelled,
			})
		}
	}

	if remainder > 0 {
		total := next[id] + remainder
		if maxStacks > 0 && total > maxStacks {
			total = maxStacks
		}
		added := total - next[id]
		next[id] = total
		if added > 0 {
			events = append(events, commandlog.TokenAdded{Owner: owner, TokenID: id, Stacks: added})
		}
	}
	return next, events
}

// Remove strips up to stacks of id, clamping at zero, purging the entry
// when it reaches zero (spec §4.1).
func Remove(tokens Tokens, owner, id string, stacks int) (Tokens, []commandlog.Event) {
	if stacks <= 0 || tokens[id] <= 0 {
		return tokens, nil
	}
	next := tokens.Clone()
	removed := min(stacks, next[id])
	next[id] -= removed
	purge(next, id)
	if removed == 0 {
		return next, nil
	}
	return next, []commandlog.Event{commandlog.TokenRemoved{Owner: owner, TokenID: id, Stacks: removed}}
}

// ClearByType removes every token whose def.Kind matches kind (e.g. every
// "usage" token at once). The battle package does not call it.
func ClearByType(tokens Tokens, defs Defs, owner, kind string) (Tokens, []commandlog.Event) {
	next := tokens.Clone()
	var events []commandlog.Event
	for id, stacks := range tokens {
		k, _, _, _, ok := defs.TokenKind(id)
		if !ok || k != kind || stacks <= 0 {
			continue
		}
		delete(next, id)
		events = append(events, commandlog.TokenRemoved{Owner: owner, TokenID: id, Stacks: stacks})
	}
	return next, events
}

// ClearByCategory removes every token whose def.Category matches category.
func ClearByCategory(tokens Tokens, defs Defs, owner, category string) (Tokens, []commandlog.Event) {
	next := tokens.Clone()
	var events []commandlog.Event
	for id, stacks := range tokens {
		_, cat, _, _, ok := defs.TokenKind(id)
		if !ok || cat != category || stacks <= 0 {
			continue
		}
		delete(next, id)
		events = append(events, commandlog.TokenRemoved{Owner: owner, TokenID: id, Stacks: stacks})
	}
	return next, events
}

// ProcessTurnEnd decrements every turn-lifecycle token by one, purging
// entries that reach zero (spec §4.1, §4.7 end_of_turn entry action).
func ProcessTurnEnd(tokens Tokens, defs Defs, owner string) (Tokens, []commandlog.Event) {
	next := tokens.Clone()
	var events []commandlog.Event
	for id, stacks := range tokens {
		kind, _, _, _, ok := defs.TokenKind(id)
		if !ok || kind != "turn" || stacks <= 0 {
			continue
		}
		next[id] = stacks - 1
		purge(next, id)
		if next[id] == 0 {
			events = append(events, commandlog.TokenRemoved{Owner: owner, TokenID: id, Stacks: 1})
		}
	}
	return next, events
}
