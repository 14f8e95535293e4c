// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package token

// CheckCounter reports whether the defender has an active counter token
// (spec §4.1 "Special predicates").
func CheckCounter(tokens Tokens) bool {
	return tokens.Has("counter")
}

// CheckReflect reports whether reflect is active and, if so, its stack
// count (used by the Damage Pipeline's reflect derivation, spec §4.2).
func CheckReflect(tokens Tokens) (stacks int, active bool) {
	s := tokens.GetStacks("reflect")
	return s, s > 0
}

// CheckImmunity reports whether the combatant has an active immunity
// token. No effect category is considered.
func CheckImmunity(tokens Tokens) bool {
	return tokens.Has("immunity")
}

// CheckRevive reports whether a pending revive token would trigger on
// lethal damage.
func CheckRevive(tokens Tokens) bool {
	return tokens.Has("revive")
}

// ProcessBurn deals damage equal to the current burn stacks, then ticks
// the stack count down by one (spec §4.1: "burn ticks one stack per
// resolution"). Returns the new token map and the damage dealt (0 if burn
// is not active).
func ProcessBurn(tokens Tokens, owner string) (Tokens, int) {
	return processStackDamage(tokens, owner, "burn")
}

// ProcessPoison deals damage equal to the current poison stacks, then
// ticks the stack count down by one, mirroring ProcessBurn.
func ProcessPoison(tokens Tokens, owner string) (Tokens, int) {
	return processStackDamage(tokens, owner, "poison")
}

// ProcessRegen heals hp equal to the current regen stacks, then ticks the
// stack count down by one, mirroring ProcessBurn/ProcessPoison (spec §4.7
// end_of_turn "apply regen/poison").
func ProcessRegen(tokens Tokens, owner string) (Tokens, int) {
	return processStackDamage(tokens, owner, "regen")
}

func processStackDamage(tokens Tokens, owner, id string) (Tokens, int) {
	stacks := tokens.GetStacks(id)
	if stacks <= 0 {
		return tokens, 0
	}
	next, _ := Remove(tokens, owner, id, 1)
	return next, stacks
}
