// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package token

// AttackModifiers is the pure derivation the Damage Pipeline reads at its
// base and attack-multiplier stages (spec §4.1, §4.2 stages 1-2).
type AttackModifiers struct {
	AttackMult  float64
	DamageBonus int
	CritBoost   float64
	IgnoreBlock bool
	Lifesteal   float64
}

// perStack conversion constants for the positive/negative multiplier
// buckets. The spec (§4.1) names which tokens contribute but not their
// per-stack magnitude; these values are a deliberate, documented design
// choice (see the design ledger) chosen so the dull:1 case in spec §8
// scenario S2 (attack_mult -> 0.5) falls out exactly.
const (
	offensePerStack     = 0.10
	offensePlusPerStack = 0.20
	attackPerStack      = 0.10
	attackPlusPerStack  = 0.20
	dullFactor          = 0.5  // multiplier is dullFactor^stacks
	dullnessFactor      = 0.35 // dullnessPlus-equivalent, strictly worse

	guardPerStack       = 0.10
	guardPlusPerStack   = 0.20
	defensePerStack     = 0.10
	defensePlusPerStack = 0.20
	shakenFactor        = 0.5
	exposedFactor       = 0.35

	critBoostPerStack = 0.05

	// BaseCritChance is the floor crit chance before any crit_boost stacks
	// or card-level bonus_crit%, per spec §4.2 stage 3.
	BaseCritChance = 0.05

	vulnerableFactor     = 1.5
	vulnerablePlusFactor = 2.0
	painFactor           = 1.5
	painPlusFactor       = 2.0
)

// DeriveAttack computes the attacker-side modifiers from their current
// tokens, per spec §4.1 "Attack" derivation.
func DeriveAttack(tokens Tokens) AttackModifiers {
	permBucket := maxOf(
		onePlus(tokens.GetStacks("offense"), offensePerStack),
		onePlus(tokens.GetStacks("offensePlus"), offensePlusPerStack),
	)
	turnBucket := maxOf(
		onePlus(tokens.GetStacks("attack"), attackPerStack),
		onePlus(tokens.GetStacks("attackPlus"), attackPlusPerStack),
	)
	positiveBonus := (permBucket - 1) + (turnBucket - 1)

	negativeMult := minOf(
		powFactor(dullFactor, tokens.GetStacks("dull")),
		powFactor(dullnessFactor, tokens.GetStacks("dullness")),
	)

	damageBonus := tokens.GetStacks("strength") + tokens.GetStacks("sharpened_blade")
	if tokens.Has("fragmentation") {
		damageBonus += 6
	}

	critBoost := float64(tokens.GetStacks("crit_boost")) * critBoostPerStack

	return AttackModifiers{
		AttackMult:  (1 + positiveBonus) * negativeMult,
		DamageBonus: damageBonus,
		CritBoost:   critBoost,
		IgnoreBlock: tokens.Has("armor_piercing"),
		Lifesteal:   lifestealOf(tokens),
	}
}

func lifestealOf(tokens Tokens) float64 {
	if tokens.Has("absorb") {
		return 0.5
	}
	return 0
}

// DefenseModifiers is the pure derivation the Damage Pipeline reads at its
// block and dodge stages (spec §4.1, §4.2 stages 4-5).
type DefenseModifiers struct {
	DefenseMult  float64
	DodgeChance  float64
}

// DeriveDefense computes the defender-side modifiers, per spec §4.1
// "Defense" derivation (same shape as attack, different token names).
func DeriveDefense(tokens Tokens) DefenseModifiers {
	permBucket := maxOf(
		onePlus(tokens.GetStacks("guard"), guardPerStack),
		onePlus(tokens.GetStacks("guardPlus"), guardPlusPerStack),
	)
	turnBucket := maxOf(
		onePlus(tokens.GetStacks("defense"), defensePerStack),
		onePlus(tokens.GetStacks("defensePlus"), defensePlusPerStack),
	)
	positiveBonus := (permBucket - 1) + (turnBucket - 1)

	negativeMult := minOf(
		powFactor(shakenFactor, tokens.GetStacks("shaken")),
		powFactor(exposedFactor, tokens.GetStacks("exposed")),
	)

	dodge := 0.0
	for _, spec := range []struct {
		id     string
		chance float64
	}{
		{"blur", 0.5}, {"blurPlus", 0.75},
		{"dodge", 0.5}, {"dodgePlus", 0.75},
		{"evasion", 0.5},
	} {
		if tokens.Has(spec.id) && spec.chance > dodge {
			dodge = spec.chance
		}
	}

	return DefenseModifiers{
		DefenseMult: (1 + positiveBonus) * negativeMult,
		DodgeChance: dodge,
	}
}

// DamageTakenMult computes the multiplicative product over every active
// vulnerable/vulnerablePlus/pain/painPlus token (spec §4.1 "Damage taken":
// "Π { 1.5 or 2.0 per active ... }" — a product over distinct active
// tokens, not a per-stack exponent).
func DamageTakenMult(tokens Tokens) float64 {
	mult := 1.0
	if tokens.Has("vulnerable") {
		mult *= vulnerableFactor
	}
	if tokens.Has("vulnerablePlus") {
		mult *= vulnerablePlusFactor
	}
	if tokens.Has("pain") {
		mult *= painFactor
	}
	if tokens.Has("painPlus") {
		mult *= painPlusFactor
	}
	return mult
}

func onePlus(stacks int, step float64) float64 {
	if stacks <= 0 {
		return 1
	}
	return 1 + float64(stacks)*step
}

func powFactor(factor float64, stacks int) float64 {
	if stacks <= 0 {
		return 1
	}
	v := 1.0
	for i := 0; i < stacks; i++ {
		v *= factor
	}
	return v
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
