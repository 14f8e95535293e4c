// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package damage implements the Damage Pipeline (spec §4.2): the ordered,
// deterministic stage sequence that turns a card's base payload plus the
// attacker/defender token modifiers into a final damage number.
//
// Purpose:
// "Stage order and semantics are contract-critical" (spec §4.2) — this
// package exists solely to pin that order down as code, with every stage
// run in sequence inside calculateOne, so no caller can accidentally reorder crit-before-attack-mult or
// skip vulnerability. Every random decision is read from an injected
// rng.Source (spec §4.2 "Determinism... no global random").
package damage

import (
	"math"

	"github.com/riftkeep/battlecore/token"
)

// Source is the randomness seam a single damage calculation consumes.
// Satisfied by *rng.PCG and *rng.Scripted; declared locally so this
// package does not import rng, avoiding a needless dependency edge for
// what is really just one method.
type Source interface {
	Float64() float64
}

// Input bundles everything one hit's calculation needs. The caller
// (battle's resolveItem) is responsible for deriving AttackMult,
// DodgeChance, etc. via the token package before calling Calculate.
type Input struct {
	BaseDamage  int
	DamageBonus int
	AttackMult  float64
	ExtraMult   float64 // cross-bonus damage_mult; 1.0 if none

	CritBoost        float64 // additive crit chance from tokens
	BonusCritPercent float64 // additive crit chance from the card itself
	GuaranteedCrit   bool

	DodgeChance        float64
	IgnoreEvasionPct   float64

	IgnoreBlock     bool
	CrushMultiplier int // >=1; defaults to 1 if zero

	DamageTakenMult float64 // product of vulnerable/pain tokens
	DamageReduction int     // fixed flat reduction, applied last
}

// HitResult is the outcome of a single hit (spec §4.2's single-hit
// calculate_damage).
type HitResult struct {
	Final          int
	Blocked        int
	IsCrit         bool
	IsDodged       bool
	RemainingBlock int
}

// Result is the outcome of a (possibly multi-hit) card resolution.
type Result struct {
	Hits           []HitResult
	TotalFinal     int
	TotalBlocked   int
	RemainingBlock int
}

// Calculate runs Input through the ordered pipeline hits times, threading
// defenderBlock through each iteration (spec §4.2 "Multi-hit"). hits < 1
// is treated as 1.
func Calculate(in Input, defenderBlock, hits int, src Source) Result {
	if hits < 1 {
		hits = 1
	}
	if in.CrushMultiplier < 1 {
		in.CrushMultiplier = 1
	}
	if in.ExtraMult == 0 {
		in.ExtraMult = 1
	}

	block := defenderBlock
	result := Result{Hits: make([]HitResult, 0, hits)}
	for i := 0; i < hits; i++ {
		hit := calculateOne(in, block, src)
		block = hit.RemainingBlock
		result.Hits = append(result.Hits, hit)
		result.TotalFinal += hit.Final
		result.TotalBlocked += hit.Blocked
	}
	result.RemainingBlock = block
	return result
}

func calculateOne(in Input, defenderBlock int, src Source) HitResult {
	// Stage 1: base.
	d := in.BaseDamage + in.DamageBonus

	// Stage 2: attack multiplier.
	d = int(math.Floor(float64(d) * in.AttackMult * in.ExtraMult))

	// Stage 3: crit roll.
	critChance := minF(1, token.BaseCritChance+in.CritBoost+in.BonusCritPercent)
	isCrit := in.GuaranteedCrit || src.Float64() < critChance
	if isCrit {
		d *= 2
	}

	// Stage 4: dodge roll.
	dodgeChance := in.DodgeChance * (1 - in.IgnoreEvasionPct)
	if src.Float64() < dodgeChance {
		return HitResult{Final: 0, IsCrit: isCrit, IsDodged: true, RemainingBlock: defenderBlock}
	}

	// Stage 5: block.
	blocked := 0
	remainingBlock := defenderBlock
	if !in.IgnoreBlock {
		effective := defenderBlock / in.CrushMultiplier
		blocked = min(effective, d)
		d -= blocked
		consumed := min(defenderBlock, blocked*in.CrushMultiplier)
		remainingBlock = defenderBlock - consumed
	}

	// Stage 6: vulnerability.
	if in.DamageTakenMult != 0 {
		d = int(math.Floor(float64(d) * in.DamageTakenMult))
	}

	// Stage 7: fixed reduction.
	d -= in.DamageReduction
	if d < 0 {
		d = 0
	}

	return HitResult{
		Final:          d,
		Blocked:        blocked,
		IsCrit:         isCrit,
		IsDodged:       false,
		RemainingBlock: remainingBlock,
	}
}

// Lifesteal computes the HP recovered from a resolved hit (spec §4.2
// "Derived").
func Lifesteal(finalDamage int, ratio float64) int {
	return int(math.Floor(float64(finalDamage) * ratio))
}

// Reflect computes the damage bounced back to the attacker when the
// defender has reflect stacks active (spec §4.2 "Derived").
func Reflect(incoming int, reflectStacks int) int {
	return int(math.Floor(float64(incoming) * 0.5 * float64(reflectStacks)))
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
