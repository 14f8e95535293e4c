// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ether implements the Ether Engine (spec §4.4): the geometric
// slot-cost curve ether converts into, and the per-combo deflation that
// discourages repeating the same combo for free value every turn.
//
// Purpose:
// Grounded on the teacher's mechanics/resources.Counter (a capped,
// increment/decrement accumulator) — ether is a similar non-negative
// accumulator, but what is capped here is the number of slots its points
// buy (MaxSlots, along a geometric curve) rather than the points
// themselves, which this package does not bound; increments are computed
// by Accumulate rather than supplied directly by the caller.
package ether

import "math"

// MaxSlots bounds how many ether slots a combatant can ever occupy (spec
// §4.4).
const MaxSlots = 10

const (
	slotBaseCost  = 100.0
	slotGrowth    = 1.1
	deflationBase = 0.8
)

// SlotCost returns the cost of slot i (0-indexed): floor(100 * 1.1^i).
func SlotCost(i int) int {
	return int(math.Floor(slotBaseCost * math.Pow(slotGrowth, float64(i))))
}

// CumulativeCost returns the total points required to hold n slots: the
// sum of SlotCost(0..n-1).
func CumulativeCost(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += SlotCost(i)
	}
	return total
}

// SlotsFor returns the largest n (capped at MaxSlots) such that
// CumulativeCost(n) <= points (spec §4.4 "slots_for(points) = largest n
// with cum(n) <= points. Bounded by MAX_SLOTS = 10").
func SlotsFor(points int) int {
	n := 0
	for n < MaxSlots && CumulativeCost(n+1) <= points {
		n++
	}
	return n
}

// DeflationMultiplier returns 0.8^usageCount, the diminishing-returns
// factor for repeating the same combo within one combat (spec §4.4,
// GLOSSARY "Deflation"). Centralized here per spec §9's resolved open
// question (the source computed this in two places with possible drift).
func DeflationMultiplier(usageCount int) float64 {
	return math.Pow(deflationBase, float64(usageCount))
}

// PointsForCard is the base ether contribution of a single resolved card,
// before the combo multiplier and deflation are applied. The spec names
// "points_for_card(card)" but does not pin its formula; this engine
// defines it as the card's raw damage plus block (its total board impact)
// — see the design ledger for the rationale.
func PointsForCard(damage, block int) int {
	return damage + block
}

// UsageCounts tracks how many times each combo name has scored for one
// side this combat (spec §3 "combo-usage counts (player & enemy)").
// Operations are pure, mirroring the rest of the engine's no-mutation
// convention.
type UsageCounts map[string]int

// Count returns how many times name has scored so far.
func (u UsageCounts) Count(name string) int {
	return u[name]
}

// Increment returns a copy of u with name's count incremented by one.
func (u UsageCounts) Increment(name string) UsageCounts {
	next := make(UsageCounts, len(u)+1)
	for k, v := range u {
		next[k] = v
	}
	next[name]++
	return next
}

// Accumulate computes the ether delta for one side's turn (spec §4.4
// "Accumulation") from basePoints, the sum of points_for_card over the
// cards it executed: basePoints × combo_multiplier ×
// deflation_multiplier, where deflation_multiplier = 0.8^usage_count
// using the combo's usage count *before* this score. Returns the delta and
// the updated UsageCounts (combo usage incremented); committing delta to
// the owner's ether total is the caller's responsibility (spec: "After
// accumulation for the turn, commit the delta to the owner's ether and
// increment combo usage").
func Accumulate(basePoints int, comboName string, comboMultiplier float64, usage UsageCounts) (delta int, next UsageCounts) {
	usageCount := usage.Count(comboName)
	deflation := DeflationMultiplier(usageCount)
	delta = int(math.Floor(float64(basePoints) * comboMultiplier * deflation))
	return delta, usage.Increment(comboName)
}
