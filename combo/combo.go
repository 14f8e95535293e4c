// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package combo implements the Combo Detector (spec §4.3): a poker-style
// classification of a hand's action_cost multiset into a named, multiplier
// bearing category.
//
// Purpose:
// Detect is deterministic and side-effect-free (spec §4.3, §8 property 7:
// ghost cards must not affect the result). It never mutates its input and
// never touches an RNG, unlike the combo-adjacent Ether Engine which
// consumes this package's output.
package combo

import "sort"

// Card is the minimal view the detector needs over a runtime card
// instance. Declared locally (rather than importing catalog's CardDef or
// a battle package type) so combo has zero dependency on the rest of the
// engine; catalog.RuntimeCardInstance satisfies this directly.
type Card interface {
	ActionCost() int
	ComboCategory() string // "attack", "defense", or "general"
	HasTrait(trait string) bool
	IsGhost() bool
}

// Name enumerates the ranked combo categories (spec §4.3 table), ordered
// here from weakest to strongest for readability; Detect always returns
// the highest-ranked match.
type Name string

const (
	HighCard    Name = "high_card"
	Pair        Name = "pair"
	TwoPair     Name = "two_pair"
	Triple      Name = "triple"
	Flush       Name = "flush"
	FullHouse   Name = "full_house"
	FourOfAKind Name = "four_of_a_kind"
	FiveOfAKind Name = "five_of_a_kind"
)

// Result is what Detect returns: the matched category, its scoring
// multiplier, and the action_cost values that participated (empty for
// flush, which spec §4.3 says "returns null" for bonus_keys).
type Result struct {
	Name       Name
	Multiplier float64
	BonusKeys  []int
}

// Detect classifies cards per spec §4.3. Cards with the "outcast" trait
// and ghost cards are excluded before classification (spec §8 property 7).
func Detect(cards []Card) Result {
	filtered := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.HasTrait("outcast") || c.IsGhost() {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		return Result{Name: HighCard, Multiplier: 1.0}
	}

	freq := map[int]int{}
	for _, c := range filtered {
		freq[c.ActionCost()]++
	}
	withCount := func(n int) []int {
		var costs []int
		for cost, count := range freq {
			if count == n {
				costs = append(costs, cost)
			}
		}
		sort.Ints(costs)
		return costs
	}

	if five := withCount(5); len(five) > 0 {
		return Result{Name: FiveOfAKind, Multiplier: 5.0, BonusKeys: five[:1]}
	}
	if four := withCount(4); len(four) > 0 {
		return Result{Name: FourOfAKind, Multiplier: 4.0, BonusKeys: four[:1]}
	}

	triples := withCount(3)
	pairs := withCount(2)
	if len(triples) > 0 && len(pairs) > 0 {
		return Result{Name: FullHouse, Multiplier: 3.75, BonusKeys: []int{triples[0], pairs[0]}}
	}
	if isFlush(filtered) {
		return Result{Name: Flush, Multiplier: 3.5}
	}
	if len(triples) > 0 {
		return Result{Name: Triple, Multiplier: 3.0, BonusKeys: triples[:1]}
	}
	if len(pairs) >= 2 {
		return Result{Name: TwoPair, Multiplier: 2.5, BonusKeys: pairs[:2]}
	}
	if len(pairs) == 1 {
		return Result{Name: Pair, Multiplier: 2.0, BonusKeys: pairs}
	}
	return Result{Name: HighCard, Multiplier: 1.0}
}

// isFlush reports whether cards number at least 4 and share a single
// category bucket: all "attack", or all drawn from {"general", "defense"}
// (spec §4.3: "all-attack or all-(general/defense)").
func isFlush(cards []Card) bool {
	if len(cards) < 4 {
		return false
	}
	allAttack, allGeneralDefense := true, true
	for _, c := range cards {
		switch c.ComboCategory() {
		case "attack":
			allGeneralDefense = false
		case "general", "defense":
			allAttack = false
		default:
			allAttack, allGeneralDefense = false, false
		}
	}
	return allAttack || allGeneralDefense
}
