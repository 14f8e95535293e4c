// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package planner implements the Enemy Planner (spec §4.6): drafting the
// enemy's action set for a turn from each unit's deck, an ether-derived
// budget, and a scoring mode, then assigning speed points.
//
// Purpose:
// Grounded on the teacher's round-robin unit/turn assignment shape and on
// catalog.EnemyDef/EnemyUnitDef for deck and cap data; nothing in the
// example pack implements scored deck drafting, so the scoring and capping
// logic here is new, built to the ranked-condition style spec.md uses for
// the combo detector.
package planner

import (
	"sort"

	"github.com/riftkeep/battlecore/catalog"
)

// Mode selects how drafted cards are weighted against each other.
type Mode string

const (
	ModeAggressive Mode = "aggressive"
	ModeDefensive  Mode = "defensive"
	ModeBalanced   Mode = "balanced"
)

// Origin distinguishes a freshly-generated plan from one a card effect has
// since edited, replacing the source's boolean "manually_modified" flag
// (spec §9 "Manually modified flag as coordination").
type Origin string

const (
	OriginNone      Origin = ""
	OriginGenerated Origin = "generated"
	OriginEdited    Origin = "edited"
)

// Action is one drafted enemy card, attributed to the unit that chose it,
// still missing its sp (assigned by battle via timeline.AssignSP).
type Action struct {
	Card         catalog.RuntimeCardInstance
	SourceUnitID string
}

// Plan is the enemy's action set for the turn plus the metadata the state
// machine needs to decide whether to regenerate it (spec §4.6 step 5).
type Plan struct {
	Mode    Mode
	Origin  Origin
	Actions []Action
	Hint    string
}

// UIDFunc mints a fresh runtime uid for a drafted card instance. The
// planner never invents its own uid scheme; it defers to whatever the
// owning Battle uses (spec §9 RuntimeCardInstance belongs to the caller's
// identity space).
type UIDFunc func() string

// Draft builds a fresh Plan for an enemy (spec §4.6 "Algorithm"). It never
// overwrites an existing Origin == OriginEdited plan; callers must check
// that themselves before calling Draft, mirroring the source's idempotence
// contract rather than hiding it inside this function.
func Draft(enemy catalog.EnemyDef, cat *catalog.Catalog, etherSlots int, mintUID UIDFunc) Plan {
	mode := Mode(enemy.Mode)
	if mode == "" {
		mode = ModeBalanced
	}

	budget := 0
	for _, u := range enemy.Units {
		budget += u.CardsPerTurn
	}
	if etherSlots < budget {
		budget = etherSlots
	}
	if budget < 0 {
		budget = 0
	}

	chosenIDs := make(map[string]bool)
	categoryCounts := make(map[string]int)
	var actions []Action

	unitIdx := 0
	deckCursor := make([]int, len(enemy.Units))
	for len(actions) < budget {
		progressed := false
		for u := 0; u < len(enemy.Units); u++ {
			if len(actions) >= budget {
				break
			}
			unit := enemy.Units[(unitIdx+u)%len(enemy.Units)]
			card, idx, ok := nextEligible(unit.Deck, deckCursor[(unitIdx+u)%len(enemy.Units)], cat, mode, enemy, chosenIDs, categoryCounts)
			if !ok {
				continue
			}
			deckCursor[(unitIdx+u)%len(enemy.Units)] = idx + 1
			progressed = true

			def, err := cat.Card(card)
			if err != nil {
				continue
			}
			inst := catalog.RuntimeCardInstance{DefID: def.ID, UID: mintUID(), Def: def}
			actions = append(actions, Action{Card: inst, SourceUnitID: unit.ID})

			if enemy.UniqueCards {
				chosenIDs[card] = true
			}
			if enemy.CategoryCaps != nil {
				categoryCounts[string(def.Category)]++
			}
		}
		unitIdx++
		if !progressed {
			break
		}
	}

	return Plan{
		Mode:    mode,
		Origin:  OriginGenerated,
		Actions: actions,
		Hint:    Hint(mode, actions),
	}
}

// nextEligible scans unit's whole deck, starting at cursor and wrapping
// around, for the highest-scoring card (by Score under mode) that
// satisfies the enemy's uniqueness and category-cap constraints; on a tie
// the card reached first from cursor wins.
func nextEligible(deck []string, cursor int, cat *catalog.Catalog, mode Mode, enemy catalog.EnemyDef, chosen map[string]bool, categoryCounts map[string]int) (string, int, bool) {
	if len(deck) == 0 {
		return "", cursor, false
	}
	best := -1
	bestScore := -1.0
	for i := cursor; i < cursor+len(deck); i++ {
		id := deck[i%len(deck)]
		if enemy.UniqueCards && chosen[id] {
			continue
		}
		def, err := cat.Card(id)
		if err != nil {
			continue
		}
		if cap, ok := enemy.CategoryCaps[string(def.Category)]; ok && categoryCounts[string(def.Category)] >= cap {
			continue
		}
		score := Score(def, mode)
		if score > bestScore {
			bestScore = score
			best = i % len(deck)
		}
	}
	if best < 0 {
		return "", cursor, false
	}
	return deck[best], best, true
}

// Score weights a card def by mode, higher is more preferred (spec §4.6
// step 2 "draft... filtered by mode preference... scoring over card base
// values").
func Score(def catalog.CardDef, mode Mode) float64 {
	switch mode {
	case ModeAggressive:
		return float64(def.Damage)*2 + float64(def.Block)*0.5
	case ModeDefensive:
		return float64(def.Block)*2 + float64(def.Damage)*0.5
	default:
		return float64(def.Damage) + float64(def.Block)
	}
}

// Hint synthesizes the one-line insight-reveal text (spec §4.6 "Hint
// output").
func Hint(mode Mode, actions []Action) string {
	counts := map[string]int{}
	for _, a := range actions {
		counts[string(a.Card.Def.Category)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hint := "enemy favors " + string(mode)
	for _, k := range keys {
		hint += " · " + k + "×" + itoa(counts[k])
	}
	return hint
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
