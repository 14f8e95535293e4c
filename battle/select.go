// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/catalog"
	"github.com/riftkeep/battlecore/commandlog"
	"github.com/riftkeep/battlecore/ether"
	"github.com/riftkeep/battlecore/planner"
)

// drawHand fills Hand up to Player.HandSize from the player's deck (spec
// §4.7 "select: draw hand to limit"). The drawing rule itself — which
// cards come up — is an external collaborator's concern (deck shuffling
// and draw piles belong to run-state, spec §1 Out of scope); here it
// cycles the configured deck list deterministically so the engine never
// needs its own shuffle RNG draw.
func (b *Battle) drawHand() {
	b.Hand = b.Hand[:0]

	// A recall picked last turn guarantees its card in this turn's hand
	// before the regular draw fills the remaining slots (spec §9 "Recall:
	// next-turn guaranteed card injection chosen this turn").
	if b.RecallCard != nil {
		b.Hand = append(b.Hand, *b.RecallCard)
		b.RecallCard = nil
	}

	deck := b.Spec.Player.DeckCardIDs
	if len(deck) == 0 {
		return
	}
	want := b.Player.HandSize
	if want <= 0 {
		want = len(deck)
	}
	for i := 0; len(b.Hand) < want; i++ {
		id := deck[i%len(deck)]
		def, _ := b.catalog.Card(id)
		b.Hand = append(b.Hand, catalog.RuntimeCardInstance{DefID: id, UID: b.nextUID(), Def: def})
	}
}

// refreshEnemyPlan drafts a new enemy plan unless the current one was
// edited by an in-flight effect (spec §4.6 step 5, spec §9 "Manually
// modified flag as coordination" replaced by typed Origin).
func (b *Battle) refreshEnemyPlan() {
	if b.Enemy.Plan.Origin == planner.OriginEdited {
		return
	}
	slots := ether.SlotsFor(b.Enemy.Ether)
	b.Enemy.Plan = planner.Draft(b.Enemy.Def, b.catalog, slots, b.nextUID)
}

// SubmitSelection validates and records the player's chosen cards for the
// turn (spec §6 "submit_selection"). uids must each name a card currently
// in Hand. On success the battle transitions select -> respond.
func (b *Battle) SubmitSelection(uids []string) error {
	if b.Phase != PhaseSelect {
		return battleerr.WrongPhase(string(PhaseSelect), string(b.Phase))
	}
	if len(uids) > MaxSubmitCards {
		return battleerr.TooManyCards(len(uids), MaxSubmitCards)
	}

	chosen := make([]catalog.RuntimeCardInstance, 0, len(uids))
	totalSpeed, totalAction := 0, 0
	for _, uid := range uids {
		inst, ok := findByUID(b.Hand, uid)
		if !ok {
			return battleerr.NotInHand(uid)
		}
		chosen = append(chosen, inst)
		totalSpeed += inst.Def.SpeedCost
		totalAction += inst.Def.ActionCost
	}
	if totalSpeed > b.Player.MaxSpeed {
		return battleerr.OverSpeed(totalSpeed, b.Player.MaxSpeed)
	}
	if totalAction > b.Player.MaxEnergy {
		return battleerr.OverAction(totalAction, b.Player.MaxEnergy)
	}

	b.Selected = chosen
	sp := runningSP(chosen)
	for i, inst := range chosen {
		b.emit(commandlog.CardSelected{
			Actor: "player", CardUID: inst.UID, CardID: inst.DefID,
			SP: sp[i], ActionID: i,
		})
	}

	b.snapshotForRespond()
	b.Phase = PhaseRespond
	b.emit(commandlog.PhaseChanged{From: string(PhaseSelect), To: string(PhaseRespond)})
	return nil
}

func runningSP(cards []catalog.RuntimeCardInstance) []int {
	costs := make([]int, len(cards))
	for i, c := range cards {
		costs[i] = c.Def.SpeedCost
	}
	sp := make([]int, len(costs))
	total := 0
	for i, c := range costs {
		total += c
		sp[i] = total
	}
	return sp
}

func findByUID(cards []catalog.RuntimeCardInstance, uid string) (catalog.RuntimeCardInstance, bool) {
	for _, c := range cards {
		if c.UID == uid {
			return c, true
		}
	}
	return catalog.RuntimeCardInstance{}, false
}
