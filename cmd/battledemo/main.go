// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package main demonstrates driving one battle from construction through
// its terminal phase, printing each command-log event as it is emitted.
package main

import (
	"fmt"
	"log"

	"github.com/riftkeep/battlecore/battle"
	"github.com/riftkeep/battlecore/catalog"
)

func demoCatalog() *catalog.Catalog {
	cards := []catalog.CardDef{
		{ID: "strike", Name: "Strike", Category: catalog.CategoryAttack, SpeedCost: 2, ActionCost: 1, Damage: 10, Hits: 1},
		{ID: "flurry", Name: "Flurry", Category: catalog.CategoryAttack, SpeedCost: 3, ActionCost: 2, Damage: 4, Hits: 3},
		{ID: "guard", Name: "Guard", Category: catalog.CategoryDefense, SpeedCost: 1, ActionCost: 1, Block: 8},
		{ID: "claw", Name: "Claw", Category: catalog.CategoryAttack, SpeedCost: 1, ActionCost: 1, Damage: 5},
		{ID: "bite", Name: "Bite", Category: catalog.CategoryAttack, SpeedCost: 2, ActionCost: 1, Damage: 7},
	}
	enemies := []catalog.EnemyDef{
		{
			ID: "dire_wolf", Name: "Dire Wolf", Mode: "aggressive", EtherCapacity: 150,
			Units: []catalog.EnemyUnitDef{
				{ID: "wolf", Name: "Dire Wolf", HP: 40, Emoji: "🐺", Deck: []string{"claw", "bite"}, CardsPerTurn: 2},
			},
		},
	}
	return catalog.New(cards, nil, enemies, nil)
}

func demoSpec() catalog.EncounterSpec {
	return catalog.EncounterSpec{
		ID: "demo-1", EnemyID: "dire_wolf",
		Player: catalog.PlayerLoadout{
			DeckCardIDs: []string{"strike", "flurry", "guard"},
			MaxHP:       50, MaxSpeed: 12, MaxEnergy: 8, HandSize: 3, Insight: 1, EtherCap: 100,
		},
	}
}

func main() {
	cat := demoCatalog()
	b, err := battle.NewBattle(demoSpec(), cat, 42)
	if err != nil {
		log.Fatalf("new battle: %v", err)
	}

	cursor := 0
	printNewEvents := func() {
		events := b.EventsSince(cursor)
		for _, ev := range events {
			fmt.Printf("  %T %+v\n", ev, ev)
		}
		cursor += len(events)
	}

	for {
		switch b.Phase {
		case battle.PhaseSelect:
			uids := make([]string, 0, len(b.Hand))
			for _, c := range b.Hand {
				uids = append(uids, c.UID)
			}
			fmt.Printf("turn %d: submitting %d cards\n", b.Turn, len(uids))
			if err := b.SubmitSelection(uids); err != nil {
				log.Fatalf("submit_selection: %v", err)
			}
			printNewEvents()
		case battle.PhaseRespond:
			if err := b.BeginResolve(); err != nil {
				log.Fatalf("begin_resolve: %v", err)
			}
			printNewEvents()
		case battle.PhaseResolve:
			if _, err := b.StepOnce(); err != nil {
				log.Fatalf("step_once: %v", err)
			}
			printNewEvents()
		case battle.PhaseEndOfTurn:
			if err := b.FinishTurn(); err != nil {
				log.Fatalf("finish_turn: %v", err)
			}
			printNewEvents()
		case battle.PhaseVictory, battle.PhaseDefeat, battle.PhaseAborted:
			printNewEvents()
			fmt.Printf("battle ended: %s\n", b.Phase)
			return
		}
	}
}
