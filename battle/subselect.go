// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/catalog"
	"github.com/riftkeep/battlecore/commandlog"
	"github.com/riftkeep/battlecore/timeline"
)

// ResolveBreach consumes the pending sub-selection (spec §6
// "resolve_breach"). A `breach`/`create_fencing_cards3`/`execution_squad`
// choice inserts the chosen card as a ghost immediately after the
// triggering item (spec §4.5 "Ghost cards", spec §8 scenario S4); a
// `recall` choice instead stashes the card as a guarantee for next turn's
// hand (spec §9 "Recall: next-turn guaranteed card injection chosen this
// turn") rather than inserting it into the current queue. Both kinds are
// triggered from the same step_once suspension point (battle.specialTriggered
// keeps the triggering card from re-suspending once resolved) rather than
// a second "between turns" suspension mechanism, since step_once is the
// engine's only suspend/resume point. An empty choice skips: nothing is
// inserted or recalled, but the pending selection is still cleared so
// resolution can continue.
func (b *Battle) ResolveBreach(choice string) error {
	if b.BreachSelection == nil {
		return battleerr.NoPendingSelection()
	}
	sel := *b.BreachSelection

	if choice != "" {
		def, err := b.catalog.Card(choice)
		if err != nil {
			return battleerr.InvalidChoice(choice)
		}

		if sel.Kind == "recall" {
			card := catalog.RuntimeCardInstance{DefID: choice, UID: b.nextUID(), Def: def, CreatedBy: sel.TriggerUID}
			b.RecallCard = &card
		} else {
			ghost := catalog.RuntimeCardInstance{
				DefID: choice, UID: b.nextUID(), Def: def,
				Ghost: true, FromFleche: sel.Kind == "fleche", CreatedBy: sel.TriggerUID,
			}
			costs := []int{def.SpeedCost}
			sp := timeline.AssignSP(costs)[0] + b.Queue[sel.InsertAt].SP
			item := timeline.QueueItem{
				Actor: timeline.ActorPlayer, Card: ghost, SP: sp,
				OriginalIndex: sel.InsertAt, SourceUnitID: string(timeline.ActorPlayer),
			}
			b.Queue = timeline.InsertAfter(b.Queue, sel.InsertAt, []timeline.QueueItem{item})
			b.emit(commandlog.CardSelected{Actor: "player", CardUID: ghost.UID, CardID: ghost.DefID, SP: sp})
		}
	}

	if len(b.CreationQueue) > 0 {
		b.BreachSelection = &b.CreationQueue[0]
		b.CreationQueue = b.CreationQueue[1:]
	} else {
		b.BreachSelection = nil
	}
	return nil
}
