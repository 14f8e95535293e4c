// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/commandlog"
	"github.com/riftkeep/battlecore/ether"
	"github.com/riftkeep/battlecore/timeline"
	"github.com/riftkeep/battlecore/token"
)

// endOfTurnEtherTick is the enemy's passive ether gain each turn, feeding
// next turn's planner budget. Not pinned by the spec (§4.7 only names
// "enemy ether tick" without a numeric rule); chosen as a small flat gain.
// The result is clamped to Enemy.EtherCap when that is positive, so an
// enemy already at its cap (where NewBattle starts it) gains nothing.
const endOfTurnEtherTick = 15

// FinishTurn applies end-of-turn effects (ether settlement, regen/poison,
// turn-token decay, enemy ether tick), checks for death, and transitions
// to the next select phase or a terminal phase (spec §6 "finish_turn",
// spec §4.7 "end_of_turn").
func (b *Battle) FinishTurn() error {
	if b.Phase != PhaseEndOfTurn {
		return battleerr.WrongPhase(string(PhaseEndOfTurn), string(b.Phase))
	}

	b.settleEther()

	b.tickCombatant(timeline.ActorPlayer, "")
	for _, u := range b.Enemy.Units {
		if u.Alive() {
			b.tickCombatant(timeline.ActorEnemy, u.ID)
		}
	}

	b.Enemy.Ether += endOfTurnEtherTick
	if b.Enemy.EtherCap > 0 && b.Enemy.Ether > b.Enemy.EtherCap {
		b.Enemy.Ether = b.Enemy.EtherCap
	}

	b.emit(commandlog.TurnEnded{})

	if b.Player.HP <= 0 {
		b.Phase = PhaseDefeat
		b.emit(commandlog.BattleEnded{Winner: "enemy"})
		return nil
	}
	if !b.Enemy.AnyAlive() {
		b.Phase = PhaseVictory
		b.emit(commandlog.BattleEnded{Winner: "player"})
		return nil
	}

	b.Turn++
	b.Flags.RewindUsed = false
	b.Selected = nil
	b.drawHand()
	b.refreshEnemyPlan()

	b.Phase = PhaseSelect
	b.emit(phaseChanged(PhaseEndOfTurn, PhaseSelect))
	return nil
}

// tickCombatant applies regen healing and burn/poison damage, then
// decrements turn-type tokens, for one side (spec §4.1 "process_turn_end",
// §4.7 "apply regen/poison; decrement turn tokens").
func (b *Battle) tickCombatant(actor timeline.Actor, unitID string) {
	tokens := b.tokensFor(actor, unitID)

	next, regenHeal := token.ProcessRegen(tokens, string(actor))
	tokens = next
	next, burnDamage := token.ProcessBurn(tokens, string(actor))
	tokens = next
	next, poisonDamage := token.ProcessPoison(tokens, string(actor))
	tokens = next

	next, events := token.ProcessTurnEnd(tokens, b.catalog, string(actor))
	tokens = next
	b.emitAll(events)

	b.setTokensFor(actor, unitID, tokens)
	if regenHeal > 0 {
		b.healCombatant(actor, unitID, regenHeal)
		b.emit(commandlog.RegenApplied{Actor: string(actor), Amount: regenHeal})
	}
	if dmg := burnDamage + poisonDamage; dmg > 0 {
		b.applyDamage(actor, unitID, dmg)
	}
}

// settleEther closes out the resolve phase's ether bookkeeping for both
// sides (spec §4.4 "After accumulation for the turn, commit the delta to
// the owner's ether and increment combo usage"): each side's per-card
// point contributions, summed over every card it executed this turn, are
// combined with its single detected combo and the usage count as it stood
// before this turn, then committed and the usage count bumped exactly
// once.
func (b *Battle) settleEther() {
	b.settleEtherFor(timeline.ActorPlayer)
	b.settleEtherFor(timeline.ActorEnemy)
}

func (b *Battle) settleEtherFor(actor timeline.Actor) {
	if actor == timeline.ActorPlayer && !b.hadPlayerCards {
		return
	}
	if actor == timeline.ActorEnemy && !b.hadEnemyCards {
		return
	}

	result := b.PlayerCombo
	usage := b.ComboUsagePlayer
	pending := b.PendingEtherPlayer
	if actor == timeline.ActorEnemy {
		result, usage, pending = b.EnemyCombo, b.ComboUsageEnemy, b.PendingEtherEnemy
	}

	delta, next := ether.Accumulate(pending, string(result.Name), result.Multiplier, usage)

	if actor == timeline.ActorPlayer {
		b.Player.Ether += delta
		b.ComboUsagePlayer = next
		b.PendingEtherPlayer = 0
	} else {
		b.Enemy.Ether += delta
		b.ComboUsageEnemy = next
		b.PendingEtherEnemy = 0
	}
	b.emit(commandlog.EtherGained{Actor: string(actor), Amount: delta, ComboName: string(result.Name), Multiplier: result.Multiplier})
}
