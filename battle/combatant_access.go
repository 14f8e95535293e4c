// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/timeline"
	"github.com/riftkeep/battlecore/token"
)

// tokensFor reads the token map for actor (and, for the enemy, the named
// unit). A missing/dead unit reads as an empty map rather than panicking.
func (b *Battle) tokensFor(actor timeline.Actor, unitID string) token.Tokens {
	if actor == timeline.ActorPlayer {
		return b.Player.Tokens
	}
	if u, ok := b.Enemy.UnitByID(unitID); ok {
		return u.Tokens
	}
	return token.Tokens{}
}

func (b *Battle) setTokensFor(actor timeline.Actor, unitID string, tokens token.Tokens) {
	if actor == timeline.ActorPlayer {
		b.Player.Tokens = tokens
		return
	}
	for i := range b.Enemy.Units {
		if b.Enemy.Units[i].ID == unitID {
			b.Enemy.Units[i].Tokens = tokens
			return
		}
	}
}

func (b *Battle) blockFor(actor timeline.Actor, unitID string) int {
	if actor == timeline.ActorPlayer {
		return b.Player.Block
	}
	if u, ok := b.Enemy.UnitByID(unitID); ok {
		return u.Block
	}
	return 0
}

func (b *Battle) setBlockFor(actor timeline.Actor, unitID string, block int) {
	if actor == timeline.ActorPlayer {
		b.Player.Block = block
		return
	}
	for i := range b.Enemy.Units {
		if b.Enemy.Units[i].ID == unitID {
			b.Enemy.Units[i].Block = block
			return
		}
	}
}

func (b *Battle) addBlock(actor timeline.Actor, unitID string, amount int) {
	b.setBlockFor(actor, unitID, b.blockFor(actor, unitID)+amount)
}

// applyDamage subtracts final damage from actor's hp, floored at 0.
// unitID selects which enemy unit takes the hit; an empty/invalid unitID
// for the enemy falls through to the first living unit (spec §4.7 "a card
// referencing a missing target unit falls through to the next living
// unit; if none, the card fizzles").
func (b *Battle) applyDamage(actor timeline.Actor, unitID string, amount int) {
	if actor == timeline.ActorPlayer {
		b.Player.HP -= amount
		if b.Player.HP < 0 {
			b.Player.HP = 0
		}
		return
	}
	if _, ok := b.Enemy.UnitByID(unitID); !ok {
		unitID = b.Enemy.FirstAlive()
	}
	for i := range b.Enemy.Units {
		if b.Enemy.Units[i].ID == unitID {
			b.Enemy.Units[i].HP -= amount
			if b.Enemy.Units[i].HP < 0 {
				b.Enemy.Units[i].HP = 0
			}
			return
		}
	}
}

// healCombatant adds hp back to actor/unitID, capped at max hp (spec §4.7
// "apply regen/poison"; regen is the only healing source end-of-turn
// processing applies).
func (b *Battle) healCombatant(actor timeline.Actor, unitID string, amount int) {
	if actor == timeline.ActorPlayer {
		b.Player.HP += amount
		if b.Player.HP > b.Player.MaxHP {
			b.Player.HP = b.Player.MaxHP
		}
		return
	}
	for i := range b.Enemy.Units {
		if b.Enemy.Units[i].ID == unitID {
			b.Enemy.Units[i].HP += amount
			if b.Enemy.Units[i].HP > b.Enemy.Units[i].MaxHP {
				b.Enemy.Units[i].HP = b.Enemy.Units[i].MaxHP
			}
			return
		}
	}
}

// opposingTarget resolves the default target for a card cast by actor:
// the player always targets the first living enemy unit; the enemy always
// targets the player (single combatant, spec §3).
func (b *Battle) opposingTarget(actor timeline.Actor) (timeline.Actor, string) {
	if actor == timeline.ActorPlayer {
		return timeline.ActorEnemy, b.Enemy.FirstAlive()
	}
	return timeline.ActorPlayer, ""
}
