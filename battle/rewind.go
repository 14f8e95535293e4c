// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/catalog"
)

// snapshotForRespond captures a deep copy of hand/selected/player/enemy on
// entering respond (spec §4.5 "Rewind: upon entering respond, take
// respond_snapshot").
func (b *Battle) snapshotForRespond() {
	b.respondSnapshot = &snapshot{
		hand:     cloneCards(b.Hand),
		selected: cloneCards(b.Selected),
		player:   clonePlayer(b.Player),
		enemy:    cloneEnemy(b.Enemy),
	}
}

// Rewind restores the respond_snapshot and returns to select, usable at
// most once per turn (spec §6 "rewind", spec §8 scenario S5).
func (b *Battle) Rewind() error {
	if b.Phase != PhaseRespond {
		return battleerr.WrongPhase(string(PhaseRespond), string(b.Phase))
	}
	if b.Flags.RewindUsed {
		return battleerr.RewindAlreadyUsed()
	}
	if b.respondSnapshot == nil {
		return battleerr.RewindNoSnapshot()
	}

	b.Hand = cloneCards(b.respondSnapshot.hand)
	b.Selected = cloneCards(b.respondSnapshot.selected)
	b.Player = clonePlayer(b.respondSnapshot.player)
	b.Enemy = cloneEnemy(b.respondSnapshot.enemy)
	b.Flags.RewindUsed = true

	b.Phase = PhaseSelect
	b.emit(phaseChanged(PhaseRespond, PhaseSelect))
	return nil
}

func cloneCards(cards []catalog.RuntimeCardInstance) []catalog.RuntimeCardInstance {
	out := make([]catalog.RuntimeCardInstance, len(cards))
	copy(out, cards)
	return out
}

func clonePlayer(p PlayerState) PlayerState {
	next := p
	next.Tokens = p.Tokens.Clone()
	return next
}

func cloneEnemy(e EnemyState) EnemyState {
	next := e
	next.Units = make([]EnemyUnitState, len(e.Units))
	for i, u := range e.Units {
		nu := u
		nu.Tokens = u.Tokens.Clone()
		next.Units[i] = nu
	}
	return next
}
