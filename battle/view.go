// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/commandlog"
)

// EnemyUnitView is the insight-gated projection of one enemy unit (spec
// §6 "view... includes insight-gated enemy info", §9 "Insight").
type EnemyUnitView struct {
	ID       string
	Name     string
	HP       int
	MaxHP    int
	Block    int
	Tokens   map[string]int
	Passives []string // only populated when insight >= 2
}

// EnemySnapshot is the read-only enemy projection a view exposes.
type EnemySnapshot struct {
	Units    []EnemyUnitView
	PlanHint string // only populated when insight >= 1
	PlanMode string // only populated when insight >= 3
}

// BattleSnapshot is the read-only projection external callers receive
// (spec §6 "view(battle) -> BattleSnapshot").
type BattleSnapshot struct {
	Turn   int
	Phase  Phase
	Player PlayerState
	Enemy  EnemySnapshot
	Hand   int // count only; card identities come from events/selected
}

// View builds a read-only snapshot, revealing more enemy detail as
// Player.Insight rises (spec §9 "Insight: a scalar from -3 to +3
// controlling how much enemy information the view projection reveals").
func (b *Battle) View() BattleSnapshot {
	insight := b.Player.Insight

	units := make([]EnemyUnitView, 0, len(b.Enemy.Units))
	for _, u := range b.Enemy.Units {
		view := EnemyUnitView{ID: u.ID, Name: u.Name, HP: u.HP, MaxHP: u.MaxHP, Block: u.Block}
		if insight >= 0 {
			view.Tokens = map[string]int(u.Tokens.Clone())
		}
		if insight >= 2 {
			view.Passives = append([]string{}, u.Passives...)
		}
		units = append(units, view)
	}

	enemy := EnemySnapshot{Units: units}
	if insight >= 1 {
		enemy.PlanHint = b.Enemy.Plan.Hint
	}
	if insight >= 3 {
		enemy.PlanMode = string(b.Enemy.Plan.Mode)
	}

	return BattleSnapshot{
		Turn: b.Turn, Phase: b.Phase, Player: b.Player, Enemy: enemy, Hand: len(b.Hand),
	}
}

// EventsSince returns every event recorded since cursor (spec §6
// "events_since(battle, cursor) -> [Event]").
func (b *Battle) EventsSince(cursor int) []commandlog.Event {
	return b.Log.Since(cursor)
}

// AbortBattle transitions to the aborted terminal phase and emits
// BattleEnded with winner "aborted"; the rest of the Battle's state is
// left as it was (spec §5 "Cancellation... the host may issue
// abort_battle() which transitions to [defeat] (or an explicit aborted
// terminal) and emits BattleEnded. No partial state is visible to
// consumers after abort.").
func (b *Battle) AbortBattle() {
	b.Phase = PhaseAborted
	b.emit(commandlog.BattleEnded{Winner: "aborted"})
}
