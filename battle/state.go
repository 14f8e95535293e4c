// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package battle implements the Battle State Machine (spec §4.7) and the
// external interface (spec §6): the single owner of one combat encounter's
// state, composing the Token Engine, Damage Pipeline, Combo Detector,
// Ether Engine, Timeline Scheduler, and Enemy Planner into turn-by-turn
// command handlers.
//
// Purpose:
// Grounded on the teacher's game.Context[T] pattern of bundling owned data
// with the infra needed to act on it, and on core's guard-then-mutate
// command shape (validate, then apply, then emit events) — but unlike the
// teacher's generic action dispatch, here the command set is the fixed,
// closed set spec §6 names, each its own function rather than a string-
// keyed variant (spec §9 "Central god reducer... replace with a closed set
// of Command variants").
package battle

import (
	"github.com/google/uuid"

	"github.com/riftkeep/battlecore/catalog"
	"github.com/riftkeep/battlecore/combo"
	"github.com/riftkeep/battlecore/commandlog"
	"github.com/riftkeep/battlecore/ether"
	"github.com/riftkeep/battlecore/planner"
	"github.com/riftkeep/battlecore/rng"
	"github.com/riftkeep/battlecore/timeline"
	"github.com/riftkeep/battlecore/token"
)

// Phase is one state in the battle state machine (spec §4.7). sub_select
// is modeled orthogonally via BreachSelection rather than as its own
// Phase value, since it suspends whichever phase it interrupts rather than
// replacing it.
type Phase string

const (
	PhaseInit       Phase = "init"
	PhaseSelect     Phase = "select"
	PhaseRespond    Phase = "respond"
	PhaseResolve    Phase = "resolve"
	PhaseEndOfTurn  Phase = "end_of_turn"
	PhaseVictory    Phase = "victory"
	PhaseDefeat     Phase = "defeat"
	PhaseAborted    Phase = "aborted"
)

// MaxSubmitCards bounds selected per turn (spec §3 invariant 3). It is a
// fixed limit; no EncounterSpec field changes it.
const MaxSubmitCards = 5

// EnemyUnitState is one unit's mutable runtime state (spec §3 "Enemy
// additionally holds units").
type EnemyUnitState struct {
	ID       string
	Name     string
	HP       int
	MaxHP    int
	Block    int
	Emoji    string
	Tokens   token.Tokens
	Passives []string
}

// Alive reports whether the unit can still act or be targeted.
func (u EnemyUnitState) Alive() bool { return u.HP > 0 }

// Combatant is the shared shape of the player's and (per-unit) enemy's
// mutable battle stats (spec §3 "Combatant state").
type Combatant struct {
	HP       int
	MaxHP    int
	Block    int
	Tokens   token.Tokens
	Strength int
	Agility  int
}

// PlayerState is the player half of Battle (spec §3).
type PlayerState struct {
	Combatant
	Insight   int
	MaxSpeed  int
	MaxEnergy int
	HandSize  int
	Ether     int
	EtherCap  int
}

// EnemyState is the enemy half of Battle: its units plus planner/ether
// bookkeeping shared across them (spec §3).
type EnemyState struct {
	Def           catalog.EnemyDef
	Units         []EnemyUnitState
	Ether         int
	EtherCap      int
	Plan          planner.Plan
}

// FirstAlive returns the id of the first living unit, or "" if none
// remain. Used to re-target cards whose original unit has died (spec §4.7
// "falls through to the next living unit").
func (e EnemyState) FirstAlive() string {
	for _, u := range e.Units {
		if u.Alive() {
			return u.ID
		}
	}
	return ""
}

// UnitByID finds a unit by id, reporting whether it was found.
func (e EnemyState) UnitByID(id string) (EnemyUnitState, bool) {
	for _, u := range e.Units {
		if u.ID == id {
			return u, true
		}
	}
	return EnemyUnitState{}, false
}

// AnyAlive reports whether any enemy unit still has hp > 0.
func (e EnemyState) AnyAlive() bool {
	for _, u := range e.Units {
		if u.Alive() {
			return true
		}
	}
	return false
}

// PendingSelection is one offered choice set awaiting the player's pick,
// replacing the source's setTimeout-chained sub-selection flow with an
// owned FIFO value (spec §9 "Breach/creation multi-selection").
type PendingSelection struct {
	TriggerUID string   // uid of the card instance that spawned this selection
	Kind       string   // "breach", "create_fencing_cards3", "execution_squad", "recall"
	Offered    []string // card ids the player may choose among
	InsertAt   int      // q_index to insert the resulting ghost after
}

// Flags bundles the single-use/one-shot battle flags the source tracked as
// loose booleans (spec §3 "respond_snapshot?", §4.7 rewind).
type Flags struct {
	RewindUsed bool
}

// Battle is the single owned value a combat encounter lives in (spec §3
// "Battle state"). The phase-transition methods return an error (StepOnce
// also a StepOutcome); View and EventsSince only read, and AbortBattle
// returns nothing. Its state fields are exported and can also be set
// directly.
type Battle struct {
	ID   string
	Spec catalog.EncounterSpec

	catalog *catalog.Catalog
	rng     rng.Source
	seed    uint64

	Turn  int
	Phase Phase

	Player PlayerState
	Enemy  EnemyState

	Hand     []catalog.RuntimeCardInstance
	Selected []catalog.RuntimeCardInstance

	Queue      []timeline.QueueItem
	QIndex     int
	FixedOrder []timeline.QueueItem

	Flags Flags

	ComboUsagePlayer ether.UsageCounts
	ComboUsageEnemy  ether.UsageCounts
	PlayerCombo      combo.Result
	EnemyCombo       combo.Result
	FiredCrossSPs    map[int]bool

	// PendingEtherPlayer/PendingEtherEnemy sum each side's per-card ether
	// point contributions across the resolve phase; settleEther converts
	// the sum into a single committed delta at end-of-turn (spec §4.4).
	PendingEtherPlayer int
	PendingEtherEnemy  int
	hadPlayerCards     bool // this turn's queue included a player item
	hadEnemyCards      bool // this turn's queue included an enemy item

	BreachSelection  *PendingSelection
	CreationQueue    []PendingSelection
	RecallCard       *catalog.RuntimeCardInstance
	specialTriggered map[string]bool // card uids whose sub-selection already fired, so step_once doesn't re-suspend them

	respondSnapshot *snapshot

	Log *commandlog.Log
}

// snapshot is the deep-copy rewind captures on entering respond (spec §4.5
// "Rewind").
type snapshot struct {
	hand     []catalog.RuntimeCardInstance
	selected []catalog.RuntimeCardInstance
	player   PlayerState
	enemy    EnemyState
}

// NewBattle constructs a Battle from an EncounterSpec and seed, resolving
// every referenced catalog id up front so a missing one surfaces
// immediately as a CatalogError (spec §6 "new_battle(spec, seed) →
// Battle", spec §7 "CatalogError... construction-time, fatal").
func NewBattle(spec catalog.EncounterSpec, cat *catalog.Catalog, seed uint64) (*Battle, error) {
	enemyDef, err := cat.Enemy(spec.EnemyID)
	if err != nil {
		return nil, err
	}

	units := make([]EnemyUnitState, 0, len(enemyDef.Units))
	for _, u := range enemyDef.Units {
		units = append(units, EnemyUnitState{
			ID: u.ID, Name: u.Name, HP: u.HP, MaxHP: u.HP,
			Emoji: u.Emoji, Passives: u.Passives,
		})
	}

	for _, id := range spec.Player.DeckCardIDs {
		if _, err := cat.Card(id); err != nil {
			return nil, err
		}
	}
	for _, u := range enemyDef.Units {
		for _, id := range u.Deck {
			if _, err := cat.Card(id); err != nil {
				return nil, err
			}
		}
	}

	b := &Battle{
		ID:      uuid.NewString(),
		Spec:    spec,
		catalog: cat,
		rng:     rng.NewPCG(seed),
		seed:    seed,
		Turn:    0,
		Phase:   PhaseInit,
		Player: PlayerState{
			Combatant: Combatant{
				HP: spec.Player.MaxHP, MaxHP: spec.Player.MaxHP,
				Strength: spec.Player.Strength, Agility: spec.Player.Agility,
			},
			Insight:   spec.Player.Insight,
			MaxSpeed:  spec.Player.MaxSpeed,
			MaxEnergy: spec.Player.MaxEnergy,
			HandSize:  spec.Player.HandSize,
			EtherCap:  spec.Player.EtherCap,
		},
		Enemy: EnemyState{
			// Enemies start at full ether capacity rather than zero: ether
			// capacity is the encounter's designed reserve, not merely a
			// ceiling on the end-of-turn tick, so an enemy can actually
			// afford a turn-one plan instead of the budget formula (spec
			// §4.6 step 1) reading zero slots before anything has resolved.
			Def: enemyDef, Units: units, EtherCap: enemyDef.EtherCapacity, Ether: enemyDef.EtherCapacity,
		},
		Log:              commandlog.NewLog(),
		specialTriggered: map[string]bool{},
	}

	b.applyAnomalies()
	b.drawHand()
	b.refreshEnemyPlan()

	b.Phase = PhaseSelect
	b.emit(commandlog.PhaseChanged{From: string(PhaseInit), To: string(PhaseSelect)})

	return b, nil
}

// applyAnomalies grants each rolled anomaly's token bundle and stat
// bonuses to the player (spec §1 "the core accepts the resulting modifier
// bundle"; spec §3 "Combat is created from... anomalies").
func (b *Battle) applyAnomalies() {
	for _, id := range b.Spec.AnomalyIDs {
		def, ok := b.catalog.Anomaly(id)
		if !ok {
			b.emit(commandlog.AnomalyDetected{Reason: "missing anomaly: " + id})
			continue
		}
		for _, grant := range def.TokenGrants {
			next, events := token.Add(b.Player.Tokens, b.catalog, "player", grant.TokenID, grant.Stacks)
			b.Player.Tokens = next
			b.emitAll(events)
		}
		b.Player.Strength += def.StatBonuses["strength"]
		b.Player.Agility += def.StatBonuses["agility"]
		b.Player.MaxHP += def.StatBonuses["max_hp"]
		b.Player.HP += def.StatBonuses["max_hp"]
	}
}

func (b *Battle) nextUID() string {
	return uuid.NewString()
}

// emit appends one event to the log, returning the stamped copy.
func (b *Battle) emit(ev commandlog.Event) commandlog.Event {
	return commandlog.Append(b.Log, b.Turn, ev)
}

// emitAll appends each event in order, for handlers (token.Add/Remove,
// etc.) that already return a batch of produced events.
func (b *Battle) emitAll(events []commandlog.Event) {
	for _, e := range events {
		b.emit(e)
	}
}
