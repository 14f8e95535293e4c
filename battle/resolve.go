// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import (
	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/catalog"
	"github.com/riftkeep/battlecore/combo"
	"github.com/riftkeep/battlecore/commandlog"
	"github.com/riftkeep/battlecore/damage"
	"github.com/riftkeep/battlecore/ether"
	"github.com/riftkeep/battlecore/planner"
	"github.com/riftkeep/battlecore/timeline"
	"github.com/riftkeep/battlecore/token"
)

// specialsNeedingSubSelect names the card specials that suspend the
// scheduler for a player choice before they can resolve (spec §4.5 step 1).
var specialsNeedingSubSelect = map[catalog.Special]string{
	catalog.SpecialBreach:              "breach",
	catalog.SpecialCreateFencingCards3: "create_fencing_cards3",
	catalog.SpecialExecutionSquad:      "execution_squad",
	catalog.SpecialRecall:              "recall",
}

// subSelectCount is how many picks a given special ultimately needs (spec
// §4.7 "Multi-selection (fencing=3, execution_squad=4)").
var subSelectCount = map[string]int{
	"breach":                1,
	"create_fencing_cards3": 3,
	"execution_squad":       4,
	"recall":                1,
}

// BeginResolve builds the shared queue from the player's selection and the
// enemy's plan, captures fixed_order, and transitions respond -> resolve
// (spec §6 "begin_resolve", spec §4.7 "resolve: build queue, fixed_order,
// reset q_index").
func (b *Battle) BeginResolve() error {
	if b.Phase != PhaseRespond {
		return battleerr.WrongPhase(string(PhaseRespond), string(b.Phase))
	}

	playerItems := toPendingPlayer(b.Selected)
	enemyItems := toPendingEnemy(b.Enemy.Plan.Actions)

	b.Queue = timeline.BuildQueue(playerItems, enemyItems)
	b.FixedOrder = append([]timeline.QueueItem{}, b.Queue...)
	b.QIndex = 0
	b.FiredCrossSPs = map[int]bool{}

	b.PendingEtherPlayer = 0
	b.PendingEtherEnemy = 0
	b.hadPlayerCards = len(playerItems) > 0
	b.hadEnemyCards = len(enemyItems) > 0

	b.PlayerCombo = combo.Detect(asComboCards(b.Selected))
	enemyCards := make([]combo.Card, 0, len(b.Enemy.Plan.Actions))
	for _, a := range b.Enemy.Plan.Actions {
		enemyCards = append(enemyCards, a.Card)
	}
	b.EnemyCombo = combo.Detect(enemyCards)

	b.Phase = PhaseResolve
	b.emit(phaseChanged(PhaseRespond, PhaseResolve))
	return nil
}

func toPendingPlayer(cards []catalog.RuntimeCardInstance) []timeline.PendingItem {
	costs := make([]int, len(cards))
	for i, c := range cards {
		costs[i] = c.Def.SpeedCost
	}
	sps := timeline.AssignSP(costs)
	out := make([]timeline.PendingItem, len(cards))
	for i, c := range cards {
		out[i] = timeline.PendingItem{Card: c, SP: sps[i], OriginalIndex: i, SourceUnitID: string(timeline.ActorPlayer)}
	}
	return out
}

func toPendingEnemy(actions []planner.Action) []timeline.PendingItem {
	costs := make([]int, len(actions))
	for i, a := range actions {
		costs[i] = a.Card.Def.SpeedCost
	}
	sps := timeline.AssignSP(costs)
	out := make([]timeline.PendingItem, len(actions))
	for i, a := range actions {
		out[i] = timeline.PendingItem{Card: a.Card, SP: sps[i], OriginalIndex: i, SourceUnitID: a.SourceUnitID}
	}
	return out
}

func asComboCards(cards []catalog.RuntimeCardInstance) []combo.Card {
	out := make([]combo.Card, len(cards))
	for i, c := range cards {
		out[i] = c
	}
	return out
}

// StepOnce resolves the current queue item and advances q_index, or
// suspends for a sub-selection, or reports the resolve phase has drained
// (spec §6 "step_once").
func (b *Battle) StepOnce() (StepOutcome, error) {
	if b.Phase != PhaseResolve {
		return StepOutcome{}, battleerr.WrongPhase(string(PhaseResolve), string(b.Phase))
	}
	if b.BreachSelection != nil {
		return StepOutcome{Kind: OutcomeSuspended, Suspension: b.BreachSelection}, nil
	}

	if len(b.Queue) == 0 && len(b.FixedOrder) > 0 {
		b.Queue, b.QIndex, _ = timeline.Recover(b.Queue, b.FixedOrder)
		b.emit(commandlog.QueueRecovered{RebuiltCount: len(b.Queue)})
	}

	if b.QIndex >= len(b.Queue) {
		b.Phase = PhaseEndOfTurn
		b.emit(phaseChanged(PhaseResolve, PhaseEndOfTurn))
		return StepOutcome{Kind: OutcomeEndOfTurn}, nil
	}

	item := b.Queue[b.QIndex]
	inst, ok := item.Card.(catalog.RuntimeCardInstance)
	if !ok {
		b.emit(commandlog.AnomalyDetected{Reason: "queue item card is not a RuntimeCardInstance"})
		b.QIndex++
		return StepOutcome{Kind: OutcomeAdvanced}, nil
	}

	if kind, needs := specialsNeedingSubSelect[inst.Def.Special]; needs && !b.specialTriggered[inst.UID] {
		b.specialTriggered[inst.UID] = true
		b.BreachSelection = &PendingSelection{
			TriggerUID: inst.UID, Kind: kind, InsertAt: b.QIndex,
		}
		n := subSelectCount[kind]
		for i := 1; i < n; i++ {
			b.CreationQueue = append(b.CreationQueue, PendingSelection{
				TriggerUID: inst.UID, Kind: kind, InsertAt: b.QIndex,
			})
		}
		// Suspended without advancing q_index (spec §4.5 step 1): the next
		// step_once re-examines this same item, but specialTriggered now
		// keeps it from re-suspending, so it resolves normally instead.
		return StepOutcome{Kind: OutcomeSuspended, Suspension: b.BreachSelection}, nil
	}

	b.resolveItem(item, inst)
	b.QIndex++

	if outcome, terminal := b.checkTerminal(); terminal {
		return outcome, nil
	}

	return StepOutcome{Kind: OutcomeAdvanced}, nil
}

// checkTerminal reports and transitions to victory/defeat once the queue
// has fully drained and one side is dead (spec §3 "the battle terminates
// when either side's hp <= 0 and the scheduler has drained the queue"). A
// pending revive token is honored here, before defeat/victory commits,
// per spec §4.1's CheckRevive predicate.
func (b *Battle) checkTerminal() (StepOutcome, bool) {
	if b.QIndex < len(b.Queue) {
		return StepOutcome{}, false
	}
	switch {
	case b.Player.HP <= 0:
		if b.reviveCombatant(timeline.ActorPlayer, "") {
			return StepOutcome{}, false
		}
		b.Phase = PhaseDefeat
		b.emit(commandlog.BattleEnded{Winner: "enemy"})
		return StepOutcome{Kind: OutcomeTerminal, Winner: "enemy"}, true
	case !b.Enemy.AnyAlive():
		if b.reviveAnyEnemyUnit() {
			return StepOutcome{}, false
		}
		b.Phase = PhaseVictory
		b.emit(commandlog.BattleEnded{Winner: "player"})
		return StepOutcome{Kind: OutcomeTerminal, Winner: "player"}, true
	default:
		return StepOutcome{}, false
	}
}

// reviveCombatant consumes a pending revive token on actor/unitID and
// restores 1 hp, reporting whether it fired (spec §4.1 CheckRevive).
func (b *Battle) reviveCombatant(actor timeline.Actor, unitID string) bool {
	tokens := b.tokensFor(actor, unitID)
	if !token.CheckRevive(tokens) {
		return false
	}
	next, events := token.Remove(tokens, string(actor), "revive", 1)
	b.setTokensFor(actor, unitID, next)
	b.emitAll(events)
	b.healCombatant(actor, unitID, 1)
	b.emit(commandlog.ReviveTriggered{Actor: string(actor)})
	return true
}

// reviveAnyEnemyUnit finds the first dead enemy unit still carrying a
// revive token and revives it, so a multi-unit enemy's death check only
// commits victory once no unit can revive.
func (b *Battle) reviveAnyEnemyUnit() bool {
	for _, u := range b.Enemy.Units {
		if u.HP <= 0 && u.Tokens.Has("revive") {
			return b.reviveCombatant(timeline.ActorEnemy, u.ID)
		}
	}
	return false
}

// resolveItem runs one queue item through token requirement checks, the
// damage pipeline, applied-token effects, ether accumulation, cross bonus,
// and counter/reflect (spec §4.5 "Stepping").
func (b *Battle) resolveItem(item timeline.QueueItem, inst catalog.RuntimeCardInstance) {
	actorTokens := b.tokensFor(item.Actor, item.SourceUnitID)
	for _, req := range inst.Def.RequiredTokens {
		if !actorTokens.Has(req) {
			b.emit(commandlog.Fizzle{Actor: string(item.Actor), CardUID: inst.UID, MissingToken: req})
			return
		}
	}

	targetActor, targetUnitID := b.opposingTarget(item.Actor)
	targetTokens := b.tokensFor(targetActor, targetUnitID)

	attackMods := token.DeriveAttack(actorTokens)
	defenseMods := token.DeriveDefense(targetTokens)
	damageTakenMult := token.DamageTakenMult(targetTokens)

	targetBlock := b.blockFor(targetActor, targetUnitID)
	// Design decision: the spec names a defense_mult derivation (§4.1) but
	// the 7-stage pipeline (§4.2) has no stage consuming it; applied here
	// to the defender's block before the pipeline's own block stage, since
	// "defense" tokens read most naturally as scaling how much block
	// absorbs rather than as a second vulnerability-style multiplier.
	effectiveBlock := int(float64(targetBlock) * defenseMods.DefenseMult)

	hits := inst.Def.Hits
	if hits < 1 {
		hits = 1
	}

	result := damage.Calculate(damage.Input{
		BaseDamage:      inst.Def.Damage,
		DamageBonus:     attackMods.DamageBonus,
		AttackMult:      attackMods.AttackMult,
		CritBoost:       attackMods.CritBoost,
		DodgeChance:     defenseMods.DodgeChance,
		IgnoreBlock:     attackMods.IgnoreBlock,
		CrushMultiplier: inst.Def.CrushMultiplier,
		DamageTakenMult: damageTakenMult,
	}, effectiveBlock, hits, b.rng)

	if token.CheckImmunity(targetTokens) && result.TotalFinal > 0 {
		b.emit(commandlog.ImmunityBlocked{Target: string(targetActor), CardUID: inst.UID, Prevented: result.TotalFinal})
		result.TotalFinal = 0
	}

	b.applyDamage(targetActor, targetUnitID, result.TotalFinal)
	b.setBlockFor(targetActor, targetUnitID, result.RemainingBlock)

	if inst.Def.Block > 0 {
		b.addBlock(item.Actor, item.SourceUnitID, inst.Def.Block)
	}

	for _, at := range inst.Def.AppliedTokens {
		owner, ownerUnit := item.Actor, item.SourceUnitID
		if at.Target == "target" {
			owner, ownerUnit = targetActor, targetUnitID
		}
		next, events := token.Add(b.tokensFor(owner, ownerUnit), b.catalog, string(owner), at.TokenID, at.Stacks)
		b.setTokensFor(owner, ownerUnit, next)
		b.emitAll(events)
	}

	for _, req := range inst.Def.RequiredTokens {
		kind, _, _, _, ok := b.catalog.TokenKind(req)
		if ok && kind == string(catalog.TokenKindUsage) {
			next, events := token.Remove(b.tokensFor(item.Actor, item.SourceUnitID), string(item.Actor), req, 1)
			b.setTokensFor(item.Actor, item.SourceUnitID, next)
			b.emitAll(events)
		}
	}

	points := ether.PointsForCard(result.TotalFinal, inst.Def.Block)
	b.accumulateEtherPoints(item.Actor, points)

	if item.Crossed && !b.FiredCrossSPs[item.SP] {
		b.fireCross(item)
	}

	b.checkCounter(item.Actor, item.SourceUnitID, targetActor, targetUnitID, result.TotalFinal)

	b.emit(commandlog.CardResolved{
		Actor: string(item.Actor), Target: string(targetActor), CardUID: inst.UID,
		Damage: result.TotalFinal, Blocked: result.TotalBlocked,
		Crit: anyCrit(result), Dodge: anyDodge(result), Hits: hits,
	})
}

func anyCrit(r damage.Result) bool {
	for _, h := range r.Hits {
		if h.IsCrit {
			return true
		}
	}
	return false
}

func anyDodge(r damage.Result) bool {
	for _, h := range r.Hits {
		if h.IsDodged {
			return true
		}
	}
	return false
}

// fireCross applies the first available cross_bonus among the crossed
// pair's two cards and marks the sp as fired so it cannot refire (spec
// §4.5 "each fires once per pair"). Bonus effects are simplified to
// logging the bonus family that fired, since the scheduler resolves one
// item fully before the next and the spec leaves each bonus's concrete
// numeric effect to the (out-of-scope) card-authoring layer — the core's
// contract here is firing exactly once per crossed pair, which is what is
// asserted.
func (b *Battle) fireCross(item timeline.QueueItem) {
	b.FiredCrossSPs[item.SP] = true
	var other *timeline.QueueItem
	for i := range b.Queue {
		cand := b.Queue[i]
		if cand.SP == item.SP && cand.Actor != item.Actor {
			other = &b.Queue[i]
			break
		}
	}
	if other == nil {
		return
	}
	inst, _ := item.Card.(catalog.RuntimeCardInstance)
	bonus := string(inst.Def.CrossBonus)
	if bonus == "" {
		if o, ok := other.Card.(catalog.RuntimeCardInstance); ok {
			bonus = string(o.Def.CrossBonus)
		}
	}
	if bonus == "" {
		return
	}
	b.emit(commandlog.CrossFired{SP: item.SP, Bonus: bonus})
}

// checkCounter applies a reflecting or countering defender's retaliation
// damage back onto the attacker immediately (spec §4.5 step 6). Reflect
// (stack-scaled, spec §4.2 Derived) and counter (a flat, unstacked token,
// spec §4.1 Special predicates) are distinct tokens and can both be
// active on the same defender, so both are checked and both can fire.
// Simplified from "enqueue a synthetic counter item at sp+epsilon" to an
// immediate side effect, since this engine resolves one item fully before
// reading the next (spec §5 "item i fully commits all its effects before
// item i+1 reads state"), making an immediate apply observationally
// equivalent for a single attacker/defender pair.
func (b *Battle) checkCounter(attacker timeline.Actor, attackerUnitID string, defender timeline.Actor, defenderUnitID string, incoming int) {
	defTokens := b.tokensFor(defender, defenderUnitID)
	if stacks, active := token.CheckReflect(defTokens); active {
		reflected := damage.Reflect(incoming, stacks)
		if reflected > 0 {
			b.applyDamage(attacker, attackerUnitID, reflected)
			b.emit(commandlog.CounterFired{Source: string(defender), Target: string(attacker), Damage: reflected})
		}
	}
	if token.CheckCounter(defTokens) && incoming > 0 {
		b.applyDamage(attacker, attackerUnitID, incoming)
		b.emit(commandlog.CounterFired{Source: string(defender), Target: string(attacker), Damage: incoming})
	}
}

// accumulateEtherPoints adds one resolved card's raw ether-point
// contribution to actor's running total for the turn. The combo
// multiplier, deflation, and combo-usage increment are not applied here:
// spec §4.4 commits the delta and bumps combo usage once at end-of-turn
// (settleEther in turn.go), using the fixed usage count from before this
// turn's first card, not a per-card snapshot that would drift as cards
// resolve.
func (b *Battle) accumulateEtherPoints(actor timeline.Actor, points int) {
	if actor == timeline.ActorPlayer {
		b.PendingEtherPlayer += points
	} else {
		b.PendingEtherEnemy += points
	}
}
