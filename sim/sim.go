// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sim runs many battles concurrently, each in its own isolated
// *battle.Battle value (spec §5 "there is no parallelism inside a
// battle, but simulations may run multiple battles in parallel").
//
// Purpose:
// Grounded on dice's golang.org/x/sync dependency, wired here as the
// natural fan-out point for something the teacher's own example pack
// pulls in but never exercises directly: one battle per goroutine,
// synchronized only by an errgroup.
package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/riftkeep/battlecore/battle"
	"github.com/riftkeep/battlecore/catalog"
)

// Driver decides what a battle does each tick once it is constructed —
// submitting a selection, stepping resolution, finishing a turn — so
// RunMany stays agnostic of any particular playstyle (scripted bot,
// greedy heuristic, replayed recording). It returns false once the
// battle should stop being driven (typically once Phase is terminal).
type Driver func(b *battle.Battle) (keepGoing bool, err error)

// Outcome is one completed battle's result.
type Outcome struct {
	EncounterID string
	Seed        uint64
	Winner      string // "player", "enemy", or "aborted"
	Turns       int
	Events      int
	Err         error
}

// RunMany constructs and drives one battle per (spec, seed) pair
// concurrently, each against its own *battle.Battle (spec §5 "each battle
// instance is an isolated value" — nothing here shares state across
// goroutines). The catalog is read-only after construction and is safe
// to share across the fan-out.
func RunMany(ctx context.Context, cat *catalog.Catalog, specs []catalog.EncounterSpec, seeds []uint64, drive Driver) ([]Outcome, error) {
	if len(specs) != len(seeds) {
		return nil, errMismatchedLengths{len(specs), len(seeds)}
	}

	outcomes := make([]Outcome, len(specs))
	g, ctx := errgroup.WithContext(ctx)

	for i := range specs {
		i := i
		g.Go(func() error {
			outcomes[i] = runOne(ctx, cat, specs[i], seeds[i], drive)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func runOne(ctx context.Context, cat *catalog.Catalog, spec catalog.EncounterSpec, seed uint64, drive Driver) Outcome {
	out := Outcome{EncounterID: spec.ID, Seed: seed}

	b, err := battle.NewBattle(spec, cat, seed)
	if err != nil {
		out.Err = err
		return out
	}

	for {
		select {
		case <-ctx.Done():
			out.Err = ctx.Err()
			return out
		default:
		}

		keepGoing, err := drive(b)
		if err != nil {
			out.Err = err
			return out
		}
		terminal := b.Phase == battle.PhaseVictory || b.Phase == battle.PhaseDefeat || b.Phase == battle.PhaseAborted
		if !keepGoing || terminal {
			break
		}
	}

	out.Turns = b.Turn
	out.Events = len(b.EventsSince(0))
	switch b.Phase {
	case battle.PhaseVictory:
		out.Winner = "player"
	case battle.PhaseDefeat:
		out.Winner = "enemy"
	case battle.PhaseAborted:
		out.Winner = "aborted"
	}
	return out
}

type errMismatchedLengths struct {
	specs, seeds int
}

func (e errMismatchedLengths) Error() string {
	return "sim: specs and seeds must be the same length"
}
