// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

// RuntimeCardInstance is a card as it exists in play: a reference to its
// CardDef by id plus a fresh uid and the runtime-only flags ghost/fleche
// cards carry (spec §3, §9 "RuntimeCardInstance{ def_id, uid, flags:
// {ghost, fleche_chain, created_by, ...} } distinct from catalog CardDef").
type RuntimeCardInstance struct {
	DefID string
	UID   string
	Def   CardDef // resolved once at creation; never re-looked-up mid-resolve

	Ghost            bool
	FromFleche       bool
	FlecheChainCount int
	CreatedBy        string // uid of the card that spawned this one, if any
}

// ActionCost implements combo.Card.
func (r RuntimeCardInstance) ActionCost() int { return r.Def.ActionCost }

// ComboCategory implements combo.Card.
func (r RuntimeCardInstance) ComboCategory() string { return string(r.Def.Category) }

// HasTrait implements combo.Card.
func (r RuntimeCardInstance) HasTrait(trait string) bool { return r.Def.HasTrait(trait) }

// IsGhost implements combo.Card.
func (r RuntimeCardInstance) IsGhost() bool { return r.Ghost }
