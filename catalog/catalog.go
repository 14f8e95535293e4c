// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog loads and indexes the data-only definitions a battle
// consumes: cards, tokens, enemies, and anomalies (spec §3, §6).
//
// Purpose:
// Spec §6 calls catalogs "input data, JSON/YAML-equivalent... field names
// and enum values are stable; unknown fields must be ignored for forward
// compatibility." This package is that boundary: it parses YAML (grounded
// on the teacher pack's deck-file loader in peterkuimelis-tcgx, the only
// catalog-style YAML reader in the corpus) into value-object defs and
// resolves ids to defs, turning a miss into a CatalogError (spec §7) rather
// than a nil-pointer panic deeper in the engine.
//
// Cards, tokens, and enemies here are catalog.CardDef/TokenDef/EnemyDef —
// value objects keyed by id (spec §3 "Cards are value objects keyed by
// id"). RuntimeCardInstance lives in this package too (so timeline,
// planner, and battle can all reference it without a dependency cycle)
// but is a distinct type: it carries the CardDef's id plus a resolved copy
// of the def in its Def field, and keeps its runtime flags on itself rather
// than on CardDef — spec §9 calls out smuggling runtime flags directly into
// the catalog type as a pattern to avoid.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/core"
)

// Rarity is a card's drop-tier classification. Purely descriptive; it does
// not affect resolution.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityBoss     Rarity = "boss"
)

// Category distinguishes a card's combo-detector bucket (spec §4.3: "all
// attack or all (general|defense)").
type Category string

const (
	CategoryAttack  Category = "attack"
	CategoryDefense Category = "defense"
	CategoryGeneral Category = "general"
)

// CrossBonus names a cross-over effect a card contributes when it occupies
// the same speed point as an opposing-actor card (spec §4.5, §4.1).
type CrossBonus string

const (
	CrossBonusNone           CrossBonus = ""
	CrossBonusDamageMult     CrossBonus = "damage_mult"
	CrossBonusPush           CrossBonus = "push"
	CrossBonusAdvance        CrossBonus = "advance"
	CrossBonusAddTokens      CrossBonus = "add_tokens"
	CrossBonusGuaranteedCrit CrossBonus = "guaranteed_crit"
	CrossBonusDestroyCard    CrossBonus = "destroy_card"
)

// Special names a discriminator that changes how a card resolves beyond
// its base damage/block payload (spec §4.5 step 1).
type Special string

const (
	SpecialNone                Special = ""
	SpecialBreach              Special = "breach"
	SpecialCreateFencingCards3 Special = "create_fencing_cards3"
	SpecialExecutionSquad      Special = "execution_squad"
	SpecialRecall              Special = "recall"
)

// AppliedToken is one token a card's effect attaches, to the actor or the
// target depending on Target.
type AppliedToken struct {
	TokenID string `yaml:"token_id"`
	Stacks  int    `yaml:"stacks"`
	Target  string `yaml:"target"` // "self" or "target"
}

// CardDef is the immutable, catalog-level definition of a card (spec §3).
// Runtime play produces a RuntimeCardInstance referencing this by ID.
type CardDef struct {
	ID              string         `yaml:"id"`
	Name            string         `yaml:"name"`
	Rarity          Rarity         `yaml:"rarity"`
	Category        Category       `yaml:"category"`
	SpeedCost       int            `yaml:"speed_cost"`
	ActionCost      int            `yaml:"action_cost"`
	Damage          int            `yaml:"damage"`
	Block           int            `yaml:"block"`
	Hits            int            `yaml:"hits"`
	CrushMultiplier int            `yaml:"crush_multiplier"`
	Special         Special        `yaml:"special"`
	CrossBonus      CrossBonus     `yaml:"cross_bonus"`
	Traits          []string       `yaml:"traits"`
	AppliedTokens   []AppliedToken `yaml:"applied_tokens"`
	RequiredTokens  []string       `yaml:"required_tokens"`
	EnhanceLevel    int            `yaml:"enhance_level"`
}

// HasTrait reports whether t is present in Traits (e.g. "outcast", "ghost").
func (c CardDef) HasTrait(t string) bool {
	for _, have := range c.Traits {
		if have == t {
			return true
		}
	}
	return false
}

// GetID implements core.Entity.
func (c CardDef) GetID() string { return c.ID }

// GetType implements core.Entity.
func (c CardDef) GetType() string { return "card" }

// TokenKind controls a token's lifecycle (spec §3).
type TokenKind string

const (
	TokenKindUsage     TokenKind = "usage"
	TokenKindTurn      TokenKind = "turn"
	TokenKindPermanent TokenKind = "permanent"
)

// TokenCategory is positive (buff) or negative (debuff); opposite-category
// tokens are expected to be opposite_id pairs (spec §3).
type TokenCategory string

const (
	TokenCategoryPositive TokenCategory = "positive"
	TokenCategoryNegative TokenCategory = "negative"
)

// TokenDef is the catalog-level definition of a stackable modifier.
type TokenDef struct {
	ID         string        `yaml:"id"`
	Kind       TokenKind     `yaml:"type"`
	Category   TokenCategory `yaml:"category"`
	MaxStacks  int           `yaml:"max_stacks"`
	OppositeID string        `yaml:"opposite_id"`
}

// GetID implements core.Entity.
func (t TokenDef) GetID() string { return t.ID }

// GetType implements core.Entity.
func (t TokenDef) GetType() string { return "token" }

// EnemyUnitDef is one member of a (possibly multi-unit) enemy encounter.
type EnemyUnitDef struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	HP           int      `yaml:"hp"`
	Emoji        string   `yaml:"emoji"`
	Deck         []string `yaml:"deck"` // card ids
	CardsPerTurn int      `yaml:"cards_per_turn"`
	Passives     []string `yaml:"passives"`
}

// EnemyDef is a full enemy encounter composition: one or more units sharing
// a planner mode and ether capacity (spec §3 "Enemy additionally holds
// units...").
type EnemyDef struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Mode          string         `yaml:"mode"` // aggressive/defensive/balanced
	EtherCapacity int            `yaml:"ether_capacity"`
	Units         []EnemyUnitDef `yaml:"units"`
	UniqueCards   bool           `yaml:"unique_cards"`
	CategoryCaps  map[string]int `yaml:"category_caps"`
}

// GetID implements core.Entity.
func (e EnemyDef) GetID() string { return e.ID }

// GetType implements core.Entity.
func (e EnemyDef) GetType() string { return "enemy" }

// AnomalyDef is a pre-computed modifier bundle applied at init (spec §1
// "Out of scope: anomaly definitions... the core accepts the resulting
// modifier bundle"). The catalog only carries the bundle's shape; anomaly
// authoring logic lives outside the core.
type AnomalyDef struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	TokenGrants  []AppliedToken `yaml:"token_grants"`
	StatBonuses  map[string]int `yaml:"stat_bonuses"`
}

// GetID implements core.Entity.
func (a AnomalyDef) GetID() string { return a.ID }

// GetType implements core.Entity.
func (a AnomalyDef) GetType() string { return "anomaly" }

// Catalog is the resolved, queryable set of defs a Battle is built from.
// It owns no runtime state; every lookup is a pure map read.
type Catalog struct {
	cards     map[string]CardDef
	tokens    map[string]TokenDef
	enemies   map[string]EnemyDef
	anomalies map[string]AnomalyDef
}

type cardFile struct {
	Cards []CardDef `yaml:"cards"`
}

type tokenFile struct {
	Tokens []TokenDef `yaml:"tokens"`
}

type enemyFile struct {
	Enemies []EnemyDef `yaml:"enemies"`
}

type anomalyFile struct {
	Anomalies []AnomalyDef `yaml:"anomalies"`
}

// Load reads cards.yaml, tokens.yaml, enemies.yaml, and anomalies.yaml from
// dir and builds an indexed Catalog. Unknown YAML fields are ignored
// (spec §6 forward compatibility); no yaml.KnownFields call is made.
func Load(dir string) (*Catalog, error) {
	var cf cardFile
	if err := readYAML(dir+"/cards.yaml", &cf); err != nil {
		return nil, err
	}
	var tf tokenFile
	if err := readYAML(dir+"/tokens.yaml", &tf); err != nil {
		return nil, err
	}
	var ef enemyFile
	if err := readYAML(dir+"/enemies.yaml", &ef); err != nil {
		return nil, err
	}
	var af anomalyFile
	if err := readYAML(dir+"/anomalies.yaml", &af); err != nil {
		return nil, err
	}

	if err := validateUnique(cf.Cards, tf.Tokens, ef.Enemies, af.Anomalies); err != nil {
		return nil, err
	}

	return New(cf.Cards, tf.Tokens, ef.Enemies, af.Anomalies), nil
}

// validateUnique rejects a duplicate id within any of the four def
// families (spec §3 "Cards are value objects keyed by id" — a keyed-by-id
// contract only holds if the loaded file agrees). New's map-building loop
// would otherwise let a later duplicate silently shadow an earlier one;
// Load is where malformed authored YAML should be caught. Checked
// generically over core.Entity rather than four copy-pasted loops, since
// the four def types only ever need identity and a type tag for this.
func validateUnique(cards []CardDef, tokens []TokenDef, enemies []EnemyDef, anomalies []AnomalyDef) error {
	if err := checkDuplicates(entitiesOf(cards)); err != nil {
		return err
	}
	if err := checkDuplicates(entitiesOf(tokens)); err != nil {
		return err
	}
	if err := checkDuplicates(entitiesOf(enemies)); err != nil {
		return err
	}
	if err := checkDuplicates(entitiesOf(anomalies)); err != nil {
		return err
	}
	return nil
}

func entitiesOf[T core.Entity](defs []T) []core.Entity {
	out := make([]core.Entity, len(defs))
	for i, d := range defs {
		out[i] = d
	}
	return out
}

func checkDuplicates(entities []core.Entity) error {
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if seen[e.GetID()] {
			return battleerr.DuplicateID(e.GetType(), e.GetID())
		}
		seen[e.GetID()] = true
	}
	return nil
}

// New builds a Catalog directly from already-parsed defs, bypassing file
// I/O. Tests and embedders that already hold defs in memory use this.
func New(cards []CardDef, tokens []TokenDef, enemies []EnemyDef, anomalies []AnomalyDef) *Catalog {
	c := &Catalog{
		cards:     make(map[string]CardDef, len(cards)),
		tokens:    make(map[string]TokenDef, len(tokens)),
		enemies:   make(map[string]EnemyDef, len(enemies)),
		anomalies: make(map[string]AnomalyDef, len(anomalies)),
	}
	for _, c2 := range cards {
		c.cards[c2.ID] = c2
	}
	for _, t := range tokens {
		c.tokens[t.ID] = t
	}
	for _, e := range enemies {
		c.enemies[e.ID] = e
	}
	for _, a := range anomalies {
		c.anomalies[a.ID] = a
	}
	return c
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return nil
}

// Card resolves a card id to its def, or a CatalogError (missing_card).
func (c *Catalog) Card(id string) (CardDef, error) {
	d, ok := c.cards[id]
	if !ok {
		return CardDef{}, battleerr.MissingCard(id)
	}
	return d, nil
}

// Token resolves a token id to its def, or a CatalogError (missing_token).
func (c *Catalog) Token(id string) (TokenDef, error) {
	d, ok := c.tokens[id]
	if !ok {
		return TokenDef{}, battleerr.MissingToken(id)
	}
	return d, nil
}

// Enemy resolves an enemy id to its def, or a CatalogError (missing_enemy).
func (c *Catalog) Enemy(id string) (EnemyDef, error) {
	d, ok := c.enemies[id]
	if !ok {
		return EnemyDef{}, battleerr.MissingEnemy(id)
	}
	return d, nil
}

// TokenKind implements token.Defs: it resolves id to the fields the Token
// Engine needs (kind/category/max_stacks/opposite_id) without token
// importing catalog's richer TokenDef, avoiding an import cycle.
func (c *Catalog) TokenKind(id string) (kind string, category string, maxStacks int, oppositeID string, ok bool) {
	d, found := c.tokens[id]
	if !found {
		return "", "", 0, "", false
	}
	return string(d.Kind), string(d.Category), d.MaxStacks, d.OppositeID, true
}

// Anomaly resolves an anomaly id to its def. Anomalies are not named in the
// spec's CatalogError family (§7); a miss here returns ok=false rather
// than an error, since anomaly rolling is an external collaborator's
// concern (spec §1).
func (c *Catalog) Anomaly(id string) (AnomalyDef, bool) {
	d, ok := c.anomalies[id]
	return d, ok
}

// CardIDs returns every card id in the catalog, for deck validation and
// tests. Order is unspecified.
func (c *Catalog) CardIDs() []string {
	ids := make([]string, 0, len(c.cards))
	for id := range c.cards {
		ids = append(ids, id)
	}
	return ids
}
