package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/battleerr"
	"github.com/riftkeep/battlecore/catalog"
	"github.com/riftkeep/battlecore/core"
)

func sampleCards() []catalog.CardDef {
	return []catalog.CardDef{
		{ID: "strike", Name: "Strike", Category: catalog.CategoryAttack, SpeedCost: 3, ActionCost: 1, Damage: 6, Hits: 1},
		{ID: "guard", Name: "Guard", Category: catalog.CategoryDefense, SpeedCost: 2, ActionCost: 2, Block: 5},
		{ID: "scavenge", Name: "Scavenge", Category: catalog.CategoryGeneral, Traits: []string{"outcast"}},
	}
}

func TestLoadByNewIndexesByID(t *testing.T) {
	c := catalog.New(sampleCards(), nil, nil, nil)

	def, err := c.Card("strike")
	require.NoError(t, err)
	require.Equal(t, 6, def.Damage)
	require.True(t, def.Category == catalog.CategoryAttack)
}

func TestCardMissingReturnsCatalogError(t *testing.T) {
	c := catalog.New(sampleCards(), nil, nil, nil)

	_, err := c.Card("nonexistent")
	require.Error(t, err)
	require.Equal(t, battleerr.CodeMissingCard, battleerr.GetCode(err))

	var be *battleerr.Error
	require.True(t, errors.As(err, &be))
}

func TestTokenAndEnemyMissingErrors(t *testing.T) {
	c := catalog.New(nil, nil, nil, nil)

	_, err := c.Token("offense")
	require.Equal(t, battleerr.CodeMissingToken, battleerr.GetCode(err))

	_, err = c.Enemy("goblin")
	require.Equal(t, battleerr.CodeMissingEnemy, battleerr.GetCode(err))
}

func TestHasTrait(t *testing.T) {
	cards := sampleCards()
	require.True(t, cards[2].HasTrait("outcast"))
	require.False(t, cards[0].HasTrait("outcast"))
}

func TestAnomalyLookupIsPlainBoolean(t *testing.T) {
	c := catalog.New(nil, nil, nil, []catalog.AnomalyDef{{ID: "fog", Name: "Fog"}})

	_, ok := c.Anomaly("fog")
	require.True(t, ok)

	_, ok = c.Anomaly("missing")
	require.False(t, ok)
}

func TestLoadFromYAMLIgnoresUnknownFields(t *testing.T) {
	c, err := catalog.Load("testdata")
	require.NoError(t, err)

	strike, err := c.Card("strike")
	require.NoError(t, err)
	require.Equal(t, 6, strike.Damage)

	offense, err := c.Token("offense")
	require.NoError(t, err)
	require.Equal(t, "dull", offense.OppositeID)

	goblin, err := c.Enemy("goblin")
	require.NoError(t, err)
	require.Len(t, goblin.Units, 1)
	require.Equal(t, 20, goblin.Units[0].HP)
}

func TestCardIDsCoversAllLoaded(t *testing.T) {
	c := catalog.New(sampleCards(), nil, nil, nil)
	ids := c.CardIDs()
	require.Len(t, ids, 3)
	require.ElementsMatch(t, []string{"strike", "guard", "scavenge"}, ids)
}

func TestLoadRejectsDuplicateCardID(t *testing.T) {
	_, err := catalog.Load("testdata_dup")
	require.Error(t, err)
	require.Equal(t, battleerr.CodeDuplicateID, battleerr.GetCode(err))
}

func TestDefTypesImplementEntity(t *testing.T) {
	var _ core.Entity = catalog.CardDef{ID: "strike"}
	var _ core.Entity = catalog.TokenDef{ID: "offense"}
	var _ core.Entity = catalog.EnemyDef{ID: "goblin"}
	var _ core.Entity = catalog.AnomalyDef{ID: "fog"}

	card := catalog.CardDef{ID: "strike"}
	require.Equal(t, "strike", card.GetID())
	require.Equal(t, "card", card.GetType())
}
