package battle_test

import (
	"github.com/riftkeep/battlecore/catalog"
)

// testCatalog builds a small in-memory catalog covering every shape the
// battle package's tests drive through: an attack and a defense player
// card, a reflect token, and a one-unit enemy.
func testCatalog() *catalog.Catalog {
	cards := []catalog.CardDef{
		{ID: "strike", Name: "Strike", Category: catalog.CategoryAttack, SpeedCost: 2, ActionCost: 1, Damage: 10},
		{ID: "guard", Name: "Guard", Category: catalog.CategoryDefense, SpeedCost: 1, ActionCost: 1, Block: 6},
		{ID: "enemy_claw", Name: "Claw", Category: catalog.CategoryAttack, SpeedCost: 1, ActionCost: 1, Damage: 4},
	}
	tokens := []catalog.TokenDef{
		{ID: "reflect", Kind: catalog.TokenKindTurn, Category: catalog.TokenCategoryPositive, MaxStacks: 3},
	}
	enemies := []catalog.EnemyDef{
		{
			ID: "grub", Name: "Grub", Mode: "aggressive", EtherCapacity: 100,
			Units: []catalog.EnemyUnitDef{
				{ID: "u1", Name: "Grub", HP: 20, Deck: []string{"enemy_claw"}, CardsPerTurn: 1},
			},
		},
	}
	anomalies := []catalog.AnomalyDef{
		{ID: "bolster", Name: "Bolster", StatBonuses: map[string]int{"strength": 2}},
	}
	return catalog.New(cards, tokens, enemies, anomalies)
}

func testSpec() catalog.EncounterSpec {
	return catalog.EncounterSpec{
		ID:      "s1",
		EnemyID: "grub",
		Player: catalog.PlayerLoadout{
			DeckCardIDs: []string{"strike", "guard"},
			MaxHP:       30, MaxSpeed: 10, MaxEnergy: 10,
			HandSize: 2, Insight: 0, EtherCap: 100,
		},
	}
}
