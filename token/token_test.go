package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftkeep/battlecore/token"
)

type fakeDefs map[string][4]any // kind, category, maxStacks, oppositeID

func (f fakeDefs) TokenKind(id string) (kind, category string, maxStacks int, oppositeID string, ok bool) {
	v, found := f[id]
	if !found {
		return "", "", 0, "", false
	}
	return v[0].(string), v[1].(string), v[2].(int), v[3].(string), true
}

func defs() fakeDefs {
	return fakeDefs{
		"offense": {"permanent", "positive", 5, "dull"},
		"dull":    {"turn", "negative", 5, "offense"},
		"guard":   {"permanent", "positive", 5, "shaken"},
		"shaken":  {"turn", "negative", 5, "guard"},
		"burn":    {"usage", "negative", 99, ""},
	}
}

func TestAddCancelsOppositeBeforeAdding(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 2}

	next, events := token.Add(tokens, d, "player", "dull", 3)

	require.Equal(t, 0, next.GetStacks("offense"))
	require.Equal(t, 1, next.GetStacks("dull"))
	require.False(t, next.Has("offense"))
	require.Len(t, events, 2)
}

func TestAddCapsAtMaxStacks(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 4}

	next, _ := token.Add(tokens, d, "player", "offense", 5)
	require.Equal(t, 5, next.GetStacks("offense"))
}

func TestAddUnknownTokenEmitsAnomaly(t *testing.T) {
	d := defs()
	_, events := token.Add(token.Tokens{}, d, "player", "mystery", 1)
	require.Len(t, events, 1)
}

func TestRemoveClampsAndPurges(t *testing.T) {
	tokens := token.Tokens{"offense": 2}
	next, events := token.Remove(tokens, "player", "offense", 10)

	require.False(t, next.Has("offense"))
	require.Len(t, events, 1)
}

func TestRemoveAddRoundTrip(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 3}
	removed, _ := token.Remove(tokens, "player", "offense", 1)
	restored, _ := token.Add(removed, d, "player", "offense", 1)

	require.Equal(t, tokens, restored)
}

func TestAddThenOppositeFullCancellation(t *testing.T) {
	d := defs()
	tokens := token.Tokens{}
	withOffense, _ := token.Add(tokens, d, "player", "offense", 2)
	cancelled, _ := token.Add(withOffense, d, "player", "dull", 2)

	require.False(t, cancelled.Has("offense"))
	require.False(t, cancelled.Has("dull"))
}

func TestClearByType(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 2, "dull": 1}
	next, events := token.ClearByType(tokens, d, "player", "turn")

	require.True(t, next.Has("offense"))
	require.False(t, next.Has("dull"))
	require.Len(t, events, 1)
}

func TestClearByCategory(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 2, "dull": 1}
	next, events := token.ClearByCategory(tokens, d, "player", "negative")

	require.True(t, next.Has("offense"))
	require.False(t, next.Has("dull"))
	require.Len(t, events, 1)
}

func TestProcessTurnEndDecrementsTurnTokensOnly(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 2, "dull": 1}
	next, events := token.ProcessTurnEnd(tokens, d, "player")

	require.Equal(t, 2, next.GetStacks("offense"))
	require.False(t, next.Has("dull"))
	require.Len(t, events, 1)
}

func TestProcessTurnEndTwiceWithNoTurnTokensIsNoop(t *testing.T) {
	d := defs()
	tokens := token.Tokens{"offense": 2}
	first, events1 := token.ProcessTurnEnd(tokens, d, "player")
	second, events2 := token.ProcessTurnEnd(first, d, "player")

	require.Equal(t, tokens, second)
	require.Empty(t, events1)
	require.Empty(t, events2)
}

func TestDeriveAttackScenarioS2(t *testing.T) {
	tokens := token.Tokens{"dull": 1}
	mods := token.DeriveAttack(tokens)
	require.Equal(t, 0.5, mods.AttackMult)
}

func TestDeriveAttackNoTokensIsIdentity(t *testing.T) {
	mods := token.DeriveAttack(token.Tokens{})
	require.Equal(t, 1.0, mods.AttackMult)
	require.Equal(t, 0, mods.DamageBonus)
	require.False(t, mods.IgnoreBlock)
}

func TestDeriveAttackFragmentationAndArmorPiercing(t *testing.T) {
	tokens := token.Tokens{"fragmentation": 1, "armor_piercing": 1, "absorb": 1}
	mods := token.DeriveAttack(tokens)
	require.Equal(t, 6, mods.DamageBonus)
	require.True(t, mods.IgnoreBlock)
	require.Equal(t, 0.5, mods.Lifesteal)
}

func TestDeriveDefenseDodgeChanceTakesMax(t *testing.T) {
	tokens := token.Tokens{"blur": 1, "dodgePlus": 1}
	mods := token.DeriveDefense(tokens)
	require.Equal(t, 0.75, mods.DodgeChance)
}

func TestDamageTakenMultMultipliesActiveTokens(t *testing.T) {
	require.Equal(t, 1.0, token.DamageTakenMult(token.Tokens{}))
	require.Equal(t, 1.5, token.DamageTakenMult(token.Tokens{"vulnerable": 1}))
	require.Equal(t, 2.25, token.DamageTakenMult(token.Tokens{"vulnerable": 1, "pain": 1}))
	require.Equal(t, 2.0, token.DamageTakenMult(token.Tokens{"vulnerablePlus": 3}))
}

func TestCheckPredicates(t *testing.T) {
	tokens := token.Tokens{"counter": 1, "reflect": 2, "immunity": 1, "revive": 1}
	require.True(t, token.CheckCounter(tokens))

	stacks, active := token.CheckReflect(tokens)
	require.True(t, active)
	require.Equal(t, 2, stacks)

	require.True(t, token.CheckImmunity(tokens))
	require.True(t, token.CheckRevive(tokens))
}

func TestProcessBurnTicksOneStackAndDealsStackDamage(t *testing.T) {
	tokens := token.Tokens{"burn": 3}
	next, dmg := token.ProcessBurn(tokens, "enemy")

	require.Equal(t, 3, dmg)
	require.Equal(t, 2, next.GetStacks("burn"))
}

func TestProcessBurnInactiveDealsNoDamage(t *testing.T) {
	next, dmg := token.ProcessBurn(token.Tokens{}, "enemy")
	require.Equal(t, 0, dmg)
	require.Empty(t, next)
}
