package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArmyStacks(t *testing.T) {
	a := &Army{ID: 1, Owner: 0, Home: 0}

	t.Run("training merges into existing stacks", func(t *testing.T) {
		a.AddUnits(UnitMilitia, 5)
		a.AddUnits(UnitMilitia, 3)
		a.AddUnits(UnitArcher, 2)
		require.Len(t, a.Stacks, 2, "Should keep one stack per unit type")
		require.Equal(t, 10, a.UnitCount(), "Should count all units")
		require.Equal(t, 80, a.Stacks[0].HP, "Should add fresh units at full health")
	})

	t.Run("removal takes proportional hit points", func(t *testing.T) {
		b := &Army{ID: 2, Owner: 0, Home: 0}
		b.AddUnits(UnitMilitia, 10)
		b.Stacks[0].HP = 80 // battered from an earlier fight

		removed := b.RemoveUnits(5)
		require.Equal(t, 5, removed, "Should remove the requested units")
		require.Equal(t, 5, b.Stacks[0].Quantity, "Should shrink the stack")
		require.Equal(t, 40, b.Stacks[0].HP, "Should carry away a proportional share of hit points")
	})

	t.Run("removing more than exists empties and prunes", func(t *testing.T) {
		c := &Army{ID: 3, Owner: 0, Home: 0}
		c.AddUnits(UnitMilitia, 4)
		removed := c.RemoveUnits(9)
		require.Equal(t, 4, removed, "Should report only what was actually removed")
		require.Empty(t, c.Stacks, "Should prune the emptied stack")
		require.Zero(t, c.UnitCount(), "Should hold no units")
	})

	t.Run("erosion never drops below one hit point per unit", func(t *testing.T) {
		d := &Army{ID: 4, Owner: 0, Home: 0}
		d.AddUnits(UnitMilitia, 4)
		d.Erode(0.99)
		require.Equal(t, 4, d.Stacks[0].HP, "Should floor at one hit point per unit")

		d.Heal(0.5)
		require.Equal(t, 22, d.Stacks[0].HP, "Should heal half the missing hit points")
	})

	t.Run("upkeep and value follow the catalog", func(t *testing.T) {
		e := &Army{ID: 5, Owner: 0, Home: 0}
		e.AddUnits(UnitMilitia, 3)
		e.AddUnits(UnitKnight, 2)
		require.Equal(t, 3*1+2*3, e.RawUpkeep(), "Should sum per-unit upkeep")
		require.Equal(t, 3*25+2*95, e.Value(), "Should sum cost-normalized worth")
	})
}

func TestPlayerMoraleMultiplier(t *testing.T) {
	p := NewPlayer(0, "p0", RaceHuman, ClassWarlord, SkillTactician, TierFree)

	require.InDelta(t, 1.0, p.MoraleMultiplier(), 1e-9, "Should be neutral at morale 50")
	p.Morale = 100
	require.InDelta(t, 1.3, p.MoraleMultiplier(), 1e-9, "Should peak at 130%")
	p.Morale = 0
	require.InDelta(t, 0.7, p.MoraleMultiplier(), 1e-9, "Should bottom at 70%")

	z := NewPlayer(1, "p1", RaceHuman, ClassZealot, SkillTactician, TierFree)
	z.Morale = 100
	require.InDelta(t, 1.35, z.MoraleMultiplier(), 1e-9, "Should widen the band for a living zealot")
	z.Morale = 0
	require.InDelta(t, 0.65, z.MoraleMultiplier(), 1e-9, "Should widen downward too")
	z.CaptainAlive = false
	z.Morale = 100
	require.InDelta(t, 1.3, z.MoraleMultiplier(), 1e-9, "Should revert to the normal band without the captain")
}

func TestPlayerCombatModifiers(t *testing.T) {
	p := NewPlayer(0, "p0", RaceOrc, ClassWarlord, SkillTactician, TierFree)

	require.InDelta(t, 1.15*1.10*1.05, p.AttackModifier(), 1e-9,
		"Should stack race, class and skill at neutral morale")

	p.CaptainAlive = false
	require.InDelta(t, 1.15, p.AttackModifier(), 1e-9,
		"Should keep the race bonus but drop captain effects when the captain dies")
	require.InDelta(t, 1.0, p.DefenseModifier(), 1e-9,
		"Should leave defense unmodified without captain effects")
}

func TestPlayerMoraleClamp(t *testing.T) {
	p := NewPlayer(0, "p0", RaceHuman, ClassWarlord, SkillTactician, TierFree)
	p.GainMorale(500)
	require.Equal(t, MoraleMax, p.Morale, "Should clamp morale at the top")
	p.LoseMorale(500)
	require.Equal(t, MoraleMin, p.Morale, "Should clamp morale at the bottom")
}

func TestPlayerTerritories(t *testing.T) {
	p := NewPlayer(0, "p0", RaceHuman, ClassWarlord, SkillTactician, TierFree)
	p.AddTerritory(9)
	p.AddTerritory(2)
	p.AddTerritory(5)

	require.Equal(t, []int{2, 5, 9}, p.OwnedTerritoryIDs(), "Should iterate owned ids in ascending order")
	require.Equal(t, 3, p.TerritoryCount(), "Should count owned territories")

	p.RemoveTerritory(5)
	require.Equal(t, []int{2, 9}, p.OwnedTerritoryIDs(), "Should drop removed ids")
}

func TestTierStart(t *testing.T) {
	free := TierStartingResources(TierFree)
	premium := TierStartingResources(TierPremium)
	require.True(t, premium.Covers(free), "Should give premium captains at least the free bundle")
	require.Greater(t, TierStartingMilitia(TierPremium), TierStartingMilitia(TierFree),
		"Should give premium captains a larger starter army")
}
