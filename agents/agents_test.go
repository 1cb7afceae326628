package agents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conquest/game"
)

// testWorld builds a 6x6 all-plains map.
func testWorld() *game.World {
	w := game.NewWorld(6)
	for id := range w.Territories {
		w.Territories[id].Terrain = game.TerrainPlains
	}
	return w
}

// testContext owns tiles 14 and 15 for the deciding player, garrisoned by a
// ten-swordsman army and deep pockets, with an idle rival alongside.
func testContext(day int, seed int64) *Context {
	w := testWorld()
	p0 := game.NewPlayer(0, "tester", game.RaceHuman, game.ClassWarlord, game.SkillTactician, game.TierFree)
	p1 := game.NewPlayer(1, "rival", game.RaceHuman, game.ClassWarlord, game.SkillTactician, game.TierFree)
	rng := game.NewRNG(seed)
	st := game.NewGenerationState(seed, w, []*game.Player{p0, p1}, rng)
	st.Day = day
	st.Phase = game.PhaseForDay(day)

	for _, id := range []int{14, 15} {
		w.ByID(id).Owner = p0.ID
		p0.AddTerritory(id)
	}
	army := st.NewArmy(p0, 14)
	army.AddUnits(game.UnitSwordsman, 10)
	p0.Resources = game.Resources{Gold: 500, Wood: 500, Stone: 500, Food: 500, Mana: 500}
	return &Context{State: st, Player: p0, RNG: rng}
}

// flood turns every listed tile into water.
func flood(c *Context, ids ...int) {
	for _, id := range ids {
		c.World().ByID(id).Terrain = game.TerrainWater
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range AllKinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err, "Should parse every kind's own name")
		require.Equal(t, k, parsed, "Should round-trip through the name")
		require.NotNil(t, New(k), "Should construct every kind")
	}

	_, err := ParseKind("bloodthirsty")
	require.Error(t, err, "Should reject unknown names")
	require.Panics(t, func() { New(NumKinds) }, "Should panic on an out-of-range kind")
}

func TestContextMainArmy(t *testing.T) {
	ctx := testContext(3, 1)
	require.Equal(t, ctx.Player.Armies[0], ctx.MainArmy(), "Should pick the only army")

	second := ctx.State.NewArmy(ctx.Player, 15)
	second.AddUnits(game.UnitKnight, 20)
	require.Equal(t, second, ctx.MainArmy(), "Should pick the stronger army")

	loner := &Context{State: ctx.State, Player: ctx.State.PlayerByID(1), RNG: ctx.RNG}
	require.Nil(t, loner.MainArmy(), "Should return nil without armies")
}

func TestContextAttackTargets(t *testing.T) {
	ctx := testContext(3, 1)
	army := ctx.MainArmy()

	require.Equal(t, []int{8, 9, 13, 16, 20, 21}, ctx.AttackTargets(army),
		"Should list the unowned land ring in ascending order")

	flood(ctx, 9, 13)
	require.Equal(t, []int{8, 16, 20, 21}, ctx.AttackTargets(army),
		"Should drop water tiles")

	require.Empty(t, ctx.AttackTargets(nil), "Should return nothing for a nil army")
}

func TestContextFrontier(t *testing.T) {
	ctx := testContext(3, 1)
	require.Equal(t, []int{14, 15}, ctx.Frontier(), "Should flag both border tiles")

	// Lock tile 14 in: neighbors become water or friendly.
	flood(ctx, 8, 13, 20)
	require.Equal(t, []int{15}, ctx.Frontier(), "Should drop tiles with no land border")
}

func TestContextThreatened(t *testing.T) {
	ctx := testContext(3, 1)
	require.False(t, ctx.Threatened(), "Should feel safe beside empty land")

	hostile := ctx.World().ByID(8)
	hostile.Forsaken = true
	hostile.Garrison = 100
	require.True(t, ctx.Threatened(), "Should feel threatened by a big garrison next door")

	hostile.Garrison = 2
	require.False(t, ctx.Threatened(), "Should shrug off a token garrison")
}

func TestEveryPolicyDegradesToWait(t *testing.T) {
	for _, k := range AllKinds() {
		t.Run(k.String(), func(t *testing.T) {
			ctx := testContext(3, 1)
			actions := New(k).Decide(ctx)
			require.NotEmpty(t, actions, "Should always propose something")
			require.Equal(t, Wait(), actions[len(actions)-1], "Should end the list with wait")

			// A player with nothing left can only wait.
			broke := game.NewPlayer(1, "broke", game.RaceHuman, game.ClassWarlord, game.SkillTactician, game.TierFree)
			broke.Resources = game.Resources{}
			ctx.Player = broke
			require.Equal(t, []Action{Wait()}, New(k).Decide(ctx),
				"Should degrade to a lone wait with no options")
		})
	}
}

func TestActionStrings(t *testing.T) {
	require.Equal(t, "build farm on 3", Build(3, game.BuildingFarm).String())
	require.Equal(t, "train 2 archer into army 7", Train(7, game.UnitArcher, 2).String())
	require.Equal(t, "attack 9 with army 7", Attack(7, 9).String())
	require.Equal(t, "wait", Wait().String())
}
