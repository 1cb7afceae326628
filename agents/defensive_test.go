package agents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conquest/game"
)

func TestDefensiveFortifiesFrontierFirst(t *testing.T) {
	ctx := testContext(3, 1)
	actions := defensive{}.Decide(ctx)

	require.Equal(t, Build(14, game.BuildingWall), actions[0],
		"Should wall the first frontier tile")
	require.Equal(t, Build(15, game.BuildingWall), actions[1],
		"Should wall the second frontier tile")
	require.Contains(t, actions, Build(14, game.BuildingBarracks),
		"Should queue a barracks for the archers")
	require.Equal(t, Wait(), actions[len(actions)-1], "Should close with wait")
}

func TestDefensiveFortifyProgression(t *testing.T) {
	ctx := testContext(3, 1)
	tile := ctx.World().ByID(14)

	tile.Buildings = []game.Building{{Type: game.BuildingWall, Completed: true}}
	actions := defensive{}.Decide(ctx)
	require.Equal(t, Build(14, game.BuildingWatchtower), actions[0],
		"Should follow the wall with a watchtower")

	tile.Buildings = append(tile.Buildings, game.Building{Type: game.BuildingWatchtower, Completed: true})
	actions = defensive{}.Decide(ctx)
	require.Equal(t, Build(14, game.BuildingGate), actions[0],
		"Should gate the finished wall next")

	// An unfinished wall postpones the gate but not the towers.
	tile.Buildings = []game.Building{
		{Type: game.BuildingWall, CompleteDay: 9},
		{Type: game.BuildingWatchtower, Completed: true},
	}
	actions = defensive{}.Decide(ctx)
	require.Equal(t, Build(14, game.BuildingWatchtower), actions[0],
		"Should keep building towers while the wall is under construction")
}

func TestDefensiveTrainsArchers(t *testing.T) {
	ctx := testContext(3, 1)
	ctx.World().ByID(14).Buildings = []game.Building{{Type: game.BuildingBarracks, Completed: true}}

	actions := defensive{}.Decide(ctx)
	require.Contains(t, actions, Train(1, game.UnitArcher, 3),
		"Should man the walls with archers once a barracks stands")
}

func TestDefensiveAttackThreshold(t *testing.T) {
	ctx := testContext(10, 1)
	flood(ctx, 9, 13, 16, 20, 21)
	den := ctx.World().ByID(8)
	den.Forsaken = true
	den.Garrison = 40

	actions := defensive{}.Decide(ctx)
	for _, a := range actions {
		require.NotEqual(t, ActionAttack, a.Type, "Should not attack below a crushing advantage")
	}

	den.Garrison = 10
	actions = defensive{}.Decide(ctx)
	require.Contains(t, actions, Attack(1, 8), "Should clear a garrison it crushes")
}

func TestDefensiveSparesPlayersUntilEndgame(t *testing.T) {
	setup := func(day int) *Context {
		ctx := testContext(day, 1)
		flood(ctx, 9, 13, 16, 20, 21)
		rival := ctx.State.PlayerByID(1)
		tile := ctx.World().ByID(8)
		tile.Owner = rival.ID
		rival.AddTerritory(8)
		garrison := ctx.State.NewArmy(rival, 8)
		garrison.AddUnits(game.UnitMilitia, 2)
		return ctx
	}

	active := defensive{}.Decide(setup(10))
	for _, a := range active {
		require.NotEqual(t, ActionAttack, a.Type, "Should leave rivals alone before endgame")
	}

	endgame := defensive{}.Decide(setup(45))
	require.Contains(t, endgame, Attack(1, 8), "Should finally move on rivals in endgame")
}
