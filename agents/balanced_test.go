package agents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conquest/game"
)

func TestBalancedRotatesLeadConcern(t *testing.T) {
	t.Run("economy day", func(t *testing.T) {
		actions := balanced{}.Decide(testContext(3, 1))
		require.Equal(t, ActionBuild, actions[0].Type, "Should lead with construction")
		require.Equal(t, game.BuildingMine, actions[0].Building,
			"Should pick a yield building with flat stocks")
	})

	t.Run("military day", func(t *testing.T) {
		actions := balanced{}.Decide(testContext(4, 1))
		require.Equal(t, Build(14, game.BuildingBarracks), actions[0],
			"Should lead with the barracks")
	})

	t.Run("conquest day", func(t *testing.T) {
		actions := balanced{}.Decide(testContext(5, 1))
		require.Equal(t, Attack(1, 8), actions[0], "Should lead with a claim on free land")
	})
}

func TestBalancedEmitsAllConcerns(t *testing.T) {
	actions := balanced{}.Decide(testContext(3, 1))

	types := map[ActionType]bool{}
	for _, a := range actions {
		types[a.Type] = true
	}
	require.True(t, types[ActionBuild], "Should propose a build")
	require.True(t, types[ActionAttack], "Should propose a claim")
	require.Equal(t, Wait(), actions[len(actions)-1], "Should close with wait")
}

func TestBalancedAttackThreshold(t *testing.T) {
	ctx := testContext(5, 1)
	flood(ctx, 9, 13, 16, 20, 21)
	den := ctx.World().ByID(8)
	den.Forsaken = true
	den.Garrison = 45

	actions := balanced{}.Decide(ctx)
	for _, a := range actions {
		require.NotEqual(t, ActionAttack, a.Type, "Should pass on an even fight")
	}

	den.Garrison = 20
	actions = balanced{}.Decide(ctx)
	require.Contains(t, actions, Attack(1, 8), "Should take a clearly favorable fight")
}
