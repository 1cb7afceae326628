package agents

import "conquest/game"

// aggressive rushes military: barracks, swordsmen, then any fight the army
// plausibly wins. Economy buildings are funded only when training stalls.
type aggressive struct{}

const (
	aggressiveWildRatio   = 1.2
	aggressivePlayerRatio = 1.3
	aggressiveTrainBatch  = 5
)

func (aggressive) Decide(ctx *Context) []Action {
	var actions []Action

	if !hasOrBuilds(ctx, game.BuildingBarracks) {
		if site, ok := buildSite(ctx, game.BuildingBarracks); ok {
			actions = append(actions, Build(site, game.BuildingBarracks))
		}
	}

	army := ctx.MainArmy()
	trained := false
	if army != nil {
		unit := game.UnitMilitia
		if game.HasTrainingBuilding(ctx.World(), ctx.Player, game.UnitSwordsman) {
			unit = game.UnitSwordsman
		}
		if qty := maxAffordable(ctx.Player, unit, aggressiveTrainBatch); qty > 0 {
			actions = append(actions, Train(army.ID, unit, qty))
			trained = true
		}
	}

	if army != nil {
		strength := game.AttackStrength(ctx.Player, army)
		wild := func(t *game.Territory) bool { return !t.Owned() }
		if id, est, ok := weakestTarget(ctx, army, wild); ok && strength >= aggressiveWildRatio*est {
			actions = append(actions, Attack(army.ID, id))
		}
		if ctx.Phase() != game.PhasePlanning {
			hostile := func(t *game.Territory) bool { return t.Owned() }
			if id, est, ok := weakestTarget(ctx, army, hostile); ok && strength >= aggressivePlayerRatio*est {
				actions = append(actions, Attack(army.ID, id))
			}
		}
	}

	if !trained {
		if site, b, ok := scarcestYieldBuilding(ctx); ok {
			actions = append(actions, Build(site, b))
		}
	}

	return append(actions, Wait())
}
