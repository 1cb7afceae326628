package agents

import "conquest/game"

// defensive turtles: walls, watchtowers and gates go up on the frontier
// before anything else, archers man them, and the army only marches out on
// an overwhelming advantage. Other players are off limits until endgame.
type defensive struct{}

const (
	defensiveAttackRatio   = 2.5
	defensiveTrainBatch    = 3
	defensiveFortifyOrders = 2
)

func (defensive) Decide(ctx *Context) []Action {
	actions := fortifyFrontier(ctx, defensiveFortifyOrders)

	if !hasOrBuilds(ctx, game.BuildingBarracks) {
		if site, ok := buildSite(ctx, game.BuildingBarracks); ok {
			actions = append(actions, Build(site, game.BuildingBarracks))
		}
	}

	army := ctx.MainArmy()
	if army != nil && game.HasTrainingBuilding(ctx.World(), ctx.Player, game.UnitArcher) {
		if qty := maxAffordable(ctx.Player, game.UnitArcher, defensiveTrainBatch); qty > 0 {
			actions = append(actions, Train(army.ID, game.UnitArcher, qty))
		}
	}

	if army != nil {
		accept := func(t *game.Territory) bool { return !t.Owned() }
		if ctx.Phase() == game.PhaseEndgame {
			accept = func(*game.Territory) bool { return true }
		}
		strength := game.AttackStrength(ctx.Player, army)
		if id, est, ok := weakestTarget(ctx, army, accept); ok && strength >= defensiveAttackRatio*est {
			actions = append(actions, Attack(army.ID, id))
		}
	}

	return append(actions, Wait())
}

// fortifyFrontier proposes up to limit constructions across the frontier,
// raising each tile's defenses wall first, then a tower, then the gate, then
// the remaining towers.
func fortifyFrontier(ctx *Context, limit int) []Action {
	var actions []Action
	for _, id := range ctx.Frontier() {
		if len(actions) >= limit {
			break
		}
		t := ctx.World().ByID(id)
		for _, b := range fortifyOrder(t) {
			if ok, _ := game.CanBuild(ctx.World(), ctx.Player, id, b); ok {
				actions = append(actions, Build(id, b))
				break
			}
		}
	}
	return actions
}

func fortifyOrder(t *game.Territory) []game.BuildingType {
	switch {
	case t.CountOf(game.BuildingWall) == 0:
		return []game.BuildingType{game.BuildingWall}
	case t.CountOf(game.BuildingWatchtower) == 0:
		return []game.BuildingType{game.BuildingWatchtower}
	case t.CountOf(game.BuildingGate) == 0:
		return []game.BuildingType{game.BuildingGate, game.BuildingWatchtower}
	default:
		return []game.BuildingType{game.BuildingWatchtower}
	}
}
