package agents

import "conquest/game"

// random is the non-strategic baseline: it enumerates today's legal orders
// and draws a handful uniformly.
type random struct{}

const randomOrders = 3

func (random) Decide(ctx *Context) []Action {
	candidates := legalActions(ctx)
	ctx.RNG.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > randomOrders {
		candidates = candidates[:randomOrders]
	}
	return append(candidates, Wait())
}

// legalActions enumerates every order the executor would accept right now,
// in a fixed order: builds by territory then type, trains by unit type,
// attacks by target id.
func legalActions(ctx *Context) []Action {
	var candidates []Action
	w := ctx.World()

	for _, id := range ctx.Player.OwnedTerritoryIDs() {
		for b := game.BuildingType(0); b < game.NumBuildingTypes; b++ {
			if ok, _ := game.CanBuild(w, ctx.Player, id, b); ok {
				candidates = append(candidates, Build(id, b))
			}
		}
	}

	army := ctx.MainArmy()
	if army == nil {
		return candidates
	}
	for u := game.UnitType(0); u < game.NumUnitTypes; u++ {
		if qty := maxAffordable(ctx.Player, u, randomOrders); qty > 0 {
			if ok, _ := game.CanTrain(w, ctx.Player, army, u, qty); ok {
				candidates = append(candidates, Train(army.ID, u, qty))
			}
		}
	}
	for _, id := range ctx.AttackTargets(army) {
		candidates = append(candidates, Attack(army.ID, id))
	}
	return candidates
}
