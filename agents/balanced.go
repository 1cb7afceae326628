package agents

import "conquest/game"

// balanced rotates its lead concern day by day across economy, military and
// conquest, so no front falls far behind.
type balanced struct{}

const (
	balancedAttackRatio = 1.5
	balancedTrainBatch  = 3
)

func (balanced) Decide(ctx *Context) []Action {
	categories := [3]func(*Context) []Action{economyOrders, militaryOrders, conquestOrders}
	lead := ctx.Day() % len(categories)

	var actions []Action
	for i := range categories {
		actions = append(actions, categories[(lead+i)%len(categories)](ctx)...)
	}
	return append(actions, Wait())
}

func economyOrders(ctx *Context) []Action {
	if site, b, ok := scarcestYieldBuilding(ctx); ok {
		return []Action{Build(site, b)}
	}
	return nil
}

func militaryOrders(ctx *Context) []Action {
	if !hasOrBuilds(ctx, game.BuildingBarracks) {
		if site, ok := buildSite(ctx, game.BuildingBarracks); ok {
			return []Action{Build(site, game.BuildingBarracks)}
		}
	}
	army := ctx.MainArmy()
	if army == nil {
		return nil
	}
	unit := game.UnitMilitia
	if game.HasTrainingBuilding(ctx.World(), ctx.Player, game.UnitSwordsman) {
		unit = game.UnitSwordsman
	}
	if qty := maxAffordable(ctx.Player, unit, balancedTrainBatch); qty > 0 {
		return []Action{Train(army.ID, unit, qty)}
	}
	return nil
}

func conquestOrders(ctx *Context) []Action {
	army := ctx.MainArmy()
	if army == nil {
		return nil
	}
	strength := game.AttackStrength(ctx.Player, army)
	anyTile := func(*game.Territory) bool { return true }
	if id, est, ok := weakestTarget(ctx, army, anyTile); ok && strength >= balancedAttackRatio*est {
		return []Action{Attack(army.ID, id)}
	}
	return nil
}
