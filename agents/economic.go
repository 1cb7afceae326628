package agents

import "conquest/game"

// economic grows the resource base: whichever stock is scarcest gets its
// yield building next. Militia are raised only under visible threat, and the
// army clears wild garrisons only when the fight is lopsided.
type economic struct{}

const (
	economicAttackRatio = 3.0
	economicTrainBatch  = 2
)

func (economic) Decide(ctx *Context) []Action {
	var actions []Action

	if site, b, ok := scarcestYieldBuilding(ctx); ok {
		actions = append(actions, Build(site, b))
	}

	army := ctx.MainArmy()
	if army != nil && ctx.Threatened() {
		if qty := maxAffordable(ctx.Player, game.UnitMilitia, economicTrainBatch); qty > 0 {
			actions = append(actions, Train(army.ID, game.UnitMilitia, qty))
		}
	}

	if army != nil {
		wild := func(t *game.Territory) bool { return !t.Owned() }
		strength := game.AttackStrength(ctx.Player, army)
		if id, est, ok := weakestTarget(ctx, army, wild); ok && strength >= economicAttackRatio*est {
			actions = append(actions, Attack(army.ID, id))
		}
	}

	return append(actions, Wait())
}
