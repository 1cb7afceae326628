// Package agents holds the five strategy policies that decide a player's
// orders each day. A policy is a pure ranking function over the visible
// state; only the random baseline consumes the RNG.
package agents

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"conquest/game"
)

// Kind selects one of the built-in policies.
type Kind int

const (
	Aggressive Kind = iota
	Defensive
	Economic
	Balanced
	Random
	NumKinds
)

var kindNames = [NumKinds]string{"aggressive", "defensive", "economic", "balanced", "random"}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a config name onto a Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown agent kind %q", name)
}

// AllKinds lists every policy kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, NumKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ActionType tags a candidate order.
type ActionType int

const (
	ActionWait ActionType = iota
	ActionBuild
	ActionTrain
	ActionAttack
)

func (t ActionType) String() string {
	switch t {
	case ActionBuild:
		return "build"
	case ActionTrain:
		return "train"
	case ActionAttack:
		return "attack"
	default:
		return "wait"
	}
}

// Action is one candidate order. The executor checks legality at execution
// time and skips what no longer holds, so policies may rank optimistically.
type Action struct {
	Type      ActionType
	Territory int // build site or attack target
	Building  game.BuildingType
	Unit      game.UnitType
	Quantity  int
	ArmyID    int
}

func (a Action) String() string {
	switch a.Type {
	case ActionBuild:
		return fmt.Sprintf("build %s on %d", a.Building, a.Territory)
	case ActionTrain:
		return fmt.Sprintf("train %d %s into army %d", a.Quantity, a.Unit, a.ArmyID)
	case ActionAttack:
		return fmt.Sprintf("attack %d with army %d", a.Territory, a.ArmyID)
	default:
		return "wait"
	}
}

// Wait is the universal fallback order.
func Wait() Action { return Action{Type: ActionWait} }

// Build proposes a construction on an owned territory.
func Build(territory int, b game.BuildingType) Action {
	return Action{Type: ActionBuild, Territory: territory, Building: b}
}

// Train proposes adding units to an army.
func Train(armyID int, u game.UnitType, qty int) Action {
	return Action{Type: ActionTrain, ArmyID: armyID, Unit: u, Quantity: qty}
}

// Attack proposes striking a territory with an army.
func Attack(armyID, target int) Action {
	return Action{Type: ActionAttack, ArmyID: armyID, Territory: target}
}

// Context is the full view a policy decides from.
type Context struct {
	State  *game.GenerationState
	Player *game.Player
	RNG    *game.RNG
}

func (c *Context) World() *game.World { return c.State.World }

func (c *Context) Day() int { return c.State.Day }

func (c *Context) Phase() game.Phase { return c.State.Phase }

// MainArmy returns the player's strongest army, or nil when the player has
// none. Armies are stored in creation order, so ties keep the lowest id.
func (c *Context) MainArmy() *game.Army {
	var best *game.Army
	bestStr := -1.0
	for _, a := range c.Player.Armies {
		if s := game.AttackStrength(c.Player, a); s > bestStr {
			best, bestStr = a, s
		}
	}
	return best
}

// AttackTargets lists every tile the army may legally strike, ascending.
func (c *Context) AttackTargets(a *game.Army) []int {
	if a == nil {
		return nil
	}
	w := c.World()
	seen := map[int]bool{}
	var scratch []int
	for _, id := range c.Player.OwnedTerritoryIDs() {
		scratch = w.Neighbors(id, scratch[:0])
		for _, nb := range scratch {
			if !seen[nb] && game.CanAttack(w, c.Player, a, nb) {
				seen[nb] = true
			}
		}
	}
	targets := maps.Keys(seen)
	slices.Sort(targets)
	return targets
}

// Frontier lists owned tiles bordering land the player does not hold,
// ascending. These are the tiles worth fortifying.
func (c *Context) Frontier() []int {
	w := c.World()
	var frontier []int
	var scratch []int
	for _, id := range c.Player.OwnedTerritoryIDs() {
		scratch = w.Neighbors(id, scratch[:0])
		for _, nb := range scratch {
			t := w.ByID(nb)
			if t.IsLand() && t.Owner != c.Player.ID {
				frontier = append(frontier, id)
				break
			}
		}
	}
	return frontier
}

// Threatened reports whether the hostile strength on adjacent tiles exceeds
// the player's own total defense.
func (c *Context) Threatened() bool {
	w := c.World()
	hostile := 0.0
	counted := map[int]bool{}
	var scratch []int
	for _, id := range c.Player.OwnedTerritoryIDs() {
		scratch = w.Neighbors(id, scratch[:0])
		for _, nb := range scratch {
			t := w.ByID(nb)
			if counted[nb] || t.Owner == c.Player.ID {
				continue
			}
			if t.Owned() || t.Forsaken {
				hostile += c.State.DefenseEstimate(nb)
				counted[nb] = true
			}
		}
	}
	return hostile > game.DefenseStrength(c.Player, c.Player.Armies)
}

// Policy ranks candidate actions for one player's day. The engine executes
// the top few and skips anything illegal.
type Policy interface {
	Decide(ctx *Context) []Action
}

// New returns the policy implementation for a kind.
func New(k Kind) Policy {
	switch k {
	case Aggressive:
		return aggressive{}
	case Defensive:
		return defensive{}
	case Economic:
		return economic{}
	case Balanced:
		return balanced{}
	case Random:
		return random{}
	default:
		panic(fmt.Sprintf("unknown agent kind %d", k))
	}
}

// weakestTarget returns the attackable tile with the lowest defense estimate
// among those the filter accepts, lowest id on ties.
func weakestTarget(c *Context, a *game.Army, accept func(*game.Territory) bool) (int, float64, bool) {
	best, bestEst, found := 0, 0.0, false
	for _, id := range c.AttackTargets(a) {
		if !accept(c.World().ByID(id)) {
			continue
		}
		est := c.State.DefenseEstimate(id)
		if !found || est < bestEst {
			best, bestEst, found = id, est, true
		}
	}
	return best, bestEst, found
}

// buildSite returns the first owned territory where b can be built today.
func buildSite(c *Context, b game.BuildingType) (int, bool) {
	for _, id := range c.Player.OwnedTerritoryIDs() {
		if ok, _ := game.CanBuild(c.World(), c.Player, id, b); ok {
			return id, true
		}
	}
	return 0, false
}

// hasOrBuilds reports whether a building of the type exists anywhere in the
// player's territory, completed or under construction.
func hasOrBuilds(c *Context, b game.BuildingType) bool {
	for _, id := range c.Player.OwnedTerritoryIDs() {
		if c.World().ByID(id).CountOf(b) > 0 {
			return true
		}
	}
	return false
}

// maxAffordable returns the largest quantity of u the player can pay for,
// up to limit, or zero.
func maxAffordable(p *game.Player, u game.UnitType, limit int) int {
	for qty := limit; qty > 0; qty-- {
		if p.Resources.Covers(game.UnitCost(p, u, qty)) {
			return qty
		}
	}
	return 0
}

// scarcestYieldBuilding walks the player's stocks from scarcest up and
// returns the first yield building with an open site.
func scarcestYieldBuilding(c *Context) (int, game.BuildingType, bool) {
	type stock struct {
		amount   int
		building game.BuildingType
	}
	stocks := []stock{
		{c.Player.Resources.Gold, game.BuildingMine},
		{c.Player.Resources.Wood, game.BuildingSawmill},
		{c.Player.Resources.Stone, game.BuildingQuarry},
		{c.Player.Resources.Food, game.BuildingFarm},
		{c.Player.Resources.Mana, game.BuildingShrine},
	}
	slices.SortStableFunc(stocks, func(a, b stock) int { return a.amount - b.amount })
	for _, s := range stocks {
		if site, ok := buildSite(c, s.building); ok {
			return site, s.building, true
		}
	}
	return 0, 0, false
}
