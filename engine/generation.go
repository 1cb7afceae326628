package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"conquest/agents"
	"conquest/game"
)

// Day-loop tuning. The heartbeat regarrisons a slice of the wilds every
// seventh day; each player gets at most three executed orders per day.
const (
	heartbeatInterval = 7
	heartbeatFraction = 0.10
	maxOrdersPerDay   = 3
	dailyHealRate     = 0.10 // fraction of missing hit points restored per day
)

// Generation is one match being played out. It owns its RNG and state for
// the whole run; nothing here may be shared across concurrent generations.
type Generation struct {
	cfg      SimConfig
	rng      *game.RNG
	state    *game.GenerationState
	policies []agents.Policy // indexed by player id
}

// NewGeneration builds the world, seats the players, and hands out starter
// armies. Construction draws from the RNG in a fixed order, so a seed fully
// determines the generation before the first day runs.
func NewGeneration(cfg SimConfig) (*Generation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rng := game.NewRNG(cfg.Seed)
	world := game.GenerateWorld(cfg.GridSize, rng)

	starts, ok := findStarts(world, cfg, rng)
	if !ok {
		return nil, fmt.Errorf("no room for %d players with %d plots on a %d grid",
			cfg.Players, cfg.plots(), cfg.GridSize)
	}

	kinds, weights := cfg.mixKinds()
	players := make([]*game.Player, cfg.Players)
	policies := make([]agents.Policy, cfg.Players)
	for id := range players {
		race := game.Race(rng.PickIndex(int(game.NumRaces)))
		class := game.CaptainClass(rng.PickIndex(int(game.NumClasses)))
		skill := game.CaptainSkill(rng.PickIndex(int(game.NumSkills)))
		tier := game.TierFree
		if rng.Chance(cfg.PremiumRatio) {
			tier = game.TierPremium
		}
		kind := kinds[rng.WeightedIndex(weights)]

		p := game.NewPlayer(id, fmt.Sprintf("player-%d", id+1), race, class, skill, tier)
		p.AgentName = kind.String()
		players[id] = p
		policies[id] = agents.New(kind)
	}

	state := game.NewGenerationState(cfg.Seed, world, players, rng)
	for id, p := range players {
		for _, tid := range starts[id] {
			world.ByID(tid).Owner = id
			p.AddTerritory(tid)
		}
		army := state.NewArmy(p, starts[id][0])
		army.AddUnits(game.UnitMilitia, game.TierStartingMilitia(p.Tier))
		state.RecordEvent(0, game.EventPlayerJoined, id, starts[id][0],
			fmt.Sprintf("%s %s %s (%s, %s)", p.Race, p.Class, p.Skill, p.Tier, p.AgentName))
	}

	return &Generation{cfg: cfg, rng: rng, state: state, policies: policies}, nil
}

// findStarts runs the placement search, halving the separation on each retry
// before giving up. A crowded seed fails cleanly instead of erroring deep in
// the map code.
func findStarts(w *game.World, cfg SimConfig, rng *game.RNG) ([][]int, bool) {
	sep := cfg.separation()
	for attempt := 0; attempt <= startSearchRetries; attempt++ {
		starts, ok := game.FindStartPositions(w, cfg.Players, cfg.plots(), sep, rng)
		if ok {
			return starts, true
		}
		sep /= 2
		if sep < 1 {
			sep = 1
		}
	}
	return nil, false
}

// State exposes the live state for inspection between construction and Run.
func (g *Generation) State() *game.GenerationState { return g.state }

// Run plays the generation to its end and returns the result. Each day is
// fully synchronous: players act in the fixed seed-shuffled order, and one
// player's conquests are visible to the next player the same day.
func (g *Generation) Run() *Result {
	st := g.state
	log.Info().Msgf("generation seed %d: %d players on a %d grid for up to %d days",
		g.cfg.Seed, g.cfg.Players, g.cfg.GridSize, g.cfg.Days)

	finalDay := 0
	for day := 1; day <= g.cfg.Days; day++ {
		finalDay = day
		st.Day = day
		st.Phase = game.PhaseForDay(day)

		for _, id := range st.Order {
			p := st.PlayerByID(id)
			if p.Eliminated {
				continue
			}
			g.runEconomy(p, day)
			g.runOrders(p, day)
		}

		for _, p := range st.Players {
			if !p.Eliminated {
				p.Score = game.Score(st.World, p)
			}
		}
		g.checkEliminations(day)

		if day%heartbeatInterval == 0 {
			g.heartbeat(day)
		}

		if g.cfg.Verbose {
			log.Debug().Msgf("day %d (%s): %d players alive, %d combats so far",
				day, st.Phase, st.AliveCount(), len(st.CombatLog))
		}
		if st.AliveCount() < 2 {
			break
		}
	}

	winner := g.pickWinner()
	if winner != nil {
		log.Info().Msgf("generation seed %d: %s wins with score %d on day %d",
			g.cfg.Seed, winner.Name, winner.Score, finalDay)
	} else {
		log.Info().Msgf("generation seed %d: no winner after day %d", g.cfg.Seed, finalDay)
	}

	return &Result{
		Winner:    winner,
		FinalDay:  finalDay,
		Players:   st.Players,
		CombatLog: st.CombatLog,
		Events:    st.Events,
	}
}

// runEconomy advances one player's day: production, the food bill, a round
// of rest for battered armies, and any construction finishing on their land.
func (g *Generation) runEconomy(p *game.Player, day int) {
	st := g.state
	p.Resources = p.Resources.Add(game.DailyProduction(st.World, p))
	if starved, lost := game.PayUpkeep(p, game.DailyFoodUpkeep(p)); starved {
		st.RecordEvent(day, game.EventStarvation, p.ID, -1,
			fmt.Sprintf("%d units starved", lost))
	}
	for _, a := range p.Armies {
		a.Heal(dailyHealRate)
	}
	for _, done := range game.CompleteConstruction(st.World, p, day) {
		st.RecordEvent(day, game.EventBuildingCompleted, p.ID, done.Territory,
			done.Building.String())
	}
}

// runOrders asks the player's policy for its ranked actions and executes the
// top few. Illegal orders are skipped without consuming the budget; a wait
// ends the day early.
func (g *Generation) runOrders(p *game.Player, day int) {
	ctx := &agents.Context{State: g.state, Player: p, RNG: g.rng}
	executed := 0
	for _, action := range g.policies[p.ID].Decide(ctx) {
		if executed >= maxOrdersPerDay || action.Type == agents.ActionWait {
			break
		}
		if g.execute(p, action, day) {
			executed++
		}
	}
}

// execute applies one order, reporting whether it did anything. Unaffordable
// or stale orders are the expected debris of heuristic planning and fall
// through silently.
func (g *Generation) execute(p *game.Player, action agents.Action, day int) bool {
	st := g.state
	switch action.Type {
	case agents.ActionBuild:
		return game.StartBuilding(st.World, p, action.Territory, action.Building, day) == nil
	case agents.ActionTrain:
		return game.TrainUnits(st.World, p, g.armyByID(p, action.ArmyID), action.Unit, action.Quantity) == nil
	case agents.ActionAttack:
		return g.attack(p, g.armyByID(p, action.ArmyID), action.Territory, day)
	default:
		return false
	}
}

func (g *Generation) armyByID(p *game.Player, id int) *game.Army {
	for _, a := range p.Armies {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// attack resolves one battle and writes its records and events.
func (g *Generation) attack(p *game.Player, army *game.Army, target, day int) bool {
	st := g.state
	if !game.CanAttack(st.World, p, army, target) {
		return false
	}
	var defender *game.Player
	if t := st.World.ByID(target); t.Owned() {
		defender = st.PlayerByID(t.Owner)
	}

	rec := game.ResolveAttack(st.World, p, army, defender, target, day, g.rng)
	st.RecordCombat(rec)
	st.RecordEvent(day, game.EventCombat, p.ID, target, rec.Outcome.String())
	if rec.Captured {
		st.RecordEvent(day, game.EventTerritoryClaimed, p.ID, target, "")
	}
	if rec.AttackerCaptainLost {
		st.RecordEvent(day, game.EventCaptainDied, p.ID, target, "fell leading the assault")
	}
	if rec.DefenderCaptainLost && defender != nil {
		st.RecordEvent(day, game.EventCaptainDied, defender.ID, target, "fell in the defense")
	}
	if g.cfg.Verbose {
		log.Debug().Msgf("day %d: %s attacked territory %d: %s (rolls %d/%d, losses %d/%d)",
			day, p.Name, target, rec.Outcome, rec.AttackerRoll, rec.DefenderRoll,
			rec.AttackerCasualties, rec.DefenderCasualties)
	}
	return true
}

// checkEliminations marks landless players, once and forever.
func (g *Generation) checkEliminations(day int) {
	st := g.state
	for _, id := range st.Order {
		p := st.PlayerByID(id)
		if p.Eliminated || p.TerritoryCount() > 0 {
			continue
		}
		p.Eliminated = true
		st.RecordEvent(day, game.EventPlayerEliminated, p.ID, -1,
			fmt.Sprintf("eliminated on day %d", day))
		log.Debug().Msgf("day %d: %s eliminated", day, p.Name)
	}
}

// heartbeat respawns forsaken garrisons across a slice of the unclaimed
// wilds, keeping the interior contested late into the generation.
func (g *Generation) heartbeat(day int) {
	st := g.state
	for _, id := range game.RespawnForsaken(st.World, g.rng, heartbeatFraction) {
		st.RecordEvent(day, game.EventForsakenSpawned, game.NoOwner, id,
			fmt.Sprintf("garrison %d", st.World.ByID(id).Garrison))
	}
}

// pickWinner returns the highest-scoring survivor. Iteration follows the
// seed-shuffled order, so ties break deterministically.
func (g *Generation) pickWinner() *game.Player {
	var winner *game.Player
	for _, id := range g.state.Order {
		p := g.state.PlayerByID(id)
		if p.Eliminated {
			continue
		}
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	return winner
}
