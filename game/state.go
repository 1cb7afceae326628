package game

// Phase day bounds. Planning runs through day 7, the active phase through
// day 39, endgame from day 40 on.
const (
	PlanningLastDay = 7
	ActiveLastDay   = 39
)

// PhaseForDay maps a day number onto the generation phase.
func PhaseForDay(day int) Phase {
	switch {
	case day <= PlanningLastDay:
		return PhasePlanning
	case day <= ActiveLastDay:
		return PhaseActive
	default:
		return PhaseEndgame
	}
}

// GenerationState is the full mutable state of one running generation:
// the world, the players, the fixed turn order, and the append-only logs.
type GenerationState struct {
	Seed    int64
	Day     int
	Phase   Phase
	World   *World
	Players []*Player // dense, indexed by player id
	Order   []int     // seed-shuffled player ids, fixed for the generation

	CombatLog []CombatRecord
	Events    []Event

	nextArmyID int
}

// NewGenerationState wires up the state and shuffles the turn order once.
// The order never changes afterward; ties everywhere break along it.
func NewGenerationState(seed int64, w *World, players []*Player, rng *RNG) *GenerationState {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return &GenerationState{
		Seed:       seed,
		Phase:      PhasePlanning,
		World:      w,
		Players:    players,
		Order:      order,
		nextArmyID: 1,
	}
}

// PlayerByID returns the player with the given dense id.
func (s *GenerationState) PlayerByID(id int) *Player { return s.Players[id] }

// DefenseEstimate scouts the strength an attack on target would face before
// the dice: the defending player's homed armies, the forsaken garrison, or
// nothing, with the territorial modifier applied. Mirrors ResolveAttack.
func (s *GenerationState) DefenseEstimate(target int) float64 {
	t := s.World.ByID(target)
	switch {
	case t.Owned():
		owner := s.PlayerByID(t.Owner)
		return DefenseStrength(owner, armiesHomedAt(owner, target)) * TerritorialModifier(t, owner)
	case t.Forsaken:
		return float64(t.Garrison) * TerritorialModifier(t, nil)
	default:
		return 0
	}
}

// AliveCount returns how many players are not eliminated.
func (s *GenerationState) AliveCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// NewArmy creates an empty army for p homed at the given territory and
// registers it. Army ids are unique within the generation.
func (s *GenerationState) NewArmy(p *Player, home int) *Army {
	a := &Army{ID: s.nextArmyID, Owner: p.ID, Home: home}
	s.nextArmyID++
	p.Armies = append(p.Armies, a)
	return a
}

// RecordCombat appends to the combat log.
func (s *GenerationState) RecordCombat(rec CombatRecord) {
	s.CombatLog = append(s.CombatLog, rec)
}

// RecordEvent appends to the event log.
func (s *GenerationState) RecordEvent(day int, kind EventKind, player, territory int, detail string) {
	s.Events = append(s.Events, Event{
		Day:       day,
		Kind:      kind,
		Player:    player,
		Territory: territory,
		Detail:    detail,
	})
}
