package game

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// UnitStack is a quantity of one unit type plus its aggregate hit points.
// Invariant: 0 <= HP <= Quantity * spec HP; zero-quantity stacks are pruned
// from their army.
type UnitStack struct {
	Type     UnitType
	Quantity int
	HP       int
}

// MaxHP returns the stack's hit points at full health.
func (s *UnitStack) MaxHP() int {
	return UnitSpecOf(s.Type).HP * s.Quantity
}

// HPRatio returns current health as a fraction of full, 0 for empty stacks.
func (s *UnitStack) HPRatio() float64 {
	max := s.MaxHP()
	if max == 0 {
		return 0
	}
	return float64(s.HP) / float64(max)
}

// Army is a single force owned by one player. It never moves on its own;
// its home advances to territory captured by its attacks.
type Army struct {
	ID     int
	Owner  int
	Home   int // territory id
	Stacks []UnitStack
}

// UnitCount returns the total units across all stacks.
func (a *Army) UnitCount() int {
	n := 0
	for i := range a.Stacks {
		n += a.Stacks[i].Quantity
	}
	return n
}

// AddUnits merges freshly trained units (at full health) into the army.
func (a *Army) AddUnits(t UnitType, qty int) {
	if qty <= 0 {
		return
	}
	spec := UnitSpecOf(t)
	for i := range a.Stacks {
		if a.Stacks[i].Type == t {
			a.Stacks[i].Quantity += qty
			a.Stacks[i].HP += qty * spec.HP
			return
		}
	}
	a.Stacks = append(a.Stacks, UnitStack{Type: t, Quantity: qty, HP: qty * spec.HP})
}

// RemoveUnits takes n units off the army, front stacks first, pruning empty
// stacks. Removed units carry away a proportional share of stack HP. Returns
// how many units were actually removed.
func (a *Army) RemoveUnits(n int) int {
	removed := 0
	for i := range a.Stacks {
		if removed >= n {
			break
		}
		s := &a.Stacks[i]
		take := n - removed
		if take > s.Quantity {
			take = s.Quantity
		}
		if take > 0 && s.Quantity > 0 {
			s.HP = s.HP * (s.Quantity - take) / s.Quantity
			s.Quantity -= take
			removed += take
		}
	}
	a.prune()
	return removed
}

// Erode shaves a fraction off every surviving stack's hit points, floored at
// one point per unit so survivors are battered, never free kills.
func (a *Army) Erode(fraction float64) {
	if fraction <= 0 {
		return
	}
	for i := range a.Stacks {
		s := &a.Stacks[i]
		hp := int(float64(s.HP) * (1 - fraction))
		if hp < s.Quantity {
			hp = s.Quantity
		}
		s.HP = hp
	}
}

// Heal restores a fraction of missing hit points on every stack.
func (a *Army) Heal(rate float64) {
	for i := range a.Stacks {
		s := &a.Stacks[i]
		missing := s.MaxHP() - s.HP
		if missing <= 0 {
			continue
		}
		s.HP += int(float64(missing) * rate)
	}
}

// RawUpkeep returns daily food consumption before race and class scaling.
func (a *Army) RawUpkeep() int {
	total := 0
	for i := range a.Stacks {
		total += UnitSpecOf(a.Stacks[i].Type).Upkeep * a.Stacks[i].Quantity
	}
	return total
}

// Value returns the cost-normalized worth of the army, used by scoring.
func (a *Army) Value() int {
	total := 0
	for i := range a.Stacks {
		total += UnitSpecOf(a.Stacks[i].Type).Cost.Total() * a.Stacks[i].Quantity
	}
	return total
}

func (a *Army) prune() {
	kept := a.Stacks[:0]
	for _, s := range a.Stacks {
		if s.Quantity > 0 {
			kept = append(kept, s)
		}
	}
	a.Stacks = kept
}

// Morale bounds and the neutral resting point.
const (
	MoraleMin     = 0
	MoraleMax     = 100
	MoraleNeutral = 50
)

// Player is one participant in a generation. Players are never removed from
// the generation; elimination is a one-way flag.
type Player struct {
	ID           int
	Name         string
	Race         Race
	Class        CaptainClass
	Skill        CaptainSkill
	Tier         EntryTier
	AgentName    string // label of the policy driving this player
	CaptainAlive bool

	Resources   Resources
	Territories map[int]bool // owned territory ids
	Armies      []*Army
	Morale      int

	BattlesWon  int
	BattlesLost int
	Kills       int
	Score       int
	Eliminated  bool
}

// NewPlayer creates a player with tier starting resources and neutral morale.
func NewPlayer(id int, name string, race Race, class CaptainClass, skill CaptainSkill, tier EntryTier) *Player {
	return &Player{
		ID:           id,
		Name:         name,
		Race:         race,
		Class:        class,
		Skill:        skill,
		Tier:         tier,
		CaptainAlive: true,
		Resources:    TierStartingResources(tier),
		Territories:  make(map[int]bool),
		Morale:       MoraleNeutral,
	}
}

// OwnedTerritoryIDs returns the owned ids in ascending order. Map iteration
// order must never leak into simulation behavior.
func (p *Player) OwnedTerritoryIDs() []int {
	ids := maps.Keys(p.Territories)
	slices.Sort(ids)
	return ids
}

// AddTerritory records ownership of a territory id.
func (p *Player) AddTerritory(id int) { p.Territories[id] = true }

// RemoveTerritory drops ownership of a territory id.
func (p *Player) RemoveTerritory(id int) { delete(p.Territories, id) }

// TerritoryCount returns the number of owned territories.
func (p *Player) TerritoryCount() int { return len(p.Territories) }

// UnitCount returns total units across all armies.
func (p *Player) UnitCount() int {
	n := 0
	for _, a := range p.Armies {
		n += a.UnitCount()
	}
	return n
}

// MoraleMultiplier maps morale 0-100 onto a 70%-130% combat swing. A living
// Zealot captain whips the band wider in both directions.
func (p *Player) MoraleMultiplier() float64 {
	m := float64(p.Morale) / float64(MoraleMax)
	if p.CaptainAlive && p.Class == ClassZealot {
		return 0.65 + m*0.70
	}
	return 0.70 + m*0.60
}

// AttackModifier aggregates race, class, skill and morale into the
// player-level attack multiplier. Captain class and skill effects die with
// the captain; the race effect is the people's, not the captain's.
func (p *Player) AttackModifier() float64 {
	mod := RaceAttackMult(p.Race)
	if p.CaptainAlive {
		mod *= ClassAttackMult(p.Class)
		mod *= SkillAttackMult(p.Skill)
	}
	return mod * p.MoraleMultiplier()
}

// DefenseModifier is the defensive analogue of AttackModifier.
func (p *Player) DefenseModifier() float64 {
	mod := 1.0
	if p.CaptainAlive {
		mod *= ClassDefenseMult(p.Class)
		mod *= SkillDefenseMult(p.Skill)
	}
	return mod * p.MoraleMultiplier()
}

// GainMorale raises morale, clamped to the band.
func (p *Player) GainMorale(points int) {
	p.Morale += points
	if p.Morale > MoraleMax {
		p.Morale = MoraleMax
	}
}

// LoseMorale lowers morale, clamped to the band.
func (p *Player) LoseMorale(points int) {
	p.Morale -= points
	if p.Morale < MoraleMin {
		p.Morale = MoraleMin
	}
}
