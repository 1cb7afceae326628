package game

import (
	"math"
)

// CombatOutcome is the resolution category of one battle.
type CombatOutcome int

const (
	OutcomeAttackerVictory CombatOutcome = iota
	OutcomeDefenderVictory
	OutcomeDraw
)

func (o CombatOutcome) String() string {
	switch o {
	case OutcomeAttackerVictory:
		return "attacker_victory"
	case OutcomeDefenderVictory:
		return "defender_victory"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Role bonuses inside the strength sums.
const (
	attackerRoleBonus = 1.20
	defenderRoleBonus = 1.20
	eliteRoleBonus    = 1.10
)

// Territorial modifier factors, defender side only.
const (
	homeAdvantage    = 1.10
	wallFactor       = 1.25
	gateFactor       = 1.10
	watchtowerFactor = 0.05
	armoryFactor     = 1.05
)

// Outcome band breakpoints. The 0.9-1.5 band slides the attacker's win
// chance from 10% to 60%, with the rest split 40/60 draw/defender.
const (
	critUpsetRatio   = 0.4
	critHoldRatio    = 2.5
	attackerWinRatio = 1.5
	defenderWinRatio = 0.9
	bandFloorChance  = 0.10
	bandChanceSpan   = 0.50
	bandDrawShare    = 0.40
)

// Casualty model: base rates by outcome and side, crit adjustments, the
// own-roll scale, and the final clamp band.
const (
	lightLossRate    = 0.15
	heavyLossRate    = 0.70
	routLossRate     = 0.60
	drawLossRate     = 0.30
	critOwnHalving   = 0.5
	critOppScaling   = 1.5
	minCasualtyRate  = 0.05
	maxCasualtyRate  = 0.90
	battleWearFactor = 0.5 // survivors erode at half their side's loss rate
)

// Captain death machinery.
const (
	captainSaveThreshold   = 10
	captainSaveModCap      = 5
	triggerPenaltyNatOne   = -2
	triggerPenaltyMauling  = -1
	triggerPenaltyAssassin = -3
	maulingCasualtyPercent = 70
)

// Morale swings written by battle resolution.
const (
	moraleBattleWon     = 4
	moraleBattleLost    = 6
	moraleBattleDraw    = 1
	moraleCaptainFallen = 10
)

// CombatRecord is the immutable account of one resolved battle, appended to
// the generation's combat log. Defender is NoOwner for wild territory.
type CombatRecord struct {
	Day       int
	Territory int
	Attacker  int
	Defender  int

	AttackerRoll       int
	DefenderRoll       int
	AttackerEffective  float64
	DefenderEffective  float64
	Outcome            CombatOutcome
	AttackerCasualties int
	DefenderCasualties int
	AttackerReformed   int
	DefenderReformed   int

	Captured            bool
	AttackerCaptainLost bool
	DefenderCaptainLost bool
}

// AttackStrength returns the army's strength before the d20: per-stack
// attack × quantity × health, the attacker-role bonus, then the player's
// aggregate attack modifier.
func AttackStrength(p *Player, a *Army) float64 {
	raw := 0.0
	for i := range a.Stacks {
		s := &a.Stacks[i]
		spec := UnitSpecOf(s.Type)
		v := float64(spec.Attack) * float64(s.Quantity) * s.HPRatio()
		if spec.Role == RoleAttacker {
			v *= attackerRoleBonus
		}
		raw += v
	}
	return raw * p.AttackModifier()
}

// DefenseStrength returns the combined strength of the defending armies
// before the d20 and before the territorial modifier.
func DefenseStrength(p *Player, armies []*Army) float64 {
	raw := 0.0
	for _, a := range armies {
		for i := range a.Stacks {
			s := &a.Stacks[i]
			spec := UnitSpecOf(s.Type)
			v := (float64(spec.Attack) + 2*float64(spec.Defense)) / 2 * float64(s.Quantity) * s.HPRatio()
			switch spec.Role {
			case RoleDefender:
				v *= defenderRoleBonus
			case RoleElite:
				v *= eliteRoleBonus
			}
			raw += v
		}
	}
	return raw * p.DefenseModifier()
}

// TerritorialModifier is the defender-only stack of home advantage, terrain,
// and fortifications on t. The race wall bonus needs a living people, not a
// living captain, so it applies whenever a player holds the tile.
func TerritorialModifier(t *Territory, defender *Player) float64 {
	mod := homeAdvantage * t.Terrain.DefenseFactor()
	if t.CompletedOf(BuildingWall) > 0 {
		wall := wallFactor
		if defender != nil {
			wall *= RaceWallBonus(defender.Race)
		}
		if t.CompletedOf(BuildingGate) > 0 {
			wall *= gateFactor
		}
		mod *= wall
	}
	if n := t.CompletedOf(BuildingWatchtower); n > 0 {
		mod *= 1 + watchtowerFactor*float64(n)
	}
	if t.CompletedOf(BuildingArmory) > 0 {
		mod *= armoryFactor
	}
	return mod
}

// CanAttack reports whether p's army may legally strike target this tick:
// a non-empty owned army against land p does not hold, bordering p's
// territory. Illegal attacks are skipped by the executor, never resolved.
func CanAttack(w *World, p *Player, a *Army, target int) bool {
	if a == nil || a.Owner != p.ID || a.UnitCount() == 0 {
		return false
	}
	t := w.ByID(target)
	if !t.IsLand() || t.Owner == p.ID {
		return false
	}
	for _, nb := range w.Neighbors(target, nil) {
		if w.ByID(nb).Owner == p.ID {
			return true
		}
	}
	return false
}

// ResolveAttack fights one battle for target: army a of attacker against
// the player garrison, forsaken garrison, or empty ground holding it. All
// state mutation happens here: casualties, morale, captain saves, counters,
// and the ownership transfer on an attacker victory. Pass a nil defender
// for wild territory.
func ResolveAttack(w *World, attacker *Player, a *Army, defender *Player, target, day int, rng *RNG) CombatRecord {
	t := w.ByID(target)
	defArmies := armiesHomedAt(defender, target)

	atkStr := AttackStrength(attacker, a)
	defStr := 0.0
	if defender != nil {
		defStr = DefenseStrength(defender, defArmies)
	} else if t.Forsaken {
		// Garrison strength was zone-scaled when seeded.
		defStr = float64(t.Garrison)
	}
	defStr *= TerritorialModifier(t, defender)

	atkRoll, atkMod := rng.WeightedD20()
	defRoll, defMod := rng.WeightedD20()
	atkEff := atkStr * atkMod
	defEff := defStr * defMod
	rawRatio := atkStr / math.Max(1, defStr)

	outcome := resolveOutcome(atkRoll, defRoll, atkEff, defEff, rawRatio, rng)

	preAtk := a.UnitCount()
	preDef := t.Garrison
	if defender != nil {
		preDef = unitCountOf(defArmies)
	}

	atkRate := casualtyRate(outcome, true, atkRoll, defRoll)
	defRate := casualtyRate(outcome, false, defRoll, atkRoll)
	atkLoss := int(atkRate * float64(preAtk))
	defLoss := int(defRate * float64(preDef))

	atkReformed := reformedCount(attacker, atkLoss)
	defReformed := reformedCount(defender, defLoss)
	atkLoss -= atkReformed
	defLoss -= defReformed

	a.RemoveUnits(atkLoss)
	a.Erode(atkRate * battleWearFactor)
	if defender != nil {
		removeAcross(defArmies, defLoss)
		for _, da := range defArmies {
			da.Erode(defRate * battleWearFactor)
		}
	} else if t.Forsaken {
		t.Garrison -= defLoss
		if t.Garrison <= 0 {
			t.Forsaken = false
			t.Garrison = 0
		}
	}

	rec := CombatRecord{
		Day:                day,
		Territory:          target,
		Attacker:           attacker.ID,
		Defender:           NoOwner,
		AttackerRoll:       atkRoll,
		DefenderRoll:       defRoll,
		AttackerEffective:  atkEff,
		DefenderEffective:  defEff,
		Outcome:            outcome,
		AttackerCasualties: atkLoss,
		DefenderCasualties: defLoss,
		AttackerReformed:   atkReformed,
		DefenderReformed:   defReformed,
	}
	if defender != nil {
		rec.Defender = defender.ID
	}

	// Assassins strike at enemy captains, not wild garrisons.
	assassination := defender != nil && defender.CaptainAlive &&
		attacker.CaptainAlive && attacker.Skill == SkillAssassin &&
		rng.Chance(AssassinationChance)

	rec.AttackerCaptainLost = checkCaptain(attacker, atkRoll, atkLoss, preAtk, outcome, false, rng)
	if defender != nil {
		rec.DefenderCaptainLost = checkCaptain(defender, defRoll, defLoss, preDef, outcome, assassination, rng)
	}

	applyMorale(attacker, defender, outcome)
	applyCounters(attacker, defender, rec)

	if outcome == OutcomeAttackerVictory {
		transferTerritory(w, t, attacker, defender, a)
		rec.Captured = true
	}
	return rec
}

// resolveOutcome applies the fixed priority ladder: lone crits first, fumbles
// next, then the strength ratio with its defender-biased middle band.
func resolveOutcome(atkRoll, defRoll int, atkEff, defEff, rawRatio float64, rng *RNG) CombatOutcome {
	switch {
	case atkRoll == 20 && defRoll != 20:
		if rawRatio < critUpsetRatio {
			return OutcomeDraw
		}
		return OutcomeAttackerVictory
	case defRoll == 20 && atkRoll != 20:
		if rawRatio > critHoldRatio {
			return OutcomeDraw
		}
		return OutcomeDefenderVictory
	case atkRoll == 1:
		if defEff == 0 {
			return OutcomeAttackerVictory
		}
		return OutcomeDefenderVictory
	case defRoll == 1:
		if atkEff == 0 {
			return OutcomeDefenderVictory
		}
		return OutcomeAttackerVictory
	}

	ratio := atkEff / math.Max(1, defEff)
	if ratio > attackerWinRatio {
		return OutcomeAttackerVictory
	}
	if ratio < defenderWinRatio {
		return OutcomeDefenderVictory
	}
	pAtk := bandFloorChance + (ratio-defenderWinRatio)/(attackerWinRatio-defenderWinRatio)*bandChanceSpan
	tie := rng.Float64()
	if tie < pAtk {
		return OutcomeAttackerVictory
	}
	if tie < pAtk+(1-pAtk)*bandDrawShare {
		return OutcomeDraw
	}
	return OutcomeDefenderVictory
}

// casualtyRate computes one side's loss fraction: outcome base, crit
// adjustments, the own-roll scale, and the clamp band.
func casualtyRate(outcome CombatOutcome, attackerSide bool, ownRoll, oppRoll int) float64 {
	var rate float64
	switch outcome {
	case OutcomeAttackerVictory:
		if attackerSide {
			rate = lightLossRate
		} else {
			rate = heavyLossRate
		}
	case OutcomeDefenderVictory:
		if attackerSide {
			rate = routLossRate
		} else {
			rate = lightLossRate
		}
	default:
		rate = drawLossRate
	}
	if ownRoll == 20 {
		rate *= critOwnHalving
	}
	if oppRoll == 20 {
		rate *= critOppScaling
	}
	rate *= 1.25 - float64(ownRoll)/20*0.5
	return math.Min(math.Max(rate, minCasualtyRate), maxCasualtyRate)
}

// reformedCount returns how many of the side's casualties rise again.
func reformedCount(p *Player, casualties int) int {
	if p == nil || casualties <= 0 {
		return 0
	}
	return int(float64(casualties) * RaceReformRate(p.Race))
}

// checkCaptain runs at most one death save per side per battle, on the
// worst applicable trigger. A dead captain stays dead and all class and
// skill effects cease with the save's failure.
func checkCaptain(p *Player, ownRoll, casualties, preUnits int, outcome CombatOutcome, assassination bool, rng *RNG) bool {
	if !p.CaptainAlive {
		return false
	}
	triggered := false
	penalty := 0
	if ownRoll == 1 {
		triggered, penalty = true, triggerPenaltyNatOne
	}
	if outcome != OutcomeDraw && preUnits > 0 && casualties*100 >= preUnits*maulingCasualtyPercent {
		if !triggered || triggerPenaltyMauling < penalty {
			penalty = triggerPenaltyMauling
		}
		triggered = true
	}
	if assassination {
		if !triggered || triggerPenaltyAssassin < penalty {
			penalty = triggerPenaltyAssassin
		}
		triggered = true
	}
	if !triggered {
		return false
	}

	mod := RaceSaveBonus(p.Race) + ClassSaveBonus(p.Class) + penalty
	if mod > captainSaveModCap {
		mod = captainSaveModCap
	}
	if mod < -captainSaveModCap {
		mod = -captainSaveModCap
	}
	if rng.D20()+mod >= captainSaveThreshold {
		return false
	}
	p.CaptainAlive = false
	p.LoseMorale(moraleCaptainFallen)
	return true
}

func applyMorale(attacker, defender *Player, outcome CombatOutcome) {
	switch outcome {
	case OutcomeAttackerVictory:
		attacker.GainMorale(moraleBattleWon)
		if defender != nil {
			defender.LoseMorale(moraleBattleLost)
		}
	case OutcomeDefenderVictory:
		attacker.LoseMorale(moraleBattleLost)
		if defender != nil {
			defender.GainMorale(moraleBattleWon)
		}
	default:
		attacker.LoseMorale(moraleBattleDraw)
		if defender != nil {
			defender.LoseMorale(moraleBattleDraw)
		}
	}
}

func applyCounters(attacker, defender *Player, rec CombatRecord) {
	attacker.Kills += rec.DefenderCasualties
	if defender != nil {
		defender.Kills += rec.AttackerCasualties
	}
	switch rec.Outcome {
	case OutcomeAttackerVictory:
		attacker.BattlesWon++
		if defender != nil {
			defender.BattlesLost++
		}
	case OutcomeDefenderVictory:
		attacker.BattlesLost++
		if defender != nil {
			defender.BattlesWon++
		}
	}
}

// transferTerritory hands t to the attacker: the defender's homed armies
// retreat to their lowest-id remaining territory, any forsaken garrison is
// wiped, and the conquering army advances its home onto the captured tile.
func transferTerritory(w *World, t *Territory, attacker, defender *Player, a *Army) {
	if defender != nil {
		defender.RemoveTerritory(t.ID)
		fallback := -1
		if ids := defender.OwnedTerritoryIDs(); len(ids) > 0 {
			fallback = ids[0]
		}
		for _, da := range defender.Armies {
			if da.Home == t.ID && fallback != -1 {
				da.Home = fallback
			}
		}
	}
	t.Forsaken = false
	t.Garrison = 0
	t.Owner = attacker.ID
	attacker.AddTerritory(t.ID)
	a.Home = t.ID
}

func armiesHomedAt(p *Player, territory int) []*Army {
	if p == nil {
		return nil
	}
	var armies []*Army
	for _, a := range p.Armies {
		if a.Home == territory {
			armies = append(armies, a)
		}
	}
	return armies
}

func unitCountOf(armies []*Army) int {
	n := 0
	for _, a := range armies {
		n += a.UnitCount()
	}
	return n
}

func removeAcross(armies []*Army, n int) int {
	removed := 0
	for _, a := range armies {
		if removed >= n {
			break
		}
		removed += a.RemoveUnits(n - removed)
	}
	return removed
}
