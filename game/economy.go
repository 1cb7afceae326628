package game

import (
	"fmt"
	"math"
)

// Starvation penalties applied when the day's food upkeep cannot be paid.
const (
	StarvationMoralePenalty = 10
	starvationAttrition     = 10 // one unit in ten, rounded down
)

// Scoring weights. Land dominates, heart land most of all.
var zoneScoreWeight = [NumZones]int{
	ZoneHeart:  10,
	ZoneInner:  5,
	ZoneMiddle: 3,
	ZoneOuter:  1,
}

const (
	tileScoreScale = 100
	buildingScore  = 25
	battleWonScore = 50
)

// DailyProduction returns one day's income across the player's territories:
// flat per-tile base plus completed building yields, both zone-scaled, the
// building yields adjusted per race, then race and skill production
// multipliers over the lot.
func DailyProduction(w *World, p *Player) Resources {
	var total Resources
	for _, id := range p.OwnedTerritoryIDs() {
		t := w.ByID(id)
		zone := t.Zone.Multiplier()
		total = total.Add(tileBaseYield.Scale(zone))
		for _, b := range t.Buildings {
			if !b.Completed {
				continue
			}
			yield := BuildingSpecOf(b.Type).Yield
			if yield.Total() == 0 {
				continue
			}
			total = total.Add(yield.Scale(zone * RaceBuildingMod(p.Race, b.Type)))
		}
	}

	mult := RaceProductionMult(p.Race)
	if p.CaptainAlive {
		mult *= SkillProductionMult(p.Skill)
	}
	return total.Scale(mult)
}

// DailyFoodUpkeep returns the day's food bill for every unit the player
// feeds, after the race food rate and a living Steward's supply discount.
func DailyFoodUpkeep(p *Player) int {
	raw := 0
	for _, a := range p.Armies {
		raw += a.RawUpkeep()
	}
	rate := RaceFoodRate(p.Race)
	if p.CaptainAlive {
		rate *= ClassSupplyMult(p.Class)
	}
	return int(math.Ceil(float64(raw) * rate))
}

// PayUpkeep settles the day's food bill. A stock that cannot cover it
// clamps to zero and the player starves: morale drops and every army loses
// a tenth of its units. Returns whether starvation hit and the units lost.
func PayUpkeep(p *Player, upkeep int) (starved bool, lost int) {
	if p.Resources.Food >= upkeep {
		p.Resources.Food -= upkeep
		return false, 0
	}
	p.Resources.Food = 0
	p.LoseMorale(StarvationMoralePenalty)
	for _, a := range p.Armies {
		lost += a.RemoveUnits(a.UnitCount() / starvationAttrition)
	}
	return true, lost
}

// BuildingCost returns the catalog cost after the race surcharge.
func BuildingCost(p *Player, b BuildingType) Resources {
	return BuildingSpecOf(b).Cost.Scale(RaceCostSurcharge(p.Race))
}

// UnitCost returns the catalog cost for qty units after the race surcharge.
func UnitCost(p *Player, u UnitType, qty int) Resources {
	return UnitSpecOf(u).Cost.Scale(float64(qty) * RaceCostSurcharge(p.Race))
}

// Deduct removes cost from the player's stock, all resources or none.
func Deduct(p *Player, cost Resources) bool {
	if !p.Resources.Covers(cost) {
		return false
	}
	p.Resources = p.Resources.Sub(cost)
	return true
}

// CanBuild checks whether b may be queued on the given territory. The
// reason names the first failed check.
func CanBuild(w *World, p *Player, territoryID int, b BuildingType) (bool, string) {
	spec := BuildingSpecOf(b)
	t := w.ByID(territoryID)
	if t.Owner != p.ID {
		return false, "territory not owned"
	}
	if len(t.Buildings) >= MaxBuildingsPerTerritory {
		return false, "building cap reached"
	}
	if t.CountOf(b) >= spec.MaxCount {
		return false, fmt.Sprintf("%s cap reached", spec.Name)
	}
	if RaceForbids(p.Race, b) {
		return false, fmt.Sprintf("%s cannot build %s", p.Race, spec.Name)
	}
	if spec.Requires != NoPrerequisite && !t.HasCompleted(spec.Requires) {
		return false, fmt.Sprintf("requires completed %s", BuildingSpecOf(spec.Requires).Name)
	}
	if !p.Resources.Covers(BuildingCost(p, b)) {
		return false, "cannot afford"
	}
	return true, ""
}

// StartBuilding queues b on the territory, deducting its cost. The new
// building completes after the catalog's construction days.
func StartBuilding(w *World, p *Player, territoryID int, b BuildingType, day int) error {
	if ok, reason := CanBuild(w, p, territoryID, b); !ok {
		return fmt.Errorf("cannot build %s on territory %d: %s", BuildingSpecOf(b).Name, territoryID, reason)
	}
	Deduct(p, BuildingCost(p, b))
	t := w.ByID(territoryID)
	t.Buildings = append(t.Buildings, Building{Type: b, CompleteDay: day + BuildingSpecOf(b).Days})
	return nil
}

// Completion reports one building finishing construction.
type Completion struct {
	Territory int
	Building  BuildingType
}

// AdvanceConstruction marks every building whose completion day has arrived,
// in territory order. Construction survives ownership changes.
func AdvanceConstruction(w *World, day int) []Completion {
	var done []Completion
	for id := range w.Territories {
		t := &w.Territories[id]
		done = completeOn(t, day, done)
	}
	return done
}

// CompleteConstruction is the per-player slice of AdvanceConstruction: it
// finishes due buildings on p's territories only, in ascending tile order.
// A captured construction site finishes for its new owner.
func CompleteConstruction(w *World, p *Player, day int) []Completion {
	var done []Completion
	for _, id := range p.OwnedTerritoryIDs() {
		done = completeOn(w.ByID(id), day, done)
	}
	return done
}

func completeOn(t *Territory, day int, done []Completion) []Completion {
	for i := range t.Buildings {
		b := &t.Buildings[i]
		if !b.Completed && day >= b.CompleteDay {
			b.Completed = true
			done = append(done, Completion{Territory: t.ID, Building: b.Type})
		}
	}
	return done
}

// HasTrainingBuilding reports whether any owned territory has the required
// building completed. Units without a prerequisite train anywhere.
func HasTrainingBuilding(w *World, p *Player, u UnitType) bool {
	req := UnitSpecOf(u).Requires
	if req == NoPrerequisite {
		return true
	}
	for _, id := range p.OwnedTerritoryIDs() {
		if w.ByID(id).HasCompleted(req) {
			return true
		}
	}
	return false
}

// CanTrain checks whether qty units of u may join the army. The reason
// names the first failed check.
func CanTrain(w *World, p *Player, a *Army, u UnitType, qty int) (bool, string) {
	if qty <= 0 {
		return false, "nothing to train"
	}
	if a == nil || a.Owner != p.ID {
		return false, "army not owned"
	}
	if !HasTrainingBuilding(w, p, u) {
		return false, fmt.Sprintf("requires completed %s", BuildingSpecOf(UnitSpecOf(u).Requires).Name)
	}
	if !p.Resources.Covers(UnitCost(p, u, qty)) {
		return false, "cannot afford"
	}
	return true, ""
}

// TrainUnits deducts the cost and merges qty fresh units into the army.
func TrainUnits(w *World, p *Player, a *Army, u UnitType, qty int) error {
	if ok, reason := CanTrain(w, p, a, u, qty); !ok {
		return fmt.Errorf("cannot train %d %s: %s", qty, UnitSpecOf(u).Name, reason)
	}
	Deduct(p, UnitCost(p, u, qty))
	a.AddUnits(u, qty)
	return nil
}

// Score recomputes the player's standing: zone-weighted land, completed
// buildings, cost-normalized army value, and battles won.
func Score(w *World, p *Player) int {
	total := 0
	for _, id := range p.OwnedTerritoryIDs() {
		t := w.ByID(id)
		total += zoneScoreWeight[t.Zone] * tileScoreScale
		total += buildingScore * t.CompletedCount()
	}
	for _, a := range p.Armies {
		total += a.Value()
	}
	total += battleWonScore * p.BattlesWon
	return total
}
