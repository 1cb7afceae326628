package game

import "fmt"

// BuildingType indexes the fixed building catalog.
type BuildingType int

const (
	BuildingFarm BuildingType = iota
	BuildingSawmill
	BuildingQuarry
	BuildingMine
	BuildingShrine
	BuildingBarracks
	BuildingWall
	BuildingGate
	BuildingWatchtower
	BuildingArmory
	NumBuildingTypes
)

// MaxBuildingsPerTerritory caps total construction on one tile.
const MaxBuildingsPerTerritory = 5

// NoPrerequisite marks a building with no required predecessor.
const NoPrerequisite BuildingType = -1

// BuildingSpec is one catalog row. Yield is per day once completed, before
// zone and race scaling.
type BuildingSpec struct {
	Name     string
	Cost     Resources
	Days     int          // construction time
	Yield    Resources    // daily production once complete
	Requires BuildingType // must be completed in the same territory
	MaxCount int          // per-territory cap for this type
}

var buildingCatalog = [NumBuildingTypes]BuildingSpec{
	BuildingFarm:       {Name: "farm", Cost: Resources{Gold: 20, Wood: 40}, Days: 2, Yield: Resources{Food: 10}, Requires: NoPrerequisite, MaxCount: 1},
	BuildingSawmill:    {Name: "sawmill", Cost: Resources{Gold: 30, Wood: 20}, Days: 2, Yield: Resources{Wood: 8}, Requires: NoPrerequisite, MaxCount: 1},
	BuildingQuarry:     {Name: "quarry", Cost: Resources{Gold: 30, Wood: 30}, Days: 2, Yield: Resources{Stone: 8}, Requires: NoPrerequisite, MaxCount: 1},
	BuildingMine:       {Name: "mine", Cost: Resources{Wood: 50, Stone: 30}, Days: 3, Yield: Resources{Gold: 6}, Requires: NoPrerequisite, MaxCount: 1},
	BuildingShrine:     {Name: "shrine", Cost: Resources{Gold: 60, Stone: 40}, Days: 3, Yield: Resources{Mana: 5}, Requires: NoPrerequisite, MaxCount: 1},
	BuildingBarracks:   {Name: "barracks", Cost: Resources{Gold: 50, Wood: 60, Stone: 20}, Days: 3, Requires: NoPrerequisite, MaxCount: 1},
	BuildingWall:       {Name: "wall", Cost: Resources{Wood: 20, Stone: 80}, Days: 4, Requires: NoPrerequisite, MaxCount: 1},
	BuildingGate:       {Name: "gate", Cost: Resources{Wood: 40, Stone: 40}, Days: 2, Requires: BuildingWall, MaxCount: 1},
	BuildingWatchtower: {Name: "watchtower", Cost: Resources{Wood: 50, Stone: 30}, Days: 2, Requires: NoPrerequisite, MaxCount: 3},
	BuildingArmory:     {Name: "armory", Cost: Resources{Gold: 80, Wood: 40, Stone: 50}, Days: 4, Requires: BuildingBarracks, MaxCount: 1},
}

// BuildingSpecOf returns the catalog row for a building type. An unknown
// type is a broken caller, not a game state.
func BuildingSpecOf(t BuildingType) BuildingSpec {
	if t < 0 || t >= NumBuildingTypes {
		panic(fmt.Sprintf("unknown building type %d", t))
	}
	return buildingCatalog[t]
}

func (t BuildingType) String() string {
	if t < 0 || t >= NumBuildingTypes {
		return "unknown"
	}
	return buildingCatalog[t].Name
}

// EconomyBuildings lists the yield-producing types in catalog order.
var EconomyBuildings = []BuildingType{
	BuildingFarm, BuildingSawmill, BuildingQuarry, BuildingMine, BuildingShrine,
}

// DefenseBuildings lists the defensive types in the order policies raise them.
var DefenseBuildings = []BuildingType{
	BuildingWall, BuildingWatchtower, BuildingGate, BuildingArmory,
}

// UnitRole flags a unit's battlefield specialization.
type UnitRole int

const (
	RoleNone UnitRole = iota
	RoleAttacker
	RoleDefender
	RoleElite
)

// UnitType indexes the fixed unit catalog.
type UnitType int

const (
	UnitMilitia UnitType = iota
	UnitSwordsman
	UnitArcher
	UnitKnight
	NumUnitTypes
)

// UnitSpec is one unit catalog row. Upkeep is food per unit per day.
type UnitSpec struct {
	Name     string
	Attack   int
	Defense  int
	HP       int
	Upkeep   int
	Cost     Resources
	Role     UnitRole
	Requires BuildingType // completed anywhere in the player's territory
}

var unitCatalog = [NumUnitTypes]UnitSpec{
	UnitMilitia:   {Name: "militia", Attack: 2, Defense: 2, HP: 10, Upkeep: 1, Cost: Resources{Gold: 15, Food: 10}, Role: RoleNone, Requires: NoPrerequisite},
	UnitSwordsman: {Name: "swordsman", Attack: 5, Defense: 3, HP: 14, Upkeep: 2, Cost: Resources{Gold: 30, Food: 15}, Role: RoleAttacker, Requires: BuildingBarracks},
	UnitArcher:    {Name: "archer", Attack: 3, Defense: 5, HP: 12, Upkeep: 2, Cost: Resources{Gold: 25, Wood: 20, Food: 10}, Role: RoleDefender, Requires: BuildingBarracks},
	UnitKnight:    {Name: "knight", Attack: 8, Defense: 6, HP: 20, Upkeep: 3, Cost: Resources{Gold: 60, Food: 25, Mana: 10}, Role: RoleElite, Requires: BuildingArmory},
}

// UnitSpecOf returns the catalog row for a unit type, panicking on unknown
// types.
func UnitSpecOf(t UnitType) UnitSpec {
	if t < 0 || t >= NumUnitTypes {
		panic(fmt.Sprintf("unknown unit type %d", t))
	}
	return unitCatalog[t]
}

func (t UnitType) String() string {
	if t < 0 || t >= NumUnitTypes {
		return "unknown"
	}
	return unitCatalog[t].Name
}

// Race modifier tables. Sparse maps default to 1.0 (or 0 for bonuses).

// raceBuildingMods is the race x building-type yield lookup.
var raceBuildingMods = map[Race]map[BuildingType]float64{
	RaceElf:   {BuildingShrine: 1.25},
	RaceDwarf: {BuildingQuarry: 1.20, BuildingMine: 1.15},
	RaceOrc:   {BuildingFarm: 0.90},
}

// raceProductionMult is the race-wide multiplier applied after building mods.
var raceProductionMult = map[Race]float64{
	RaceHuman: 1.10,
}

// raceFoodRate scales per-unit food upkeep.
var raceFoodRate = map[Race]float64{
	RaceElf:    0.90,
	RaceOrc:    1.25,
	RaceUndead: 0.80,
}

// raceCostSurcharge inflates building and unit costs.
var raceCostSurcharge = map[Race]float64{
	RaceOrc: 1.15,
}

var raceAttackMult = map[Race]float64{
	RaceOrc: 1.15,
}

// raceWallBonus multiplies the wall factor of the territorial modifier.
var raceWallBonus = map[Race]float64{
	RaceDwarf: 1.15,
}

// raceReformRate is the fraction of a race's own casualties returned to the
// unit pool after a battle.
var raceReformRate = map[Race]float64{
	RaceUndead: 0.25,
}

// raceSaveBonus is added to the captain death save roll.
var raceSaveBonus = map[Race]int{
	RaceDwarf:  2,
	RaceUndead: 1,
}

// raceForbiddenBuildings restricts construction by race.
var raceForbiddenBuildings = map[Race]map[BuildingType]bool{
	RaceOrc:    {BuildingShrine: true},
	RaceUndead: {BuildingFarm: true},
}

func lookupMult(m map[Race]float64, r Race) float64 {
	if v, ok := m[r]; ok {
		return v
	}
	return 1.0
}

// RaceBuildingMod returns the race-specific yield multiplier for a building.
func RaceBuildingMod(r Race, b BuildingType) float64 {
	if mods, ok := raceBuildingMods[r]; ok {
		if v, ok := mods[b]; ok {
			return v
		}
	}
	return 1.0
}

// RaceProductionMult returns the race-wide production multiplier.
func RaceProductionMult(r Race) float64 { return lookupMult(raceProductionMult, r) }

// RaceFoodRate returns the race food-rate multiplier.
func RaceFoodRate(r Race) float64 { return lookupMult(raceFoodRate, r) }

// RaceCostSurcharge returns the race cost multiplier.
func RaceCostSurcharge(r Race) float64 { return lookupMult(raceCostSurcharge, r) }

// RaceAttackMult returns the race attack multiplier.
func RaceAttackMult(r Race) float64 { return lookupMult(raceAttackMult, r) }

// RaceWallBonus returns the race wall-factor multiplier.
func RaceWallBonus(r Race) float64 { return lookupMult(raceWallBonus, r) }

// RaceReformRate returns the casualty reform fraction for a race.
func RaceReformRate(r Race) float64 {
	if v, ok := raceReformRate[r]; ok {
		return v
	}
	return 0
}

// RaceSaveBonus returns the death-save bonus for a race.
func RaceSaveBonus(r Race) int { return raceSaveBonus[r] }

// RaceForbids reports whether a race may never construct a building type.
func RaceForbids(r Race, b BuildingType) bool {
	return raceForbiddenBuildings[r][b]
}

// Captain class tables.

var classAttackMult = map[CaptainClass]float64{
	ClassWarlord: 1.10,
}

var classDefenseMult = map[CaptainClass]float64{
	ClassSentinel: 1.10,
}

// classSupplyMult discounts total food upkeep.
var classSupplyMult = map[CaptainClass]float64{
	ClassSteward: 0.85,
}

var classSaveBonus = map[CaptainClass]int{
	ClassSentinel: 1,
}

// ClassAttackMult returns the class attack multiplier.
func ClassAttackMult(c CaptainClass) float64 {
	if v, ok := classAttackMult[c]; ok {
		return v
	}
	return 1.0
}

// ClassDefenseMult returns the class defense multiplier.
func ClassDefenseMult(c CaptainClass) float64 {
	if v, ok := classDefenseMult[c]; ok {
		return v
	}
	return 1.0
}

// ClassSupplyMult returns the class food-upkeep discount.
func ClassSupplyMult(c CaptainClass) float64 {
	if v, ok := classSupplyMult[c]; ok {
		return v
	}
	return 1.0
}

// ClassSaveBonus returns the death-save bonus for a class.
func ClassSaveBonus(c CaptainClass) int { return classSaveBonus[c] }

// Captain skill tables.

var skillAttackMult = map[CaptainSkill]float64{
	SkillTactician: 1.05,
}

var skillDefenseMult = map[CaptainSkill]float64{
	SkillFortifier: 1.05,
}

var skillProductionMult = map[CaptainSkill]float64{
	SkillHarvester: 1.05,
}

// AssassinationChance is the per-attack probability that an Assassin captain
// attempts to kill the defending captain.
const AssassinationChance = 0.15

// SkillAttackMult returns the skill attack multiplier.
func SkillAttackMult(s CaptainSkill) float64 {
	if v, ok := skillAttackMult[s]; ok {
		return v
	}
	return 1.0
}

// SkillDefenseMult returns the skill defense multiplier.
func SkillDefenseMult(s CaptainSkill) float64 {
	if v, ok := skillDefenseMult[s]; ok {
		return v
	}
	return 1.0
}

// SkillProductionMult returns the skill production multiplier.
func SkillProductionMult(s CaptainSkill) float64 {
	if v, ok := skillProductionMult[s]; ok {
		return v
	}
	return 1.0
}

// Entry tier starting conditions.

var tierStartingResources = map[EntryTier]Resources{
	TierFree:    {Gold: 200, Wood: 150, Stone: 100, Food: 150, Mana: 20},
	TierPremium: {Gold: 400, Wood: 300, Stone: 200, Food: 300, Mana: 60},
}

var tierStartingMilitia = map[EntryTier]int{
	TierFree:    10,
	TierPremium: 16,
}

// TierStartingResources returns the starting bundle for an entry tier.
func TierStartingResources(t EntryTier) Resources { return tierStartingResources[t] }

// TierStartingMilitia returns the starter army size for an entry tier.
func TierStartingMilitia(t EntryTier) int { return tierStartingMilitia[t] }

// tileBaseYield is the flat per-tile production before zone scaling.
var tileBaseYield = Resources{Gold: 2, Food: 1}
