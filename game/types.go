package game

// Zone is one of four concentric map bands. The heart of the map is the
// richest and most dangerous; the outer band is where players start.
type Zone int

const (
	ZoneHeart Zone = iota
	ZoneInner
	ZoneMiddle
	ZoneOuter
	NumZones
)

func (z Zone) String() string {
	switch z {
	case ZoneHeart:
		return "heart"
	case ZoneInner:
		return "inner"
	case ZoneMiddle:
		return "middle"
	case ZoneOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// Multiplier scales production, garrison strength and score by band.
func (z Zone) Multiplier() float64 {
	switch z {
	case ZoneHeart:
		return 2.0
	case ZoneInner:
		return 1.5
	case ZoneMiddle:
		return 1.2
	default:
		return 1.0
	}
}

// Terrain is a per-tile biome. Water is impassable: never owned, never
// garrisoned, never built on.
type Terrain int

const (
	TerrainWater Terrain = iota
	TerrainPlains
	TerrainForest
	TerrainHills
	TerrainSwamp
	TerrainMountain
	NumTerrains
)

func (t Terrain) String() string {
	switch t {
	case TerrainWater:
		return "water"
	case TerrainPlains:
		return "plains"
	case TerrainForest:
		return "forest"
	case TerrainHills:
		return "hills"
	case TerrainSwamp:
		return "swamp"
	case TerrainMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// DefenseFactor is the terrain part of the defender's territorial modifier.
func (t Terrain) DefenseFactor() float64 {
	switch t {
	case TerrainForest:
		return 1.15
	case TerrainHills:
		return 1.20
	case TerrainSwamp:
		return 1.10
	case TerrainMountain:
		return 1.30
	default:
		return 1.0
	}
}

// Race determines economy and combat modifiers for a player.
type Race int

const (
	RaceHuman Race = iota
	RaceElf
	RaceDwarf
	RaceOrc
	RaceUndead
	NumRaces
)

func (r Race) String() string {
	switch r {
	case RaceHuman:
		return "human"
	case RaceElf:
		return "elf"
	case RaceDwarf:
		return "dwarf"
	case RaceOrc:
		return "orc"
	case RaceUndead:
		return "undead"
	default:
		return "unknown"
	}
}

// CaptainClass is the captain's profession.
type CaptainClass int

const (
	ClassWarlord CaptainClass = iota
	ClassSentinel
	ClassSteward
	ClassZealot
	NumClasses
)

func (c CaptainClass) String() string {
	switch c {
	case ClassWarlord:
		return "warlord"
	case ClassSentinel:
		return "sentinel"
	case ClassSteward:
		return "steward"
	case ClassZealot:
		return "zealot"
	default:
		return "unknown"
	}
}

// CaptainSkill is the captain's single learned skill.
type CaptainSkill int

const (
	SkillTactician CaptainSkill = iota
	SkillFortifier
	SkillHarvester
	SkillAssassin
	NumSkills
)

func (s CaptainSkill) String() string {
	switch s {
	case SkillTactician:
		return "tactician"
	case SkillFortifier:
		return "fortifier"
	case SkillHarvester:
		return "harvester"
	case SkillAssassin:
		return "assassin"
	default:
		return "unknown"
	}
}

// EntryTier is how the player entered the generation.
type EntryTier int

const (
	TierFree EntryTier = iota
	TierPremium
)

func (t EntryTier) String() string {
	if t == TierPremium {
		return "premium"
	}
	return "free"
}

// Phase of the generation. Transitions happen strictly on fixed day numbers.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseActive
	PhaseEndgame
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseActive:
		return "active"
	case PhaseEndgame:
		return "endgame"
	default:
		return "unknown"
	}
}

// Resources is the five-way fungible bundle every player holds.
type Resources struct {
	Gold  int
	Wood  int
	Stone int
	Food  int
	Mana  int
}

// Covers reports whether every quantity in cost is available.
func (r Resources) Covers(cost Resources) bool {
	return r.Gold >= cost.Gold &&
		r.Wood >= cost.Wood &&
		r.Stone >= cost.Stone &&
		r.Food >= cost.Food &&
		r.Mana >= cost.Mana
}

// Add returns the element-wise sum.
func (r Resources) Add(other Resources) Resources {
	return Resources{
		Gold:  r.Gold + other.Gold,
		Wood:  r.Wood + other.Wood,
		Stone: r.Stone + other.Stone,
		Food:  r.Food + other.Food,
		Mana:  r.Mana + other.Mana,
	}
}

// Sub returns the element-wise difference. Callers check Covers first;
// combat and economy never drive a bundle negative.
func (r Resources) Sub(cost Resources) Resources {
	return Resources{
		Gold:  r.Gold - cost.Gold,
		Wood:  r.Wood - cost.Wood,
		Stone: r.Stone - cost.Stone,
		Food:  r.Food - cost.Food,
		Mana:  r.Mana - cost.Mana,
	}
}

// Scale multiplies every quantity, rounding up so surcharges never vanish on
// small costs.
func (r Resources) Scale(factor float64) Resources {
	scale := func(v int) int {
		if v == 0 {
			return 0
		}
		scaled := int(float64(v)*factor + 0.999999)
		if scaled < 0 {
			return 0
		}
		return scaled
	}
	return Resources{
		Gold:  scale(r.Gold),
		Wood:  scale(r.Wood),
		Stone: scale(r.Stone),
		Food:  scale(r.Food),
		Mana:  scale(r.Mana),
	}
}

// Total is the cost-normalized value of the bundle, used for army value in
// scoring.
func (r Resources) Total() int {
	return r.Gold + r.Wood + r.Stone + r.Food + r.Mana
}

// Negative reports whether any quantity dropped below zero. Used by
// invariant checks in tests.
func (r Resources) Negative() bool {
	return r.Gold < 0 || r.Wood < 0 || r.Stone < 0 || r.Food < 0 || r.Mana < 0
}
