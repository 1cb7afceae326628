package game

// NoOwner marks an unowned territory.
const NoOwner = -1

// Building is a constructed (or in-progress) structure on a territory.
type Building struct {
	Type        BuildingType
	CompleteDay int // day construction finishes
	Completed   bool
}

// Territory is one tile of the generation map. Identity is the dense index
// y*N+x into the world slice; adjacency is derived from coordinates, never
// stored.
type Territory struct {
	ID       int
	X, Y     int
	Zone     Zone
	Terrain  Terrain
	Owner    int // player id, NoOwner if unclaimed
	Forsaken bool
	Garrison int // forsaken strength, 0 unless Forsaken
	Buildings []Building
}

// IsLand reports whether the tile can be owned, crossed, and built on.
func (t *Territory) IsLand() bool { return t.Terrain != TerrainWater }

// Owned reports whether a player holds the tile.
func (t *Territory) Owned() bool { return t.Owner != NoOwner }

// CountOf returns how many buildings of one type the territory holds,
// completed or not.
func (t *Territory) CountOf(b BuildingType) int {
	n := 0
	for _, bld := range t.Buildings {
		if bld.Type == b {
			n++
		}
	}
	return n
}

// HasCompleted reports whether a completed building of the type exists.
func (t *Territory) HasCompleted(b BuildingType) bool {
	for _, bld := range t.Buildings {
		if bld.Type == b && bld.Completed {
			return true
		}
	}
	return false
}

// CompletedCount returns the number of finished buildings.
func (t *Territory) CompletedCount() int {
	n := 0
	for _, bld := range t.Buildings {
		if bld.Completed {
			n++
		}
	}
	return n
}

// CompletedOf returns how many finished buildings of type b stand here.
func (t *Territory) CompletedOf(b BuildingType) int {
	n := 0
	for _, bld := range t.Buildings {
		if bld.Type == b && bld.Completed {
			n++
		}
	}
	return n
}

// World is the arena of all territories for one generation: a fixed N x N
// grid owned by exactly one generation, indexed by dense ids.
type World struct {
	N           int
	Territories []Territory
}

// NewWorld allocates an N x N world with ids and coordinates filled in.
func NewWorld(n int) *World {
	w := &World{
		N:           n,
		Territories: make([]Territory, n*n),
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			id := y*n + x
			w.Territories[id] = Territory{ID: id, X: x, Y: y, Owner: NoOwner}
		}
	}
	return w
}

// Idx maps grid coordinates to the dense territory id.
func (w *World) Idx(x, y int) int { return y*w.N + x }

// At returns the territory at the given coordinates.
func (w *World) At(x, y int) *Territory { return &w.Territories[w.Idx(x, y)] }

// ByID returns the territory with the given dense id.
func (w *World) ByID(id int) *Territory { return &w.Territories[id] }

// InBounds reports whether coordinates fall on the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.N && y >= 0 && y < w.N
}

// neighborOffsets is the fixed N/E/S/W walk order. Connectivity, start
// growth, and repair all share it so map layout is reproducible.
var neighborOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Neighbors appends the 4-directional neighbor ids of a territory to dst and
// returns it. Callers reuse dst to avoid churn in hot loops.
func (w *World) Neighbors(id int, dst []int) []int {
	t := &w.Territories[id]
	for _, off := range neighborOffsets {
		nx, ny := t.X+off[0], t.Y+off[1]
		if w.InBounds(nx, ny) {
			dst = append(dst, w.Idx(nx, ny))
		}
	}
	return dst
}

// Adjacent reports whether two territories share a 4-directional edge.
func (w *World) Adjacent(a, b int) bool {
	ta, tb := &w.Territories[a], &w.Territories[b]
	dx, dy := ta.X-tb.X, ta.Y-tb.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Chebyshev returns the chessboard distance between two territories.
func (w *World) Chebyshev(a, b int) int {
	ta, tb := &w.Territories[a], &w.Territories[b]
	dx, dy := ta.X-tb.X, ta.Y-tb.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// zoneOf maps Chebyshev distance from the grid center into the four bands.
// Band radii are fixed fractions of the grid size.
func zoneOf(dist, n int) Zone {
	switch {
	case dist < n/8:
		return ZoneHeart
	case dist < n/4:
		return ZoneInner
	case dist < 3*n/8:
		return ZoneMiddle
	default:
		return ZoneOuter
	}
}
