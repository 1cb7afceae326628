package game

import (
	"github.com/ojrac/opensimplex-go"
)

// noiseScale is the sampling frequency for terrain noise. Coarse enough
// that biomes form multi-tile patches instead of salt and pepper.
const noiseScale = 7.0

// zoneTerrainWeight biases the per-terrain noise fields by zone. Water
// weighs zero in the heart so the richest band is always land; the outer
// rim favors plains so fresh captains get workable ground.
var zoneTerrainWeight = [NumZones][NumTerrains]float64{
	ZoneHeart:  {TerrainWater: 0.0, TerrainPlains: 0.9, TerrainForest: 0.8, TerrainHills: 0.9, TerrainSwamp: 0.7, TerrainMountain: 1.0},
	ZoneInner:  {TerrainWater: 0.5, TerrainPlains: 1.0, TerrainForest: 0.9, TerrainHills: 0.8, TerrainSwamp: 0.7, TerrainMountain: 0.8},
	ZoneMiddle: {TerrainWater: 0.7, TerrainPlains: 1.1, TerrainForest: 0.9, TerrainHills: 0.7, TerrainSwamp: 0.6, TerrainMountain: 0.6},
	ZoneOuter:  {TerrainWater: 0.8, TerrainPlains: 1.2, TerrainForest: 0.9, TerrainHills: 0.6, TerrainSwamp: 0.6, TerrainMountain: 0.5},
}

// Per-zone forsaken garrison density, and the strength tiers a garrison is
// drawn from. Low tiers dominate; the zone multiplier then scales the draw
// so heart garrisons hit well above their tier.
var (
	zoneForsakenDensity = [NumZones]float64{
		ZoneHeart:  0.22,
		ZoneInner:  0.16,
		ZoneMiddle: 0.10,
		ZoneOuter:  0.06,
	}
	forsakenTierWeights = []float64{0.45, 0.30, 0.17, 0.08}
	forsakenTierMin     = [4]int{5, 15, 35, 70}
	forsakenTierMax     = [4]int{15, 35, 70, 120}
)

// GenerateWorld builds an n×n world from the generation's RNG: radial
// zones, noise-clustered terrain, a connectivity repair pass, then forsaken
// garrisons. Identical seeds produce identical worlds.
func GenerateWorld(n int, rng *RNG) *World {
	w := NewWorld(n)
	assignZones(w)
	assignTerrain(w, rng)
	repairConnectivity(w)
	seedForsaken(w, rng)
	return w
}

func assignZones(w *World) {
	cx, cy := w.N/2, w.N/2
	for y := 0; y < w.N; y++ {
		for x := 0; x < w.N; x++ {
			dx, dy := x-cx, y-cy
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			dist := dx
			if dy > dist {
				dist = dy
			}
			w.At(x, y).Zone = zoneOf(dist, w.N)
		}
	}
}

// assignTerrain runs one noise field per terrain type and lets the highest
// weighted-and-jittered sample claim each tile. Ties go to the lower
// terrain value, which never matters in practice but keeps runs stable.
func assignTerrain(w *World, rng *RNG) {
	base := int64(rng.IntBetween(0, 1<<30))
	fields := make([]opensimplex.Noise, NumTerrains)
	for k := range fields {
		fields[k] = opensimplex.NewNormalized(base + int64(k))
	}

	for y := 0; y < w.N; y++ {
		for x := 0; x < w.N; x++ {
			t := w.At(x, y)
			best, bestScore := TerrainWater, -1.0
			for k := Terrain(0); k < NumTerrains; k++ {
				weight := zoneTerrainWeight[t.Zone][k]
				if weight == 0 {
					continue
				}
				sample := fields[k].Eval2(float64(x)/noiseScale, float64(y)/noiseScale)
				jitter := 0.9 + 0.2*rng.Float64()
				score := sample * weight * jitter
				if score > bestScore {
					best, bestScore = k, score
				}
			}
			t.Terrain = best
		}
	}
}

// landComponents flood-fills land tiles into connected components, visiting
// ids in ascending order so component numbering is stable.
func landComponents(w *World) [][]int {
	seen := make([]bool, len(w.Territories))
	var components [][]int
	var scratch []int
	for id := range w.Territories {
		if seen[id] || !w.Territories[id].IsLand() {
			continue
		}
		var comp []int
		queue := []int{id}
		seen[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			scratch = w.Neighbors(cur, scratch[:0])
			for _, nb := range scratch {
				if !seen[nb] && w.Territories[nb].IsLand() {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// repairConnectivity guarantees every land tile can reach every other over
// land. Isolated pockets get a channel of water converted to plains along
// the shortest path back to the main landmass.
func repairConnectivity(w *World) {
	components := landComponents(w)
	if len(components) <= 1 {
		return
	}

	// Largest component is the mainland; earlier discovery wins ties.
	main := 0
	for i, comp := range components {
		if len(comp) > len(components[main]) {
			main = i
		}
	}
	mainland := make([]bool, len(w.Territories))
	for _, id := range components[main] {
		mainland[id] = true
	}

	for i, comp := range components {
		if i == main {
			continue
		}
		carvePath(w, comp, mainland)
		for _, id := range comp {
			mainland[id] = true
		}
	}
}

// carvePath runs a multi-source BFS from the pocket across any terrain until
// it touches the mainland, then turns the water tiles on the path to plains.
func carvePath(w *World, pocket []int, mainland []bool) {
	parent := make([]int, len(w.Territories))
	for i := range parent {
		parent[i] = -1
	}
	visited := make([]bool, len(w.Territories))
	var queue []int
	for _, id := range pocket {
		visited[id] = true
		queue = append(queue, id)
	}

	var scratch []int
	target := -1
	for len(queue) > 0 && target == -1 {
		cur := queue[0]
		queue = queue[1:]
		scratch = w.Neighbors(cur, scratch[:0])
		for _, nb := range scratch {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			parent[nb] = cur
			if mainland[nb] {
				target = nb
				break
			}
			queue = append(queue, nb)
		}
	}
	if target == -1 {
		return // only on degenerate maps with no mainland to reach
	}

	for id := parent[target]; id != -1; id = parent[id] {
		t := w.ByID(id)
		if t.Terrain == TerrainWater {
			t.Terrain = TerrainPlains
			mainland[id] = true
		}
	}
}

func seedForsaken(w *World, rng *RNG) {
	for id := range w.Territories {
		t := &w.Territories[id]
		if !t.IsLand() {
			continue
		}
		if !rng.Chance(zoneForsakenDensity[t.Zone]) {
			continue
		}
		t.Forsaken = true
		t.Garrison = forsakenStrength(rng, t.Zone)
	}
}

func forsakenStrength(rng *RNG, zone Zone) int {
	tier := rng.WeightedIndex(forsakenTierWeights)
	raw := rng.IntBetween(forsakenTierMin[tier], forsakenTierMax[tier])
	return int(float64(raw) * zone.Multiplier())
}

// RespawnForsaken regarrisons a fraction of unclaimed, unguarded land. The
// heartbeat calls this every seventh day to keep the interior contested.
func RespawnForsaken(w *World, rng *RNG, fraction float64) []int {
	var spawned []int
	for id := range w.Territories {
		t := &w.Territories[id]
		if !t.IsLand() || t.Owned() || t.Forsaken {
			continue
		}
		if !rng.Chance(fraction) {
			continue
		}
		t.Forsaken = true
		t.Garrison = forsakenStrength(rng, t.Zone)
		spawned = append(spawned, id)
	}
	return spawned
}

// FindStartPositions picks count starting clusters of plots contiguous free
// land tiles each, anchored on outer-zone, non-edge tiles at pairwise
// Chebyshev distance of at least minSeparation. Returns ok=false when the
// map cannot seat everyone; callers retry with a looser separation or a
// derived seed.
func FindStartPositions(w *World, count, plots, minSeparation int, rng *RNG) ([][]int, bool) {
	var candidates []int
	for id := range w.Territories {
		t := &w.Territories[id]
		if t.Zone != ZoneOuter || !t.IsLand() || t.Owned() || t.Forsaken {
			continue
		}
		if t.X == 0 || t.Y == 0 || t.X == w.N-1 || t.Y == w.N-1 {
			continue
		}
		candidates = append(candidates, id)
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	reserved := make(map[int]bool)
	anchors := make([]int, 0, count)
	starts := make([][]int, 0, count)
	for _, id := range candidates {
		if len(starts) == count {
			break
		}
		if reserved[id] || !separated(w, anchors, id, minSeparation) {
			continue
		}
		cluster := growCluster(w, id, plots, reserved)
		if len(cluster) < plots {
			continue
		}
		for _, c := range cluster {
			reserved[c] = true
		}
		anchors = append(anchors, id)
		starts = append(starts, cluster)
	}
	return starts, len(starts) == count
}

func separated(w *World, anchors []int, id, minSeparation int) bool {
	for _, a := range anchors {
		if w.Chebyshev(a, id) < minSeparation {
			return false
		}
	}
	return true
}

// growCluster BFS-grows contiguous free land from start up to plots tiles,
// skipping tiles already reserved for another cluster.
func growCluster(w *World, start, plots int, reserved map[int]bool) []int {
	cluster := make([]int, 0, plots)
	visited := map[int]bool{start: true}
	queue := []int{start}
	var scratch []int
	for len(queue) > 0 && len(cluster) < plots {
		cur := queue[0]
		queue = queue[1:]
		cluster = append(cluster, cur)
		scratch = w.Neighbors(cur, scratch[:0])
		for _, nb := range scratch {
			t := w.ByID(nb)
			if visited[nb] || reserved[nb] || !t.IsLand() || t.Owned() || t.Forsaken {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return cluster
}
