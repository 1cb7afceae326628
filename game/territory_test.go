package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorldIndexing(t *testing.T) {
	w := NewWorld(8)

	require.Len(t, w.Territories, 64, "Should allocate N*N territories")
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tt := w.At(x, y)
			require.Equal(t, y*8+x, tt.ID, "Should assign dense row-major ids")
			require.Equal(t, x, tt.X, "Should record the x coordinate")
			require.Equal(t, y, tt.Y, "Should record the y coordinate")
			require.Equal(t, NoOwner, tt.Owner, "Should start unowned")
		}
	}
}

func TestWorldNeighbors(t *testing.T) {
	w := NewWorld(8)

	t.Run("interior tile has four neighbors in fixed order", func(t *testing.T) {
		got := w.Neighbors(w.Idx(3, 3), nil)
		want := []int{w.Idx(3, 2), w.Idx(4, 3), w.Idx(3, 4), w.Idx(2, 3)}
		require.Equal(t, want, got, "Should list neighbors north, east, south, west")
	})

	t.Run("corner tile has two neighbors", func(t *testing.T) {
		got := w.Neighbors(w.Idx(0, 0), nil)
		require.Len(t, got, 2, "Should clip neighbors at the map border")
	})

	t.Run("adjacency is symmetric", func(t *testing.T) {
		a, b := w.Idx(2, 5), w.Idx(3, 5)
		require.True(t, w.Adjacent(a, b), "Should treat side-by-side tiles as adjacent")
		require.True(t, w.Adjacent(b, a), "Should be symmetric")
		require.False(t, w.Adjacent(a, w.Idx(3, 6)), "Should not treat diagonals as adjacent")
	})
}

func TestChebyshevDistance(t *testing.T) {
	w := NewWorld(10)
	require.Equal(t, 0, w.Chebyshev(w.Idx(4, 4), w.Idx(4, 4)), "Should be zero to itself")
	require.Equal(t, 3, w.Chebyshev(w.Idx(1, 1), w.Idx(4, 3)), "Should take the larger axis delta")
	require.Equal(t, 9, w.Chebyshev(w.Idx(0, 0), w.Idx(9, 9)), "Should span the diagonal")
}

func TestZoneBands(t *testing.T) {
	// On a 64 grid: heart < 8, inner < 16, middle < 24, outer beyond.
	cases := []struct {
		dist int
		want Zone
	}{
		{0, ZoneHeart},
		{7, ZoneHeart},
		{8, ZoneInner},
		{15, ZoneInner},
		{16, ZoneMiddle},
		{23, ZoneMiddle},
		{24, ZoneOuter},
		{31, ZoneOuter},
	}
	for _, c := range cases {
		require.Equal(t, c.want, zoneOf(c.dist, 64), "Should band distance %d as %s", c.dist, c.want)
	}
}

func TestTerritoryBuildingCounts(t *testing.T) {
	tt := Territory{
		Buildings: []Building{
			{Type: BuildingWatchtower, Completed: true},
			{Type: BuildingWatchtower, Completed: false},
			{Type: BuildingWall, Completed: true},
		},
	}

	require.Equal(t, 2, tt.CountOf(BuildingWatchtower), "Should count queued and completed alike")
	require.Equal(t, 1, tt.CompletedOf(BuildingWatchtower), "Should count only completed")
	require.True(t, tt.HasCompleted(BuildingWall), "Should see the finished wall")
	require.False(t, tt.HasCompleted(BuildingGate), "Should not see absent buildings")
	require.Equal(t, 2, tt.CompletedCount(), "Should total finished buildings")
}

func TestPhaseForDay(t *testing.T) {
	require.Equal(t, PhasePlanning, PhaseForDay(1), "Should open in planning")
	require.Equal(t, PhasePlanning, PhaseForDay(7), "Should stay in planning through day 7")
	require.Equal(t, PhaseActive, PhaseForDay(8), "Should turn active on day 8")
	require.Equal(t, PhaseActive, PhaseForDay(39), "Should stay active through day 39")
	require.Equal(t, PhaseEndgame, PhaseForDay(40), "Should enter endgame on day 40")
	require.Equal(t, PhaseEndgame, PhaseForDay(90), "Should remain in endgame")
}

func TestGenerationStateOrder(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "p0", RaceHuman, ClassWarlord, SkillTactician, TierFree),
		NewPlayer(1, "p1", RaceElf, ClassSentinel, SkillFortifier, TierFree),
		NewPlayer(2, "p2", RaceOrc, ClassSteward, SkillHarvester, TierPremium),
	}

	s1 := NewGenerationState(11, NewWorld(8), players, NewRNG(11))
	s2 := NewGenerationState(11, NewWorld(8), players, NewRNG(11))

	require.Equal(t, s1.Order, s2.Order, "Should shuffle the turn order identically per seed")
	require.ElementsMatch(t, []int{0, 1, 2}, s1.Order, "Should keep every player in the order")

	a := s1.NewArmy(players[0], 5)
	b := s1.NewArmy(players[1], 9)
	require.Equal(t, 1, a.ID, "Should number armies from one")
	require.Equal(t, 2, b.ID, "Should hand out unique army ids")
	require.Equal(t, []*Army{a}, players[0].Armies, "Should register the army with its owner")
}
