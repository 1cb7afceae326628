package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conquest/engine"
	"conquest/game"
)

func sampleResult() *engine.Result {
	winner := game.NewPlayer(0, "player-1", game.RaceOrc, game.ClassWarlord, game.SkillTactician, game.TierFree)
	winner.AgentName = "aggressive"
	winner.Score = 900
	loser := game.NewPlayer(1, "player-2", game.RaceElf, game.ClassSteward, game.SkillHarvester, game.TierFree)
	loser.Eliminated = true

	return &engine.Result{
		Winner:    winner,
		FinalDay:  31,
		Players:   []*game.Player{winner, loser},
		CombatLog: make([]game.CombatRecord, 5),
		Events:    make([]game.Event, 12),
	}
}

func TestNewGenerationRecord(t *testing.T) {
	rec := NewGenerationRecord(42, sampleResult(), 3*time.Second)

	assert.Equal(t, int64(42), rec.Seed)
	assert.Equal(t, "player-1", rec.Winner)
	assert.Equal(t, "aggressive", rec.WinnerKind)
	assert.Equal(t, "orc", rec.WinnerRace)
	assert.Equal(t, 900, rec.WinnerScore)
	assert.Equal(t, 31, rec.FinalDay)
	assert.Equal(t, 1, rec.Survivors)
	assert.Equal(t, 5, rec.Combats)
	assert.Equal(t, 12, rec.Events)
}

func TestNewGenerationRecordWithoutWinner(t *testing.T) {
	result := sampleResult()
	result.Winner = nil
	rec := NewGenerationRecord(7, result, time.Second)
	assert.Empty(t, rec.Winner, "An undecided generation leaves the winner blank")
	assert.Empty(t, rec.WinnerKind)
}

func TestSummarize(t *testing.T) {
	records := []GenerationRecord{
		{Seed: 1, Winner: "a", WinnerKind: "aggressive", WinnerRace: "orc", FinalDay: 40, Combats: 10},
		{Seed: 2, Winner: "b", WinnerKind: "aggressive", WinnerRace: "elf", FinalDay: 50, Combats: 20},
		{Seed: 3, Winner: "c", WinnerKind: "defensive", WinnerRace: "orc", FinalDay: 30, Combats: 30},
		{Seed: 4, FinalDay: 40, Combats: 20}, // no winner
	}
	s := Summarize(records)

	require.Equal(t, 4, s.Generations)
	require.Equal(t, 3, s.Decided)
	assert.Equal(t, 2, s.KindWins["aggressive"])
	assert.Equal(t, 1, s.KindWins["defensive"])
	assert.Equal(t, 2, s.RaceWins["orc"])
	assert.InDelta(t, 40.0, s.AvgFinalDay, 1e-9)
	assert.InDelta(t, 20.0, s.AvgCombats, 1e-9)
	assert.InDelta(t, 2.0/3.0, s.WinRate("aggressive"), 1e-9)
	assert.Zero(t, s.WinRate("economic"), "Unseen kinds never won")
	assert.Equal(t, []string{"aggressive", "defensive"}, s.Kinds(), "Kinds are sorted")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Generations)
	assert.Zero(t, s.WinRate("aggressive"), "An empty batch has no rates")
}
