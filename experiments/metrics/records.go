// Package metrics turns generation results into flat records and aggregate
// balance statistics for batch runs.
package metrics

import (
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"conquest/engine"
)

// GenerationRecord is one finished generation flattened for storage.
type GenerationRecord struct {
	Seed        int64         `db:"seed"`
	Winner      string        `db:"winner"`
	WinnerKind  string        `db:"winner_kind"`
	WinnerRace  string        `db:"winner_race"`
	WinnerScore int           `db:"winner_score"`
	FinalDay    int           `db:"final_day"`
	Survivors   int           `db:"survivors"`
	Combats     int           `db:"combats"`
	Events      int           `db:"events"`
	Duration    time.Duration `db:"duration_ns"`
}

// NewGenerationRecord flattens a result.
func NewGenerationRecord(seed int64, result *engine.Result, elapsed time.Duration) GenerationRecord {
	rec := GenerationRecord{
		Seed:     seed,
		FinalDay: result.FinalDay,
		Combats:  len(result.CombatLog),
		Events:   len(result.Events),
		Duration: elapsed,
	}
	for _, p := range result.Players {
		if !p.Eliminated {
			rec.Survivors++
		}
	}
	if w := result.Winner; w != nil {
		rec.Winner = w.Name
		rec.WinnerKind = w.AgentName
		rec.WinnerRace = w.Race.String()
		rec.WinnerScore = w.Score
	}
	return rec
}

// Summary aggregates a batch: how often each policy kind and race takes the
// generation, plus average pacing numbers.
type Summary struct {
	Generations int
	Decided     int // generations with a winner
	KindWins    map[string]int
	RaceWins    map[string]int
	AvgFinalDay float64
	AvgCombats  float64
}

// Summarize folds records into a batch summary.
func Summarize(records []GenerationRecord) Summary {
	s := Summary{
		Generations: len(records),
		KindWins:    map[string]int{},
		RaceWins:    map[string]int{},
	}
	days, combats := 0, 0
	for _, rec := range records {
		days += rec.FinalDay
		combats += rec.Combats
		if rec.Winner == "" {
			continue
		}
		s.Decided++
		s.KindWins[rec.WinnerKind]++
		s.RaceWins[rec.WinnerRace]++
	}
	if len(records) > 0 {
		s.AvgFinalDay = float64(days) / float64(len(records))
		s.AvgCombats = float64(combats) / float64(len(records))
	}
	return s
}

// WinRate returns a kind's share of decided generations.
func (s Summary) WinRate(kind string) float64 {
	if s.Decided == 0 {
		return 0
	}
	return float64(s.KindWins[kind]) / float64(s.Decided)
}

// Kinds returns the winning kinds in sorted order for stable reports.
func (s Summary) Kinds() []string {
	kinds := maps.Keys(s.KindWins)
	slices.Sort(kinds)
	return kinds
}

// Races returns the winning races in sorted order.
func (s Summary) Races() []string {
	races := maps.Keys(s.RaceWins)
	slices.Sort(races)
	return races
}
