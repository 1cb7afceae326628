package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conquest/experiments/metrics"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "balance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)

	rows := []GenerationRow{
		FromRecord(metrics.GenerationRecord{
			Seed: 1, Winner: "player-3", WinnerKind: "balanced", WinnerRace: "dwarf",
			WinnerScore: 1200, FinalDay: 50, Survivors: 5, Combats: 80, Events: 300,
			Duration: 2 * time.Second,
		}),
		FromRecord(metrics.GenerationRecord{Seed: 2, FinalDay: 12, Survivors: 1}),
	}
	runID, err := db.SaveRun("nightly", map[string]int{"grid": 100}, 1, time.Minute, rows)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	loaded, err := db.RunGenerations(runID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(1), loaded[0].Seed)
	assert.Equal(t, "balanced", loaded[0].WinnerKind)
	assert.Equal(t, (2 * time.Second).Nanoseconds(), loaded[0].DurationNS)
	assert.Empty(t, loaded[1].Winner, "An undecided generation stores a blank winner")

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "nightly", runs[0].Name)
	assert.Equal(t, 2, runs[0].Generations)
	assert.Equal(t, 1, runs[0].Failed)
	assert.JSONEq(t, `{"grid":100}`, runs[0].ConfigJSON)
}

func TestRunGenerationsUnknownRun(t *testing.T) {
	db := openTestDB(t)
	rows, err := db.RunGenerations("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
