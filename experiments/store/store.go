// Package store persists batch results to SQLite so balance runs can be
// compared across catalog changes.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"conquest/experiments/metrics"
)

// DB wraps a SQLite connection for batch result storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		generations INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT NOT NULL REFERENCES runs(id),
		seed INTEGER NOT NULL,
		winner TEXT NOT NULL,
		winner_kind TEXT NOT NULL,
		winner_race TEXT NOT NULL,
		winner_score INTEGER NOT NULL,
		final_day INTEGER NOT NULL,
		survivors INTEGER NOT NULL,
		combats INTEGER NOT NULL,
		events INTEGER NOT NULL,
		duration_ns INTEGER NOT NULL,
		PRIMARY KEY (run_id, seed)
	);

	CREATE INDEX IF NOT EXISTS idx_generations_winner_kind ON generations(winner_kind);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one stored batch run.
type Run struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	ConfigJSON  string `db:"config_json"`
	Generations int    `db:"generations"`
	Failed      int    `db:"failed"`
	ElapsedNS   int64  `db:"elapsed_ns"`
	CreatedAt   string `db:"created_at"` // RFC3339
}

// GenerationRow is one stored generation record.
type GenerationRow struct {
	RunID       string `db:"run_id"`
	Seed        int64  `db:"seed"`
	Winner      string `db:"winner"`
	WinnerKind  string `db:"winner_kind"`
	WinnerRace  string `db:"winner_race"`
	WinnerScore int    `db:"winner_score"`
	FinalDay    int    `db:"final_day"`
	Survivors   int    `db:"survivors"`
	Combats     int    `db:"combats"`
	Events      int    `db:"events"`
	DurationNS  int64  `db:"duration_ns"`
}

// FromRecord converts a batch record into a storable row. RunID is filled
// in by SaveRun.
func FromRecord(rec metrics.GenerationRecord) GenerationRow {
	return GenerationRow{
		Seed:        rec.Seed,
		Winner:      rec.Winner,
		WinnerKind:  rec.WinnerKind,
		WinnerRace:  rec.WinnerRace,
		WinnerScore: rec.WinnerScore,
		FinalDay:    rec.FinalDay,
		Survivors:   rec.Survivors,
		Combats:     rec.Combats,
		Events:      rec.Events,
		DurationNS:  rec.Duration.Nanoseconds(),
	}
}

// SaveRun stores one batch run with its records and returns the run id. The
// config is serialized as JSON so later readers see what produced the rows.
func (db *DB) SaveRun(name string, config any, failed int, elapsed time.Duration, rows []GenerationRow) (string, error) {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	runID := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, name, config_json, generations, failed, elapsed_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, name, string(configJSON), len(rows), failed, elapsed.Nanoseconds(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO generations
		(run_id, seed, winner, winner_kind, winner_race, winner_score,
		 final_day, survivors, combats, events, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(runID, row.Seed, row.Winner, row.WinnerKind,
			row.WinnerRace, row.WinnerScore, row.FinalDay, row.Survivors,
			row.Combats, row.Events, row.DurationNS)
		if err != nil {
			return "", fmt.Errorf("insert generation seed %d: %w", row.Seed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// RunGenerations returns a run's stored records in seed order.
func (db *DB) RunGenerations(runID string) ([]GenerationRow, error) {
	var rows []GenerationRow
	err := db.conn.Select(&rows,
		`SELECT run_id, seed, winner, winner_kind, winner_race, winner_score,
		        final_day, survivors, combats, events, duration_ns
		 FROM generations WHERE run_id = ? ORDER BY seed`, runID)
	return rows, err
}

// RecentRuns returns the most recent N stored runs.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		`SELECT id, name, config_json, generations, failed, elapsed_ns, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	return runs, err
}
