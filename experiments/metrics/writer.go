package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer lays CSV files into a per-batch directory.
type Writer struct {
	baseDir string
}

// NewWriter creates root/<name>/<timestamp>/ and a writer over it.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory files land in.
func (w *Writer) Dir() string { return w.baseDir }

// WriteGenerationRecords stores one row per generation.
func (w *Writer) WriteGenerationRecords(records []GenerationRecord) error {
	path := filepath.Join(w.baseDir, "generation_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create generation records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"seed", "winner", "winner_kind", "winner_race", "winner_score",
		"final_day", "survivors", "combats", "events", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write generation records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.FormatInt(record.Seed, 10),
			record.Winner,
			record.WinnerKind,
			record.WinnerRace,
			strconv.Itoa(record.WinnerScore),
			strconv.Itoa(record.FinalDay),
			strconv.Itoa(record.Survivors),
			strconv.Itoa(record.Combats),
			strconv.Itoa(record.Events),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write generation record row: %w", err)
		}
	}
	return nil
}

// WriteSummary stores the per-kind win table.
func (w *Writer) WriteSummary(summary Summary) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"kind", "wins", "win_rate", "generations", "decided"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, kind := range summary.Kinds() {
		row := []string{
			kind,
			strconv.Itoa(summary.KindWins[kind]),
			strconv.FormatFloat(summary.WinRate(kind), 'f', 4, 64),
			strconv.Itoa(summary.Generations),
			strconv.Itoa(summary.Decided),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return nil
}
