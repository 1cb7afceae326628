// Command balance runs a batch of generations described by a config file,
// writes CSV reports, and optionally persists the run to SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"conquest/agents"
	"conquest/engine"
	"conquest/experiments"
	"conquest/experiments/metrics"
	"conquest/experiments/store"
)

// fileConfig mirrors the batch config file layout.
type fileConfig struct {
	Name        string `mapstructure:"name"`
	SeedStart   int64  `mapstructure:"seed_start"`
	Generations int    `mapstructure:"generations"`
	Workers     int    `mapstructure:"workers"`
	OutputDir   string `mapstructure:"output_dir"`
	Database    string `mapstructure:"database"`

	Sim struct {
		GridSize           int                `mapstructure:"grid_size"`
		Days               int                `mapstructure:"days"`
		Players            int                `mapstructure:"players"`
		PlotsPerPlayer     int                `mapstructure:"plots_per_player"`
		MinStartSeparation int                `mapstructure:"min_start_separation"`
		PremiumRatio       float64            `mapstructure:"premium_ratio"`
		AgentMix           map[string]float64 `mapstructure:"agent_mix"`
	} `mapstructure:"sim"`
}

func main() {
	configPath := flag.String("config", "balance.yaml", "batch config file")
	verbose := flag.Bool("v", false, "log per-generation progress")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	fc, cfg := loadConfig(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := experiments.RunBatch(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}

	outputDir := fc.OutputDir
	if outputDir == "" {
		outputDir = "results"
	}
	writer, err := metrics.NewWriter(outputDir, cfg.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create report directory")
	}
	if err := writer.WriteGenerationRecords(result.Records); err != nil {
		log.Fatal().Err(err).Msg("could not write generation records")
	}
	if err := writer.WriteSummary(result.Summary); err != nil {
		log.Fatal().Err(err).Msg("could not write summary")
	}
	log.Info().Msgf("reports written to %s", writer.Dir())

	if fc.Database != "" {
		persist(fc.Database, cfg, result)
	}

	printSummary(cfg, result)
}

// loadConfig reads the batch file once and converts it into a runnable
// config. Malformed files kill the process before any work starts.
func loadConfig(path string) (fileConfig, experiments.BatchConfig) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Err(err).Msgf("could not read config %s", path)
	}
	var fc fileConfig
	if err := viper.Unmarshal(&fc); err != nil {
		log.Fatal().Err(err).Msgf("could not parse config %s", path)
	}

	mix := make(map[agents.Kind]float64, len(fc.Sim.AgentMix))
	for name, weight := range fc.Sim.AgentMix {
		kind, err := agents.ParseKind(name)
		if err != nil {
			log.Fatal().Err(err).Msg("bad agent mix")
		}
		mix[kind] = weight
	}
	if len(mix) == 0 {
		mix = engine.EvenMix()
	}

	return fc, experiments.BatchConfig{
		Name:        fc.Name,
		SeedStart:   fc.SeedStart,
		Generations: fc.Generations,
		Workers:     fc.Workers,
		Sim: engine.SimConfig{
			GridSize:           fc.Sim.GridSize,
			Days:               fc.Sim.Days,
			Players:            fc.Sim.Players,
			AgentMix:           mix,
			PlotsPerPlayer:     fc.Sim.PlotsPerPlayer,
			MinStartSeparation: fc.Sim.MinStartSeparation,
			PremiumRatio:       fc.Sim.PremiumRatio,
		},
	}
}

func persist(path string, cfg experiments.BatchConfig, result *experiments.BatchResult) {
	db, err := store.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msgf("could not open database %s", path)
	}
	defer db.Close()

	rows := make([]store.GenerationRow, len(result.Records))
	for i, rec := range result.Records {
		rows[i] = store.FromRecord(rec)
	}
	runID, err := db.SaveRun(cfg.Name, cfg, result.Failed, result.Elapsed, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("could not persist batch")
	}
	log.Info().Msgf("batch stored as run %s in %s", runID, path)
}

func printSummary(cfg experiments.BatchConfig, result *experiments.BatchResult) {
	s := result.Summary
	perGeneration := time.Duration(0)
	if s.Generations > 0 {
		perGeneration = result.Elapsed / time.Duration(s.Generations)
	}
	fmt.Printf("batch %q: %s generations in %s (%s each)\n",
		cfg.Name,
		humanize.Comma(int64(s.Generations)),
		result.Elapsed.Round(time.Millisecond),
		perGeneration.Round(time.Millisecond))
	fmt.Printf("decided: %s of %s, avg final day %.1f, avg combats %.1f\n",
		humanize.Comma(int64(s.Decided)), humanize.Comma(int64(s.Generations)),
		s.AvgFinalDay, s.AvgCombats)
	for _, kind := range s.Kinds() {
		fmt.Printf("  %-12s %4d wins  %5.1f%%\n", kind, s.KindWins[kind], 100*s.WinRate(kind))
	}
	if result.Failed > 0 {
		fmt.Printf("  %d seeds failed placement\n", result.Failed)
	}
}
