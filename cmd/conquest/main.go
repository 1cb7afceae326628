// Command conquest plays a single generation from flags and streams its
// outcome to stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"conquest/agents"
	"conquest/engine"
)

func main() {
	var (
		seed    = flag.Int64("seed", 1, "generation seed")
		grid    = flag.Int("grid", 100, "map grid size (N for an NxN map)")
		days    = flag.Int("days", 50, "maximum generation length in days")
		players = flag.Int("players", 8, "player count")
		plots   = flag.Int("plots", 0, "starting plots per player (0 for default)")
		premium = flag.Float64("premium", 0.25, "probability a player enters at the premium tier")
		mix     = flag.String("agents", "", "agent mix, e.g. aggressive=2,defensive=1 (empty for even)")
		verbose = flag.Bool("v", false, "log every day and battle")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	agentMix, err := parseMix(*mix)
	if err != nil {
		log.Fatal().Err(err).Msg("bad agent mix")
	}

	cfg := engine.SimConfig{
		GridSize:       *grid,
		Days:           *days,
		Players:        *players,
		AgentMix:       agentMix,
		PlotsPerPlayer: *plots,
		PremiumRatio:   *premium,
		Seed:           *seed,
		Verbose:        *verbose,
	}
	gen, err := engine.NewGeneration(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start generation")
	}
	result := gen.Run()

	for _, p := range result.Players {
		status := "alive"
		if p.Eliminated {
			status = "eliminated"
		}
		log.Info().Msgf("%s (%s %s, %s): score %d, %d territories, %d units, %s",
			p.Name, p.Race, p.Class, p.AgentName, p.Score, p.TerritoryCount(),
			p.UnitCount(), status)
	}
	log.Info().Msgf("%d battles, %d events, final day %d",
		len(result.CombatLog), len(result.Events), result.FinalDay)
	if result.Winner != nil {
		fmt.Printf("winner: %s\n", result.Winner.Name)
	} else {
		fmt.Println("no winner")
	}
}

// parseMix turns "aggressive=2,random=1" into a weighted mix; empty input
// means every policy weighs the same.
func parseMix(s string) (map[agents.Kind]float64, error) {
	if s == "" {
		return engine.EvenMix(), nil
	}
	mix := make(map[agents.Kind]float64)
	for _, part := range strings.Split(s, ",") {
		name, weight, found := strings.Cut(strings.TrimSpace(part), "=")
		kind, err := agents.ParseKind(name)
		if err != nil {
			return nil, err
		}
		w := 1.0
		if found {
			w, err = strconv.ParseFloat(weight, 64)
			if err != nil {
				return nil, fmt.Errorf("bad weight for %s: %w", name, err)
			}
		}
		mix[kind] = w
	}
	return mix, nil
}
