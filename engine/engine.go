// Package engine schedules one full generation: it builds the world and the
// players from a seeded configuration, then plays every day until a winner
// emerges or the day limit lands.
package engine

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"conquest/agents"
	"conquest/game"
)

// Defaults for the optional placement knobs.
const (
	DefaultPlotsPerPlayer = 3
	startSearchRetries    = 2 // separation halves on each retry
)

// SimConfig describes one generation. It is consumed once by NewGeneration;
// catalogs and modifier tables are fixed in the game package.
type SimConfig struct {
	GridSize int
	Days     int
	Players  int

	// AgentMix weighs how likely each policy kind is to drive a player.
	AgentMix map[agents.Kind]float64

	// PlotsPerPlayer is the starting territory count; zero means default.
	PlotsPerPlayer int
	// MinStartSeparation is the Chebyshev distance kept between starting
	// anchors; zero derives one from the grid size.
	MinStartSeparation int
	// PremiumRatio is the probability a player enters at the premium tier.
	PremiumRatio float64

	Seed    int64
	Verbose bool
}

// EvenMix weighs every policy kind equally.
func EvenMix() map[agents.Kind]float64 {
	mix := make(map[agents.Kind]float64, agents.NumKinds)
	for _, k := range agents.AllKinds() {
		mix[k] = 1
	}
	return mix
}

// Validate rejects configurations no generation can run from. A zero value
// in any required field is a broken caller, not a playable edge case.
func (c SimConfig) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("grid size must be positive, got %d", c.GridSize)
	}
	if c.Days <= 0 {
		return fmt.Errorf("day count must be positive, got %d", c.Days)
	}
	if c.Players <= 0 {
		return fmt.Errorf("player count must be positive, got %d", c.Players)
	}
	if len(c.AgentMix) == 0 {
		return fmt.Errorf("agent mix is empty")
	}
	total := 0.0
	for k, w := range c.AgentMix {
		if k < 0 || k >= agents.NumKinds {
			return fmt.Errorf("agent mix names unknown kind %d", k)
		}
		if w < 0 {
			return fmt.Errorf("agent mix weight for %s is negative", k)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("agent mix has zero total weight")
	}
	if c.PremiumRatio < 0 || c.PremiumRatio > 1 {
		return fmt.Errorf("premium ratio %f outside [0,1]", c.PremiumRatio)
	}
	if c.PlotsPerPlayer < 0 {
		return fmt.Errorf("plots per player must not be negative, got %d", c.PlotsPerPlayer)
	}
	return nil
}

// plots returns the starting territory count after defaults.
func (c SimConfig) plots() int {
	if c.PlotsPerPlayer > 0 {
		return c.PlotsPerPlayer
	}
	return DefaultPlotsPerPlayer
}

// separation returns the starting anchor distance after defaults.
func (c SimConfig) separation() int {
	if c.MinStartSeparation > 0 {
		return c.MinStartSeparation
	}
	sep := c.GridSize / 5
	if sep < 3 {
		sep = 3
	}
	return sep
}

// mixKinds returns the configured kinds and weights in kind order. Map
// iteration order must never reach the RNG.
func (c SimConfig) mixKinds() ([]agents.Kind, []float64) {
	kinds := maps.Keys(c.AgentMix)
	slices.Sort(kinds)
	weights := make([]float64, len(kinds))
	for i, k := range kinds {
		weights[i] = c.AgentMix[k]
	}
	return kinds, weights
}

// Result is everything a generation leaves behind: the winner, the final
// player states, and the two append-only logs. Callers persist or render it;
// the engine never touches it again.
type Result struct {
	Winner    *game.Player // nil when nobody survived to win
	FinalDay  int
	Players   []*game.Player
	CombatLog []game.CombatRecord
	Events    []game.Event
}

// WinnerName returns the winner's name, or empty without one.
func (r *Result) WinnerName() string {
	if r.Winner == nil {
		return ""
	}
	return r.Winner.Name
}

// EventsOfKind filters the event log by kind, preserving order.
func (r *Result) EventsOfKind(kind game.EventKind) []game.Event {
	var out []game.Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
