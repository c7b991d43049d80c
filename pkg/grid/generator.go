package grid

import (
	"fmt"
	"math/rand"

	"github.com/crossplay/crossfill/internal/boardsize"
)

// Difficulty biases the blocked-cell density GenerateBlockedPattern aims
// for: more blocks means shorter, easier slots; fewer means longer,
// harder ones.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) density() float64 {
	switch d {
	case Easy:
		return 0.22
	case Hard:
		return 0.12
	default:
		return 0.16
	}
}

// GeneratorConfig controls GenerateBlockedPattern.
type GeneratorConfig struct {
	Difficulty Difficulty
	Seed       int64
	MaxAttempts int
}

// GenerateBlockedPattern produces a symmetric, fully-connected blocked
// pattern at the board's static dimension. This is not part of the fill
// search itself -- Lookup and Search always take a Grid as given -- it
// exists so `crossfill solve`/`crossfill serve` can be exercised
// end-to-end without hand-authoring a blocked-cell layout first.
//
// Unlike donor crossword generators this enforces no minimum word
// length beyond the structural minimum: a run of length 1 is not a
// slot at all, so nothing shorter than 2 can ever reach Lookup.
func GenerateBlockedPattern(cfg GeneratorConfig) (*Grid, error) {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 200
	}

	r := rand.New(rand.NewSource(cfg.Seed))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		g := NewGrid()
		seedBlocked(g, r, cfg.Difficulty.density())
		g.EnforceSymmetry()

		if !g.Connected() {
			continue
		}

		g.EnumerateSlots()
		return g, nil
	}

	return nil, fmt.Errorf("grid: no connected %dx%d pattern found after %d attempts", boardsize.Dim, boardsize.Dim, maxAttempts)
}
