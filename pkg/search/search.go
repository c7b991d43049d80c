package search

import (
	"math/rand"
	"sync/atomic"

	"github.com/crossplay/crossfill/internal/boardsize"
	"github.com/crossplay/crossfill/pkg/dictionary"
	"github.com/crossplay/crossfill/pkg/grid"
)

// defaultStartOffsetRange bounds the randomized per-step candidate
// offset. Any bounded range greater than zero preserves completeness;
// this matches the donor sources' choice.
const defaultStartOffsetRange = 1000

// defaultSampleInterval is how many stack operations elapse between a
// worker's checks of the shared cancel/print-requested flags.
const defaultSampleInterval = 100_000

// Config wires one worker's Run to its shared, read-only Lookup/Grid
// inputs and to the pool's coordination flags. PrintRequested and
// Cancel may be nil, in which case this worker never samples them
// (useful for tests that don't need a pool).
type Config struct {
	WorkerID         int
	Lookup           *dictionary.Lookup
	Order            []*grid.Slot
	RNG              *rand.Rand
	StartOffsetRange int
	SampleInterval   int64

	PrintRequested *atomic.Bool
	Cancel         *atomic.Bool

	// OnSnapshot is called by whichever worker wins the CAS claim on
	// PrintRequested, with its own current partial board and running
	// operation count.
	OnSnapshot func(workerID int, g *grid.Grid, ops int64)

	// OnSolution is called for every completed filling this worker
	// finds, with a per-worker sequence number.
	OnSolution func(g *grid.Grid, seq uint64)
}

type frame struct {
	g    *grid.Grid
	next int
	used *usedWords
}

// Run drives one worker's depth-first search to completion: until its
// stack drains (search space exhausted) or Cancel is observed set.
// initial is cloned once up front; Run never mutates the caller's grid.
func Run(initial *grid.Grid, cfg Config) {
	offsetRange := cfg.StartOffsetRange
	if offsetRange <= 0 {
		offsetRange = defaultStartOffsetRange
	}
	sampleInterval := cfg.SampleInterval
	if sampleInterval <= 0 {
		sampleInterval = defaultSampleInterval
	}

	stack := make([]frame, 0, 64)
	stack = append(stack, frame{g: initial.Clone(), next: 0})

	var ops int64
	var seq uint64

	for len(stack) > 0 {
		ops++
		if ops%sampleInterval == 0 {
			if cfg.Cancel != nil && cfg.Cancel.Load() {
				return
			}
			if cfg.PrintRequested != nil && cfg.PrintRequested.Load() {
				if cfg.PrintRequested.CompareAndSwap(true, false) && cfg.OnSnapshot != nil {
					top := stack[len(stack)-1]
					cfg.OnSnapshot(cfg.WorkerID, top.g, ops)
				}
			}
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.next == len(cfg.Order) {
			seq++
			if cfg.OnSolution != nil {
				cfg.OnSolution(f.g, seq)
			}
			continue
		}

		slot := cfg.Order[f.next]
		candidates := cfg.Lookup.Query(toConstraints(f.g.ConstraintsFor(slot)), slot.Len())
		if len(candidates) == 0 {
			continue
		}

		s := cfg.RNG.Intn(offsetRange)
		qualifying := qualifyingCandidates(candidates, s, f.used)
		if len(qualifying) == 0 {
			continue
		}

		last := len(qualifying) - 1
		for i, w := range qualifying {
			word := cfg.Lookup.Word(w)
			if i == last {
				// Tail move: this frame's grid is owned exclusively by
				// this branch, so fill it in place and push it back
				// instead of cloning again.
				f.g.Fill(slot, word)
				f.next++
				f.used = f.used.push(w)
				stack = append(stack, f)
				continue
			}
			child := frame{g: f.g.Clone(), next: f.next + 1, used: f.used.push(w)}
			child.g.Fill(slot, word)
			stack = append(stack, child)
		}
	}
}

func qualifyingCandidates(candidates []boardsize.WordID, start int, used *usedWords) []boardsize.WordID {
	var out []boardsize.WordID
	for i := 0; i < len(candidates); i++ {
		w := candidates[(start+i)%len(candidates)]
		if used.contains(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func toConstraints(cs []grid.Constraint) []dictionary.Constraint {
	if len(cs) == 0 {
		return nil
	}
	out := make([]dictionary.Constraint, len(cs))
	for i, c := range cs {
		out[i] = dictionary.Constraint{Pos: c.Pos, Letter: c.Letter}
	}
	return out
}
