// Package pool spawns the fixed-size worker fleet that runs Search in
// parallel against one immutable Lookup and Grid topology, coordinates
// periodic progress printing via a shared atomic flag, and fans
// completed solutions out to one or more sinks.
package pool

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crossplay/crossfill/pkg/dictionary"
	"github.com/crossplay/crossfill/pkg/grid"
	"github.com/crossplay/crossfill/pkg/search"
)

// Sink receives a completed filling. Errors are logged and the
// solution is dropped; a sink failure never blocks or propagates back
// to the worker that produced the solution.
type Sink interface {
	Write(g *grid.Grid, seq uint64) error
}

// Snapshot is a partial-board progress report, delivered whenever a
// worker claims the print-requested flag.
type Snapshot struct {
	WorkerID  int
	Grid      *grid.Grid
	Ops       int64
	Solutions uint64
}

// Config configures one Pool run.
type Config struct {
	// Workers is the worker count. Zero means runtime.GOMAXPROCS(0).
	Workers int

	Lookup *dictionary.Lookup
	Grid   *grid.Grid

	// Seed is the base RNG seed; worker i derives its own stream from
	// Seed+int64(i), so a Pool run is reproducible end to end.
	Seed int64

	TickInterval     time.Duration
	SampleInterval   int64
	StartOffsetRange int

	Sinks []Sink

	// OnSnapshot, if set, is called with every progress snapshot in
	// addition to the stdout print every snapshot always gets.
	OnSnapshot func(Snapshot)
}

type solutionMsg struct {
	g   *grid.Grid
	seq uint64
}

// Pool runs Config.Workers workers to completion or cancellation.
type Pool struct {
	cfg Config

	cancel         atomic.Bool
	printRequested atomic.Bool
	solCount       atomic.Uint64

	solutions chan solutionMsg
}

// New returns a Pool ready to Run. The Grid passed in must already
// have EnumerateSlots called; Pool never mutates it, only clones it.
func New(cfg Config) *Pool {
	return &Pool{cfg: cfg}
}

// Run spawns the worker fleet and blocks until every worker's search
// space is exhausted or Cancel is called. Safe to call once per Pool.
func (p *Pool) Run() {
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tickInterval := p.cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 3 * time.Second
	}

	p.solutions = make(chan solutionMsg, workers*4)
	fanOutDone := make(chan struct{})
	go p.fanOut(fanOutDone)

	var wg sync.WaitGroup
	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.runWorker(workerID)
		}(id)
	}

	tickerDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.printRequested.Store(true)
			case <-tickerDone:
				return
			}
		}
	}()

	wg.Wait()
	close(tickerDone)
	close(p.solutions)
	<-fanOutDone
}

func (p *Pool) runWorker(id int) {
	rng := rand.New(rand.NewSource(p.cfg.Seed + int64(id)))
	order := search.BuildOrder(p.cfg.Grid.AcrossSlots(), p.cfg.Grid.DownSlots(), rng)

	search.Run(p.cfg.Grid, search.Config{
		WorkerID:         id,
		Lookup:           p.cfg.Lookup,
		Order:            order,
		RNG:              rng,
		StartOffsetRange: p.cfg.StartOffsetRange,
		SampleInterval:   p.cfg.SampleInterval,
		PrintRequested:   &p.printRequested,
		Cancel:           &p.cancel,
		OnSnapshot:       p.handleSnapshot,
		OnSolution: func(g *grid.Grid, seq uint64) {
			p.solutions <- solutionMsg{g: g, seq: seq}
		},
	})
}

func (p *Pool) handleSnapshot(workerID int, g *grid.Grid, ops int64) {
	snap := Snapshot{WorkerID: workerID, Grid: g, Ops: ops, Solutions: p.solCount.Load()}
	fmt.Printf("worker %d: %d ops, %d solutions so far\n", snap.WorkerID, snap.Ops, snap.Solutions)
	if p.cfg.OnSnapshot != nil {
		p.cfg.OnSnapshot(snap)
	}
}

func (p *Pool) fanOut(done chan struct{}) {
	defer close(done)
	for msg := range p.solutions {
		// Workers number their solutions independently; sinks get a
		// run-wide sequence so no two solutions share a number.
		seq := p.solCount.Add(1)
		for _, sink := range p.cfg.Sinks {
			if err := sink.Write(msg.g, seq); err != nil {
				fmt.Printf("pool: sink write failed, dropping solution %d: %v\n", seq, err)
			}
		}
	}
}

// Cancel requests cooperative shutdown; workers observe it at their
// next sampling point, typically within seconds.
func (p *Pool) Cancel() {
	p.cancel.Store(true)
}

// SolutionCount returns the number of solutions handed to the sinks so
// far. Safe to call concurrently with Run.
func (p *Pool) SolutionCount() uint64 {
	return p.solCount.Load()
}
