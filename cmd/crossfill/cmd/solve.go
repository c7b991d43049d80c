package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/crossplay/crossfill/internal/config"
	"github.com/crossplay/crossfill/pkg/dictionary"
	"github.com/crossplay/crossfill/pkg/emit"
	"github.com/crossplay/crossfill/pkg/grid"
	"github.com/crossplay/crossfill/pkg/ingest"
	"github.com/crossplay/crossfill/pkg/pool"
	"github.com/crossplay/crossfill/pkg/progress"
	"github.com/crossplay/crossfill/pkg/store"
)

var (
	solveDictionary  string
	solveIndexCache  string
	solveBlocked     string
	solveDifficulty  string
	solveSeed        int64
	solveWorkers     int
	solveOutput      string
	solveMaxSolutions uint64
	solveRedisChannel string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Fill a crossword grid in parallel and emit completed solutions",
	Long: `solve builds a Lookup from a dictionary file, applies a BLOCKED-cell
pattern (loaded from --blocked or generated at --difficulty), and spawns
a worker pool that fills the grid until its search space is exhausted,
--max-solutions is reached, or the process is interrupted.

Every completed filling is written as ipuz-like JSON to --output and,
when DATABASE_URL is configured, also persisted to Postgres.`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveDictionary, "dictionary", "", "path to the dictionary file (overrides DICTIONARY_PATH)")
	solveCmd.Flags().StringVar(&solveIndexCache, "index-cache", "", "optional SQLite path for the precomputed Lookup cache (§4.1a)")
	solveCmd.Flags().StringVar(&solveBlocked, "blocked", "", "path to a blocked-pattern JSON config; if empty, one is generated")
	solveCmd.Flags().StringVar(&solveDifficulty, "difficulty", "medium", "generated-pattern difficulty (easy, medium, hard)")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "base RNG seed; worker i derives seed+i")
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "worker count (0 = GOMAXPROCS or CROSSFILL_WORKERS)")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "./solutions", "directory to write ipuz-JSON solutions to")
	solveCmd.Flags().Uint64Var(&solveMaxSolutions, "max-solutions", 0, "stop after this many solutions (0 = run to exhaustion)")
	solveCmd.Flags().StringVar(&solveRedisChannel, "redis-channel", "crossfill:progress", "Redis channel for progress fan-out, when REDIS_URL is configured")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if solveDictionary != "" {
		cfg.DictionaryPath = solveDictionary
	}
	if solveWorkers > 0 {
		cfg.Workers = solveWorkers
	}

	runID := uuid.NewString()
	infof("run %s: loading dictionary from %s\n", runID, cfg.DictionaryPath)

	lookup, err := loadLookup(cfg.DictionaryPath, solveIndexCache)
	if err != nil {
		return err
	}
	infof("run %s: dictionary loaded\n", runID)

	g, err := loadOrGenerateGrid()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(solveOutput, 0755); err != nil {
		return fmt.Errorf("solve: creating output directory: %w", err)
	}

	sinks := []pool.Sink{emit.FileSink{Dir: solveOutput}}

	if cfg.DatabaseURL != "" {
		st, err := store.New(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("solve: connecting to store: %w", err)
		}
		defer st.Close()
		if err := st.InitSchema(); err != nil {
			return fmt.Errorf("solve: initializing schema: %w", err)
		}
		sinks = append(sinks, store.RunSink{Store: st, RunID: runID})
		infof("run %s: persisting solutions to %s\n", runID, cfg.DatabaseURL)
	}

	var redisPub *progress.RedisPublisher
	if cfg.RedisURL != "" {
		redisPub, err = progress.NewRedisPublisher(cfg.RedisURL, solveRedisChannel)
		if err != nil {
			return fmt.Errorf("solve: connecting to redis: %w", err)
		}
		defer redisPub.Close()
	}

	p := pool.New(pool.Config{
		Workers: cfg.Workers,
		Lookup:  lookup,
		Grid:    g,
		Seed:    solveSeed,
		Sinks:   sinks,
		OnSnapshot: func(snap pool.Snapshot) {
			if redisPub != nil {
				redisPub.Publish(progress.Snapshot{
					WorkerID:  snap.WorkerID,
					Board:     boardString(snap.Grid),
					Ops:       snap.Ops,
					Solutions: snap.Solutions,
				})
			}
		},
	})

	if solveMaxSolutions > 0 {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if p.SolutionCount() >= solveMaxSolutions {
						p.Cancel()
						return
					}
				case <-stop:
					return
				}
			}
		}()
	}

	fmt.Printf("run %s: filling with %d workers\n", runID, effectiveWorkers(cfg.Workers))
	p.Run()
	fmt.Printf("run %s: finished, %d solution(s) written to %s\n", runID, p.SolutionCount(), solveOutput)
	return nil
}

func loadLookup(dictPath, cachePath string) (*dictionary.Lookup, error) {
	if cachePath != "" {
		return dictionary.BuildWithCache(dictPath, cachePath)
	}
	f, err := ingest.OpenDictionaryFile(dictPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dictionary.Build(f, dictionary.BackendMerge)
}

func loadOrGenerateGrid() (*grid.Grid, error) {
	g := grid.NewGrid()

	if solveBlocked != "" {
		f, err := os.Open(solveBlocked)
		if err != nil {
			return nil, fmt.Errorf("solve: opening blocked-pattern file: %w", err)
		}
		defer f.Close()

		pattern, err := ingest.LoadBlockedPattern(f)
		if err != nil {
			return nil, err
		}
		if err := pattern.ApplyTo(g); err != nil {
			return nil, err
		}
		g.EnumerateSlots()
		return g, nil
	}

	difficulty, err := parseDifficulty(solveDifficulty)
	if err != nil {
		return nil, err
	}
	return grid.GenerateBlockedPattern(grid.GeneratorConfig{Difficulty: difficulty, Seed: solveSeed})
}

func parseDifficulty(s string) (grid.Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return grid.Easy, nil
	case "medium":
		return grid.Medium, nil
	case "hard":
		return grid.Hard, nil
	default:
		return grid.Medium, fmt.Errorf("solve: invalid difficulty %q (must be easy, medium, or hard)", s)
	}
}

func effectiveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.GOMAXPROCS(0)
}

func boardString(g *grid.Grid) string {
	var b strings.Builder
	for _, c := range g.Cells {
		switch {
		case c.Blocked:
			b.WriteByte('#')
		case c.Letter != 0:
			b.WriteByte(c.Letter)
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}
