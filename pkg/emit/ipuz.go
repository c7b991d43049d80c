// Package emit owns the solution sinks a completed filling can be
// handed to: the always-on ipuz-JSON file writer, and (via pkg/store)
// an optional durable database sink.
package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossplay/crossfill/internal/boardsize"
	"github.com/crossplay/crossfill/pkg/grid"
)

// Puzzle is the ipuz-like JSON shape one solution is serialized to.
type Puzzle struct {
	Version    string          `json:"version"`
	Kind       string          `json:"kind"`
	Dimensions Dimensions      `json:"dimensions"`
	Puzzle     [][]interface{} `json:"puzzle"`
	Solution   [][]string      `json:"solution"`
	Clues      Clues           `json:"clues"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Clues struct {
	Across [][2]interface{} `json:"Across"`
	Down   [][2]interface{} `json:"Down"`
}

// BuildPuzzle renders a completed Grid into the ipuz-like shape: the
// puzzle layer carries "#" for BLOCKED, a slot's shared ID at its
// starting cell, 0 elsewhere; the solution layer carries uppercase
// letters or "#".
func BuildPuzzle(g *grid.Grid) *Puzzle {
	D := boardsize.Dim
	p := &Puzzle{
		Version:    "http://ipuz.org/v2",
		Kind:       "http://ipuz.org/crofileword",
		Dimensions: Dimensions{Width: D, Height: D},
		Puzzle:     make([][]interface{}, D),
		Solution:   make([][]string, D),
	}

	starts := make(map[boardsize.CellIndex]int, len(g.Slots))
	for _, s := range g.Slots {
		starts[s.Cells[0]] = s.ID
	}

	for row := 0; row < D; row++ {
		p.Puzzle[row] = make([]interface{}, D)
		p.Solution[row] = make([]string, D)
		for col := 0; col < D; col++ {
			idx := boardsize.CellIndex(row*D + col)
			cell := g.Cells[idx]
			if cell.Blocked {
				p.Puzzle[row][col] = "#"
				p.Solution[row][col] = "#"
				continue
			}
			if id, ok := starts[idx]; ok {
				p.Puzzle[row][col] = id
			} else {
				p.Puzzle[row][col] = 0
			}
			p.Solution[row][col] = strings.ToUpper(string(cell.Letter))
		}
	}

	for _, s := range g.AcrossSlots() {
		p.Clues.Across = append(p.Clues.Across, clueFor(g, s))
	}
	for _, s := range g.DownSlots() {
		p.Clues.Down = append(p.Clues.Down, clueFor(g, s))
	}

	return p
}

func clueFor(g *grid.Grid, s *grid.Slot) [2]interface{} {
	word := strings.ToUpper(g.Letters(s))
	return [2]interface{}{s.ID, fmt.Sprintf("Clue for '%s'", word)}
}

// FileSink writes each solution to its own ipuz-JSON file under Dir,
// named by sequence number. It implements pool.Sink without importing
// pkg/pool, so pkg/emit stays a leaf package.
type FileSink struct {
	Dir string
}

func (s FileSink) Write(g *grid.Grid, seq uint64) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("emit: creating output dir %s: %w", s.Dir, err)
	}
	data, err := json.MarshalIndent(BuildPuzzle(g), "", "  ")
	if err != nil {
		return fmt.Errorf("emit: marshaling solution %d: %w", seq, err)
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("solution-%06d.json", seq))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("emit: writing %s: %w", path, err)
	}
	return nil
}
