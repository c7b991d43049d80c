// Package ingest is the external-collaborator boundary for this
// process's two input sources: the dictionary file and the initial
// BLOCKED-cell configuration. Neither file format is part of the core
// search algorithm; both are plain JSON/text the core never sees
// directly.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/crossplay/crossfill/internal/boardsize"
	"github.com/crossplay/crossfill/pkg/grid"
)

// BlockedPattern is the on-disk shape of an initial grid configuration:
// {"rows": N, "cols": N, "blocked": [[r,c], ...]}.
type BlockedPattern struct {
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Blocked [][2]int `json:"blocked"`
}

// LoadBlockedPattern decodes a BlockedPattern from r and validates it
// against the compiled-in board dimension: rows/cols must match
// boardsize.Dim exactly (this binary has no runtime notion of a
// different size), and every coordinate must be in range.
func LoadBlockedPattern(r io.Reader) (*BlockedPattern, error) {
	var p BlockedPattern
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("ingest: decoding blocked-pattern config: %w", err)
	}
	if p.Rows != boardsize.Dim || p.Cols != boardsize.Dim {
		return nil, fmt.Errorf("ingest: blocked-pattern is %dx%d, this binary is built for %dx%d", p.Rows, p.Cols, boardsize.Dim, boardsize.Dim)
	}
	for _, rc := range p.Blocked {
		if rc[0] < 0 || rc[0] >= boardsize.Dim || rc[1] < 0 || rc[1] >= boardsize.Dim {
			return nil, fmt.Errorf("ingest: blocked coordinate (%d,%d) out of range for a %dx%d board", rc[0], rc[1], boardsize.Dim, boardsize.Dim)
		}
	}
	return &p, nil
}

// ApplyTo blocks every coordinate in p on g. g must not have had
// EnumerateSlots called yet.
func (p *BlockedPattern) ApplyTo(g *grid.Grid) error {
	for _, rc := range p.Blocked {
		if err := g.Block(rc[0], rc[1]); err != nil {
			return fmt.Errorf("ingest: applying blocked pattern: %w", err)
		}
	}
	return nil
}

// CanonicalSymmetricPattern generates a connected, 180°-symmetric
// blocked pattern at the given difficulty and seed, and returns it in
// the portable BlockedPattern shape so it can be inspected, edited, or
// serialized back out as config -- the ambient equivalent of the
// donor's GenerateSymmetricBlackSquares, but producing Grid's own
// pattern generator output instead of a bespoke position list.
func CanonicalSymmetricPattern(difficulty grid.Difficulty, seed int64) (*BlockedPattern, error) {
	g, err := grid.GenerateBlockedPattern(grid.GeneratorConfig{Difficulty: difficulty, Seed: seed})
	if err != nil {
		return nil, err
	}

	p := &BlockedPattern{Rows: boardsize.Dim, Cols: boardsize.Dim}
	for row := 0; row < boardsize.Dim; row++ {
		for col := 0; col < boardsize.Dim; col++ {
			if g.Cells[row*boardsize.Dim+col].Blocked {
				p.Blocked = append(p.Blocked, [2]int{row, col})
			}
		}
	}
	return p, nil
}
