// Package grid owns the crossword board: cell state, slot (entry)
// enumeration, and the constraint queries the dictionary needs to fill it.
package grid

import (
	"errors"
	"fmt"

	"github.com/crossplay/crossfill/internal/boardsize"
)

// Direction is the orientation of a slot.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Across:
		return "across"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Cell holds the state of one grid square: permanently Blocked, Open
// (Letter == 0), or carrying a lowercase letter a-z.
type Cell struct {
	Blocked bool
	Letter  byte
}

// Slot is a maximal run of >= 2 non-blocked cells in one direction.
// Cells is the ordered list of cell indices the slot covers. ID is the
// stable 1-based identifier assigned during EnumerateSlots: an across
// slot and a down slot that start at the same cell share one ID.
type Slot struct {
	ID        int
	Direction Direction
	Cells     []boardsize.CellIndex
}

func (s *Slot) Len() int { return len(s.Cells) }

// ErrSlotsAlreadyEnumerated is returned by Block once slots have been
// computed: the blocked pattern is fixed before the topology is derived
// from it, never after.
var ErrSlotsAlreadyEnumerated = errors.New("grid: cannot block a cell after slots have been enumerated")

// Grid is the playing surface. Cells is mutable (workers fill and unfill
// letters); Slots is computed once by EnumerateSlots and is immutable
// thereafter, so Clone can share its backing array across worker copies.
type Grid struct {
	Cells []Cell
	Slots []*Slot

	acrossCount int
	downCount   int
}

// NewGrid returns a Dim x Dim grid with every cell Open.
func NewGrid() *Grid {
	return &Grid{Cells: make([]Cell, boardsize.Dim*boardsize.Dim)}
}

func index(row, col int) boardsize.CellIndex {
	return boardsize.CellIndex(row*boardsize.Dim + col)
}

func rowCol(idx boardsize.CellIndex) (row, col int) {
	return int(idx) / boardsize.Dim, int(idx) % boardsize.Dim
}

// Block marks a cell permanently BLOCKED. Legal only before EnumerateSlots.
func (g *Grid) Block(row, col int) error {
	if g.Slots != nil {
		return ErrSlotsAlreadyEnumerated
	}
	if row < 0 || row >= boardsize.Dim || col < 0 || col >= boardsize.Dim {
		return fmt.Errorf("grid: block coordinate (%d,%d) out of range for %dx%d grid", row, col, boardsize.Dim, boardsize.Dim)
	}
	g.Cells[index(row, col)].Blocked = true
	return nil
}

// Clone makes a cheap, independent copy: a fresh Cells array (so letters
// can be filled/unfilled without aliasing another worker's board) sharing
// the read-only Slots slice.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		Cells:       cells,
		Slots:       g.Slots,
		acrossCount: g.acrossCount,
		downCount:   g.downCount,
	}
}
