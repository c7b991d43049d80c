package grid

import "github.com/crossplay/crossfill/internal/boardsize"

// EnumerateSlots scans the grid row-major, top-left to bottom-right,
// exactly once, and populates g.Slots. A slot ID is assigned at the
// first cell that opens a new across and/or down run; across and down
// share the same ID when both start at that cell, matching the stable
// clue-numbering convention real crosswords use. Calling this twice is a
// no-op: the slot list, once computed, is immutable for the run.
func (g *Grid) EnumerateSlots() {
	if g.Slots != nil {
		return
	}

	D := boardsize.Dim
	startsAcross := make([]bool, D*D)
	startsDown := make([]bool, D*D)

	for row := 0; row < D; row++ {
		for col := 0; col < D; col++ {
			idx := index(row, col)
			if g.Cells[idx].Blocked {
				continue
			}
			if (col == 0 || g.Cells[index(row, col-1)].Blocked) &&
				col+1 < D && !g.Cells[index(row, col+1)].Blocked {
				startsAcross[idx] = true
			}
			if (row == 0 || g.Cells[index(row-1, col)].Blocked) &&
				row+1 < D && !g.Cells[index(row+1, col)].Blocked {
				startsDown[idx] = true
			}
		}
	}

	var slots []*Slot
	number := 1
	for row := 0; row < D; row++ {
		for col := 0; col < D; col++ {
			idx := index(row, col)
			if g.Cells[idx].Blocked {
				continue
			}
			if !startsAcross[idx] && !startsDown[idx] {
				continue
			}

			id := number
			number++

			if startsAcross[idx] {
				var cells []boardsize.CellIndex
				c := col
				for c < D && !g.Cells[index(row, c)].Blocked {
					cells = append(cells, index(row, c))
					c++
				}
				g.acrossCount++
				slots = append(slots, &Slot{
					ID:        id,
					Direction: Across,
					Cells:     cells,
				})
			}

			if startsDown[idx] {
				var cells []boardsize.CellIndex
				r := row
				for r < D && !g.Cells[index(r, col)].Blocked {
					cells = append(cells, index(r, col))
					r++
				}
				g.downCount++
				slots = append(slots, &Slot{
					ID:        id,
					Direction: Down,
					Cells:     cells,
				})
			}
		}
	}

	if slots == nil {
		slots = []*Slot{}
	}
	g.Slots = slots
}

// AcrossSlots returns, in enumeration order, every slot running horizontally.
func (g *Grid) AcrossSlots() []*Slot {
	out := make([]*Slot, 0, g.acrossCount)
	for _, s := range g.Slots {
		if s.Direction == Across {
			out = append(out, s)
		}
	}
	return out
}

// DownSlots returns, in enumeration order, every slot running vertically.
func (g *Grid) DownSlots() []*Slot {
	out := make([]*Slot, 0, g.downCount)
	for _, s := range g.Slots {
		if s.Direction == Down {
			out = append(out, s)
		}
	}
	return out
}
