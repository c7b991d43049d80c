package grid

import "fmt"

// Constraint is one fixed-position letter requirement within a slot:
// "the cell at this 0-based offset into the slot holds this letter".
type Constraint struct {
	Pos    int
	Letter byte
}

// ConstraintsFor scans a slot's cells in order and returns the query
// Lookup needs: one Constraint per already-filled cell. A Blocked cell
// found here is an invariant violation -- no Blocked cell is ever
// interior to a slot -- and is a programmer bug, not a runtime one.
func (g *Grid) ConstraintsFor(slot *Slot) []Constraint {
	var q []Constraint
	for i, idx := range slot.Cells {
		cell := g.Cells[idx]
		if cell.Blocked {
			panic(fmt.Sprintf("grid: blocked cell interior to slot %d at position %d", slot.ID, i))
		}
		if cell.Letter != 0 {
			q = append(q, Constraint{Pos: i, Letter: cell.Letter})
		}
	}
	return q
}

// Fill writes word into slot's cells, one letter per cell. word must be
// lowercase and exactly as long as the slot; a mismatch is a programmer
// bug (candidate words come from Lookup(slot.Len()), so this should never
// fire in correct code). Fill is idempotent when word already matches the
// cells it overwrites.
func (g *Grid) Fill(slot *Slot, word string) {
	if len(word) != slot.Len() {
		panic(fmt.Sprintf("grid: word length %d does not match slot %d length %d", len(word), slot.ID, slot.Len()))
	}
	for i, idx := range slot.Cells {
		g.Cells[idx].Letter = word[i]
	}
}

// Unfill restores slot's cells to the letters they held before the most
// recent Fill, as captured by Snapshot.
func (g *Grid) Unfill(slot *Slot, previous []byte) {
	for i, idx := range slot.Cells {
		g.Cells[idx].Letter = previous[i]
	}
}

// Snapshot captures the current letters along a slot, for a later Unfill.
func (g *Grid) Snapshot(slot *Slot) []byte {
	prev := make([]byte, slot.Len())
	for i, idx := range slot.Cells {
		prev[i] = g.Cells[idx].Letter
	}
	return prev
}

// Letters returns the slot's current contents as a string, with '.' for
// any cell still Open. Used by emitters and by diagnostics.
func (g *Grid) Letters(slot *Slot) string {
	buf := make([]byte, slot.Len())
	for i, idx := range slot.Cells {
		if l := g.Cells[idx].Letter; l != 0 {
			buf[i] = l
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}
