package grid

import (
	"math/rand"

	"github.com/crossplay/crossfill/internal/boardsize"
)

// seedBlocked scatters Blocked cells at the given density into the
// grid's top half (rows up to and including the middle row, every
// column); EnforceSymmetry mirrors them afterward. Used
// only by GenerateBlockedPattern, never by the solver itself.
func seedBlocked(g *Grid, r *rand.Rand, density float64) {
	D := boardsize.Dim
	target := int(float64(D*D) * density / 2)
	quadRows := (D + 1) / 2

	placed := 0
	attempts := 0
	for placed < target && attempts < target*50+100 {
		attempts++
		row := r.Intn(quadRows)
		col := r.Intn(D)
		idx := index(row, col)
		if g.Cells[idx].Blocked {
			continue
		}
		g.Cells[idx].Blocked = true
		placed++
	}
}
