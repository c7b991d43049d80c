package grid

import "github.com/crossplay/crossfill/internal/boardsize"

// EnforceSymmetry mirrors every Blocked cell to its 180-degree rotational
// counterpart, the convention standard crosswords follow. Used only by
// the pattern generator (generator.go); a blocked pattern loaded from config is
// never silently altered.
func (g *Grid) EnforceSymmetry() {
	D := boardsize.Dim
	for row := 0; row < D; row++ {
		for col := 0; col < D; col++ {
			if g.Cells[index(row, col)].Blocked {
				g.Cells[index(D-1-row, D-1-col)].Blocked = true
			}
		}
	}
}

// IsSymmetric reports whether every Blocked cell's rotational counterpart
// is also Blocked.
func (g *Grid) IsSymmetric() bool {
	D := boardsize.Dim
	for row := 0; row < D; row++ {
		for col := 0; col < D; col++ {
			if g.Cells[index(row, col)].Blocked != g.Cells[index(D-1-row, D-1-col)].Blocked {
				return false
			}
		}
	}
	return true
}
