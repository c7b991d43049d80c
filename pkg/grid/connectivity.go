package grid

import "github.com/crossplay/crossfill/internal/boardsize"

// Connected reports whether every non-Blocked cell is reachable from
// every other by a chain of horizontal/vertical open-cell steps. Used
// by the blocked-pattern validator: a disconnected board can never be
// filled as a single crossword.
func (g *Grid) Connected() bool {
	D := boardsize.Dim

	start := -1
	total := 0
	for i, c := range g.Cells {
		if !c.Blocked {
			total++
			if start == -1 {
				start = i
			}
		}
	}
	if total == 0 {
		return true
	}

	visited := make([]bool, len(g.Cells))
	queue := make([]int, 0, total)
	queue = append(queue, start)
	visited[start] = true
	reached := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		row, col := rowCol(boardsize.CellIndex(cur))

		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := row+d[0], col+d[1]
			if nr < 0 || nr >= D || nc < 0 || nc >= D {
				continue
			}
			n := int(index(nr, nc))
			if visited[n] || g.Cells[n].Blocked {
				continue
			}
			visited[n] = true
			reached++
			queue = append(queue, n)
		}
	}

	return reached == total
}
