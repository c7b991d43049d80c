// Package search runs the per-worker depth-first backtracking fill:
// an explicit frame stack (not recursion), a randomized traversal
// order fixed for the worker's lifetime, and a randomized per-step
// candidate offset, all driven by one private *rand.Rand per worker.
package search

import (
	"math/rand"

	"github.com/crossplay/crossfill/pkg/grid"
)

// BuildOrder forms a worker's slot traversal order: shuffle the across
// slots and the down slots independently, then interleave them,
// alternating directions with a fair coin choosing which leads. The
// result is fixed for the worker's entire run.
func BuildOrder(across, down []*grid.Slot, rng *rand.Rand) []*grid.Slot {
	a := append([]*grid.Slot(nil), across...)
	d := append([]*grid.Slot(nil), down...)
	rng.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
	rng.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })

	first, second := a, d
	if rng.Intn(2) == 1 {
		first, second = d, a
	}

	order := make([]*grid.Slot, 0, len(a)+len(d))
	for i := 0; i < len(first) || i < len(second); i++ {
		if i < len(first) {
			order = append(order, first[i])
		}
		if i < len(second) {
			order = append(order, second[i])
		}
	}
	return order
}
