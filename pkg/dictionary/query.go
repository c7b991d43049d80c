package dictionary

import (
	"sort"

	"github.com/crossplay/crossfill/internal/boardsize"
)

// Query returns the sorted-ascending, duplicate-free list of word IDs
// of the given length that satisfy every constraint. An empty
// constraints list returns every word of that length. No-failure
// semantics: an unsatisfiable query returns an empty (nil) slice, never
// an error.
func (l *Lookup) Query(constraints []Constraint, length int) []boardsize.WordID {
	if length < 0 || length >= len(l.allWords) {
		return nil
	}
	if len(constraints) == 0 {
		return l.allWords[length]
	}

	switch l.backend {
	case BackendCache:
		return l.queryCache(constraints, length)
	default:
		return l.queryMerge(constraints, length)
	}
}

func (l *Lookup) queryCache(constraints []Constraint, length int) []boardsize.WordID {
	pattern := make([]byte, length)
	for i := range pattern {
		pattern[i] = '.'
	}
	for _, c := range constraints {
		if c.Pos < 0 || c.Pos >= length {
			return nil
		}
		if pattern[c.Pos] != '.' && pattern[c.Pos] != c.Letter {
			return nil
		}
		pattern[c.Pos] = c.Letter
	}
	return l.subsets[length][string(pattern)]
}

func (l *Lookup) queryMerge(constraints []Constraint, length int) []boardsize.WordID {
	ordered := make([]Constraint, len(constraints))
	copy(ordered, constraints)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Pos < ordered[j].Pos })

	var result []boardsize.WordID
	for i, c := range ordered {
		if c.Pos < 0 || c.Pos >= length {
			return nil
		}
		posting := l.byPos[length][c.Pos][c.Letter]
		if i == 0 {
			result = append(result, posting...)
			continue
		}
		result = intersect(result, posting)
		if len(result) == 0 {
			return nil
		}
	}
	return result
}

// intersect merges two sorted-ascending, duplicate-free ID lists,
// compacting the result in place into a's backing array since a is an
// owned scratch buffer (a fresh copy or a prior intersection's output,
// never a posting list shared with the Lookup itself).
func intersect(a, b []boardsize.WordID) []boardsize.WordID {
	i, j, n := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			a[n] = a[i]
			n++
			i++
			j++
		}
	}
	return a[:n]
}
