// Package dictionary owns the word list and answers constrained-length
// queries fast enough to drive a backtracking search: millions of
// queries per second against a sorted-ascending word-ID index.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/crossplay/crossfill/internal/boardsize"
)

// Backend selects how a Lookup answers queries. Both share the same
// Go type and the same observable contract (sorted-ascending word-ID
// list); the choice only trades build time and memory for query
// latency, never correctness.
type Backend int

const (
	// BackendMerge intersects per-position posting lists at query time
	// via linear merge. Cheap to build, a little slower per query.
	BackendMerge Backend = iota
	// BackendCache precomputes, at build time, the result for every
	// subset of positions a dictionary word can constrain, so a query
	// becomes a single map lookup. Expensive to build; this is the
	// backend the SQLite build cache (see BuildWithCache) persists.
	BackendCache
)

// Constraint is one fixed-position letter requirement: "position p of
// the word holds letter c". Positions are 0-based into the word.
type Constraint struct {
	Pos    int
	Letter byte
}

// Lookup is the built, immutable constrained word index. Safe for
// concurrent read-only use by any number of goroutines; nothing here
// is ever mutated after Build returns.
type Lookup struct {
	backend Backend

	// words is the dictionary table: index i holds the word with
	// WordID(i). Append-only during Build, read-only after.
	words []string

	// allWords[L] is every word ID of length L, in ascending (file)
	// order -- the answer to an empty-constraint query.
	allWords [][]boardsize.WordID

	// byPos[L][pos][letter] is the posting list for BackendMerge.
	byPos [][]map[byte][]boardsize.WordID

	// subsets[L] maps a length-L pattern string (constrained positions
	// hold their letter, everything else '.') to its word-ID list, for
	// BackendCache.
	subsets []map[string][]boardsize.WordID
}

// Build constructs a Lookup from a dictionary source: whitespace-
// separated tokens, case-folded to lowercase, with tokens outside
// [2, boardsize.Dim] or containing non-letters skipped. IDs are assigned in file order, so
// posting lists and allWords come out naturally sorted ascending.
func Build(r io.Reader, backend Backend) (*Lookup, error) {
	l := &Lookup{
		backend:  backend,
		allWords: make([][]boardsize.WordID, boardsize.MaxSlotLen+1),
		byPos:    make([][]map[byte][]boardsize.WordID, boardsize.MaxSlotLen+1),
		subsets:  make([]map[string][]boardsize.WordID, boardsize.MaxSlotLen+1),
	}
	for length := 2; length <= boardsize.MaxSlotLen; length++ {
		l.byPos[length] = make([]map[byte][]boardsize.WordID, length)
		for p := range l.byPos[length] {
			l.byPos[length][p] = make(map[byte][]boardsize.WordID)
		}
		if backend == BackendCache {
			l.subsets[length] = make(map[string][]boardsize.WordID)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := strings.ToLower(scanner.Text())
		if word == "" {
			continue
		}
		if len(word) < 2 || len(word) > boardsize.MaxSlotLen {
			continue
		}
		if !isAlpha(word) {
			continue
		}

		id := boardsize.WordID(len(l.words))
		if int(id) != len(l.words) {
			return nil, fmt.Errorf("dictionary: word count %d overflows WordID", len(l.words)+1)
		}
		l.words = append(l.words, word)

		L := len(word)
		l.allWords[L] = append(l.allWords[L], id)
		for p := 0; p < L; p++ {
			letter := word[p]
			l.byPos[L][p][letter] = append(l.byPos[L][p][letter], id)
		}
		if backend == BackendCache {
			addSubsets(l.subsets[L], word, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: reading source: %w", err)
	}

	return l, nil
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// addSubsets enumerates every non-empty subset of word's positions and
// records id under the pattern key for that subset, for BackendCache.
func addSubsets(subsets map[string][]boardsize.WordID, word string, id boardsize.WordID) {
	L := len(word)
	for mask := 1; mask < (1 << uint(L)); mask++ {
		pattern := make([]byte, L)
		for p := 0; p < L; p++ {
			if mask&(1<<uint(p)) != 0 {
				pattern[p] = word[p]
			} else {
				pattern[p] = '.'
			}
		}
		key := string(pattern)
		subsets[key] = append(subsets[key], id)
	}
}

// Word returns the dictionary word for id. Panics if id is out of
// range, a programmer bug: every id a Lookup hands out came from its
// own table.
func (l *Lookup) Word(id boardsize.WordID) string {
	return l.words[id]
}

// Backend reports which query strategy this Lookup was built with.
func (l *Lookup) Backend() Backend { return l.backend }

// Len returns the number of words of length L known to the dictionary,
// prior to any constraint filtering.
func (l *Lookup) Len(length int) int {
	if length < 0 || length >= len(l.allWords) {
		return 0
	}
	return len(l.allWords[length])
}
