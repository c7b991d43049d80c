package dictionary

import (
	"strings"
	"testing"

	"github.com/crossplay/crossfill/internal/boardsize"
)

func build(t *testing.T, words string, backend Backend) *Lookup {
	t.Helper()
	l, err := Build(strings.NewReader(words), backend)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

func TestBuild_AssignsIDsInFileOrder(t *testing.T) {
	l := build(t, "bat\nbar\ncat\ncar\n", BackendMerge)

	for i, want := range []string{"bat", "bar", "cat", "car"} {
		if got := l.Word(boardsize.WordID(i)); got != want {
			t.Errorf("Word(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestBuild_SkipsShortAndOversizeWords(t *testing.T) {
	l := build(t, "a\ncat\nsupercalifragilistic\n", BackendMerge)
	if l.Len(3) != 1 {
		t.Fatalf("Len(3) = %d, want 1 (only 'cat' should survive)", l.Len(3))
	}
}

func TestBuild_SkipsNonAlpha(t *testing.T) {
	l := build(t, "cat\nc4t\nca-t\n", BackendMerge)
	if l.Len(3) != 1 {
		t.Fatalf("Len(3) = %d, want 1", l.Len(3))
	}
}

// Dictionary {bat, bar, cat, car}, L=3: the two literal Lookup
// determinism scenarios.
func TestQuery_Determinism(t *testing.T) {
	for _, backend := range []Backend{BackendMerge, BackendCache} {
		l := build(t, "bat\nbar\ncat\ncar\n", backend)

		got := wordsFor(l, l.Query([]Constraint{{Pos: 0, Letter: 'b'}}, 3))
		want := []string{"bat", "bar"}
		if !equalStrings(got, want) {
			t.Errorf("backend %v: Query({0:'b'}) = %v, want %v", backend, got, want)
		}

		got = wordsFor(l, l.Query([]Constraint{{Pos: 0, Letter: 'b'}, {Pos: 2, Letter: 't'}}, 3))
		want = []string{"bat"}
		if !equalStrings(got, want) {
			t.Errorf("backend %v: Query({0:'b',2:'t'}) = %v, want %v", backend, got, want)
		}
	}
}

func TestQuery_EmptyConstraintsReturnsAllWords(t *testing.T) {
	for _, backend := range []Backend{BackendMerge, BackendCache} {
		l := build(t, "bat\nbar\ncat\ncar\n", backend)
		got := wordsFor(l, l.Query(nil, 3))
		want := []string{"bat", "bar", "cat", "car"}
		if !equalStrings(got, want) {
			t.Errorf("backend %v: Query(nil) = %v, want %v", backend, got, want)
		}
	}
}

func TestQuery_EarlyExitOnEmptyIntersection(t *testing.T) {
	l := build(t, "bat\nbar\ncat\ncar\n", BackendMerge)
	got := l.Query([]Constraint{{Pos: 0, Letter: 'b'}, {Pos: 0, Letter: 'c'}}, 3)
	if len(got) != 0 {
		t.Errorf("Query with contradictory constraints on the same position = %v, want empty", got)
	}
}

func TestQuery_NoMatchesIsEmptyNotError(t *testing.T) {
	for _, backend := range []Backend{BackendMerge, BackendCache} {
		l := build(t, "bat\nbar\n", backend)
		got := l.Query([]Constraint{{Pos: 0, Letter: 'z'}}, 3)
		if len(got) != 0 {
			t.Errorf("backend %v: Query for an absent letter = %v, want empty", backend, got)
		}
	}
}

func TestQuery_AddingConstraintNeverGrowsResult(t *testing.T) {
	l := build(t, "bat\nbar\ncat\ncar\nban\n", BackendMerge)
	base := l.Query([]Constraint{{Pos: 0, Letter: 'b'}}, 3)
	refined := l.Query([]Constraint{{Pos: 0, Letter: 'b'}, {Pos: 2, Letter: 't'}}, 3)
	if len(refined) > len(base) {
		t.Errorf("adding a constraint grew the result: base=%v refined=%v", base, refined)
	}
	for _, id := range refined {
		if !containsID(base, id) {
			t.Errorf("refined result contains id %d not present in the base result", id)
		}
	}
}

func TestQuery_ResultsAreSortedAscendingAndDistinct(t *testing.T) {
	l := build(t, "cat\nbat\nrat\nhat\nmat\n", BackendMerge)
	got := l.Query([]Constraint{{Pos: 2, Letter: 't'}}, 3)
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("result not strictly increasing at index %d: %v", i, got)
		}
	}
}

func wordsFor(l *Lookup, ids []boardsize.WordID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = l.Word(id)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsID(ids []boardsize.WordID, id boardsize.WordID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
