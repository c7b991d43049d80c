package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/crossplay/crossfill/internal/boardsize"
	"github.com/crossplay/crossfill/pkg/grid"
)

func filledGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.NewGrid()
	g.EnumerateSlots()
	for _, s := range g.Slots {
		word := make([]byte, s.Len())
		for i := range word {
			word[i] = 'a' + byte((s.ID+i)%26)
		}
		g.Fill(s, string(word))
	}
	return g
}

func TestBuildPuzzle_Shape(t *testing.T) {
	g := filledGrid(t)
	p := BuildPuzzle(g)

	if p.Version != "http://ipuz.org/v2" {
		t.Errorf("Version = %q, want the ipuz v2 URL", p.Version)
	}
	if p.Kind != "http://ipuz.org/crofileword" {
		t.Errorf("Kind = %q, want the crossword kind URL", p.Kind)
	}
	if p.Dimensions.Width != boardsize.Dim || p.Dimensions.Height != boardsize.Dim {
		t.Errorf("Dimensions = %+v, want %dx%d", p.Dimensions, boardsize.Dim, boardsize.Dim)
	}
	if len(p.Puzzle) != boardsize.Dim || len(p.Solution) != boardsize.Dim {
		t.Fatalf("puzzle/solution row counts = %d/%d, want %d", len(p.Puzzle), len(p.Solution), boardsize.Dim)
	}
	if len(p.Clues.Across) == 0 || len(p.Clues.Down) == 0 {
		t.Error("expected both Across and Down clues on a fully-open board")
	}
}

func TestBuildPuzzle_StartingCellCarriesSlotID(t *testing.T) {
	g := filledGrid(t)
	p := BuildPuzzle(g)

	topLeft := p.Puzzle[0][0]
	if id, ok := topLeft.(int); !ok || id == 0 {
		t.Errorf("top-left cell = %v, want a nonzero slot ID", topLeft)
	}
}

func TestBuildPuzzle_BlockedCellIsHash(t *testing.T) {
	g := grid.NewGrid()
	if err := g.Block(boardsize.Dim-1, boardsize.Dim-1); err != nil {
		t.Fatal(err)
	}
	g.EnumerateSlots()
	for _, s := range g.Slots {
		word := make([]byte, s.Len())
		for i := range word {
			word[i] = 'a'
		}
		g.Fill(s, string(word))
	}

	p := BuildPuzzle(g)
	last := boardsize.Dim - 1
	if p.Puzzle[last][last] != "#" || p.Solution[last][last] != "#" {
		t.Errorf("blocked cell = puzzle:%v solution:%v, want both \"#\"", p.Puzzle[last][last], p.Solution[last][last])
	}
}

func TestFileSink_WritesValidJSON(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Dir: dir}
	g := filledGrid(t)

	if err := sink.Write(g, 42); err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(dir, "solution-000042.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading emitted file: %v", err)
	}
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("emitted file is not valid JSON for Puzzle: %v", err)
	}
}
