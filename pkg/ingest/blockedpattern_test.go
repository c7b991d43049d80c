package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/crossplay/crossfill/internal/boardsize"
	"github.com/crossplay/crossfill/pkg/grid"
)

func TestLoadBlockedPattern_ValidConfig(t *testing.T) {
	cfg := fmt.Sprintf(`{"rows": %d, "cols": %d, "blocked": [[0,0],[1,1]]}`, boardsize.Dim, boardsize.Dim)
	p, err := LoadBlockedPattern(strings.NewReader(cfg))
	if err != nil {
		t.Fatalf("LoadBlockedPattern: %v", err)
	}
	if len(p.Blocked) != 2 {
		t.Fatalf("len(Blocked) = %d, want 2", len(p.Blocked))
	}
}

func TestLoadBlockedPattern_DimensionMismatch(t *testing.T) {
	cfg := `{"rows": 3, "cols": 3, "blocked": []}`
	if _, err := LoadBlockedPattern(strings.NewReader(cfg)); err == nil {
		t.Error("expected an error for a config whose dimensions don't match the compiled board size")
	}
}

func TestLoadBlockedPattern_OutOfRangeCoordinate(t *testing.T) {
	cfg := fmt.Sprintf(`{"rows": %d, "cols": %d, "blocked": [[99,99]]}`, boardsize.Dim, boardsize.Dim)
	if _, err := LoadBlockedPattern(strings.NewReader(cfg)); err == nil {
		t.Error("expected an error for an out-of-range blocked coordinate")
	}
}

func TestBlockedPattern_ApplyTo(t *testing.T) {
	cfg := fmt.Sprintf(`{"rows": %d, "cols": %d, "blocked": [[0,0]]}`, boardsize.Dim, boardsize.Dim)
	p, err := LoadBlockedPattern(strings.NewReader(cfg))
	if err != nil {
		t.Fatalf("LoadBlockedPattern: %v", err)
	}

	g := grid.NewGrid()
	if err := p.ApplyTo(g); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if !g.Cells[0].Blocked {
		t.Error("ApplyTo did not block (0,0)")
	}
}

func TestCanonicalSymmetricPattern_RoundTrips(t *testing.T) {
	p, err := CanonicalSymmetricPattern(grid.Medium, 3)
	if err != nil {
		t.Fatalf("CanonicalSymmetricPattern: %v", err)
	}
	if p.Rows != boardsize.Dim || p.Cols != boardsize.Dim {
		t.Fatalf("pattern dims = %dx%d, want %dx%d", p.Rows, p.Cols, boardsize.Dim, boardsize.Dim)
	}

	g := grid.NewGrid()
	if err := p.ApplyTo(g); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	g.EnumerateSlots()
	if !g.Connected() {
		t.Error("round-tripped canonical pattern is no longer connected")
	}
	if !g.IsSymmetric() {
		t.Error("round-tripped canonical pattern is no longer symmetric")
	}
}
