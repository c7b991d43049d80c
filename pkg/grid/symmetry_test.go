package grid

import (
	"testing"

	"github.com/crossplay/crossfill/internal/boardsize"
)

func TestEnforceSymmetry_MirrorsBlockedCells(t *testing.T) {
	g := NewGrid()
	if err := g.Block(0, 0); err != nil {
		t.Fatal(err)
	}
	g.EnforceSymmetry()

	last := boardsize.Dim - 1
	if !g.Cells[index(last, last)].Blocked {
		t.Error("EnforceSymmetry did not mirror (0,0) to its rotational counterpart")
	}
}

func TestIsSymmetric(t *testing.T) {
	g := NewGrid()
	if !g.IsSymmetric() {
		t.Error("IsSymmetric() = false on an all-open board")
	}

	if err := g.Block(0, 0); err != nil {
		t.Fatal(err)
	}
	if g.IsSymmetric() {
		t.Error("IsSymmetric() = true after a one-sided block")
	}

	g.EnforceSymmetry()
	if !g.IsSymmetric() {
		t.Error("IsSymmetric() = false after EnforceSymmetry")
	}
}
