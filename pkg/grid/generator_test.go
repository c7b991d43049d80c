package grid

import "testing"

func TestGenerateBlockedPattern_ProducesConnectedSymmetricGrid(t *testing.T) {
	g, err := GenerateBlockedPattern(GeneratorConfig{Difficulty: Medium, Seed: 42})
	if err != nil {
		t.Fatalf("GenerateBlockedPattern: %v", err)
	}

	if !g.Connected() {
		t.Error("generated grid is not connected")
	}
	if !g.IsSymmetric() {
		t.Error("generated grid is not symmetric")
	}
	if g.Slots == nil {
		t.Error("generated grid has nil Slots; EnumerateSlots should have run")
	}
}

func TestGenerateBlockedPattern_Deterministic(t *testing.T) {
	g1, err := GenerateBlockedPattern(GeneratorConfig{Difficulty: Hard, Seed: 7})
	if err != nil {
		t.Fatalf("GenerateBlockedPattern: %v", err)
	}
	g2, err := GenerateBlockedPattern(GeneratorConfig{Difficulty: Hard, Seed: 7})
	if err != nil {
		t.Fatalf("GenerateBlockedPattern: %v", err)
	}

	for i := range g1.Cells {
		if g1.Cells[i].Blocked != g2.Cells[i].Blocked {
			t.Fatalf("cell %d: blocked pattern differs between two runs with the same seed", i)
		}
	}
}

func TestDifficulty_Density(t *testing.T) {
	if Easy.density() <= Medium.density() {
		t.Error("Easy should produce a higher blocked-cell density than Medium")
	}
	if Medium.density() <= Hard.density() {
		t.Error("Medium should produce a higher blocked-cell density than Hard")
	}
}
