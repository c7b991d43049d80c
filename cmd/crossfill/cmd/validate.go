package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crossplay/crossfill/internal/boardsize"
	"github.com/crossplay/crossfill/pkg/grid"
	"github.com/crossplay/crossfill/pkg/ingest"
)

var validateBlocked string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a blocked-pattern config for a fillable topology",
	Long: `validate loads a blocked-pattern JSON config and reports whether its
topology is usable: dimensions matching this binary's compiled-in
board size, full connectivity, and 180-degree rotational symmetry.
Asymmetry is reported but is not itself fatal -- only disconnection
guarantees no crossword can ever be completed.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateBlocked, "blocked", "", "path to a blocked-pattern JSON config (required)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateBlocked == "" {
		return fmt.Errorf("validate: --blocked is required")
	}

	f, err := os.Open(validateBlocked)
	if err != nil {
		return fmt.Errorf("validate: opening %s: %w", validateBlocked, err)
	}
	defer f.Close()

	pattern, err := ingest.LoadBlockedPattern(f)
	if err != nil {
		return err
	}

	g := grid.NewGrid()
	if err := pattern.ApplyTo(g); err != nil {
		return err
	}

	fmt.Printf("validate: %dx%d board, %d blocked cells\n", boardsize.Dim, boardsize.Dim, len(pattern.Blocked))

	connected := g.Connected()
	symmetric := g.IsSymmetric()

	fmt.Printf("validate: connected = %v\n", connected)
	fmt.Printf("validate: symmetric = %v\n", symmetric)

	if !connected {
		return fmt.Errorf("validate: board is disconnected, no crossword fill can ever cover it")
	}

	g.EnumerateSlots()
	fmt.Printf("validate: %d across slots, %d down slots\n", len(g.AcrossSlots()), len(g.DownSlots()))
	return nil
}
