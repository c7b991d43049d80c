package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "crossfill",
	Short: "Parallel backtracking crossword grid filler",
	Long: `crossfill fills a crossword grid's BLOCKED/OPEN topology with words
from a dictionary using a constrained word index and a parallel
backtracking search, and emits completed fillings as ipuz-like JSON.`,
	Version: version,
}

// Execute adds all child commands to the root command and is called
// once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level (0=default output, 1=also print info messages to stderr)")
}

func infof(format string, args ...interface{}) {
	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
