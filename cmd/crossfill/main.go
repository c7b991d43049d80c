// Command crossfill generates and solves crossword grids with a
// parallel backtracking fill engine.
package main

import (
	"fmt"
	"os"

	"github.com/crossplay/crossfill/cmd/crossfill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
