package ingest

import (
	"fmt"
	"os"
)

// OpenDictionaryFile opens a dictionary file for pkg/dictionary.Build
// to read, wrapping the error with context the way a config error
// should be reported at startup: before any worker has spawned.
func OpenDictionaryFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening dictionary file %s: %w", path, err)
	}
	return f, nil
}
