package dictionary

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/crossplay/crossfill/internal/boardsize"
)

// BuildWithCache builds a BackendCache Lookup for the dictionary at
// dictPath, consulting a SQLite database at cachePath first. Building
// the full position-subset cache is the expensive path (§4.1a) -- it's
// the one worth persisting across process restarts on the same
// dictionary file. A cache miss builds normally and writes the result
// back; a cache hit skips the build entirely. The cache key is the
// dictionary's content hash plus the compiled-in board dimension, so a
// binary built with a different boardsize never reads a stale entry.
func BuildWithCache(dictPath, cachePath string) (*Lookup, error) {
	f, err := os.Open(dictPath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: opening %s: %w", dictPath, err)
	}
	defer f.Close()

	hash, err := contentHash(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary: hashing %s: %w", dictPath, err)
	}

	db, err := openCacheDB(cachePath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: opening cache %s: %w", cachePath, err)
	}
	defer db.Close()

	if l, ok, err := loadCached(db, hash); err != nil {
		return nil, err
	} else if ok {
		return l, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("dictionary: rewinding %s: %w", dictPath, err)
	}
	l, err := Build(f, BackendCache)
	if err != nil {
		return nil, err
	}

	if err := storeCached(db, hash, l); err != nil {
		return nil, fmt.Errorf("dictionary: writing cache entry: %w", err)
	}
	return l, nil
}

func contentHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func openCacheDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS lookup_cache (
	content_hash TEXT NOT NULL,
	dim INTEGER NOT NULL,
	payload BLOB NOT NULL,
	PRIMARY KEY (content_hash, dim)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// serializedLookup is the gob-encoded payload stored per cache row:
// the word table plus the subset index, everything needed to
// reconstruct a BackendCache Lookup without re-reading the dictionary.
type serializedLookup struct {
	Words   []string
	Subsets []map[string][]boardsize.WordID
}

func loadCached(db *sql.DB, hash string) (*Lookup, bool, error) {
	var payload []byte
	err := db.QueryRow(
		`SELECT payload FROM lookup_cache WHERE content_hash = ? AND dim = ?`,
		hash, boardsize.Dim,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var s serializedLookup
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&s); err != nil {
		return nil, false, fmt.Errorf("dictionary: decoding cached payload: %w", err)
	}

	l := &Lookup{
		backend:  BackendCache,
		words:    s.Words,
		allWords: make([][]boardsize.WordID, boardsize.MaxSlotLen+1),
		byPos:    make([][]map[byte][]boardsize.WordID, boardsize.MaxSlotLen+1),
		subsets:  s.Subsets,
	}
	for id, word := range l.words {
		L := len(word)
		if L < 2 || L > boardsize.MaxSlotLen {
			continue
		}
		l.allWords[L] = append(l.allWords[L], boardsize.WordID(id))
	}
	return l, true, nil
}

func storeCached(db *sql.DB, hash string, l *Lookup) error {
	s := serializedLookup{Words: l.words, Subsets: l.subsets}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&s); err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	_, err := db.Exec(
		`INSERT OR REPLACE INTO lookup_cache (content_hash, dim, payload) VALUES (?, ?, ?)`,
		hash, boardsize.Dim, buf.Bytes(),
	)
	return err
}
