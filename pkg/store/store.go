// Package store is the optional durable solution sink: a Postgres
// table of finished fillings, never search state, used only when a
// DATABASE_URL is configured.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/crossplay/crossfill/pkg/emit"
	"github.com/crossplay/crossfill/pkg/grid"
)

// Store persists completed solutions to Postgres.
type Store struct {
	db *sql.DB
}

// New opens a connection pool against postgresURL, tuned the way the
// donor's internal/db.New tunes its own Postgres pool, and verifies
// connectivity before returning.
func New(postgresURL string) (*Store, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("store: connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pinging postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// InitSchema creates the solutions table if it does not already exist.
func (s *Store) InitSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS solutions (
	id BIGSERIAL PRIMARY KEY,
	run_id VARCHAR(36) NOT NULL,
	sequence BIGINT NOT NULL,
	puzzle JSONB NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_solutions_run_id ON solutions(run_id);
`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RunSink is a pool.Sink bound to one run ID, so every solution it
// writes is attributable to the cmd/crossfill invocation that produced
// it.
type RunSink struct {
	Store *Store
	RunID string
}

func (rs RunSink) Write(g *grid.Grid, seq uint64) error {
	payload, err := json.Marshal(emit.BuildPuzzle(g))
	if err != nil {
		return fmt.Errorf("store: marshaling solution %d: %w", seq, err)
	}
	_, err = rs.Store.db.ExecContext(context.Background(),
		`INSERT INTO solutions (run_id, sequence, puzzle) VALUES ($1, $2, $3)`,
		rs.RunID, seq, payload,
	)
	if err != nil {
		return fmt.Errorf("store: inserting solution %d: %w", seq, err)
	}
	return nil
}

// ListByRun returns every solution recorded for runID, in insertion
// order, as raw ipuz-JSON payloads.
func (s *Store) ListByRun(runID string) ([][]byte, error) {
	rows, err := s.db.Query(
		`SELECT puzzle FROM solutions WHERE run_id = $1 ORDER BY sequence ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: listing solutions for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("store: scanning solution row: %w", err)
		}
		out = append(out, payload)
	}
	return out, rows.Err()
}
