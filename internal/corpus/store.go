// Package corpus stores labeled header samples used to validate matcher
// accuracy, using SQLite for durability across runs.
package corpus

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	interrors "github.com/fleetglass/agentmap/internal/errors"
)

// Sample is one labeled import file: its header row and the mapping a human
// reviewer confirmed as correct.
type Sample struct {
	ID        string
	Name      string
	Headers   []string
	Expected  map[string]string // raw header -> canonical field key
	CreatedAt time.Time
}

// Store provides persistent labeled-sample storage
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a corpus database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, interrors.WrapStorageError("open_corpus",
			fmt.Errorf("create corpus directory: %w", err))
	}

	// WAL mode for better concurrent access
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, interrors.WrapStorageError("open_corpus",
			fmt.Errorf("open corpus database: %w", err))
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		headers TEXT NOT NULL,
		expected TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_samples_name ON samples(name);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return interrors.WrapStorageError("init_corpus_schema", err)
	}
	return nil
}

// Add inserts a labeled sample and returns its generated ID.
func (s *Store) Add(sample Sample) (string, error) {
	if len(sample.Headers) == 0 {
		return "", interrors.WrapStorageError("add_sample",
			fmt.Errorf("sample has no headers: %w", interrors.ErrInvalidInput))
	}

	id := sample.ID
	if id == "" {
		id = uuid.NewString()
	}
	created := sample.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	headers, err := json.Marshal(sample.Headers)
	if err != nil {
		return "", interrors.WrapStorageError("add_sample", err)
	}
	expected, err := json.Marshal(sample.Expected)
	if err != nil {
		return "", interrors.WrapStorageError("add_sample", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO samples (id, name, headers, expected, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, sample.Name, string(headers), string(expected), created.Unix(),
	)
	if err != nil {
		return "", interrors.WrapStorageError("add_sample", err)
	}

	log.Debug().Str("id", id).Str("name", sample.Name).Int("headers", len(sample.Headers)).Msg("Corpus sample added")
	return id, nil
}

// List returns all samples ordered by creation time.
func (s *Store) List() ([]Sample, error) {
	rows, err := s.db.Query(`SELECT id, name, headers, expected, created_at FROM samples ORDER BY created_at, id`)
	if err != nil {
		return nil, interrors.WrapStorageError("list_samples", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sample Sample
		var headers, expected string
		var created int64
		if err := rows.Scan(&sample.ID, &sample.Name, &headers, &expected, &created); err != nil {
			return nil, interrors.WrapStorageError("list_samples", err)
		}
		if err := json.Unmarshal([]byte(headers), &sample.Headers); err != nil {
			return nil, interrors.WrapStorageError("list_samples",
				fmt.Errorf("decode headers for sample %s: %w", sample.ID, err))
		}
		if err := json.Unmarshal([]byte(expected), &sample.Expected); err != nil {
			return nil, interrors.WrapStorageError("list_samples",
				fmt.Errorf("decode expected mapping for sample %s: %w", sample.ID, err))
		}
		sample.CreatedAt = time.Unix(created, 0)
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, interrors.WrapStorageError("list_samples", err)
	}

	return samples, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return interrors.WrapStorageError("close_corpus", err)
	}
	return nil
}
