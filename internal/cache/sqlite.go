package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/pdf-extract/internal/common"
)

// SQLite is a persistent cache backend. I/O failures surface as errors and
// corrupted rows surface as ErrCacheIntegrity; neither is ever reported as a
// plain miss.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

const sqliteDDL = `
CREATE TABLE IF NOT EXISTS extraction_cache (
	cache_key     TEXT PRIMARY KEY,
	result_json   TEXT NOT NULL,
	metadata_json TEXT NOT NULL,
	created_at    TEXT NOT NULL
);`

// OpenSQLite opens (creating if needed) a cache database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	// modernc sqlite is single-writer; serialize access through one conn.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	logger.Info("cache.sqlite.open", "path", path)
	return &SQLite{db: db, logger: logger}, nil
}

func (s *SQLite) Lookup(ctx context.Context, key string) (*Entry, error) {
	var resultJSON, metadataJSON string
	row := s.db.QueryRowContext(ctx,
		`SELECT result_json, metadata_json FROM extraction_cache WHERE cache_key = ?`, key)
	if err := row.Scan(&resultJSON, &metadataJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(resultJSON), &e.Result); err != nil {
		return nil, fmt.Errorf("decode cached result for %s: %v: %w", key, err, common.ErrCacheIntegrity)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &e.Metadata); err != nil {
		return nil, fmt.Errorf("decode cached metadata for %s: %v: %w", key, err, common.ErrCacheIntegrity)
	}
	return &e, nil
}

func (s *SQLite) Store(ctx context.Context, key string, e Entry) error {
	resultJSON, err := json.Marshal(e.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	metadataJSON, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extraction_cache (cache_key, result_json, metadata_json, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
			result_json = excluded.result_json,
			metadata_json = excluded.metadata_json,
			created_at = excluded.created_at`,
		key, string(resultJSON), string(metadataJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
