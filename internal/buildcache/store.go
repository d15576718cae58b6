// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package buildcache tracks source file modification times between builds
// so unchanged manuscripts are not re-typeset. The cache lives in a SQLite
// database under the build directory and is safe to delete at any time; the
// next build simply runs from scratch.
package buildcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	cacheDir = "cache"
	dbFile   = "book.db"
)

// Store manages the build cache database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the build cache at buildDir/cache/book.db.
func NewStore(buildDir string) (*Store, error) {
	dir := filepath.Join(buildDir, cacheDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening build cache: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sources (
		target TEXT NOT NULL,
		path TEXT NOT NULL,
		mod_time TEXT NOT NULL,
		PRIMARY KEY (target, path)
	)`)
	return err
}

// Fresh reports whether every path is recorded for target with an unchanged
// modification time. A path that cannot be stat'ed counts as stale; the
// build that follows will surface the real error.
func (s *Store) Fresh(ctx context.Context, target string, paths []string) (bool, error) {
	if len(paths) == 0 {
		return false, nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return false, nil
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var recorded string
		err = s.db.QueryRowContext(ctx,
			`SELECT mod_time FROM sources WHERE target = ? AND path = ?`, target, path,
		).Scan(&recorded)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("querying build cache for %s: %w", path, err)
		}
		if recorded != modTime {
			return false, nil
		}
	}
	return true, nil
}

// Record replaces the cache entries for target with the current
// modification times of paths. Call it after a successful build.
func (s *Store) Record(ctx context.Context, target string, paths []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE target = ?`, target); err != nil {
		return fmt.Errorf("clearing build cache for %s: %w", target, err)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sources (target, path, mod_time) VALUES (?, ?, ?)`, target, path, modTime,
		); err != nil {
			return fmt.Errorf("recording %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing build cache: %w", err)
	}
	return nil
}
