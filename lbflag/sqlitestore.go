package lbflag

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS flags (
	name TEXT PRIMARY KEY,
	set_at DATETIME NOT NULL
);
`

// SQLiteStore persists flags in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens or creates the SQLite database at path and makes
// sure that its schema is present.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create the flag state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flag state database \"%s\": %w", path, err)
	}

	// Invocations never overlap, so one connection is plenty.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize flag state schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the persisted flag set.
func (s *SQLiteStore) Load(ctx context.Context) (Set, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM flags ORDER BY name")
	if err != nil {
		return Set{}, fmt.Errorf("failed to query flags: %w", err)
	}
	defer rows.Close()

	set := NewSet()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return Set{}, fmt.Errorf("failed to scan flag: %w", err)
		}
		f := Flag(name)
		if err := f.Validate(); err != nil {
			return Set{}, fmt.Errorf("flag state contains an invalid flag: %w", err)
		}
		if IsExternal(f) {
			continue
		}
		set.Add(f)
	}
	if err := rows.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read flags: %w", err)
	}

	return set, nil
}

// Save persists flags. Flags that are already stored keep their original
// timestamp. Stored flags missing from the given set are left in place, as
// flags are never unset by a save.
func (s *SQLiteStore) Save(ctx context.Context, flags Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin flag transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, f := range persistable(flags) {
		if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO flags (name, set_at) VALUES (?, ?)", string(f), now); err != nil {
			return fmt.Errorf("failed to save the \"%s\" flag: %w", f, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flags: %w", err)
	}
	return nil
}

// Reset removes the given flags, or every flag if none are given.
func (s *SQLiteStore) Reset(ctx context.Context, flags ...Flag) error {
	if len(flags) == 0 {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM flags"); err != nil {
			return fmt.Errorf("failed to reset flags: %w", err)
		}
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(flags)), ", ")
	args := make([]any, len(flags))
	for i, f := range flags {
		args[i] = string(f)
	}
	query := fmt.Sprintf("DELETE FROM flags WHERE name IN (%s)", placeholders)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to reset flags %s: %w", FlagList(flags), err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
