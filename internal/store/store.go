package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/sculpt/value"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for named documents.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Load reads the document called name. A missing document returns
// (nil, 0, nil): absent, not an error, so accessor edits can skip it.
func (s *Store) Load(ctx context.Context, name string) (value.Value, int64, error) {
	var body string
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT body, version FROM documents WHERE name = ?`, name,
	).Scan(&body, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load document %q: %w", name, err)
	}

	v, err := value.FromJSON([]byte(body))
	if err != nil {
		return nil, 0, fmt.Errorf("decode document %q: %w", name, err)
	}
	return v, version, nil
}

// Save writes the document called name, creating it if needed and
// bumping its version otherwise.
func (s *Store) Save(ctx context.Context, name string, v value.Value) error {
	body, err := value.MarshalCanonical(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			version = documents.version + 1,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		name, string(body),
	)
	if err != nil {
		return fmt.Errorf("save document %q: %w", name, err)
	}
	return nil
}

// Delete removes the document called name. Deleting a missing document
// is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete document %q: %w", name, err)
	}
	return nil
}

// Names returns all document names in lexical order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
