package configsrc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteOptions configures a SQLite-backed Source.
type SQLiteOptions struct {
	Path string
	// Table holds the graph documents, default "dagrs_configs".
	Table string
	// Name selects the row within Table.
	Name string
}

// SQLite fetches a graph document stored as a row in a local SQLite
// database.
type SQLite struct {
	db    *sql.DB
	table string
	name  string
}

// NewSQLite opens (creating if necessary) the database at opts.Path and
// ensures the backing table exists.
func NewSQLite(opts SQLiteOptions) (*SQLite, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("configsrc: unable to open sqlite database: %w", err)
	}

	table := opts.Table
	if table == "" {
		table = "dagrs_configs"
	}
	s := &SQLite{db: db, table: table, name: opts.Name}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			body BLOB NOT NULL
		);
	`, s.table)
	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("configsrc: failed to create schema: %w", err)
	}
	return nil
}

// Load implements Source.
func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE name = ?`, s.table)
	row := s.db.QueryRowContext(ctx, query, s.name)

	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("configsrc: sqlite load %q: %w", s.name, err)
	}
	return body, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
