package configsrc

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the slice of *pgxpool.Pool that Postgres needs, narrowed so
// tests can substitute pgxmock.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresOptions configures a Postgres-backed Source.
type PostgresOptions struct {
	ConnString string
	// Table holds the graph documents, default "dagrs_configs".
	Table string
	// Name selects the row within Table.
	Name string
}

// Postgres fetches a graph document stored as a row in a Postgres
// table.
type Postgres struct {
	pool  DBPool
	table string
	name  string
}

// NewPostgres dials Postgres per opts.
func NewPostgres(ctx context.Context, opts PostgresOptions) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("configsrc: unable to create postgres pool: %w", err)
	}
	return NewPostgresWithPool(pool, opts.Table, opts.Name), nil
}

// NewPostgresWithPool wraps an already-constructed pool (or mock),
// defaulting Table to "dagrs_configs".
func NewPostgresWithPool(pool DBPool, table, name string) *Postgres {
	if table == "" {
		table = "dagrs_configs"
	}
	return &Postgres{pool: pool, table: table, name: name}
}

// InitSchema creates the backing table if it does not already exist.
func (p *Postgres) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			body BYTEA NOT NULL
		);
	`, p.table)
	_, err := p.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("configsrc: failed to create schema: %w", err)
	}
	return nil
}

// Load implements Source.
func (p *Postgres) Load(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE name = $1`, p.table)
	row := p.pool.QueryRow(ctx, query, p.name)

	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("configsrc: postgres load %q: %w", p.name, err)
	}
	return body, nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() { p.pool.Close() }
