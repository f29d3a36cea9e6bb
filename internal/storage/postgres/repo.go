// Package postgres implements a Postgres repository using pgx v5. Postgres DDL
// is transactional: every CREATE TABLE issued through a Tx disappears on
// rollback.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schemaboot/internal/storage"
	pgddl "schemaboot/internal/storage/postgres/ddl"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	close := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, close, nil
}

// Begin starts a transaction on a pooled connection.
func (r *Repository) Begin(ctx context.Context) (storage.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Ping verifies a pooled connection can reach the server.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// relkinds names pg_class.relkind values for error messages.
var relkinds = map[string]string{
	"r": "table",
	"p": "partitioned table",
	"v": "view",
	"m": "materialized view",
	"i": "index",
	"I": "partitioned index",
	"S": "sequence",
	"f": "foreign table",
	"c": "composite type",
	"t": "TOAST table",
}

// Tx is a storage.Tx over a pgx transaction.
type Tx struct {
	tx pgx.Tx
}

var _ storage.Tx = (*Tx)(nil)

// Probe resolves fqn the same way an unqualified CREATE TABLE would, through
// the session search_path, and reports the relation kind that holds it.
func (t *Tx) Probe(ctx context.Context, fqn string) (storage.Object, error) {
	const q = `SELECT c.relkind::text FROM pg_catalog.pg_class c WHERE c.oid = to_regclass($1)`

	var kind string
	err := t.tx.QueryRow(ctx, q, pgddl.QuoteFQN(fqn)).Scan(&kind)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return storage.Object{Kind: storage.ObjectNone}, nil
	case err != nil:
		return storage.Object{}, fmt.Errorf("postgres: probe %s: %w", fqn, err)
	}

	name, ok := relkinds[kind]
	if !ok {
		name = kind
	}
	if kind == "r" || kind == "p" {
		return storage.Object{Kind: storage.ObjectTable, Type: name}, nil
	}
	return storage.Object{Kind: storage.ObjectOther, Type: name}, nil
}

// Exec executes a single DDL statement inside the transaction.
func (t *Tx) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("postgres: Exec: empty SQL")
	}
	if _, err := t.tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Rollback aborts the transaction; calling it after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("postgres: rollback: %w", err)
	}
	return nil
}
