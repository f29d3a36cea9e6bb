// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql and the pure-Go modernc.org/sqlite driver. SQLite DDL is
// transactional, so a failed bootstrap leaves no table behind.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"schemaboot/internal/storage"
	sqliteddl "schemaboot/internal/storage/sqlite/ddl"

	_ "modernc.org/sqlite"
)

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
//
// DSN is passed directly to database/sql; for example:
//
//	"file:app.db?cache=shared"
//	"app.db"
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One writer at a time; also keeps PRAGMAs on the connection in use.
	db.SetMaxOpenConns(1)

	// Fail fast on invalid DSNs.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// Begin starts a transaction. DDL issued through the returned Tx is rolled
// back unless Commit succeeds.
func (r *Repository) Begin(ctx context.Context) (storage.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Ping verifies the database is still reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// Tx is a storage.Tx over a database/sql transaction.
type Tx struct {
	tx *sql.Tx
}

var _ storage.Tx = (*Tx)(nil)

// Probe looks the name up in the schema's sqlite_master. SQLite matches
// identifiers case-insensitively, so "User" and "user" collide.
func (t *Tx) Probe(ctx context.Context, fqn string) (storage.Object, error) {
	ns, name := storage.SplitFQN(fqn)
	master := "sqlite_master"
	if ns != "" {
		master = sqliteddl.QuoteFQN(ns) + ".sqlite_master"
	}
	q := fmt.Sprintf(
		"SELECT type FROM %s WHERE type IN ('table', 'view', 'index') AND lower(name) = lower(?) ORDER BY type = 'table' DESC LIMIT 1",
		master,
	)

	var typ string
	err := t.tx.QueryRowContext(ctx, q, name).Scan(&typ)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return storage.Object{Kind: storage.ObjectNone}, nil
	case err != nil:
		return storage.Object{}, fmt.Errorf("sqlite: probe %s: %w", fqn, err)
	case typ == "table":
		return storage.Object{Kind: storage.ObjectTable, Type: typ}, nil
	default:
		return storage.Object{Kind: storage.ObjectOther, Type: typ}, nil
	}
}

// Exec executes a single SQL statement (typically DDL) inside the transaction.
func (t *Tx) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("sqlite: Exec: empty SQL")
	}
	if _, err := t.tx.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Rollback aborts the transaction; calling it after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("sqlite: rollback: %w", err)
	}
	return nil
}
