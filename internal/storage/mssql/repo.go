// Package mssql implements a Microsoft SQL Server repository using
// database/sql and go-mssqldb. SQL Server DDL is transactional, so CREATE
// TABLE statements issued through a Tx are undone by Rollback.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"schemaboot/internal/storage"
	mssqlddl "schemaboot/internal/storage/mssql/ddl"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN string
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, close, nil
}

func (r *Repository) Begin(ctx context.Context) (storage.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mssql: begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("mssql: ping: %w", err)
	}
	return nil
}

// objectTypes names sys.objects.type codes for error messages.
var objectTypes = map[string]string{
	"U":  "table",
	"V":  "view",
	"P":  "stored procedure",
	"FN": "scalar function",
	"IF": "inline table function",
	"TF": "table function",
	"SN": "synonym",
	"SO": "sequence",
	"PK": "primary key constraint",
	"UQ": "unique constraint",
	"F":  "foreign key constraint",
	"D":  "default constraint",
	"C":  "check constraint",
	"TR": "trigger",
	"TT": "table type",
}

// Tx is a storage.Tx over a database/sql transaction.
type Tx struct {
	tx *sql.Tx
}

var _ storage.Tx = (*Tx)(nil)

// Probe looks the name up through OBJECT_ID, which resolves unqualified names
// against the caller's default schema like CREATE TABLE does.
func (t *Tx) Probe(ctx context.Context, fqn string) (storage.Object, error) {
	const q = `SELECT o.type FROM sys.objects o WHERE o.object_id = OBJECT_ID(@p1)`

	var code string
	err := t.tx.QueryRowContext(ctx, q, mssqlddl.QuoteFQN(fqn)).Scan(&code)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return storage.Object{Kind: storage.ObjectNone}, nil
	case err != nil:
		return storage.Object{}, fmt.Errorf("mssql: probe %s: %w", fqn, err)
	}

	code = strings.TrimSpace(code)
	name, ok := objectTypes[code]
	if !ok {
		name = code
	}
	if code == "U" {
		return storage.Object{Kind: storage.ObjectTable, Type: name}, nil
	}
	return storage.Object{Kind: storage.ObjectOther, Type: name}, nil
}

// Exec executes a single T-SQL batch inside the transaction.
func (t *Tx) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("mssql: Exec: empty SQL")
	}
	if _, err := t.tx.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("mssql: exec: %w", err)
	}
	return nil
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("mssql: commit: %w", err)
	}
	return nil
}

// Rollback aborts the transaction; calling it after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("mssql: rollback: %w", err)
	}
	return nil
}
