// Package mysql implements a MySQL repository using database/sql and
// go-sql-driver/mysql.
//
// MySQL commits implicitly around every DDL statement, so a Tx here is a
// dedicated connection rather than a server transaction: Commit and Rollback
// only release it. Undoing a failed run is left to the caller, which drops
// what it created through the dialect's BuildDropTableSQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"schemaboot/internal/storage"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN string // e.g. "user:pass@tcp(localhost:3306)/app"
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mysql dsn: %w", err)
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, close, nil
}

// Begin pins a connection for the run so every statement shares one session.
func (r *Repository) Begin(ctx context.Context) (storage.Tx, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("mysql: acquire conn: %w", err)
	}
	return &Tx{conn: conn}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql: ping: %w", err)
	}
	return nil
}

// Tx is a storage.Tx over a pinned connection. Statements take effect as soon
// as Exec returns.
type Tx struct {
	conn *sql.Conn
	done bool
}

var _ storage.Tx = (*Tx)(nil)

// Probe looks the name up in information_schema.TABLES. An unqualified name
// resolves against the connection's current database.
func (t *Tx) Probe(ctx context.Context, fqn string) (storage.Object, error) {
	const q = `SELECT TABLE_TYPE FROM information_schema.TABLES WHERE TABLE_SCHEMA = COALESCE(?, DATABASE()) AND TABLE_NAME = ?`

	ns, name := storage.SplitFQN(fqn)
	var typ string
	err := t.conn.QueryRowContext(ctx, q, sql.NullString{String: ns, Valid: ns != ""}, name).Scan(&typ)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return storage.Object{Kind: storage.ObjectNone}, nil
	case err != nil:
		return storage.Object{}, fmt.Errorf("mysql: probe %s: %w", fqn, err)
	case typ == "BASE TABLE":
		return storage.Object{Kind: storage.ObjectTable, Type: "table"}, nil
	default:
		return storage.Object{Kind: storage.ObjectOther, Type: strings.ToLower(typ)}, nil
	}
}

func (t *Tx) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("mysql: Exec: empty SQL")
	}
	if _, err := t.conn.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// Commit releases the connection; the DDL is already durable.
func (t *Tx) Commit(ctx context.Context) error {
	return t.release()
}

// Rollback releases the connection. It does not undo executed DDL.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.release()
}

func (t *Tx) release() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.conn.Close(); err != nil {
		return fmt.Errorf("mysql: release conn: %w", err)
	}
	return nil
}
