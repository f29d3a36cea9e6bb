// Package storage contains storage-agnostic contracts and utilities: the
// Repository/Tx pair a bootstrap run executes against, the backend factory,
// the dialect registry, and classification of backend errors.
package storage

import "context"

// ObjectKind says what currently holds a name in the backend.
type ObjectKind int

const (
	// ObjectNone means the name is free.
	ObjectNone ObjectKind = iota
	// ObjectTable means a base table with that name exists.
	ObjectTable
	// ObjectOther means a non-table object (view, index, sequence, ...) holds
	// the name.
	ObjectOther
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectNone:
		return "none"
	case ObjectTable:
		return "table"
	default:
		return "other"
	}
}

// Object is the result of Tx.Probe. Type carries the backend's own name for
// the object (e.g. "VIEW", "index", "v") for error messages.
type Object struct {
	Kind ObjectKind
	Type string
}

// Tx is one unit of work against the backend. Statements issued through Exec
// become visible to other connections only after Commit.
type Tx interface {
	// Probe reports what holds the dotted name fqn.
	Probe(ctx context.Context, fqn string) (Object, error)
	// Exec executes a single DDL statement or script.
	Exec(ctx context.Context, sql string) error
	Commit(ctx context.Context) error
	// Rollback aborts the unit of work. It is safe to call after Commit.
	Rollback(ctx context.Context) error
}

// Repository is an open handle to a backend.
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
	Close()
}
