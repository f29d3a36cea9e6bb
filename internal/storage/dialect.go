package storage

import (
	"fmt"
	"strings"
	"sync"

	"schemaboot/internal/ddl"
)

// Dialect is the backend-specific half of a bootstrap: it maps logical field
// types, renders a "create if absent" statement for a table, and classifies
// the driver's errors.
//
// Backends (postgres, mssql, sqlite, mysql) register their implementation for
// a given storage kind at init time.
type Dialect interface {
	ddl.TypeMapper

	// Name returns the storage kind the dialect serves.
	Name() string

	// BuildCreateTableSQL renders a statement that creates t only when no
	// table with that name exists.
	BuildCreateTableSQL(t ddl.TableDef) (string, error)

	// TransactionalDDL reports whether CREATE TABLE can be rolled back.
	TransactionalDDL() bool

	// Classify maps a driver error to an ErrorKind. Errors it does not
	// recognize return KindUnknown.
	Classify(err error) ErrorKind
}

// Compensator is implemented by dialects without transactional DDL. After a
// failed run the bootstrapper drops the tables that run created.
type Compensator interface {
	BuildDropTableSQL(fqn string) string
}

var (
	dialectMu sync.RWMutex
	dialects  = map[string]Dialect{}
)

// RegisterDialect registers (or replaces) the Dialect for a storage kind.
func RegisterDialect(kind string, d Dialect) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	dialects[kind] = d
}

// DialectFor returns the Dialect registered for kind.
//
// If no dialect has been registered for the storage kind, an error is
// returned.
func DialectFor(kind string) (Dialect, error) {
	dialectMu.RLock()
	d, ok := dialects[strings.ToLower(strings.TrimSpace(kind))]
	dialectMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no DDL dialect registered for storage.kind=%q", kind)
	}
	return d, nil
}
