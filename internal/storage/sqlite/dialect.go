package sqlite

import (
	gddl "schemaboot/internal/ddl"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
	sqliteddl "schemaboot/internal/storage/sqlite/ddl"
)

// Dialect is the storage.Dialect for SQLite.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) MapType(f schema.Field) (string, error) { return sqliteddl.MapType(f) }

func (Dialect) BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return sqliteddl.BuildCreateTableSQL(t)
}

func (Dialect) TransactionalDDL() bool { return true }

func (Dialect) Classify(err error) storage.ErrorKind { return Classify(err) }
