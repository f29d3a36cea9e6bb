package postgres

import (
	gddl "schemaboot/internal/ddl"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
	pgddl "schemaboot/internal/storage/postgres/ddl"
)

// Dialect is the storage.Dialect for Postgres.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

func (Dialect) Name() string { return "postgres" }

func (Dialect) MapType(f schema.Field) (string, error) { return pgddl.MapType(f) }

func (Dialect) BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return pgddl.BuildCreateTableSQL(t)
}

func (Dialect) TransactionalDDL() bool { return true }

func (Dialect) Classify(err error) storage.ErrorKind { return Classify(err) }
