package mysql

import (
	gddl "schemaboot/internal/ddl"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
	myddl "schemaboot/internal/storage/mysql/ddl"
)

// Dialect is the storage.Dialect for MySQL. DDL is not transactional, so it
// also implements storage.Compensator.
type Dialect struct{}

var (
	_ storage.Dialect     = Dialect{}
	_ storage.Compensator = Dialect{}
)

func (Dialect) Name() string { return "mysql" }

func (Dialect) MapType(f schema.Field) (string, error) { return myddl.MapType(f) }

func (Dialect) BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return myddl.BuildCreateTableSQL(t)
}

func (Dialect) BuildDropTableSQL(fqn string) string { return myddl.BuildDropTableSQL(fqn) }

func (Dialect) TransactionalDDL() bool { return false }

func (Dialect) Classify(err error) storage.ErrorKind { return Classify(err) }
