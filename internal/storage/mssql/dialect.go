package mssql

import (
	gddl "schemaboot/internal/ddl"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
	mssqlddl "schemaboot/internal/storage/mssql/ddl"
)

// Dialect is the storage.Dialect for SQL Server.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

func (Dialect) Name() string { return "mssql" }

func (Dialect) MapType(f schema.Field) (string, error) { return mssqlddl.MapType(f) }

func (Dialect) BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return mssqlddl.BuildCreateTableSQL(t)
}

func (Dialect) TransactionalDDL() bool { return true }

func (Dialect) Classify(err error) storage.ErrorKind { return Classify(err) }
