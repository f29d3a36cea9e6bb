// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and dialects with the storage
// package.
//
// Importing this package makes the following storage kinds available at
// runtime:
//
//   - "postgres" (schemaboot/internal/storage/postgres)
//   - "mssql"    (schemaboot/internal/storage/mssql)
//   - "sqlite"   (schemaboot/internal/storage/sqlite)
//   - "mysql"    (schemaboot/internal/storage/mysql)
//
// Typical usage:
//
//	import _ "schemaboot/internal/storage/all"
//
// A binary that needs only a subset of backends can blank-import the
// individual packages instead.
package all

import (
	_ "schemaboot/internal/storage/mssql"
	_ "schemaboot/internal/storage/mysql"
	_ "schemaboot/internal/storage/postgres"
	_ "schemaboot/internal/storage/sqlite"
)
