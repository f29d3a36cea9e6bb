// Package ddl contains SQLite-specific helpers for generating DDL.
//
// It maps logical field types into SQLite column types. SQLite is dynamically
// typed, so the declared types mostly select a column affinity; they are kept
// readable for anyone inspecting the schema.
package ddl

import (
	"fmt"

	"schemaboot/internal/schema"
)

// MapType maps a canonical field type into a SQLite column type.
//
//	integer/bigint/smallint -> INTEGER
//	float                   -> REAL
//	decimal                 -> NUMERIC
//	string                  -> VARCHAR(n), or TEXT without a length
//	text/json               -> TEXT
//	boolean                 -> BOOLEAN (0/1)
//	date/time/timestamp     -> DATE / TIME / DATETIME
//	uuid                    -> CHAR(36)
//	binary                  -> BLOB
//
// interval has no SQLite representation and is rejected.
func MapType(f schema.Field) (string, error) {
	switch f.Type {
	case schema.TypeInteger, schema.TypeBigInt, schema.TypeSmallInt:
		return "INTEGER", nil
	case schema.TypeFloat:
		return "REAL", nil
	case schema.TypeDecimal:
		return "NUMERIC", nil
	case schema.TypeString:
		if f.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", f.Length), nil
		}
		return "TEXT", nil
	case schema.TypeText, schema.TypeJSON:
		return "TEXT", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeTimestamp:
		return "DATETIME", nil
	case schema.TypeUUID:
		return "CHAR(36)", nil
	case schema.TypeBinary:
		return "BLOB", nil
	default:
		return "", fmt.Errorf("sqlite ddl: type %q is not supported", f.Type)
	}
}
