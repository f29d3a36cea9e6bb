// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import (
	"fmt"

	"schemaboot/internal/schema"
)

// MapType maps a canonical field type into a Postgres SQL type.
//
//	integer/bigint/smallint -> INTEGER / BIGINT / SMALLINT
//	float                   -> DOUBLE PRECISION
//	decimal                 -> NUMERIC(p, s), or NUMERIC without precision
//	string                  -> VARCHAR(n), or TEXT without a length
//	text                    -> TEXT
//	boolean                 -> BOOLEAN
//	date/time/timestamp     -> DATE / TIME / TIMESTAMPTZ
//	uuid                    -> UUID
//	json                    -> JSONB
//	binary                  -> BYTEA
//	interval                -> INTERVAL
func MapType(f schema.Field) (string, error) {
	switch f.Type {
	case schema.TypeInteger:
		return "INTEGER", nil
	case schema.TypeBigInt:
		return "BIGINT", nil
	case schema.TypeSmallInt:
		return "SMALLINT", nil
	case schema.TypeFloat:
		return "DOUBLE PRECISION", nil
	case schema.TypeDecimal:
		if f.Precision > 0 {
			return fmt.Sprintf("NUMERIC(%d, %d)", f.Precision, f.Scale), nil
		}
		return "NUMERIC", nil
	case schema.TypeString:
		if f.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", f.Length), nil
		}
		return "TEXT", nil
	case schema.TypeText:
		return "TEXT", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeTimestamp:
		return "TIMESTAMPTZ", nil
	case schema.TypeUUID:
		return "UUID", nil
	case schema.TypeJSON:
		return "JSONB", nil
	case schema.TypeBinary:
		return "BYTEA", nil
	case schema.TypeInterval:
		return "INTERVAL", nil
	default:
		return "", fmt.Errorf("postgres ddl: type %q is not supported", f.Type)
	}
}
