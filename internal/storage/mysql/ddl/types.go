// Package ddl contains MySQL-specific helpers for generating DDL.
package ddl

import (
	"fmt"

	"schemaboot/internal/schema"
)

const (
	// maxVarChar is the largest VARCHAR length that fits a utf8mb4 row.
	maxVarChar = 16383
	// defaultVarChar is used for strings without a length; MySQL cannot
	// index an unbounded TEXT column without a prefix length.
	defaultVarChar = 255
	maxDecimal     = 65
)

// MapType maps a canonical field type into a MySQL column type.
//
//	integer/bigint/smallint -> INT / BIGINT / SMALLINT
//	float                   -> DOUBLE
//	decimal                 -> DECIMAL(p, s), DECIMAL(38, 10) without precision
//	string                  -> VARCHAR(n), VARCHAR(255) without a length
//	text                    -> TEXT
//	boolean                 -> BOOLEAN
//	date/time/timestamp     -> DATE / TIME / DATETIME(6)
//	uuid                    -> CHAR(36)
//	json                    -> JSON
//	binary                  -> BLOB
//
// interval is rejected.
func MapType(f schema.Field) (string, error) {
	switch f.Type {
	case schema.TypeInteger:
		return "INT", nil
	case schema.TypeBigInt:
		return "BIGINT", nil
	case schema.TypeSmallInt:
		return "SMALLINT", nil
	case schema.TypeFloat:
		return "DOUBLE", nil
	case schema.TypeDecimal:
		if f.Precision > maxDecimal {
			return "", fmt.Errorf("mysql ddl: decimal precision %d exceeds %d", f.Precision, maxDecimal)
		}
		if f.Precision > 0 {
			return fmt.Sprintf("DECIMAL(%d, %d)", f.Precision, f.Scale), nil
		}
		return "DECIMAL(38, 10)", nil
	case schema.TypeString:
		switch {
		case f.Length > maxVarChar:
			return "", fmt.Errorf("mysql ddl: string length %d exceeds VARCHAR limit %d", f.Length, maxVarChar)
		case f.Length > 0:
			return fmt.Sprintf("VARCHAR(%d)", f.Length), nil
		default:
			return fmt.Sprintf("VARCHAR(%d)", defaultVarChar), nil
		}
	case schema.TypeText:
		return "TEXT", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeTimestamp:
		return "DATETIME(6)", nil
	case schema.TypeUUID:
		return "CHAR(36)", nil
	case schema.TypeJSON:
		return "JSON", nil
	case schema.TypeBinary:
		return "BLOB", nil
	default:
		return "", fmt.Errorf("mysql ddl: type %q is not supported", f.Type)
	}
}
