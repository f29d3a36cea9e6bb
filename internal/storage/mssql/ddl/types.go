// Package ddl contains MSSQL-specific helpers for generating DDL.
//
// It maps logical field types into SQL Server types. The mapping is
// conservative and biased toward safe, widely-supported choices.
package ddl

import (
	"fmt"

	"schemaboot/internal/schema"
)

const (
	// maxNVarChar is the largest bounded NVARCHAR length.
	maxNVarChar = 4000
	// keyNVarChar keeps an unbounded key column within the 900-byte index
	// key limit.
	keyNVarChar = 450
	maxDecimal  = 38
)

// MapType maps a canonical field type into a SQL Server column type.
//
//	integer/bigint/smallint -> INT / BIGINT / SMALLINT
//	float                   -> FLOAT
//	decimal                 -> DECIMAL(p, s), DECIMAL(38, 10) without precision
//	string                  -> NVARCHAR(n); NVARCHAR(MAX) unbounded, NVARCHAR(450) if keyed
//	text/json               -> NVARCHAR(MAX)
//	boolean                 -> BIT
//	date/time/timestamp     -> DATE / TIME / DATETIME2
//	uuid                    -> UNIQUEIDENTIFIER
//	binary                  -> VARBINARY(MAX)
//
// interval has no SQL Server equivalent and is rejected, as are string
// lengths above 4000 and decimal precision above 38.
func MapType(f schema.Field) (string, error) {
	switch f.Type {
	case schema.TypeInteger:
		return "INT", nil
	case schema.TypeBigInt:
		return "BIGINT", nil
	case schema.TypeSmallInt:
		return "SMALLINT", nil
	case schema.TypeFloat:
		return "FLOAT", nil
	case schema.TypeDecimal:
		if f.Precision > maxDecimal {
			return "", fmt.Errorf("mssql ddl: decimal precision %d exceeds %d", f.Precision, maxDecimal)
		}
		if f.Precision > 0 {
			return fmt.Sprintf("DECIMAL(%d, %d)", f.Precision, f.Scale), nil
		}
		return "DECIMAL(38, 10)", nil
	case schema.TypeString:
		switch {
		case f.Length > maxNVarChar:
			return "", fmt.Errorf("mssql ddl: string length %d exceeds NVARCHAR limit %d", f.Length, maxNVarChar)
		case f.Length > 0:
			return fmt.Sprintf("NVARCHAR(%d)", f.Length), nil
		case f.PrimaryKey || f.Unique || f.References != nil:
			return fmt.Sprintf("NVARCHAR(%d)", keyNVarChar), nil
		default:
			return "NVARCHAR(MAX)", nil
		}
	case schema.TypeText, schema.TypeJSON:
		return "NVARCHAR(MAX)", nil
	case schema.TypeBoolean:
		return "BIT", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeTimestamp:
		return "DATETIME2", nil
	case schema.TypeUUID:
		return "UNIQUEIDENTIFIER", nil
	case schema.TypeBinary:
		return "VARBINARY(MAX)", nil
	default:
		return "", fmt.Errorf("mssql ddl: type %q is not supported", f.Type)
	}
}
