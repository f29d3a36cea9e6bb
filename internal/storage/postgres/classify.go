package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"schemaboot/internal/storage"
)

// Classify maps pgx errors to a storage.ErrorKind. Server errors are bucketed
// by SQLSTATE; client-side dial and timeout failures count as connection
// errors.
func Classify(err error) storage.ErrorKind {
	if err == nil {
		return storage.KindUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return storage.KindConnection
	}
	return storage.KindUnknown
}

func classifySQLState(code string) storage.ErrorKind {
	switch code {
	case "42P07", // duplicate_table
		"42710", // duplicate_object
		"42809", // wrong_object_type
		"42830", // invalid_foreign_key
		"42804", // datatype_mismatch
		"40P01", // deadlock_detected
		"40001": // serialization_failure
		return storage.KindConflict
	case "42704", // undefined_object (unknown type)
		"42601", // syntax_error
		"42611", // invalid_column_definition
		"42P16", // invalid_table_definition
		"42701", // duplicate_column
		"3F000", // invalid_schema_name
		"22023": // invalid_parameter_value
		return storage.KindDefinition
	}

	switch {
	case strings.HasPrefix(code, "08"), // connection_exception
		strings.HasPrefix(code, "28"), // invalid_authorization_specification
		strings.HasPrefix(code, "3D"), // invalid_catalog_name
		strings.HasPrefix(code, "57P0"): // admin/crash shutdown, cannot_connect_now
		return storage.KindConnection
	case strings.HasPrefix(code, "23"): // integrity_constraint_violation
		return storage.KindConflict
	}
	return storage.KindUnknown
}
