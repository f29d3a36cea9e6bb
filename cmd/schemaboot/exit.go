package main

import (
	"errors"

	"schemaboot/internal/bootstrap"
)

// Process exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitDefinition = 2
	exitConnection = 3
	exitConflict   = 4
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, bootstrap.ErrDefinition):
		return exitDefinition
	case errors.Is(err, bootstrap.ErrConnection):
		return exitConnection
	case errors.Is(err, bootstrap.ErrSchemaConflict):
		return exitConflict
	default:
		return exitFailure
	}
}
