package sqlite

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"schemaboot/internal/storage"
)

// Classify maps a modernc.org/sqlite error to a storage.ErrorKind using the
// primary result code, then falls back to the message text for SQLITE_ERROR,
// which SQLite uses for both name collisions and malformed statements.
func Classify(err error) storage.ErrorKind {
	if err == nil {
		return storage.KindUnknown
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_IOERR,
			sqlite3.SQLITE_READONLY, sqlite3.SQLITE_AUTH, sqlite3.SQLITE_PERM:
			return storage.KindConnection
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CONSTRAINT:
			return storage.KindConflict
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"), strings.Contains(msg, "there is already"):
		return storage.KindConflict
	case strings.Contains(msg, "syntax error"), strings.Contains(msg, "unknown"):
		return storage.KindDefinition
	}
	return storage.KindUnknown
}
