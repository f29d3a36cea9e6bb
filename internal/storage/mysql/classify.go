package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"schemaboot/internal/storage"
)

// Classify maps MySQL server error numbers and driver connection errors to a
// storage.ErrorKind.
func Classify(err error) storage.ErrorKind {
	if err == nil {
		return storage.KindUnknown
	}
	if errors.Is(err, mysql.ErrInvalidConn) {
		return storage.KindConnection
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return storage.KindUnknown
	}

	switch myErr.Number {
	case 1044, // access denied for user to database
		1045, // access denied for user (password)
		1049, // unknown database
		1040, // too many connections
		2002, // can't connect through socket
		2003, // can't connect to server
		2006, // server has gone away
		2013: // lost connection during query
		return storage.KindConnection
	case 1050, // table already exists
		1005, // can't create table (errno from engine)
		1215, // cannot add foreign key constraint
		1824, // failed to open the referenced table
		3780, // referencing and referenced columns are incompatible
		1213, // deadlock
		1205, // lock wait timeout
		1822: // missing index for constraint
		return storage.KindConflict
	case 1064, // syntax error
		1074, // column length too big
		1170, // BLOB/TEXT column used in key without length
		1071, // specified key was too long
		1118, // row size too large
		1101: // BLOB/TEXT can't have a default value
		return storage.KindDefinition
	}
	return storage.KindUnknown
}
