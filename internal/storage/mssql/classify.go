package mssql

import (
	"errors"

	mssql "github.com/microsoft/go-mssqldb"

	"schemaboot/internal/storage"
)

// Classify maps a SQL Server error number to a storage.ErrorKind.
func Classify(err error) storage.ErrorKind {
	if err == nil {
		return storage.KindUnknown
	}

	var number int32
	var val mssql.Error
	var ptr *mssql.Error
	switch {
	case errors.As(err, &val):
		number = val.Number
	case errors.As(err, &ptr):
		number = ptr.Number
	default:
		return storage.KindUnknown
	}
	return classifyNumber(number)
}

func classifyNumber(n int32) storage.ErrorKind {
	switch n {
	case 4060, // cannot open database
		18456, // login failed
		18452, // untrusted domain login
		233,   // no process on the other end of the pipe
		10053, // connection aborted
		10054: // connection reset by peer
		return storage.KindConnection
	case 2714, // object already exists
		1750, // could not create constraint
		1767, // foreign key references invalid table
		1776, // no matching primary or candidate key
		1778, // column type mismatch in foreign key
		1205, // deadlock victim
		3960: // snapshot isolation update conflict
		return storage.KindConflict
	case 2715, // type not found
		102,  // incorrect syntax
		1919, // column type invalid for index key
		2716, // multiple identity or invalid column spec
		2760, // schema does not exist
		8135: // table level constraint names unknown columns
		return storage.KindDefinition
	}
	return storage.KindUnknown
}
