package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
)

// ErrorKind buckets backend failures the way a bootstrap run reports them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConnection: backend unreachable, session lost, or context expired.
	KindConnection
	// KindConflict: the backend refused the DDL because of what already
	// exists (name collisions, incompatible references, concurrent DDL).
	KindConflict
	// KindDefinition: the backend rejected the statement itself (bad type,
	// invalid column definition).
	KindDefinition
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindConflict:
		return "schema conflict"
	case KindDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// Classify applies the checks shared by every backend, then asks d. A nil d
// only runs the shared checks.
//
//   - context.Canceled / context.DeadlineExceeded -> KindConnection
//   - driver.ErrBadConn, net.Error                -> KindConnection
func Classify(d Dialect, err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindConnection
	}
	if errors.Is(err, driver.ErrBadConn) {
		return KindConnection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}
	if d == nil {
		return KindUnknown
	}
	return d.Classify(err)
}
