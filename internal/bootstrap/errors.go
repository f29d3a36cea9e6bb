package bootstrap

import (
	"errors"
	"strings"

	"schemaboot/internal/storage"
)

// Sentinels matched with errors.Is against a returned *Error.
var (
	ErrConnection     = errors.New("connection error")
	ErrSchemaConflict = errors.New("schema conflict")
	ErrDefinition     = errors.New("definition error")
)

// Operations recorded in Error.Op.
const (
	OpPlan    = "plan"
	OpConnect = "connect"
	OpBegin   = "begin"
	OpProbe   = "probe"
	OpExec    = "exec"
	OpCommit  = "commit"
)

// Error is the failure of one bootstrap run. Err is the native error.
type Error struct {
	Kind   storage.ErrorKind
	Op     string
	Entity string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("bootstrap ")
	b.WriteString(e.Op)
	if e.Entity != "" {
		b.WriteString(" ")
		b.WriteString(e.Entity)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConnection:
		return e.Kind == storage.KindConnection
	case ErrSchemaConflict:
		return e.Kind == storage.KindConflict
	case ErrDefinition:
		return e.Kind == storage.KindDefinition
	}
	return false
}

// classify wraps a backend error from op. Errors the dialect cannot place
// fall back by operation.
func classify(d storage.Dialect, op, entity string, err error) *Error {
	kind := storage.Classify(d, err)
	if kind == storage.KindUnknown {
		kind = fallbackKind(op)
	}
	return &Error{Kind: kind, Op: op, Entity: entity, Err: err}
}

func fallbackKind(op string) storage.ErrorKind {
	switch op {
	case OpPlan:
		return storage.KindDefinition
	case OpConnect, OpBegin, OpProbe:
		return storage.KindConnection
	default:
		return storage.KindConflict
	}
}
