package storage

import (
	"testing"

	"schemaboot/internal/ddl"
	"schemaboot/internal/schema"
)

type stubDialect struct{ name string }

func (s stubDialect) Name() string                                   { return s.name }
func (stubDialect) MapType(schema.Field) (string, error)             { return "TEXT", nil }
func (stubDialect) BuildCreateTableSQL(ddl.TableDef) (string, error) { return "", nil }
func (stubDialect) TransactionalDDL() bool                           { return true }
func (stubDialect) Classify(error) ErrorKind                         { return KindConflict }

func TestDialectRegistry(t *testing.T) {
	t.Parallel()

	RegisterDialect("stub", stubDialect{name: "stub"})

	d, err := DialectFor("  Stub ")
	if err != nil {
		t.Fatalf("DialectFor error: %v", err)
	}
	if d.Name() != "stub" {
		t.Fatalf("Name() = %q, want stub", d.Name())
	}

	if _, err := DialectFor("nope"); err == nil {
		t.Fatalf("expected error for unregistered dialect")
	}
}
