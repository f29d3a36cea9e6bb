//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"schemaboot/internal/storage"
)

// getTestDSN reads the POSTGRES_TEST_DSN environment variable.
// If it is empty, the caller should skip the test.
func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set; skipping Postgres integration tests")
	}
	return dsn
}

// TestProbeAndRollbackIntegration creates a table inside a transaction, checks
// Probe sees it there, then verifies it is gone after Rollback.
func TestProbeAndRollbackIntegration(t *testing.T) {
	dsn := getTestDSN(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeFn, err := NewRepository(ctx, Config{DSN: dsn})
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	defer closeFn()

	tx, err := repo.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := tx.Exec(ctx, `CREATE TABLE IF NOT EXISTS "SchemabootProbe" (id INTEGER PRIMARY KEY)`); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if err := tx.Exec(ctx, `CREATE INDEX "schemaboot_probe_idx" ON "SchemabootProbe" (id)`); err != nil {
		t.Fatalf("Exec(index) error = %v", err)
	}

	obj, err := tx.Probe(ctx, "SchemabootProbe")
	if err != nil || obj.Kind != storage.ObjectTable {
		t.Fatalf("Probe(table) = %+v, %v", obj, err)
	}
	obj, err = tx.Probe(ctx, "schemaboot_probe_idx")
	if err != nil || obj.Kind != storage.ObjectOther || obj.Type != "index" {
		t.Fatalf("Probe(index) = %+v, %v", obj, err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	tx, err = repo.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer tx.Rollback(ctx)
	obj, err = tx.Probe(ctx, "SchemabootProbe")
	if err != nil || obj.Kind != storage.ObjectNone {
		t.Fatalf("Probe after rollback = %+v, %v", obj, err)
	}
}

// TestClassifyDuplicateTableIntegration verifies a real 42P07 is a conflict.
func TestClassifyDuplicateTableIntegration(t *testing.T) {
	dsn := getTestDSN(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeFn, err := NewRepository(ctx, Config{DSN: dsn})
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	defer closeFn()

	tx, err := repo.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.Exec(ctx, `CREATE TABLE "schemaboot_dup" (id INTEGER)`); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	err = tx.Exec(ctx, `CREATE TABLE "schemaboot_dup" (id INTEGER)`)
	if got := Classify(err); got != storage.KindConflict {
		t.Fatalf("Classify(%v) = %v, want conflict", err, got)
	}
}
