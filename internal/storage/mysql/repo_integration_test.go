//go:build integration

package mysql

import (
	"context"
	"os"
	"testing"
	"time"

	"schemaboot/internal/storage"
)

// getTestDSN reads the MYSQL_TEST_DSN environment variable.
// If it is empty, the caller should skip the test.
func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set; skipping MySQL integration tests")
	}
	return dsn
}

// TestProbeAndDropIntegration creates a table, probes it, and drops it again
// the way compensation does.
func TestProbeAndDropIntegration(t *testing.T) {
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

	if err := tx.Exec(ctx, "CREATE TABLE IF NOT EXISTS `schemaboot_probe` (id INT PRIMARY KEY)"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	obj, err := tx.Probe(ctx, "schemaboot_probe")
	if err != nil || obj.Kind != storage.ObjectTable {
		t.Fatalf("Probe() = %+v, %v", obj, err)
	}

	if err := tx.Exec(ctx, Dialect{}.BuildDropTableSQL("schemaboot_probe")); err != nil {
		t.Fatalf("Exec(drop) error = %v", err)
	}
	obj, err = tx.Probe(ctx, "schemaboot_probe")
	if err != nil || obj.Kind != storage.ObjectNone {
		t.Fatalf("Probe() after drop = %+v, %v", obj, err)
	}
}
