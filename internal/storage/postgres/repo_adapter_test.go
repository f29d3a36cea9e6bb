package postgres

import (
	"context"
	"errors"
	"testing"

	"schemaboot/internal/storage"
)

// TestPostgresStorageRegistrationUsesNewRepositoryHook verifies that the
// "postgres" backend registered in init() goes through the newRepository hook
// and that Close calls the returned cleanup function.
func TestPostgresStorageRegistrationUsesNewRepositoryHook(t *testing.T) {
	origNewRepository := newRepository
	defer func() { newRepository = origNewRepository }()

	var (
		gotCfg Config
		closed bool
	)
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		gotCfg = cfg
		return &Repository{}, func() { closed = true }, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{Kind: "postgres", DSN: "postgres://u@h/db"})
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if gotCfg.DSN != "postgres://u@h/db" {
		t.Fatalf("hook cfg.DSN = %q", gotCfg.DSN)
	}

	repo.Close()
	if !closed {
		t.Fatalf("Close did not invoke closeFn")
	}
}

// TestPostgresStorageRegistrationPropagatesError verifies constructor errors
// reach the caller unchanged.
func TestPostgresStorageRegistrationPropagatesError(t *testing.T) {
	origNewRepository := newRepository
	defer func() { newRepository = origNewRepository }()

	boom := errors.New("dial failed")
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		return nil, nil, boom
	}

	_, err := storage.New(context.Background(), storage.Config{Kind: "postgres", DSN: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("storage.New() error = %v, want %v", err, boom)
	}
}

func TestPostgresDialectRegistered(t *testing.T) {
	t.Parallel()

	d, err := storage.DialectFor("postgres")
	if err != nil {
		t.Fatalf("DialectFor(postgres) error = %v", err)
	}
	if d.Name() != "postgres" || !d.TransactionalDDL() {
		t.Fatalf("unexpected dialect %s", d.Name())
	}
}
