package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"schemaboot/internal/ddl"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
)

// fakeDialect renders "CREATE <fqn>" and leaves every error unclassified.
type fakeDialect struct {
	transactional bool
	classify      func(error) storage.ErrorKind
}

func (fakeDialect) Name() string { return "fake" }

func (fakeDialect) MapType(f schema.Field) (string, error) {
	if f.Type == schema.TypeInterval {
		return "", fmt.Errorf("type %q is not supported", f.Type)
	}
	return strings.ToUpper(string(f.Type)), nil
}

func (fakeDialect) BuildCreateTableSQL(t ddl.TableDef) (string, error) {
	return "CREATE " + t.FQN, nil
}

func (d fakeDialect) TransactionalDDL() bool { return d.transactional }

func (d fakeDialect) Classify(err error) storage.ErrorKind {
	if d.classify != nil {
		return d.classify(err)
	}
	return storage.KindUnknown
}

// compDialect is a non-transactional dialect that can compensate.
type compDialect struct{ fakeDialect }

func (compDialect) BuildDropTableSQL(fqn string) string { return "DROP " + fqn }

// fakeTx records every call in order.
type fakeTx struct {
	objects   map[string]storage.Object
	probeErr  map[string]error
	execErr   map[string]error
	commitErr error

	calls      []string
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Probe(_ context.Context, fqn string) (storage.Object, error) {
	t.calls = append(t.calls, "probe "+fqn)
	if err := t.probeErr[fqn]; err != nil {
		return storage.Object{}, err
	}
	return t.objects[fqn], nil
}

func (t *fakeTx) Exec(_ context.Context, sql string) error {
	t.calls = append(t.calls, sql)
	return t.execErr[sql]
}

func (t *fakeTx) Commit(context.Context) error {
	t.calls = append(t.calls, "commit")
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.calls = append(t.calls, "rollback")
	t.rolledBack = true
	return nil
}

type fakeRepo struct {
	tx       *fakeTx
	beginErr error
	begins   int
	closed   bool
}

func (r *fakeRepo) Begin(context.Context) (storage.Tx, error) {
	r.begins++
	if r.beginErr != nil {
		return nil, r.beginErr
	}
	return r.tx, nil
}

func (r *fakeRepo) Ping(context.Context) error { return nil }
func (r *fakeRepo) Close()                     { r.closed = true }

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tx: &fakeTx{
		objects:  map[string]storage.Object{},
		probeErr: map[string]error{},
		execErr:  map[string]error{},
	}}
}

// userPostCatalog is User plus Post referencing it, declared referencing
// entity first.
func userPostCatalog() *schema.Catalog {
	return schema.NewCatalog(
		schema.Entity{Name: "Post", Fields: []schema.Field{
			{Name: "id", Type: schema.TypeInteger, PrimaryKey: true},
			{Name: "author_id", Type: schema.TypeInteger, References: &schema.Reference{Entity: "User"}},
		}},
		schema.Entity{Name: "User", Fields: []schema.Field{
			{Name: "id", Type: schema.TypeInteger, PrimaryKey: true},
			{Name: "name", Type: schema.TypeString},
		}},
	)
}
