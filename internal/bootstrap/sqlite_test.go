package bootstrap

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
	_ "schemaboot/internal/storage/sqlite"
)

// End-to-end runs against a real SQLite file.

func sqliteConfig(t *testing.T) (storage.Config, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")
	return storage.Config{Kind: "sqlite", DSN: path}, path
}

func openSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sqliteTables(t *testing.T, path string) []string {
	t.Helper()
	rows, err := openSQLite(t, path).Query(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		out = append(out, name)
	}
	require.NoError(t, rows.Err())
	return out
}

type columnInfo struct {
	Name string
	Type string
	PK   int
}

func sqliteColumns(t *testing.T, path, table string) []columnInfo {
	t.Helper()
	rows, err := openSQLite(t, path).Query(`SELECT name, type, pk FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	defer rows.Close()

	var out []columnInfo
	for rows.Next() {
		var c columnInfo
		require.NoError(t, rows.Scan(&c.Name, &c.Type, &c.PK))
		out = append(out, c)
	}
	require.NoError(t, rows.Err())
	return out
}

func userCatalog(extra ...schema.Field) *schema.Catalog {
	fields := append([]schema.Field{
		{Name: "id", Type: schema.TypeInteger, PrimaryKey: true},
		{Name: "name", Type: schema.TypeString},
	}, extra...)
	return schema.NewCatalog(schema.Entity{Name: "User", Fields: fields})
}

func TestSQLite_CreatesUserOnEmptyBackend(t *testing.T) {
	t.Parallel()

	cfg, path := sqliteConfig(t)
	res, err := quietBootstrapper(nil).RunConfig(context.Background(), cfg, userCatalog())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", res.Dialect)
	assert.Equal(t, []string{"User"}, res.Created)
	assert.Equal(t, []string{"User"}, sqliteTables(t, path))

	cols := sqliteColumns(t, path, "User")
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, 1, cols[0].PK)
	assert.Equal(t, "name", cols[1].Name)
	assert.Equal(t, 0, cols[1].PK)
}

func TestSQLite_Idempotent(t *testing.T) {
	t.Parallel()

	cfg, path := sqliteConfig(t)
	b := quietBootstrapper(nil)

	first, err := b.RunConfig(context.Background(), cfg, userPostCatalog())
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Post"}, first.Created)

	second, err := b.RunConfig(context.Background(), cfg, userPostCatalog())
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, []string{"User", "Post"}, second.Existing)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.RunID, second.RunID)

	assert.Equal(t, []string{"Post", "User"}, sqliteTables(t, path))
}

func TestSQLite_LeavesExistingTableUntouched(t *testing.T) {
	t.Parallel()

	cfg, path := sqliteConfig(t)
	db := openSQLite(t, path)
	_, err := db.Exec(`CREATE TABLE "User" (id INTEGER PRIMARY KEY, name TEXT, legacy TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "User" (id, name, legacy) VALUES (1, 'ada', 'x')`)
	require.NoError(t, err)
	before := sqliteColumns(t, path, "User")

	res, err := quietBootstrapper(nil).RunConfig(context.Background(), cfg, userCatalog())
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"User"}, res.Existing)

	assert.Equal(t, before, sqliteColumns(t, path, "User"))
	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM "User"`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLite_ConflictRollsBackWholeBatch(t *testing.T) {
	t.Parallel()

	cfg, path := sqliteConfig(t)
	db := openSQLite(t, path)
	_, err := db.Exec(`CREATE TABLE other (id INTEGER)`)
	require.NoError(t, err)
	// An index already holds the name of the second table.
	_, err = db.Exec(`CREATE INDEX "Post" ON other (id)`)
	require.NoError(t, err)

	_, err = quietBootstrapper(nil).RunConfig(context.Background(), cfg, userPostCatalog())
	require.ErrorIs(t, err, ErrSchemaConflict)
	assert.ErrorContains(t, err, "index")

	assert.Equal(t, []string{"other"}, sqliteTables(t, path), "User must not be committed")
}

func TestSQLite_UnsupportedTypeLeavesBackendUnchanged(t *testing.T) {
	t.Parallel()

	cfg, path := sqliteConfig(t)
	_, err := quietBootstrapper(nil).RunConfig(context.Background(), cfg,
		userCatalog(schema.Field{Name: "ttl", Type: schema.TypeInterval}))
	require.ErrorIs(t, err, ErrDefinition)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no connection may be opened")
}

func TestSQLite_UnreachableBackend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "app.db")
	cfg := storage.Config{Kind: "sqlite", DSN: "file:" + path + "?mode=ro"}

	_, err := quietBootstrapper(nil).RunConfig(context.Background(), cfg, userCatalog())
	require.ErrorIs(t, err, ErrConnection)

	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, OpConnect, berr.Op)
}

func TestSQLite_RunOnBorrowedRepository(t *testing.T) {
	t.Parallel()

	cfg, path := sqliteConfig(t)
	repo, err := storage.New(context.Background(), cfg)
	require.NoError(t, err)
	defer repo.Close()

	d, err := storage.DialectFor("sqlite")
	require.NoError(t, err)

	res, err := quietBootstrapper(d).Run(context.Background(), repo, userPostCatalog())
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Post"}, res.Created)

	require.NoError(t, repo.Ping(context.Background()), "Run must not close a borrowed repository")
	assert.Equal(t, []string{"Post", "User"}, sqliteTables(t, path))
}
