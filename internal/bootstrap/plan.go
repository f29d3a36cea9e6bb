package bootstrap

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"schemaboot/internal/ddl"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
)

// Statement is the rendered "create if absent" DDL for one entity.
type Statement struct {
	Entity string `json:"entity"`
	Table  string `json:"table"`
	SQL    string `json:"sql"`
}

// Plan validates cat and renders its statements for d, referenced tables
// first. It never touches a backend; every failure is a definition error.
func Plan(d storage.Dialect, cat *schema.Catalog) ([]Statement, error) {
	if d == nil {
		return nil, fmt.Errorf("bootstrap plan: nil dialect")
	}
	if cat == nil {
		cat = schema.NewCatalog()
	}

	if err := cat.Validate().Err(); err != nil {
		return nil, &Error{Kind: storage.KindDefinition, Op: OpPlan, Err: err}
	}

	ordered, err := cat.Ordered()
	if err != nil {
		return nil, &Error{Kind: storage.KindDefinition, Op: OpPlan, Err: err}
	}

	stmts := make([]Statement, 0, len(ordered))
	for _, e := range ordered {
		t, err := ddl.FromEntity(cat, e, d)
		if err != nil {
			return nil, &Error{Kind: storage.KindDefinition, Op: OpPlan, Entity: e.Name, Err: err}
		}
		sql, err := d.BuildCreateTableSQL(t)
		if err != nil {
			return nil, &Error{Kind: storage.KindDefinition, Op: OpPlan, Entity: e.Name, Err: err}
		}
		stmts = append(stmts, Statement{Entity: e.Name, Table: t.FQN, SQL: sql})
	}
	return stmts, nil
}

// Fingerprint hashes the rendered statements in order.
func Fingerprint(stmts []Statement) string {
	sqls := make([]string, len(stmts))
	for i, s := range stmts {
		sqls[i] = s.SQL
	}
	return fmt.Sprintf("%016x", xxh3.Hash([]byte(strings.Join(sqls, "\n"))))
}
