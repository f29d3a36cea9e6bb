// Package ddl defines a small, backend-agnostic model for SQL DDL and the
// shared pieces of rendering a CREATE TABLE body from that model.
//
// The goal of this package is to stay generic: it does not assume any specific
// SQL dialect. In particular, it:
//
//   - Does not choose identifier quoting; callers pass a Quoter.
//   - Does not emit the statement head (CREATE TABLE IF NOT EXISTS, T-SQL
//     OBJECT_ID guards, ...). Dialect packages wrap the body themselves.
//   - Treats ColumnDef.Default as raw SQL (the caller is responsible for
//     safety and dialect correctness).
//
// Backend-specific packages (e.g., internal/storage/postgres/ddl) build their
// statements from Body using the same TableDef/ColumnDef types.
package ddl

import (
	"fmt"
	"strings"
)

// Quoter quotes a single identifier segment, e.g. `"name"` or `[name]`.
type Quoter func(ident string) string

// QuoteFQN quotes each non-empty segment of a dotted name with q:
//
//	QuoteFQN("public.users", pg) => "public"."users"
//	QuoteFQN(".a..b.", pg)       => "a"."b"
func QuoteFQN(fqn string, q Quoter) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, q(p))
	}
	return strings.Join(out, ".")
}

// Check validates the parts of t every dialect relies on:
//   - t.FQN must be non-empty.
//   - At least one column is present.
//   - Each column has a non-empty Name and SQLType.
//   - Constraints list at least one column.
func Check(t TableDef) error {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return fmt.Errorf("table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("column with empty name in table %s", fqn)
		}
		if strings.TrimSpace(c.SQLType) == "" {
			return fmt.Errorf("column %s missing SQLType", name)
		}
	}
	for _, fk := range t.ForeignKeys {
		if len(fk.Columns) == 0 || len(fk.Columns) != len(fk.RefColumns) {
			return fmt.Errorf("foreign key on %s: %d columns reference %d columns", fqn, len(fk.Columns), len(fk.RefColumns))
		}
		if strings.TrimSpace(fk.RefTable) == "" {
			return fmt.Errorf("foreign key on %s: referenced table must not be empty", fqn)
		}
	}
	for _, u := range t.Uniques {
		if len(u.Columns) == 0 {
			return fmt.Errorf("unique constraint on %s lists no columns", fqn)
		}
	}
	return nil
}

// Body renders the column and constraint clauses of a CREATE TABLE statement,
// one clause per element, in this order:
//
//	<col> <SQLType> [NOT NULL] [UNIQUE] [DEFAULT <expr>]   (one per column)
//	PRIMARY KEY (<pk-cols>)                                 (declaration order)
//	UNIQUE (<cols>)                                         (one per UniqueDef)
//	FOREIGN KEY (<cols>) REFERENCES <table> (<cols>) [ON DELETE <action>]
//
// Primary-key columns are always NOT NULL. A column that is the sole primary
// key does not also get UNIQUE.
func Body(t TableDef, q Quoter) ([]string, error) {
	if err := Check(t); err != nil {
		return nil, err
	}

	pk := t.PrimaryKey()
	clauses := make([]string, 0, len(t.Columns)+len(t.ForeignKeys)+len(t.Uniques)+1)

	for _, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(q(strings.TrimSpace(c.Name)))
		sb.WriteByte(' ')
		sb.WriteString(strings.TrimSpace(c.SQLType))

		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if c.Unique && !(c.PrimaryKey && len(pk) == 1) {
			sb.WriteString(" UNIQUE")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}
		clauses = append(clauses, sb.String())
	}

	if len(pk) > 0 {
		clauses = append(clauses, fmt.Sprintf("PRIMARY KEY (%s)", identList(pk, q)))
	}
	for _, u := range t.Uniques {
		clauses = append(clauses, fmt.Sprintf("UNIQUE (%s)", identList(u.Columns, q)))
	}
	for _, fk := range t.ForeignKeys {
		clause := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			identList(fk.Columns, q), QuoteFQN(fk.RefTable, q), identList(fk.RefColumns, q))
		if action := strings.TrimSpace(fk.OnDelete); action != "" {
			clause += " ON DELETE " + action
		}
		clauses = append(clauses, clause)
	}

	return clauses, nil
}

func identList(names []string, q Quoter) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = q(strings.TrimSpace(n))
	}
	return strings.Join(out, ", ")
}
