package ddl

import (
	"fmt"
	"strings"

	gddl "schemaboot/internal/ddl"
	"schemaboot/internal/storage"
)

// BuildCreateTableSQL returns a SQLite CREATE TABLE IF NOT EXISTS statement
// for the given table definition.
//
// SQLite does not accept a schema-qualified table in a REFERENCES clause; the
// referenced table is always resolved in the schema of the new table, so only
// its last segment is rendered.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	if len(t.ForeignKeys) > 0 {
		fks := make([]gddl.ForeignKeyDef, len(t.ForeignKeys))
		for i, fk := range t.ForeignKeys {
			_, fk.RefTable = storage.SplitFQN(fk.RefTable)
			fks[i] = fk
		}
		t.ForeignKeys = fks
	}

	body, err := gddl.Body(t, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("sqlite ddl: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		QuoteFQN(t.FQN),
		strings.Join(body, ",\n  "),
	)
	return stmt, nil
}

// QuoteFQN quotes each segment of a possibly-qualified name:
//
//	"main.events" -> "main"."events"
func QuoteFQN(fqn string) string {
	return gddl.QuoteFQN(fqn, quoteIdent)
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
