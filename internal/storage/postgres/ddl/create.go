package ddl

import (
	"fmt"
	"strings"

	gddl "schemaboot/internal/ddl"
)

// BuildCreateTableSQL returns a Postgres CREATE TABLE IF NOT EXISTS statement
// for the given table definition.
//
// Identifiers are always double-quoted, so mixed-case names such as "User"
// are created exactly as declared rather than folded to lower case.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	body, err := gddl.Body(t, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("postgres ddl: %w", err)
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		QuoteFQN(t.FQN),
		strings.Join(body, ",\n  "),
	), nil
}

// QuoteFQN quotes each segment of a possibly schema-qualified name:
//
//	"public.users" -> "public"."users"
func QuoteFQN(fqn string) string {
	return gddl.QuoteFQN(fqn, quoteIdent)
}

// quoteIdent quotes a single identifier segment, doubling embedded quotes.
func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
