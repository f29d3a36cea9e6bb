package ddl

import (
	"fmt"
	"strings"

	gddl "schemaboot/internal/ddl"
)

// BuildCreateTableSQL returns a MySQL CREATE TABLE IF NOT EXISTS statement for
// the given table definition. No trailing semicolon: the driver sends it as a
// single statement.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	body, err := gddl.Body(t, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("mysql ddl: %w", err)
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		QuoteFQN(t.FQN),
		strings.Join(body, ",\n  "),
	), nil
}

// BuildDropTableSQL returns the statement that removes a table created by a
// failed run.
func BuildDropTableSQL(fqn string) string {
	return "DROP TABLE IF EXISTS " + QuoteFQN(fqn)
}

// QuoteFQN quotes each segment of a "database.table" name with backticks.
func QuoteFQN(fqn string) string {
	return gddl.QuoteFQN(fqn, quoteIdent)
}

func quoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
