// Package ddl provides MSSQL-specific helpers for generating CREATE TABLE
// statements from the generic ddl.TableDef model.
//
// The builder here:
//   - Uses SQL Server-style identifier quoting: [schema].[table], [col].
//   - Wraps CREATE TABLE in an IF OBJECT_ID(...) IS NULL guard since T-SQL
//     does not support CREATE TABLE IF NOT EXISTS.
//   - Treats ColumnDef.Default as raw SQL.
package ddl

import (
	"fmt"
	"strings"

	gddl "schemaboot/internal/ddl"
)

// BuildCreateTableSQL returns a T-SQL script that creates a table matching
// the provided definition if it does not already exist.
//
// The generated script has the form:
//
//	IF OBJECT_ID(N'[schema].[table]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [schema].[table] (
//	    [col1] TYPE [NOT NULL] [DEFAULT expr],
//	    [col2] TYPE,
//	    PRIMARY KEY ([pk1], [pk2])
//	  );
//	END;
//
// SQL Server has no ON DELETE RESTRICT; it is rendered as NO ACTION, which
// SQL Server enforces immediately.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	if len(t.ForeignKeys) > 0 {
		fks := make([]gddl.ForeignKeyDef, len(t.ForeignKeys))
		for i, fk := range t.ForeignKeys {
			if fk.OnDelete == "RESTRICT" {
				fk.OnDelete = "NO ACTION"
			}
			fks[i] = fk
		}
		t.ForeignKeys = fks
	}

	body, err := gddl.Body(t, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("mssql ddl: %w", err)
	}

	fqnQuoted := QuoteFQN(t.FQN)

	// Indent inner CREATE TABLE for readability.
	stmt := fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n    %s\n  );\nEND;",
		strings.ReplaceAll(fqnQuoted, "'", "''"),
		fqnQuoted,
		strings.Join(body, ",\n    "),
	)

	return stmt, nil
}

// QuoteFQN quotes a possibly schema-qualified table name, e.g.:
//
//	"dbo.Users"   -> [dbo].[Users]
//	"Users"       -> [Users]
//	"a.b.c"       -> [a].[b].[c]
func QuoteFQN(fqn string) string {
	return gddl.QuoteFQN(fqn, quoteIdent)
}

// quoteIdent quotes a single identifier segment for SQL Server using
// bracket syntax, escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}
