package ddl

import (
	"strings"
	"testing"

	gddl "schemaboot/internal/ddl"
)

// TestQuoteIdent verifies bracket quoting and escaping of closing brackets.
func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "name", want: "[name]"},
		{name: "with space", in: "user name", want: "[user name]"},
		{name: "with closing bracket", in: "weird]id", want: "[weird]]id]"},
		{name: "with opening bracket", in: "a[b", want: "[a[b]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := quoteIdent(tt.in); got != tt.want {
				t.Fatalf("quoteIdent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestQuoteFQN verifies schema-qualified names are quoted per segment.
func TestQuoteFQN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Users", want: "[Users]"},
		{in: "dbo.Users", want: "[dbo].[Users]"},
		{in: "a.b.c", want: "[a].[b].[c]"},
		{in: " .dbo..Users ", want: "[dbo].[Users]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := QuoteFQN(tt.in); got != tt.want {
				t.Fatalf("QuoteFQN(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestBuildCreateTableSQL checks the guarded script, including RESTRICT being
// rendered as NO ACTION and quotes escaped inside the OBJECT_ID literal.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		FQN: "dbo.O'Brien",
		Columns: []gddl.ColumnDef{
			{Name: "id", SQLType: "INT", PrimaryKey: true},
			{Name: "owner_id", SQLType: "INT", Nullable: true},
			{Name: "code", SQLType: "NVARCHAR(16)", Unique: true},
		},
		ForeignKeys: []gddl.ForeignKeyDef{{
			Columns:    []string{"owner_id"},
			RefTable:   "dbo.Users",
			RefColumns: []string{"id"},
			OnDelete:   "RESTRICT",
		}},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}

	want := "IF OBJECT_ID(N'[dbo].[O''Brien]', N'U') IS NULL\n" +
		"BEGIN\n" +
		"  CREATE TABLE [dbo].[O'Brien] (\n" +
		"    [id] INT NOT NULL,\n" +
		"    [owner_id] INT,\n" +
		"    [code] NVARCHAR(16) NOT NULL UNIQUE,\n" +
		"    PRIMARY KEY ([id]),\n" +
		"    FOREIGN KEY ([owner_id]) REFERENCES [dbo].[Users] ([id]) ON DELETE NO ACTION\n" +
		"  );\n" +
		"END;"
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
	if def.ForeignKeys[0].OnDelete != "RESTRICT" {
		t.Fatalf("caller's foreign keys were modified")
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(gddl.TableDef{FQN: "dbo.t"})
	if err == nil || !strings.HasPrefix(err.Error(), "mssql ddl: ") {
		t.Fatalf("BuildCreateTableSQL() error = %v, want mssql ddl error", err)
	}
}
