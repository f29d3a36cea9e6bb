package ddl

// ColumnDef describes a single column in a table definition. It uses simple,
// database-agnostic fields; dialects quote and render them.
//
// Fields:
//   - Name: column name (unquoted; quoting/escaping happens at render time)
//   - SQLType: target SQL type already mapped by a dialect (e.g., TEXT, BIGINT)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Unique: single-column UNIQUE constraint
//   - Default: raw default expression (e.g., 'anon', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	Default    string
}

// ForeignKeyDef is a FOREIGN KEY table constraint. RefTable is a dotted FQN.
// OnDelete is an upper-case referential action or empty.
type ForeignKeyDef struct {
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string
}

// UniqueDef is a (possibly composite) UNIQUE table constraint.
type UniqueDef struct {
	Columns []string
}

// TableDef holds the fully-qualified table name (FQN) and an ordered list of
// columns plus table constraints. The FQN is expected in dotted form (e.g.,
// "schema.table") and will be quoted/escaped by renderers as needed.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	ForeignKeys []ForeignKeyDef
	Uniques     []UniqueDef
}

// PrimaryKey returns the primary-key column names in declaration order.
func (t TableDef) PrimaryKey() []string {
	var pk []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
		}
	}
	return pk
}
