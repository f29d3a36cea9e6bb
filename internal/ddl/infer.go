package ddl

import (
	"fmt"
	"strings"

	"schemaboot/internal/schema"
)

// TypeMapper maps a field's logical type (plus length/precision) to a
// dialect's SQL type. It returns an error when the dialect cannot represent
// the field.
type TypeMapper interface {
	MapType(f schema.Field) (string, error)
}

// FromEntity derives the physical table for e. References are resolved
// against cat so the referenced table's FQN and column can be rendered.
//
// The field's Type is canonicalized before it reaches the mapper, so mappers
// only ever see the constants declared in package schema.
func FromEntity(cat *schema.Catalog, e schema.Entity, m TypeMapper) (TableDef, error) {
	fqn := strings.TrimSpace(e.FQN())
	if fqn == "" {
		return TableDef{}, fmt.Errorf("entity %q has no table name", e.Name)
	}

	var uniques []UniqueDef
	// Composite unique sets name fields case-insensitively; render the
	// declared spelling and let the mapper treat members as keyed.
	keyed := map[string]bool{}
	for _, set := range e.Unique {
		cols := make([]string, len(set))
		for i, c := range set {
			f, ok := e.Field(c)
			if !ok {
				return TableDef{}, fmt.Errorf("entity %s: unique constraint names unknown field %q", e.Name, strings.TrimSpace(c))
			}
			cols[i] = strings.TrimSpace(f.Name)
			keyed[cols[i]] = true
		}
		uniques = append(uniques, UniqueDef{Columns: cols})
	}

	def := TableDef{FQN: fqn}
	for _, f := range e.Fields {
		typ, ok := f.Type.Canonical()
		if !ok {
			return TableDef{}, fmt.Errorf("entity %s field %s: unsupported field type %q", e.Name, f.Name, f.Type)
		}
		f.Type = typ

		mf := f
		if keyed[strings.TrimSpace(f.Name)] {
			mf.Unique = true
		}
		sqlType, err := m.MapType(mf)
		if err != nil {
			return TableDef{}, fmt.Errorf("entity %s field %s: %w", e.Name, f.Name, err)
		}

		def.Columns = append(def.Columns, ColumnDef{
			Name:       strings.TrimSpace(f.Name),
			SQLType:    sqlType,
			Nullable:   f.Nullable && !f.PrimaryKey,
			PrimaryKey: f.PrimaryKey,
			Unique:     f.Unique,
			Default:    f.Default,
		})

		if f.References == nil {
			continue
		}
		target, tf, err := cat.Resolve(*f.References)
		if err != nil {
			return TableDef{}, fmt.Errorf("entity %s field %s: %w", e.Name, f.Name, err)
		}
		def.ForeignKeys = append(def.ForeignKeys, ForeignKeyDef{
			Columns:    []string{strings.TrimSpace(f.Name)},
			RefTable:   target.FQN(),
			RefColumns: []string{strings.TrimSpace(tf.Name)},
			OnDelete:   strings.ToUpper(strings.TrimSpace(f.References.OnDelete)),
		})
	}

	def.Uniques = uniques
	return def, nil
}
