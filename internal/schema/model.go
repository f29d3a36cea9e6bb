// Package schema defines the declared shape of persistent entities and the
// catalog that groups them for a bootstrap run. Nothing in this package talks
// to a database; physical names and types are derived later by a dialect.
package schema

import "strings"

// FieldType is a logical, backend-neutral column type.
type FieldType string

const (
	TypeInteger   FieldType = "integer"
	TypeBigInt    FieldType = "bigint"
	TypeSmallInt  FieldType = "smallint"
	TypeFloat     FieldType = "float"
	TypeDecimal   FieldType = "decimal"
	TypeString    FieldType = "string"
	TypeText      FieldType = "text"
	TypeBoolean   FieldType = "boolean"
	TypeDate      FieldType = "date"
	TypeTime      FieldType = "time"
	TypeTimestamp FieldType = "timestamp"
	TypeUUID      FieldType = "uuid"
	TypeJSON      FieldType = "json"
	TypeBinary    FieldType = "binary"
	TypeInterval  FieldType = "interval"
)

// aliases maps accepted spellings to their canonical FieldType.
var aliases = map[string]FieldType{
	"integer":     TypeInteger,
	"int":         TypeInteger,
	"bigint":      TypeBigInt,
	"int64":       TypeBigInt,
	"smallint":    TypeSmallInt,
	"int16":       TypeSmallInt,
	"float":       TypeFloat,
	"double":      TypeFloat,
	"real":        TypeFloat,
	"decimal":     TypeDecimal,
	"numeric":     TypeDecimal,
	"string":      TypeString,
	"varchar":     TypeString,
	"text":        TypeText,
	"boolean":     TypeBoolean,
	"bool":        TypeBoolean,
	"date":        TypeDate,
	"time":        TypeTime,
	"timestamp":   TypeTimestamp,
	"timestamptz": TypeTimestamp,
	"datetime":    TypeTimestamp,
	"uuid":        TypeUUID,
	"json":        TypeJSON,
	"jsonb":       TypeJSON,
	"binary":      TypeBinary,
	"bytes":       TypeBinary,
	"blob":        TypeBinary,
	"interval":    TypeInterval,
	"duration":    TypeInterval,
}

// Canonical returns the canonical spelling of t and whether t is a known type.
//
//	"INT"      -> integer, true
//	" jsonb "  -> json, true
//	"geometry" -> "", false
func (t FieldType) Canonical() (FieldType, bool) {
	c, ok := aliases[strings.ToLower(strings.TrimSpace(string(t)))]
	return c, ok
}

// OnDelete actions accepted in a Reference.
const (
	OnDeleteNoAction   = "no action"
	OnDeleteRestrict   = "restrict"
	OnDeleteCascade    = "cascade"
	OnDeleteSetNull    = "set null"
	OnDeleteSetDefault = "set default"
)

// Reference declares a foreign key from a field to a field of another (or the
// same) entity. Field may be empty when the target has a single-column
// primary key.
type Reference struct {
	Entity   string `json:"entity" toml:"entity"`
	Field    string `json:"field,omitempty" toml:"field,omitempty"`
	OnDelete string `json:"on_delete,omitempty" toml:"on_delete,omitempty"`
}

// Field is a single typed attribute of an Entity.
type Field struct {
	Name       string     `json:"name" toml:"name"`
	Type       FieldType  `json:"type" toml:"type"`
	Length     int        `json:"length,omitempty" toml:"length,omitempty"`
	Precision  int        `json:"precision,omitempty" toml:"precision,omitempty"`
	Scale      int        `json:"scale,omitempty" toml:"scale,omitempty"`
	PrimaryKey bool       `json:"primary_key,omitempty" toml:"primary_key,omitempty"`
	Nullable   bool       `json:"nullable,omitempty" toml:"nullable,omitempty"`
	Unique     bool       `json:"unique,omitempty" toml:"unique,omitempty"`
	Default    string     `json:"default,omitempty" toml:"default,omitempty"`
	References *Reference `json:"references,omitempty" toml:"references,omitempty"`
}

// Entity is the declared shape of a persistent record type.
type Entity struct {
	Name   string     `json:"name" toml:"name"`
	Table  string     `json:"table,omitempty" toml:"table,omitempty"`
	Schema string     `json:"schema,omitempty" toml:"schema,omitempty"`
	Fields []Field    `json:"fields" toml:"fields"`
	Unique [][]string `json:"unique,omitempty" toml:"unique,omitempty"`
}

// TableName returns the physical table name, defaulting to the entity name.
func (e Entity) TableName() string {
	if t := strings.TrimSpace(e.Table); t != "" {
		return t
	}
	return strings.TrimSpace(e.Name)
}

// FQN returns the dotted table name, "schema.table" when a schema is set.
func (e Entity) FQN() string {
	if s := strings.TrimSpace(e.Schema); s != "" {
		return s + "." + e.TableName()
	}
	return e.TableName()
}

// Field returns the field with the given name (matched like catalog names).
func (e Entity) Field(name string) (Field, bool) {
	k := key(name)
	for _, f := range e.Fields {
		if key(f.Name) == k {
			return f, true
		}
	}
	return Field{}, false
}

// PrimaryKey returns the primary-key fields in declaration order.
func (e Entity) PrimaryKey() []Field {
	var pk []Field
	for _, f := range e.Fields {
		if f.PrimaryKey {
			pk = append(pk, f)
		}
	}
	return pk
}
