package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(issues Issues, sev IssueSeverity, path, msgSubstr string) bool {
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func TestValidateValidCatalog(t *testing.T) {
	t.Parallel()

	issues := NewCatalog(userEntity(), postEntity()).Validate()
	assert.Empty(t, issues)
	assert.NoError(t, issues.Err())
}

func TestValidateEmptyCatalogWarns(t *testing.T) {
	t.Parallel()

	issues := NewCatalog().Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.False(t, issues.HasErrors())
}

func TestValidateIssues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entities []Entity
		sev      IssueSeverity
		path     string
		msg      string
	}{
		{
			name:     "empty entity name",
			entities: []Entity{{Fields: []Field{{Name: "id", Type: TypeInteger}}}},
			sev:      SeverityError,
			path:     "entities[0].name",
			msg:      "must not be empty",
		},
		{
			name:     "duplicate entity after normalization",
			entities: []Entity{userEntity(), {Name: " user ", Table: "people", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true}}}},
			sev:      SeverityError,
			path:     "entities[1].name",
			msg:      "duplicates entities[0]",
		},
		{
			name: "duplicate table",
			entities: []Entity{
				userEntity(),
				{Name: "Account", Table: "USER", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true}}},
			},
			sev:  SeverityError,
			path: "entities[1].table",
			msg:  "also declared by entities[0]",
		},
		{
			name:     "no fields",
			entities: []Entity{{Name: "Empty"}},
			sev:      SeverityError,
			path:     "entities[0].fields",
			msg:      "declares no fields",
		},
		{
			name:     "duplicate field",
			entities: []Entity{{Name: "U", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true}, {Name: "ID", Type: TypeText}}}},
			sev:      SeverityError,
			path:     "entities[0].fields[1].name",
			msg:      "duplicates fields[0]",
		},
		{
			name:     "unsupported type",
			entities: []Entity{{Name: "U", Fields: []Field{{Name: "shape", Type: "geometry"}}}},
			sev:      SeverityError,
			path:     "entities[0].fields[0].type",
			msg:      `unsupported field type "geometry"`,
		},
		{
			name:     "nullable primary key",
			entities: []Entity{{Name: "U", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true, Nullable: true}}}},
			sev:      SeverityError,
			path:     "entities[0].fields[0]",
			msg:      "cannot be nullable",
		},
		{
			name:     "scale exceeds precision",
			entities: []Entity{{Name: "U", Fields: []Field{{Name: "amount", Type: TypeDecimal, Precision: 4, Scale: 6}}}},
			sev:      SeverityError,
			path:     "entities[0].fields[0].scale",
			msg:      "exceeds precision",
		},
		{
			name:     "length on integer",
			entities: []Entity{{Name: "U", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true, Length: 10}}}},
			sev:      SeverityWarning,
			path:     "entities[0].fields[0].length",
			msg:      "ignored",
		},
		{
			name:     "missing primary key",
			entities: []Entity{{Name: "Log", Fields: []Field{{Name: "line", Type: TypeText}}}},
			sev:      SeverityWarning,
			path:     "entities[0].fields",
			msg:      "no primary key",
		},
		{
			name:     "unique names unknown field",
			entities: []Entity{{Name: "U", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true}}, Unique: [][]string{{"id", "email"}}}},
			sev:      SeverityError,
			path:     "entities[0].unique[0]",
			msg:      `unknown field "email"`,
		},
		{
			name:     "reference to unknown entity",
			entities: []Entity{postEntity()},
			sev:      SeverityError,
			path:     "entities[0].fields[1].references",
			msg:      `unknown entity "User"`,
		},
		{
			name: "reference type mismatch",
			entities: []Entity{userEntity(), {Name: "Post", Fields: []Field{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "author", Type: TypeString, References: &Reference{Entity: "User"}},
			}}},
			sev:  SeverityError,
			path: "entities[1].fields[1].references",
			msg:  "does not match",
		},
		{
			name: "reference to non-unique field",
			entities: []Entity{userEntity(), {Name: "Post", Fields: []Field{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "author_name", Type: TypeString, References: &Reference{Entity: "User", Field: "name"}},
			}}},
			sev:  SeverityError,
			path: "entities[1].fields[1].references.field",
			msg:  "must be a primary key or unique",
		},
		{
			name: "set null on required field",
			entities: []Entity{userEntity(), {Name: "Post", Fields: []Field{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "author_id", Type: TypeInteger, References: &Reference{Entity: "User", OnDelete: "SET NULL"}},
			}}},
			sev:  SeverityError,
			path: "entities[1].fields[1].references.on_delete",
			msg:  "requires field",
		},
		{
			name: "unknown on delete action",
			entities: []Entity{userEntity(), {Name: "Post", Fields: []Field{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "author_id", Type: TypeInteger, References: &Reference{Entity: "User", OnDelete: "explode"}},
			}}},
			sev:  SeverityError,
			path: "entities[1].fields[1].references.on_delete",
			msg:  "unknown on_delete",
		},
		{
			name: "cycle",
			entities: []Entity{
				{Name: "A", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true}, {Name: "b", Type: TypeInteger, References: &Reference{Entity: "B"}}}},
				{Name: "B", Fields: []Field{{Name: "id", Type: TypeInteger, PrimaryKey: true}, {Name: "a", Type: TypeInteger, References: &Reference{Entity: "A"}}}},
			},
			sev:  SeverityError,
			path: "entities",
			msg:  "reference cycle",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			issues := NewCatalog(tt.entities...).Validate()
			assert.Truef(t, hasIssue(issues, tt.sev, tt.path, tt.msg),
				"want %s at %s containing %q; got %+v", tt.sev, tt.path, tt.msg, issues)
			if tt.sev == SeverityError {
				assert.Error(t, issues.Err())
			}
		})
	}
}

func TestIssuesErrJoinsOnlyErrors(t *testing.T) {
	t.Parallel()

	issues := Issues{
		{Severity: SeverityWarning, Path: "a", Message: "warn"},
		{Severity: SeverityError, Path: "b", Message: "broken"},
	}
	err := issues.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error at b: broken")
	assert.NotContains(t, err.Error(), "warn")
}
