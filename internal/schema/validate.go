package schema

// This file adds a linter for Catalog values. It performs static checks over
// the declared entities and returns a list of issues (errors and warnings)
// that callers can surface in a CLI or turn into a definition error.

import (
	"errors"
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a catalog issue.
type IssueSeverity string

const (
	// SeverityError marks a definition that cannot be translated to a table.
	SeverityError IssueSeverity = "error"
	// SeverityWarning marks a definition that bootstraps but is likely wrong.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the catalog (e.g. "entities[0].fields[2].type").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Issues is the result of Validate.
type Issues []Issue

// HasErrors reports whether any issue has SeverityError.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err joins the error-severity issues into one error, or returns nil.
func (is Issues) Err() error {
	var errs []error
	for _, i := range is {
		if i.Severity == SeverityError {
			errs = append(errs, i)
		}
	}
	return errors.Join(errs...)
}

var onDeleteActions = map[string]struct{}{
	"":                 {},
	OnDeleteNoAction:   {},
	OnDeleteRestrict:   {},
	OnDeleteCascade:    {},
	OnDeleteSetNull:    {},
	OnDeleteSetDefault: {},
}

// Validate lints the catalog. It does not mutate it.
func (c *Catalog) Validate() Issues {
	var issues Issues

	if c.Len() == 0 {
		return append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "entities",
			Message:  "catalog has no entities; bootstrap will create nothing",
		})
	}

	names := map[string]int{}
	tables := map[string]int{}
	for i, e := range c.entities {
		path := fmt.Sprintf("entities[%d]", i)

		if strings.TrimSpace(e.Name) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: path + ".name", Message: "entity name must not be empty"})
			continue
		}
		if j, dup := names[key(e.Name)]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".name",
				Message:  fmt.Sprintf("entity %q duplicates entities[%d]", e.Name, j),
			})
		} else {
			names[key(e.Name)] = i
		}
		if j, dup := tables[key(e.FQN())]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".table",
				Message:  fmt.Sprintf("table %q is also declared by entities[%d]", e.FQN(), j),
			})
		} else {
			tables[key(e.FQN())] = i
		}

		issues = append(issues, c.validateEntity(path, e)...)
	}

	if !issues.HasErrors() {
		if _, err := c.Ordered(); err != nil {
			issues = append(issues, Issue{Severity: SeverityError, Path: "entities", Message: err.Error()})
		}
	}
	return issues
}

func (c *Catalog) validateEntity(path string, e Entity) Issues {
	var issues Issues

	if len(e.Fields) == 0 {
		return append(issues, Issue{Severity: SeverityError, Path: path + ".fields", Message: fmt.Sprintf("entity %q declares no fields", e.Name)})
	}

	seen := map[string]int{}
	for i, f := range e.Fields {
		fpath := fmt.Sprintf("%s.fields[%d]", path, i)
		if strings.TrimSpace(f.Name) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: fpath + ".name", Message: "field name must not be empty"})
			continue
		}
		if j, dup := seen[key(f.Name)]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fpath + ".name",
				Message:  fmt.Sprintf("field %q duplicates fields[%d]", f.Name, j),
			})
		} else {
			seen[key(f.Name)] = i
		}
		issues = append(issues, c.validateField(fpath, f)...)
	}

	if len(e.PrimaryKey()) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     path + ".fields",
			Message:  fmt.Sprintf("entity %q has no primary key", e.Name),
		})
	}

	for i, set := range e.Unique {
		upath := fmt.Sprintf("%s.unique[%d]", path, i)
		if len(set) == 0 {
			issues = append(issues, Issue{Severity: SeverityError, Path: upath, Message: "unique constraint must list at least one field"})
			continue
		}
		inSet := map[string]struct{}{}
		for _, col := range set {
			if _, ok := e.Field(col); !ok {
				issues = append(issues, Issue{Severity: SeverityError, Path: upath, Message: fmt.Sprintf("unique constraint names unknown field %q", col)})
			}
			if _, dup := inSet[key(col)]; dup {
				issues = append(issues, Issue{Severity: SeverityError, Path: upath, Message: fmt.Sprintf("unique constraint lists field %q twice", col)})
			}
			inSet[key(col)] = struct{}{}
		}
	}

	return issues
}

func (c *Catalog) validateField(path string, f Field) Issues {
	var issues Issues

	typ, ok := f.Type.Canonical()
	if !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".type",
			Message:  fmt.Sprintf("unsupported field type %q", f.Type),
		})
	}

	if f.PrimaryKey && f.Nullable {
		issues = append(issues, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf("primary-key field %q cannot be nullable", f.Name)})
	}

	if f.Length < 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: path + ".length", Message: "length must not be negative"})
	} else if f.Length > 0 && ok && typ != TypeString {
		issues = append(issues, Issue{Severity: SeverityWarning, Path: path + ".length", Message: fmt.Sprintf("length is ignored for type %q", typ)})
	}

	switch {
	case f.Precision < 0 || f.Scale < 0:
		issues = append(issues, Issue{Severity: SeverityError, Path: path, Message: "precision and scale must not be negative"})
	case f.Scale > 0 && f.Precision == 0:
		issues = append(issues, Issue{Severity: SeverityError, Path: path + ".scale", Message: "scale requires a precision"})
	case f.Scale > f.Precision:
		issues = append(issues, Issue{Severity: SeverityError, Path: path + ".scale", Message: fmt.Sprintf("scale %d exceeds precision %d", f.Scale, f.Precision)})
	case (f.Precision > 0 || f.Scale > 0) && ok && typ != TypeDecimal:
		issues = append(issues, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf("precision and scale are ignored for type %q", typ)})
	}

	if f.References != nil {
		issues = append(issues, c.validateReference(path+".references", f, typ)...)
	}
	return issues
}

func (c *Catalog) validateReference(path string, f Field, typ FieldType) Issues {
	var issues Issues
	ref := *f.References

	if strings.TrimSpace(ref.Entity) == "" {
		return append(issues, Issue{Severity: SeverityError, Path: path + ".entity", Message: "reference must name an entity"})
	}
	target, tf, err := c.Resolve(ref)
	if err != nil {
		return append(issues, Issue{Severity: SeverityError, Path: path, Message: err.Error()})
	}
	if !tf.PrimaryKey && !tf.Unique && !singleColumnUnique(target, tf.Name) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".field",
			Message:  fmt.Sprintf("referenced field %s.%s must be a primary key or unique", target.Name, tf.Name),
		})
	}
	if len(target.PrimaryKey()) > 1 && tf.PrimaryKey && !tf.Unique && !singleColumnUnique(target, tf.Name) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".field",
			Message:  fmt.Sprintf("referenced field %s.%s is only part of a composite primary key", target.Name, tf.Name),
		})
	}
	if ttyp, ok := tf.Type.Canonical(); ok && typ != "" && ttyp != typ {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path,
			Message:  fmt.Sprintf("field type %q does not match referenced %s.%s type %q", typ, target.Name, tf.Name, ttyp),
		})
	}

	action := strings.ToLower(strings.TrimSpace(ref.OnDelete))
	if _, ok := onDeleteActions[action]; !ok {
		issues = append(issues, Issue{Severity: SeverityError, Path: path + ".on_delete", Message: fmt.Sprintf("unknown on_delete action %q", ref.OnDelete)})
	}
	if action == OnDeleteSetNull && !f.Nullable {
		issues = append(issues, Issue{Severity: SeverityError, Path: path + ".on_delete", Message: fmt.Sprintf("on_delete %q requires field %q to be nullable", ref.OnDelete, f.Name)})
	}
	return issues
}

func singleColumnUnique(e Entity, field string) bool {
	for _, set := range e.Unique {
		if len(set) == 1 && key(set[0]) == key(field) {
			return true
		}
	}
	return false
}
