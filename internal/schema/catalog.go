package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// key normalizes an identifier for lookups and duplicate detection. Names
// that differ only in case, surrounding space, or Unicode composition collide,
// since most backends fold or compare them that way.
func key(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// Catalog is the explicit, ordered collection of entity definitions handed to
// a bootstrap run. The zero value is an empty catalog ready for Add.
type Catalog struct {
	entities []Entity
}

// NewCatalog returns a catalog holding entities in the given order.
func NewCatalog(entities ...Entity) *Catalog {
	c := &Catalog{}
	for _, e := range entities {
		c.Add(e)
	}
	return c
}

// Add appends an entity. Duplicates are kept and reported by Validate.
func (c *Catalog) Add(e Entity) {
	e.Fields = append([]Field(nil), e.Fields...)
	c.entities = append(c.entities, e)
}

// Len reports the number of entities.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entities)
}

// Entities returns a copy of the entities in declaration order.
func (c *Catalog) Entities() []Entity {
	if c == nil {
		return nil
	}
	return append([]Entity(nil), c.entities...)
}

// Lookup returns the first entity whose name matches.
func (c *Catalog) Lookup(name string) (Entity, bool) {
	if c == nil {
		return Entity{}, false
	}
	k := key(name)
	for _, e := range c.entities {
		if key(e.Name) == k {
			return e, true
		}
	}
	return Entity{}, false
}

// Resolve returns the entity and field a Reference points at. An empty
// Reference.Field resolves to the target's primary key when it has exactly
// one column.
func (c *Catalog) Resolve(ref Reference) (Entity, Field, error) {
	target, ok := c.Lookup(ref.Entity)
	if !ok {
		return Entity{}, Field{}, fmt.Errorf("unknown entity %q", ref.Entity)
	}
	if strings.TrimSpace(ref.Field) == "" {
		pk := target.PrimaryKey()
		if len(pk) != 1 {
			return Entity{}, Field{}, fmt.Errorf("entity %q has %d primary-key fields; reference must name a field", target.Name, len(pk))
		}
		return target, pk[0], nil
	}
	f, ok := target.Field(ref.Field)
	if !ok {
		return Entity{}, Field{}, fmt.Errorf("entity %q has no field %q", target.Name, ref.Field)
	}
	return target, f, nil
}

// Ordered returns the entities sorted so that every referenced entity comes
// before the entities referencing it. Ties keep declaration order. Self
// references are allowed; longer cycles and dangling references are errors.
func (c *Catalog) Ordered() ([]Entity, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	n := c.Len()
	index := make(map[string]int, n)
	for i, e := range c.entities {
		if _, dup := index[key(e.Name)]; !dup {
			index[key(e.Name)] = i
		}
	}

	state := make([]int, n)
	out := make([]Entity, 0, n)
	var stack []string

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("reference cycle: %s -> %s", strings.Join(stack, " -> "), c.entities[i].Name)
		}
		state[i] = visiting
		stack = append(stack, c.entities[i].Name)

		for _, f := range c.entities[i].Fields {
			if f.References == nil {
				continue
			}
			j, ok := index[key(f.References.Entity)]
			if !ok {
				return fmt.Errorf("entity %q field %q references unknown entity %q",
					c.entities[i].Name, f.Name, f.References.Entity)
			}
			if j == i {
				continue
			}
			if err := visit(j); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[i] = done
		out = append(out, c.entities[i])
		return nil
	}

	for i := range c.entities {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}
