package component

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Class is a resolved, constructible component class.
//
// Identity is the pointer: every lookup of the same name on the same Factory
// returns the same *Class. Fields and Components are frozen once the resolver
// hands the class out; the accessors return copies of the maps.
type Class struct {
	id         uuid.UUID
	name       string
	fields     map[string]any
	components map[string]*Class
	ctor       Constructor
}

// NewClass builds a finalized class outside of any factory. Use it to supply
// prebuilt classes through Built refs or Resolved registry entries.
func NewClass(name string, fields map[string]any, components map[string]*Class, ctor Constructor) *Class {
	c := newShell(name)
	maps.Copy(c.fields, fields)
	maps.Copy(c.components, components)
	c.ctor = ctor
	return c
}

func newShell(name string) *Class {
	return &Class{
		id:         uuid.New(),
		name:       name,
		fields:     map[string]any{},
		components: map[string]*Class{},
	}
}

// ID returns the unique id assigned when the class was created.
func (c *Class) ID() uuid.UUID { return c.id }

// Name returns the registry name, or "" for anonymous classes.
func (c *Class) Name() string { return c.name }

// Anonymous reports whether the class was built from a literal descriptor.
func (c *Class) Anonymous() bool { return c.name == "" }

// Field returns a passed-through behavior field.
func (c *Class) Field(key string) (any, bool) {
	v, ok := c.fields[key]
	return v, ok
}

// Fields returns a copy of the behavior fields.
func (c *Class) Fields() map[string]any { return maps.Clone(c.fields) }

// FieldKeys returns the behavior field keys in sorted order.
func (c *Class) FieldKeys() []string { return slices.Sorted(maps.Keys(c.fields)) }

// Component returns the resolved child class registered under key.
func (c *Class) Component(key string) (*Class, bool) {
	v, ok := c.components[key]
	return v, ok
}

// Components returns a copy of the resolved child-components mapping.
func (c *Class) Components() map[string]*Class { return maps.Clone(c.components) }

// ComponentKeys returns the child keys in sorted order.
func (c *Class) ComponentKeys() []string { return slices.Sorted(maps.Keys(c.components)) }

// Ready reports whether the runtime has bound a constructor.
func (c *Class) Ready() bool { return c.ctor != nil }

// New constructs an instance with opts.
func (c *Class) New(opts Options) (any, error) {
	if c.ctor == nil {
		return nil, ClassIncompleteError{Name: c.String()}
	}
	return c.ctor(opts)
}

// String returns the name, or "anonymous:<id>".
func (c *Class) String() string {
	if c.name != "" {
		return c.name
	}
	return "anonymous:" + c.id.String()
}
