// Package basic is a small in-process component runtime.
//
// It implements component.Runtime: every declared class constructs a
// *Component that keeps its data, its bound element and a property bag. It
// does not render anything; templates are carried as plain strings.
package basic

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/sghaida/cfactory/component"
)

// TemplateField is the behavior field holding the template text.
const TemplateField = "template"

// ErrInvalidTemplate is returned by DefineComponent when the template field is
// present but not a string.
var ErrInvalidTemplate = errors.New("basic: template must be a string")

// Runtime declares classes whose instances are *Component.
type Runtime struct{}

// New returns a Runtime.
func New() *Runtime { return &Runtime{} }

// DefineComponent implements component.Runtime.
func (rt *Runtime) DefineComponent(proto component.Prototype) (component.Constructor, error) {
	tpl := ""
	if v, ok := proto.Fields[TemplateField]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w (got %T)", ErrInvalidTemplate, v)
		}
		tpl = s
	}

	def := &definition{
		name:       proto.Name,
		template:   tpl,
		fields:     maps.Clone(proto.Fields),
		components: maps.Clone(proto.Components),
	}
	return def.construct, nil
}

type definition struct {
	name       string
	template   string
	fields     map[string]any
	components map[string]*component.Class
}

func (d *definition) construct(opts component.Options) (any, error) {
	c := &Component{
		def:     d,
		data:    maps.Clone(opts.Data),
		element: opts.Element,
		props:   map[string]any{},
	}
	if c.data == nil {
		c.data = map[string]any{}
	}
	return c, nil
}

// Component is an instance created by a basic Runtime class.
type Component struct {
	mu      sync.RWMutex
	def     *definition
	data    map[string]any
	element any
	props   map[string]any
}

// Name returns the class name, or "" for anonymous classes.
func (c *Component) Name() string { return c.def.name }

// Template returns the template text of the class.
func (c *Component) Template() string { return c.def.template }

// Field returns a behavior field of the class.
func (c *Component) Field(key string) (any, bool) {
	v, ok := c.def.fields[key]
	return v, ok
}

// Method implements component.MethodProvider. Methods are behavior fields of
// the class, so a descriptor field "setAdder" is found as Method("setAdder").
func (c *Component) Method(name string) (any, bool) {
	v, ok := c.def.fields[name]
	return v, ok && v != nil
}

// Element returns the element the instance was bound to, if any.
func (c *Component) Element() any { return c.element }

// Get returns one data value.
func (c *Component) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[key]
	return v, ok
}

// Set stores one data value.
func (c *Component) Set(key string, v any) {
	c.mu.Lock()
	c.data[key] = v
	c.mu.Unlock()
}

// Data returns a copy of the instance data.
func (c *Component) Data() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return maps.Clone(c.data)
}

// SetProperty implements component.PropertySetter.
func (c *Component) SetProperty(key string, value any) {
	c.mu.Lock()
	c.props[key] = value
	c.mu.Unlock()
}

// Property returns an injected property.
func (c *Component) Property(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.props[key]
	return v, ok
}

// PropertyKeys returns the injected property keys in sorted order.
func (c *Component) PropertyKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.props))
	for k := range c.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChildClass returns the resolved class registered under key.
func (c *Component) ChildClass(key string) (*component.Class, bool) {
	cls, ok := c.def.components[key]
	return cls, ok
}

// Child instantiates the child class registered under key.
func (c *Component) Child(key string, opts component.Options) (*Component, error) {
	cls, ok := c.def.components[key]
	if !ok {
		return nil, fmt.Errorf("basic: %q has no child %q", c.def.name, key)
	}
	inst, err := cls.New(opts)
	if err != nil {
		return nil, err
	}
	child, ok := inst.(*Component)
	if !ok {
		return nil, fmt.Errorf("basic: child %q is %T, not *basic.Component", key, inst)
	}
	return child, nil
}
