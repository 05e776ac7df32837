package component

// SelfName is the persisted spelling of a self reference in a components map.
const SelfName = "self"

// Descriptor describes one component: opaque behavior fields plus the child
// components it uses.
//
// Fields are never interpreted by the resolver; they are copied onto the built
// class as-is. Typical keys are "template", methods (as Go funcs) and hooks.
type Descriptor struct {
	Fields     map[string]any
	Components map[string]Ref
}

// RefKind tags the variant held by a Ref.
type RefKind uint8

const (
	// RefInvalid is the zero Ref. Resolving it fails.
	RefInvalid RefKind = iota
	// RefSelf points at the class currently being built.
	RefSelf
	// RefName is resolved through the registry and class cache.
	RefName
	// RefClass is an already built class, used as-is.
	RefClass
	// RefLiteral is a nested descriptor resolved anonymously.
	RefLiteral
)

// String returns a lower-case name for the kind.
func (k RefKind) String() string {
	switch k {
	case RefSelf:
		return "self"
	case RefName:
		return "name"
	case RefClass:
		return "class"
	case RefLiteral:
		return "literal"
	default:
		return "invalid"
	}
}

// Ref is a child reference inside Descriptor.Components.
type Ref struct {
	kind    RefKind
	name    string
	class   *Class
	literal *Descriptor
}

// Self returns the self reference.
func Self() Ref { return Ref{kind: RefSelf} }

// Named returns a reference to a registered component. The name "self" is the
// self sentinel.
func Named(name string) Ref {
	if name == SelfName {
		return Self()
	}
	return Ref{kind: RefName, name: name}
}

// Built returns a reference to an already built class.
func Built(c *Class) Ref { return Ref{kind: RefClass, class: c} }

// Literal returns a reference to an inline descriptor.
func Literal(d *Descriptor) Ref { return Ref{kind: RefLiteral, literal: d} }

// Kind reports which variant r holds.
func (r Ref) Kind() RefKind { return r.kind }

// Name returns the referenced name for RefName refs.
func (r Ref) Name() string { return r.name }

// Class returns the class for RefClass refs.
func (r Ref) Class() *Class { return r.class }

// Descriptor returns the inline descriptor for RefLiteral refs.
func (r Ref) Descriptor() *Descriptor { return r.literal }

// Entry is a registry value: either an unresolved descriptor or an already
// built class. The zero Entry is unset.
type Entry struct {
	descriptor *Descriptor
	class      *Class
}

// Unresolved wraps a descriptor as a registry entry.
func Unresolved(d *Descriptor) Entry { return Entry{descriptor: d} }

// Resolved wraps a finished class as a registry entry.
func Resolved(c *Class) Entry { return Entry{class: c} }

// IsZero reports whether the entry holds nothing.
func (e Entry) IsZero() bool { return e.descriptor == nil && e.class == nil }

// Descriptor returns the descriptor, if the entry holds one.
func (e Entry) Descriptor() (*Descriptor, bool) { return e.descriptor, e.descriptor != nil }

// Class returns the class, if the entry holds one.
func (e Entry) Class() (*Class, bool) { return e.class, e.class != nil }
