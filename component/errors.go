package component

import (
	"errors"
	"strconv"
)

var (
	// ErrEnvironmentInvalid is returned by every resolution when the factory has
	// no usable Runtime. It is not checked at construction so callers may wire the
	// runtime lazily.
	ErrEnvironmentInvalid = errors.New("component: runtime environment is invalid")

	// ErrNotFound is matched by NotFoundError via errors.Is.
	ErrNotFound = errors.New("component: not found")

	// ErrMalformedRequest is returned by CreateInstance for requests without a
	// usable component reference, but only when the factory was built with
	// WithStrictRequests. Otherwise such requests silently yield no instance.
	ErrMalformedRequest = errors.New("component: malformed instance request")

	// ErrNilDescriptor is returned when an anonymous resolution receives nil.
	ErrNilDescriptor = errors.New("component: nil descriptor")
)

// NotFoundError is returned when a named lookup targets a name absent from the
// registry.
type NotFoundError struct{ Name string }

// Error implements the error interface.
func (e NotFoundError) Error() string {
	// Example: component: "card" not registered
	return "component: " + strconv.Quote(e.Name) + " not registered"
}

// Is reports whether target is ErrNotFound.
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnassignablePropertyError is returned when property injection finds neither a
// setter, an exported field nor a PropertySetter for a key.
type UnassignablePropertyError struct {
	// Key is the property key as given in the request.
	Key string

	// Type is the dynamic type of the instance.
	Type string
}

// Error implements the error interface.
func (e UnassignablePropertyError) Error() string {
	// Example: component: property "adder" cannot be assigned on *basic.Component
	return "component: property " + strconv.Quote(e.Key) + " cannot be assigned on " + e.Type
}

// DescriptorError reports a malformed persisted descriptor.
type DescriptorError struct {
	// Path is the dotted location of the offending node, e.g. "tree.components.child".
	Path string

	// Reason says what was wrong with the node.
	Reason string
}

// Error implements the error interface.
func (e DescriptorError) Error() string {
	return "component: descriptor " + strconv.Quote(e.Path) + ": " + e.Reason
}

// ClassIncompleteError is returned when a class is instantiated before the
// runtime bound its constructor, e.g. from inside a runtime's own
// DefineComponent call while a cycle is still being resolved.
type ClassIncompleteError struct{ Name string }

// Error implements the error interface.
func (e ClassIncompleteError) Error() string {
	return "component: class " + strconv.Quote(e.Name) + " has no constructor yet"
}
