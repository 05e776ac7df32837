package component

// Options is the pass-through construction configuration handed to a class
// constructor. Its meaning belongs to the runtime.
type Options struct {
	// Data is the initial data of the instance.
	Data map[string]any

	// Element is an existing root element to bind the instance to in reverse.
	Element any

	// Extra carries runtime specific options.
	Extra map[string]any
}

// Constructor creates one instance of a class.
type Constructor func(opts Options) (any, error)

// Prototype is the finalized behavior of a class handed to the runtime.
//
// Components may contain classes whose constructors are not bound yet when they
// take part in a cycle with the class being declared. Runtimes must not
// instantiate children while declaring.
type Prototype struct {
	Name       string
	Fields     map[string]any
	Components map[string]*Class
}

// Runtime is the class-declaration capability of the component runtime.
type Runtime interface {
	DefineComponent(proto Prototype) (Constructor, error)
}

// RuntimeFunc adapts a plain function to Runtime.
type RuntimeFunc func(proto Prototype) (Constructor, error)

// DefineComponent implements Runtime.
func (f RuntimeFunc) DefineComponent(proto Prototype) (Constructor, error) {
	if f == nil {
		return nil, ErrEnvironmentInvalid
	}
	return f(proto)
}

// validRuntime reports whether rt can declare classes. A nil interface or a
// typed nil RuntimeFunc are both invalid.
func validRuntime(rt Runtime) bool {
	if rt == nil {
		return false
	}
	if f, ok := rt.(RuntimeFunc); ok && f == nil {
		return false
	}
	return true
}
