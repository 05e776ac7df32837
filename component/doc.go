// Package component turns named, declarative component descriptors into
// concrete classes for a component runtime.
//
// A Factory owns a Registry (name -> descriptor or prebuilt class) and a class
// cache. Resolving a name builds its class once; every later lookup returns the
// identical *Class. Descriptors may reference other components by name, refer
// to themselves with "self", embed inline (anonymous) descriptors, or point at
// classes built elsewhere:
//
//	f := component.New(component.Config{
//		Runtime: basic.New(),
//		Components: map[string]component.Entry{
//			"tree": component.Unresolved(&component.Descriptor{
//				Fields:     map[string]any{"template": "<li/>"},
//				Components: map[string]component.Ref{"child": component.Self()},
//			}),
//		},
//	})
//	tree, err := f.GetComponentClass(ctx, "tree")
//
// Cycles
//
// A named class is reserved in the cache as an empty shell before any of its
// children are resolved. A child that refers back to the name, directly or
// through other names, receives that shell, so mutually recursive components
// terminate and every participant of a cycle holds the same class objects.
// If a resolution fails, the shells it reserved are released again.
//
// Anonymous classes
//
// Inline descriptors, and descriptors passed to ResolveAnonymous or as
// Request.Literal, produce a fresh class on every resolution and are never
// cached. Named references inside them still use the shared cache.
//
// Instances
//
// CreateInstance resolves a class, calls its constructor with the request
// options and injects properties with setter preference (see Inject).
package component
