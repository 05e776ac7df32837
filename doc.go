// Package cfactory resolves named component descriptors into component classes,
// including descriptors that reference themselves or each other.
//
// The repository is split into:
//
//   - component: registry, class cache, resolver and instance factory
//   - runtime/basic: a small Runtime that turns prototypes into map-backed instances
//   - config: viper-backed settings shared by the CLI
//   - cmd/cfactory: list, resolve and instantiate components from YAML files
//   - examples/tree: runnable example of a self-referential tree
//
// Cycles are broken by reserving a named class in the cache before its children
// are resolved, so every reference to a name yields the same *component.Class.
//
// Start with the component package docs and examples/tree.
package cfactory
