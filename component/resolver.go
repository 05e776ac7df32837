package component

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// componentsField is the descriptor key holding child references in the
// persisted form. It is never copied onto a class as a behavior field.
const componentsField = "components"

// resolution tracks one top-level resolution. Every name whose shell was
// reserved during the call is recorded so a failure can release them.
type resolution struct {
	span     trace.Span
	reserved []string
}

// GetComponentClass returns the class registered under name, building it on
// first use.
//
// Repeated calls return the identical *Class. Once a name is cached the
// registry entry is never read again for it.
func (f *Factory) GetComponentClass(ctx context.Context, name string) (*Class, error) {
	_, span := f.tracer.Start(ctx, "component.GetComponentClass",
		trace.WithAttributes(attribute.String("component.name", name)))
	defer span.End()

	return f.resolve(span, func(res *resolution) (*Class, error) {
		return f.named(res, name)
	})
}

// ResolveAnonymous builds a fresh class from d. The result is never cached and
// d is never looked up in the registry; named children inside d still go
// through the shared cache.
func (f *Factory) ResolveAnonymous(ctx context.Context, d *Descriptor) (*Class, error) {
	_, span := f.tracer.Start(ctx, "component.ResolveAnonymous")
	defer span.End()

	return f.resolve(span, func(res *resolution) (*Class, error) {
		if d == nil {
			return nil, ErrNilDescriptor
		}
		return f.build(res, d, "")
	})
}

func (f *Factory) resolve(span trace.Span, fn func(*resolution) (*Class, error)) (*Class, error) {
	if !validRuntime(f.runtime) {
		f.metrics.failures.WithLabelValues(failureEnvironment).Inc()
		span.SetStatus(codes.Error, ErrEnvironmentInvalid.Error())
		return nil, ErrEnvironmentInvalid
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	res := &resolution{span: span}
	cls, err := fn(res)
	if err != nil {
		f.classes.release(res.reserved...)
		f.metrics.failures.WithLabelValues(failureReason(err)).Inc()
		f.logger.Warn("component resolution failed",
			"error", err, "released", res.reserved)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return cls, nil
}

// named is the cache-aware lookup used for top-level names and for every name
// reference met while building.
func (f *Factory) named(res *resolution, name string) (*Class, error) {
	if cls, ok := f.classes.lookup(name); ok {
		f.metrics.cacheHits.Inc()
		f.logger.Debug("component class cache hit", "name", name)
		return cls, nil
	}

	entry, ok := f.registry.Get(name)
	if !ok {
		return nil, NotFoundError{Name: name}
	}

	// Prebuilt classes are used unchanged; caching them only pins identity.
	if cls, ok := entry.Class(); ok {
		if f.classes.reserve(name, cls) {
			res.reserved = append(res.reserved, name)
		}
		f.metrics.builds.WithLabelValues(buildPrebuilt).Inc()
		return cls, nil
	}

	d, _ := entry.Descriptor()
	return f.build(res, d, name)
}

// build turns d into a class. When name is set the shell is reserved in the
// cache before any child is resolved, so references back to name (direct or
// through other names) receive this same shell instead of re-entering build.
func (f *Factory) build(res *resolution, d *Descriptor, name string) (*Class, error) {
	shell := newShell(name)
	if name != "" {
		if !f.classes.reserve(name, shell) {
			// Unreachable while f.mu is held: named checks the cache first.
			return nil, fmt.Errorf("component: class slot %q already taken", name)
		}
		res.reserved = append(res.reserved, name)
	}

	for key, v := range d.Fields {
		if key == componentsField {
			continue
		}
		shell.fields[key] = v
	}

	for _, key := range slices.Sorted(maps.Keys(d.Components)) {
		child, err := f.child(res, shell, key, d.Components[key])
		if err != nil {
			return nil, fmt.Errorf("component %s: child %q: %w", shell, key, err)
		}
		shell.components[key] = child
	}

	ctor, err := f.runtime.DefineComponent(Prototype{
		Name:       name,
		Fields:     maps.Clone(shell.fields),
		Components: maps.Clone(shell.components),
	})
	if err != nil {
		return nil, fmt.Errorf("component: define %s: %w", shell, err)
	}
	if ctor == nil {
		return nil, fmt.Errorf("component: define %s: nil constructor: %w", shell, ErrEnvironmentInvalid)
	}
	shell.ctor = ctor

	kind := buildNamed
	if name == "" {
		kind = buildAnonymous
	}
	f.metrics.builds.WithLabelValues(kind).Inc()
	res.span.AddEvent("class built", trace.WithAttributes(
		attribute.String("component.class", shell.String()),
		attribute.Int("component.children", len(shell.components)),
	))
	f.logger.Debug("component class built",
		"class", shell.String(), "children", len(shell.components))
	return shell, nil
}

func (f *Factory) child(res *resolution, shell *Class, key string, ref Ref) (*Class, error) {
	switch ref.Kind() {
	case RefSelf:
		return shell, nil
	case RefClass:
		if ref.Class() == nil {
			return nil, DescriptorError{Path: shell.String() + ".components." + key, Reason: "nil class"}
		}
		return ref.Class(), nil
	case RefName:
		return f.named(res, ref.Name())
	case RefLiteral:
		if ref.Descriptor() == nil {
			return nil, ErrNilDescriptor
		}
		return f.build(res, ref.Descriptor(), "")
	default:
		return nil, DescriptorError{Path: shell.String() + ".components." + key, Reason: "empty reference"}
	}
}
