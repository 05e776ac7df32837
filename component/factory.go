package component

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/sghaida/cfactory/component"

// Config is the factory configuration an embedding application supplies.
type Config struct {
	// Runtime declares classes. A nil Runtime makes every resolution fail with
	// ErrEnvironmentInvalid.
	Runtime Runtime

	// Components is the initial registry content.
	Components map[string]Entry
}

// Option customizes a Factory.
type Option func(*Factory)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithTracerProvider enables spans around resolutions and instance creation.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *Factory) {
		if tp != nil {
			f.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithMetrics registers the factory counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(f *Factory) { f.metrics = newFactoryMetrics(reg) }
}

// WithStrictRequests makes CreateInstance return ErrMalformedRequest for
// requests without a usable component reference instead of returning nothing.
func WithStrictRequests() Option {
	return func(f *Factory) { f.strict = true }
}

// Factory resolves registered descriptors into classes and creates instances.
//
// Each Factory owns its registry and class cache; two factories never share
// classes. All methods are safe for concurrent use. Resolutions are serialized:
// one top-level resolution runs at a time and later callers observe the cached
// classes it produced.
type Factory struct {
	mu       sync.Mutex // serializes resolutions
	runtime  Runtime
	registry *Registry
	classes  *classCache

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *factoryMetrics
	strict  bool
}

// New creates a Factory from cfg.
func New(cfg Config, opts ...Option) *Factory {
	f := &Factory{
		runtime:  cfg.Runtime,
		registry: NewRegistry(),
		classes:  newClassCache(),
		logger:   slog.New(slog.DiscardHandler),
		tracer:   noop.NewTracerProvider().Tracer(tracerName),
		metrics:  newFactoryMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.registry.AddComponents(cfg.Components)
	return f
}

// AddComponent registers entry under name unless the name is taken.
func (f *Factory) AddComponent(name string, entry Entry) bool {
	return f.registry.AddComponent(name, entry)
}

// AddComponents registers every entry of m, skipping names already taken.
func (f *Factory) AddComponents(m map[string]Entry) { f.registry.AddComponents(m) }

// Component returns the raw registry entry for name.
func (f *Factory) Component(name string) (Entry, bool) { return f.registry.Get(name) }

// Names returns the registered names in sorted order.
func (f *Factory) Names() []string { return f.registry.Names() }

// Cached returns the class already resolved for name, without resolving.
//
// It waits for an in-progress resolution, so it never observes a class whose
// children are still being filled in. A Runtime must not call it from
// DefineComponent.
func (f *Factory) Cached(name string) (*Class, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.classes.lookup(name)
}

// CachedNames returns the names with a resolved class in sorted order. Like
// Cached it waits for an in-progress resolution.
func (f *Factory) CachedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.classes.names()
}

// GetAllComponentClasses resolves every registered name.
func (f *Factory) GetAllComponentClasses(ctx context.Context) (map[string]*Class, error) {
	names := f.registry.Names()
	out := make(map[string]*Class, len(names))
	for _, name := range names {
		cls, err := f.GetComponentClass(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = cls
	}
	return out, nil
}

// Request describes one CreateInstance call. Exactly one of Name and Literal
// must be set.
type Request struct {
	// Name selects a registered component.
	Name string

	// Literal is an inline descriptor resolved anonymously on every call.
	Literal *Descriptor

	// Options is handed to the class constructor unchanged.
	Options Options

	// Properties are injected after construction, see Inject.
	Properties map[string]any
}

func (r Request) valid() bool { return (r.Name == "") != (r.Literal == nil) }

// CreateInstance resolves the requested class, constructs an instance with
// req.Options and injects req.Properties.
//
// A request without a usable component reference yields (nil, nil) unless the
// factory was built with WithStrictRequests.
func (f *Factory) CreateInstance(ctx context.Context, req Request) (any, error) {
	ctx, span := f.tracer.Start(ctx, "component.CreateInstance",
		trace.WithAttributes(attribute.String("component.name", req.Name)))
	defer span.End()

	if !req.valid() {
		if f.strict {
			span.SetStatus(codes.Error, ErrMalformedRequest.Error())
			return nil, ErrMalformedRequest
		}
		f.logger.Debug("ignoring malformed instance request",
			"name", req.Name, "literal", req.Literal != nil)
		return nil, nil
	}

	var (
		cls *Class
		err error
	)
	if req.Literal != nil {
		cls, err = f.ResolveAnonymous(ctx, req.Literal)
	} else {
		cls, err = f.GetComponentClass(ctx, req.Name)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	inst, err := cls.New(req.Options)
	if err != nil {
		err = fmt.Errorf("component: construct %s: %w", cls, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := Inject(inst, req.Properties); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	f.metrics.instances.Inc()
	return inst, nil
}
