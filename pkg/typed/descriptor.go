package typed

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-typedtemplate/pkg/engine"
	"github.com/goliatone/go-typedtemplate/pkg/validation"
)

// Option configures a Descriptor.
type Option func(*options)

type options struct {
	validator *validation.Validator
	logger    *zap.Logger
}

// WithValidator replaces the shared validation.Default validator, e.g. to
// use custom constraints.
func WithValidator(v *validation.Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Descriptor is the type-level binding of model T to one engine and one
// template source. Its configuration is fixed at declaration.
type Descriptor[T any] struct {
	engine    engine.Engine
	source    engine.Source
	validator *validation.Validator
	logger    *zap.Logger

	mu       sync.RWMutex
	compiled engine.TemplateFunc
}

// Declare binds T to eng and src. The source is checked immediately; the
// template itself is compiled on first use.
func Declare[T any](eng engine.Engine, src engine.Source, opts ...Option) (*Descriptor[T], error) {
	if eng == nil {
		return nil, &engine.ConfigError{Reason: "typed: template engine is required"}
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	var zero T
	if t := reflect.TypeOf(zero); t == nil || t.Kind() != reflect.Struct {
		return nil, &engine.ConfigError{Reason: fmt.Sprintf("typed: model must be a struct type, got %T", zero)}
	}

	cfg := options{
		validator: validation.Default(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Descriptor[T]{
		engine:    eng,
		source:    src,
		validator: cfg.validator,
		logger:    cfg.logger,
	}, nil
}

// MustDeclare is Declare that panics on error. Useful for package-level
// declarations.
func MustDeclare[T any](eng engine.Engine, src engine.Source, opts ...Option) *Descriptor[T] {
	d, err := Declare[T](eng, src, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Source returns the declared template source.
func (d *Descriptor[T]) Source() engine.Source { return d.source }

// Engine returns the declared engine.
func (d *Descriptor[T]) Engine() engine.Engine { return d.engine }

// New validates fields and returns an instance ready to render.
func (d *Descriptor[T]) New(fields T) (*Template[T], error) {
	if err := d.validator.Struct(fields); err != nil {
		return nil, err
	}
	return d.instance(fields)
}

// FromMap decodes values into T, checking field types, then validates
// constraints. It is the keyword-argument style constructor.
func (d *Descriptor[T]) FromMap(values map[string]any) (*Template[T], error) {
	var fields T
	if err := d.validator.DecodeStruct(values, &fields); err != nil {
		return nil, err
	}
	return d.instance(fields)
}

// TemplateFunc returns the compiled template, compiling it on first call.
// Failed compilations are not cached.
func (d *Descriptor[T]) TemplateFunc() (engine.TemplateFunc, error) {
	d.mu.RLock()
	if fn := d.compiled; fn != nil {
		d.mu.RUnlock()
		return fn, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.compiled != nil {
		return d.compiled, nil
	}

	fn, err := d.engine.TemplateFunc(d.source)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("compiled template",
		zap.String("engine", d.engine.Name()),
		zap.Stringer("source", d.source),
	)
	d.compiled = fn
	return fn, nil
}

func (d *Descriptor[T]) instance(fields T) (*Template[T], error) {
	if _, err := d.TemplateFunc(); err != nil {
		return nil, err
	}
	return &Template[T]{Fields: fields, descriptor: d}, nil
}
