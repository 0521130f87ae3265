// Package django adapts pongo2, a Django-syntax template engine, to the
// engine.Engine contract. Output escaping is disabled: model values are
// rendered verbatim.
package django

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-typedtemplate/internal/contextutil"
	"github.com/goliatone/go-typedtemplate/pkg/engine"
)

// Kind is the registry name of this adapter.
const Kind = "django"

func init() {
	engine.Register(Kind, func(cfg engine.Config, opts ...engine.Option) (engine.Engine, error) {
		return New(cfg, opts...)
	})
}

// Engine satisfies engine.Engine using a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	cfg         engine.Config
	logger      *zap.Logger
	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

var _ engine.Engine = (*Engine)(nil)

// New constructs an Engine whose file templates resolve against cfg.Dirs in
// order.
func New(cfg engine.Config, opts ...engine.Option) (*Engine, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := engine.ApplyOptions(opts...)

	var loaders []pongo2.TemplateLoader
	for _, dir := range cfg.Dirs {
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return nil, &engine.ConfigError{Reason: fmt.Sprintf("django: search dir %q", dir), Err: err}
		}
		loaders = append(loaders, loader)
	}
	if len(loaders) == 0 {
		loader, err := pongo2.NewLocalFileSystemLoader("")
		if err != nil {
			return nil, &engine.ConfigError{Reason: "django: default loader", Err: err}
		}
		loaders = append(loaders, loader)
	}

	set := pongo2.NewSet("typedtemplate", loaders...)
	set.Debug = cfg.Debug

	pongo2.SetAutoescape(false)
	if !cfg.SkipEnvironmentSetup {
		registerDefaultFilters()
	}

	return &Engine{
		cfg:         cfg,
		logger:      options.Logger.Named(Kind),
		templateSet: set,
		templates:   make(map[string]*pongo2.Template),
	}, nil
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return Kind }

// TemplateFunc compiles src into a rendering function.
func (e *Engine) TemplateFunc(src engine.Source) (engine.TemplateFunc, error) {
	if e == nil || e.templateSet == nil {
		return nil, errors.New("django: engine is nil")
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	var (
		tmpl *pongo2.Template
		err  error
	)
	if src.IsInline() {
		tmpl, err = e.templateSet.FromString(src.Inline)
	} else {
		tmpl, err = e.getTemplate(src.File)
	}
	if err != nil {
		return nil, engine.NewRenderError(Kind, src, err)
	}

	return func(data any) (string, error) {
		values, err := contextutil.ToMap(data)
		if err != nil {
			return "", fmt.Errorf("django: convert data: %w", err)
		}
		out, err := tmpl.Execute(viewContext(values))
		if err != nil {
			return "", engine.NewRenderError(Kind, src, err)
		}
		return out, nil
	}, nil
}

// TemplateString returns the raw content of the named template file.
func (e *Engine) TemplateString(file string) (string, error) {
	src := engine.FromFile(file)
	content, err := engine.ReadFile(e.cfg.Dirs, src.File)
	if err != nil {
		return "", engine.NewRenderError(Kind, src, err)
	}
	return content, nil
}

// RegisterFilter registers a template filter. pongo2 filters are
// process-wide, so a name can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return &engine.ConfigError{Reason: "django: filter name and function required"}
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return &engine.ConfigError{Reason: fmt.Sprintf("django: filter %q already exists", name)}
	}
	return pongo2.RegisterFilter(name, filter)
}

func (e *Engine) getTemplate(name string) (*pongo2.Template, error) {
	if e.cfg.Debug {
		e.logger.Debug("compile template file", zap.String("file", name), zap.Bool("cached", false))
		return e.templateSet.FromFile(name)
	}

	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, err
	}
	e.templates[name] = tmpl
	return tmpl, nil
}
