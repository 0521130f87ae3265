// Package jinja adapts gonja, a Jinja-syntax template engine, to the
// engine.Engine contract.
package jinja

import (
	"errors"
	"fmt"

	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/loaders"
	"go.uber.org/zap"

	"github.com/goliatone/go-typedtemplate/internal/contextutil"
	"github.com/goliatone/go-typedtemplate/pkg/engine"
)

// Kind is the registry name of this adapter.
const Kind = "jinja"

func init() {
	engine.Register(Kind, func(cfg engine.Config, opts ...engine.Option) (engine.Engine, error) {
		return New(cfg, opts...)
	})
}

// Engine satisfies engine.Engine with one gonja environment per search
// directory, so includes resolve relative to the directory a template was
// found in.
type Engine struct {
	cfg    engine.Config
	logger *zap.Logger

	inline *gonja.Environment
	byDir  map[string]*gonja.Environment
}

var _ engine.Engine = (*Engine)(nil)

// New constructs an Engine. SkipEnvironmentSetup has no effect: gonja keeps
// no process-wide state that needs configuring.
func New(cfg engine.Config, opts ...engine.Option) (*Engine, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := engine.ApplyOptions(opts...)

	e := &Engine{
		cfg:    cfg,
		logger: options.Logger.Named(Kind),
		byDir:  make(map[string]*gonja.Environment, len(cfg.Dirs)),
	}
	for _, dir := range cfg.Dirs {
		loader, err := loaders.NewFileSystemLoader(dir)
		if err != nil {
			return nil, &engine.ConfigError{Reason: fmt.Sprintf("jinja: search dir %q", dir), Err: err}
		}
		env := gonja.NewEnvironment(config.DefaultConfig, loader)
		e.byDir[dir] = env
		if e.inline == nil {
			e.inline = env
		}
	}
	if e.inline == nil {
		e.inline = gonja.NewEnvironment(config.DefaultConfig, loaders.MustNewFileSystemLoader(""))
	}
	return e, nil
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return Kind }

// TemplateFunc compiles src into a rendering function.
func (e *Engine) TemplateFunc(src engine.Source) (engine.TemplateFunc, error) {
	if e == nil || e.inline == nil {
		return nil, errors.New("jinja: engine is nil")
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	env, content := e.inline, src.Inline
	if !src.IsInline() {
		dir, path, err := engine.ResolveFile(e.cfg.Dirs, src.File)
		if err != nil {
			return nil, engine.NewRenderError(Kind, src, err)
		}
		if found, ok := e.byDir[dir]; ok {
			env = found
		}
		content, err = engine.ReadFile([]string{dir}, src.File)
		if err != nil {
			return nil, engine.NewRenderError(Kind, src, err)
		}
		if e.cfg.Debug {
			e.logger.Debug("compile template file", zap.String("file", src.File), zap.String("path", path))
		}
	}

	tmpl, err := env.FromString(content)
	if err != nil {
		return nil, engine.NewRenderError(Kind, src, err)
	}

	return func(data any) (string, error) {
		ctx, err := contextutil.ToMap(data)
		if err != nil {
			return "", fmt.Errorf("jinja: convert data: %w", err)
		}
		out, err := tmpl.Execute(ctx)
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
