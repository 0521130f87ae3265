// Package typedtemplate validates typed models and renders them through a
// Django-syntax (pongo2) or Jinja-syntax (gonja) template engine.
//
//	eng, err := typedtemplate.NewEngine(typedtemplate.Django, typedtemplate.Config{
//		Dirs: []string{"templates"},
//	})
//	greetings, err := typedtemplate.Declare[Greeting](eng, typedtemplate.FromFile("greeting.txt"))
//	tpl, err := greetings.New(Greeting{Name: "Todd"})
//	out, err := tpl.Render(map[string]any{"punctuation": "!"})
package typedtemplate

import (
	"github.com/goliatone/go-typedtemplate/pkg/engine"
	"github.com/goliatone/go-typedtemplate/pkg/engine/django"
	"github.com/goliatone/go-typedtemplate/pkg/engine/jinja"
	"github.com/goliatone/go-typedtemplate/pkg/typed"
)

// Engine kinds linked into this package.
const (
	Django = django.Kind
	Jinja  = jinja.Kind
)

// Config aliases engine.Config.
type Config = engine.Config

// Engine aliases engine.Engine.
type Engine = engine.Engine

// Source aliases engine.Source.
type Source = engine.Source

// TemplateFunc aliases engine.TemplateFunc.
type TemplateFunc = engine.TemplateFunc

// Error kinds, re-exported for errors.Is checks.
var (
	ErrConfiguration     = engine.ErrConfiguration
	ErrDependencyMissing = engine.ErrDependencyMissing
	ErrValidation        = engine.ErrValidation
	ErrRender            = engine.ErrRender
)

// FromString returns an inline template source.
func FromString(content string) Source { return engine.FromString(content) }

// FromFile returns a template source resolved against the engine search
// directories.
func FromFile(name string) Source { return engine.FromFile(name) }

// NewEngine opens the adapter registered under kind.
func NewEngine(kind string, cfg Config, opts ...engine.Option) (Engine, error) {
	return engine.Open(kind, cfg, opts...)
}

// Declare binds model T to eng and src. See typed.Declare.
func Declare[T any](eng Engine, src Source, opts ...typed.Option) (*typed.Descriptor[T], error) {
	return typed.Declare[T](eng, src, opts...)
}
