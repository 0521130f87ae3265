package engine

import (
	"strings"
)

// TemplateFunc renders a compiled template. data may be nil, a
// map[string]any, or a struct whose json field names become context keys.
type TemplateFunc func(data any) (string, error)

// Engine compiles template sources for one underlying template library.
type Engine interface {
	// Name returns the registry kind of the adapter, e.g. "django".
	Name() string
	// TemplateFunc compiles src. Source errors are reported before any
	// engine work happens.
	TemplateFunc(src Source) (TemplateFunc, error)
	// TemplateString returns the raw text of a named template file.
	TemplateString(file string) (string, error)
}

// Source identifies a template either by inline content or by a file name
// resolved against the engine search directories. Exactly one is set.
type Source struct {
	Inline string
	File   string
}

// FromString returns an inline Source.
func FromString(content string) Source {
	return Source{Inline: content}
}

// FromFile returns a Source that loads name from the search directories.
func FromFile(name string) Source {
	return Source{File: strings.TrimSpace(name)}
}

// IsInline reports whether the source carries inline content.
func (s Source) IsInline() bool {
	return s.Inline != ""
}

// Validate enforces the inline XOR file rule.
func (s Source) Validate() error {
	switch {
	case s.Inline != "" && s.File != "":
		return &ConfigError{Reason: "template source: inline content and file are mutually exclusive"}
	case s.Inline == "" && s.File == "":
		return &ConfigError{Reason: "template source: either inline content or file must be defined"}
	}
	return nil
}

// String describes the source for logs and error messages.
func (s Source) String() string {
	if s.File != "" {
		return "file:" + s.File
	}
	if s.Inline != "" {
		return "inline"
	}
	return "empty"
}
