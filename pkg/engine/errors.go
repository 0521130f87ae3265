package engine

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by this module. Match them with errors.Is.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrDependencyMissing = errors.New("dependency missing")
	ErrValidation        = errors.New("validation error")
	ErrRender            = errors.New("render error")
)

// ConfigError reports an invalid source declaration or engine configuration.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine: %s: %v", e.Reason, e.Err)
	}
	return "engine: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// DependencyError reports that the requested engine kind is not linked into
// the binary.
type DependencyError struct {
	Kind string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("engine: %q is not available; import its adapter package to register it", e.Kind)
}

func (e *DependencyError) Is(target error) bool { return target == ErrDependencyMissing }

// RenderError carries a parse or execution failure from the underlying
// engine. Its message is the engine diagnostic, untouched.
type RenderError struct {
	Engine string
	Source Source
	Err    error
}

// NewRenderError wraps err unless it is nil.
func NewRenderError(engineName string, src Source, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Engine: engineName, Source: src, Err: err}
}

func (e *RenderError) Error() string { return e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRender }
