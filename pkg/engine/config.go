package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Config holds the settings every adapter recognises.
type Config struct {
	// Dirs lists template search directories in lookup order.
	Dirs []string `yaml:"dirs" envconfig:"DIRS"`
	// Debug turns off compiled file caching and enables debug logging.
	Debug bool `yaml:"debug" envconfig:"DEBUG"`
	// SkipEnvironmentSetup leaves process-wide engine state untouched, for
	// callers that already configured it.
	SkipEnvironmentSetup bool `yaml:"skip_environment_setup" envconfig:"SKIP_ENVIRONMENT_SETUP"`
}

// Normalized returns a copy with blank directories dropped.
func (c Config) Normalized() Config {
	out := c
	out.Dirs = nil
	for _, dir := range c.Dirs {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			out.Dirs = append(out.Dirs, trimmed)
		}
	}
	return out
}

// Validate checks that every search directory exists and is a directory.
// All problems are reported together.
func (c Config) Validate() error {
	var result *multierror.Error
	for _, dir := range c.Normalized().Dirs {
		info, err := os.Stat(dir)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("search dir %q: %w", dir, err))
			continue
		}
		if !info.IsDir() {
			result = multierror.Append(result, fmt.Errorf("search dir %q is not a directory", dir))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return &ConfigError{Reason: "invalid engine config", Err: err}
	}
	return nil
}

// Option configures adapter wiring that is not part of Config.
type Option func(*Options)

// Options is the resolved set of adapter options.
type Options struct {
	Logger *zap.Logger
}

// WithLogger sets the logger used for diagnostics. Adapters default to a
// no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// ApplyOptions resolves opts over the defaults.
func ApplyOptions(opts ...Option) Options {
	out := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&out)
	}
	return out
}
