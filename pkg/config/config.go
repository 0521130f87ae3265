// Package config loads engine.Config from YAML documents or environment
// variables. Only the keys engine.Config declares are accepted.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-typedtemplate/pkg/engine"
)

// DefaultEnvPrefix is used by FromEnv when prefix is blank.
const DefaultEnvPrefix = "TYPEDTEMPLATE"

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(data []byte) (engine.Config, error) {
	var cfg engine.Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return engine.Config{}, nil
		}
		return engine.Config{}, &engine.ConfigError{Reason: "config: parse yaml", Err: err}
	}
	return cfg.Normalized(), nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (engine.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, &engine.ConfigError{Reason: fmt.Sprintf("config: read %q", path), Err: err}
	}
	return Parse(data)
}

// FromEnv reads <PREFIX>_DIRS (comma separated), <PREFIX>_DEBUG and
// <PREFIX>_SKIP_ENVIRONMENT_SETUP.
func FromEnv(prefix string) (engine.Config, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var cfg engine.Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return engine.Config{}, &engine.ConfigError{Reason: "config: read environment", Err: err}
	}
	return cfg.Normalized(), nil
}
