package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveFile returns the first dirs entry containing name together with the
// joined path. Absolute names are returned as-is when they exist.
func ResolveFile(dirs []string, name string) (dir string, path string, err error) {
	if name == "" {
		return "", "", &ConfigError{Reason: "template file name is required"}
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", "", err
		}
		return filepath.Dir(name), name, nil
	}
	for _, candidate := range dirs {
		full := filepath.Join(candidate, name)
		info, err := os.Stat(full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", "", err
		}
		if info.IsDir() {
			continue
		}
		return candidate, full, nil
	}
	return "", "", fmt.Errorf("template %q not found in %v: %w", name, dirs, fs.ErrNotExist)
}

// ReadFile resolves name against dirs and returns its contents.
func ReadFile(dirs []string, name string) (string, error) {
	_, path, err := ResolveFile(dirs, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
