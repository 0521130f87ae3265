// Package testsupport holds helpers shared by adapter and binding tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typedtemplate/pkg/engine"
)

// WriteTemplates writes name → content pairs into a fresh temporary
// directory and returns its path.
func WriteTemplates(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir template dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write template: %v", err)
		}
	}
	return dir
}

// MustTemplateFunc compiles src, failing the test on error.
func MustTemplateFunc(t *testing.T, eng engine.Engine, src engine.Source) engine.TemplateFunc {
	t.Helper()

	fn, err := eng.TemplateFunc(src)
	if err != nil {
		t.Fatalf("%s: compile %s: %v", eng.Name(), src, err)
	}
	if fn == nil {
		t.Fatalf("%s: compile %s returned nil function", eng.Name(), src)
	}
	return fn
}

// MustRender executes fn with data, failing the test on error.
func MustRender(t *testing.T, fn engine.TemplateFunc, data any) string {
	t.Helper()

	out, err := fn(data)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
