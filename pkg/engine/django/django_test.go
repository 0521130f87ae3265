package django_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-typedtemplate/pkg/engine"
	"github.com/goliatone/go-typedtemplate/pkg/engine/django"
	"github.com/goliatone/go-typedtemplate/pkg/testsupport"
)

func newEngine(t *testing.T, cfg engine.Config) *django.Engine {
	t.Helper()

	eng, err := django.New(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func TestTemplateFunc_Inline(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("Hello, {{ name }}!"))
	if got := testsupport.MustRender(t, fn, map[string]any{"name": "Todd"}); got != "Hello, Todd!" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := testsupport.MustRender(t, fn, map[string]any{"name": "Bob"}); got != "Hello, Bob!" {
		t.Fatalf("compiled template should be reusable, got %q", got)
	}
}

func TestTemplateFunc_MultipleTemplates(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	hello := testsupport.MustTemplateFunc(t, eng, engine.FromString("Hello, {{ name }}!"))
	hi := testsupport.MustTemplateFunc(t, eng, engine.FromString("Hi, {{ name }}!"))

	ctx := map[string]any{"name": "Todd"}
	if got := testsupport.MustRender(t, hello, ctx); got != "Hello, Todd!" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := testsupport.MustRender(t, hi, ctx); got != "Hi, Todd!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTemplateFunc_FileSearchOrder(t *testing.T) {
	first := testsupport.WriteTemplates(t, map[string]string{"hello.txt": "Hello, {{ name }}!"})
	second := testsupport.WriteTemplates(t, map[string]string{
		"hello.txt": "shadowed",
		"bye.txt":   "Bye, {{ name }}.",
	})
	eng := newEngine(t, engine.Config{Dirs: []string{first, second}})

	hello := testsupport.MustTemplateFunc(t, eng, engine.FromFile("hello.txt"))
	if got := testsupport.MustRender(t, hello, map[string]any{"name": "Todd"}); got != "Hello, Todd!" {
		t.Fatalf("unexpected output %q", got)
	}
	bye := testsupport.MustTemplateFunc(t, eng, engine.FromFile("bye.txt"))
	if got := testsupport.MustRender(t, bye, map[string]any{"name": "Todd"}); got != "Bye, Todd." {
		t.Fatalf("unexpected output %q", got)
	}
}

type nestedTwo struct {
	Name string `json:"name"`
}

type nestedOne struct {
	Name string    `json:"name"`
	Sub  nestedTwo `json:"sub"`
}

type root struct {
	Name  string    `json:"name"`
	Count int       `json:"count"`
	Sub   nestedOne `json:"sub"`
}

func TestTemplateFunc_TypedRecordContext(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("{{ name }} >> {{ sub.name }} >> {{ sub.sub.name }} ({{ count }})"))
	got := testsupport.MustRender(t, fn, root{
		Name:  "root",
		Count: 3,
		Sub:   nestedOne{Name: "sub", Sub: nestedTwo{Name: "subsub"}},
	})
	if got != "root >> sub >> subsub (3)" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTemplateFunc_NoEscaping(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("{{ body }}"))
	got := testsupport.MustRender(t, fn, map[string]any{"body": `<b>"Todd" & co</b>`})
	if got != `<b>"Todd" & co</b>` {
		t.Fatalf("values should render verbatim, got %q", got)
	}
}

func TestTemplateFunc_UndefinedRendersEmpty(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("Hello, {{ missing }}!"))
	if got := testsupport.MustRender(t, fn, nil); got != "Hello, !" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTemplateFunc_AttributeOfUndefinedRendersEmpty(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("[{{ missing.sub }}] [{{ sub.missing }}]"))
	got := testsupport.MustRender(t, fn, map[string]any{"sub": map[string]any{"name": "x"}})
	if got != "[] []" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTemplateFunc_PythonValueFormatting(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString(
		"{{ count }}|{{ ratio }}|{{ whole }}|{{ active }}|{{ tags }}|{{ mixed }}|{{ meta }}|{{ ratio|floatformat:2 }}"))
	got := testsupport.MustRender(t, fn, map[string]any{
		"count":  3,
		"ratio":  1.5,
		"whole":  2.0,
		"active": true,
		"tags":   []any{"a", "b"},
		"mixed":  []any{int64(1), 2.5, false, []any{"x"}},
		"meta":   map[string]any{"b": "two", "a": "one"},
	})
	want := "3|1.5|2.0|True|['a', 'b']|[1, 2.5, False, ['x']]|{'a': 'one', 'b': 'two'}|1.50"
	if got != want {
		t.Fatalf("unexpected output\n got: %q\nwant: %q", got, want)
	}
}

func TestTemplateFunc_WrappedValuesKeepBehaviour(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString(
		"{% for tag in tags %}{{ tag }};{% endfor %}{{ tags|length }} {{ meta.name }}{% if ratio > 1 %} big{% endif %}"))
	got := testsupport.MustRender(t, fn, map[string]any{
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"name": "n"},
		"ratio": 1.5,
	})
	if got != "a;b;2 n big" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTemplateFunc_SourceErrors(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	_, err := eng.TemplateFunc(engine.Source{})
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	_, err = eng.TemplateFunc(engine.Source{Inline: "x", File: "x.txt"})
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestTemplateFunc_ParseErrorSurfacesVerbatim(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	_, err := eng.TemplateFunc(engine.FromString("{% if name %}unterminated"))
	if !errors.Is(err, engine.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	var renderErr *engine.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *engine.RenderError, got %T", err)
	}
	if renderErr.Engine != django.Kind || err.Error() != renderErr.Err.Error() {
		t.Fatalf("render error should carry the engine diagnostic, got %q", err.Error())
	}
}

func TestTemplateFunc_MissingFile(t *testing.T) {
	eng := newEngine(t, engine.Config{Dirs: []string{t.TempDir()}})

	_, err := eng.TemplateFunc(engine.FromFile("missing.txt"))
	if !errors.Is(err, engine.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestTemplateFunc_FileCacheAndDebug(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{"v.txt": "one"})
	cached := newEngine(t, engine.Config{Dirs: []string{dir}})
	debug := newEngine(t, engine.Config{Dirs: []string{dir}, Debug: true})

	for _, eng := range []*django.Engine{cached, debug} {
		fn := testsupport.MustTemplateFunc(t, eng, engine.FromFile("v.txt"))
		if got := testsupport.MustRender(t, fn, nil); got != "one" {
			t.Fatalf("unexpected output %q", got)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "v.txt"), []byte("two"), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}

	fn := testsupport.MustTemplateFunc(t, cached, engine.FromFile("v.txt"))
	if got := testsupport.MustRender(t, fn, nil); got != "one" {
		t.Fatalf("non-debug engine should reuse the compiled file, got %q", got)
	}
	fn = testsupport.MustTemplateFunc(t, debug, engine.FromFile("v.txt"))
	if got := testsupport.MustRender(t, fn, nil); got != "two" {
		t.Fatalf("debug engine should recompile the file, got %q", got)
	}
}

func TestTemplateString(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{"hello.txt": "Hello, {{ name }}!"})
	eng := newEngine(t, engine.Config{Dirs: []string{dir}})

	raw, err := eng.TemplateString("hello.txt")
	if err != nil {
		t.Fatalf("template string: %v", err)
	}
	if raw != "Hello, {{ name }}!" {
		t.Fatalf("unexpected raw template %q", raw)
	}

	_, err = eng.TemplateString("missing.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDefaultFilters(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("[{{ padded|trim }}] {{ title|lowerfirst }} {{ bio|sanitize }}"))
	got := testsupport.MustRender(t, fn, map[string]any{
		"padded": "  spaced  ",
		"title":  "  Hello",
		"bio":    `<script>alert(1)</script><b>bold</b>`,
	})
	if got != "[spaced]   hello <b>bold</b>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	eng := newEngine(t, engine.Config{})

	err := eng.RegisterFilter("typedtemplate_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	fn := testsupport.MustTemplateFunc(t, eng, engine.FromString("{{ name|typedtemplate_shout }}"))
	if got := testsupport.MustRender(t, fn, map[string]any{"name": "Ada"}); got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}

	err = eng.RegisterFilter("typedtemplate_shout", func(input any, _ any) (any, error) { return input, nil })
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected duplicate filter error, got %v", err)
	}
	if err := eng.RegisterFilter("", nil); !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNew_InvalidSearchDir(t *testing.T) {
	_, err := django.New(engine.Config{Dirs: []string{filepath.Join(t.TempDir(), "missing")}})
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestOpenFromRegistry(t *testing.T) {
	eng, err := engine.Open(django.Kind, engine.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if eng.Name() != django.Kind {
		t.Fatalf("unexpected engine %q", eng.Name())
	}
}
