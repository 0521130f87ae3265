package typedtemplate_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	typedtemplate "github.com/goliatone/go-typedtemplate"
	"github.com/goliatone/go-typedtemplate/pkg/engine"
	"github.com/goliatone/go-typedtemplate/pkg/testsupport"
)

func TestEngineEquivalence(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{
		"hello.txt":  "Hello, {{ name }}!",
		"nested.txt": "{{ name }} >> {{ sub.name }} >> {{ sub.sub.name }}",
	})
	cfg := typedtemplate.Config{Dirs: []string{dir}}

	cases := []struct {
		name string
		src  typedtemplate.Source
		data any
		want string
	}{
		{
			name: "inline",
			src:  typedtemplate.FromString("Hello, {{ name }}!"),
			data: map[string]any{"name": "Todd"},
			want: "Hello, Todd!",
		},
		{
			name: "file",
			src:  typedtemplate.FromFile("hello.txt"),
			data: map[string]any{"name": "Todd"},
			want: "Hello, Todd!",
		},
		{
			name: "nested file",
			src:  typedtemplate.FromFile("nested.txt"),
			data: map[string]any{
				"name": "root",
				"sub": map[string]any{
					"name": "sub",
					"sub":  map[string]any{"name": "subsub"},
				},
			},
			want: "root >> sub >> subsub",
		},
		{
			name: "scalars",
			src:  typedtemplate.FromString("{{ count }}|{{ ratio }}|{{ whole }}|{{ active }}|{{ none }}|{{ tags }}"),
			data: map[string]any{
				"count":  7,
				"ratio":  1.5,
				"whole":  2.0,
				"active": false,
				"none":   nil,
				"tags":   []string{"a", "b"},
			},
			want: "7|1.5|2.0|False||['a', 'b']",
		},
	}

	for _, kind := range []string{typedtemplate.Django, typedtemplate.Jinja} {
		eng, err := typedtemplate.NewEngine(kind, cfg)
		if err != nil {
			t.Fatalf("%s: new engine: %v", kind, err)
		}
		for _, tc := range cases {
			t.Run(kind+"/"+tc.name, func(t *testing.T) {
				fn := testsupport.MustTemplateFunc(t, eng, tc.src)
				if diff := testsupport.CompareGolden(tc.want, testsupport.MustRender(t, fn, tc.data)); diff != "" {
					t.Fatalf("output mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

type reportLeaf struct {
	Name string `json:"name" validate:"required"`
}

type reportBranch struct {
	Name string     `json:"name" validate:"required"`
	Sub  reportLeaf `json:"sub"`
}

type report struct {
	Name   string       `json:"name" validate:"required"`
	Sub    reportBranch `json:"sub"`
	Count  int          `json:"count" validate:"gte=0"`
	Ratio  float64      `json:"ratio"`
	Active bool         `json:"active"`
	Tags   []string     `json:"tags"`
}

func TestEngineEquivalence_Golden(t *testing.T) {
	golden := filepath.Join("testdata", "report.golden")
	cfg := typedtemplate.Config{Dirs: []string{filepath.Join("testdata", "templates")}}

	fields := report{
		Name:   "root",
		Sub:    reportBranch{Name: "sub", Sub: reportLeaf{Name: "subsub"}},
		Count:  3,
		Ratio:  1.5,
		Active: true,
		Tags:   []string{"a", "b"},
	}

	for _, kind := range []string{typedtemplate.Django, typedtemplate.Jinja} {
		t.Run(kind, func(t *testing.T) {
			eng, err := typedtemplate.NewEngine(kind, cfg)
			if err != nil {
				t.Fatalf("new engine: %v", err)
			}
			desc, err := typedtemplate.Declare[report](eng, typedtemplate.FromFile("report.txt"))
			if err != nil {
				t.Fatalf("declare: %v", err)
			}
			tpl, err := desc.New(fields)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			got, err := tpl.Render(nil)
			if err != nil {
				t.Fatalf("render: %v", err)
			}

			if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
				return
			}
			want := testsupport.MustReadGoldenString(t, golden)
			if diff := testsupport.CompareGolden(want, got); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewEngine_UnknownKind(t *testing.T) {
	_, err := typedtemplate.NewEngine("handlebars", typedtemplate.Config{})
	if !errors.Is(err, typedtemplate.ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}
}

func TestKindsRegistered(t *testing.T) {
	want := []string{typedtemplate.Django, typedtemplate.Jinja}
	if diff := cmp.Diff(want, engine.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionShort(t *testing.T) {
	if got := typedtemplate.VersionShort(); got != "0.1" {
		t.Fatalf("unexpected short version %q", got)
	}
}

type Greeting struct {
	Name string `json:"name" validate:"required"`
}

func ExampleDeclare() {
	eng, err := typedtemplate.NewEngine(typedtemplate.Django, typedtemplate.Config{})
	if err != nil {
		fmt.Println(err)
		return
	}

	greetings, err := typedtemplate.Declare[Greeting](eng, typedtemplate.FromString("Hello, {{ name }}{{ punctuation }}"))
	if err != nil {
		fmt.Println(err)
		return
	}

	tpl, err := greetings.New(Greeting{Name: "Todd"})
	if err != nil {
		fmt.Println(err)
		return
	}

	out, err := tpl.Render(map[string]any{"punctuation": "!"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	tpl.Fields.Name = ""
	_, err = tpl.Render(nil)
	fmt.Println(errors.Is(err, typedtemplate.ErrValidation))
	// Output:
	// Hello, Todd!
	// true
}
