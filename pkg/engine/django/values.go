package django

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// pongo2 prints floats with %f and collections with Go formatting. The jinja
// adapter prints them the way Python does, so context values are wrapped in
// types whose String method matches that output. Kinds are unchanged, so
// arithmetic, comparisons, iteration and attribute access still see a float,
// a slice or a map.

type pyFloat float64

func (f pyFloat) String() string {
	out := strconv.FormatFloat(float64(f), 'f', 11, 64)
	out = strings.TrimRight(out, "0")
	if strings.HasSuffix(out, ".") {
		out += "0"
	}
	return out
}

type pyList []any

func (l pyList) String() string {
	var out strings.Builder
	out.WriteByte('[')
	for i, item := range l {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(repr(item))
	}
	out.WriteByte(']')
	return out.String()
}

type pyDict map[string]any

func (d pyDict) String() string {
	pairs := make([]string, 0, len(d))
	for key, value := range d {
		pairs = append(pairs, fmt.Sprintf("'%s': %s", key, repr(value)))
	}
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, ", ") + "}"
}

func repr(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return pongo2.AsValue(v).String()
}

// pythonic wraps floats, slices and maps anywhere in v.
func pythonic(v any) any {
	switch t := v.(type) {
	case float64:
		return pyFloat(t)
	case float32:
		return pyFloat(t)
	case []any:
		out := make(pyList, len(t))
		for i, item := range t {
			out[i] = pythonic(item)
		}
		return out
	case map[string]any:
		out := make(pyDict, len(t))
		for key, value := range t {
			out[key] = pythonic(value)
		}
		return out
	default:
		return v
	}
}

func viewContext(data map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = pythonic(value)
	}
	return ctx
}
