// Package contextutil converts typed records into the plain mappings template
// engines understand.
package contextutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/copystructure"
)

// ToMap converts data into a field-name keyed mapping. Structs are converted
// through their json encoding so nested records become nested maps. Mappings
// are deep copied first, so the result never shares nested maps or slices
// with the caller.
func ToMap(data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		copied, err := copystructure.Copy(v)
		if err != nil {
			return nil, fmt.Errorf("contextutil: copy mapping: %w", err)
		}
		return convertMap(copied.(map[string]any))
	default:
		if isNilPointer(v) {
			return map[string]any{}, nil
		}
		raw, err := jsonToAny(v)
		if err != nil {
			return nil, err
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("contextutil: %T does not convert to a mapping", data)
		}
		return m, nil
	}
}

// Merge returns a new map with extra applied over base; extra keys win.
func Merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}

// convertMap rewrites in place. Keys are trimmed and blank keys dropped; two
// keys that trim to the same name are an error rather than a silent pick.
func convertMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	origin := make(map[string]string, len(in))
	for raw, value := range in {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		if prev, ok := origin[key]; ok {
			return nil, fmt.Errorf("contextutil: keys %q and %q both resolve to %q", prev, raw, key)
		}
		origin[key] = raw
		converted, err := convertValue(value)
		if err != nil {
			return nil, fmt.Errorf("contextutil: key %q: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

func convertSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if isCallable(value) {
		return value, nil
	}

	switch v := value.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, nil
	case json.Number:
		return normalizeNumber(v), nil
	case map[string]any:
		return convertMap(v)
	case []any:
		return convertSlice(v)
	default:
		return jsonToAny(v)
	}
}

func jsonToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return normalize(out), nil
}

// normalize replaces json.Number values so engines print integers without a
// fractional part.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		return normalizeNumber(t)
	case map[string]any:
		for key, value := range t {
			t[key] = normalize(value)
		}
		return t
	case []any:
		for i, value := range t {
			t[i] = normalize(value)
		}
		return t
	default:
		return v
	}
}

func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func isCallable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
