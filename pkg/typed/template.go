package typed

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-typedtemplate/internal/contextutil"
	"github.com/goliatone/go-typedtemplate/pkg/validation"
)

// Template is one model instance bound to its Descriptor. Fields may be
// changed between renders; every Render validates them again.
type Template[T any] struct {
	Fields T

	descriptor *Descriptor[T]
}

// Descriptor returns the type-level binding of the instance.
func (t *Template[T]) Descriptor() *Descriptor[T] { return t.descriptor }

// Context merges the instance fields with extra, extra keys winning, and
// validates the result against T. Declared fields carry the decoded values
// (an extra "items": 3.0 becomes 3 for an int field); undeclared extra keys
// pass through. The result is what Render hands to the engine.
func (t *Template[T]) Context(extra map[string]any) (map[string]any, error) {
	base, err := contextutil.ToMap(t.Fields)
	if err != nil {
		return nil, fmt.Errorf("typed: convert fields: %w", err)
	}

	if err := checkPaddedKeys[T](extra); err != nil {
		return nil, err
	}

	overlay, err := contextutil.ToMap(extra)
	if err != nil {
		return nil, fmt.Errorf("typed: convert extra context: %w", err)
	}

	merged := contextutil.Merge(base, overlay)

	var check T
	if err := t.descriptor.validator.DecodeStruct(merged, &check); err != nil {
		return nil, err
	}

	checked, err := contextutil.ToMap(check)
	if err != nil {
		return nil, fmt.Errorf("typed: convert validated fields: %w", err)
	}
	return contextutil.Merge(merged, checked), nil
}

// Render validates the merged context and executes the compiled template.
func (t *Template[T]) Render(extra map[string]any) (string, error) {
	ctx, err := t.Context(extra)
	if err != nil {
		return "", err
	}
	fn, err := t.descriptor.TemplateFunc()
	if err != nil {
		return "", err
	}
	return fn(ctx)
}

// checkPaddedKeys rejects extra keys that only reach a model field once
// surrounding whitespace is trimmed. Exact field names override as usual.
func checkPaddedKeys[T any](extra map[string]any) error {
	model := reflect.TypeOf((*T)(nil)).Elem()

	var issues []validation.Issue
	for raw := range extra {
		key := strings.TrimSpace(raw)
		if key == raw || !hasField(model, key) {
			continue
		}
		issues = append(issues, validation.Issue{
			Field:   key,
			Rule:    "key",
			Message: fmt.Sprintf("extra key %q collides with field %q", raw, key),
		})
	}
	if len(issues) == 0 {
		return nil
	}
	return &validation.Error{Model: model.Name(), Issues: issues}
}

func hasField(model reflect.Type, name string) bool {
	for i := 0; i < model.NumField(); i++ {
		field := model.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch tag {
		case "-":
			continue
		case "":
			tag = field.Name
		}
		if tag == name {
			return true
		}
	}
	return false
}
