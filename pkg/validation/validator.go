package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Validator decodes and checks models.
type Validator struct {
	validate *validator.Validate
	hook     mapstructure.DecodeHookFunc
}

// New returns a Validator reporting json tag names and decoding RFC 3339
// timestamps and Go durations from strings. Integer fields only accept
// numbers they can hold exactly.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{
		validate: v,
		hook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			mapstructure.StringToTimeDurationHookFunc(),
			numericRangeHook,
		),
	}
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns the shared Validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// RegisterValidation adds a custom constraint usable from `validate` tags.
func (v *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// Struct checks value's `validate` constraints. value must be a struct or a
// pointer to one.
func (v *Validator) Struct(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return err
	}
	return fromValidatorError(modelName(value), err)
}

// Decode copies values into out, a pointer to a struct, checking that each
// value fits its field type. Keys without a matching field are ignored.
func (v *Validator) Decode(values map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: v.hook,
		TagName:    "json",
		ZeroFields: true,
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(values); err != nil {
		return fromDecodeError(modelName(out), err)
	}
	return nil
}

// DecodeStruct decodes values into out and then validates it.
func (v *Validator) DecodeStruct(values map[string]any, out any) error {
	if err := v.Decode(values, out); err != nil {
		return err
	}
	return v.Struct(out)
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func modelName(value any) string {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
