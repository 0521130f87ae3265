package validation

import (
	"fmt"
	"math"
	"reflect"
)

// numericRangeHook rejects numbers that an integer field cannot hold
// exactly: fractional floats, values outside the field's range, and
// negative values for unsigned fields. mapstructure would otherwise
// truncate or wrap them.
func numericRangeHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() || !to.IsValid() {
		return nil, nil
	}
	value := from.Interface()

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return value, nil
	}
	target := reflect.Zero(to.Type())
	unsigned := isUnsigned(to.Kind())

	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := from.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, numericError(to, value, "fractional value")
		}
		if unsigned {
			if f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
				return nil, numericError(to, value, "out of range value")
			}
		} else if f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
			return nil, numericError(to, value, "out of range value")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := from.Int()
		if unsigned {
			if i < 0 || target.OverflowUint(uint64(i)) {
				return nil, numericError(to, value, "out of range value")
			}
		} else if target.OverflowInt(i) {
			return nil, numericError(to, value, "out of range value")
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := from.Uint()
		if unsigned {
			if target.OverflowUint(u) {
				return nil, numericError(to, value, "out of range value")
			}
		} else if u > math.MaxInt64 || target.OverflowInt(int64(u)) {
			return nil, numericError(to, value, "out of range value")
		}
	}
	return value, nil
}

func isUnsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func numericError(to reflect.Value, value any, what string) error {
	return fmt.Errorf("expected type '%s', got %s '%v'", to.Type(), what, value)
}
