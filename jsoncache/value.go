package jsoncache

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-reflect"
)

// validateValue checks v against the storable value domain: nil, booleans,
// numbers, strings, ordered lists of storable values and string-keyed maps
// of storable values. Concrete typed containers ([]string, map[string]int
// and friends) count as their generic shape. Anything else (functions,
// channels, structs, pointers, non-string-keyed maps) is rejected with
// ErrNotSerializable rather than being left for the JSON encoder to fail
// on.
func validateValue(v any) error {
	switch val := v.(type) {
	case nil, bool, string:
		return nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return nil
	case []any:
		for i, item := range val {
			if err := validateValue(item); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		return nil
	case map[string]any:
		for k, item := range val {
			if err := validateValue(item); err != nil {
				return errors.Wrapf(err, "field %q", k)
			}
		}
		return nil
	}
	return validateReflect(v)
}

// validateReflect covers typed containers the type switch cannot name.
func validateReflect(v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validateValue(rv.Index(i).Interface()); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return errors.Wrapf(ErrNotSerializable, "map keyed by %s, want string", rv.Type().Key())
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := validateValue(iter.Value().Interface()); err != nil {
				return errors.Wrapf(err, "field %q", iter.Key().String())
			}
		}
		return nil
	default:
		return errors.Wrapf(ErrNotSerializable, "unsupported type %T", v)
	}
}
