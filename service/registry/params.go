package registry

import (
	"fmt"
	"reflect"
	"sort"
)

// ApplyParameters sets fields of an input struct pointer from a map keyed by
// Go field name. Values are the loosely typed forms produced by JSON or YAML
// decoding: strings, numbers, booleans and lists of those.
func ApplyParameters(input reflect.Value, params map[string]any) error {
	if len(params) == 0 {
		return nil
	}
	elem := input.Elem()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		field := elem.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("input %s has no field %s", elem.Type().Name(), name)
		}
		if err := assign(field, params[name]); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func assign(field reflect.Value, value any) error {
	ft := field.Type()

	if ft.Kind() == reflect.Ptr {
		v := reflect.New(ft.Elem())
		if err := assign(v.Elem(), value); err != nil {
			return err
		}
		field.Set(v)
		return nil
	}

	switch ft.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.Set(reflect.ValueOf(s).Convert(ft))
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("expected integer, got %T", value)
		}
		field.SetInt(n)
	case reflect.Slice:
		items, ok := toSlice(value)
		if !ok {
			return fmt.Errorf("expected list, got %T", value)
		}
		out := reflect.MakeSlice(ft, len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), item); err != nil {
				return err
			}
		}
		field.Set(out)
	case reflect.Struct:
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
		for k, v := range m {
			f := field.FieldByName(k)
			if !f.IsValid() || !f.CanSet() {
				return fmt.Errorf("%s has no field %s", ft.Name(), k)
			}
			if err := assign(f, v); err != nil {
				return fmt.Errorf("%s.%s: %w", ft.Name(), k, err)
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s", ft.Kind())
	}
	return nil
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}

// StringField returns the value of a string or *string field, if set.
func StringField(v reflect.Value, name string) (string, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	f := v.FieldByName(name)
	if !f.IsValid() {
		return "", false
	}
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return "", false
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}

// SetStringField sets a string or *string field of a struct pointer.
func SetStringField(v reflect.Value, name, value string) bool {
	f := v.Elem().FieldByName(name)
	if !f.IsValid() || !f.CanSet() {
		return false
	}
	switch {
	case f.Kind() == reflect.String:
		f.SetString(value)
	case f.Kind() == reflect.Ptr && f.Type().Elem().Kind() == reflect.String:
		p := reflect.New(f.Type().Elem())
		p.Elem().SetString(value)
		f.Set(p)
	default:
		return false
	}
	return true
}
