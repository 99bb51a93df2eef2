// Package catalog searches lists of domain records by free text.
package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"go-pos-console/pkg/validator"
)

// Field extracts the searchable value of one field of a record.
type Field[T any] func(T) any

// Filter keeps the records where the trimmed, lower-cased term is a substring of
// at least one field. A blank term returns records untouched. Order is preserved.
func Filter[T any](records []T, term string, fields ...Field[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return records
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(stringify(f(r))), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterByName is Filter with fields named by their json tag.
// An empty name list or a name T does not have is a validation error.
func FilterByName[T any](records []T, term string, names []string) ([]T, error) {
	if len(names) == 0 {
		return nil, validator.Invalid("fields", "must name at least one field")
	}

	var zero T
	fields := make([]Field[T], 0, len(names))
	for _, name := range names {
		path, ok := jsonFieldPath(reflect.TypeOf(zero), name)
		if !ok {
			return nil, validator.Invalid("fields", fmt.Sprintf("unknown field %q", name))
		}
		fields = append(fields, func(r T) any {
			return fieldByPath(reflect.ValueOf(r), path)
		})
	}
	return Filter(records, term, fields...), nil
}

// stringify renders v for matching: nil and nil pointers become "".
func stringify(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(rv.Interface())
}

func jsonFieldPath(t reflect.Type, name string) ([]int, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, false
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := strings.Split(sf.Tag.Get("json"), ",")[0]
		if sf.Anonymous && tag == "" {
			if sub, ok := jsonFieldPath(sf.Type, name); ok {
				return append([]int{i}, sub...), true
			}
			continue
		}
		if !sf.IsExported() || tag == "-" {
			continue
		}
		if tag == name || (tag == "" && sf.Name == name) {
			return []int{i}, true
		}
	}
	return nil, false
}

func fieldByPath(v reflect.Value, path []int) any {
	for _, i := range path {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v.Interface()
}
