package gqlgo

import (
	"fmt"
	"reflect"
	"strings"
)

// FormatValue renders v for the String methods of generated entities.
// Pointers are dereferenced, nil renders as "null" and slices render their
// elements recursively.
func FormatValue(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(fmt.Stringer); ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "null"
		}
		return s.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return FormatValue(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return "null"
		}
		var b strings.Builder
		b.WriteString("[")
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(rv.Index(i).Interface()))
		}
		b.WriteString("]")
		return b.String()
	case reflect.String:
		return fmt.Sprintf("%q", rv.String())
	default:
		return fmt.Sprint(v)
	}
}
