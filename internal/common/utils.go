package common

import (
	"reflect"
	"strconv"
	"strings"
	"unsafe"
)

// ParamTags holds the metadata read from a parameter field's struct tags.
type ParamTags struct {
	Name        string
	Description string
	Required    bool
	Hidden      bool
}

// GetParamTags reads the `param`, `desc`, `required` and `hidden` tags of a
// field. ok is false when the field carries no `param` tag.
func GetParamTags(field reflect.StructField) (tags ParamTags, ok bool, err error) {
	name, ok := field.Tag.Lookup("param")
	if !ok {
		return tags, false, nil
	}
	tags = ParamTags{Name: name, Description: field.Tag.Get("desc"), Required: true}

	if val := field.Tag.Get("required"); val != "" {
		if tags.Required, err = strconv.ParseBool(val); err != nil {
			return tags, true, err
		}
	}
	if val := field.Tag.Get("hidden"); val != "" {
		if tags.Hidden, err = strconv.ParseBool(val); err != nil {
			return tags, true, err
		}
	}
	return tags, true, nil
}

// IsStructPtr checks if the provided value is a pointer to a struct.
func IsStructPtr(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct
}

// IsNil reports whether v is nil or a nil pointer.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// GetStructType returns the reflect.Type of the underlying struct pointer.
func GetStructType(v any) reflect.Type {
	return reflect.TypeOf(v).Elem()
}

// Indirect strips every level of pointer from t.
func Indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// TypeName returns the simple name of the type behind v, with pointers
// stripped. Unnamed types yield an empty string.
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	return Indirect(reflect.TypeOf(v)).Name()
}

// Settable returns a view of the addressable field f that may be read and
// written even when f is unexported.
func Settable(f reflect.Value) reflect.Value {
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

// LastSegment normalises backslashes to forward slashes and returns the
// final path segment of s.
func LastSegment(s string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	return s[strings.LastIndex(s, "/")+1:]
}
