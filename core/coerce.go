package core

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jextranet/runlet/errors"
)

// Path is a filesystem path parameter. No existence check is made.
type Path string

// DateLayout is the layout used to read and write time.Time parameters. Only
// the date portion is significant.
var DateLayout = time.DateOnly

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// ToString returns the canonical string form of v. Nil pointers yield "".
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Path:
		return string(x)
	case time.Time:
		return x.Format(DateLayout)
	case uuid.UUID:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return ToString(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// FromString parses s into a new value of type t. Pointer types yield a
// pointer to a freshly parsed value.
func FromString(s string, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		elem, err := FromString(s, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}

	v := reflect.New(t).Elem()
	switch t {
	case timeType:
		d, err := time.ParseInLocation(DateLayout, s, time.Local)
		if err != nil {
			return v, errors.NewCoercion(s, t.String(), err)
		}
		v.Set(reflect.ValueOf(d))
		return v, nil
	case uuidType:
		// uuid.Parse also accepts braced, urn and unhyphenated forms
		if len(s) != 36 {
			return v, errors.NewCoercion(s, t.String(), fmt.Errorf("invalid UUID length: %d", len(s)))
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return v, errors.NewCoercion(s, t.String(), err)
		}
		v.Set(reflect.ValueOf(id))
		return v, nil
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		// an empty answer at a prompt means false
		if s == "" {
			break
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v, errors.NewCoercion(s, t.String(), err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return v, errors.NewCoercion(s, t.String(), err)
		}
		v.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return v, errors.NewCoercion(s, t.String(), err)
		}
		v.SetFloat(f)
	default:
		return v, errors.NewCoercion(s, t.String(), errors.ErrUnsupportedType)
	}
	return v, nil
}

// FromOptional is FromString for a string that may be absent. A nil s yields
// the zero value of t without error.
func FromOptional(s *string, t reflect.Type) (reflect.Value, error) {
	if s == nil {
		return reflect.Zero(t), nil
	}
	return FromString(*s, t)
}

// IsAbsent reports whether v holds no value: a nil pointer or interface, the
// zero time.Time or uuid.Nil. Strings, Paths, numbers and booleans are always
// present, so an empty string is written back out as such. Declare a *string
// or *Path field for an optional text value that can be absent.
func IsAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time).IsZero()
	case uuidType:
		return v.Interface().(uuid.UUID) == uuid.Nil
	}
	return false
}
