package core

import (
	stderrs "errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/jextranet/runlet/display"
	"github.com/jextranet/runlet/errors"
	"github.com/jextranet/runlet/internal/common"
)

// Param describes one parameter field discovered on a parameters struct.
type Param struct {
	Name        string
	Description string
	Required    bool
	Hidden      bool

	// Field is the declaring type and field name, e.g. "Params.Age".
	Field string
	Type  reflect.Type
}

// Accessor reads and writes a single parameter field of the instance a
// Registry was built from, regardless of whether the field is exported.
type Accessor struct {
	param Param
	value reflect.Value
}

// Type returns the declared type of the field.
func (a *Accessor) Type() reflect.Type { return a.value.Type() }

// Get returns the current value of the field.
func (a *Accessor) Get() any { return a.value.Interface() }

// Absent reports whether the field currently holds no value.
func (a *Accessor) Absent() bool { return IsAbsent(a.value) }

// Set coerces s to the field type and assigns it.
func (a *Accessor) Set(s string) error {
	v, err := FromString(s, a.value.Type())
	if err != nil {
		var ce *errors.CoercionError
		if stderrs.As(err, &ce) {
			ce.Param = a.param.Name
		}
		return err
	}
	a.value.Set(v)
	return nil
}

// Registry is the ordered set of parameter fields of one parameters
// instance. It observes and mutates the instance but never copies it.
type Registry struct {
	params    []Param
	accessors map[string]*Accessor
	log       *slog.Logger
}

// NewRegistry discovers the parameter fields of instance, which must be a
// pointer to a struct. Fields declared directly on the struct come first in
// declaration order, followed by those of each embedded struct, depth first.
// A parameter name may appear only once across the whole embedding chain.
// A nil instance yields an empty registry.
func NewRegistry(instance any) (*Registry, error) {
	return newRegistry(instance, slog.Default())
}

func newRegistry(instance any, log *slog.Logger) (*Registry, error) {
	r := &Registry{accessors: make(map[string]*Accessor), log: log}
	if common.IsNil(instance) {
		return r, nil
	}
	if !common.IsStructPtr(instance) {
		return nil, errors.NewParseError(fmt.Sprintf("invalid parameters type %T: must pass pointer to struct", instance))
	}

	typeName := common.GetStructType(instance).String()
	if err := r.collect(reflect.ValueOf(instance).Elem(), typeName); err != nil {
		return nil, err
	}
	r.log.Debug("Parameter registry built.", "type", typeName, "params", len(r.params))
	return r, nil
}

// collect appends the tagged fields declared on v's own type, then descends
// into each embedded struct.
func (r *Registry) collect(v reflect.Value, typeName string) error {
	t := v.Type()
	var embedded []reflect.Value

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tags, ok, err := common.GetParamTags(field)
		if err != nil {
			return errors.NewParseError(fmt.Sprintf("invalid tag on field %s: %v", qualify(t, field), err))
		}

		if !ok {
			if field.Anonymous {
				if ev, ok := embeddedStruct(v.Field(i)); ok {
					embedded = append(embedded, ev)
				}
			}
			continue
		}

		if _, dup := r.accessors[tags.Name]; dup {
			return errors.NewDuplicateParameterName(tags.Name, qualify(t, field), typeName)
		}

		p := Param{
			Name:        tags.Name,
			Description: tags.Description,
			Required:    tags.Required,
			Hidden:      tags.Hidden,
			Field:       qualify(t, field),
			Type:        field.Type,
		}
		r.params = append(r.params, p)
		r.accessors[p.Name] = &Accessor{param: p, value: common.Settable(v.Field(i))}
	}

	for _, ev := range embedded {
		if err := r.collect(ev, typeName); err != nil {
			return err
		}
	}
	return nil
}

// embeddedStruct resolves an embedded field to its struct value, allocating
// a nil embedded pointer.
func embeddedStruct(f reflect.Value) (reflect.Value, bool) {
	f = common.Settable(f)
	if f.Kind() == reflect.Pointer {
		if f.Type().Elem().Kind() != reflect.Struct {
			return f, false
		}
		if f.IsNil() {
			f.Set(reflect.New(f.Type().Elem()))
		}
		f = f.Elem()
	}
	return f, f.Kind() == reflect.Struct
}

func qualify(t reflect.Type, field reflect.StructField) string {
	if t.Name() == "" {
		return field.Name
	}
	return t.Name() + "." + field.Name
}

// Fields returns the parameters in registry order.
func (r *Registry) Fields() []Param {
	return append([]Param(nil), r.params...)
}

// Accessor returns the accessor for p, or nil if p is not in the registry.
func (r *Registry) Accessor(p Param) *Accessor {
	return r.accessors[p.Name]
}

// Lookup returns the parameter with the given name.
func (r *Registry) Lookup(name string) (Param, bool) {
	a, ok := r.accessors[name]
	if !ok {
		return Param{}, false
	}
	return a.param, true
}

// SetValues assigns every parameter named in values, in registry order. It
// stops at the first value that cannot be coerced.
func (r *Registry) SetValues(values map[string]string) error {
	for _, p := range r.params {
		s, ok := values[p.Name]
		if !ok {
			continue
		}
		if err := r.accessors[p.Name].Set(s); err != nil {
			return err
		}
		r.log.Debug("Parameter bound.", "param", p.Name, "field", p.Field)
	}
	return nil
}

// AppendArgs returns a copy of prefix followed by one `--name="value"` token
// per parameter holding a value, in registry order.
func (r *Registry) AppendArgs(prefix ...string) []string {
	args := append(make([]string, 0, len(prefix)+len(r.params)), prefix...)
	for _, p := range r.params {
		a := r.accessors[p.Name]
		if a.Absent() {
			continue
		}
		args = append(args, fmt.Sprintf("--%s=\"%s\"", p.Name, ToString(a.Get())))
	}
	return args
}

// BuildArgs returns the invocation name of runlet followed by one unquoted
// `--name=value` token per parameter of params holding a value.
func BuildArgs(runlet, params any) ([]string, error) {
	r, err := NewRegistry(params)
	if err != nil {
		return nil, err
	}
	args := []string{display.ScriptName("", runlet)}
	for _, p := range r.params {
		a := r.accessors[p.Name]
		if a.Absent() {
			continue
		}
		args = append(args, fmt.Sprintf("--%s=%s", p.Name, ToString(a.Get())))
	}
	return args, nil
}
