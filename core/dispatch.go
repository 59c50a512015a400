package core

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"

	"github.com/jextranet/runlet/errors"
	"github.com/jextranet/runlet/internal/common"
)

var (
	commandType = reflect.TypeOf(Command{})
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Method is a located command method bound to its receiver.
type Method struct {
	// Name is the receiver type and method name, e.g. "Greeter.Run".
	Name string
	fn   reflect.Value
}

// Call invokes the method and returns its error, if it has one.
func (m *Method) Call() error {
	out := m.fn.Call(nil)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// receiver is one struct in the embedding chain of a runlet, as a pointer so
// its full method set is visible.
type receiver struct {
	ptr   reflect.Value
	name  string
	depth int
}

// FindCommand locates the command method of target. Every Command marker
// across target and its embedded structs is considered; with none present,
// the first Execute method found walking the chain from target inwards is
// used instead. More than one marker is an error.
func FindCommand(target any) (*Method, error) {
	return findCommand(target, slog.Default())
}

func findCommand(target any, log *slog.Logger) (*Method, error) {
	if common.IsNil(target) {
		return nil, errors.NewNoCommandFound(fmt.Sprintf("%T", target))
	}
	typeName := common.Indirect(reflect.TypeOf(target)).String()
	chain := receivers(target)

	var marked []*Method
	for i, r := range chain {
		if r.ptr.Elem().Kind() != reflect.Struct {
			continue
		}
		t := r.ptr.Elem().Type()
		for j := 0; j < t.NumField(); j++ {
			field := t.Field(j)
			if !field.Anonymous || field.Type != commandType {
				continue
			}
			name := field.Tag.Get("command")
			if name == "" {
				name = DefaultCommand
			}
			m, err := bind(chain, i, name)
			if err != nil {
				return nil, err
			}
			marked = append(marked, m)
		}
	}

	switch len(marked) {
	case 0:
	case 1:
		log.Debug("Command method found.", "method", marked[0].Name)
		return marked[0], nil
	default:
		var matches []string
		for _, m := range marked {
			matches = append(matches, m.Name)
		}
		return nil, errors.NewAmbiguousCommand(typeName, matches)
	}

	for i := range chain {
		if m, err := bind(chain, i, ConventionCommand); err == nil {
			log.Debug("Command method found by convention.", "method", m.Name)
			return m, nil
		}
	}
	return nil, errors.NewNoCommandFound(typeName)
}

// Execute locates the command method of target and calls it.
func Execute(target any) error {
	m, err := FindCommand(target)
	if err != nil {
		return err
	}
	return m.Call()
}

// Dispatch locates the command method of p.Runlet and calls it, logging
// through p.Logger.
func (p *Processor) Dispatch() error {
	m, err := findCommand(p.Runlet, p.logger())
	if err != nil {
		return err
	}
	return m.Call()
}

// receivers returns target followed by every struct it embeds, depth first.
func receivers(target any) []receiver {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}
	for v.Elem().Kind() == reflect.Pointer && !v.Elem().IsNil() {
		v = v.Elem()
	}

	var chain []receiver
	var walk func(ptr reflect.Value, depth int)
	walk = func(ptr reflect.Value, depth int) {
		chain = append(chain, receiver{ptr: ptr, name: ptr.Elem().Type().Name(), depth: depth})
		s := ptr.Elem()
		if s.Kind() != reflect.Struct {
			return
		}
		for i := 0; i < s.NumField(); i++ {
			if !s.Type().Field(i).Anonymous || s.Type().Field(i).Type == commandType {
				continue
			}
			f := common.Settable(s.Field(i))
			switch {
			case f.Kind() == reflect.Struct:
				walk(f.Addr(), depth+1)
			case f.Kind() == reflect.Pointer && !f.IsNil() && f.Elem().Kind() == reflect.Struct:
				walk(f, depth+1)
			}
		}
	}
	walk(v, 0)
	return chain
}

// bind looks up name on chain[i] and checks that it takes no arguments and
// returns nothing or an error. A method promoted from an embedded struct is
// named after the struct declaring it.
func bind(chain []receiver, i int, name string) (*Method, error) {
	r := chain[i]
	qualified := qualifyMethod(r, name)

	fn := r.ptr.MethodByName(name)
	if !fn.IsValid() {
		return nil, errors.NewInvalidCommand(qualified, "no such exported method")
	}
	ft := fn.Type()
	if ft.NumIn() != 0 {
		return nil, errors.NewInvalidCommand(qualified, fmt.Sprintf("takes %d arguments, want none", ft.NumIn()))
	}
	if ft.NumOut() > 1 || (ft.NumOut() == 1 && ft.Out(0) != errorType) {
		return nil, errors.NewInvalidCommand(qualified, "must return nothing or error")
	}

	if !declares(r, name) {
		// the embedded structs of r follow it in the chain at a greater depth
		for _, e := range chain[i+1:] {
			if e.depth <= r.depth {
				break
			}
			if declares(e, name) {
				qualified = qualifyMethod(e, name)
				break
			}
		}
	}
	return &Method{Name: qualified, fn: fn}, nil
}

func qualifyMethod(r receiver, name string) string {
	if r.name == "" {
		return name
	}
	return r.name + "." + name
}

// declares reports whether the struct of r has its own method called name,
// as opposed to one promoted from an embedded struct. Promoted methods, like
// the pointer forms of value methods, are compiler-generated wrappers.
func declares(r receiver, name string) bool {
	for _, t := range []reflect.Type{r.ptr.Type(), r.ptr.Type().Elem()} {
		m, ok := t.MethodByName(name)
		if !ok {
			continue
		}
		fn := runtime.FuncForPC(m.Func.Pointer())
		if fn == nil {
			return true
		}
		if file, _ := fn.FileLine(fn.Entry()); file != "<autogenerated>" {
			return true
		}
	}
	return false
}
