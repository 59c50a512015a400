package errors

import (
	stderrs "errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is the cause carried by a CoercionError when the target
// type has no string conversion.
var ErrUnsupportedType = stderrs.New("unsupported type")

// ParseError represents a generic error produced while inspecting a
// parameters or runlet value. It is intended for user-facing messages.
type ParseError struct{ Msg string }

func (e ParseError) Error() string { return e.Msg }

// DuplicateParameterNameError indicates two parameter fields share a name
// somewhere in the embedding chain of Type.
type DuplicateParameterNameError struct{ Name, Field, Type string }

func (e DuplicateParameterNameError) Error() string {
	return fmt.Sprintf("duplicate parameter name %q on field %s found in %s", e.Name, e.Field, e.Type)
}

// CoercionError indicates a string could not be converted to the type of a
// parameter field. Param is empty when the conversion happened outside a
// registry.
type CoercionError struct {
	Param, Value, Type string
	Err                error
}

func (e *CoercionError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("for parameter %q, cannot coerce value %q to type %s: %v", e.Param, e.Value, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot coerce value %q to type %s: %v", e.Value, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// MissingRequiredParameterError indicates a visible required parameter was
// not supplied.
type MissingRequiredParameterError struct{ Name string }

func (e MissingRequiredParameterError) Error() string {
	return fmt.Sprintf("missing required parameter [%s]", e.Name)
}

// UnknownArgumentError indicates a token matched no part of the argument
// grammar. Suggestion, if present, is a parameter flag the user may have meant.
type UnknownArgumentError struct{ Arg, Suggestion string }

func (e UnknownArgumentError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown argument: %s (did you mean %q?)", e.Arg, e.Suggestion)
	}
	return fmt.Sprintf("unknown argument: %s", e.Arg)
}

// NoCommandFoundError indicates the runlet has neither a command marker nor
// an Execute method.
type NoCommandFoundError struct{ Type string }

func (e NoCommandFoundError) Error() string {
	return fmt.Sprintf("no command method found on %s: embed runlet.Command or declare Execute()", e.Type)
}

// AmbiguousCommandError indicates more than one command marker was found.
type AmbiguousCommandError struct {
	Type    string
	Matches []string
}

func (e AmbiguousCommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "the following command methods were found on runlet %s:", e.Type)
	for _, m := range e.Matches {
		b.WriteString("\n  " + m)
	}
	b.WriteString("\nonly a single command method is allowed")
	return b.String()
}

// InvalidCommandError indicates a command marker names a method that does not
// exist or cannot be called without arguments.
type InvalidCommandError struct{ Method, Reason string }

func (e InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command method %s: %s", e.Method, e.Reason)
}

// Helper constructors
func NewParseError(msg string) error { return ParseError{Msg: msg} }
func NewDuplicateParameterName(name, field, typ string) error {
	return DuplicateParameterNameError{Name: name, Field: field, Type: typ}
}
func NewCoercion(value, typ string, err error) error {
	return &CoercionError{Value: value, Type: typ, Err: err}
}
func NewMissingRequiredParameter(name string) error {
	return MissingRequiredParameterError{Name: name}
}
func NewUnknownArgument(arg, suggestion string) error {
	return UnknownArgumentError{Arg: arg, Suggestion: suggestion}
}
func NewNoCommandFound(typ string) error { return NoCommandFoundError{Type: typ} }
func NewAmbiguousCommand(typ string, matches []string) error {
	return AmbiguousCommandError{Type: typ, Matches: matches}
}
func NewInvalidCommand(method, reason string) error {
	return InvalidCommandError{Method: method, Reason: reason}
}
