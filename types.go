package runlet

import "github.com/jextranet/runlet/core"

// Command is a marker type that names the command method of a runlet.
//
// Embed it in the runlet struct, or any struct the runlet embeds, and give
// the method name in the `command` tag. An empty tag means "Run". The method
// must take no arguments and return nothing or an error.
//
// Usage:
//
//	type Greeter struct {
//	    runlet.Command `command:"Greet"`
//	    params *Params
//	}
//
//	func (g *Greeter) Greet() error { ... }
//
// Without a marker, a method named Execute is used instead.
type Command = core.Command

// Path is a filesystem path parameter. Values are not checked for existence.
//
// Usage:
//
//	type Params struct {
//	    Input runlet.Path `param:"input" desc:"File to read"`
//	}
type Path = core.Path

// Param describes a parameter field discovered on a parameters struct.
//
// Parameter fields are declared with the `param` tag giving the flag name.
// The optional `desc`, `required` and `hidden` tags complete the declaration:
//
//	type Params struct {
//	    Name   string `param:"name" desc:"Example name"`
//	    Age    int    `param:"age" desc:"Example age"`
//	    SSN    string `param:"ssn" desc:"Optional SSN" required:"false"`
//	    secret string `param:"secret" hidden:"true"`
//	}
//
// Hidden parameters are left out of usage text and are never enforced as
// required. Unexported fields are bound like exported ones.
type Param = core.Param

// Registry is the ordered collection of parameter fields of one parameters
// instance.
type Registry = core.Registry

// Processor parses the arguments of one invocation. See core.Processor.
type Processor = core.Processor

// Outcome is the result of processing arguments.
type Outcome = core.Outcome

// Status is either Proceed or Abort.
type Status = core.Status

const (
	Abort   = core.Abort
	Proceed = core.Proceed
)
