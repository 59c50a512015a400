package runlet

import (
	"fmt"
	"os"
	"time"

	"github.com/jextranet/runlet/core"
)

var osExit = os.Exit // Mockable for testing

// NewRegistry discovers the parameter fields of params, a pointer to a
// struct. Fields declared on the struct itself come first, then those of its
// embedded structs. A duplicated parameter name anywhere in the embedding
// chain is an error.
var NewRegistry = core.NewRegistry

// FindCommand locates the command method of runlet: the method named by its
// single Command marker, or else its Execute method.
var FindCommand = core.FindCommand

// Execute locates and calls the command method of runlet.
var Execute = core.Execute

// BuildArgs returns the invocation name of runlet followed by one
// `--name=value` token per parameter of params that holds a value. The result
// can be handed back to a runlet, for instance in a subprocess.
//
// Example:
//
//	args, err := runlet.BuildArgs(&Greeter{}, &Params{Name: "Alice", Age: 30})
//	// args: ["Greeter", "--name=Alice", "--age=30"]
var BuildArgs = core.BuildArgs

// ToString returns the canonical string form of a parameter value.
var ToString = core.ToString

// FromString parses a string into a value of the given type.
var FromString = core.FromString

// Run processes args into params and, if processing proceeds, calls the
// command method of runlet. It reports whether the command ran and returned
// without error. Failures are written to standard error.
//
// Usage:
//
//	func main() {
//		g := &Greeter{params: &Params{}}
//		if !runlet.Run(g, g.params, os.Args[1:]) {
//			os.Exit(1)
//		}
//	}
func Run(runlet, params any, args []string) bool {
	return RunWith(&Processor{Runlet: runlet, Params: params}, args)
}

// RunWith is Run with a caller-configured Processor. Failures are written to
// proc.Err.
func RunWith(proc *Processor, args []string) bool {
	errOut := proc.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	outcome, err := proc.Process(args)
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return false
	}
	if outcome.Status != Proceed {
		return false
	}

	if err := proc.Dispatch(); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return false
	}
	return true
}

// Main is meant to be the whole body of a main function. It runs the
// runlet, prints the total run time and exits with status 0 on success or 1
// otherwise.
func Main(runlet, params any, args []string) {
	start := time.Now()
	ok := Run(runlet, params, args)
	fmt.Printf("(Total time: %d seconds)\n", int(time.Since(start).Seconds()))
	exit(ok)
}

// MainQuiet is Main without the run time line.
func MainQuiet(runlet, params any, args []string) {
	exit(Run(runlet, params, args))
}

func exit(ok bool) {
	if ok {
		osExit(0)
		return
	}
	osExit(1)
}
