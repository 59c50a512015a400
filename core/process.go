package core

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/jextranet/runlet/display"
	"github.com/jextranet/runlet/errors"
)

// Status is the terminal state of one argument processing pass.
type Status int

const (
	// Abort means the command must not run: help was shown, an argument was
	// not understood or a required parameter is missing.
	Abort Status = iota
	// Proceed means values are bound and the command may run.
	Proceed
)

func (s Status) String() string {
	if s == Proceed {
		return "proceed"
	}
	return "abort"
}

// Outcome is the result of Processor.Process.
type Outcome struct {
	Status Status
	// Usage holds the rendered usage text when Status is Abort.
	Usage string
	// Reason is the recoverable condition that caused an Abort, if any: an
	// UnknownArgumentError or a MissingRequiredParameterError.
	Reason error
}

const promptArg = "--prompt"

var helpArgs = map[string]bool{"--help": true, "-h": true, "-?": true}

// Processor parses one invocation's arguments into Params and decides
// whether Runlet's command may run.
type Processor struct {
	Runlet any
	Params any

	// Name overrides the invocation name shown in usage text.
	Name string

	In  io.Reader // prompt answers, os.Stdin if nil
	Out io.Writer // usage and prompts, os.Stdout if nil
	Err io.Writer // problem reports, os.Stderr if nil

	Logger *slog.Logger
}

// Process scans args, then in order: shows usage if help was requested or an
// argument was not understood, checks required parameters unless --prompt
// was given, otherwise prompts for every parameter not supplied, and finally
// binds the collected values into Params. A value that cannot be coerced is
// returned as an error.
func (p *Processor) Process(args []string) (Outcome, error) {
	log := p.logger()
	log.Debug("Argument processing started.", "args", len(args))

	reg, err := newRegistry(p.Params, p.logger())
	if err != nil {
		return Outcome{}, err
	}

	values := map[string]string{}
	var help, prompt bool
	var unknown error

	for _, arg := range args {
		if strings.TrimSpace(arg) == "" {
			continue
		}
		switch {
		case arg == promptArg:
			prompt = true
		case helpArgs[arg]:
			help = true
		case strings.HasPrefix(arg, "--") && strings.Contains(arg, "="):
			name, value, _ := strings.Cut(arg[2:], "=")
			values[name] = value
		default:
			help = true
			if unknown == nil {
				unknown = errors.NewUnknownArgument(arg, suggest(arg, reg))
				fmt.Fprintf(p.stderr(), "\n%s\n", unknown)
			}
			log.Debug("Unknown argument.", "arg", arg)
		}
	}
	log.Debug("Arguments scanned.", "values", len(values), "help", help, "prompt", prompt)

	if help {
		return p.abort(reg, values, unknown), nil
	}

	if !prompt {
		for _, param := range reg.Fields() {
			if param.Hidden || !param.Required {
				continue
			}
			if _, ok := values[param.Name]; !ok {
				missing := errors.NewMissingRequiredParameter(param.Name)
				fmt.Fprintf(p.stderr(), "\nMissing required parameter [%s].\n", param.Name)
				return p.abort(reg, values, missing), nil
			}
		}
	} else if err := p.prompt(reg, values); err != nil {
		return Outcome{}, err
	}

	if err := reg.SetValues(values); err != nil {
		return Outcome{}, err
	}
	log.Debug("Argument processing finished.", "status", Proceed)
	return Outcome{Status: Proceed}, nil
}

// Usage renders the usage text for the current Runlet and Params.
func (p *Processor) Usage(values map[string]string) (string, error) {
	reg, err := newRegistry(p.Params, p.logger())
	if err != nil {
		return "", err
	}
	return p.usage(reg, values), nil
}

func (p *Processor) abort(reg *Registry, values map[string]string, reason error) Outcome {
	usage := p.usage(reg, values)
	fmt.Fprintln(p.stdout(), usage)
	p.logger().Debug("Argument processing finished.", "status", Abort, "reason", reason)
	return Outcome{Status: Abort, Usage: usage, Reason: reason}
}

func (p *Processor) usage(reg *Registry, values map[string]string) string {
	var params []display.Param
	for _, f := range reg.Fields() {
		params = append(params, display.Param{
			Name:        f.Name,
			Description: f.Description,
			Required:    f.Required,
			Hidden:      f.Hidden,
		})
	}
	return display.BuildUsage(display.ScriptName(p.Name, p.Runlet), params, values, display.IsTerminal(p.stdout()))
}

// prompt asks for every parameter absent from values, hidden and optional
// ones included, one line each. End of input stops prompting.
func (p *Processor) prompt(reg *Registry, values map[string]string) error {
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)

	for _, param := range reg.Fields() {
		if _, ok := values[param.Name]; ok {
			continue
		}
		fmt.Fprintf(p.stdout(), "%s: ", param.Name)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read value for parameter %q: %w", param.Name, err)
		}
		if err == io.EOF && line == "" {
			p.logger().Debug("Prompt input ended.", "param", param.Name)
			return nil
		}
		values[param.Name] = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	}
	return nil
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Processor) stdout() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Processor) stderr() io.Writer {
	if p.Err == nil {
		return os.Stderr
	}
	return p.Err
}

// suggest returns the flag of the registered parameter closest to an unknown
// argument, or an empty string if none is close enough.
func suggest(arg string, reg *Registry) string {
	name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	if name == "" {
		return ""
	}
	low := strings.ToLower(name)

	best := ""
	bestDist := -1
	for _, param := range reg.Fields() {
		if param.Hidden {
			continue
		}
		d := levenshtein.Distance(low, strings.ToLower(param.Name), nil)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = param.Name
		}
	}
	// Only suggest if distance is small (adaptive threshold)
	if bestDist >= 0 && bestDist <= max(2, len(low)/3) {
		return "--" + best + "=" + best
	}
	return ""
}
