package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/jextranet/runlet/internal/common"
)

// NameEnv is the environment variable overriding the displayed invocation
// name when no explicit name is given.
const NameEnv = "RUNLET_NAME"

// minFlagWidth is the narrowest the flag column is ever rendered.
const minFlagWidth = 14

// Param is the subset of a parameter field needed to render usage.
type Param struct {
	Name        string
	Description string
	Required    bool
	Hidden      bool
}

// ScriptName resolves the invocation name shown in usage text: override if
// set, then $RUNLET_NAME, then the simple type name of runlet, then the
// program name. Only the final path segment is kept.
func ScriptName(override string, runlet any) string {
	name := override
	if name == "" {
		name = os.Getenv(NameEnv)
	}
	if name == "" {
		name = common.TypeName(runlet)
	}
	if name == "" && len(os.Args) > 0 {
		name = os.Args[0]
	}
	return common.LastSegment(name)
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// BuildUsage renders the usage text for a runlet invoked as name. Values
// already supplied on the command line are echoed next to their parameter.
// The header is bold and underlined only when styled is set.
func BuildUsage(name string, params []Param, values map[string]string, styled bool) string {
	header := "Usage:"
	if styled {
		header = color.New(color.OpBold, color.OpUnderscore).Sprint(header)
	}

	var builder strings.Builder
	builder.WriteString("\n" + header + "\n")
	builder.WriteString(fmt.Sprintf("    %s [--prompt]", name))

	var lines []string
	maxLen := minFlagWidth

	for _, p := range params {
		if p.Hidden {
			continue
		}

		token := fmt.Sprintf("--%s=%s", p.Name, p.Name)
		flag := "--" + p.Name
		if !p.Required {
			token = "[" + token + "]"
			flag = "[" + flag + "]"
		}
		builder.WriteString(" " + token)

		desc := p.Description
		if desc == "" {
			desc = p.Name
		}
		if v, ok := values[p.Name]; ok {
			desc += fmt.Sprintf("    [value='%s']", v)
		}

		if len(flag) > maxLen {
			maxLen = len(flag)
		}
		lines = append(lines, fmt.Sprintf("%s||%s", flag, desc))
	}
	builder.WriteString(fmt.Sprintf("\n    %s --help|-h|-?\n\n", name))

	// Format with aligned descriptions
	for _, line := range lines {
		parts := strings.SplitN(line, "||", 2)
		padding := strings.Repeat(" ", maxLen-len(parts[0]))
		builder.WriteString(fmt.Sprintf("    %s%s    %s\n", parts[0], padding, parts[1]))
	}
	if len(lines) > 0 {
		builder.WriteString("\n")
	}

	builder.WriteString(fmt.Sprintf("    %-*s    %s\n", maxLen, "--prompt", "Prompt user for unspecified parameters on command line"))
	builder.WriteString(fmt.Sprintf("    %-*s    %s\n", maxLen, "--help, -h, -?", "Display this help"))
	return builder.String()
}
