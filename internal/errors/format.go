package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// palette styles each part of a formatted error.
type palette struct {
	label    func(a ...any) string
	message  func(a ...any) string
	category func(a ...any) string
	usage    func(a ...any) string
	fix      func(a ...any) string
	bullet   func(a ...any) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label:    fmt.Sprint,
		message:  fmt.Sprint,
		category: fmt.Sprint,
		usage:    fmt.Sprint,
		fix:      fmt.Sprint,
		bullet:   fmt.Sprint,
	}
)

// Format renders err as the block printed on stderr: category and message,
// then the usage line and remediation steps when present.
//
//	Error [Argument Error]: version must not be empty
//
//	Usage: relnotes <version> <output-file>
//
//	To fix this:
//	  • Pass the version being released, e.g. v1.0.0 or 1.0.0
func Format(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}

	p := plain
	if useColors {
		p = colored
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints err to w. Colors are used only when w is a terminal
// and color output has not been disabled (NO_COLOR).
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, Format(err, !color.NoColor && isTerminal(w)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
