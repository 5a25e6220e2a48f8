// Package progress shows lookup progress on interactive terminals.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the output writer can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// Symbols are the status markers printed for the current terminal.
type Symbols struct {
	Checkmark  string
	SpinnerSet int
}

// DetectTerminalCapabilities inspects w and the environment.
// Checks: w isatty, NO_COLOR env, RELNOTES_ASCII env.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RELNOTES_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns the symbol set for caps.
// Unicode: ✓ with braille spinner (set 14). ASCII: [OK] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{
			Checkmark:  "✓",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return Symbols{
		Checkmark:  "[OK]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
