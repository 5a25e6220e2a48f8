package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner animates a message while a lookup runs. On a writer that is not a
// terminal it prints nothing.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner with message on w when caps.IsTTY.
func StartSpinner(w io.Writer, caps TerminalCapabilities, message string) *Spinner {
	if !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()

	return &Spinner{s: s}
}

// Stop halts the animation and clears its line. It is safe to call more than once.
func (sp *Spinner) Stop() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Stop()
	sp.s = nil
}

// Active reports whether the spinner is animating.
func (sp *Spinner) Active() bool {
	return sp != nil && sp.s != nil
}
