package environment

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is the width assumed when stdout isn't a terminal.
const DefaultWidth = 80

var interactiveOverride *bool

// ForceSetIsInteractive overrides the interactive check. It is a test hook.
func ForceSetIsInteractive(value bool) {
	interactiveOverride = &value
}

// ResetIsInteractive removes any override set by ForceSetIsInteractive.
func ResetIsInteractive() {
	interactiveOverride = nil
}

// IsInteractive returns true if the output goes to a terminal a user is
// looking at, false when it is piped or redirected.
func IsInteractive() bool {
	if interactiveOverride != nil {
		return *interactiveOverride
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// TerminalWidth returns the number of columns of the terminal on stdout, or
// DefaultWidth when there is none.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
