package ui

import (
	"os"

	"golang.org/x/term"
)

// ShouldUseColor reports whether styled output is appropriate: stdout is a
// terminal and NO_COLOR (https://no-color.org) is unset.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
