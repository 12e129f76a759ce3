// Package debug provides verbose and quiet output controls for ssb.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled     = os.Getenv("SSB_DEBUG") != ""
	verboseMode = false
	quietMode   = false
)

func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// Logf writes debug output to stderr when SSB_DEBUG or --verbose is set.
func Logf(format string, args ...interface{}) {
	if enabled || verboseMode {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// PrintNormal prints output unless quiet mode is enabled.
// Use this for pipeline progress lines that should be suppressed in quiet mode.
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		fmt.Printf(format, args...)
	}
}
