package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/damonayoung/status-summarizer-bot/internal/debug"
	"github.com/damonayoung/status-summarizer-bot/internal/ui"
)

// outputJSON outputs data as pretty-printed JSON to stdout.
func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// printStatus prints a muted progress line, suppressed by --quiet.
func printStatus(format string, args ...interface{}) {
	if debug.IsQuiet() {
		return
	}
	fmt.Println(ui.RenderMuted(fmt.Sprintf(format, args...)))
}

// printSuccess prints a green check line, suppressed by --quiet.
func printSuccess(format string, args ...interface{}) {
	if debug.IsQuiet() {
		return
	}
	fmt.Println(ui.RenderPass(ui.IconPass + " " + fmt.Sprintf(format, args...)))
}

// printWarn prints a yellow warning line, suppressed by --quiet.
func printWarn(format string, args ...interface{}) {
	if debug.IsQuiet() {
		return
	}
	fmt.Println(ui.RenderWarn(ui.IconWarn + " " + fmt.Sprintf(format, args...)))
}

// printError prints a red error line to stderr.
func printError(err error) {
	fmt.Fprintln(os.Stderr, ui.RenderFail(ui.IconFail+" Error: "+err.Error()))
}
