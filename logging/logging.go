/*
File    : volsung/logging/logging.go
*/

// Package logging centralizes the colored console output shared by the
// CLI, the REPL, and the TCP server: one set of fatih/color palettes
// instead of each caller defining its own.
package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	// Rule prints separator lines and other decorative framing.
	Rule = color.New(color.FgBlue)
	// Banner prints the startup ASCII art.
	Banner = color.New(color.FgGreen)
	// Info prints informational messages: connection notices, usage hints.
	Info = color.New(color.FgCyan)
	// Result prints the value produced by a successful operation.
	Result = color.New(color.FgYellow)
	// Warn prints non-fatal problems the user should notice.
	Warn = color.New(color.FgYellow)
	// Error prints parse errors, runtime errors, and fatal failures.
	Error = color.New(color.FgRed)
)

// Errorf writes a red-colored, newline-terminated error message to w.
func Errorf(w io.Writer, format string, args ...any) {
	Error.Fprintf(w, format+"\n", args...)
}

// Infof writes a cyan-colored, newline-terminated informational message to w.
func Infof(w io.Writer, format string, args ...any) {
	Info.Fprintf(w, format+"\n", args...)
}

// Resultf writes a yellow-colored, newline-terminated result message to w.
func Resultf(w io.Writer, format string, args ...any) {
	Result.Fprintf(w, format+"\n", args...)
}

// Warnf writes a yellow-colored, newline-terminated warning to w.
func Warnf(w io.Writer, format string, args ...any) {
	Warn.Fprintf(w, format+"\n", args...)
}

// Rulef writes a blue-colored separator line to w.
func Rulef(w io.Writer, line string) {
	Rule.Fprintf(w, "%s\n", line)
}

// Bannerf writes a green-colored banner to w.
func Bannerf(w io.Writer, banner string) {
	Banner.Fprintf(w, "%s\n", banner)
}

// DiagSink returns a program.Program.DiagSink callback that writes each
// diagnostic message to w in the error palette, prefixed consistently for
// whichever component installs it (CLI, REPL, server).
func DiagSink(w io.Writer, prefix string) func(string) {
	return func(msg string) {
		Errorf(w, "%s%s", prefix, msg)
	}
}

// Sprint is a small convenience used where a message is assembled before
// being handed to a writer-based logger above.
func Sprint(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
