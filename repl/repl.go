/*
File    : volsung/repl/repl.go
*/

// Package repl implements the Read-Eval-Print Loop for Volsung: an
// interactive session where each line of input is parsed into a single,
// persistent program.Program. Declarations and connections accumulate
// across lines exactly as they would reading a source file top to
// bottom; a handful of dot-commands drive the graph once it exists.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/volsung-lang/volsung/logging"
	"github.com/volsung-lang/volsung/parser"
	"github.com/volsung-lang/volsung/program"
)

// Repl is one interactive session: presentation strings plus the
// program.Program every line of input is parsed into.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	Prog *program.Program
}

// NewRepl constructs a Repl bound to an already-configured Program.
func NewRepl(banner, version, author, line, license, prompt string, prog *program.Program) *Repl {
	return &Repl{
		Banner:  banner,
		Version: version,
		Author:  author,
		Line:    line,
		License: license,
		Prompt:  prompt,
		Prog:    prog,
	}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	logging.Rulef(writer, r.Line)
	logging.Bannerf(writer, r.Banner)
	logging.Rulef(writer, r.Line)
	logging.Infof(writer, "Version: %s | Author: %s | License: %s", r.Version, r.Author, r.License)
	logging.Rulef(writer, r.Line)
	logging.Infof(writer, "Type Volsung declarations and connections, one at a time.")
	logging.Infof(writer, "Dot-commands: .run N   .nodes   .reset   .exit")
	logging.Rulef(writer, r.Line)
}

// Start begins the REPL main loop, reading from readline-managed input
// (so up/down arrows navigate history) and writing results and errors to
// writer. It returns when the user exits or the input stream ends.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	// readline always reads the process's own stdin, so any other reader
	// (a network connection, a test harness) goes straight to the plain
	// line scanner.
	if reader != os.Stdin {
		r.startPlain(reader, writer)
		return
	}

	rl, err := readline.New(r.Prompt)
	if err != nil {
		// readline needs an OS terminal; when stdin isn't one (piped
		// input) fall back to a plain line scanner with no history or
		// editing.
		r.startPlain(reader, writer)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		if r.handleLine(writer, line) {
			return
		}
		if strings.TrimSpace(line) != "" {
			rl.SaveHistory(line)
		}
	}
}

// startPlain is the readline-less fallback used when the reader is not
// stdin or stdin isn't a terminal, driven by bufio.Scanner instead.
func (r *Repl) startPlain(reader io.Reader, writer io.Writer) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if r.handleLine(writer, scanner.Text()) {
			return
		}
	}
	writer.Write([]byte("Good bye!\n"))
}

// handleLine processes one line of input, reporting whether the session
// should end.
func (r *Repl) handleLine(writer io.Writer, line string) bool {
	line = strings.Trim(line, " \t\r\n")
	if line == "" {
		return false
	}
	if line == ".exit" {
		writer.Write([]byte("Good bye!\n"))
		return true
	}
	r.executeWithRecovery(writer, line)
	return false
}

// executeWithRecovery parses and (for dot-commands) executes one line,
// recovering from any panic a misbehaving host callback or node might
// raise so the session keeps running, mirroring the original
// executeWithRecovery's "don't exit on error" REPL policy.
func (r *Repl) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logging.Errorf(writer, "[runtime error] %v", recovered)
		}
	}()

	if strings.HasPrefix(line, ".") {
		r.runCommand(writer, line)
		return
	}

	r.Prog.DiagSink = logging.DiagSink(writer, "")
	if parser.New(line + "\n").ParseProgram(r.Prog) {
		logging.Resultf(writer, "ok (%d nodes)", r.Prog.CountNodes())
	}
}

// runCommand dispatches one of the REPL's dot-commands.
func (r *Repl) runCommand(writer io.Writer, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".nodes":
		logging.Resultf(writer, "%d nodes", r.Prog.CountNodes())
	case ".reset":
		r.Prog.Reset()
		logging.Infof(writer, "program reset")
	case ".run":
		n := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				logging.Errorf(writer, "usage: .run [count]")
				return
			}
			n = parsed
		}
		for i := 0; i < n; i++ {
			out, err := r.Prog.Run(nil)
			if err != nil {
				logging.Errorf(writer, "%s", err.Error())
				return
			}
			logging.Resultf(writer, "%s", formatFrame(out))
		}
	default:
		logging.Errorf(writer, "unknown command %q", fields[0])
	}
}

func formatFrame(frame []float64) string {
	parts := make([]string, len(frame))
	for i, f := range frame {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}
