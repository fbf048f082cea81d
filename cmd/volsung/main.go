/*
File    : volsung/cmd/volsung/main.go
*/

// Command volsung is the entry point for the Volsung sound-synthesis
// runtime. It provides three modes of operation:
//  1. REPL mode (default): interactive graph-building session
//  2. File mode (--file): parse and run a Volsung source file
//  3. Server mode (--server): a TCP REPL server, one Program per
//     connection, each logged with a distinct session ID
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/volsung-lang/volsung/config"
	"github.com/volsung-lang/volsung/internal/httpapi"
	"github.com/volsung-lang/volsung/logging"
	"github.com/volsung-lang/volsung/parser"
	"github.com/volsung-lang/volsung/program"
	"github.com/volsung-lang/volsung/repl"
)

// VERSION is the current version of the Volsung runtime.
var VERSION = "v0.1.0"

// AUTHOR is shown in the REPL banner and --version output.
var AUTHOR = "the volsung project"

// LICENSE is the runtime's software license.
var LICENSE = "MIT"

var (
	flagConfig  = pflag.StringP("config", "c", "volsung.toml", "path to a volsung.toml configuration file")
	flagFile    = pflag.StringP("file", "f", "", "run the given Volsung source file instead of starting a REPL")
	flagServer  = pflag.StringP("server", "s", "", "start a TCP REPL server listening on the given address instead of a local REPL")
	flagHTTP    = pflag.String("http", "", "also serve the debug/inspection HTTP API on the given address")
	flagVersion = pflag.BoolP("version", "v", false, "print version information and exit")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("volsung %s (license %s, %s)\n", VERSION, LICENSE, AUTHOR)
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		logging.Errorf(os.Stderr, "%s", err.Error())
		os.Exit(1)
	}
	cfg = cfg.FillDefaults()

	switch {
	case *flagServer != "":
		runServer(cfg, *flagServer, *flagHTTP)
	case *flagFile != "":
		runFile(cfg, *flagFile)
	default:
		runREPL(cfg, os.Stdin, os.Stdout, *flagHTTP)
	}
}

// serveHTTP mounts the debug/inspection API over prog and serves it in
// the background; a listen error is fatal, matching the other server
// modes' "can't bind, can't run" policy.
func serveHTTP(prog *program.Program, addr string) {
	if addr == "" {
		return
	}
	api := &httpapi.API{Prog: prog}
	go func() {
		if err := http.ListenAndServe(addr, api.Router()); err != nil {
			logging.Errorf(os.Stderr, "http api on %q: %v", addr, err)
			os.Exit(1)
		}
	}()
	logging.Infof(os.Stdout, "debug HTTP API listening on %s", addr)
}

func newProgram(cfg config.Config) *program.Program {
	prog := program.New(cfg.SampleRate)
	prog.ConfigureIO(cfg.Inputs, cfg.Outputs)
	prog.Reset()
	return prog
}

// runREPL starts one interactive session against reader/writer.
func runREPL(cfg config.Config, reader *os.File, writer *os.File, httpAddr string) {
	prog := newProgram(cfg)
	serveHTTP(prog, httpAddr)
	r := repl.NewRepl(cfg.Banner, VERSION, AUTHOR, dividerLine, LICENSE, cfg.Prompt, prog)
	r.Start(reader, writer)
}

const dividerLine = "----------------------------------------------------------------"

// runFile parses and runs a Volsung source file: a parse error is fatal
// (unlike the REPL, there's no "try again" opportunity for a one-shot
// file run), and a successful parse reports the graph it built.
func runFile(cfg config.Config, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		logging.Errorf(os.Stderr, "could not read file %q: %v", path, err)
		os.Exit(1)
	}

	prog := newProgram(cfg)
	prog.DiagSink = logging.DiagSink(os.Stderr, "")
	if !parser.New(string(source)).ParseProgram(prog) {
		os.Exit(1)
	}
	logging.Resultf(os.Stdout, "parsed %q: %d nodes", path, prog.CountNodes())
}

// runServer starts a TCP REPL server: each accepted connection gets its
// own Program and its own Repl instance, so clients never share state,
// and every connection is tagged with a uuid for log correlation. httpAddr
// is accepted but not wired here: with one Program per connection there
// is no single graph for a debug API to inspect.
func runServer(cfg config.Config, addr string, httpAddr string) {
	if httpAddr != "" {
		logging.Warnf(os.Stdout, "--http is ignored in --server mode: each connection has its own Program")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logging.Errorf(os.Stderr, "failed to listen on %q: %v", addr, err)
		os.Exit(1)
	}
	defer listener.Close()
	logging.Infof(os.Stdout, "volsung REPL server listening on %s", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			logging.Errorf(os.Stderr, "accept error: %v", err)
			continue
		}
		go handleConnection(cfg, conn)
	}
}

func handleConnection(cfg config.Config, conn net.Conn) {
	defer conn.Close()
	sessionID := uuid.New()
	logging.Infof(os.Stdout, "[%s] connection from %s", sessionID, conn.RemoteAddr())

	prog := newProgram(cfg)
	prog.DiagSink = logging.DiagSink(conn, fmt.Sprintf("[%s] ", sessionID))
	r := repl.NewRepl(cfg.Banner, VERSION, AUTHOR, dividerLine, LICENSE, cfg.Prompt, prog)
	r.Start(conn, conn)

	logging.Infof(os.Stdout, "[%s] connection closed", sessionID)
}
