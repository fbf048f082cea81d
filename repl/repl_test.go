/*
File    : volsung/repl/repl_test.go
*/
package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volsung-lang/volsung/program"
)

func newTestRepl() (*Repl, *bytes.Buffer) {
	prog := program.New(44100)
	var buf bytes.Buffer
	r := NewRepl("banner", "v0", "nobody", "----", "MIT", "vs> ", prog)
	return r, &buf
}

func TestDeclarationAccumulatesAcrossLines(t *testing.T) {
	r, buf := newTestRepl()
	assert.False(t, r.handleLine(buf, "freq: 440"))
	v, err := r.Prog.GetSymbolValue("freq")
	require.NoError(t, err)
	assert.True(t, v.EqualReal(440))
}

func TestExitReturnsTrue(t *testing.T) {
	r, buf := newTestRepl()
	assert.True(t, r.handleLine(buf, ".exit"))
	assert.Contains(t, buf.String(), "Good bye!")
}

func TestEmptyLineDoesNotExit(t *testing.T) {
	r, buf := newTestRepl()
	assert.False(t, r.handleLine(buf, "   "))
	assert.Empty(t, buf.String())
}

func TestNodesCommandReportsCount(t *testing.T) {
	r, buf := newTestRepl()
	r.handleLine(buf, ".nodes")
	assert.Contains(t, buf.String(), "0 nodes")
}

func TestResetCommandClearsSymbols(t *testing.T) {
	r, buf := newTestRepl()
	r.handleLine(buf, "freq: 440")
	r.handleLine(buf, ".reset")
	assert.False(t, r.Prog.SymbolExists("freq"))
}

func TestRunCommandProducesOutputFrame(t *testing.T) {
	r, buf := newTestRepl()
	r.handleLine(buf, ".run 2")
	assert.Contains(t, buf.String(), "[  ]")
}

func TestParseErrorIsReportedNotFatal(t *testing.T) {
	r, buf := newTestRepl()
	r.handleLine(buf, "nope -> somewhere")
	assert.Contains(t, buf.String(), "undefined identifier")
}

func TestUnknownCommandIsReported(t *testing.T) {
	r, buf := newTestRepl()
	r.handleLine(buf, ".bogus")
	assert.Contains(t, buf.String(), "unknown command")
}
