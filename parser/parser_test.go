/*
File    : volsung/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volsung-lang/volsung/program"
	"github.com/volsung-lang/volsung/value"
)

func newTestProgram() *program.Program {
	prog := program.New(44100)
	prog.ConfigureIO(1, 1)
	prog.Reset()
	return prog
}

func parse(t *testing.T, src string) *program.Program {
	t.Helper()
	prog := newTestProgram()
	ok := New(src).ParseProgram(prog)
	require.True(t, ok, "expected parse to succeed")
	return prog
}

func parseExpectError(t *testing.T, src string) string {
	t.Helper()
	prog := newTestProgram()
	var diag string
	prog.DiagSink = func(msg string) { diag = msg }
	ok := New(src).ParseProgram(prog)
	require.False(t, ok, "expected parse to fail")
	return diag
}

func TestSymbolDeclaration(t *testing.T) {
	prog := parse(t, "freq: 440\n")
	v, err := prog.GetSymbolValue("freq")
	require.NoError(t, err)
	assert.True(t, v.EqualReal(440))
}

func TestSymbolDeclarationUsesExpression(t *testing.T) {
	prog := parse(t, "freq: 220 * 2\n")
	v, err := prog.GetSymbolValue("freq")
	require.NoError(t, err)
	assert.True(t, v.EqualReal(440))
}

func TestObjectDeclarationAndConnection(t *testing.T) {
	prog := parse(t, "osc: Sine_Oscillator~ 440\nosc -> output\n")
	assert.True(t, prog.ObjectExists("osc"))
	assert.True(t, prog.ObjectExists("output"))
}

func TestInlineAnonymousObjectInConnection(t *testing.T) {
	prog := parse(t, "Noise~ -> output\n")
	assert.Equal(t, 3, prog.CountNodes())
}

func TestInlineOperatorObject(t *testing.T) {
	prog := parse(t, "osc: Sine_Oscillator~ 440\nosc -> + 5 -> output\n")
	assert.True(t, prog.ObjectExists("osc"))
}

func TestGroupDeclarationVariesPerMember(t *testing.T) {
	prog := parse(t, "bank: [3] Sine_Oscillator~ 110*n\n")
	size, ok := prog.GroupSize("bank")
	require.True(t, ok)
	assert.Equal(t, 3, size)
	assert.True(t, prog.ObjectExists(program.GroupMemberName("bank", 0)))
	assert.True(t, prog.ObjectExists(program.GroupMemberName("bank", 2)))
}

func TestGroupFanInConnection(t *testing.T) {
	prog := parse(t, "bank: [4] Noise~\nbank >> output\n")
	size, ok := prog.GroupSize("bank")
	require.True(t, ok)
	assert.Equal(t, 4, size)
}

func TestSubgraphDefinitionAndInstantiation(t *testing.T) {
	src := "mySub(1, 1): {\n" +
		"input -> Abs~ -> output\n" +
		"}\n" +
		"s: mySub~\n"
	prog := parse(t, src)
	assert.True(t, prog.ObjectExists("s"))
	body, err := prog.SubgraphSource("mySub")
	require.NoError(t, err)
	assert.Contains(t, body, "Abs~")
}

func TestSubgraphExtraArgsBindNumberedSymbols(t *testing.T) {
	src := "mySub(0, 1): {\n" +
		"gain: _1\n" +
		"gain -> output\n" +
		"}\n" +
		"s: mySub~ 42\n"
	prog := parse(t, src)
	assert.True(t, prog.ObjectExists("s"))
}

func TestDirectiveDispatch(t *testing.T) {
	prog := newTestProgram()
	var got []value.Value
	prog.AddDirective("set_gain", func(args []value.Value) error {
		got = args
		return nil
	})
	ok := New("&set_gain 440, 2\n").ParseProgram(prog)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.True(t, got[0].EqualReal(440))
	assert.True(t, got[1].EqualReal(2))
}

func TestUnknownDirectiveIsNameError(t *testing.T) {
	msg := parseExpectError(t, "&nope\n")
	assert.Contains(t, msg, "unknown directive")
}

func TestUndefinedIdentifierIsNameError(t *testing.T) {
	msg := parseExpectError(t, "osc -> output\n")
	assert.Contains(t, msg, "undefined identifier")
}

func TestUnknownObjectTypeIsNameError(t *testing.T) {
	msg := parseExpectError(t, "x: NoSuchType~\n")
	assert.Contains(t, msg, "no such object type")
}

func TestCommentsAndBlankLinesAreIgnored(t *testing.T) {
	src := "; a comment\n\nfreq: 440 ; trailing comment\n\n"
	prog := parse(t, src)
	v, err := prog.GetSymbolValue("freq")
	require.NoError(t, err)
	assert.True(t, v.EqualReal(440))
}

func TestRangeLiteralSymbol(t *testing.T) {
	prog := parse(t, "steps: 0..3\n")
	v, err := prog.GetSymbolValue("steps")
	require.NoError(t, err)
	require.True(t, v.IsSequence())
	assert.Equal(t, 4, v.Len())
}

func TestSampleSuffixScalesBySampleRate(t *testing.T) {
	prog := parse(t, "d: 10ms\n")
	v, err := prog.GetSymbolValue("d")
	require.NoError(t, err)
	assert.True(t, v.EqualReal(441))
}
