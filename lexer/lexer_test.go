/*
File    : volsung/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, source string) []Token {
	t.Helper()
	l := New(source)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == Eof {
			break
		}
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestConnectionOperators(t *testing.T) {
	tokens := collect(t, "-> >> <> => x>")
	assert.Equal(t, []TokenKind{Arrow, ManyToOne, OneToMany, Parallel, CrossConnection, Eof}, kinds(tokens))
}

func TestCrossConnectionDoesNotRequireIdentifierBoundary(t *testing.T) {
	// "x>" lexes as one operator token wherever a new token starts with
	// it, with or without whitespace after it; an 'x' inside a longer
	// identifier ("ax>") still belongs to that identifier.
	tokens := collect(t, "a x>b")
	require.Len(t, tokens, 4)
	assert.Equal(t, Identifier, tokens[0].Kind)
	assert.Equal(t, CrossConnection, tokens[1].Kind)
	assert.Equal(t, Identifier, tokens[2].Kind)
	assert.Equal(t, Eof, tokens[3].Kind)
}

func TestIdentifierStartingWithXIsUnaffected(t *testing.T) {
	tokens := collect(t, "xylophone")
	require.Len(t, tokens, 2)
	assert.Equal(t, Identifier, tokens[0].Kind)
	assert.Equal(t, "xylophone", tokens[0].Lexeme)
}

func TestObjectTypeToken(t *testing.T) {
	tokens := collect(t, "Sine_Oscillator~ 440")
	require.Len(t, tokens, 3)
	assert.Equal(t, ObjectType, tokens[0].Kind)
	assert.Equal(t, "Sine_Oscillator", tokens[0].Lexeme)
	assert.Equal(t, NumericLiteral, tokens[1].Kind)
}

func TestCommentsAndNewlines(t *testing.T) {
	tokens := collect(t, "osc~ ; this is a comment\n440")
	kindsGot := kinds(tokens)
	assert.Contains(t, kindsGot, Newline)
	assert.NotContains(t, kindsGot, Invalid)
}

func TestStringLiteral(t *testing.T) {
	tokens := collect(t, `"hello world"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, StringLiteral, tokens[0].Kind)
	assert.Equal(t, "hello world", tokens[0].Lexeme)
}

func TestNumericLiteralStopsBeforeDot(t *testing.T) {
	tokens := collect(t, "1..5")
	require.Len(t, tokens, 4)
	assert.Equal(t, NumericLiteral, tokens[0].Kind)
	assert.Equal(t, "1", tokens[0].Lexeme)
	assert.Equal(t, Elipsis, tokens[1].Kind)
	assert.Equal(t, NumericLiteral, tokens[2].Kind)
	assert.Equal(t, "5", tokens[2].Lexeme)
}

func TestSingleDotVsElipsis(t *testing.T) {
	tokens := collect(t, ". ..")
	assert.Equal(t, []TokenKind{Dot, Elipsis, Eof}, kinds(tokens))
}

func TestPeekIsNonDestructive(t *testing.T) {
	l := New("-> abc")
	first := l.Peek()
	second := l.Peek()
	assert.Equal(t, first, second)
	actual := l.Next()
	assert.Equal(t, first, actual)
}

func TestGroupSubscriptAndBracketTokens(t *testing.T) {
	tokens := collect(t, "name[3]: osc~")
	kindsGot := kinds(tokens)
	assert.Equal(t, Identifier, kindsGot[0])
	assert.Equal(t, OpenBracket, kindsGot[1])
	assert.Equal(t, NumericLiteral, kindsGot[2])
	assert.Equal(t, CloseBracket, kindsGot[3])
	assert.Equal(t, Colon, kindsGot[4])
	assert.Equal(t, ObjectType, kindsGot[5])
}

func TestLineTracking(t *testing.T) {
	l := New("a\nb\nc")
	tok := l.Next()
	assert.Equal(t, 1, tok.Line)
	l.Next() // newline
	tok = l.Next()
	assert.Equal(t, 2, tok.Line)
}
