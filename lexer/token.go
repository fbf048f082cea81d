/*
File    : volsung/lexer/token.go
*/

// Package lexer tokenizes Volsung source text: the textual description of
// a node graph. It turns a byte stream into the closed set of tokens the
// parser consumes to drive declarations, connections, subgraph bodies,
// and directives.
package lexer

import "fmt"

// TokenKind identifies the syntactic category of a Token. It is a closed
// set (specification §4.2); the parser switches exhaustively over it.
type TokenKind int

const (
	Eof TokenKind = iota
	Newline

	Arrow           // ->
	ManyToOne       // >>
	OneToMany       // <>
	Parallel        // =>
	CrossConnection // x>

	GreaterThan // >
	LessThan    // <
	Minus       // -
	Plus        // +
	Asterisk    // *
	Slash       // /
	Caret       // ^

	Dot     // .
	Elipsis // ..

	OpenBrace
	CloseBrace
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket

	Colon
	Comma
	Ampersand
	VerticalBar

	NumericLiteral
	StringLiteral
	Identifier
	ObjectType // identifier immediately followed by '~'

	Invalid
)

// kindNames backs TokenKind.String and the debug names used in parser
// error messages.
var kindNames = map[TokenKind]string{
	Eof:             "end of file",
	Newline:         "newline",
	Arrow:           "'->'",
	ManyToOne:       "'>>'",
	OneToMany:       "'<>'",
	Parallel:        "'=>'",
	CrossConnection: "'x>'",
	GreaterThan:     "'>'",
	LessThan:        "'<'",
	Minus:           "'-'",
	Plus:            "'+'",
	Asterisk:        "'*'",
	Slash:           "'/'",
	Caret:           "'^'",
	Dot:             "'.'",
	Elipsis:         "'..'",
	OpenBrace:       "'{'",
	CloseBrace:      "'}'",
	OpenParen:       "'('",
	CloseParen:      "')'",
	OpenBracket:     "'['",
	CloseBracket:    "']'",
	Colon:           "':'",
	Comma:           "','",
	Ampersand:       "'&'",
	VerticalBar:     "'|'",
	NumericLiteral:  "number",
	StringLiteral:   "string",
	Identifier:      "identifier",
	ObjectType:      "object type",
	Invalid:         "invalid token",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical unit: its kind, the exact source text it was
// scanned from, the line it started on (1-indexed, for diagnostics), and
// the byte offset of its first character in the source (used only by
// the parser's raw-text subgraph-body capture).
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Offset int
}

func newToken(kind TokenKind, lexeme string, line, offset int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Offset: offset}
}
