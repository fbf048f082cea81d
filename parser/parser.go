/*
File    : volsung/parser/parser.go
*/

// Package parser turns Volsung source text into a running program.Program:
// declarations, connection chains, subgraph definitions, and directives.
// Unlike a general-purpose-language parser that builds an AST for later
// evaluation, this parser drives the program.Program directly as it
// reads — a declaration creates its node immediately, a connection wires
// it immediately — since the graph it is building *is* the program.
package parser

import (
	"strconv"

	"github.com/volsung-lang/volsung/lexer"
	"github.com/volsung-lang/volsung/program"
	"github.com/volsung-lang/volsung/verr"
)

func init() {
	// Registering here (rather than requiring every caller to remember
	// to wire it up) is what lets program.Program instantiate subgraphs
	// without importing this package back.
	program.ParseSource = func(prog *program.Program, source string) bool {
		return New(source).ParseProgram(prog)
	}
}

// Parser holds the scanning state for one source text: the lexer, the
// current and next token (for single-token lookahead beyond the lexer's
// own non-destructive Peek), and the Program it is building.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	next    lexer.Token

	prog *program.Program

	// Anonymous inline objects are named through prog.NextInlineName, whose
	// counter lives on the Program; a subgraph body is parsed into its own
	// child Program, so nested parses get their own counter.
}

// New constructs a Parser over source, primed with its first two tokens.
func New(source string) *Parser {
	p := &Parser{lex: lexer.New(source)}
	p.current = p.lex.Next()
	p.next = p.lex.Next()
	return p
}

func (p *Parser) advance() {
	p.current = p.next
	p.next = p.lex.Next()
}

// mark captures enough state to rewind the parser to this exact point:
// the two prefetched tokens plus the underlying lexer position. Used to
// re-parse a group declaration's argument expressions once per member
// (each time with a different "n" symbol bound) and to locate the raw
// start of a subgraph body.
type mark struct {
	current, next  lexer.Token
	lexPos, lexLine int
}

func (p *Parser) mark() mark {
	pos, line := p.lex.Mark()
	return mark{current: p.current, next: p.next, lexPos: pos, lexLine: line}
}

func (p *Parser) restore(m mark) {
	p.current, p.next = m.current, m.next
	p.lex.Restore(m.lexPos, m.lexLine)
}

func (p *Parser) currentIs(kind lexer.TokenKind) bool { return p.current.Kind == kind }
func (p *Parser) nextIs(kind lexer.TokenKind) bool    { return p.next.Kind == kind }

func (p *Parser) errorf(kind verr.Kind, format string, args ...any) error {
	return verr.At(kind, p.current.Line, format, args...)
}

// expect verifies the current token's kind, then advances past it.
func (p *Parser) expect(kind lexer.TokenKind) error {
	if p.current.Kind != kind {
		return p.errorf(verr.ParseError, "expected %s, found %s", kind, p.current.Kind)
	}
	p.advance()
	return nil
}

// lineEnd reports whether the current token legally ends a statement:
// a newline or end of file.
func (p *Parser) lineEnd() bool {
	return p.current.Kind == lexer.Newline || p.current.Kind == lexer.Eof
}

func (p *Parser) skipNewlines() {
	for p.current.Kind == lexer.Newline {
		p.advance()
	}
}

// peekExpression reports whether the current token can start an
// expression, mirroring Lexer::peek_expression in the original.
func (p *Parser) peekExpression() bool {
	switch p.current.Kind {
	case lexer.NumericLiteral, lexer.Minus, lexer.StringLiteral,
		lexer.OpenBrace, lexer.OpenParen, lexer.Identifier:
		return true
	default:
		return false
	}
}

// peekConnection reports whether the current token can start (or
// continue) a connection chain.
func (p *Parser) peekConnection() bool {
	switch p.current.Kind {
	case lexer.VerticalBar, lexer.Arrow, lexer.Newline, lexer.ManyToOne,
		lexer.OneToMany, lexer.Parallel, lexer.CrossConnection, lexer.OpenBracket:
		return true
	default:
		return false
	}
}

// ParseProgram parses this Parser's entire source into prog, the
// top-level entry point the specification calls "parse". It returns
// false (after resetting prog) on any error, and reports that error
// exactly once through prog.DiagSink — the "report then unwind" policy.
// A nested (subgraph) parse stops at an unmatched close_brace instead of
// requiring end of file, since its body was captured without the
// enclosing braces' matching partner re-appended.
func (p *Parser) ParseProgram(prog *program.Program) bool {
	p.prog = prog

	if err := p.parseStatements(); err != nil {
		prog.DiagSink(err.Error())
		prog.Reset()
		return false
	}
	return true
}

func (p *Parser) parseStatements() error {
	nested := p.prog.Parent != nil
	for {
		p.skipNewlines()
		if p.currentIs(lexer.Eof) {
			return nil
		}
		if nested && p.currentIs(lexer.CloseBrace) {
			return nil
		}

		var err error
		switch p.current.Kind {
		case lexer.Identifier:
			if p.nextIs(lexer.Colon) {
				err = p.parseDeclaration()
			} else if p.peekConnectionAfterIdentifier() {
				err = p.parseConnection()
			} else if p.nextIs(lexer.OpenParen) {
				err = p.parseSubgraphDeclaration()
			} else {
				err = p.errorf(verr.ParseError, "unexpected identifier %q", p.current.Lexeme)
			}
		case lexer.ObjectType, lexer.OpenBracket:
			err = p.parseConnection()
		case lexer.Ampersand:
			err = p.parseDirective()
		default:
			err = p.errorf(verr.ParseError, "unexpected token %s", p.current.Kind)
		}
		if err != nil {
			return err
		}
	}
}

// peekConnectionAfterIdentifier decides, for an Identifier that is not
// immediately followed by ':', whether it starts a connection chain (an
// existing object referenced as the chain's first link) by looking at
// what comes after it.
func (p *Parser) peekConnectionAfterIdentifier() bool {
	switch p.next.Kind {
	case lexer.Arrow, lexer.ManyToOne, lexer.OneToMany, lexer.Parallel,
		lexer.CrossConnection, lexer.VerticalBar, lexer.OpenBracket, lexer.Newline, lexer.Eof:
		return true
	default:
		return false
	}
}

// parseNumber assembles a float from the already-scanned integer digit
// run in p.current, an optional ".fraction" continuation, and an
// optional "s"/"ms" literal-operator suffix that scales by the
// Program's sample rate (so "10ms" means ten milliseconds of samples).
func (p *Parser) parseNumber() (float64, error) {
	digits := p.current.Lexeme
	p.advance()

	if p.currentIs(lexer.Dot) {
		p.advance()
		if !p.currentIs(lexer.NumericLiteral) {
			return 0, p.errorf(verr.ParseError, "expected digits after '.'")
		}
		digits += "." + p.current.Lexeme
		p.advance()
	}

	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, p.errorf(verr.ParseError, "invalid numeric literal %q", digits)
	}

	multiplier := 1.0
	if p.currentIs(lexer.Identifier) {
		switch p.current.Lexeme {
		case "s":
			multiplier = p.prog.SampleRate
		case "ms":
			multiplier = p.prog.SampleRate / 1000
		default:
			return 0, p.errorf(verr.ParseError, "invalid literal operator %q", p.current.Lexeme)
		}
		p.advance()
	}

	return n * multiplier, nil
}
