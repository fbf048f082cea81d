/*
File    : volsung/parser/grammar.go
*/
package parser

import (
	"github.com/volsung-lang/volsung/lexer"
	"github.com/volsung-lang/volsung/program"
	"github.com/volsung-lang/volsung/value"
	"github.com/volsung-lang/volsung/verr"
)

// parseDeclaration parses "name: expression" (a symbol binding) or
// "name: object-declaration". The caller has already confirmed the
// current token is an Identifier immediately followed by ':'.
func (p *Parser) parseDeclaration() error {
	name := p.current.Lexeme
	p.advance() // identifier
	if err := p.expect(lexer.Colon); err != nil {
		return err
	}
	if p.peekExpression() {
		v, err := p.parseExpression()
		if err != nil {
			return err
		}
		return p.prog.AddSymbol(name, v)
	}
	if p.currentIs(lexer.ObjectType) || p.currentIs(lexer.OpenBracket) {
		return p.parseObjectDeclaration(name)
	}
	return p.errorf(verr.ParseError, "expected an expression or an object declaration after ':'")
}

// parseArgs parses an optional comma-separated list of construction
// arguments following an object type name.
func (p *Parser) parseArgs() ([]value.Value, error) {
	if !p.peekExpression() {
		return nil, nil
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	args := []value.Value{first}
	for p.currentIs(lexer.Comma) {
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return args, nil
}

// parseObjectDeclaration parses the right-hand side of "name:" once it's
// known to be an object (or group) declaration rather than a symbol
// binding: either "[count] Type~ args" or "Type~ args".
func (p *Parser) parseObjectDeclaration(name string) error {
	if p.currentIs(lexer.OpenBracket) {
		return p.parseGroupDeclaration(name)
	}
	if !p.currentIs(lexer.ObjectType) {
		return p.errorf(verr.ParseError, "expected an object type, found %s", p.current.Kind)
	}
	typeName := p.current.Lexeme
	p.advance()
	args, err := p.parseArgs()
	if err != nil {
		return err
	}
	return p.prog.MakeObject(typeName, name, args)
}

// parseGroupDeclaration parses "[count] Type~ args", creating count
// instances named "__grp_"+name+i. The argument expressions are
// re-parsed once per member (by rewinding the token stream to the same
// mark each time) with a transient symbol "n" bound to the member's
// 1-indexed position, so an argument like "440*n" can vary per member.
func (p *Parser) parseGroupDeclaration(name string) error {
	p.advance() // '['
	countVal, err := p.parseExpression()
	if err != nil {
		return err
	}
	if !countVal.IsNumber() {
		return p.errorf(verr.TypeMismatch, "group size must be a Number")
	}
	count := int(countVal.Float64())
	if err := p.expect(lexer.CloseBracket); err != nil {
		return err
	}
	if !p.currentIs(lexer.ObjectType) {
		return p.errorf(verr.ParseError, "expected an object type, found %s", p.current.Kind)
	}
	typeName := p.current.Lexeme
	p.advance()

	argsStart := p.mark()
	var oldN value.Value
	nPreviouslyExisted := p.prog.SymbolExists("n")
	if nPreviouslyExisted {
		oldN, _ = p.prog.GetSymbolValue("n")
	}

	groupErr := p.prog.MakeGroup(typeName, name, count, func(member int) ([]value.Value, error) {
		p.restore(argsStart)
		p.prog.RemoveSymbol("n")
		if err := p.prog.AddSymbol("n", value.NumberOf(float64(member+1))); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		p.prog.RemoveSymbol("n")
		return args, err
	})

	if nPreviouslyExisted {
		_ = p.prog.AddSymbol("n", oldN)
	}
	return groupErr
}

// parseSubgraphDeclaration parses "name(inputs, outputs): {" followed by
// a verbatim-captured body up to its matching close brace. The body is
// captured by counting braces over the raw source text rather than over
// tokens, so it round-trips exactly regardless of what's inside it.
func (p *Parser) parseSubgraphDeclaration() error {
	name := p.current.Lexeme
	p.advance() // name

	if err := p.expect(lexer.OpenParen); err != nil {
		return err
	}
	inputsVal, err := p.parseExpression()
	if err != nil {
		return err
	}
	if err := p.expect(lexer.Comma); err != nil {
		return err
	}
	outputsVal, err := p.parseExpression()
	if err != nil {
		return err
	}
	if err := p.expect(lexer.CloseParen); err != nil {
		return err
	}
	if err := p.expect(lexer.Colon); err != nil {
		return err
	}
	if err := p.expect(lexer.OpenBrace); err != nil {
		return err
	}
	if err := p.expect(lexer.Newline); err != nil {
		return err
	}

	if !inputsVal.IsNumber() || !outputsVal.IsNumber() {
		return p.errorf(verr.TypeMismatch, "subgraph arity must be Numbers")
	}

	body, err := p.captureSubgraphBody()
	if err != nil {
		return err
	}

	p.prog.AddSubgraph(name, program.SubgraphDef{
		Body:    body,
		Inputs:  int(inputsVal.Float64()),
		Outputs: int(outputsVal.Float64()),
	})
	return nil
}

// captureSubgraphBody scans raw source characters, starting at the
// current token's offset, counting nested '{'/'}' to find the brace that
// closes the subgraph definition. It then rewinds the lexer to resume
// tokenizing from just past that closing brace, and advances the parser
// past it, leaving current/next primed for whatever follows the
// subgraph declaration.
func (p *Parser) captureSubgraphBody() (string, error) {
	source := p.lex.Source()
	start := p.current.Offset
	startLine := p.current.Line
	pos := start
	depth := 0
	for {
		if pos >= len(source) {
			return "", p.errorf(verr.SubgraphError, "incomplete subgraph definition")
		}
		switch source[pos] {
		case '{':
			depth++
		case '\n':
			startLine++
		case '}':
			if depth == 0 {
				body := source[start:pos]
				p.lex.Restore(pos+1, startLine)
				p.current = p.lex.Next()
				p.next = p.lex.Next()
				return body, nil
			}
			depth--
		}
		pos++
	}
}

// parseDirective parses "&name arg, arg, ...".
func (p *Parser) parseDirective() error {
	p.advance() // '&'
	if !p.currentIs(lexer.Identifier) {
		return p.errorf(verr.ParseError, "expected a directive name after '&'")
	}
	name := p.current.Lexeme
	p.advance()

	var args []value.Value
	if !p.lineEnd() {
		first, err := p.parseExpression()
		if err != nil {
			return err
		}
		args = append(args, first)
		for p.currentIs(lexer.Comma) {
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return err
			}
			args = append(args, e)
		}
	}
	return p.prog.InvokeDirective(name, args)
}
