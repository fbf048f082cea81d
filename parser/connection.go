/*
File    : volsung/parser/connection.go
*/
package parser

import (
	"strconv"

	"github.com/volsung-lang/volsung/lexer"
	"github.com/volsung-lang/volsung/program"
	"github.com/volsung-lang/volsung/value"
	"github.com/volsung-lang/volsung/verr"
)

// connectionTypeForOperator maps a connection-operator token to the
// ConnectionType it produces.
func connectionTypeForOperator(k lexer.TokenKind) (program.ConnectionType, bool) {
	switch k {
	case lexer.Arrow:
		return program.OneToOne, true
	case lexer.ManyToOne:
		return program.ManyToOne, true
	case lexer.OneToMany:
		return program.OneToMany, true
	case lexer.Parallel:
		return program.ManyToMany, true
	case lexer.CrossConnection:
		return program.Biclique, true
	default:
		return 0, false
	}
}

// chainContinues reports whether a token can continue an already-started
// connection chain: any of the five connection operators, so "x>" may
// appear at any hop, not only the first.
func chainContinues(k lexer.TokenKind) bool {
	switch k {
	case lexer.Arrow, lexer.ManyToOne, lexer.OneToMany, lexer.Parallel, lexer.CrossConnection:
		return true
	default:
		return false
	}
}

// parseBarIndex parses an optional "|N" port-index suffix, returning
// (0, nil) if none is present.
func (p *Parser) parseBarIndex() (int, error) {
	if !p.currentIs(lexer.VerticalBar) {
		return 0, nil
	}
	p.advance()
	if !p.currentIs(lexer.NumericLiteral) {
		return 0, p.errorf(verr.ParseError, "expected a port index after '|'")
	}
	n, err := strconv.Atoi(p.current.Lexeme)
	if err != nil {
		return 0, p.errorf(verr.ParseError, "invalid port index %q", p.current.Lexeme)
	}
	p.advance()
	return n, nil
}

// parseIndexBar parses an optional "N|" port-index prefix (the numeric
// literal comes first, then the bar), returning (0, nil) if none is
// present.
func (p *Parser) parseIndexBar() (int, error) {
	if !p.currentIs(lexer.NumericLiteral) {
		return 0, nil
	}
	n, err := strconv.Atoi(p.current.Lexeme)
	if err != nil {
		return 0, p.errorf(verr.ParseError, "invalid port index %q", p.current.Lexeme)
	}
	p.advance()
	if err := p.expect(lexer.VerticalBar); err != nil {
		return 0, err
	}
	return n, nil
}

var inlineOperatorTypes = map[lexer.TokenKind]string{
	lexer.Plus:     "Add",
	lexer.Minus:    "Subtract",
	lexer.Asterisk: "Multiply",
	lexer.Slash:    "Divide",
	lexer.Caret:    "Power",
}

// getObjectToConnect resolves one link of a connection chain to an
// object (or group) name: an inline anonymous arithmetic object ("+ 5"),
// an anonymous object or group declared directly in place ("osc~ 440",
// "[4] osc~"), an already-declared identifier (optionally followed by a
// mid-chain declaration or a "[index]" group-member subscript), or an
// error if none of those apply.
func (p *Parser) getObjectToConnect() (string, error) {
	if typeName, ok := inlineOperatorTypes[p.current.Kind]; ok {
		p.advance()
		arg, err := p.parseExpression()
		if err != nil {
			return "", err
		}
		name := p.prog.NextInlineName()
		if err := p.prog.MakeObject(typeName, name, []value.Value{arg}); err != nil {
			return "", err
		}
		return name, nil
	}

	if p.currentIs(lexer.ObjectType) || p.currentIs(lexer.OpenBracket) {
		name := p.prog.NextInlineName()
		if err := p.parseObjectDeclaration(name); err != nil {
			return "", err
		}
		return name, nil
	}

	if p.currentIs(lexer.Identifier) {
		name := p.current.Lexeme
		p.advance()

		if p.currentIs(lexer.Colon) {
			p.advance()
			if err := p.parseObjectDeclaration(name); err != nil {
				return "", err
			}
		} else if !p.prog.ObjectExists(name) {
			return "", p.errorf(verr.NameError, "undefined identifier %q", name)
		}

		if p.currentIs(lexer.OpenBracket) {
			p.advance()
			idxVal, err := p.parseExpression()
			if err != nil {
				return "", err
			}
			if err := p.expect(lexer.CloseBracket); err != nil {
				return "", err
			}
			if !idxVal.IsNumber() {
				return "", p.errorf(verr.TypeMismatch, "group member subscript must be a Number")
			}
			name = program.GroupMemberName(name, int(idxVal.Float64()))
		}
		return name, nil
	}

	return "", p.errorf(verr.ParseError, "expected an object to connect, found %s", p.current.Kind)
}

// parseConnection parses one full connection statement: an initial
// object, an optional leading "|N" output-port override, then one or
// more "<operator> [N|]object[|N]" hops, wiring each as it goes so the
// graph is built incrementally rather than assembled into an
// intermediate structure first.
func (p *Parser) parseConnection() error {
	outputObject, err := p.getObjectToConnect()
	if err != nil {
		return err
	}
	outputIndex, err := p.parseBarIndex()
	if err != nil {
		return err
	}
	p.skipNewlines()

	first := true
	for first || chainContinues(p.current.Kind) {
		connType, ok := connectionTypeForOperator(p.current.Kind)
		if !ok {
			return p.errorf(verr.ParseError, "expected a connection operator, found %s", p.current.Kind)
		}
		p.advance()

		inputIndex, err := p.parseIndexBar()
		if err != nil {
			return err
		}
		inputObject, err := p.getObjectToConnect()
		if err != nil {
			return err
		}

		if err := p.prog.ConnectObjects(outputObject, outputIndex, inputObject, inputIndex, connType); err != nil {
			return err
		}

		outputObject = inputObject
		outputIndex, err = p.parseBarIndex()
		if err != nil {
			return err
		}
		first = false
	}

	if !p.lineEnd() {
		return p.errorf(verr.ParseError, "expected end of line, found %s", p.current.Kind)
	}
	return nil
}
