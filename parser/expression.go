/*
File    : volsung/parser/expression.go
*/
package parser

import (
	"github.com/volsung-lang/volsung/lexer"
	"github.com/volsung-lang/volsung/procedure"
	"github.com/volsung-lang/volsung/value"
	"github.com/volsung-lang/volsung/verr"
)

// parseExpression parses a sum of products: the lowest-precedence level
// of the expression grammar.
func (p *Parser) parseExpression() (value.Value, error) {
	left, err := p.parseProduct()
	if err != nil {
		return value.Value{}, err
	}
	for p.currentIs(lexer.Plus) || p.currentIs(lexer.Minus) {
		op := p.current.Kind
		p.advance()
		right, err := p.parseProduct()
		if err != nil {
			return value.Value{}, err
		}
		if op == lexer.Plus {
			left, err = left.Add(right)
		} else {
			left, err = left.Sub(right)
		}
		if err != nil {
			return value.Value{}, p.wrapValueError(err)
		}
	}
	return left, nil
}

// parseProduct parses a product of powers.
func (p *Parser) parseProduct() (value.Value, error) {
	left, err := p.parsePower()
	if err != nil {
		return value.Value{}, err
	}
	for p.currentIs(lexer.Asterisk) || p.currentIs(lexer.Slash) {
		op := p.current.Kind
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return value.Value{}, err
		}
		if op == lexer.Asterisk {
			left, err = left.Mul(right)
		} else {
			left, err = left.Div(right)
		}
		if err != nil {
			return value.Value{}, p.wrapValueError(err)
		}
	}
	return left, nil
}

// parsePower parses a right-associative exponentiation: "2^3^2" reads as
// "2^(3^2)".
func (p *Parser) parsePower() (value.Value, error) {
	base, err := p.parseFactor()
	if err != nil {
		return value.Value{}, err
	}
	if p.currentIs(lexer.Caret) {
		p.advance()
		exponent, err := p.parsePower()
		if err != nil {
			return value.Value{}, err
		}
		result, err := base.Pow(exponent)
		if err != nil {
			return value.Value{}, p.wrapValueError(err)
		}
		return result, nil
	}
	return base, nil
}

// parseFactor parses a single operand — literal, parenthesized
// expression, sequence literal, identifier (symbol or procedure call),
// or unary minus — then applies any trailing subscript and range-literal
// tail.
func (p *Parser) parseFactor() (value.Value, error) {
	var v value.Value
	var err error

	switch p.current.Kind {
	case lexer.Minus:
		p.advance()
		// The operand is a whole product, not a single factor: "-2^2"
		// parses as "-(2^2)" and "-2*3" as "-(2*3)", matching the
		// original's unary minus recursing into parse_product rather
		// than parse_factor.
		operand, perr := p.parseProduct()
		if perr != nil {
			return value.Value{}, perr
		}
		v, err = operand.Negate()
		if err != nil {
			return value.Value{}, p.wrapValueError(err)
		}
	case lexer.NumericLiteral:
		n, nerr := p.parseNumber()
		if nerr != nil {
			return value.Value{}, nerr
		}
		v = value.NumberOf(n)
	case lexer.StringLiteral:
		v = value.TextOf(p.current.Lexeme)
		p.advance()
	case lexer.OpenParen:
		p.advance()
		inner, perr := p.parseExpression()
		if perr != nil {
			return value.Value{}, perr
		}
		if e := p.expect(lexer.CloseParen); e != nil {
			return value.Value{}, e
		}
		v = inner
	case lexer.OpenBrace:
		v, err = p.parseSequence()
		if err != nil {
			return value.Value{}, err
		}
	case lexer.Identifier:
		v, err = p.parseIdentifierExpression()
		if err != nil {
			return value.Value{}, err
		}
	default:
		return value.Value{}, p.errorf(verr.ParseError, "unexpected token %s in expression", p.current.Kind)
	}

	for {
		if p.currentIs(lexer.OpenBracket) {
			v, err = p.parseSubscript(v)
			if err != nil {
				return value.Value{}, err
			}
			continue
		}
		if p.currentIs(lexer.Elipsis) {
			v, err = p.parseRangeTail(v)
			if err != nil {
				return value.Value{}, err
			}
			continue
		}
		break
	}
	return v, nil
}

// parseIdentifierExpression resolves an identifier used in expression
// position: either a bound symbol, or a call to a registered procedure
// with a comma-separated, parenthesized argument list.
func (p *Parser) parseIdentifierExpression() (value.Value, error) {
	name := p.current.Lexeme
	p.advance()

	if p.currentIs(lexer.OpenParen) {
		p.advance()
		var args []value.Value
		if !p.currentIs(lexer.CloseParen) {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return value.Value{}, err
				}
				args = append(args, arg)
				if !p.currentIs(lexer.Comma) {
					break
				}
				p.advance()
			}
		}
		if err := p.expect(lexer.CloseParen); err != nil {
			return value.Value{}, err
		}
		if result, handled, perr := p.callProgramProcedure(name, args); handled {
			if perr != nil {
				return value.Value{}, perr
			}
			return result, nil
		}
		result, err := procedure.Call(name, p.prog.RNG(), p.prog.DiagSink, args)
		if err != nil {
			return value.Value{}, p.wrapValueError(err)
		}
		return result, nil
	}

	if !p.prog.SymbolExists(name) {
		return value.Value{}, p.errorf(verr.NameError, "symbol not found: %q", name)
	}
	v, err := p.prog.GetSymbolValue(name)
	if err != nil {
		return value.Value{}, p.wrapValueError(err)
	}
	return v, nil
}

// parseSubscript parses "[index]" following an already-evaluated base
// value: a Number index performs signed wraparound indexing, a Sequence
// index performs a gather.
func (p *Parser) parseSubscript(base value.Value) (value.Value, error) {
	p.advance() // '['
	idx, err := p.parseExpression()
	if err != nil {
		return value.Value{}, err
	}
	if err := p.expect(lexer.CloseBracket); err != nil {
		return value.Value{}, err
	}
	if idx.IsSequence() {
		result, err := base.Gather(idx)
		if err != nil {
			return value.Value{}, p.wrapValueError(err)
		}
		return result, nil
	}
	if !idx.IsNumber() {
		return value.Value{}, p.errorf(verr.TypeMismatch, "subscript index must be a Number or Sequence")
	}
	result, err := base.Index(int(idx.Float64()))
	if err != nil {
		return value.Value{}, p.wrapValueError(err)
	}
	return result, nil
}

// parseRangeTail parses "..hi" or "..hi|step" following an
// already-evaluated lower bound.
func (p *Parser) parseRangeTail(lower value.Value) (value.Value, error) {
	p.advance() // '..'
	upper, err := p.parseProduct()
	if err != nil {
		return value.Value{}, err
	}
	step := 1.0
	if p.currentIs(lexer.VerticalBar) {
		p.advance()
		stepVal, err := p.parseProduct()
		if err != nil {
			return value.Value{}, err
		}
		step = stepVal.Float64()
	}
	if !lower.IsNumber() || !upper.IsNumber() {
		return value.Value{}, p.errorf(verr.TypeMismatch, "range bounds must be Numbers")
	}
	result, err := value.Range(lower.Float64(), upper.Float64(), step)
	if err != nil {
		return value.Value{}, p.wrapValueError(err)
	}
	return result, nil
}

// parseSequence parses a brace-delimited, comma-separated list of
// expressions into a Sequence literal.
func (p *Parser) parseSequence() (value.Value, error) {
	p.advance() // '{'
	var elems []value.Value
	if !p.currentIs(lexer.CloseBrace) {
		for {
			e, err := p.parseExpression()
			if err != nil {
				return value.Value{}, err
			}
			elems = append(elems, e)
			if !p.currentIs(lexer.Comma) {
				break
			}
			p.advance()
		}
	}
	if err := p.expect(lexer.CloseBrace); err != nil {
		return value.Value{}, err
	}
	return value.SequenceOf(elems...), nil
}

// callProgramProcedure handles the two procedures whose result depends on
// the live Program rather than just their arguments — implementation_of
// and count_nodes — since the generic procedure table has no notion of a
// Program. The bool return reports whether name named one of these; when
// false, the caller falls through to the ordinary procedure table.
func (p *Parser) callProgramProcedure(name string, args []value.Value) (value.Value, bool, error) {
	switch name {
	case "implementation_of":
		if len(args) != 1 || !args[0].IsText() {
			return value.Value{}, true, p.errorf(verr.ArityError, "implementation_of expects one Text argument")
		}
		src, err := p.prog.SubgraphSource(args[0].TextValue())
		if err != nil {
			return value.Value{}, true, p.wrapValueError(err)
		}
		return value.TextOf(src), true, nil
	case "count_nodes":
		if len(args) != 0 {
			return value.Value{}, true, p.errorf(verr.ArityError, "count_nodes expects no arguments")
		}
		return value.NumberOf(float64(p.prog.CountNodes())), true, nil
	default:
		return value.Value{}, false, nil
	}
}

// wrapValueError classifies an error from the value package (TypeError,
// LengthMismatchError, RangeError) into this parse's line-tagged verr.Error.
func (p *Parser) wrapValueError(err error) error {
	switch err.(type) {
	case *verr.Error:
		return err
	case *value.TypeError:
		return p.errorf(verr.TypeMismatch, "%s", err.Error())
	case *value.LengthMismatchError, *value.RangeError:
		return p.errorf(verr.RangeError, "%s", err.Error())
	default:
		return verr.Wrap(verr.ParseError, p.current.Line, err)
	}
}
