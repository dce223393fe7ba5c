package parser

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/name"
)

// parsePattern parses the full pattern grammar, lowest precedence
// first: disjunction ('|'), then conjunction ('&'), then a single
// primary pattern (spec §4.4 "Pattern fragments" — OrPattern's
// alternatives must bind the same names, AndPattern's must bind
// disjoint ones; both checks happen at generation time, not here).
func (p *Parser) parsePattern() ast.Pattern {
	at := p.pos()
	first := p.parseAndPattern()
	if !p.is(lexer.PIPE) {
		return first
	}
	alts := []ast.Pattern{first}
	for p.is(lexer.PIPE) {
		p.next()
		alts = append(alts, p.parseAndPattern())
	}
	return &ast.OrPattern{At: at, Alternatives: alts}
}

func (p *Parser) parseAndPattern() ast.Pattern {
	at := p.pos()
	first := p.parsePrimaryPattern()
	if !p.is(lexer.AMP) {
		return first
	}
	pats := []ast.Pattern{first}
	for p.is(lexer.AMP) {
		p.next()
		pats = append(pats, p.parsePrimaryPattern())
	}
	return &ast.AndPattern{At: at, Patterns: pats}
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	at := p.pos()
	switch p.curToken.Type {
	case lexer.UNDERSCORE:
		p.next()
		return &ast.WildcardPattern{At: at}

	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		return &ast.PrimitivePattern{At: at, Value: p.parseLiteral()}

	case lexer.IDENT:
		n := name.NewValue(p.curToken.Literal)
		p.next()
		if p.is(lexer.AT) {
			p.next()
			inner := p.parsePrimaryPattern()
			return &ast.AsPattern{At: at, Alias: n, Inner: inner}
		}
		return &ast.VarPattern{At: at, Name: n}

	case lexer.CONID:
		con := name.NewLabel(p.curToken.Literal)
		p.next()
		var args []ast.Pattern
		if p.is(lexer.LPAREN) {
			p.next()
			if !p.is(lexer.RPAREN) {
				args = append(args, p.parsePattern())
				for p.is(lexer.COMMA) {
					p.next()
					args = append(args, p.parsePattern())
				}
			}
			p.expect(lexer.RPAREN)
		}
		return &ast.ConstructorPattern{At: at, Con: con, Args: args}

	case lexer.LPAREN:
		p.next()
		inner := p.parsePattern()
		if p.is(lexer.DCOLON) {
			p.next()
			ty := p.parseType()
			p.expect(lexer.RPAREN)
			return &ast.TypedPattern{At: at, Inner: inner, Annotation: ty}
		}
		p.expect(lexer.RPAREN)
		return inner

	default:
		p.errorf("PRS020", "expected a pattern, got %s", p.curToken.Type)
		return &ast.WildcardPattern{At: at}
	}
}
