package parser

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// operatorPrecedence gives each desugarable infix operator its binding
// power. Every one of these operators has no dedicated AST node — spec
// §3's expression language only has Var/Lambda/App/Ascription/Exists/
// Match/DataCon/Primitive/RecordCon/RecordAccess/Let/LetRec — so `a + b`
// is sugar for `(+) a b`, i.e. nested ImplicitApp of an ImplicitVar
// named "+", the same way Haskell's surface syntax treats `+` as an
// ordinary Prelude-bound name. A source file is free to leave "+"
// unbound (a GEN001 UnboundIdentifier at generation time) or bind it
// itself, e.g. via a Num class.
var operatorPrecedence = map[lexer.TokenType]int{
	lexer.OROR:    1,
	lexer.ANDAND:  2,
	lexer.EQ:      3,
	lexer.NEQ:     3,
	lexer.LT:      4,
	lexer.GT:      4,
	lexer.LTE:     4,
	lexer.GTE:     4,
	lexer.PLUS:    5,
	lexer.MINUS:   5,
	lexer.STAR:    6,
	lexer.SLASH:   6,
	lexer.PERCENT: 6,
}

// operatorSymbols is the fixed set of operator tokens that may also be
// written as a parenthesized prefix name, e.g. "(+)" as a class member
// or let-binding name.
var operatorSymbols = map[lexer.TokenType]string{
	lexer.OROR: "||", lexer.ANDAND: "&&", lexer.EQ: "==", lexer.NEQ: "!=",
	lexer.LT: "<", lexer.GT: ">", lexer.LTE: "<=", lexer.GTE: ">=",
	lexer.PLUS: "+", lexer.MINUS: "-", lexer.STAR: "*", lexer.SLASH: "/", lexer.PERCENT: "%",
}

func (p *Parser) parseLiteral() ast.Literal {
	switch p.curToken.Type {
	case lexer.INT:
		lit := ast.Literal{Kind: ast.IntLit, Raw: p.curToken.Literal}
		p.next()
		return lit
	case lexer.FLOAT:
		lit := ast.Literal{Kind: ast.FloatLit, Raw: p.curToken.Literal}
		p.next()
		return lit
	case lexer.STRING:
		lit := ast.Literal{Kind: ast.StringLit, Raw: p.curToken.Literal}
		p.next()
		return lit
	case lexer.TRUE:
		p.next()
		return ast.Literal{Kind: ast.BoolLit, Raw: "true"}
	case lexer.FALSE:
		p.next()
		return ast.Literal{Kind: ast.BoolLit, Raw: "false"}
	default:
		p.errorf("PRS030", "expected a literal, got %s", p.curToken.Type)
		return ast.Literal{}
	}
}

// parseExpr parses the full expression grammar, climbing operator
// precedence above application and an ascription suffix below it.
func (p *Parser) parseExpr() ast.ImplicitExpr {
	e := p.parseBinary(1)
	if p.is(lexer.DCOLON) {
		at := p.pos()
		p.next()
		ty := p.parseType()
		return &ast.ImplicitAscription{At: at, Expr: e, Annotation: ty}
	}
	return e
}

func (p *Parser) parseBinary(minPrec int) ast.ImplicitExpr {
	left := p.parseApp()
	for {
		prec, ok := operatorPrecedence[p.curToken.Type]
		if !ok || prec < minPrec {
			return left
		}
		at := p.pos()
		op := operatorSymbols[p.curToken.Type]
		p.next()
		right := p.parseBinary(prec + 1)
		left = &ast.ImplicitApp{
			At:   at,
			Func: &ast.ImplicitApp{At: at, Func: &ast.ImplicitVar{At: at, Name: name.NewValue(op)}, Arg: left},
			Arg:  right,
		}
	}
}

// parseApp parses left-associative application by juxtaposition:
// f a b c = App(App(App(f, a), b), c).
func (p *Parser) parseApp() ast.ImplicitExpr {
	f := p.parsePostfix()
	for p.startsAtom() {
		at := p.pos()
		arg := p.parsePostfix()
		f = &ast.ImplicitApp{At: at, Func: f, Arg: arg}
	}
	return f
}

func (p *Parser) startsAtom() bool {
	switch p.curToken.Type {
	case lexer.IDENT, lexer.CONID, lexer.INT, lexer.FLOAT, lexer.STRING,
		lexer.TRUE, lexer.FALSE, lexer.LPAREN, lexer.LBRACE, lexer.BACKSLASH:
		return true
	default:
		return false
	}
}

// parsePostfix parses a primary expression followed by zero or more
// ".label" record-access suffixes.
func (p *Parser) parsePostfix() ast.ImplicitExpr {
	e := p.parsePrimary()
	for p.is(lexer.DOT) {
		at := p.pos()
		p.next()
		label := name.NewLabel(p.curToken.Literal)
		if !p.is(lexer.IDENT) {
			p.errorf("PRS031", "expected a field label after '.', got %s", p.curToken.Type)
		} else {
			p.next()
		}
		e = &ast.ImplicitRecordAccess{At: at, Record: e, Label: label}
	}
	return e
}

func (p *Parser) parsePrimary() ast.ImplicitExpr {
	at := p.pos()
	switch p.curToken.Type {
	case lexer.IDENT:
		n := name.NewValue(p.curToken.Literal)
		p.next()
		return &ast.ImplicitVar{At: at, Name: n}

	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		return &ast.ImplicitPrimitive{At: at, Value: p.parseLiteral()}

	case lexer.CONID:
		return p.parseConOrRecordCon()

	case lexer.LPAREN:
		p.next()
		if p.is(lexer.RPAREN) {
			p.next()
			return &ast.ImplicitPrimitive{At: at, Value: ast.Literal{Kind: ast.UnitLit, Raw: "()"}}
		}
		inner := p.parseExpr()
		p.expect(lexer.RPAREN)
		return inner

	case lexer.LBRACE:
		return p.parseRecordCon(at, name.TypeConName{})

	case lexer.BACKSLASH:
		return p.parseLambda()

	case lexer.MATCH:
		return p.parseMatch()

	case lexer.LET:
		return p.parseLetExpr()

	case lexer.EXISTS:
		return p.parseExists()

	default:
		p.errorf("PRS032", "expected an expression, got %s", p.curToken.Type)
		return &ast.ImplicitPrimitive{At: at, Value: ast.Literal{Kind: ast.UnitLit, Raw: "()"}}
	}
}

// parseConOrRecordCon disambiguates "Con(args...)" (ImplicitDataCon),
// bare "Con" (nullary ImplicitDataCon), and "Con{fields...}" (a record
// constructor carrying Con as its advisory TypeName).
func (p *Parser) parseConOrRecordCon() ast.ImplicitExpr {
	at := p.pos()
	con := p.curToken.Literal
	p.next()
	switch {
	case p.is(lexer.LBRACE):
		return p.parseRecordCon(at, name.NewTypeCon(con))
	case p.is(lexer.LPAREN):
		p.next()
		var args []ast.ImplicitExpr
		if !p.is(lexer.RPAREN) {
			args = append(args, p.parseExpr())
			for p.is(lexer.COMMA) {
				p.next()
				args = append(args, p.parseExpr())
			}
		}
		p.expect(lexer.RPAREN)
		return &ast.ImplicitDataCon{At: at, Con: name.NewLabel(con), Args: args}
	default:
		return &ast.ImplicitDataCon{At: at, Con: name.NewLabel(con)}
	}
}

// parseRecordCon parses "{ label: expr, ... }", tagging the result with
// typeName (zero value when the braces were not preceded by a
// constructor name).
func (p *Parser) parseRecordCon(at source.Pos, typeName name.TypeConName) ast.ImplicitExpr {
	p.expect(lexer.LBRACE)
	var fields []ast.ImplicitRecordField
	if !p.is(lexer.RBRACE) {
		fields = append(fields, p.parseRecordField())
		for p.is(lexer.COMMA) {
			p.next()
			fields = append(fields, p.parseRecordField())
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ImplicitRecordCon{At: at, TypeName: typeName, Fields: fields}
}

func (p *Parser) parseRecordField() ast.ImplicitRecordField {
	at := p.pos()
	label := name.NewLabel(p.curToken.Literal)
	p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	value := p.parseExpr()
	return ast.ImplicitRecordField{At: at, Label: label, Value: value}
}

// parseLambda parses "\x1 x2 ... xn . body", desugaring multiple
// parameters into nested single-argument ImplicitLambda nodes (the
// AST, like the constraint language's lambda rule, only ever abstracts
// over one parameter at a time). Each parameter may carry its own
// "(x : T)" annotation.
func (p *Parser) parseLambda() ast.ImplicitExpr {
	at := p.pos()
	p.expect(lexer.BACKSLASH)
	type param struct {
		name name.ValueName
		ty   types.Type
	}
	var params []param
	for {
		if p.is(lexer.LPAREN) {
			p.next()
			n := name.NewValue(p.curToken.Literal)
			p.expect(lexer.IDENT)
			p.expect(lexer.COLON)
			ty := p.parseType()
			p.expect(lexer.RPAREN)
			params = append(params, param{n, ty})
		} else {
			n := name.NewValue(p.curToken.Literal)
			if !p.expect(lexer.IDENT) {
				break
			}
			params = append(params, param{n, nil})
		}
		if !p.is(lexer.IDENT) && !p.is(lexer.LPAREN) {
			break
		}
	}
	p.expect(lexer.DOT)
	body := p.parseExpr()
	for i := len(params) - 1; i >= 0; i-- {
		body = &ast.ImplicitLambda{At: at, Param: params[i].name, Annotation: params[i].ty, Body: body}
	}
	return body
}

func (p *Parser) parseMatch() ast.ImplicitExpr {
	at := p.pos()
	p.expect(lexer.MATCH)
	scrutinee := p.parseExpr()
	p.expect(lexer.WITH)
	var arms []ast.ImplicitMatchArm
	for p.is(lexer.PIPE) {
		armAt := p.pos()
		p.next()
		pat := p.parsePattern()
		p.expect(lexer.ARROW)
		body := p.parseExpr()
		arms = append(arms, ast.ImplicitMatchArm{At: armAt, Pattern: pat, Body: body})
	}
	if len(arms) == 0 {
		p.errorf("PRS040", "match must have at least one '| pattern -> expr' arm")
	}
	return &ast.ImplicitMatch{At: at, Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseExists() ast.ImplicitExpr {
	at := p.pos()
	p.expect(lexer.EXISTS)
	var vars []name.TypeVarName
	for p.is(lexer.IDENT) {
		vars = append(vars, name.NewTypeVar(p.curToken.Literal))
		p.next()
	}
	p.expect(lexer.DOT)
	body := p.parseExpr()
	return &ast.ImplicitExists{At: at, Vars: vars, Body: body}
}

// parseLetExpr parses a local "let [rec] binding [and binding]* in
// expr" as either an ImplicitLet or an ImplicitLetRec, sharing
// parseValueDefGroup with the top-level declaration parser.
func (p *Parser) parseLetExpr() ast.ImplicitExpr {
	at := p.pos()
	recursive, defs := p.parseValueDefGroup()
	p.expect(lexer.IN)
	body := p.parseExpr()
	if recursive {
		return &ast.ImplicitLetRec{At: at, Defs: defs, Body: body}
	}
	return &ast.ImplicitLet{At: at, Defs: defs, Body: body}
}
