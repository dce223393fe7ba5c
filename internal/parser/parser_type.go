package parser

import (
	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// parseType parses an arrow type: appType ('->' type)?, right-associative.
func (p *Parser) parseType() types.Type {
	at := p.pos()
	lhs := p.parseAppType()
	if p.is(lexer.ARROW) {
		p.next()
		rhs := p.parseType()
		return types.Arrow(at, lhs, rhs)
	}
	return lhs
}

// parseAppType parses a type-constructor application: a bare
// constructor name followed by zero or more atomic-type arguments
// (juxtaposition, tightest-binding), or a single non-applicable atom
// (a type variable or a parenthesized type).
func (p *Parser) parseAppType() types.Type {
	at := p.pos()
	head, isCon := p.parseAtomType()
	if !isCon {
		return head
	}
	con := head.(*types.TApp)
	var args []types.Type
	for p.startsAtomType() {
		arg, _ := p.parseAtomType()
		args = append(args, arg)
	}
	if len(args) == 0 {
		return con
	}
	return &types.TApp{At: at, Con: con.Con, Args: args}
}

func (p *Parser) startsAtomType() bool {
	switch p.curToken.Type {
	case lexer.IDENT, lexer.CONID, lexer.LPAREN:
		return true
	default:
		return false
	}
}

// builtinTypeNames are the lowercase-spelled, zero-arity built-in type
// constructors internal/generate/prims.go's BaseEnv seeds the
// environment with. Lexically these are ordinary lowercase identifiers
// (IDENT), not CONID, so parseAtomType must special-case them instead
// of using case alone to decide "variable or constructor" the way it
// can for every user-declared type.
var builtinTypeNames = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true, "unit": true,
}

// parseAtomType parses a single type atom. isCon reports whether it is
// a bare (zero-arg so far) type-constructor reference, the only shape
// parseAppType may extend with further arguments.
func (p *Parser) parseAtomType() (t types.Type, isCon bool) {
	at := p.pos()
	switch p.curToken.Type {
	case lexer.IDENT:
		lit := p.curToken.Literal
		p.next()
		if builtinTypeNames[lit] {
			return &types.TApp{At: at, Con: name.NewTypeCon(lit)}, true
		}
		return &types.TVar{At: at, Name: name.NewTypeVar(lit)}, false
	case lexer.CONID:
		con := &types.TApp{At: at, Con: name.NewTypeCon(p.curToken.Literal)}
		p.next()
		return con, true
	case lexer.LPAREN:
		p.next()
		inner := p.parseType()
		p.expect(lexer.RPAREN)
		return inner, false
	default:
		p.errorf("PRS010", "expected a type, got %s", p.curToken.Type)
		return &types.TApp{At: at}, false
	}
}

// parsePredicate parses a single class constraint: "ClassName var".
func (p *Parser) parsePredicate() types.ClassPredicate {
	class := name.NewTypeCon(p.curToken.Literal)
	p.expect(lexer.CONID)
	v := name.NewTypeVar(p.curToken.Literal)
	p.expect(lexer.IDENT)
	return types.ClassPredicate{Class: class, Var: v}
}

// parsePredicateList parses a comma-separated predicate list enclosed
// in brackets, e.g. "[Eq a, Ord b]".
func (p *Parser) parsePredicateList() []types.ClassPredicate {
	p.expect(lexer.LBRACKET)
	var preds []types.ClassPredicate
	if !p.is(lexer.RBRACKET) {
		preds = append(preds, p.parsePredicate())
		for p.is(lexer.COMMA) {
			p.next()
			preds = append(preds, p.parsePredicate())
		}
	}
	p.expect(lexer.RBRACKET)
	return preds
}

// parsePredicateContext parses the '(' pred, pred... ')' '=>' form used
// by a class's superclass context and an instance's constraint
// context.
func (p *Parser) parsePredicateContext() []types.ClassPredicate {
	p.expect(lexer.LPAREN)
	var preds []types.ClassPredicate
	if !p.is(lexer.RPAREN) {
		preds = append(preds, p.parsePredicate())
		for p.is(lexer.COMMA) {
			p.next()
			preds = append(preds, p.parsePredicate())
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.FARROW)
	return preds
}

// scheme is the parsed form of a "::"-introduced explicit annotation:
// an optional forall-quantifier prefix, an optional predicate-list
// context, and a body type.
type scheme struct {
	Quantifiers []name.TypeVarName
	Predicates  []types.ClassPredicate
	Body        types.Type
}

// parseScheme parses "('forall' var+ '.')? ('[' pred,... ']' '=>')? type".
func (p *Parser) parseScheme() scheme {
	var s scheme
	if p.is(lexer.FORALL) {
		p.next()
		for p.is(lexer.IDENT) {
			s.Quantifiers = append(s.Quantifiers, name.NewTypeVar(p.curToken.Literal))
			p.next()
		}
		p.expect(lexer.DOT)
	}
	if p.is(lexer.LBRACKET) {
		s.Predicates = p.parsePredicateList()
		p.expect(lexer.FARROW)
	}
	s.Body = p.parseType()
	return s
}
