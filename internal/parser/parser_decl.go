package parser

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// parseValueName parses a binding name: a plain lowercase identifier,
// or a parenthesized operator symbol such as "(+)" — the surface-level
// device that lets a source file give one of the desugared infix
// operators (parser_expr.go's operatorSymbols) an actual binding, e.g.
// as a class member of a Num-like class.
func (p *Parser) parseValueName() name.ValueName {
	if p.is(lexer.LPAREN) {
		p.next()
		sym, ok := operatorSymbols[p.curToken.Type]
		if !ok {
			p.errorf("PRS050", "expected an operator symbol inside parentheses, got %s", p.curToken.Type)
		} else {
			p.next()
		}
		p.expect(lexer.RPAREN)
		return name.NewValue(sym)
	}
	n := name.NewValue(p.curToken.Literal)
	p.expect(lexer.IDENT)
	return n
}

func (p *Parser) parseLabelName() name.LabelName {
	return p.parseValueName().AsLabelName()
}

// parseTypeDefinitions parses "type Name param* = body ('and' Name
// param* = body)*", a mutually-recursive group of type declarations.
func (p *Parser) parseTypeDefinitions() ast.ImplicitBlock {
	at := p.pos()
	p.expect(lexer.TYPE)
	defs := []*ast.TypeDef{p.parseTypeDef()}
	for p.is(lexer.AND) {
		p.next()
		defs = append(defs, p.parseTypeDef())
	}
	return &ast.TypeDefinitions{At: at, Defs: defs}
}

func (p *Parser) parseTypeDef() *ast.TypeDef {
	at := p.pos()
	tname := name.NewTypeCon(p.curToken.Literal)
	p.expect(lexer.CONID)
	var params []name.TypeVarName
	for p.is(lexer.IDENT) {
		params = append(params, name.NewTypeVar(p.curToken.Literal))
		p.next()
	}
	p.expect(lexer.ASSIGN)

	def := &ast.TypeDef{At: at, Name: tname, Params: params}
	if p.is(lexer.LBRACE) {
		def.Record = p.parseRecordDef()
		return def
	}
	def.Algebraic = p.parseAlgebraicDef()
	return def
}

func (p *Parser) parseRecordDef() *ast.RecordDef {
	p.expect(lexer.LBRACE)
	var fields []*ast.RecordFieldDef
	if !p.is(lexer.RBRACE) {
		fields = append(fields, p.parseRecordFieldDef())
		for p.is(lexer.COMMA) {
			p.next()
			fields = append(fields, p.parseRecordFieldDef())
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.RecordDef{Fields: fields}
}

func (p *Parser) parseRecordFieldDef() *ast.RecordFieldDef {
	at := p.pos()
	label := p.parseLabelName()
	p.expect(lexer.COLON)
	ty := p.parseType()
	return &ast.RecordFieldDef{At: at, Label: label, Type: ty}
}

func (p *Parser) parseAlgebraicDef() *ast.AlgebraicDef {
	cons := []*ast.DataConstructorDef{p.parseDataConstructorDef()}
	for p.is(lexer.PIPE) {
		p.next()
		cons = append(cons, p.parseDataConstructorDef())
	}
	return &ast.AlgebraicDef{Constructors: cons}
}

func (p *Parser) parseDataConstructorDef() *ast.DataConstructorDef {
	at := p.pos()
	cname := name.NewLabel(p.curToken.Literal)
	p.expect(lexer.CONID)
	var fields []types.Type
	if p.is(lexer.LPAREN) {
		p.next()
		if !p.is(lexer.RPAREN) {
			fields = append(fields, p.parseType())
			for p.is(lexer.COMMA) {
				p.next()
				fields = append(fields, p.parseType())
			}
		}
		p.expect(lexer.RPAREN)
	}
	return &ast.DataConstructorDef{At: at, Name: cname, Fields: fields}
}

// parseClassDefinition parses
// "class ('higher')? (context '=>')? Name var 'where' '{' member* '}'".
func (p *Parser) parseClassDefinition() ast.ImplicitBlock {
	at := p.pos()
	p.expect(lexer.CLASS)

	isConstructorClass := false
	if p.is(lexer.IDENT) && p.curToken.Literal == "higher" {
		isConstructorClass = true
		p.next()
	}

	var supers []name.TypeConName
	if p.is(lexer.LPAREN) {
		for _, pred := range p.parsePredicateContext() {
			supers = append(supers, pred.Class)
		}
	}

	cname := name.NewTypeCon(p.curToken.Literal)
	p.expect(lexer.CONID)
	param := name.NewTypeVar(p.curToken.Literal)
	p.expect(lexer.IDENT)
	p.expect(lexer.WHERE)
	p.expect(lexer.LBRACE)

	var members []ast.ClassMember
	for !p.is(lexer.RBRACE) && !p.is(lexer.EOF) {
		mAt := p.pos()
		label := p.parseLabelName()
		p.expect(lexer.COLON)
		ty := p.parseType()
		members = append(members, ast.ClassMember{At: mAt, Label: label, Type: ty})
		if len(p.errors) > 0 {
			break
		}
		if p.is(lexer.SEMI) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)

	return &ast.ClassDefinition{
		At: at, Name: cname, Param: param, Supers: supers,
		Members: members, IsConstructorClass: isConstructorClass,
	}
}

// parseInstanceDefinitions parses a mutually-recursive group of
// instances: "instance (context '=>')? Class Head var* 'where' '{'
// binding* '}' ('and' instance...)*".
func (p *Parser) parseInstanceDefinitions() ast.ImplicitBlock {
	at := p.pos()
	instances := []*ast.ImplicitInstance{p.parseOneInstance()}
	for p.is(lexer.AND) {
		p.next()
		p.expect(lexer.INSTANCE)
		instances = append(instances, p.parseOneInstance())
	}
	return &ast.ImplicitInstanceDefinitions{At: at, Instances: instances}
}

func (p *Parser) parseOneInstance() *ast.ImplicitInstance {
	at := p.pos()
	p.expect(lexer.INSTANCE)

	var context []types.ClassPredicate
	if p.is(lexer.LPAREN) {
		context = p.parsePredicateContext()
	}

	class := name.NewTypeCon(p.curToken.Literal)
	p.expect(lexer.CONID)
	head := name.NewTypeCon(p.curToken.Literal)
	p.expect(lexer.CONID)
	var params []name.TypeVarName
	for p.is(lexer.IDENT) {
		params = append(params, name.NewTypeVar(p.curToken.Literal))
		p.next()
	}
	p.expect(lexer.WHERE)
	p.expect(lexer.LBRACE)

	var members []ast.ImplicitMemberBinding
	for !p.is(lexer.RBRACE) && !p.is(lexer.EOF) {
		mAt := p.pos()
		label := p.parseLabelName()
		p.expect(lexer.ASSIGN)
		body := p.parseExpr()
		members = append(members, ast.ImplicitMemberBinding{At: mAt, Label: label, Body: body})
		if len(p.errors) > 0 {
			break
		}
		if p.is(lexer.SEMI) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)

	return &ast.ImplicitInstance{
		At: at, Class: class, Head: head, Params: params,
		Context: context, Members: members,
	}
}

// parseTopLevelDefinition parses a top-level "let [rec] binding [and
// binding]*" block with no trailing "in" (unlike the expression form
// parsed by parseLetExpr, a program block closes over the rest of the
// program rather than a local body).
func (p *Parser) parseTopLevelDefinition() ast.ImplicitBlock {
	at := p.pos()
	recursive, defs := p.parseValueDefGroup()
	if p.is(lexer.IN) {
		p.errorf("PRS051", "a top-level 'let' binds the rest of the program; it cannot be followed by 'in'")
	}
	return &ast.ImplicitDefinition{At: at, Recursive: recursive, Defs: defs}
}

// parseValueDefGroup parses "'let' 'rec'? binding ('and' binding)*",
// shared between a top-level Definition block and a local let/letrec
// expression.
func (p *Parser) parseValueDefGroup() (recursive bool, defs []*ast.ImplicitValueDef) {
	p.expect(lexer.LET)
	if p.is(lexer.REC) {
		recursive = true
		p.next()
	}
	defs = append(defs, p.parseValueDef())
	for p.is(lexer.AND) {
		p.next()
		defs = append(defs, p.parseValueDef())
	}
	return recursive, defs
}

// parseValueDef parses "name ('::' scheme)? '=' expr". The three
// annotation-derived fields are left nil/empty when no "::" is
// present, matching ImplicitValueDef.HasAnnotation's contract.
func (p *Parser) parseValueDef() *ast.ImplicitValueDef {
	at := p.pos()
	n := p.parseValueName()

	var quantifiers []name.TypeVarName
	var predicates []types.ClassPredicate
	var annotation types.Type
	if p.is(lexer.DCOLON) {
		p.next()
		s := p.parseScheme()
		quantifiers, predicates, annotation = s.Quantifiers, s.Predicates, s.Body
	}
	p.expect(lexer.ASSIGN)
	body := p.parseExpr()

	return &ast.ImplicitValueDef{
		At: at, Quantifiers: quantifiers, Predicates: predicates,
		Annotation: annotation, Name: n, Body: body,
	}
}
