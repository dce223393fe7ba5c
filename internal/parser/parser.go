// Package parser implements a hand-written recursive-descent/Pratt
// parser producing ast.ImplicitProgram, grounded on the teacher's
// curToken/peekToken Parser shape and its registered prefix/infix
// parse-function tables (internal/parser/parser.go), adapted to this
// language's own grammar: type/class/instance declarations, a
// dictionary-free surface syntax for class members and instances, and
// operator symbols treated as ordinary value names when parenthesized
// (`(+)`), the way Haskell's surface syntax lets an operator be used as
// prefix.
package parser

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/source"
)

// Parser turns a token stream into an ast.ImplicitProgram.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []*ParserError
}

// New creates a Parser over l, priming curToken/peekToken.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error accumulated while parsing.
// ParseProgram stops after the first top-level block that records an
// error, so these all come from that one block; ParseProgram itself
// returns a nil program once any error has been recorded.
func (p *Parser) Errors() []*ParserError { return p.errors }

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) pos() source.Pos {
	return source.Pos{File: p.curToken.File, Line: p.curToken.Line, Column: p.curToken.Column}
}

func (p *Parser) is(t lexer.TokenType) bool { return p.curToken.Type == t }

func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// expect consumes curToken if it has type t, else records an error and
// returns false without advancing. No recovery is attempted:
// ParseProgram stops once the current top-level block has been parsed.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.is(t) {
		p.next()
		return true
	}
	p.errorf("PRS001", "expected %s, got %s", t, p.curToken.Type)
	return false
}

func (p *Parser) errorf(code, format string, args ...any) {
	p.errors = append(p.errors, newParserError(code, p.pos(), p.curToken, format, args...))
}

// ParseProgram parses an entire source file into a program of
// top-level blocks. It stops at the first block-level syntax error
// (spec's "no recovery" error-handling posture, carried into the
// parser the same way the solver and generator never try to continue
// past their own first error).
func ParseProgram(l *lexer.Lexer) (*ast.ImplicitProgram, []*ParserError) {
	p := New(l)
	prog := &ast.ImplicitProgram{}
	for !p.is(lexer.EOF) {
		block := p.parseBlock()
		if len(p.errors) > 0 {
			return nil, p.errors
		}
		prog.Blocks = append(prog.Blocks, block)
	}
	return prog, nil
}

func (p *Parser) parseBlock() ast.ImplicitBlock {
	switch p.curToken.Type {
	case lexer.TYPE:
		return p.parseTypeDefinitions()
	case lexer.CLASS:
		return p.parseClassDefinition()
	case lexer.INSTANCE:
		return p.parseInstanceDefinitions()
	case lexer.LET:
		return p.parseTopLevelDefinition()
	default:
		p.errorf("PRS002", "expected a top-level declaration (type/class/instance/let), got %s", p.curToken.Type)
		return nil
	}
}
