package parser

import (
	"fmt"

	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/source"
)

// ParserError is a structured syntax error, kept separate from
// internal/errs.Report the way the teacher keeps parser.ParserError
// distinct from its pipeline-wide errors.Report: syntax errors carry
// lexer.Token context a type-checking error never needs, and parsing
// is external-collaborator territory the core error taxonomy (GEN/ELB/
// SLV codes) never reaches into.
type ParserError struct {
	Code    string
	Message string
	At      source.Pos
	Token   lexer.Token
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s: %s (near %q)", e.Code, e.At, e.Message, e.Token.Literal)
}

func newParserError(code string, at source.Pos, tok lexer.Token, format string, args ...any) *ParserError {
	return &ParserError{Code: code, Message: fmt.Sprintf(format, args...), At: at, Token: tok}
}
