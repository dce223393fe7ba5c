package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let rec isEven = \n. match n with
  | 0 -> true
  | m -> isOdd (m - 1)
and isOdd = \n. false

type Pair a b = MkPair(a, b)
class Eq a where
  eq : a -> a -> bool
instance Eq Int where
  eq = \x. \y. primEqInt x y

{ x: 1, y: 2.5 } -- trailing comment
f :: forall a. [Eq a] => a -> bool
`

	tests := []struct {
		t   TokenType
		lit string
	}{
		{LET, "let"}, {REC, "rec"}, {IDENT, "isEven"}, {ASSIGN, "="},
		{BACKSLASH, "\\"}, {IDENT, "n"}, {DOT, "."},
		{MATCH, "match"}, {IDENT, "n"}, {WITH, "with"},
		{PIPE, "|"}, {INT, "0"}, {ARROW, "->"}, {TRUE, "true"},
		{PIPE, "|"}, {IDENT, "m"}, {ARROW, "->"}, {IDENT, "isOdd"},
		{LPAREN, "("}, {IDENT, "m"}, {MINUS, "-"}, {INT, "1"}, {RPAREN, ")"},
		{AND, "and"}, {IDENT, "isOdd"}, {ASSIGN, "="},
		{BACKSLASH, "\\"}, {IDENT, "n"}, {DOT, "."}, {FALSE, "false"},

		{TYPE, "type"}, {CONID, "Pair"}, {IDENT, "a"}, {IDENT, "b"}, {ASSIGN, "="},
		{CONID, "MkPair"}, {LPAREN, "("}, {IDENT, "a"}, {COMMA, ","}, {IDENT, "b"}, {RPAREN, ")"},
		{CLASS, "class"}, {CONID, "Eq"}, {IDENT, "a"}, {WHERE, "where"},
		{IDENT, "eq"}, {COLON, ":"}, {IDENT, "a"}, {ARROW, "->"}, {IDENT, "a"}, {ARROW, "->"}, {IDENT, "bool"},
		{INSTANCE, "instance"}, {CONID, "Eq"}, {CONID, "Int"}, {WHERE, "where"},
		{IDENT, "eq"}, {ASSIGN, "="}, {BACKSLASH, "\\"}, {IDENT, "x"}, {DOT, "."},
		{BACKSLASH, "\\"}, {IDENT, "y"}, {DOT, "."}, {IDENT, "primEqInt"}, {IDENT, "x"}, {IDENT, "y"},

		{LBRACE, "{"}, {IDENT, "x"}, {COLON, ":"}, {INT, "1"}, {COMMA, ","},
		{IDENT, "y"}, {COLON, ":"}, {FLOAT, "2.5"}, {RBRACE, "}"},

		{IDENT, "f"}, {DCOLON, "::"}, {FORALL, "forall"}, {IDENT, "a"}, {DOT, "."},
		{LBRACKET, "["}, {CONID, "Eq"}, {IDENT, "a"}, {RBRACKET, "]"}, {FARROW, "=>"},
		{IDENT, "a"}, {ARROW, "->"}, {IDENT, "bool"},

		{EOF, ""},
	}

	l := New(string(Normalize([]byte(input))), "test.cls")
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.t {
			t.Fatalf("test[%d]: type wrong. expected=%s, got=%s (literal %q)", i, tt.t, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.lit {
			t.Fatalf("test[%d]: literal wrong. expected=%q, got=%q", i, tt.lit, tok.Literal)
		}
	}
}

func TestNextTokenUnderscoreAndUnit(t *testing.T) {
	l := New("_ () _x", "t")
	want := []TokenType{UNDERSCORE, LPAREN, RPAREN, IDENT, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("test[%d]: expected %s, got %s", i, w, tok.Type)
		}
	}
}
