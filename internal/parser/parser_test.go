package parser

import (
	"testing"

	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/lexer"
)

func parse(t *testing.T, src string) *ast.ImplicitProgram {
	t.Helper()
	l := lexer.New(string(lexer.Normalize([]byte(src))), "test.cls")
	prog, errs := ParseProgram(l)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParseSimpleLet(t *testing.T) {
	prog := parse(t, `let id = \x. x`)
	if len(prog.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(prog.Blocks))
	}
	def, ok := prog.Blocks[0].(*ast.ImplicitDefinition)
	if !ok {
		t.Fatalf("expected *ast.ImplicitDefinition, got %T", prog.Blocks[0])
	}
	if def.Recursive {
		t.Fatalf("expected non-recursive definition")
	}
	if len(def.Defs) != 1 || def.Defs[0].Name.String() != "id" {
		t.Fatalf("unexpected defs: %+v", def.Defs)
	}
	lam, ok := def.Defs[0].Body.(*ast.ImplicitLambda)
	if !ok {
		t.Fatalf("expected lambda body, got %T", def.Defs[0].Body)
	}
	if lam.Param.String() != "x" {
		t.Fatalf("unexpected param %q", lam.Param)
	}
}

func TestParseAnnotatedLetWithQuantifiersAndPredicates(t *testing.T) {
	prog := parse(t, `let eq2 :: forall a. [Eq a] => a -> a -> bool = \x. \y. true`)
	def := prog.Blocks[0].(*ast.ImplicitDefinition).Defs[0]
	if len(def.Quantifiers) != 1 || def.Quantifiers[0].String() != "a" {
		t.Fatalf("unexpected quantifiers: %v", def.Quantifiers)
	}
	if len(def.Predicates) != 1 || def.Predicates[0].Class.String() != "Eq" {
		t.Fatalf("unexpected predicates: %v", def.Predicates)
	}
	if def.Annotation == nil {
		t.Fatalf("expected an annotation")
	}
}

func TestParseRecursiveGroup(t *testing.T) {
	prog := parse(t, `
let rec isEven = \n. match n with
  | 0 -> true
  | m -> isOdd (m - 1)
and isOdd = \n. match n with
  | 0 -> false
  | m -> isEven (m - 1)
`)
	def := prog.Blocks[0].(*ast.ImplicitDefinition)
	if !def.Recursive {
		t.Fatalf("expected a recursive group")
	}
	if len(def.Defs) != 2 {
		t.Fatalf("expected 2 mutually recursive defs, got %d", len(def.Defs))
	}
}

func TestParseAlgebraicTypeAndInstance(t *testing.T) {
	prog := parse(t, `
type Bool2 = MkTrue | MkFalse

class Eq a where {
  eq : a -> a -> bool
}

instance Eq Bool2 where {
  eq = \x. \y. true
}
`)
	if len(prog.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(prog.Blocks))
	}
	tdefs, ok := prog.Blocks[0].(*ast.TypeDefinitions)
	if !ok || len(tdefs.Defs) != 1 || len(tdefs.Defs[0].Algebraic.Constructors) != 2 {
		t.Fatalf("unexpected type definitions: %+v", prog.Blocks[0])
	}
	class, ok := prog.Blocks[1].(*ast.ClassDefinition)
	if !ok || class.Name.String() != "Eq" || len(class.Members) != 1 {
		t.Fatalf("unexpected class definition: %+v", prog.Blocks[1])
	}
	inst, ok := prog.Blocks[2].(*ast.ImplicitInstanceDefinitions)
	if !ok || len(inst.Instances) != 1 || inst.Instances[0].Head.String() != "Bool2" {
		t.Fatalf("unexpected instance definitions: %+v", prog.Blocks[2])
	}
}

func TestParseRecordConAndAccess(t *testing.T) {
	prog := parse(t, `let x = Point{x: 1, y: 2}.x`)
	def := prog.Blocks[0].(*ast.ImplicitDefinition).Defs[0]
	access, ok := def.Body.(*ast.ImplicitRecordAccess)
	if !ok {
		t.Fatalf("expected record access, got %T", def.Body)
	}
	if access.Label.String() != "x" {
		t.Fatalf("unexpected label %q", access.Label)
	}
	rec, ok := access.Record.(*ast.ImplicitRecordCon)
	if !ok || rec.TypeName.String() != "Point" || len(rec.Fields) != 2 {
		t.Fatalf("unexpected record constructor: %+v", access.Record)
	}
}

func TestParseOperatorDesugarsToApplication(t *testing.T) {
	prog := parse(t, `let f = \x. \y. x + y * 2`)
	def := prog.Blocks[0].(*ast.ImplicitDefinition).Defs[0]
	inner := def.Body.(*ast.ImplicitLambda).Body.(*ast.ImplicitLambda).Body
	app, ok := inner.(*ast.ImplicitApp)
	if !ok {
		t.Fatalf("expected top-level application for '+', got %T", inner)
	}
	plus := app.Func.(*ast.ImplicitApp).Func.(*ast.ImplicitVar)
	if plus.Name.String() != "+" {
		t.Fatalf("expected '+' as the outermost operator (lower precedence than '*'), got %q", plus.Name)
	}
}

func TestParseDataConstructorAndMatch(t *testing.T) {
	prog := parse(t, `
let head = \xs. match xs with
  | Cons(h, t) -> h
  | Nil -> 0
`)
	def := prog.Blocks[0].(*ast.ImplicitDefinition).Defs[0]
	m := def.Body.(*ast.ImplicitLambda).Body.(*ast.ImplicitMatch)
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 match arms, got %d", len(m.Arms))
	}
	pat, ok := m.Arms[0].Pattern.(*ast.ConstructorPattern)
	if !ok || pat.Con.String() != "Cons" || len(pat.Args) != 2 {
		t.Fatalf("unexpected first arm pattern: %+v", m.Arms[0].Pattern)
	}
}

func TestParseErrorOnDanglingArrow(t *testing.T) {
	l := lexer.New(string(lexer.Normalize([]byte(`let f :: int -> = \x. x`))), "t")
	_, errs := ParseProgram(l)
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for a type with a dangling '->'")
	}
}
