package compiler

import "testing"

func TestCompileSimpleLet(t *testing.T) {
	prog, report := Compile(Source{Code: `let id = \x. x`, Filename: "t.cls"})
	if report != nil {
		t.Fatalf("unexpected error: %v", report)
	}
	if len(prog.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(prog.Blocks))
	}
	if !prog.IsClassFree() {
		t.Fatalf("a program with no classes should already be class-free")
	}
}

func TestCompileClassAndInstanceElaboratesAwayClasses(t *testing.T) {
	src := `
type Bool2 = MkTrue | MkFalse

class Eq a where {
  eq : a -> a -> bool
}

instance Eq Bool2 where {
  eq = \x. \y. true
}
`
	prog, report := Compile(Source{Code: src, Filename: "t.cls"})
	if report != nil {
		t.Fatalf("unexpected error: %v", report)
	}
	if !prog.IsClassFree() {
		t.Fatalf("elaborated program should be class-free, got blocks: %+v", prog.Blocks)
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	_, report := Compile(Source{Code: `let f :: int -> = \x. x`, Filename: "t.cls"})
	if report == nil {
		t.Fatalf("expected a parse error for a type with a dangling '->'")
	}
}

func TestRenderPrettyPrintsCompiledProgram(t *testing.T) {
	out, report := Render(Source{Code: `let answer :: int = 42`, Filename: "t.cls"})
	if report != nil {
		t.Fatalf("unexpected error: %v", report)
	}
	if out == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}
