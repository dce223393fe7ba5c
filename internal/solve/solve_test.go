package solve_test

import (
	"testing"

	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/generate"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/solve"
	"github.com/classc/classc/internal/types"
)

func vname(s string) name.ValueName { return name.NewValue(s) }

func con(n string) types.Type { return &types.TApp{Con: name.NewTypeCon(n)} }

// polymorphicIdentityProgram declares `id = \x. x` with no annotation
// (so it must be generalized under the value restriction) and two
// annotated uses at different types, the textbook let-polymorphism
// case the solver's generalize/instantiate split exists to handle.
func polymorphicIdentityProgram() *ast.ImplicitProgram {
	id := &ast.ImplicitValueDef{
		Name: vname("id"),
		Body: &ast.ImplicitLambda{Param: vname("x"), Body: &ast.ImplicitVar{Name: vname("x")}},
	}
	useInt := &ast.ImplicitValueDef{
		Name:       vname("useInt"),
		Annotation: con("int"),
		Body: &ast.ImplicitApp{
			Func: &ast.ImplicitVar{Name: vname("id")},
			Arg:  &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit, Raw: "3"}},
		},
	}
	useBool := &ast.ImplicitValueDef{
		Name:       vname("useBool"),
		Annotation: con("bool"),
		Body: &ast.ImplicitApp{
			Func: &ast.ImplicitVar{Name: vname("id")},
			Arg:  &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.BoolLit, Raw: "true"}},
		},
	}
	return &ast.ImplicitProgram{
		Blocks: []ast.ImplicitBlock{
			&ast.ImplicitDefinition{Defs: []*ast.ImplicitValueDef{id}},
			&ast.ImplicitDefinition{Defs: []*ast.ImplicitValueDef{useInt}},
			&ast.ImplicitDefinition{Defs: []*ast.ImplicitValueDef{useBool}},
		},
	}
}

func TestSolvePolymorphicIdentity(t *testing.T) {
	prog := polymorphicIdentityProgram()
	root, _, gerr := generate.GenerateProgram(generate.BaseEnv(), prog)
	if gerr != nil {
		t.Fatalf("generate: %v", gerr)
	}

	sol, serr := solve.New().Solve(root)
	if serr != nil {
		t.Fatalf("solve: %v", serr)
	}

	explicit, derr := sol.Derive(prog)
	if derr != nil {
		t.Fatalf("derive: %v", derr)
	}
	if len(explicit.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(explicit.Blocks))
	}

	idDef := explicit.Blocks[0].(*ast.ExplicitDefinition).Defs[0]
	if len(idDef.Quantifiers) != 1 {
		t.Fatalf("id should generalize over exactly one variable, got %d (%v)", len(idDef.Quantifiers), idDef.Quantifiers)
	}
	lam, ok := idDef.Body.(*ast.ExplicitLambda)
	if !ok {
		t.Fatalf("id's body should derive to a lambda, got %T", idDef.Body)
	}
	if lam.Annotation == nil {
		t.Fatalf("lambda parameter annotation should be filled in")
	}

	useIntApp := explicit.Blocks[1].(*ast.ExplicitDefinition).Defs[0].Body.(*ast.ExplicitApp)
	idAtInt := useIntApp.Func.(*ast.ExplicitVar)
	if len(idAtInt.TypeArgs) != 1 || idAtInt.TypeArgs[0].String() != "int" {
		t.Errorf("useInt should instantiate id at int, got %v", idAtInt.TypeArgs)
	}

	useBoolApp := explicit.Blocks[2].(*ast.ExplicitDefinition).Defs[0].Body.(*ast.ExplicitApp)
	idAtBool := useBoolApp.Func.(*ast.ExplicitVar)
	if len(idAtBool.TypeArgs) != 1 || idAtBool.TypeArgs[0].String() != "bool" {
		t.Errorf("useBool should instantiate id at bool, got %v", idAtBool.TypeArgs)
	}
}

func TestSolveRecursiveGroupTypeChecks(t *testing.T) {
	// let rec isEven n = if ... ; isOdd n = if ... (shape only — bodies
	// just bounce between the two to exercise mutual recursion through
	// the monomorphic letrec header without needing real conditionals).
	isEven := &ast.ImplicitValueDef{
		Name:       vname("isEven"),
		Annotation: types.Arrow(con("int").Pos(), con("int"), con("bool")),
		Body: &ast.ImplicitLambda{
			Param:      vname("n"),
			Annotation: con("int"),
			Body:       &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.BoolLit, Raw: "true"}},
		},
	}
	isOdd := &ast.ImplicitValueDef{
		Name:       vname("isOdd"),
		Annotation: types.Arrow(con("int").Pos(), con("int"), con("bool")),
		Body: &ast.ImplicitLambda{
			Param:      vname("n"),
			Annotation: con("int"),
			Body: &ast.ImplicitApp{
				Func: &ast.ImplicitVar{Name: vname("isEven")},
				Arg:  &ast.ImplicitVar{Name: vname("n")},
			},
		},
	}
	prog := &ast.ImplicitProgram{
		Blocks: []ast.ImplicitBlock{
			&ast.ImplicitDefinition{Recursive: true, Defs: []*ast.ImplicitValueDef{isEven, isOdd}},
		},
	}

	root, _, gerr := generate.GenerateProgram(generate.BaseEnv(), prog)
	if gerr != nil {
		t.Fatalf("generate: %v", gerr)
	}
	sol, serr := solve.New().Solve(root)
	if serr != nil {
		t.Fatalf("solve: %v", serr)
	}
	if _, derr := sol.Derive(prog); derr != nil {
		t.Fatalf("derive: %v", derr)
	}
}

func TestSolveUnboundNameFails(t *testing.T) {
	prog := &ast.ImplicitProgram{
		Blocks: []ast.ImplicitBlock{
			&ast.ImplicitDefinition{Defs: []*ast.ImplicitValueDef{{
				Name:       vname("bad"),
				Annotation: con("int"),
				Body:       &ast.ImplicitVar{Name: vname("undeclared")},
			}}},
		},
	}
	root, _, gerr := generate.GenerateProgram(generate.BaseEnv(), prog)
	if gerr != nil {
		t.Fatalf("generate: %v", gerr)
	}
	if _, serr := solve.New().Solve(root); serr == nil {
		t.Fatalf("expected an unbound-name error from the solver")
	}
}
