package printer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

func intType() types.Type {
	return &types.TApp{Con: name.NewTypeCon("int")}
}

func TestPrintSimpleDefinition(t *testing.T) {
	def := &ast.ExplicitDefinition{
		Defs: []*ast.ExplicitValueDef{
			{
				Name:       name.NewValue("answer"),
				Annotation: intType(),
				Body:       &ast.ExplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit, Raw: "42"}},
			},
		},
	}
	out := Print(&ast.ExplicitProgram{Blocks: []ast.ExplicitBlock{def}})
	if !strings.Contains(out, "let answer :: int = 42") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrintClassAndInstance(t *testing.T) {
	a := name.NewTypeVar("a")
	class := &ast.ClassDefinition{
		Name:  name.NewTypeCon("Eq"),
		Param: a,
		Members: []ast.ClassMember{
			{Label: name.NewLabel("eq"), Type: types.Arrow(source.Undefined, &types.TVar{Name: a}, types.Arrow(source.Undefined, &types.TVar{Name: a}, intType()))},
		},
	}
	inst := &ast.ExplicitInstanceDefinitions{
		Instances: []*ast.ExplicitInstance{
			{
				Class: name.NewTypeCon("Eq"),
				Head:  name.NewTypeCon("Bool2"),
				Members: []ast.ExplicitMemberBinding{
					{Label: name.NewLabel("eq"), Body: &ast.ExplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit, Raw: "0"}}},
				},
			},
		},
	}
	out := Print(&ast.ExplicitProgram{Blocks: []ast.ExplicitBlock{class, inst}})
	if !strings.Contains(out, "class Eq a where") {
		t.Fatalf("missing class header: %q", out)
	}
	if !strings.Contains(out, "instance Eq Bool2 where") {
		t.Fatalf("missing instance header: %q", out)
	}
}

// TestPrintMultipleBlocksMatchesExpectedLayout diffs the full rendering of
// a multi-block program against the exact expected text, the way the
// teacher's goldenCompare diffs a parser's output against a golden file.
// Here the "golden" is inline, since printer output isn't checked into
// testdata (there is nothing to regenerate with a -update flag).
func TestPrintMultipleBlocksMatchesExpectedLayout(t *testing.T) {
	answer := &ast.ExplicitDefinition{
		Defs: []*ast.ExplicitValueDef{
			{Name: name.NewValue("answer"), Annotation: intType(), Body: &ast.ExplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit, Raw: "42"}}},
		},
	}
	double := &ast.ExplicitDefinition{
		Defs: []*ast.ExplicitValueDef{
			{Name: name.NewValue("double"), Annotation: intType(), Body: &ast.ExplicitVar{Name: name.NewValue("answer")}},
		},
	}
	out := Print(&ast.ExplicitProgram{Blocks: []ast.ExplicitBlock{answer, double}})
	want := "let answer :: int = 42\n\nlet double :: int = answer"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Print mismatch (-want +got):\n%s", diff)
	}
}
