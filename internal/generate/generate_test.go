package generate

import (
	"testing"

	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

func tv(s string) types.Type { return &types.TVar{Name: name.NewTypeVar(s)} }

func con(n string, args ...types.Type) types.Type {
	return &types.TApp{Con: name.NewTypeCon(n), Args: args}
}

func vname(s string) name.ValueName { return name.NewValue(s) }

func TestLiteralTypeCoversEveryKind(t *testing.T) {
	cases := []struct {
		kind ast.LiteralKind
		con  string
	}{
		{ast.IntLit, IntCon},
		{ast.FloatLit, FloatCon},
		{ast.StringLit, StringCon},
		{ast.BoolLit, BoolCon},
		{ast.UnitLit, UnitCon},
	}
	for _, c := range cases {
		got := literalType(ast.Literal{Kind: c.kind}, source.Undefined)
		if got.String() != c.con {
			t.Errorf("literalType(%v) = %s, want %s", c.kind, got, c.con)
		}
	}
}

func TestGenerateVariableEmitsInstanceOf(t *testing.T) {
	g := New(BaseEnv())
	e := &ast.ImplicitVar{Name: vname("x")}
	c, err := g.GenerateExpr(e, tv("t0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	io, ok := c.(constraint.InstanceOf)
	if !ok {
		t.Fatalf("expected InstanceOf, got %T", c)
	}
	if io.Name.String() != "x" {
		t.Errorf("InstanceOf.Name = %s, want x", io.Name)
	}
}

func TestGenerateLambdaProducesExistsAndArrowEquality(t *testing.T) {
	g := New(BaseEnv())
	lam := &ast.ImplicitLambda{
		Param: vname("x"),
		Body:  &ast.ImplicitVar{Name: vname("x")},
	}
	c, err := g.GenerateExpr(lam, tv("result"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ex, ok := c.(constraint.Exists)
	if !ok {
		t.Fatalf("expected Exists at the top, got %T", c)
	}
	if len(ex.Vars) != 2 {
		t.Errorf("expected 2 fresh vars (param, result), got %d", len(ex.Vars))
	}
	conj, ok := ex.Inner.(constraint.Conj)
	if !ok {
		t.Fatalf("expected a conjunction under Exists, got %T", ex.Inner)
	}
	foundArrowEq := false
	for _, sub := range conj.Constraints {
		if eq, isEq := sub.(constraint.Eq); isEq {
			if _, _, isArrow := types.DestructTyArrow(eq.T2); isArrow {
				foundArrowEq = true
			}
		}
	}
	if !foundArrowEq {
		t.Errorf("expected an equality against an arrow type, got %s", ex.Inner)
	}
}

func TestGenerateApplicationIntroducesFreshArgVar(t *testing.T) {
	g := New(BaseEnv())
	app := &ast.ImplicitApp{
		Func: &ast.ImplicitVar{Name: vname("f")},
		Arg:  &ast.ImplicitVar{Name: vname("a")},
	}
	c, err := g.GenerateExpr(app, tv("r"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ex, ok := c.(constraint.Exists)
	if !ok || len(ex.Vars) != 1 {
		t.Fatalf("expected a single-variable Exists, got %#v", c)
	}
}

func TestGenerateAscriptionChecksWellFormedness(t *testing.T) {
	g := New(BaseEnv())
	asc := &ast.ImplicitAscription{
		Expr:       &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit, Raw: "1"}},
		Annotation: con("nonexistent"),
	}
	_, err := g.GenerateExpr(asc, tv("t"))
	if err == nil {
		t.Fatal("expected an unbound type constructor error")
	}
}

func TestGenerateDataConRejectsPartialApplication(t *testing.T) {
	e := BaseEnv()
	e = e.BindType(name.NewTypeCon("List"), types.KindOfArity(1), nil)
	e = e.BindDataConstructor(name.NewLabel("Cons"), &types.TyScheme{
		Quantifiers: []name.TypeVarName{name.NewTypeVar("a")},
		Body: types.NTyArrow(source.Undefined,
			[]types.Type{tv("a"), con("List", tv("a"))},
			con("List", tv("a"))),
	})
	g := New(e)
	dc := &ast.ImplicitDataCon{
		Con:  name.NewLabel("Cons"),
		Args: []ast.ImplicitExpr{&ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit}}},
	}
	_, err := g.GenerateExpr(dc, tv("r"))
	if err == nil {
		t.Fatal("expected a partial application error")
	}
	if err.Code != errs.PartialDataConstructorApplication {
		t.Errorf("unexpected error code: %s", err.Code)
	}
}

func TestGenerateDataConWithCorrectArity(t *testing.T) {
	e := BaseEnv()
	e = e.BindType(name.NewTypeCon("Pair"), types.KindOfArity(0), nil)
	e = e.BindDataConstructor(name.NewLabel("MkPair"), &types.TyScheme{
		Body: types.NTyArrow(source.Undefined, []types.Type{con(IntCon), con(BoolCon)}, con("Pair")),
	})
	g := New(e)
	dc := &ast.ImplicitDataCon{
		Con: name.NewLabel("MkPair"),
		Args: []ast.ImplicitExpr{
			&ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit}},
			&ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.BoolLit}},
		},
	}
	_, err := g.GenerateExpr(dc, tv("r"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateRecordConRejectsEmpty(t *testing.T) {
	g := New(BaseEnv())
	rc := &ast.ImplicitRecordCon{}
	_, err := g.GenerateExpr(rc, tv("t"))
	if err == nil {
		t.Fatal("expected an error for an empty record construction")
	}
}

func TestGenerateRecordConRejectsDuplicateLabel(t *testing.T) {
	e := recordEnv()
	g := New(e)
	rc := &ast.ImplicitRecordCon{
		Fields: []ast.ImplicitRecordField{
			{Label: name.NewLabel("x"), Value: &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit}}},
			{Label: name.NewLabel("x"), Value: &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit}}},
		},
	}
	_, err := g.GenerateExpr(rc, tv("t"))
	if err == nil {
		t.Fatal("expected MultipleLabels")
	}
}

func TestGenerateRecordConAndAccessRoundTrip(t *testing.T) {
	e := recordEnv()
	g := New(e)
	rc := &ast.ImplicitRecordCon{
		Fields: []ast.ImplicitRecordField{
			{Label: name.NewLabel("x"), Value: &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit}}},
			{Label: name.NewLabel("y"), Value: &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.BoolLit}}},
		},
	}
	if _, err := g.GenerateExpr(rc, tv("t")); err != nil {
		t.Fatalf("unexpected error constructing record: %v", err)
	}

	access := &ast.ImplicitRecordAccess{
		Record: rc,
		Label:  name.NewLabel("x"),
	}
	if _, err := g.GenerateExpr(access, tv("u")); err != nil {
		t.Fatalf("unexpected error accessing record field: %v", err)
	}
}

func recordEnv() *env.Env {
	e := BaseEnv()
	pointTy := name.NewTypeCon("Point")
	e = e.BindType(pointTy, types.Star, &ast.TypeDef{
		Name: pointTy,
		Record: &ast.RecordDef{
			Fields: []*ast.RecordFieldDef{
				{Label: name.NewLabel("x"), Type: con(IntCon)},
				{Label: name.NewLabel("y"), Type: con(BoolCon)},
			},
		},
	})
	e = e.BindLabel(name.NewLabel("x"), pointTy)
	e = e.BindLabel(name.NewLabel("y"), pointTy)
	return e
}

func TestGenerateNonRecLetWrapsSchemeAroundBody(t *testing.T) {
	g := New(BaseEnv())
	letExpr := &ast.ImplicitLet{
		Defs: []*ast.ImplicitValueDef{
			{Name: vname("id"), Body: &ast.ImplicitLambda{Param: vname("x"), Body: &ast.ImplicitVar{Name: vname("x")}}},
		},
		Body: &ast.ImplicitVar{Name: vname("id")},
	}
	c, err := g.GenerateExpr(letExpr, tv("t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	let, ok := c.(constraint.Let)
	if !ok {
		t.Fatalf("expected a Let, got %T", c)
	}
	if len(let.Schemes) != 1 || len(let.Schemes[0].Flexible) == 0 {
		t.Errorf("expected one generalized scheme, got %+v", let.Schemes)
	}
}

func TestGenerateLetRejectsNonValueFormWithoutAnnotation(t *testing.T) {
	g := New(BaseEnv())
	letExpr := &ast.ImplicitLet{
		Defs: []*ast.ImplicitValueDef{
			{Name: vname("bad"), Body: &ast.ImplicitApp{
				Func: &ast.ImplicitVar{Name: vname("f")},
				Arg:  &ast.ImplicitVar{Name: vname("a")},
			}},
		},
		Body: &ast.ImplicitVar{Name: vname("bad")},
	}
	_, err := g.GenerateExpr(letExpr, tv("t"))
	if err == nil {
		t.Fatal("expected ValueRestriction error")
	}
}

func TestGenerateRecLetBindsAllNamesMonomorphicallyFirst(t *testing.T) {
	g := New(BaseEnv())
	letRec := &ast.ImplicitLetRec{
		Defs: []*ast.ImplicitValueDef{
			{Name: vname("even"), Body: &ast.ImplicitLambda{Param: vname("n"), Body: &ast.ImplicitVar{Name: vname("n")}}},
			{Name: vname("odd"), Body: &ast.ImplicitLambda{Param: vname("n"), Body: &ast.ImplicitVar{Name: vname("even")}}},
		},
		Body: &ast.ImplicitVar{Name: vname("even")},
	}
	c, err := g.GenerateExpr(letRec, tv("t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := c.(constraint.Let)
	if !ok || len(outer.Schemes) != 1 {
		t.Fatalf("expected outer mono-header Let, got %#v", c)
	}
}

func TestInstallTypeDefinitionsBindsAlgebraicConstructors(t *testing.T) {
	e := BaseEnv()
	block := &ast.TypeDefinitions{
		Defs: []*ast.TypeDef{
			{
				Name: name.NewTypeCon("Bool2"),
				Algebraic: &ast.AlgebraicDef{
					Constructors: []*ast.DataConstructorDef{
						{Name: name.NewLabel("T")},
						{Name: name.NewLabel("F")},
					},
				},
			},
		},
	}
	ne, err := installTypeDefinitions(e, block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, lerr := ne.LookupDataConstructor(name.NewLabel("T")); lerr != nil {
		t.Errorf("expected T to be bound: %v", lerr)
	}
}

func TestInstallClassDefinitionRequiresParamInMemberType(t *testing.T) {
	e := BaseEnv()
	cd := &ast.ClassDefinition{
		Name:  name.NewTypeCon("Eq"),
		Param: name.NewTypeVar("a"),
		Members: []ast.ClassMember{
			{Label: name.NewLabel("unrelated"), Type: con(IntCon)},
		},
	}
	_, err := installClassDefinition(e, cd)
	if err == nil {
		t.Fatal("expected InvalidOverloading for a member not mentioning the class parameter")
	}
}

func TestInstallClassDefinitionBindsQualifiedScheme(t *testing.T) {
	e := BaseEnv()
	cd := &ast.ClassDefinition{
		Name:  name.NewTypeCon("Eq"),
		Param: name.NewTypeVar("a"),
		Members: []ast.ClassMember{
			{Label: name.NewLabel("equals"), Type: types.Arrow(source.Undefined, tv("a"), con(BoolCon))},
		},
	}
	ne, err := installClassDefinition(e, cd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scheme, lerr := ne.Lookup(vname("equals"))
	if lerr != nil {
		t.Fatalf("expected equals to be bound as a value: %v", lerr)
	}
	if len(scheme.Predicates) != 1 || scheme.Predicates[0].Class.String() != "Eq" {
		t.Errorf("expected a single Eq predicate, got %+v", scheme.Predicates)
	}
}

func TestGenerateProgramThreadsClassMembersThroughLet(t *testing.T) {
	prog := &ast.ImplicitProgram{
		Blocks: []ast.ImplicitBlock{
			&ast.ClassDefinition{
				Name:  name.NewTypeCon("Show"),
				Param: name.NewTypeVar("a"),
				Members: []ast.ClassMember{
					{Label: name.NewLabel("show"), Type: types.Arrow(source.Undefined, tv("a"), con(StringCon))},
				},
			},
			&ast.ImplicitDefinition{
				Defs: []*ast.ImplicitValueDef{
					{Name: vname("main"), Body: &ast.ImplicitApp{
						Func: &ast.ImplicitVar{Name: vname("show")},
						Arg:  &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.IntLit}},
					}},
				},
			},
		},
	}
	root, ne, err := GenerateProgram(BaseEnv(), prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := root.(constraint.Let); !ok {
		t.Fatalf("expected the program's root constraint to be a Let, got %T", root)
	}
	if _, lerr := ne.LookupClass(name.NewTypeCon("Show")); lerr != nil {
		t.Errorf("expected Show to remain bound in the final environment: %v", lerr)
	}
}

func TestInstallInstanceDefinitionsRejectsOverlap(t *testing.T) {
	e := BaseEnv()
	e, err := installClassDefinition(e, &ast.ClassDefinition{
		Name:  name.NewTypeCon("Eq"),
		Param: name.NewTypeVar("a"),
		Members: []ast.ClassMember{
			{Label: name.NewLabel("equals"), Type: types.Arrow(source.Undefined, tv("a"), con(BoolCon))},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error installing class: %v", err)
	}
	e = e.BindType(name.NewTypeCon("Point"), types.Star, nil)
	g := New(e)
	block := &ast.ImplicitInstanceDefinitions{
		Instances: []*ast.ImplicitInstance{
			{
				Class: name.NewTypeCon("Eq"),
				Head:  name.NewTypeCon("Point"),
				Members: []ast.ImplicitMemberBinding{
					{Label: name.NewLabel("equals"), Body: &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.BoolLit}}},
				},
			},
			{
				Class: name.NewTypeCon("Eq"),
				Head:  name.NewTypeCon("Point"),
				Members: []ast.ImplicitMemberBinding{
					{Label: name.NewLabel("equals"), Body: &ast.ImplicitPrimitive{Value: ast.Literal{Kind: ast.BoolLit}}},
				},
			},
		},
	}
	if _, _, err := g.installInstanceDefinitions(block); err == nil {
		t.Fatal("expected an overlapping instance error")
	}
}
