package ast

import (
	"fmt"
	"strings"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// ExplicitExpr is the expression language of the Explicit AST: every
// binding annotation and every type application is present, filled in
// by the solver's deriver (spec §6).
type ExplicitExpr interface {
	Pos() source.Pos
	String() string
	explicitExprNode()
}

// ExplicitVar is a use of a value name together with the type
// arguments its scheme was instantiated to, one per quantifier in
// declaration order. TypeArgs is empty for a monomorphic binding.
type ExplicitVar struct {
	At       source.Pos
	Name     name.ValueName
	TypeArgs []types.Type
}

func (e *ExplicitVar) explicitExprNode() {}
func (e *ExplicitVar) Pos() source.Pos   { return e.At }
func (e *ExplicitVar) String() string {
	if len(e.TypeArgs) == 0 {
		return e.Name.String()
	}
	args := make([]string, len(e.TypeArgs))
	for i, a := range e.TypeArgs {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s@[%s]", e.Name, strings.Join(args, ", "))
}

// ExplicitLambda always carries its parameter's type.
type ExplicitLambda struct {
	At         source.Pos
	Param      name.ValueName
	Annotation types.Type
	Body       ExplicitExpr
}

func (e *ExplicitLambda) explicitExprNode() {}
func (e *ExplicitLambda) Pos() source.Pos   { return e.At }
func (e *ExplicitLambda) String() string {
	return fmt.Sprintf("\\(%s : %s). %s", e.Param, e.Annotation, e.Body)
}

// ExplicitApp is a one-argument application.
type ExplicitApp struct {
	At   source.Pos
	Func ExplicitExpr
	Arg  ExplicitExpr
}

func (e *ExplicitApp) explicitExprNode() {}
func (e *ExplicitApp) Pos() source.Pos   { return e.At }
func (e *ExplicitApp) String() string    { return fmt.Sprintf("(%s %s)", e.Func, e.Arg) }

// ExplicitMatchArm is one branch of a match expression.
type ExplicitMatchArm struct {
	At      source.Pos
	Pattern Pattern
	Body    ExplicitExpr
}

// ExplicitMatch is pattern-match dispatch over a scrutinee.
type ExplicitMatch struct {
	At        source.Pos
	Scrutinee ExplicitExpr
	Arms      []ExplicitMatchArm
}

func (e *ExplicitMatch) explicitExprNode() {}
func (e *ExplicitMatch) Pos() source.Pos   { return e.At }
func (e *ExplicitMatch) String() string {
	arms := make([]string, len(e.Arms))
	for i, a := range e.Arms {
		arms[i] = fmt.Sprintf("%s -> %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("match %s { %s }", e.Scrutinee, strings.Join(arms, "; "))
}

// ExplicitDataCon is a fully-applied data constructor.
type ExplicitDataCon struct {
	At   source.Pos
	Con  name.LabelName
	Args []ExplicitExpr
}

func (e *ExplicitDataCon) explicitExprNode() {}
func (e *ExplicitDataCon) Pos() source.Pos   { return e.At }
func (e *ExplicitDataCon) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Con, strings.Join(args, ", "))
}

// ExplicitPrimitive is a literal constant.
type ExplicitPrimitive struct {
	At    source.Pos
	Value Literal
}

func (e *ExplicitPrimitive) explicitExprNode() {}
func (e *ExplicitPrimitive) Pos() source.Pos   { return e.At }
func (e *ExplicitPrimitive) String() string    { return e.Value.String() }

// ExplicitRecordField is one field binding in a record construction.
type ExplicitRecordField struct {
	At    source.Pos
	Label name.LabelName
	Value ExplicitExpr
}

// ExplicitRecordCon constructs a record value; TypeName is preserved
// verbatim from source for printing but never used to resolve the
// record's type (spec §9).
type ExplicitRecordCon struct {
	At       source.Pos
	TypeName name.TypeConName
	Fields   []ExplicitRecordField
}

func (e *ExplicitRecordCon) explicitExprNode() {}
func (e *ExplicitRecordCon) Pos() source.Pos   { return e.At }
func (e *ExplicitRecordCon) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Value)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// ExplicitRecordAccess projects a single field out of a record value.
type ExplicitRecordAccess struct {
	At     source.Pos
	Record ExplicitExpr
	Label  name.LabelName
}

func (e *ExplicitRecordAccess) explicitExprNode() {}
func (e *ExplicitRecordAccess) Pos() source.Pos   { return e.At }
func (e *ExplicitRecordAccess) String() string    { return fmt.Sprintf("%s.%s", e.Record, e.Label) }

// ExplicitValueDef is one binding with a fully-resolved scheme.
type ExplicitValueDef struct {
	At          source.Pos
	Quantifiers []name.TypeVarName
	Predicates  []types.ClassPredicate
	Annotation  types.Type
	Name        name.ValueName
	Body        ExplicitExpr
}

// Scheme returns the binding's type scheme.
func (d *ExplicitValueDef) Scheme() *types.TyScheme {
	return &types.TyScheme{Quantifiers: d.Quantifiers, Predicates: d.Predicates, Body: d.Annotation}
}

// ExplicitLet is a local, non-recursive let-binding.
type ExplicitLet struct {
	At   source.Pos
	Defs []*ExplicitValueDef
	Body ExplicitExpr
}

func (e *ExplicitLet) explicitExprNode() {}
func (e *ExplicitLet) Pos() source.Pos   { return e.At }
func (e *ExplicitLet) String() string    { return fmt.Sprintf("let %v in %s", e.Defs, e.Body) }

// ExplicitLetRec is a local, mutually-recursive group of let-bindings.
type ExplicitLetRec struct {
	At   source.Pos
	Defs []*ExplicitValueDef
	Body ExplicitExpr
}

func (e *ExplicitLetRec) explicitExprNode() {}
func (e *ExplicitLetRec) Pos() source.Pos   { return e.At }
func (e *ExplicitLetRec) String() string    { return fmt.Sprintf("let rec %v in %s", e.Defs, e.Body) }

// ExplicitMemberBinding is one method implementation inside an
// instance.
type ExplicitMemberBinding struct {
	At    source.Pos
	Label name.LabelName
	Body  ExplicitExpr
}

// ExplicitInstance is one instance within a mutually-recursive
// InstanceDefinitions group.
type ExplicitInstance struct {
	At      source.Pos
	Class   name.TypeConName
	Head    name.TypeConName
	Params  []name.TypeVarName
	Context []types.ClassPredicate
	Members []ExplicitMemberBinding
}

// ExplicitInstanceDefinitions is a mutually-recursive group of
// instances.
type ExplicitInstanceDefinitions struct {
	At        source.Pos
	Instances []*ExplicitInstance
}

// ExplicitDefinition is a Definition block of fully-typed bindings.
type ExplicitDefinition struct {
	At        source.Pos
	Recursive bool
	Defs      []*ExplicitValueDef
}

// ExplicitBlock is one top-level block of an Explicit program.
type ExplicitBlock interface {
	Pos() source.Pos
	isExplicitBlock()
}

func (*TypeDefinitions) isExplicitBlock()              {}
func (*ExplicitDefinition) isExplicitBlock()           {}
func (b *ExplicitDefinition) Pos() source.Pos          { return b.At }
func (*ClassDefinition) isExplicitBlock()              {}
func (*ExplicitInstanceDefinitions) isExplicitBlock()  {}
func (b *ExplicitInstanceDefinitions) Pos() source.Pos { return b.At }

// ExplicitProgram is an ordered sequence of blocks.
type ExplicitProgram struct {
	Blocks []ExplicitBlock
}

// IsClassFree reports whether p contains no ClassDefinition or
// InstanceDefinitions blocks — the postcondition of elaboration (spec
// §4.5, §6 printer contract).
func (p *ExplicitProgram) IsClassFree() bool {
	for _, b := range p.Blocks {
		switch b.(type) {
		case *ClassDefinition, *ExplicitInstanceDefinitions:
			return false
		}
	}
	return true
}
