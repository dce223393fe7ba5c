package ast

import (
	"fmt"
	"strings"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// ImplicitExpr is the expression language of the Implicit AST: binding
// annotations and type applications may be absent, left for the
// ConstraintGenerator/solver to infer.
type ImplicitExpr interface {
	Pos() source.Pos
	String() string
	implicitExprNode()
}

// ImplicitVar is a use of a value name; its type application (if any)
// is not yet known.
type ImplicitVar struct {
	At   source.Pos
	Name name.ValueName
}

func (e *ImplicitVar) implicitExprNode() {}
func (e *ImplicitVar) Pos() source.Pos   { return e.At }
func (e *ImplicitVar) String() string    { return e.Name.String() }

// ImplicitLambda is a one-argument abstraction; Annotation is nil when
// the parameter's type was not written by the user.
type ImplicitLambda struct {
	At         source.Pos
	Param      name.ValueName
	Annotation types.Type // optional
	Body       ImplicitExpr
}

func (e *ImplicitLambda) implicitExprNode() {}
func (e *ImplicitLambda) Pos() source.Pos   { return e.At }
func (e *ImplicitLambda) String() string {
	if e.Annotation != nil {
		return fmt.Sprintf("\\(%s : %s). %s", e.Param, e.Annotation, e.Body)
	}
	return fmt.Sprintf("\\%s. %s", e.Param, e.Body)
}

// ImplicitApp is a one-argument application.
type ImplicitApp struct {
	At   source.Pos
	Func ImplicitExpr
	Arg  ImplicitExpr
}

func (e *ImplicitApp) implicitExprNode() {}
func (e *ImplicitApp) Pos() source.Pos   { return e.At }
func (e *ImplicitApp) String() string    { return fmt.Sprintf("(%s %s)", e.Func, e.Arg) }

// ImplicitAscription is `e :: τ`.
type ImplicitAscription struct {
	At         source.Pos
	Expr       ImplicitExpr
	Annotation types.Type
}

func (e *ImplicitAscription) implicitExprNode() {}
func (e *ImplicitAscription) Pos() source.Pos   { return e.At }
func (e *ImplicitAscription) String() string    { return fmt.Sprintf("(%s :: %s)", e.Expr, e.Annotation) }

// ImplicitExists introduces fresh flexible variables over Body (spec
// §4.4 "Existential intro").
type ImplicitExists struct {
	At   source.Pos
	Vars []name.TypeVarName
	Body ImplicitExpr
}

func (e *ImplicitExists) implicitExprNode() {}
func (e *ImplicitExists) Pos() source.Pos   { return e.At }
func (e *ImplicitExists) String() string {
	vs := make([]string, len(e.Vars))
	for i, v := range e.Vars {
		vs[i] = v.String()
	}
	return fmt.Sprintf("exists %s. %s", strings.Join(vs, " "), e.Body)
}

// ImplicitMatchArm is one branch of a match expression.
type ImplicitMatchArm struct {
	At      source.Pos
	Pattern Pattern
	Body    ImplicitExpr
}

// ImplicitMatch is pattern-match dispatch over a scrutinee.
type ImplicitMatch struct {
	At        source.Pos
	Scrutinee ImplicitExpr
	Arms      []ImplicitMatchArm
}

func (e *ImplicitMatch) implicitExprNode() {}
func (e *ImplicitMatch) Pos() source.Pos   { return e.At }
func (e *ImplicitMatch) String() string {
	arms := make([]string, len(e.Arms))
	for i, a := range e.Arms {
		arms[i] = fmt.Sprintf("%s -> %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("match %s { %s }", e.Scrutinee, strings.Join(arms, "; "))
}

// ImplicitDataCon is the application of a data constructor to argument
// expressions; arity is checked at generation time (spec
// PartialDataConstructorApplication).
type ImplicitDataCon struct {
	At   source.Pos
	Con  name.LabelName
	Args []ImplicitExpr
}

func (e *ImplicitDataCon) implicitExprNode() {}
func (e *ImplicitDataCon) Pos() source.Pos   { return e.At }
func (e *ImplicitDataCon) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Con, strings.Join(args, ", "))
}

// ImplicitPrimitive is a literal constant.
type ImplicitPrimitive struct {
	At    source.Pos
	Value Literal
}

func (e *ImplicitPrimitive) implicitExprNode() {}
func (e *ImplicitPrimitive) Pos() source.Pos   { return e.At }
func (e *ImplicitPrimitive) String() string    { return e.Value.String() }

// ImplicitRecordField is one field binding in a record construction.
type ImplicitRecordField struct {
	At    source.Pos
	Label name.LabelName
	Value ImplicitExpr
}

// ImplicitRecordCon constructs a record value. TypeName is the advisory
// record-name token carried from source syntax (spec §9 "Record
// constructor name field"); it is preserved but never consulted to
// resolve the record's type — only the first field's label is used for
// that.
type ImplicitRecordCon struct {
	At       source.Pos
	TypeName name.TypeConName // advisory only, may be zero
	Fields   []ImplicitRecordField
}

func (e *ImplicitRecordCon) implicitExprNode() {}
func (e *ImplicitRecordCon) Pos() source.Pos   { return e.At }
func (e *ImplicitRecordCon) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Value)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// ImplicitRecordAccess projects a single field out of a record value.
type ImplicitRecordAccess struct {
	At     source.Pos
	Record ImplicitExpr
	Label  name.LabelName
}

func (e *ImplicitRecordAccess) implicitExprNode() {}
func (e *ImplicitRecordAccess) Pos() source.Pos   { return e.At }
func (e *ImplicitRecordAccess) String() string    { return fmt.Sprintf("%s.%s", e.Record, e.Label) }

// ImplicitValueDef is one binding in a Definition block: `qs, preds |-
// binding = e`, where qs/preds/Annotation come from an explicit
// annotation and are nil/empty when absent.
type ImplicitValueDef struct {
	At          source.Pos
	Quantifiers []name.TypeVarName    // explicit forall, nil if none written
	Predicates  []types.ClassPredicate // from an explicit context, else nil
	Annotation  types.Type             // explicit result type, nil if implicit
	Name        name.ValueName
	Body        ImplicitExpr
}

// HasAnnotation reports whether this definition carries an explicit
// type annotation (distinguishing the two generation rules of spec
// §4.4 "Bindings").
func (d *ImplicitValueDef) HasAnnotation() bool { return d.Annotation != nil }

func (d *ImplicitValueDef) Pos() source.Pos { return d.At }

// ImplicitLet is a local, non-recursive let-binding inside an
// expression.
type ImplicitLet struct {
	At   source.Pos
	Defs []*ImplicitValueDef
	Body ImplicitExpr
}

func (e *ImplicitLet) implicitExprNode() {}
func (e *ImplicitLet) Pos() source.Pos   { return e.At }
func (e *ImplicitLet) String() string    { return fmt.Sprintf("let %v in %s", e.Defs, e.Body) }

// ImplicitLetRec is a local, mutually-recursive group of let-bindings.
type ImplicitLetRec struct {
	At   source.Pos
	Defs []*ImplicitValueDef
	Body ImplicitExpr
}

func (e *ImplicitLetRec) implicitExprNode() {}
func (e *ImplicitLetRec) Pos() source.Pos   { return e.At }
func (e *ImplicitLetRec) String() string    { return fmt.Sprintf("let rec %v in %s", e.Defs, e.Body) }

// ImplicitMemberBinding is one method implementation inside an
// instance.
type ImplicitMemberBinding struct {
	At    source.Pos
	Label name.LabelName
	Body  ImplicitExpr
}

func (m *ImplicitMemberBinding) Pos() source.Pos { return m.At }

// ImplicitInstance is one instance within a mutually-recursive
// InstanceDefinitions group.
type ImplicitInstance struct {
	At      source.Pos
	Class   name.TypeConName
	Head    name.TypeConName // head type constructor being given an instance
	Params  []name.TypeVarName
	Context []types.ClassPredicate
	Members []ImplicitMemberBinding
}

// ImplicitInstanceDefinitions is a mutually-recursive group of
// instances (spec §3).
type ImplicitInstanceDefinitions struct {
	At        source.Pos
	Instances []*ImplicitInstance
}

// ImplicitDefinition is a Definition block: one or more value bindings,
// mutually recursive if Recursive is set.
type ImplicitDefinition struct {
	At        source.Pos
	Recursive bool
	Defs      []*ImplicitValueDef
}

// ImplicitBlock is one top-level block of an Implicit program.
type ImplicitBlock interface {
	Pos() source.Pos
	isImplicitBlock()
}

func (*TypeDefinitions) isImplicitBlock()             {}
func (b *TypeDefinitions) Pos() source.Pos            { return b.At }
func (*ImplicitDefinition) isImplicitBlock()           {}
func (b *ImplicitDefinition) Pos() source.Pos          { return b.At }
func (*ClassDefinition) isImplicitBlock()              {}
func (b *ClassDefinition) Pos() source.Pos             { return b.At }
func (*ImplicitInstanceDefinitions) isImplicitBlock()  {}
func (b *ImplicitInstanceDefinitions) Pos() source.Pos { return b.At }

// ImplicitProgram is an ordered sequence of blocks (spec §3).
type ImplicitProgram struct {
	Blocks []ImplicitBlock
}
