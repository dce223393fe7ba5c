package elaborate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// rewriteExpr rewrites every occurrence of an overloaded class member
// into an application of its accessor to the dictionary that witnesses
// the member's instantiation, leaving every other node structurally
// unchanged (but still recursed into, since an overloaded use can be
// nested arbitrarily deep). locals maps a (class, rigid variable) pair
// to the in-scope dictionary parameter covering it, populated by the
// enclosing instance's superclass and context parameters and by the
// predicates of any enclosing definition (rewriteDefs); it is empty
// where neither applies. Grounded on the teacher's
// DictElaborator.transformExpr switch, generalized from a fixed
// binary/unary-operator table to arbitrary class members.
func (el *Elaborator) rewriteExpr(e ast.ExplicitExpr, locals map[string]name.ValueName) (ast.ExplicitExpr, *errs.Report) {
	switch v := e.(type) {
	case *ast.ExplicitVar:
		class, isMember := el.memberClass[v.Name.String()]
		if !isMember {
			return v, nil
		}
		if len(v.TypeArgs) == 0 {
			return nil, errs.Newf(errs.UnresolvedOverloading, "elaborate", v.At,
				"overloaded symbol %s used with no type argument to resolve its instance", v.Name)
		}
		dict, err := el.resolveDict(class, v.TypeArgs[0], locals)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitApp{At: v.At, Func: &ast.ExplicitVar{At: v.At, Name: v.Name, TypeArgs: v.TypeArgs}, Arg: dict}, nil

	case *ast.ExplicitLambda:
		body, err := el.rewriteExpr(v.Body, locals)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitLambda{At: v.At, Param: v.Param, Annotation: v.Annotation, Body: body}, nil

	case *ast.ExplicitApp:
		fn, err := el.rewriteExpr(v.Func, locals)
		if err != nil {
			return nil, err
		}
		arg, aerr := el.rewriteExpr(v.Arg, locals)
		if aerr != nil {
			return nil, aerr
		}
		return &ast.ExplicitApp{At: v.At, Func: fn, Arg: arg}, nil

	case *ast.ExplicitMatch:
		scrut, err := el.rewriteExpr(v.Scrutinee, locals)
		if err != nil {
			return nil, err
		}
		arms := make([]ast.ExplicitMatchArm, len(v.Arms))
		for i, a := range v.Arms {
			body, berr := el.rewriteExpr(a.Body, locals)
			if berr != nil {
				return nil, berr
			}
			arms[i] = ast.ExplicitMatchArm{At: a.At, Pattern: a.Pattern, Body: body}
		}
		return &ast.ExplicitMatch{At: v.At, Scrutinee: scrut, Arms: arms}, nil

	case *ast.ExplicitDataCon:
		args := make([]ast.ExplicitExpr, len(v.Args))
		for i, a := range v.Args {
			r, err := el.rewriteExpr(a, locals)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return &ast.ExplicitDataCon{At: v.At, Con: v.Con, Args: args}, nil

	case *ast.ExplicitPrimitive:
		return v, nil

	case *ast.ExplicitRecordCon:
		fields := make([]ast.ExplicitRecordField, len(v.Fields))
		for i, f := range v.Fields {
			val, err := el.rewriteExpr(f.Value, locals)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.ExplicitRecordField{At: f.At, Label: f.Label, Value: val}
		}
		return &ast.ExplicitRecordCon{At: v.At, TypeName: v.TypeName, Fields: fields}, nil

	case *ast.ExplicitRecordAccess:
		rec, err := el.rewriteExpr(v.Record, locals)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitRecordAccess{At: v.At, Record: rec, Label: v.Label}, nil

	case *ast.ExplicitLet:
		defs, err := el.rewriteDefs(v.Defs, locals)
		if err != nil {
			return nil, err
		}
		body, berr := el.rewriteExpr(v.Body, locals)
		if berr != nil {
			return nil, berr
		}
		return &ast.ExplicitLet{At: v.At, Defs: defs, Body: body}, nil

	case *ast.ExplicitLetRec:
		defs, err := el.rewriteDefs(v.Defs, locals)
		if err != nil {
			return nil, err
		}
		body, berr := el.rewriteExpr(v.Body, locals)
		if berr != nil {
			return nil, berr
		}
		return &ast.ExplicitLetRec{At: v.At, Defs: defs, Body: body}, nil

	default:
		return nil, errs.Newf(errs.UnresolvedOverloading, "elaborate", e.Pos(), "unrecognized expression form")
	}
}

// rewriteDefs rewrites each def's body against locals (the enclosing
// instance's dictionary parameters, or nil at the top level), and — for
// any def whose own scheme carries predicates — additionally abstracts
// its body over one fresh dictionary parameter per predicate, the same
// way instanceDict abstracts over superclass and context parameters
// (spec §8 scenario S4: an ordinary binding like `f :: forall a. [Ord a]
// => a -> a -> bool; f x y = lt x y` needs its own Ord dictionary in
// scope to resolve `lt`, not only instance methods and class
// accessors). Also asserts each def's name into the ledger (spec §4.6,
// I5): a def with no predicates asserts Normal, rejecting a later reuse
// of a name already bound Overloaded by a class member (scenario S5).
func (el *Elaborator) rewriteDefs(defs []*ast.ExplicitValueDef, locals map[string]name.ValueName) ([]*ast.ExplicitValueDef, *errs.Report) {
	out := make([]*ast.ExplicitValueDef, len(defs))
	for i, d := range defs {
		if err := el.ledger.BindScheme(d.Name, d.Predicates); err != nil {
			return nil, err
		}

		defLocals, params := dictParamsFor(d.Predicates, locals)
		body, err := el.rewriteExpr(d.Body, defLocals)
		if err != nil {
			return nil, err
		}
		for j := len(params) - 1; j >= 0; j-- {
			body = &ast.ExplicitLambda{At: d.At, Param: params[j].name, Annotation: params[j].ty, Body: body}
		}

		annotation := d.Annotation
		if len(params) > 0 {
			paramTypes := make([]types.Type, len(params))
			for j, p := range params {
				paramTypes[j] = p.ty
			}
			annotation = types.NTyArrow(d.At, paramTypes, d.Annotation)
		}

		out[i] = &ast.ExplicitValueDef{
			At: d.At, Quantifiers: d.Quantifiers, Predicates: d.Predicates,
			Annotation: annotation, Name: d.Name, Body: body,
		}
	}
	return out, nil
}
