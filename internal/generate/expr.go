package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// GenerateExpr produces [[e : t]], the constraint whose satisfiability
// is equivalent to e having type t (spec §4.4).
func (g *Generator) GenerateExpr(e ast.ImplicitExpr, t types.Type) (constraint.Constraint, *errs.Report) {
	switch expr := e.(type) {
	case *ast.ImplicitVar:
		return constraint.InstanceOf{At: expr.At, Name: expr.Name, T: t, Occurrence: expr}, nil

	case *ast.ImplicitLambda:
		x1 := &types.TVar{At: expr.At, Name: g.freshTypeVar("a")}
		x2 := &types.TVar{At: expr.At, Name: g.freshTypeVar("r")}
		var paramTy types.Type = x1
		if expr.Annotation != nil {
			if err := CheckWFType(g.env, expr.Annotation, expr.At); err != nil {
				return nil, err
			}
			paramTy = expr.Annotation
		}
		bodyC, err := g.GenerateExpr(expr.Body, x2)
		if err != nil {
			return nil, err
		}
		header := constraint.MonoHeader(expr.Param, paramTy, bodyC, expr)
		return constraint.Exists{
			Vars: []name.TypeVarName{x1.Name, x2.Name},
			Inner: constraint.And(
				constraint.Let{Schemes: []constraint.SchemeConstraint{header}, Body: constraint.True{}},
				constraint.Eq{At: expr.At, T1: t, T2: types.Arrow(expr.At, paramTy, x2)},
			),
		}, nil

	case *ast.ImplicitApp:
		x := &types.TVar{At: expr.At, Name: g.freshTypeVar("a")}
		c1, err := g.GenerateExpr(expr.Func, types.Arrow(expr.At, x, t))
		if err != nil {
			return nil, err
		}
		c2, err := g.GenerateExpr(expr.Arg, x)
		if err != nil {
			return nil, err
		}
		return constraint.Exists{Vars: []name.TypeVarName{x.Name}, Inner: constraint.And(c1, c2)}, nil

	case *ast.ImplicitAscription:
		if err := CheckWFType(g.env, expr.Annotation, expr.At); err != nil {
			return nil, err
		}
		inner, err := g.GenerateExpr(expr.Expr, expr.Annotation)
		if err != nil {
			return nil, err
		}
		return constraint.And(constraint.Eq{At: expr.At, T1: t, T2: expr.Annotation}, inner), nil

	case *ast.ImplicitExists:
		inner, err := g.GenerateExpr(expr.Body, t)
		if err != nil {
			return nil, err
		}
		return constraint.Exists{Vars: expr.Vars, Inner: inner}, nil

	case *ast.ImplicitMatch:
		return g.generateMatch(expr, t)

	case *ast.ImplicitDataCon:
		return g.generateDataCon(expr, t)

	case *ast.ImplicitPrimitive:
		return constraint.Eq{At: expr.At, T1: t, T2: literalType(expr.Value, expr.At)}, nil

	case *ast.ImplicitRecordCon:
		return g.generateRecordCon(expr, t)

	case *ast.ImplicitRecordAccess:
		return g.generateRecordAccess(expr, t)

	case *ast.ImplicitLet:
		return g.generateNonRecLet(expr.Defs, expr.Body, t)

	case *ast.ImplicitLetRec:
		return g.generateRecLet(expr.Defs, expr.Body, t)

	default:
		return nil, errs.Newf(errs.UnboundIdentifier, "generate", e.Pos(), "unrecognized expression form")
	}
}

func (g *Generator) generateMatch(expr *ast.ImplicitMatch, t types.Type) (constraint.Constraint, *errs.Report) {
	x := &types.TVar{At: expr.At, Name: g.freshTypeVar("s")}
	scrutC, err := g.GenerateExpr(expr.Scrutinee, x)
	if err != nil {
		return nil, err
	}
	var arms []constraint.Constraint
	for _, arm := range expr.Arms {
		frag, ferr := g.GeneratePattern(arm.Pattern, x)
		if ferr != nil {
			return nil, ferr
		}
		bodyC, berr := g.GenerateExpr(arm.Body, t)
		if berr != nil {
			return nil, berr
		}
		scheme := constraint.SchemeConstraint{Inner: bodyC, Header: map[string]types.Type{}}
		for k, ty := range frag.Gamma {
			scheme.Header[k] = ty
		}
		arms = append(arms, constraint.And(frag.Constraint, constraint.Let{Schemes: []constraint.SchemeConstraint{scheme}, Body: constraint.True{}}))
	}
	return constraint.Exists{Vars: []name.TypeVarName{x.Name}, Inner: constraint.And(append([]constraint.Constraint{scrutC}, arms...)...)}, nil
}

func (g *Generator) generateDataCon(expr *ast.ImplicitDataCon, t types.Type) (constraint.Constraint, *errs.Report) {
	scheme, err := g.env.LookupDataConstructor(expr.Con)
	if err != nil {
		return nil, err
	}
	sigma := map[string]types.Type{}
	freshVars := make([]name.TypeVarName, len(scheme.Quantifiers))
	for i, q := range scheme.Quantifiers {
		fv := g.freshTypeVar("t")
		freshVars[i] = fv
		sigma[q.String()] = &types.TVar{At: expr.At, Name: fv}
	}
	freshBody := types.Substitute(sigma, scheme.Body)
	ins, out := types.DestructNTyArrow(freshBody)
	if len(expr.Args) != len(ins) {
		if len(expr.Args) < len(ins) {
			return nil, errs.Newf(errs.PartialDataConstructorApplication, "generate", expr.At,
				"constructor %s applied to %d of %d argument(s)", expr.Con, len(expr.Args), len(ins))
		}
		return nil, errs.Newf(errs.InvalidDataConstructorApplication, "generate", expr.At,
			"constructor %s applied to too many arguments", expr.Con)
	}
	cs := []constraint.Constraint{constraint.Eq{At: expr.At, T1: t, T2: out}}
	for i, a := range expr.Args {
		c, aerr := g.GenerateExpr(a, ins[i])
		if aerr != nil {
			return nil, aerr
		}
		cs = append(cs, c)
	}
	if len(freshVars) == 0 {
		return constraint.And(cs...), nil
	}
	return constraint.Exists{Vars: freshVars, Inner: constraint.And(cs...)}, nil
}
