package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// isValueForm reports whether e is a syntactic value: a lambda, a
// variable, a literal, or a data/record construction over value-form
// subexpressions. Only value-form bindings may be generalized without
// an explicit annotation (spec §4.4 "value restriction", GEN022).
func isValueForm(e ast.ImplicitExpr) bool {
	switch v := e.(type) {
	case *ast.ImplicitLambda, *ast.ImplicitVar, *ast.ImplicitPrimitive:
		return true
	case *ast.ImplicitDataCon:
		for _, a := range v.Args {
			if !isValueForm(a) {
				return false
			}
		}
		return true
	case *ast.ImplicitRecordCon:
		for _, f := range v.Fields {
			if !isValueForm(f.Value) {
				return false
			}
		}
		return true
	case *ast.ImplicitAscription:
		return isValueForm(v.Expr)
	default:
		return false
	}
}

// genValueDef builds the SchemeConstraint for one binding, per the two
// generation rules of spec §4.4 "Bindings": an explicitly annotated
// definition is checked at its declared (rigid) scheme; an implicit one
// is generalized over the flexible variables its body introduces,
// subject to the value restriction.
func (g *Generator) genValueDef(def *ast.ImplicitValueDef) (constraint.SchemeConstraint, *errs.Report) {
	if def.HasAnnotation() {
		if err := CheckWFType(g.env, def.Annotation, def.At); err != nil {
			return constraint.SchemeConstraint{}, err
		}
		if err := CheckCorrectContext(g.env, def.Quantifiers, def.Predicates, def.At); err != nil {
			return constraint.SchemeConstraint{}, err
		}
		inner, err := g.GenerateExpr(def.Body, def.Annotation)
		if err != nil {
			return constraint.SchemeConstraint{}, err
		}
		return constraint.SchemeConstraint{
			Rigid:       def.Quantifiers,
			Predicates:  def.Predicates,
			Inner:       inner,
			Header:      map[string]types.Type{def.Name.String(): def.Annotation},
			Occurrences: map[string]constraint.SchemeOrigin{def.Name.String(): def},
		}, nil
	}

	if !isValueForm(def.Body) {
		return constraint.SchemeConstraint{}, errs.Newf(errs.ValueRestriction, "generate", def.At,
			"%s has no type annotation and is not a syntactic value; it cannot be generalized", def.Name)
	}
	x1 := g.freshTypeVar("a")
	inner, err := g.GenerateExpr(def.Body, &types.TVar{At: def.At, Name: x1})
	if err != nil {
		return constraint.SchemeConstraint{}, err
	}
	return constraint.SchemeConstraint{
		Flexible:    []name.TypeVarName{x1},
		Inner:       inner,
		Header:      map[string]types.Type{def.Name.String(): &types.TVar{At: def.At, Name: x1}},
		Occurrences: map[string]constraint.SchemeOrigin{def.Name.String(): def},
	}, nil
}

func (g *Generator) generateNonRecLet(defs []*ast.ImplicitValueDef, body ast.ImplicitExpr, t types.Type) (constraint.Constraint, *errs.Report) {
	schemes := make([]constraint.SchemeConstraint, len(defs))
	for i, d := range defs {
		s, err := g.genValueDef(d)
		if err != nil {
			return nil, err
		}
		schemes[i] = s
	}
	bodyC, err := g.GenerateExpr(body, t)
	if err != nil {
		return nil, err
	}
	return constraint.Let{Schemes: schemes, Body: bodyC}, nil
}

// recGroup is the shared core of a mutually-recursive binding group's
// two-level letrec desugaring (spec §4.4 "Bindings"): an inner Let
// binds each name to a fresh monotype so every recursive occurrence
// within the group sees a single, non-generalized type, and the
// members' bodies are checked against those monotypes; the caller then
// wraps an outer Let that generalizes those same names around whatever
// continuation follows (a local body expression, or the rest of the
// program for a top-level letrec block).
func (g *Generator) recGroup(defs []*ast.ImplicitValueDef) (monoHeader constraint.SchemeConstraint, memberCs []constraint.Constraint, outerSchemes []constraint.SchemeConstraint, err *errs.Report) {
	monoVars := make([]name.TypeVarName, len(defs))
	for i := range defs {
		monoVars[i] = g.freshTypeVar("rec")
	}
	monoHeader = constraint.SchemeConstraint{Header: map[string]types.Type{}, Inner: constraint.True{}}
	for i, d := range defs {
		monoHeader.Header[d.Name.String()] = &types.TVar{At: d.At, Name: monoVars[i]}
	}

	memberCs = make([]constraint.Constraint, len(defs))
	for i, d := range defs {
		if d.HasAnnotation() {
			if werr := CheckWFType(g.env, d.Annotation, d.At); werr != nil {
				return monoHeader, nil, nil, werr
			}
			c, cerr := g.GenerateExpr(d.Body, d.Annotation)
			if cerr != nil {
				return monoHeader, nil, nil, cerr
			}
			eq := constraint.Eq{At: d.At, T1: &types.TVar{At: d.At, Name: monoVars[i]}, T2: d.Annotation}
			memberCs[i] = constraint.And(eq, c)
			continue
		}
		if !isValueForm(d.Body) {
			return monoHeader, nil, nil, errs.Newf(errs.ValueRestriction, "generate", d.At,
				"%s has no type annotation and is not a syntactic value; it cannot be generalized", d.Name)
		}
		c, cerr := g.GenerateExpr(d.Body, &types.TVar{At: d.At, Name: monoVars[i]})
		if cerr != nil {
			return monoHeader, nil, nil, cerr
		}
		memberCs[i] = c
	}

	outerSchemes = make([]constraint.SchemeConstraint, len(defs))
	for i, d := range defs {
		if d.HasAnnotation() {
			outerSchemes[i] = constraint.SchemeConstraint{
				Rigid:       d.Quantifiers,
				Predicates:  d.Predicates,
				Inner:       constraint.True{},
				Header:      map[string]types.Type{d.Name.String(): d.Annotation},
				Occurrences: map[string]constraint.SchemeOrigin{d.Name.String(): d},
			}
			continue
		}
		outerSchemes[i] = constraint.SchemeConstraint{
			Flexible:    []name.TypeVarName{monoVars[i]},
			Inner:       constraint.True{},
			Header:      map[string]types.Type{d.Name.String(): &types.TVar{At: d.At, Name: monoVars[i]}},
			Occurrences: map[string]constraint.SchemeOrigin{d.Name.String(): d},
		}
	}
	return monoHeader, memberCs, outerSchemes, nil
}

func (g *Generator) generateRecLet(defs []*ast.ImplicitValueDef, body ast.ImplicitExpr, t types.Type) (constraint.Constraint, *errs.Report) {
	monoHeader, memberCs, outerSchemes, err := g.recGroup(defs)
	if err != nil {
		return nil, err
	}
	bodyC, berr := g.GenerateExpr(body, t)
	if berr != nil {
		return nil, berr
	}
	outer := constraint.Let{Schemes: outerSchemes, Body: bodyC}
	return constraint.Let{
		Schemes: []constraint.SchemeConstraint{monoHeader},
		Body:    constraint.And(append(memberCs, outer)...),
	}, nil
}
