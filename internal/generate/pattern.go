package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// Fragment is the result of generating a pattern against an expected
// type: the bindings it introduces (Gamma), the ordered variable names
// bound (Vars, for linearity checks), and the constraint it imposes
// (spec §4.4 "Pattern fragments").
type Fragment struct {
	Gamma      map[string]types.Type
	Vars       []name.ValueName
	Constraint constraint.Constraint
}

func emptyFragment() Fragment {
	return Fragment{Gamma: map[string]types.Type{}, Constraint: constraint.True{}}
}

// GeneratePattern builds the Fragment for pattern p matched against
// expected type t.
func (g *Generator) GeneratePattern(p ast.Pattern, t types.Type) (Fragment, *errs.Report) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return emptyFragment(), nil

	case *ast.PrimitivePattern:
		lit := literalType(pat.Value, pat.At)
		return Fragment{
			Gamma:      map[string]types.Type{},
			Constraint: constraint.Eq{At: pat.At, T1: t, T2: lit},
		}, nil

	case *ast.VarPattern:
		v := pat.Name
		return Fragment{
			Gamma:      map[string]types.Type{v.String(): t},
			Vars:       []name.ValueName{v},
			Constraint: constraint.True{},
		}, nil

	case *ast.OrPattern:
		return g.generateOrPattern(pat, t)

	case *ast.AndPattern:
		return g.generateAndPattern(pat, t)

	case *ast.AsPattern:
		inner, err := g.GeneratePattern(pat.Inner, t)
		if err != nil {
			return Fragment{}, err
		}
		if _, exists := inner.Gamma[pat.Alias.String()]; exists {
			return Fragment{}, errs.Newf(errs.NonLinearPattern, "generate", pat.At,
				"alias %s conflicts with a name already bound in this pattern", pat.Alias)
		}
		inner.Gamma[pat.Alias.String()] = t
		inner.Vars = append(inner.Vars, pat.Alias)
		return inner, nil

	case *ast.TypedPattern:
		if err := CheckWFType(g.env, pat.Annotation, pat.At); err != nil {
			return Fragment{}, err
		}
		inner, err := g.GeneratePattern(pat.Inner, pat.Annotation)
		if err != nil {
			return Fragment{}, err
		}
		inner.Constraint = constraint.And(inner.Constraint, constraint.Eq{At: pat.At, T1: t, T2: pat.Annotation})
		return inner, nil

	case *ast.ConstructorPattern:
		return g.generateConstructorPattern(pat, t)

	default:
		return Fragment{}, errs.Newf(errs.InvalidDisjunctionPattern, "generate", p.Pos(), "unrecognized pattern")
	}
}

func (g *Generator) generateOrPattern(pat *ast.OrPattern, t types.Type) (Fragment, *errs.Report) {
	if len(pat.Alternatives) == 0 {
		return Fragment{}, errs.Newf(errs.InvalidDisjunctionPattern, "generate", pat.At, "empty disjunction pattern")
	}
	frags := make([]Fragment, len(pat.Alternatives))
	for i, alt := range pat.Alternatives {
		f, err := g.GeneratePattern(alt, t)
		if err != nil {
			return Fragment{}, err
		}
		frags[i] = f
	}
	first := frags[0]
	for i := 1; i < len(frags); i++ {
		if len(frags[i].Gamma) != len(first.Gamma) {
			return Fragment{}, errs.Newf(errs.PatternsMustBindSameVariables, "generate", pat.At,
				"disjunctive pattern branches must bind identical name sets")
		}
		for k, ty := range first.Gamma {
			other, ok := frags[i].Gamma[k]
			if !ok {
				return Fragment{}, errs.Newf(errs.PatternsMustBindSameVariables, "generate", pat.At,
					"branch %d is missing binding %s", i, k)
			}
			_ = other
			_ = ty
		}
	}
	cs := make([]constraint.Constraint, len(frags))
	for i, f := range frags {
		cs[i] = f.Constraint
	}
	// Every branch binds the same names; unify their types pairwise
	// against the first branch's types so a single Gamma can be reported.
	merged := map[string]types.Type{}
	eqs := []constraint.Constraint{}
	for k, ty := range first.Gamma {
		merged[k] = ty
		for i := 1; i < len(frags); i++ {
			eqs = append(eqs, constraint.Eq{At: pat.At, T1: ty, T2: frags[i].Gamma[k]})
		}
	}
	return Fragment{
		Gamma:      merged,
		Vars:       first.Vars,
		Constraint: constraint.And(append(cs, eqs...)...),
	}, nil
}

func (g *Generator) generateAndPattern(pat *ast.AndPattern, t types.Type) (Fragment, *errs.Report) {
	merged := map[string]types.Type{}
	var vars []name.ValueName
	var cs []constraint.Constraint
	for _, sub := range pat.Patterns {
		f, err := g.GeneratePattern(sub, t)
		if err != nil {
			return Fragment{}, err
		}
		for k, ty := range f.Gamma {
			if _, exists := merged[k]; exists {
				return Fragment{}, errs.Newf(errs.NonLinearPattern, "generate", pat.At,
					"name %s is bound twice in this pattern", k)
			}
			merged[k] = ty
		}
		vars = append(vars, f.Vars...)
		cs = append(cs, f.Constraint)
	}
	return Fragment{Gamma: merged, Vars: vars, Constraint: constraint.And(cs...)}, nil
}

func (g *Generator) generateConstructorPattern(pat *ast.ConstructorPattern, t types.Type) (Fragment, *errs.Report) {
	scheme, err := g.env.LookupDataConstructor(pat.Con)
	if err != nil {
		return Fragment{}, err
	}
	sigma := map[string]types.Type{}
	for _, q := range scheme.Quantifiers {
		sigma[q.String()] = &types.TVar{At: pat.At, Name: g.freshTypeVar("t")}
	}
	freshBody := types.Substitute(sigma, scheme.Body)
	ins, out := types.DestructNTyArrow(freshBody)
	if len(ins) != len(pat.Args) {
		return Fragment{}, errs.Newf(errs.NotEnoughPatternArgts, "generate", pat.At,
			"constructor %s expects %d argument(s), got %d", pat.Con, len(ins), len(pat.Args))
	}
	merged := map[string]types.Type{}
	var vars []name.ValueName
	cs := []constraint.Constraint{constraint.Eq{At: pat.At, T1: t, T2: out}}
	for i, argPat := range pat.Args {
		f, err := g.GeneratePattern(argPat, ins[i])
		if err != nil {
			return Fragment{}, err
		}
		for k, ty := range f.Gamma {
			if _, exists := merged[k]; exists {
				return Fragment{}, errs.Newf(errs.NonLinearPattern, "generate", pat.At,
					"name %s is bound twice in this pattern", k)
			}
			merged[k] = ty
		}
		vars = append(vars, f.Vars...)
		cs = append(cs, f.Constraint)
	}
	return Fragment{Gamma: merged, Vars: vars, Constraint: constraint.And(cs...)}, nil
}
