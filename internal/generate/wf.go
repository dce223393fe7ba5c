package generate

import (
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// CheckWFType verifies that t is well-kinded against Star in e, per
// spec §4.7. Quantified/flexible variables are assumed Star-kinded;
// only type-constructor applications are checked against the
// environment's recorded arities.
func CheckWFType(e *env.Env, t types.Type, pos source.Pos) *errs.Report {
	_, err := checkWFType(e, t, types.Star, pos)
	return err
}

func checkWFType(e *env.Env, t types.Type, expected types.Kind, pos source.Pos) (types.Kind, *errs.Report) {
	switch v := t.(type) {
	case *types.TVar:
		return types.Star, nil
	case *types.TApp:
		k, err := CheckTypeConstructorApplication(e, v, pos)
		if err != nil {
			return nil, err
		}
		if !k.Equals(expected) {
			return nil, errs.Newf(errs.IncompatibleKinds, "generate", pos,
				"expected kind %s, got %s for type %s", expected, k, t)
		}
		return k, nil
	default:
		return nil, errs.Newf(errs.IllKindedType, "generate", pos, "ill-kinded type: %s", t)
	}
}

// CheckTypeConstructorApplication checks that TApp's constructor is
// bound, that it is applied to as many arguments as its kind accepts,
// and that each argument is itself well-kinded (spec §4.7).
func CheckTypeConstructorApplication(e *env.Env, app *types.TApp, pos source.Pos) (types.Kind, *errs.Report) {
	// The built-in arrow is arity-2 and always well-kinded if its
	// argument types are.
	if app.Con.String() == types.ArrowCon {
		if len(app.Args) != 2 {
			return nil, errs.Newf(errs.IllKindedType, "generate", pos, "-> expects exactly 2 arguments")
		}
		for _, a := range app.Args {
			if _, err := checkWFType(e, a, types.Star, pos); err != nil {
				return nil, err
			}
		}
		return types.Star, nil
	}

	k, err := e.LookupTypeKind(app.Con)
	if err != nil {
		return nil, errs.Newf(errs.UnboundTypeVariable, "generate", pos, "unbound type constructor: %s", app.Con)
	}
	cur := k
	for _, a := range app.Args {
		arrow, ok := cur.(types.KArrow)
		if !ok {
			return nil, errs.Newf(errs.IncompatibleKinds, "generate", pos,
				"type constructor %s applied to too many arguments", app.Con)
		}
		if _, err := checkWFType(e, a, arrow.From, pos); err != nil {
			return nil, err
		}
		cur = arrow.To
	}
	return cur, nil
}

// CheckEquivalentKind raises IncompatibleKinds unless k1 and k2 are
// identical.
func CheckEquivalentKind(k1, k2 types.Kind, pos source.Pos) *errs.Report {
	if !k1.Equals(k2) {
		return errs.Newf(errs.IncompatibleKinds, "generate", pos, "incompatible kinds: %s vs %s", k1, k2)
	}
	return nil
}

// CheckEqualTypes raises IncompatibleTypes unless t1 and t2 are
// alpha-equivalent.
func CheckEqualTypes(t1, t2 types.Type, pos source.Pos) *errs.Report {
	if !types.Equivalent(t1, t2) {
		return errs.Newf(errs.IncompatibleTypes, "generate", pos, "incompatible types: %s vs %s", t1, t2)
	}
	return nil
}

// CheckCorrectContext verifies a context (list of predicates) against a
// set of in-scope quantifiers: every predicate's variable must be
// quantified, every named class must exist, and the context must be
// canonical (I3: no two predicates over the same variable name classes
// where one is a superclass of the other, spec §3, §4.5, B3).
func CheckCorrectContext(e *env.Env, quantifiers []name.TypeVarName, preds []types.ClassPredicate, pos source.Pos) *errs.Report {
	inScope := map[string]bool{}
	for _, q := range quantifiers {
		inScope[q.String()] = true
	}
	for _, p := range preds {
		if !inScope[p.Var.String()] {
			return errs.Newf(errs.UnboundTypeVariable, "generate", pos,
				"predicate %s refers to a variable not quantified in this scheme", p)
		}
		if _, err := e.LookupClass(p.Class); err != nil {
			return errs.Newf(errs.UnboundClass, "generate", pos, "unbound class: %s", p.Class)
		}
	}
	for i := range preds {
		for j := i + 1; j < len(preds); j++ {
			if !preds[i].Var.Equal(preds[j].Var) {
				continue
			}
			if e.IsSuperclass(preds[i].Class, preds[j].Class) || e.IsSuperclass(preds[j].Class, preds[i].Class) {
				return errs.Newf(errs.TheseTwoClassesMustNotBeInTheSameContext, "elaborate", pos,
					"%s and %s must not both appear in the same context for %s", preds[i].Class, preds[j].Class, preds[i].Var)
			}
		}
	}
	return nil
}
