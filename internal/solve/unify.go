package solve

import (
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// unify extends sub in place so that applying it to t1 and t2 yields
// equal types, or reports UnsatisfiableEquation. Grounded on the
// teacher's Unifier.Unify (internal/types/unification.go), trimmed to
// the first-order TVar/TApp term language spec.md defines — no rows,
// no kinds, no effect rows.
func unify(sub constraint.Substitution, t1, t2 types.Type, at source.Pos) *errs.Report {
	t1 = sub.Apply(t1)
	t2 = sub.Apply(t2)

	if v1, ok := t1.(*types.TVar); ok {
		if v2, ok := t2.(*types.TVar); ok && v1.Name.Equal(v2.Name) {
			return nil
		}
		return bind(sub, v1.Name.String(), t2, at)
	}
	if v2, ok := t2.(*types.TVar); ok {
		return bind(sub, v2.Name.String(), t1, at)
	}

	app1, ok1 := t1.(*types.TApp)
	app2, ok2 := t2.(*types.TApp)
	if !ok1 || !ok2 {
		return errs.Newf(errs.UnsatisfiableEquation, "solve", at, "cannot unify %s with %s", t1, t2)
	}
	if !app1.Con.Equal(app2.Con) || len(app1.Args) != len(app2.Args) {
		return errs.Newf(errs.UnsatisfiableEquation, "solve", at, "cannot unify %s with %s", t1, t2)
	}
	for i := range app1.Args {
		if err := unify(sub, app1.Args[i], app2.Args[i], at); err != nil {
			return err
		}
	}
	return nil
}

// bind records varName -> t in sub, rejecting a cyclic binding. sub is
// kept in solved form (no key ever appears free in another entry's
// value) so that a single Substitution.Apply call always sees through a
// chain of bindings — Apply itself only substitutes once, not to a
// fixpoint.
func bind(sub constraint.Substitution, varName string, t types.Type, at source.Pos) *errs.Report {
	if tv, ok := t.(*types.TVar); ok && tv.Name.String() == varName {
		return nil
	}
	if occurs(varName, t) {
		return errs.Newf(errs.UnsatisfiableEquation, "solve", at,
			"occurs check failed: %s occurs in %s", varName, t)
	}
	one := map[string]types.Type{varName: t}
	for k, existing := range sub {
		sub[k] = types.Substitute(one, existing)
	}
	sub[varName] = t
	return nil
}

// occurs reports whether varName appears free in t.
func occurs(varName string, t types.Type) bool {
	switch v := t.(type) {
	case *types.TVar:
		return v.Name.String() == varName
	case *types.TApp:
		for _, a := range v.Args {
			if occurs(varName, a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
