// Package solve implements the reference ConstraintSolver: a single
// mutable substitution threaded through a recursive walk of the
// constraint tree, a persistent scheme environment grounded on the
// teacher's TypeEnv (internal/types/env.go), and a Derive function that
// reconstructs a fully-typed Explicit program from the solved state
// without re-running the generator (spec §4.3, §6).
package solve

import (
	"fmt"
	"sort"

	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// Solver is the reference implementation of constraint.Solver.
type Solver struct{}

// New returns a ready-to-use Solver.
func New() *Solver { return &Solver{} }

// state carries everything a solve pass accumulates: the substitution,
// a fresh-variable counter distinct from the generator's own (so a
// solver-minted instantiation variable can never collide with one the
// ConstraintGenerator already produced), and the two occurrence maps
// Derive needs afterwards.
type state struct {
	sub     constraint.Substitution
	counter int

	// instOf records, per InstanceOf occurrence, the fresh type
	// variables its scheme was instantiated to, in quantifier order.
	// Populated at discharge time with raw (still-flexible) variables;
	// Apply is deferred to Derive time since the substitution keeps
	// growing after the occurrence is discharged.
	instOf map[*ast.ImplicitVar][]types.Type

	// schemeOf records, per SchemeOrigin, the final scheme the solver
	// assigned to that binding — either generalized (Flexible), fixed
	// (Rigid), or a trivial zero-quantifier scheme (a lambda parameter,
	// which is a SchemeOrigin too since it implements Pos()).
	schemeOf map[constraint.SchemeOrigin]*types.TyScheme

	derived []constraint.DerivedScheme
}

// fresh mints an instantiation variable. The "$" prefix is deliberately
// unlike the generator's own "<letter><n>" fresh-variable names
// (internal/generate/fresh.go) so the two counters can never collide —
// name.TypeVarName performs no validation, so any string is legal, and
// source-level identifiers never lex with a leading "$".
func (st *state) fresh() name.TypeVarName {
	st.counter++
	return name.NewTypeVar(fmt.Sprintf("$t%d", st.counter))
}

// Solve discharges every obligation in root against a single
// substitution and scheme environment that starts empty: the generator
// threads every value-name reference through a Let in the same
// constraint tree (spec §4.4 generateBlocks), so no external
// environment input is needed beyond root itself.
func (s *Solver) Solve(root constraint.Constraint) (*constraint.Solution, *errs.Report) {
	st := &state{
		sub:      constraint.Substitution{},
		instOf:   map[*ast.ImplicitVar][]types.Type{},
		schemeOf: map[constraint.SchemeOrigin]*types.TyScheme{},
	}
	if err := st.solve(root, nil); err != nil {
		return nil, err
	}
	return &constraint.Solution{
		Subst:   st.sub,
		Derived: st.derived,
		Derive:  st.derive,
	}, nil
}

func (st *state) solve(c constraint.Constraint, g *gamma) *errs.Report {
	switch c := c.(type) {
	case constraint.True:
		return nil

	case constraint.Eq:
		return unify(st.sub, c.T1, c.T2, c.At)

	case constraint.InstanceOf:
		return st.solveInstanceOf(c, g)

	case constraint.Conj:
		for _, sub := range c.Constraints {
			if err := st.solve(sub, g); err != nil {
				return err
			}
		}
		return nil

	case constraint.Exists:
		return st.solve(c.Inner, g)

	case constraint.Let:
		return st.solveLet(c, g)

	default:
		return errs.Newf(errs.UnsatisfiableEquation, "solve", source.Undefined, "unrecognized constraint form")
	}
}

// solveInstanceOf looks Name up in gamma, instantiates its scheme with
// one fresh variable per quantifier, unifies the instantiated body
// against the target type, and — if this obligation came from a
// specific ImplicitVar occurrence — records the fresh variables against
// it so Derive can later fill in ExplicitVar.TypeArgs (spec §4.3 "Name
// <? T", §6).
func (st *state) solveInstanceOf(c constraint.InstanceOf, g *gamma) *errs.Report {
	scheme, ok := g.lookup(c.Name.String())
	if !ok {
		return errs.Newf(errs.SolverUnresolvedOverloading, "solve", c.At,
			"%s is not bound in the constraint tree", c.Name)
	}
	sigma := make(map[string]types.Type, len(scheme.Quantifiers))
	freshVars := make([]types.Type, len(scheme.Quantifiers))
	for i, q := range scheme.Quantifiers {
		fv := &types.TVar{At: c.At, Name: st.fresh()}
		sigma[q.String()] = fv
		freshVars[i] = fv
	}
	instantiated := types.Substitute(sigma, scheme.Body)
	if err := unify(st.sub, c.T, instantiated, c.At); err != nil {
		return err
	}
	if c.Occurrence != nil {
		st.instOf[c.Occurrence] = freshVars
	}
	return nil
}

// solveLet binds every scheme of c in turn (each sees the ones before
// it, per spec §4.3's "mutually-visible" Let), then checks Body under
// the fully extended environment.
func (st *state) solveLet(c constraint.Let, g *gamma) *errs.Report {
	for _, s := range c.Schemes {
		ng, err := st.solveScheme(s, g)
		if err != nil {
			return err
		}
		g = ng
	}
	return st.solve(c.Body, g)
}

// solveScheme binds every name in s.Header into g, following the three
// cases spec §4.4 "Let" distinguishes:
//   - Rigid non-empty: an explicitly annotated binding. The header type
//     is checked (via Inner) at exactly the declared quantifiers; no
//     generalization computation is needed.
//   - Flexible non-empty: an implicit binding, generalized over every
//     variable free in the solved header type but not free in the
//     enclosing environment (the standard "not free in Γ" rule).
//   - Neither: a monomorphic binding (a lambda parameter, a match arm's
//     pattern variables, a letrec group's internal self-reference) —
//     bound as-is, with no quantifiers and no Derived/DerivedScheme entry.
func (st *state) solveScheme(s constraint.SchemeConstraint, g *gamma) (*gamma, *errs.Report) {
	inner := g
	for hname, htype := range s.Header {
		inner = inner.extend(hname, types.MonoScheme(htype))
	}
	if err := st.solve(s.Inner, inner); err != nil {
		return nil, err
	}

	out := g
	var blocked map[string]bool
	if len(s.Flexible) > 0 {
		blocked = g.freeVars(st.sub)
	}
	for hname, htype := range s.Header {
		final := st.sub.Apply(htype)
		origin := s.Occurrences[hname]
		switch {
		case len(s.Rigid) > 0:
			scheme := &types.TyScheme{Quantifiers: s.Rigid, Predicates: s.Predicates, Body: final}
			out = out.extend(hname, scheme)
			st.recordDerived(hname, scheme, origin)

		case len(s.Flexible) > 0:
			scheme := &types.TyScheme{Quantifiers: generalize(final, blocked), Predicates: s.Predicates, Body: final}
			out = out.extend(hname, scheme)
			st.recordDerived(hname, scheme, origin)

		default:
			scheme := types.MonoScheme(final)
			out = out.extend(hname, scheme)
			if origin != nil {
				st.schemeOf[origin] = scheme
			}
		}
	}
	return out, nil
}

func (st *state) recordDerived(hname string, scheme *types.TyScheme, origin constraint.SchemeOrigin) {
	st.derived = append(st.derived, constraint.DerivedScheme{Name: name.NewValue(hname), Scheme: scheme})
	if origin != nil {
		st.schemeOf[origin] = scheme
	}
}

// generalize quantifies over every variable free in t that is not in
// blocked, in a deterministic (sorted) order so printed and derived
// schemes are reproducible across runs.
//
// blocked is computed once, from the environment as it stood before
// this Let's own header entries were added — including any still-live
// monomorphic letrec self-reference bindings from an enclosing scheme.
// This means a mutually-recursive binding that is genuinely polymorphic
// in its own right (polymorphic recursion) may come out less general
// than an ideal algorithm would produce: its own letrec placeholder
// variable is, by construction, still "free in the environment" at the
// point it is generalized. Ordinary (non-recursive) generalization is
// unaffected. See DESIGN.md.
func generalize(t types.Type, blocked map[string]bool) []name.TypeVarName {
	free := types.FreeVars(t)
	keys := make([]string, 0, len(free))
	for k := range free {
		if !blocked[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	qs := make([]name.TypeVarName, len(keys))
	for i, k := range keys {
		qs[i] = free[k]
	}
	return qs
}
