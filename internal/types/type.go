// Package types implements the TypeModel: the first-order type term
// language, kinds, type schemes, class predicates, substitution,
// alpha-equivalence, and free-variable extraction. Grounded on the
// teacher's internal/types/types.go (TVar/TCon/TypeScheme) but
// restructured around a single first-order TApp constructor per spec
// §3/§4.1, since this front end has no row types or effect rows to
// special-case the way the teacher's TFunc/TList/TRecord family does.
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
)

// Type is the first-order term language: a type variable or a type
// constructor applied to zero or more argument types.
type Type interface {
	Pos() source.Pos
	String() string
	typeNode()
}

// TVar is a reference to a type variable, rigid or flexible depending
// on where it was introduced (the Type itself does not record which;
// that is tracked by the constraint language's Exists/Let binders).
type TVar struct {
	At   source.Pos
	Name name.TypeVarName
}

func (t *TVar) typeNode()      {}
func (t *TVar) Pos() source.Pos { return t.At }
func (t *TVar) String() string { return t.Name.String() }

// TApp is a type constructor applied to argument types. A nullary type
// constructor (e.g. int) is TApp with an empty Args slice.
type TApp struct {
	At   source.Pos
	Con  name.TypeConName
	Args []Type
}

func (t *TApp) typeNode()      {}
func (t *TApp) Pos() source.Pos { return t.At }
func (t *TApp) String() string {
	if t.Con.String() == ArrowCon && len(t.Args) == 2 {
		return fmt.Sprintf("(%s -> %s)", t.Args[0], t.Args[1])
	}
	if len(t.Args) == 0 {
		return t.Con.String()
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Con, strings.Join(parts, ", "))
}

// ArrowCon is the reserved type-constructor name for function types:
// TApp(pos, "->", [in, out]).
const ArrowCon = "->"

// Arrow builds a single-argument function type.
func Arrow(pos source.Pos, in, out Type) Type {
	return &TApp{At: pos, Con: name.NewTypeCon(ArrowCon), Args: []Type{in, out}}
}

// NTyArrow folds a list of input types into a right-nested chain of
// arrows ending in out: ntyarrow([a,b], r) = a -> (b -> r).
func NTyArrow(pos source.Pos, ins []Type, out Type) Type {
	result := out
	for i := len(ins) - 1; i >= 0; i-- {
		result = Arrow(pos, ins[i], result)
	}
	return result
}

// DestructTyArrow splits a single arrow into (input, output, ok). ok is
// false if t is not an arrow type.
func DestructTyArrow(t Type) (in, out Type, ok bool) {
	app, isApp := t.(*TApp)
	if !isApp || app.Con.String() != ArrowCon || len(app.Args) != 2 {
		return nil, nil, false
	}
	return app.Args[0], app.Args[1], true
}

// DestructNTyArrow is the left inverse of NTyArrow: it collects every
// input arrow from the left, stopping at the first non-arrow type.
func DestructNTyArrow(t Type) (ins []Type, out Type) {
	cur := t
	for {
		in, o, ok := DestructTyArrow(cur)
		if !ok {
			return ins, cur
		}
		ins = append(ins, in)
		cur = o
	}
}

// ClassPredicate is a single class constraint "class variable", e.g.
// Eq α. Predicates reference only a scheme's own quantifiers (I2).
type ClassPredicate struct {
	Class name.TypeConName
	Var   name.TypeVarName
}

func (p ClassPredicate) String() string {
	return fmt.Sprintf("%s %s", p.Class, p.Var)
}

func (p ClassPredicate) Equals(o ClassPredicate) bool {
	return p.Class.Equal(o.Class) && p.Var.Equal(o.Var)
}

// TyScheme is a universally quantified, possibly-constrained type:
// ∀quantifiers. predicates ⇒ body.
type TyScheme struct {
	Quantifiers []name.TypeVarName
	Predicates  []ClassPredicate
	Body        Type
}

// MonoScheme wraps a type with no quantifiers and no predicates: a
// monomorphic "scheme" used for lambda parameters and let headers.
func MonoScheme(t Type) *TyScheme {
	return &TyScheme{Body: t}
}

func (s *TyScheme) String() string {
	var b strings.Builder
	if len(s.Quantifiers) > 0 {
		qs := make([]string, len(s.Quantifiers))
		for i, q := range s.Quantifiers {
			qs[i] = q.String()
		}
		fmt.Fprintf(&b, "forall %s. ", strings.Join(qs, " "))
	}
	if len(s.Predicates) > 0 {
		ps := make([]string, len(s.Predicates))
		for i, p := range s.Predicates {
			ps[i] = p.String()
		}
		fmt.Fprintf(&b, "[%s] => ", strings.Join(ps, ", "))
	}
	b.WriteString(s.Body.String())
	return b.String()
}

// Substitute applies the variable-to-type map sigma throughout t. Types
// are first-order (no binders inside them), so substitution is
// capture-unaware by construction.
func Substitute(sigma map[string]Type, t Type) Type {
	switch v := t.(type) {
	case *TVar:
		if sub, ok := sigma[v.Name.String()]; ok {
			return sub
		}
		return v
	case *TApp:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(sigma, a)
		}
		return &TApp{At: v.At, Con: v.Con, Args: args}
	default:
		return t
	}
}

// SubstituteScheme applies sigma to a scheme's body only; sigma must not
// rebind any of the scheme's own quantifiers (callers are responsible
// for alpha-renaming first if a capture would occur).
func SubstituteScheme(sigma map[string]Type, s *TyScheme) *TyScheme {
	return &TyScheme{
		Quantifiers: s.Quantifiers,
		Predicates:  s.Predicates,
		Body:        Substitute(sigma, s.Body),
	}
}

// FreeVars returns the set of type-variable names occurring at a leaf
// of t.
func FreeVars(t Type) map[string]name.TypeVarName {
	out := map[string]name.TypeVarName{}
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[string]name.TypeVarName) {
	switch v := t.(type) {
	case *TVar:
		out[v.Name.String()] = v.Name
	case *TApp:
		for _, a := range v.Args {
			collectFreeVars(a, out)
		}
	}
}

// TypeConstructors returns the set of type-constructor names occurring
// at a non-leaf of t.
func TypeConstructors(t Type) map[string]name.TypeConName {
	out := map[string]name.TypeConName{}
	collectTypeConstructors(t, out)
	return out
}

func collectTypeConstructors(t Type, out map[string]name.TypeConName) {
	if v, ok := t.(*TApp); ok {
		out[v.Con.String()] = v.Con
		for _, a := range v.Args {
			collectTypeConstructors(a, out)
		}
	}
}

// Equivalent reports alpha-equivalence between t1 and t2, ignoring
// positions: two types are equivalent if they have the same shape up to
// a consistent renaming of type variables.
func Equivalent(t1, t2 Type) bool {
	return equivalentUnder(t1, t2, map[string]string{}, map[string]string{})
}

func equivalentUnder(t1, t2 Type, fwd, bwd map[string]string) bool {
	switch a := t1.(type) {
	case *TVar:
		b, ok := t2.(*TVar)
		if !ok {
			return false
		}
		an, bn := a.Name.String(), b.Name.String()
		if mapped, seen := fwd[an]; seen {
			return mapped == bn
		}
		if mapped, seen := bwd[bn]; seen {
			return mapped == an
		}
		fwd[an] = bn
		bwd[bn] = an
		return true
	case *TApp:
		b, ok := t2.(*TApp)
		if !ok {
			return false
		}
		if !a.Con.Equal(b.Con) || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !equivalentUnder(a.Args[i], b.Args[i], fwd, bwd) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortedPredicates returns preds sorted by (class, variable) so that
// context canonicity checks and printed output are deterministic.
func SortedPredicates(preds []ClassPredicate) []ClassPredicate {
	out := append([]ClassPredicate(nil), preds...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class.Compare(out[j].Class) != 0 {
			return out[i].Class.Compare(out[j].Class) < 0
		}
		return out[i].Var.Compare(out[j].Var) < 0
	})
	return out
}
