// Package constraint implements the ConstraintLanguage: the
// intermediate language of typing constraints consumed by an external
// solver (spec §4.3). The shape is modeled after the teacher's
// types.Constraint/Qualified wrapper pattern (struct-per-variant, a
// String method per variant) generalized to the full grammar spec §4.3
// names — True, equality, instance-of, conjunction, existential, and
// scheme-let with rigid/flexible quantifiers and a header.
package constraint

import (
	"fmt"
	"strings"

	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// Constraint is one node of the constraint tree produced by the
// ConstraintGenerator and consumed by the solver.
type Constraint interface {
	String() string
	constraintNode()
}

// True is the trivially satisfied constraint.
type True struct{}

func (True) constraintNode() {}
func (True) String() string  { return "True" }

// Eq is a first-order equality obligation between two types at a
// source position, for diagnostics.
type Eq struct {
	At  source.Pos
	T1  types.Type
	T2  types.Type
}

func (Eq) constraintNode() {}
func (c Eq) String() string { return fmt.Sprintf("(%s =?= %s)", c.T1, c.T2) }

// InstanceOf is the obligation that name's scheme can be instantiated
// to T ("Name <? T" in spec §4.3). Occurrence is the variable node this
// obligation was generated from, carried through so the solver can
// record which concrete types its quantifiers were instantiated to at
// this specific use site — the deriver needs that list verbatim to
// build the Explicit AST's type application, and a constraint tree has
// no other way to name "this particular occurrence" once it has been
// flattened out of the original expression tree.
type InstanceOf struct {
	At         source.Pos
	Name       name.ValueName
	T          types.Type
	Occurrence *ast.ImplicitVar
}

func (InstanceOf) constraintNode() {}
func (c InstanceOf) String() string { return fmt.Sprintf("(%s <? %s)", c.Name, c.T) }

// Conj is a conjunction of sub-constraints, all of which must hold.
type Conj struct {
	Constraints []Constraint
}

func (Conj) constraintNode() {}
func (c Conj) String() string {
	parts := make([]string, len(c.Constraints))
	for i, sub := range c.Constraints {
		parts[i] = sub.String()
	}
	return strings.Join(parts, " /\\ ")
}

// And builds a Conj, flattening any nested Conj and dropping True
// terms so printed constraints stay readable.
func And(cs ...Constraint) Constraint {
	var flat []Constraint
	for _, c := range cs {
		switch v := c.(type) {
		case True:
			continue
		case Conj:
			flat = append(flat, v.Constraints...)
		default:
			flat = append(flat, c)
		}
	}
	if len(flat) == 0 {
		return True{}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Conj{Constraints: flat}
}

// Exists existentially quantifies flexible variables Vars over Inner.
type Exists struct {
	Vars  []name.TypeVarName
	Inner Constraint
}

func (Exists) constraintNode() {}
func (c Exists) String() string {
	vs := make([]string, len(c.Vars))
	for i, v := range c.Vars {
		vs[i] = v.String()
	}
	return fmt.Sprintf("exists %s. %s", strings.Join(vs, " "), c.Inner)
}

// SchemeOrigin is the source binding a SchemeConstraint header entry
// was generated from: an ordinary value definition, an instance method
// body, or a lambda (for its parameter). Each carries enough identity (pointer equality)
// for the deriver to correlate a solved scheme back to the exact AST
// node it must attach to when reconstructing the Explicit program.
type SchemeOrigin interface {
	Pos() source.Pos
}

// SchemeConstraint is one scheme bound by a Let: it carries rigid
// (user-supplied, non-unifiable) and flexible (solver-generalizable)
// quantifiers, a predicate list, the inner constraint whose solution
// produces the scheme, and a header mapping the names this scheme
// binds to the types referenced by the outer constraint (spec §4.3).
// Occurrences optionally names, for a header entry, the SchemeOrigin
// it was generated from, so the deriver can recover that definition's
// final scheme without re-walking the program to rediscover which
// source binding produced it; it is nil for headers with no single
// originating definition (e.g. a match arm's pattern bindings, a
// letrec group's monomorphic self-reference header, or a MonoHeader
// built with a nil origin).
type SchemeConstraint struct {
	Rigid       []name.TypeVarName
	Flexible    []name.TypeVarName
	Predicates  []types.ClassPredicate
	Inner       Constraint
	Header      map[string]types.Type // value name -> type referenced by the outer constraint
	Occurrences map[string]SchemeOrigin
}

// Let binds one or more mutually-visible schemes before checking Body.
type Let struct {
	Schemes []SchemeConstraint
	Body    Constraint
}

func (Let) constraintNode() {}
func (c Let) String() string {
	parts := make([]string, len(c.Schemes))
	for i, s := range c.Schemes {
		parts[i] = fmt.Sprintf("scheme#%d", i)
		_ = s
	}
	return fmt.Sprintf("let [%s] in %s", strings.Join(parts, ", "), c.Body)
}

// MonoHeader builds a single-name, unconstrained SchemeConstraint used
// for lambda parameters (spec §4.4 lambda rule: "Let([monoscheme(header)], ...)").
// origin, when non-nil, is the ImplicitLambda the parameter belongs to
// — recorded the same way as any other Occurrences entry, so the
// deriver can recover the parameter's solved type to fill in
// ExplicitLambda.Annotation, which unlike its Implicit counterpart is
// never optional.
func MonoHeader(n name.ValueName, t types.Type, inner Constraint, origin SchemeOrigin) SchemeConstraint {
	sc := SchemeConstraint{
		Inner:  inner,
		Header: map[string]types.Type{n.String(): t},
	}
	if origin != nil {
		sc.Occurrences = map[string]SchemeOrigin{n.String(): origin}
	}
	return sc
}
