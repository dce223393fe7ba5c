// Package generate implements the ConstraintGenerator: it walks an
// Implicit program and emits one root constraint whose satisfiability
// is equivalent to the program being well-typed (spec §4.4). Grounded
// on the teacher's typechecker_core.go/inference.go expression-walk
// structure and typechecker_patterns.go's pattern handling, but
// re-targeted to emit constraint.Constraint trees for an external
// solver instead of unifying directly, per spec §4.4/§4.3.
package generate

import (
	"fmt"

	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/name"
)

// Generator carries the fresh-variable counter and ambient environment
// used to resolve data constructors, record labels, and class/instance
// declarations while walking an Implicit program.
type Generator struct {
	env   *env.Env
	fresh int
}

// New returns a Generator over an initial environment (typically one
// seeded with built-in type constructors).
func New(e *env.Env) *Generator {
	return &Generator{env: e}
}

// freshTypeVar returns a new flexible type variable name, prefixed for
// readability in error messages and dumps.
func (g *Generator) freshTypeVar(prefix string) name.TypeVarName {
	g.fresh++
	return name.NewTypeVar(fmt.Sprintf("%s%d", prefix, g.fresh))
}
