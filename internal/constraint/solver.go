package constraint

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// Substitution maps flexible type-variable names to their solved types.
type Substitution map[string]types.Type

// Apply substitutes sigma throughout t.
func (sigma Substitution) Apply(t types.Type) types.Type {
	raw := make(map[string]types.Type, len(sigma))
	for k, v := range sigma {
		raw[k] = v
	}
	return types.Substitute(raw, t)
}

// DerivedScheme is the scheme the solver generalized for one Let-bound
// name, with its canonical (deterministically ordered) quantifier list.
type DerivedScheme struct {
	Name   name.ValueName
	Scheme *types.TyScheme
}

// Solution is what a successful Solve call returns: a substitution for
// every flexible variable plus the schemes derived for each Let-bound
// name, and a Derive function that, applied to an Implicit program,
// yields the Explicit program with every type application and
// annotation filled in (spec §4.3, §6).
type Solution struct {
	Subst   Substitution
	Derived []DerivedScheme
	Derive  func(*ast.ImplicitProgram) (*ast.ExplicitProgram, *errs.Report)
}

// Solver is the external solver contract: spec §4.3/§6 pin down only
// this interface, deliberately leaving the implementation (ordering
// discipline, worklist strategy) up to whoever provides it. internal/solve
// ships a reference implementation.
type Solver interface {
	Solve(root Constraint) (*Solution, *errs.Report)
}
