package solve

import (
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/types"
)

// gamma is a persistent, parent-chain scheme environment, grounded on
// the teacher's types.TypeEnv (internal/types/env.go): each Extend call
// returns a new frame pointing at its parent rather than mutating
// shared state, so a Let processed deeper in the recursion can never
// observe bindings introduced by a sibling that started later.
type gamma struct {
	name   string
	scheme *types.TyScheme
	parent *gamma
}

// extend binds name to scheme in a new frame in front of g.
func (g *gamma) extend(n string, s *types.TyScheme) *gamma {
	return &gamma{name: n, scheme: s, parent: g}
}

// lookup walks the parent chain for the nearest binding of n.
func (g *gamma) lookup(n string) (*types.TyScheme, bool) {
	for cur := g; cur != nil; cur = cur.parent {
		if cur.name == n {
			return cur.scheme, true
		}
	}
	return nil, false
}

// freeVars collects the type variables free in g: every variable
// mentioned by a bound scheme's body, excluding that scheme's own
// quantifiers. Used to exclude a variable still reachable from an
// enclosing scope from being generalized over (spec §4.4
// generalization "not free in the environment").
func (g *gamma) freeVars(sub constraint.Substitution) map[string]bool {
	free := map[string]bool{}
	for cur := g; cur != nil; cur = cur.parent {
		if cur.scheme == nil {
			continue
		}
		bound := map[string]bool{}
		for _, q := range cur.scheme.Quantifiers {
			bound[q.String()] = true
		}
		for vn := range types.FreeVars(sub.Apply(cur.scheme.Body)) {
			if !bound[vn] {
				free[vn] = true
			}
		}
	}
	return free
}
