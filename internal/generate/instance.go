package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/types"
)

// installInstanceDefinitions validates and binds every instance in a
// mutually-recursive InstanceDefinitions group into the environment: the
// named class must exist, the instance's context must be canonical over
// its own parameters (I3), every class member must have a corresponding
// binding, and the instance must not overlap an existing one for the
// same class and head constructor (ELB005). It also builds the
// SchemeConstraints that check each member's body against its member
// signature substituted at the instance's head and params, with the
// instance's own context predicates available the same way an
// explicitly annotated definition's predicates are — the dictionary
// substitution those predicates eventually resolve to is the
// Elaborator's job, not this one's.
func (g *Generator) installInstanceDefinitions(block *ast.ImplicitInstanceDefinitions) (*env.Env, []constraint.SchemeConstraint, *errs.Report) {
	e := g.env
	var schemes []constraint.SchemeConstraint
	for _, inst := range block.Instances {
		info, err := e.LookupClass(inst.Class)
		if err != nil {
			return nil, nil, err
		}
		if err := CheckCorrectContext(e, inst.Params, inst.Context, inst.At); err != nil {
			return nil, nil, err
		}
		bound := map[string]bool{}
		for _, m := range inst.Members {
			bound[m.Label.String()] = true
		}
		for memberLabel := range info.Members {
			if !bound[memberLabel] {
				return nil, nil, errs.Newf(errs.InvalidOverloading, "generate", inst.At,
					"instance of %s for %s is missing a binding for %s", inst.Class, inst.Head, memberLabel)
			}
		}

		headType := applyParams(inst.Head, inst.Params, inst.At)
		sigma := map[string]types.Type{info.Param.String(): headType}
		for i := range inst.Members {
			m := &inst.Members[i]
			memberTy, ok := info.Members[m.Label.String()]
			if !ok {
				return nil, nil, errs.Newf(errs.InvalidOverloading, "generate", inst.At,
					"%s is not a member of %s", m.Label, inst.Class)
			}
			bodyTy := types.Substitute(sigma, memberTy)
			inner, berr := g.GenerateExpr(m.Body, bodyTy)
			if berr != nil {
				return nil, nil, berr
			}
			schemes = append(schemes, constraint.SchemeConstraint{
				Rigid:       inst.Params,
				Predicates:  inst.Context,
				Inner:       inner,
				Header:      map[string]types.Type{m.Label.AsValueName().String(): bodyTy},
				Occurrences: map[string]constraint.SchemeOrigin{m.Label.AsValueName().String(): m},
			})
		}

		e, err = e.BindInstance(&env.InstanceInfo{
			Class:   inst.Class,
			Head:    inst.Head,
			Params:  inst.Params,
			Context: inst.Context,
		})
		if err != nil {
			return nil, nil, err
		}
	}
	return e, schemes, nil
}
