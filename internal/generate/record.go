package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

func (g *Generator) generateRecordCon(expr *ast.ImplicitRecordCon, t types.Type) (constraint.Constraint, *errs.Report) {
	if len(expr.Fields) == 0 {
		return nil, errs.Newf(errs.InvalidRecordInstantiation, "generate", expr.At, "record construction cannot be empty")
	}
	seen := map[string]bool{}
	for _, f := range expr.Fields {
		if seen[f.Label.String()] {
			return nil, errs.Newf(errs.MultipleLabels, "generate", expr.At,
				"label %s is given more than once in this record", f.Label)
		}
		seen[f.Label.String()] = true
	}

	owner, err := g.env.LookupLabel(expr.Fields[0].Label)
	if err != nil {
		return nil, err
	}
	defAny, ok := g.env.LookupTypeDef(owner)
	if !ok {
		return nil, errs.Newf(errs.RecordExpected, "generate", expr.At, "unknown record type %s", owner)
	}
	td, ok := defAny.(*ast.TypeDef)
	if !ok || td.Record == nil {
		return nil, errs.Newf(errs.RecordExpected, "generate", expr.At, "%s is not a record type", owner)
	}

	sigma := map[string]types.Type{}
	freshVars := make([]name.TypeVarName, len(td.Params))
	for i, p := range td.Params {
		fv := g.freshTypeVar("t")
		freshVars[i] = fv
		sigma[p.String()] = &types.TVar{At: expr.At, Name: fv}
	}
	recordType := applyParams(owner, freshVars, expr.At)

	declared := map[string]types.Type{}
	for _, f := range td.Record.Fields {
		declared[f.Label.String()] = f.Type
	}
	if len(expr.Fields) != len(declared) {
		return nil, errs.Newf(errs.InvalidRecordInstantiation, "generate", expr.At,
			"record %s requires %d field(s), got %d", owner, len(declared), len(expr.Fields))
	}

	cs := []constraint.Constraint{constraint.Eq{At: expr.At, T1: t, T2: recordType}}
	for _, f := range expr.Fields {
		fieldOwner, lerr := g.env.LookupLabel(f.Label)
		if lerr != nil {
			return nil, lerr
		}
		if !fieldOwner.Equal(owner) {
			return nil, errs.Newf(errs.LabelDoesNotBelong, "generate", expr.At,
				"label %s does not belong to record %s", f.Label, owner)
		}
		declTy := types.Substitute(sigma, declared[f.Label.String()])
		c, verr := g.GenerateExpr(f.Value, declTy)
		if verr != nil {
			return nil, verr
		}
		cs = append(cs, c)
	}
	if len(freshVars) == 0 {
		return constraint.And(cs...), nil
	}
	return constraint.Exists{Vars: freshVars, Inner: constraint.And(cs...)}, nil
}

func (g *Generator) generateRecordAccess(expr *ast.ImplicitRecordAccess, t types.Type) (constraint.Constraint, *errs.Report) {
	owner, err := g.env.LookupLabel(expr.Label)
	if err != nil {
		return nil, err
	}
	defAny, ok := g.env.LookupTypeDef(owner)
	if !ok {
		return nil, errs.Newf(errs.RecordExpected, "generate", expr.At, "unknown record type %s", owner)
	}
	td, ok := defAny.(*ast.TypeDef)
	if !ok || td.Record == nil {
		return nil, errs.Newf(errs.RecordExpected, "generate", expr.At, "%s is not a record type", owner)
	}

	sigma := map[string]types.Type{}
	freshVars := make([]name.TypeVarName, len(td.Params))
	for i, p := range td.Params {
		fv := g.freshTypeVar("t")
		freshVars[i] = fv
		sigma[p.String()] = &types.TVar{At: expr.At, Name: fv}
	}
	recordType := applyParams(owner, freshVars, expr.At)

	var fieldTy types.Type
	for _, f := range td.Record.Fields {
		if f.Label.Equal(expr.Label) {
			fieldTy = types.Substitute(sigma, f.Type)
			break
		}
	}
	if fieldTy == nil {
		return nil, errs.Newf(errs.LabelDoesNotBelong, "generate", expr.At,
			"label %s does not belong to record %s", expr.Label, owner)
	}

	recC, rerr := g.GenerateExpr(expr.Record, recordType)
	if rerr != nil {
		return nil, rerr
	}
	cs := constraint.And(recC, constraint.Eq{At: expr.At, T1: t, T2: fieldTy})
	if len(freshVars) == 0 {
		return cs, nil
	}
	return constraint.Exists{Vars: freshVars, Inner: cs}, nil
}
