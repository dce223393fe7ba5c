package solve

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/types"
)

// derive walks prog and rebuilds it as an Explicit program, using the
// occurrence bookkeeping solve accumulated: st.instOf fills in
// ExplicitVar.TypeArgs, st.schemeOf fills in ExplicitValueDef's
// quantifiers/predicates/annotation and ExplicitLambda's annotation.
// This is Solution.Derive (spec §4.3, §6) — it never re-runs the
// generator, since the solver mints its own instantiation variables
// that a second generator pass could not see.
func (st *state) derive(prog *ast.ImplicitProgram) (*ast.ExplicitProgram, *errs.Report) {
	out := &ast.ExplicitProgram{}
	for _, b := range prog.Blocks {
		eb, err := st.deriveBlock(b)
		if err != nil {
			return nil, err
		}
		out.Blocks = append(out.Blocks, eb)
	}
	return out, nil
}

// deriveBlock converts one top-level block. TypeDefinitions and
// ClassDefinition are shared nodes between the two AST variants (they
// carry no binding-site type information the solver could refine) and
// pass through unchanged.
func (st *state) deriveBlock(b ast.ImplicitBlock) (ast.ExplicitBlock, *errs.Report) {
	switch v := b.(type) {
	case *ast.TypeDefinitions:
		return v, nil
	case *ast.ClassDefinition:
		return v, nil
	case *ast.ImplicitInstanceDefinitions:
		return st.deriveInstanceDefinitions(v)
	case *ast.ImplicitDefinition:
		return st.deriveDefinition(v)
	default:
		return nil, errs.Newf(errs.SolverUnresolvedOverloading, "solve", b.Pos(), "unrecognized top-level block during derivation")
	}
}

func (st *state) deriveDefinition(d *ast.ImplicitDefinition) (*ast.ExplicitDefinition, *errs.Report) {
	out := &ast.ExplicitDefinition{At: d.At, Recursive: d.Recursive}
	for _, def := range d.Defs {
		ed, err := st.deriveValueDef(def)
		if err != nil {
			return nil, err
		}
		out.Defs = append(out.Defs, ed)
	}
	return out, nil
}

// deriveValueDef reads def's final scheme back out of schemeOf (recorded
// by solveScheme against this exact *ast.ImplicitValueDef) and rebuilds
// its body.
func (st *state) deriveValueDef(def *ast.ImplicitValueDef) (*ast.ExplicitValueDef, *errs.Report) {
	quantifiers := def.Quantifiers
	predicates := def.Predicates
	annotation := def.Annotation
	if scheme, ok := st.schemeOf[def]; ok {
		quantifiers = scheme.Quantifiers
		predicates = scheme.Predicates
		annotation = scheme.Body
	}
	body, err := st.deriveExpr(def.Body)
	if err != nil {
		return nil, err
	}
	return &ast.ExplicitValueDef{
		At:          def.At,
		Quantifiers: quantifiers,
		Predicates:  predicates,
		Annotation:  annotation,
		Name:        def.Name,
		Body:        body,
	}, nil
}

func (st *state) deriveInstanceDefinitions(block *ast.ImplicitInstanceDefinitions) (*ast.ExplicitInstanceDefinitions, *errs.Report) {
	out := &ast.ExplicitInstanceDefinitions{At: block.At}
	for _, inst := range block.Instances {
		ei := &ast.ExplicitInstance{
			At:      inst.At,
			Class:   inst.Class,
			Head:    inst.Head,
			Params:  inst.Params,
			Context: inst.Context,
		}
		for i := range inst.Members {
			m := &inst.Members[i]
			body, err := st.deriveExpr(m.Body)
			if err != nil {
				return nil, err
			}
			ei.Members = append(ei.Members, ast.ExplicitMemberBinding{At: m.At, Label: m.Label, Body: body})
		}
		out.Instances = append(out.Instances, ei)
	}
	return out, nil
}

func (st *state) deriveExpr(e ast.ImplicitExpr) (ast.ExplicitExpr, *errs.Report) {
	switch v := e.(type) {
	case *ast.ImplicitVar:
		args := st.instOf[v]
		typeArgs := make([]types.Type, len(args))
		for i, a := range args {
			typeArgs[i] = st.sub.Apply(a)
		}
		return &ast.ExplicitVar{At: v.At, Name: v.Name, TypeArgs: typeArgs}, nil

	case *ast.ImplicitLambda:
		ann := v.Annotation
		if scheme, ok := st.schemeOf[v]; ok {
			ann = scheme.Body
		}
		body, err := st.deriveExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitLambda{At: v.At, Param: v.Param, Annotation: ann, Body: body}, nil

	case *ast.ImplicitApp:
		f, err := st.deriveExpr(v.Func)
		if err != nil {
			return nil, err
		}
		a, err := st.deriveExpr(v.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitApp{At: v.At, Func: f, Arg: a}, nil

	case *ast.ImplicitAscription:
		// Ascription exists only to drive a checking Eq during
		// generation (spec §4.4); it has no Explicit counterpart.
		return st.deriveExpr(v.Expr)

	case *ast.ImplicitExists:
		return st.deriveExpr(v.Body)

	case *ast.ImplicitMatch:
		scrutinee, err := st.deriveExpr(v.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]ast.ExplicitMatchArm, len(v.Arms))
		for i, a := range v.Arms {
			body, aerr := st.deriveExpr(a.Body)
			if aerr != nil {
				return nil, aerr
			}
			arms[i] = ast.ExplicitMatchArm{At: a.At, Pattern: a.Pattern, Body: body}
		}
		return &ast.ExplicitMatch{At: v.At, Scrutinee: scrutinee, Arms: arms}, nil

	case *ast.ImplicitDataCon:
		args := make([]ast.ExplicitExpr, len(v.Args))
		for i, a := range v.Args {
			ea, err := st.deriveExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = ea
		}
		return &ast.ExplicitDataCon{At: v.At, Con: v.Con, Args: args}, nil

	case *ast.ImplicitPrimitive:
		return &ast.ExplicitPrimitive{At: v.At, Value: v.Value}, nil

	case *ast.ImplicitRecordCon:
		fields := make([]ast.ExplicitRecordField, len(v.Fields))
		for i, f := range v.Fields {
			fv, err := st.deriveExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.ExplicitRecordField{At: f.At, Label: f.Label, Value: fv}
		}
		return &ast.ExplicitRecordCon{At: v.At, TypeName: v.TypeName, Fields: fields}, nil

	case *ast.ImplicitRecordAccess:
		r, err := st.deriveExpr(v.Record)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitRecordAccess{At: v.At, Record: r, Label: v.Label}, nil

	case *ast.ImplicitLet:
		defs := make([]*ast.ExplicitValueDef, len(v.Defs))
		for i, d := range v.Defs {
			ed, err := st.deriveValueDef(d)
			if err != nil {
				return nil, err
			}
			defs[i] = ed
		}
		body, err := st.deriveExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitLet{At: v.At, Defs: defs, Body: body}, nil

	case *ast.ImplicitLetRec:
		defs := make([]*ast.ExplicitValueDef, len(v.Defs))
		for i, d := range v.Defs {
			ed, err := st.deriveValueDef(d)
			if err != nil {
				return nil, err
			}
			defs[i] = ed
		}
		body, err := st.deriveExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ExplicitLetRec{At: v.At, Defs: defs, Body: body}, nil

	default:
		return nil, errs.Newf(errs.SolverUnresolvedOverloading, "solve", e.Pos(), "unrecognized expression form during derivation")
	}
}
