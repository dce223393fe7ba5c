package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// installTypeDefinitions extends e with the kind, data-constructor
// schemes, and label ownership of each type in a TypeDefinitions block
// (spec §3 Invariants I1; §4.7 well-formedness).
func installTypeDefinitions(e *env.Env, block *ast.TypeDefinitions) (*env.Env, *errs.Report) {
	// Pass 1: bind every type constructor's kind so mutually-recursive
	// type definitions can refer to one another.
	for _, td := range block.Defs {
		e = e.BindType(td.Name, types.KindOfArity(len(td.Params)), td)
	}

	for _, td := range block.Defs {
		owner := applyParams(td.Name, td.Params, td.At)
		switch {
		case td.Algebraic != nil:
			for _, con := range td.Algebraic.Constructors {
				for _, f := range con.Fields {
					if err := CheckWFType(e, f, con.At); err != nil {
						return nil, err
					}
				}
				scheme := &types.TyScheme{
					Quantifiers: td.Params,
					Body:        types.NTyArrow(con.At, con.Fields, owner),
				}
				e = e.BindDataConstructor(con.Name, scheme)
			}
		case td.Record != nil:
			for _, f := range td.Record.Fields {
				if err := CheckWFType(e, f.Type, f.At); err != nil {
					return nil, err
				}
				e = e.BindLabel(f.Label, td.Name)
			}
		}
	}
	return e, nil
}

// installClassDefinition extends e with the class's info and, for each
// member, a qualified scheme ∀α. [k α] ⇒ τ (spec §4.5 "install in the
// environment the original class-qualified scheme"). I4 requires the
// class parameter to occur free in every member's type.
func installClassDefinition(e *env.Env, cd *ast.ClassDefinition) (*env.Env, *errs.Report) {
	members := map[string]types.Type{}
	for _, m := range cd.Members {
		if !cd.IsConstructorClass {
			if _, ok := types.FreeVars(m.Type)[cd.Param.String()]; !ok {
				return nil, errs.Newf(errs.InvalidOverloading, "generate", m.At,
					"member %s does not mention class parameter %s", m.Label, cd.Param)
			}
		}
		if err := CheckWFType(e, m.Type, m.At); err != nil {
			return nil, err
		}
		members[m.Label.String()] = m.Type
	}

	e = e.BindClass(&env.ClassInfo{
		Name:               cd.Name,
		Param:               cd.Param,
		Supers:              cd.Supers,
		Members:             members,
		IsConstructorClass:  cd.IsConstructorClass,
	})

	for _, m := range cd.Members {
		pred := types.ClassPredicate{Class: cd.Name, Var: cd.Param}
		e = e.BindScheme(m.Label.AsValueName(), []name.TypeVarName{cd.Param}, []types.ClassPredicate{pred}, m.Type)
	}
	return e, nil
}

// applyParams builds the fully-applied type TApp(con, [TVar(p) for p in
// params]), e.g. the owner type of a constructor/field in a
// parameterized type declaration.
func applyParams(con name.TypeConName, params []name.TypeVarName, pos source.Pos) types.Type {
	args := make([]types.Type, len(params))
	for i, p := range params {
		args[i] = &types.TVar{At: pos, Name: p}
	}
	return &types.TApp{At: pos, Con: con, Args: args}
}
