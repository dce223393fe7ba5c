package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// GenerateProgram walks an Implicit program block by block, threading
// the environment built up by type and class declarations, and returns
// the single root constraint whose satisfiability is equivalent to the
// whole program being well-typed (spec §4.4, §4.6).
func GenerateProgram(e *env.Env, prog *ast.ImplicitProgram) (constraint.Constraint, *env.Env, *errs.Report) {
	g := New(e)
	return g.generateBlocks(prog.Blocks)
}

func (g *Generator) generateBlocks(blocks []ast.ImplicitBlock) (constraint.Constraint, *env.Env, *errs.Report) {
	if len(blocks) == 0 {
		return constraint.True{}, g.env, nil
	}
	head, rest := blocks[0], blocks[1:]

	switch b := head.(type) {
	case *ast.TypeDefinitions:
		ne, err := installTypeDefinitions(g.env, b)
		if err != nil {
			return nil, nil, err
		}
		g.env = ne
		return g.generateBlocks(rest)

	case *ast.ClassDefinition:
		return g.generateClassBlock(b, rest)

	case *ast.ImplicitInstanceDefinitions:
		return g.generateInstanceBlock(b, rest)

	case *ast.ImplicitDefinition:
		return g.generateDefinitionBlock(b, rest)

	default:
		return nil, nil, errs.Newf(errs.UnboundIdentifier, "generate", head.Pos(), "unrecognized top-level block")
	}
}

// generateClassBlock installs the class into the environment (for
// instance elaboration and well-formedness checks later in the
// pipeline) and additionally wraps the remaining program in a Let
// binding one class-qualified scheme per member, so member references
// resolve through the same Let-chain mechanism as ordinary let-bound
// names (spec §4.5 "install the original class-qualified scheme").
// These schemes leave Occurrences nil: a class member's scheme
// originates from the class declaration itself, not from any one
// *ast.ImplicitValueDef or instance member body, so there is no single
// AST occurrence for the deriver to correlate it to.
func (g *Generator) generateClassBlock(cd *ast.ClassDefinition, rest []ast.ImplicitBlock) (constraint.Constraint, *env.Env, *errs.Report) {
	ne, err := installClassDefinition(g.env, cd)
	if err != nil {
		return nil, nil, err
	}
	g.env = ne

	schemes := make([]constraint.SchemeConstraint, len(cd.Members))
	for i, m := range cd.Members {
		pred := types.ClassPredicate{Class: cd.Name, Var: cd.Param}
		schemes[i] = constraint.SchemeConstraint{
			Rigid:      []name.TypeVarName{cd.Param},
			Predicates: []types.ClassPredicate{pred},
			Inner:      constraint.True{},
			Header:     map[string]types.Type{m.Label.AsValueName().String(): m.Type},
		}
	}

	bodyC, nenv, berr := g.generateBlocks(rest)
	if berr != nil {
		return nil, nil, berr
	}
	return constraint.Let{Schemes: schemes, Body: bodyC}, nenv, nil
}

// generateInstanceBlock installs an InstanceDefinitions group into the
// environment and wraps the remaining program in a Let binding the
// constraints that check every member body against its instantiated
// signature, so a type error in an instance method is reported exactly
// like a type error in any other definition.
func (g *Generator) generateInstanceBlock(block *ast.ImplicitInstanceDefinitions, rest []ast.ImplicitBlock) (constraint.Constraint, *env.Env, *errs.Report) {
	ne, schemes, err := g.installInstanceDefinitions(block)
	if err != nil {
		return nil, nil, err
	}
	g.env = ne
	bodyC, nenv, berr := g.generateBlocks(rest)
	if berr != nil {
		return nil, nil, berr
	}
	return constraint.Let{Schemes: schemes, Body: bodyC}, nenv, nil
}

// generateDefinitionBlock generates the schemes for one Definition
// block and wraps the remainder of the program as its Let body, so
// top-level bindings are resolved exactly like local let-bindings.
func (g *Generator) generateDefinitionBlock(def *ast.ImplicitDefinition, rest []ast.ImplicitBlock) (constraint.Constraint, *env.Env, *errs.Report) {
	if def.Recursive {
		return g.generateRecDefinitionBlock(def, rest)
	}
	schemes := make([]constraint.SchemeConstraint, len(def.Defs))
	for i, d := range def.Defs {
		s, err := g.genValueDef(d)
		if err != nil {
			return nil, nil, err
		}
		schemes[i] = s
	}
	bodyC, nenv, err := g.generateBlocks(rest)
	if err != nil {
		return nil, nil, err
	}
	return constraint.Let{Schemes: schemes, Body: bodyC}, nenv, nil
}

// generateRecDefinitionBlock mirrors generateRecLet's two-level letrec
// desugaring (spec §4.4 "Bindings"), but closes over the rest of the
// program instead of a local body expression, so mutually-recursive
// top-level definitions type-check the same way a local letrec group
// does.
func (g *Generator) generateRecDefinitionBlock(def *ast.ImplicitDefinition, rest []ast.ImplicitBlock) (constraint.Constraint, *env.Env, *errs.Report) {
	monoHeader, memberCs, outerSchemes, err := g.recGroup(def.Defs)
	if err != nil {
		return nil, nil, err
	}
	bodyC, nenv, berr := g.generateBlocks(rest)
	if berr != nil {
		return nil, nil, berr
	}
	outer := constraint.Let{Schemes: outerSchemes, Body: bodyC}
	inner := constraint.Let{
		Schemes: []constraint.SchemeConstraint{monoHeader},
		Body:    constraint.And(append(memberCs, outer)...),
	}
	return inner, nenv, nil
}
