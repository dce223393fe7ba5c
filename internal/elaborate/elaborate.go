package elaborate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/ledger"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// Elaborator rewrites a class-qualified Explicit program into a
// class-free one. env must be the final environment the generator
// produced (every class and instance already bound), since resolving a
// dictionary requires looking up instances and superclass chains.
type Elaborator struct {
	env *env.Env
	// memberClass maps a class member's value name to the class that
	// declares it, collected from every ClassDefinition block before any
	// rewriting starts, so a member used textually before its class's
	// declaration (or an instance declared in a different block) still
	// resolves.
	memberClass map[string]name.TypeConName
	// ledger is the NamespaceLedger threaded through every binding
	// introduction site this Elaborator visits (spec §4.6, §4.8, I5),
	// reset per compilation run by New rather than held as a package
	// global (spec §9 "Global mutable state").
	ledger *ledger.Ledger
}

// New builds an Elaborator over e, the environment produced by
// generation (spec §4.6 handoff from Generator to Elaborator).
func New(e *env.Env) *Elaborator {
	return &Elaborator{env: e, memberClass: map[string]name.TypeConName{}, ledger: ledger.New()}
}

// Elaborate translates prog into a class-free program: every
// ClassDefinition block becomes its accessor bindings, every
// InstanceDefinitions block becomes its dictionary-constructor
// bindings, and every other block has its overloaded member references
// rewritten to explicit dictionary applications (spec §4.5).
func (el *Elaborator) Elaborate(prog *ast.ExplicitProgram) (*ast.ExplicitProgram, *errs.Report) {
	if err := el.collectMembers(prog.Blocks); err != nil {
		return nil, err
	}

	out := make([]ast.ExplicitBlock, 0, len(prog.Blocks))
	for _, b := range prog.Blocks {
		switch block := b.(type) {
		case *ast.TypeDefinitions:
			out = append(out, block)

		case *ast.ClassDefinition:
			if err := checkSupersAntichain(el.env, block); err != nil {
				return nil, err
			}
			dictType := &ast.TypeDef{
				At:     block.At,
				Name:   DictTypeName(block.Name),
				Params: []name.TypeVarName{block.Param},
				Record: dictRecordDef(block),
			}
			out = append(out, &ast.TypeDefinitions{At: block.At, Defs: []*ast.TypeDef{dictType}})
			out = append(out, &ast.ExplicitDefinition{At: block.At, Recursive: false, Defs: classAccessors(block)})

		case *ast.ExplicitInstanceDefinitions:
			defs := make([]*ast.ExplicitValueDef, len(block.Instances))
			for i, inst := range block.Instances {
				cd, err := el.classDef(prog.Blocks, inst.Class)
				if err != nil {
					return nil, err
				}
				d, derr := el.instanceDict(cd, inst)
				if derr != nil {
					return nil, derr
				}
				defs[i] = d
			}
			out = append(out, &ast.ExplicitDefinition{At: block.At, Recursive: true, Defs: defs})

		case *ast.ExplicitDefinition:
			defs, err := el.rewriteDefs(block.Defs, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.ExplicitDefinition{At: block.At, Recursive: block.Recursive, Defs: defs})

		default:
			return nil, errs.Newf(errs.UnresolvedOverloading, "elaborate", b.Pos(), "unrecognized top-level block")
		}
	}
	return &ast.ExplicitProgram{Blocks: out}, nil
}

// collectMembers records every class member's owning class (for
// resolveDict's lookup) and asserts each member's accessor name
// Overloaded in the ledger, so a later ordinary binding reusing the same
// name is rejected (spec §4.6, I5, scenario S5).
func (el *Elaborator) collectMembers(blocks []ast.ExplicitBlock) *errs.Report {
	for _, b := range blocks {
		if cd, ok := b.(*ast.ClassDefinition); ok {
			for _, m := range cd.Members {
				vn := m.Label.AsValueName()
				el.memberClass[vn.String()] = cd.Name
				pred := types.ClassPredicate{Class: cd.Name, Var: cd.Param}
				if err := el.ledger.BindScheme(vn, []types.ClassPredicate{pred}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (el *Elaborator) classDef(blocks []ast.ExplicitBlock, class name.TypeConName) (*ast.ClassDefinition, *errs.Report) {
	for _, b := range blocks {
		if cd, ok := b.(*ast.ClassDefinition); ok && cd.Name.Equal(class) {
			return cd, nil
		}
	}
	return nil, errs.Newf(errs.UnboundClass, "elaborate", source.Undefined, "unbound class: %s", class)
}
