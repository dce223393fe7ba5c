package elaborate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// checkSupersAntichain rejects a class whose own direct Supers list
// contains two classes where one is already a (transitive) superclass
// of the other (spec §4.5's first bullet) — e.g. `class Foo extends Eq,
// Ord` when Ord already extends Eq, which would otherwise compile into
// a dictionary record with a redundant, ambiguous superclass field.
// e.IsSuperclass walks the same transitive chain CheckCorrectContext
// uses for predicate contexts (internal/generate/wf.go); this applies
// it to a class declaration's own Supers list instead.
func checkSupersAntichain(e *env.Env, cd *ast.ClassDefinition) *errs.Report {
	for i := range cd.Supers {
		for j := i + 1; j < len(cd.Supers); j++ {
			if e.IsSuperclass(cd.Supers[i], cd.Supers[j]) || e.IsSuperclass(cd.Supers[j], cd.Supers[i]) {
				return errs.Newf(errs.TheseTwoClassesMustNotBeInTheSameContext, "elaborate", cd.At,
					"%s and %s must not both be direct supers of %s: one is already a superclass of the other",
					cd.Supers[i], cd.Supers[j], cd.Name)
			}
		}
	}
	return nil
}

// dictRecordDef builds the synthetic record type a class elaborates to:
// one field per direct superclass (holding that superclass's dictionary
// at the same parameter) followed by one field per member.
func dictRecordDef(cd *ast.ClassDefinition) *ast.RecordDef {
	fields := make([]*ast.RecordFieldDef, 0, len(cd.Supers)+len(cd.Members))
	for _, sup := range cd.Supers {
		fields = append(fields, &ast.RecordFieldDef{
			At:    cd.At,
			Label: superFieldName(sup),
			Type:  &types.TApp{At: cd.At, Con: DictTypeName(sup), Args: []types.Type{&types.TVar{At: cd.At, Name: cd.Param}}},
		})
	}
	for _, m := range cd.Members {
		fields = append(fields, &ast.RecordFieldDef{At: m.At, Label: m.Label, Type: m.Type})
	}
	return &ast.RecordDef{Fields: fields}
}

// classAccessors builds one top-level binding per member: a function
// from the class's dictionary to that member's field, replacing the
// class predicate the member used to carry with an explicit dictionary
// argument (spec §4.5 "classes compile to a record type plus one
// accessor per member"). Grounded on the teacher's DictElaborator, which
// rewrites a fixed, built-in operator table the same way; here the table
// is the class's own member list.
func classAccessors(cd *ast.ClassDefinition) []*ast.ExplicitValueDef {
	dictTy := &types.TApp{At: cd.At, Con: DictTypeName(cd.Name), Args: []types.Type{&types.TVar{At: cd.At, Name: cd.Param}}}
	defs := make([]*ast.ExplicitValueDef, len(cd.Members))
	for i, m := range cd.Members {
		defs[i] = &ast.ExplicitValueDef{
			At:          m.At,
			Quantifiers: []name.TypeVarName{cd.Param},
			Annotation:  types.Arrow(m.At, dictTy, m.Type),
			Name:        m.Label.AsValueName(),
			Body: &ast.ExplicitLambda{
				At:         m.At,
				Param:      dictSelfName,
				Annotation: dictTy,
				Body: &ast.ExplicitRecordAccess{
					At:     m.At,
					Record: &ast.ExplicitVar{At: m.At, Name: dictSelfName},
					Label:  m.Label,
				},
			},
		}
	}
	return defs
}
