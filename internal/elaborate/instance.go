package elaborate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
)

// dictParamSpec is one formal parameter of a dictionary constructor: the
// predicate it discharges, its synthesized name, and its type.
type dictParamSpec struct {
	pred types.ClassPredicate
	name name.ValueName
	ty   types.Type
}

// dictParamsFor builds one dictParamSpec per predicate in preds, using
// the same $dict_Class_var naming convention instanceDict uses for
// superclass and context parameters, and extends base with an entry per
// new parameter. Any scheme carrying predicates needs its own
// dictionary parameters abstracted over and threaded into its body's
// locals, not only class members and instance methods (spec §4.5's
// dictionary-passing translation is not scoped to those two sites).
func dictParamsFor(preds []types.ClassPredicate, base map[string]name.ValueName) (map[string]name.ValueName, []dictParamSpec) {
	if len(preds) == 0 {
		return base, nil
	}
	locals := make(map[string]name.ValueName, len(base)+len(preds))
	for k, v := range base {
		locals[k] = v
	}
	params := make([]dictParamSpec, len(preds))
	for i, p := range preds {
		pname := dictParamName(p.Class, p.Var)
		params[i] = dictParamSpec{
			pred: p,
			name: pname,
			ty:   &types.TApp{Con: DictTypeName(p.Class), Args: []types.Type{&types.TVar{Name: p.Var}}},
		}
		locals[dictKey(p.Class, p.Var)] = pname
	}
	return locals, params
}

// instanceDict builds the dictionary-constructor binding an instance
// elaborates to: a value abstracted over one parameter per direct
// superclass of the instance's class (at the class's own parameter) and
// one per context predicate, whose body is a record populating the
// superclass fields from those parameters and the member fields from
// the instance's (recursively elaborated) member bodies. Every
// superclass gets its own explicit parameter; there is never a
// placeholder dictionary (spec §4.5 Open Question, resolved: full
// λ-abstraction over superclass dictionaries).
func (el *Elaborator) instanceDict(cd *ast.ClassDefinition, inst *ast.ExplicitInstance) (*ast.ExplicitValueDef, *errs.Report) {
	headApplied := applyParams(inst.Head, inst.Params, inst.At)

	params := make([]dictParamSpec, 0, len(cd.Supers)+len(inst.Context))
	for _, sup := range cd.Supers {
		p := types.ClassPredicate{Class: sup, Var: cd.Param}
		params = append(params, dictParamSpec{
			pred: p,
			name: dictParamName(sup, cd.Param),
			ty:   &types.TApp{At: inst.At, Con: DictTypeName(sup), Args: []types.Type{headApplied}},
		})
	}
	for _, ctx := range inst.Context {
		params = append(params, dictParamSpec{
			pred: ctx,
			name: dictParamName(ctx.Class, ctx.Var),
			ty:   &types.TApp{At: inst.At, Con: DictTypeName(ctx.Class), Args: []types.Type{&types.TVar{At: inst.At, Name: ctx.Var}}},
		})
	}

	locals := map[string]name.ValueName{}
	for _, p := range params {
		locals[dictKey(p.pred.Class, p.pred.Var)] = p.name
	}

	memberByLabel := map[string]ast.ExplicitExpr{}
	for _, m := range inst.Members {
		rewritten, err := el.rewriteExpr(m.Body, locals)
		if err != nil {
			return nil, err
		}
		memberByLabel[m.Label.String()] = rewritten
	}

	fields := make([]ast.ExplicitRecordField, 0, len(cd.Supers)+len(inst.Members))
	for _, sup := range cd.Supers {
		fields = append(fields, ast.ExplicitRecordField{
			At:    inst.At,
			Label: superFieldName(sup),
			Value: &ast.ExplicitVar{At: inst.At, Name: dictParamName(sup, cd.Param)},
		})
	}
	for _, m := range inst.Members {
		fields = append(fields, ast.ExplicitRecordField{At: m.At, Label: m.Label, Value: memberByLabel[m.Label.String()]})
	}

	body := ast.ExplicitExpr(&ast.ExplicitRecordCon{At: inst.At, TypeName: DictTypeName(cd.Name), Fields: fields})
	for i := len(params) - 1; i >= 0; i-- {
		body = &ast.ExplicitLambda{At: inst.At, Param: params[i].name, Annotation: params[i].ty, Body: body}
	}

	paramTypes := make([]types.Type, len(params))
	predicates := make([]types.ClassPredicate, len(params))
	for i, p := range params {
		paramTypes[i] = p.ty
		predicates[i] = p.pred
	}
	annotation := types.NTyArrow(inst.At, paramTypes, &types.TApp{At: inst.At, Con: DictTypeName(cd.Name), Args: []types.Type{headApplied}})

	return &ast.ExplicitValueDef{
		At:          inst.At,
		Quantifiers: inst.Params,
		Predicates:  predicates,
		Annotation:  annotation,
		Name:        DictValueName(cd.Name, inst.Head),
		Body:        body,
	}, nil
}

// resolveDict builds the expression producing the dictionary witnessing
// that class holds at headType: either a reference to an already-bound
// dictionary parameter (when headType is a rigid variable covered by
// locals) or an application of the concrete instance's dictionary
// constructor to its own recursively-resolved superclass and context
// dictionaries.
func (el *Elaborator) resolveDict(class name.TypeConName, headType types.Type, locals map[string]name.ValueName) (ast.ExplicitExpr, *errs.Report) {
	if tv, ok := headType.(*types.TVar); ok {
		if pname, found := locals[dictKey(class, tv.Name)]; found {
			return &ast.ExplicitVar{At: tv.At, Name: pname}, nil
		}
		return nil, errs.Newf(errs.UnresolvedOverloading, "elaborate", tv.At,
			"no dictionary in scope for %s %s", class, tv.Name)
	}
	app, ok := headType.(*types.TApp)
	if !ok {
		return nil, errs.Newf(errs.UnresolvedOverloading, "elaborate", headType.Pos(),
			"cannot resolve a dictionary for %s %s", class, headType)
	}
	inst, found := el.env.LookupInstance(class, app.Con)
	if !found {
		return nil, errs.Newf(errs.UnresolvedOverloading, "elaborate", app.At,
			"no instance of %s for %s", class, app.Con)
	}
	classInfo, err := el.env.LookupClass(class)
	if err != nil {
		return nil, err
	}

	sigma := make(map[string]types.Type, len(inst.Params))
	for i, p := range inst.Params {
		if i < len(app.Args) {
			sigma[p.String()] = app.Args[i]
		}
	}

	result := ast.ExplicitExpr(&ast.ExplicitVar{At: app.At, Name: DictValueName(class, app.Con)})
	for _, sup := range classInfo.Supers {
		supDict, serr := el.resolveDict(sup, headType, locals)
		if serr != nil {
			return nil, serr
		}
		result = &ast.ExplicitApp{At: app.At, Func: result, Arg: supDict}
	}
	for _, ctx := range inst.Context {
		argTy := types.Substitute(sigma, &types.TVar{At: app.At, Name: ctx.Var})
		ctxDict, cerr := el.resolveDict(ctx.Class, argTy, locals)
		if cerr != nil {
			return nil, cerr
		}
		result = &ast.ExplicitApp{At: app.At, Func: result, Arg: ctxDict}
	}
	return result, nil
}
