// Package elaborate implements the Elaborator: the dictionary-passing
// translation that turns a class-qualified Explicit program into a
// class-free one (spec §4.5). Grounded on the teacher's
// elaborate/dictionaries.go (DictElaborator.transformExpr recursive
// tree-rewrite shape) and elaborate/elaborate.go (the block-by-block
// driver), generalized from the teacher's built-in, string-keyed
// dictionary registry to user-defined record-of-functions dictionaries
// with full superclass λ-abstraction: a class becomes a record type
// plus one accessor function per member, and an instance becomes a
// dictionary-constructor value binding abstracted over one parameter
// per direct superclass and one per context predicate, never a
// placeholder.
package elaborate

import (
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// dictSelfName is the accessor functions' bound dictionary parameter.
var dictSelfName = name.NewValue("$d")

func dictKey(class name.TypeConName, varName name.TypeVarName) string {
	return class.String() + "::" + varName.String()
}

// dictParamName is the conventional name of the dictionary parameter an
// instance constructor or a predicate-carrying definition abstracts
// over for predicate (class, varName). Class member accessors use
// dictSelfName instead.
func dictParamName(class name.TypeConName, varName name.TypeVarName) name.ValueName {
	return name.NewValue("$dict_" + class.String() + "_" + varName.String())
}

// DictTypeName is the synthetic record type a class elaborates to.
func DictTypeName(class name.TypeConName) name.TypeConName {
	return name.NewTypeCon("Dict$" + class.String())
}

// DictValueName is the dictionary-constructor binding an instance
// elaborates to.
func DictValueName(class, head name.TypeConName) name.ValueName {
	return name.NewValue("$dict_" + class.String() + "_" + head.String())
}

// superFieldName is the record field an instance's dictionary uses to
// embed its direct superclass's dictionary.
func superFieldName(sup name.TypeConName) name.LabelName {
	return name.NewLabel("$super_" + sup.String())
}

// applyParams builds TApp(con, [TVar(p) for p in params]).
func applyParams(con name.TypeConName, params []name.TypeVarName, pos source.Pos) types.Type {
	args := make([]types.Type, len(params))
	for i, p := range params {
		args[i] = &types.TVar{At: pos, Name: p}
	}
	return &types.TApp{At: pos, Con: con, Args: args}
}
