package generate

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/env"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// Built-in, zero-arity type constructor names.
const (
	IntCon    = "int"
	FloatCon  = "float"
	StringCon = "string"
	BoolCon   = "bool"
	UnitCon   = "unit"
)

func builtinCon(n string, pos source.Pos) types.Type {
	return &types.TApp{At: pos, Con: name.NewTypeCon(n)}
}

// literalType returns the built-in type of a literal constant.
func literalType(lit ast.Literal, pos source.Pos) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		return builtinCon(IntCon, pos)
	case ast.FloatLit:
		return builtinCon(FloatCon, pos)
	case ast.StringLit:
		return builtinCon(StringCon, pos)
	case ast.BoolLit:
		return builtinCon(BoolCon, pos)
	default:
		return builtinCon(UnitCon, pos)
	}
}

// BaseEnv returns an environment seeded with the built-in, zero-arity
// types every program can use without declaring them.
func BaseEnv() *env.Env {
	e := env.New()
	for _, n := range []string{IntCon, FloatCon, StringCon, BoolCon, UnitCon} {
		e = e.BindType(name.NewTypeCon(n), types.Star, nil)
	}
	return e
}
