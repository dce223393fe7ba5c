// Package ast defines the two program-tree variants described in spec
// §3: Implicit (binding annotations optional, type applications
// inferred) and Explicit (all type annotations and applications
// present). Both variants share the same pattern language, type
// declarations, and class declarations — only the expression trees and
// value-binding shapes differ, the way the teacher's ast.go keeps one
// Node/Expr closed-variant hierarchy per concern and dispatches with
// type switches rather than an open interface hierarchy.
package ast

import (
	"fmt"
	"strings"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// LiteralKind tags the shape of a primitive literal.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	UnitLit
)

// Literal is a primitive constant appearing in source or in a pattern.
type Literal struct {
	Kind LiteralKind
	Raw  string // textual form, e.g. "42", "3.14", "\"hi\"", "true"
}

func (l Literal) String() string { return l.Raw }

// Pattern is the common pattern language used by match expressions in
// both AST variants (spec §4.4 "Pattern fragments").
type Pattern interface {
	Pos() source.Pos
	String() string
	patternNode()
}

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct{ At source.Pos }

func (p *WildcardPattern) patternNode()      {}
func (p *WildcardPattern) Pos() source.Pos   { return p.At }
func (p *WildcardPattern) String() string    { return "_" }

// PrimitivePattern matches a literal value exactly.
type PrimitivePattern struct {
	At    source.Pos
	Value Literal
}

func (p *PrimitivePattern) patternNode()    {}
func (p *PrimitivePattern) Pos() source.Pos { return p.At }
func (p *PrimitivePattern) String() string  { return p.Value.String() }

// VarPattern binds the scrutinee to Name.
type VarPattern struct {
	At   source.Pos
	Name name.ValueName
}

func (p *VarPattern) patternNode()    {}
func (p *VarPattern) Pos() source.Pos { return p.At }
func (p *VarPattern) String() string  { return p.Name.String() }

// OrPattern is a disjunction of alternatives; every alternative must
// bind the same variable names at the same types (I6, spec B-class
// PatternsMustBindSameVariables).
type OrPattern struct {
	At           source.Pos
	Alternatives []Pattern
}

func (p *OrPattern) patternNode()    {}
func (p *OrPattern) Pos() source.Pos { return p.At }
func (p *OrPattern) String() string {
	parts := make([]string, len(p.Alternatives))
	for i, a := range p.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// AndPattern is a conjunction of sub-patterns matched against the same
// scrutinee; the bound name sets must be disjoint (I6, NonLinearPattern
// otherwise).
type AndPattern struct {
	At       source.Pos
	Patterns []Pattern
}

func (p *AndPattern) patternNode()    {}
func (p *AndPattern) Pos() source.Pos { return p.At }
func (p *AndPattern) String() string {
	parts := make([]string, len(p.Patterns))
	for i, a := range p.Patterns {
		parts[i] = a.String()
	}
	return strings.Join(parts, " & ")
}

// AsPattern binds Alias to the whole match of Inner.
type AsPattern struct {
	At    source.Pos
	Alias name.ValueName
	Inner Pattern
}

func (p *AsPattern) patternNode()    {}
func (p *AsPattern) Pos() source.Pos { return p.At }
func (p *AsPattern) String() string  { return fmt.Sprintf("%s@%s", p.Alias, p.Inner) }

// TypedPattern ascribes a type to Inner.
type TypedPattern struct {
	At         source.Pos
	Inner      Pattern
	Annotation types.Type
}

func (p *TypedPattern) patternNode()    {}
func (p *TypedPattern) Pos() source.Pos { return p.At }
func (p *TypedPattern) String() string  { return fmt.Sprintf("(%s :: %s)", p.Inner, p.Annotation) }

// ConstructorPattern matches a data constructor applied to argument
// patterns.
type ConstructorPattern struct {
	At   source.Pos
	Con  name.LabelName
	Args []Pattern
}

func (p *ConstructorPattern) patternNode()    {}
func (p *ConstructorPattern) Pos() source.Pos { return p.At }
func (p *ConstructorPattern) String() string {
	if len(p.Args) == 0 {
		return p.Con.String()
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Con, strings.Join(parts, ", "))
}

// TypeDefinitions is a mutually-recursive group of type declarations.
type TypeDefinitions struct {
	At   source.Pos
	Defs []*TypeDef
}

// TypeDef is either an algebraic (sum) type or a record type.
type TypeDef struct {
	At        source.Pos
	Name      name.TypeConName
	Params    []name.TypeVarName
	Algebraic *AlgebraicDef // nil if Record != nil
	Record    *RecordDef    // nil if Algebraic != nil
}

// AlgebraicDef lists the data constructors of a sum type.
type AlgebraicDef struct {
	Constructors []*DataConstructorDef
}

// DataConstructorDef is one constructor of an algebraic type.
type DataConstructorDef struct {
	At     source.Pos
	Name   name.LabelName
	Fields []types.Type
}

// RecordDef lists the fields of a record type.
type RecordDef struct {
	Fields []*RecordFieldDef
}

// RecordFieldDef is one field of a record type.
type RecordFieldDef struct {
	At    source.Pos
	Label name.LabelName
	Type  types.Type
}

// ClassMember is one member signature of a class definition.
type ClassMember struct {
	At    source.Pos
	Label name.LabelName
	Type  types.Type
}

// ClassDefinition declares a type class: a name, single parameter
// variable, superclasses, and members (spec §3). IsConstructorClass
// marks a higher-kinded class whose methods bypass member-type equality
// checks during instance elaboration (spec §9 Open Question, preserved
// verbatim).
type ClassDefinition struct {
	At                 source.Pos
	Name               name.TypeConName
	Param              name.TypeVarName
	Supers             []name.TypeConName
	Members            []ClassMember
	IsConstructorClass bool
}
