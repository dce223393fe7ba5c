// Package name defines the four lexical namespaces of the language:
// value names, type-variable names, type-constructor/class names, and
// record-label/data-constructor names. Each is a thin wrapper over a
// canonicalized identifier string so the four namespaces cannot be
// confused at compile time even though they share syntax.
package name

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// canonicalize applies the same boundary normalization the lexer would:
// strip a UTF-8 BOM and fold to Unicode NFC, so that two lexically
// equivalent spellings of an identifier always compare equal downstream.
func canonicalize(s string) string {
	b := []byte(s)
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if !norm.NFC.IsNormal(b) {
		b = norm.NFC.Bytes(b)
	}
	return string(b)
}

// ValueName identifies a value-level binding (let-bound name, function
// parameter, top-level definition).
type ValueName struct{ s string }

// NewValue constructs a ValueName from raw source text.
func NewValue(s string) ValueName { return ValueName{canonicalize(s)} }

func (v ValueName) String() string    { return v.s }
func (v ValueName) IsZero() bool      { return v.s == "" }
func (v ValueName) Equal(o ValueName) bool { return v.s == o.s }
func (v ValueName) Compare(o ValueName) int { return compareStrings(v.s, o.s) }

// TypeVarName identifies a type variable, either rigid (user-written)
// or flexible (solver-introduced).
type TypeVarName struct{ s string }

func NewTypeVar(s string) TypeVarName { return TypeVarName{canonicalize(s)} }

func (t TypeVarName) String() string        { return t.s }
func (t TypeVarName) IsZero() bool          { return t.s == "" }
func (t TypeVarName) Equal(o TypeVarName) bool  { return t.s == o.s }
func (t TypeVarName) Compare(o TypeVarName) int { return compareStrings(t.s, o.s) }

// TypeConName identifies a type constructor or a class name; source
// syntax draws both from the same namespace (an uppercase identifier),
// so a single wrapper type models both uses.
type TypeConName struct{ s string }

func NewTypeCon(s string) TypeConName { return TypeConName{canonicalize(s)} }

func (t TypeConName) String() string        { return t.s }
func (t TypeConName) IsZero() bool          { return t.s == "" }
func (t TypeConName) Equal(o TypeConName) bool  { return t.s == o.s }
func (t TypeConName) Compare(o TypeConName) int { return compareStrings(t.s, o.s) }

// LabelName identifies a record label or a data constructor; both draw
// from a dedicated sub-namespace distinct from ValueName and TypeConName.
type LabelName struct{ s string }

func NewLabel(s string) LabelName { return LabelName{canonicalize(s)} }

func (l LabelName) String() string       { return l.s }
func (l LabelName) IsZero() bool         { return l.s == "" }
func (l LabelName) Equal(o LabelName) bool  { return l.s == o.s }
func (l LabelName) Compare(o LabelName) int { return compareStrings(l.s, o.s) }

// AsValueName views a LabelName as a ValueName. Class members are
// declared with a LabelName (they double as the dictionary record's
// field label) but are elaborated into an ordinary value-level
// accessor binding called by the same identifier (spec §4.5) — this
// conversion is the explicit, intentional crossing point between the
// two namespaces; it is never used to alias an arbitrary label as a
// value.
func (l LabelName) AsValueName() ValueName { return ValueName{l.s} }

// AsLabelName views a ValueName as a LabelName, the inverse of
// AsValueName, used by the parser to turn a parsed value name (including
// a parenthesized operator such as `(+)`) into the label of a record
// field, a class member or an instance member binding.
func (v ValueName) AsLabelName() LabelName { return LabelName{v.s} }

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
