package types

import (
	"testing"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/stretchr/testify/assert"
)

func tv(s string) Type {
	return &TVar{Name: name.NewTypeVar(s)}
}

func con(s string, args ...Type) Type {
	return &TApp{Con: name.NewTypeCon(s), Args: args}
}

func TestKindOfArity(t *testing.T) {
	assert.Equal(t, Star, KindOfArity(0))
	assert.True(t, KindOfArity(2).Equals(KArrow{From: Star, To: KArrow{From: Star, To: Star}}))
}

func TestArrowRoundTrip(t *testing.T) {
	a := Arrow(source.Undefined, con("int"), con("bool"))
	in, out, ok := DestructTyArrow(a)
	assert.True(t, ok)
	assert.True(t, Equivalent(in, con("int")))
	assert.True(t, Equivalent(out, con("bool")))
}

func TestNTyArrowDestruct(t *testing.T) {
	full := NTyArrow(source.Undefined, []Type{con("int"), con("bool")}, con("string"))
	ins, out := DestructNTyArrow(full)
	assert.Len(t, ins, 2)
	assert.True(t, Equivalent(ins[0], con("int")))
	assert.True(t, Equivalent(ins[1], con("bool")))
	assert.True(t, Equivalent(out, con("string")))
}

func TestEquivalentAlphaRenaming(t *testing.T) {
	t1 := Arrow(source.Undefined, tv("a"), tv("a"))
	t2 := Arrow(source.Undefined, tv("b"), tv("b"))
	assert.True(t, Equivalent(t1, t2))

	t3 := Arrow(source.Undefined, tv("a"), tv("b"))
	assert.False(t, Equivalent(t1, t3))
}

func TestSubstituteCaptureUnaware(t *testing.T) {
	ty := Arrow(source.Undefined, tv("a"), tv("b"))
	sub := Substitute(map[string]Type{"a": con("int")}, ty)
	in, out, _ := DestructTyArrow(sub)
	assert.True(t, Equivalent(in, con("int")))
	assert.True(t, Equivalent(out, tv("b")))
}

func TestFreeVarsAndTypeConstructors(t *testing.T) {
	ty := con("List", tv("a"))
	fv := FreeVars(ty)
	assert.Contains(t, fv, "a")
	tc := TypeConstructors(ty)
	assert.Contains(t, tc, "List")
}

func TestSortedPredicatesDeterministic(t *testing.T) {
	preds := []ClassPredicate{
		{Class: name.NewTypeCon("Ord"), Var: name.NewTypeVar("a")},
		{Class: name.NewTypeCon("Eq"), Var: name.NewTypeVar("a")},
	}
	sorted := SortedPredicates(preds)
	assert.Equal(t, "Eq", sorted[0].Class.String())
	assert.Equal(t, "Ord", sorted[1].Class.String())
}
