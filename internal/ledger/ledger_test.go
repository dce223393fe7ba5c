package ledger

import (
	"testing"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalThenNormalOK(t *testing.T) {
	l := New()
	assert.Nil(t, l.BindSimple(name.NewValue("x")))
	assert.Nil(t, l.BindSimple(name.NewValue("x")))
}

func TestOverloadedThenNormalRejected(t *testing.T) {
	l := New()
	eq := name.NewValue("eq")
	assert.Nil(t, l.BindScheme(eq, []types.ClassPredicate{{Class: name.NewTypeCon("Eq"), Var: name.NewTypeVar("a")}}))
	err := l.BindSimple(eq)
	assert.NotNil(t, err)
	assert.Equal(t, "ELB002", string(err.Code))
}

func TestNormalThenOverloadedRejected(t *testing.T) {
	l := New()
	x := name.NewValue("x")
	assert.Nil(t, l.BindSimple(x))
	err := l.BindScheme(x, []types.ClassPredicate{{Class: name.NewTypeCon("Eq"), Var: name.NewTypeVar("a")}})
	assert.NotNil(t, err)
}

func TestModeOfReportsSeen(t *testing.T) {
	l := New()
	_, ok := l.ModeOf(name.NewValue("z"))
	assert.False(t, ok)
	l.BindSimple(name.NewValue("z"))
	m, ok := l.ModeOf(name.NewValue("z"))
	assert.True(t, ok)
	assert.Equal(t, Normal, m)
}
