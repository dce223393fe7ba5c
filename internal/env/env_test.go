package env

import (
	"testing"

	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBindAndLookupScheme(t *testing.T) {
	e := New()
	e2 := e.BindSimple(name.NewValue("x"), &types.TApp{Con: name.NewTypeCon("int")})
	_, err := e.Lookup(name.NewValue("x"))
	assert.Error(t, err, "original environment must not be mutated")

	s, err2 := e2.Lookup(name.NewValue("x"))
	assert.Nil(t, err2)
	assert.Equal(t, "int", s.Body.String())
}

func TestOverlappingInstancesRejected(t *testing.T) {
	e := New()
	eq := name.NewTypeCon("Eq")
	intC := name.NewTypeCon("int")
	e2, err := e.BindInstance(&InstanceInfo{Class: eq, Head: intC})
	assert.Nil(t, err)
	_, err2 := e2.BindInstance(&InstanceInfo{Class: eq, Head: intC})
	assert.NotNil(t, err2)
	assert.Equal(t, "ELB005", string(err2.Code))
}

func TestIsSuperclassReflexiveAndTransitive(t *testing.T) {
	e := New()
	eqC := name.NewTypeCon("Eq")
	ordC := name.NewTypeCon("Ord")
	numC := name.NewTypeCon("Num")
	e = e.BindClass(&ClassInfo{Name: eqC})
	e = e.BindClass(&ClassInfo{Name: ordC, Supers: []name.TypeConName{eqC}})
	e = e.BindClass(&ClassInfo{Name: numC, Supers: []name.TypeConName{ordC}})

	assert.True(t, e.IsSuperclass(eqC, eqC), "reflexive")
	assert.True(t, e.IsSuperclass(eqC, ordC), "direct")
	assert.True(t, e.IsSuperclass(eqC, numC), "transitive")
	assert.False(t, e.IsSuperclass(ordC, eqC), "not symmetric")
}

func TestLookupLabelUnbound(t *testing.T) {
	e := New()
	_, err := e.LookupLabel(name.NewLabel("missing"))
	assert.NotNil(t, err)
	assert.Equal(t, "GEN004", string(err.Code))
}
