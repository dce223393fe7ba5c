package constraint

import (
	"testing"

	"github.com/classc/classc/internal/name"
	"github.com/stretchr/testify/assert"
)

func TestAndFlattensAndDropsTrue(t *testing.T) {
	c := And(True{}, Eq{}, Conj{Constraints: []Constraint{Eq{}, Eq{}}})
	conj, ok := c.(Conj)
	assert.True(t, ok)
	assert.Len(t, conj.Constraints, 3)
}

func TestAndSingleCollapses(t *testing.T) {
	c := And(True{}, Eq{})
	_, isEq := c.(Eq)
	assert.True(t, isEq)
}

func TestAndAllTrueIsTrue(t *testing.T) {
	c := And(True{}, True{})
	_, isTrue := c.(True)
	assert.True(t, isTrue)
}

func TestMonoHeaderShape(t *testing.T) {
	sc := MonoHeader(name.NewValue("x"), nil, True{}, nil)
	assert.Contains(t, sc.Header, "x")
	assert.Empty(t, sc.Rigid)
	assert.Empty(t, sc.Flexible)
}
