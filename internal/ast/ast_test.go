package ast

import (
	"testing"

	"github.com/classc/classc/internal/name"
	"github.com/stretchr/testify/assert"
)

func TestImplicitProgramIsBuildable(t *testing.T) {
	prog := &ImplicitProgram{
		Blocks: []ImplicitBlock{
			&ImplicitDefinition{
				Defs: []*ImplicitValueDef{
					{Name: name.NewValue("id"), Body: &ImplicitLambda{
						Param: name.NewValue("x"),
						Body:  &ImplicitVar{Name: name.NewValue("x")},
					}},
				},
			},
		},
	}
	assert.Len(t, prog.Blocks, 1)
	def := prog.Blocks[0].(*ImplicitDefinition)
	assert.False(t, def.Defs[0].HasAnnotation())
}

func TestExplicitProgramIsClassFree(t *testing.T) {
	withClass := &ExplicitProgram{Blocks: []ExplicitBlock{
		&ClassDefinition{Name: name.NewTypeCon("Eq")},
	}}
	assert.False(t, withClass.IsClassFree())

	withoutClass := &ExplicitProgram{Blocks: []ExplicitBlock{
		&ExplicitDefinition{},
	}}
	assert.True(t, withoutClass.IsClassFree())
}

func TestRecordConPreservesAdvisoryName(t *testing.T) {
	rc := &ImplicitRecordCon{
		TypeName: name.NewTypeCon("Point"),
		Fields: []ImplicitRecordField{
			{Label: name.NewLabel("x"), Value: &ImplicitPrimitive{Value: Literal{Kind: IntLit, Raw: "1"}}},
		},
	}
	assert.Equal(t, "Point", rc.TypeName.String())
}
