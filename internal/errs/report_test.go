package errs

import (
	"testing"

	"github.com/classc/classc/internal/source"
	"github.com/stretchr/testify/assert"
)

func TestReportErrorString(t *testing.T) {
	r := Newf(UnboundIdentifier, "generate", source.Pos{File: "f.cl", Line: 3, Column: 5}, "unbound identifier %q", "foo")
	assert.Contains(t, r.Error(), "GEN001")
	assert.Contains(t, r.Error(), "unbound identifier \"foo\"")
}

func TestReportJSONRoundTrip(t *testing.T) {
	r := New(OverlappingInstances, "elaborate", source.Undefined, "duplicate instance", map[string]any{"class": "Eq"})
	js, err := r.ToJSON(true)
	assert.NoError(t, err)
	assert.Contains(t, js, "ELB005")
}

func TestUndefinedPositionSentinel(t *testing.T) {
	assert.True(t, source.Undefined.IsUndefined())
}
