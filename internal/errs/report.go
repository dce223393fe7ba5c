// Package errs implements the ErrorReporting component: structured
// error values with source positions and no recovery (spec §4.8,
// §7). Grounded on the teacher's internal/errors/report.go shape
// (Report: Schema/Code/Phase/Message/Span/Data) and codes.go's
// stable per-phase code taxonomy, adapted to the GEN###/ELB###/SLV###
// codes SPEC_FULL.md §7 defines.
package errs

import (
	"encoding/json"
	"fmt"

	"github.com/classc/classc/internal/source"
)

// Kind enumerates the typed error kinds of spec §7.
type Kind string

const (
	UnboundIdentifier                      Kind = "GEN001"
	UnboundTypeVariable                    Kind = "GEN002"
	UnboundClass                           Kind = "GEN003"
	UnboundLabel                           Kind = "GEN004"
	IllKindedType                          Kind = "GEN005"
	IncompatibleKinds                      Kind = "GEN006"
	IncompatibleTypes                      Kind = "GEN007"
	ApplicationToNonFunctional             Kind = "GEN008"
	RecordExpected                         Kind = "GEN009"
	LabelDoesNotBelong                     Kind = "GEN010"
	MultipleLabels                         Kind = "GEN011"
	InvalidRecordInstantiation             Kind = "GEN012"
	InvalidDataConstructorApplication      Kind = "GEN013"
	PartialDataConstructorApplication      Kind = "GEN014"
	NotEnoughPatternArgts                  Kind = "GEN015"
	InvalidDisjunctionPattern              Kind = "GEN016"
	NonLinearPattern                       Kind = "GEN017"
	PatternsMustBindSameVariables          Kind = "GEN018"
	OnlyLetsCanIntroduceTypeAbstraction    Kind = "GEN019"
	InvalidNumberOfTypeAbstraction         Kind = "GEN020"
	SameNameInTypeAbstractionAndScheme     Kind = "GEN021"
	ValueRestriction                       Kind = "GEN022"
	InvalidDataConstructorDefinition       Kind = "GEN023"
	IncompatibleLabel                      Kind = "GEN024"

	InvalidOverloading                        Kind = "ELB001"
	OverloadedSymbolCannotBeBound              Kind = "ELB002"
	TheseTwoClassesMustNotBeInTheSameContext   Kind = "ELB003"
	UnresolvedOverloading                      Kind = "ELB004"
	OverlappingInstances                       Kind = "ELB005"

	UnsatisfiableEquation        Kind = "SLV001"
	CannotGeneralize             Kind = "SLV002"
	SolverUnresolvedOverloading  Kind = "SLV003"
)

// Report is the canonical structured error type: schema, code, phase,
// human-readable message, optional source span, and structured data
// for programmatic consumers.
type Report struct {
	Schema  string         `json:"schema"`
	Code    Kind           `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *source.Span   `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Error implements the error interface.
func (r *Report) Error() string {
	if r.Span != nil {
		return fmt.Sprintf("%s [%s] %s: %s", r.Span.Start, r.Code, r.Phase, r.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", r.Code, r.Phase, r.Message)
}

// New builds a Report at the given position. pos may be source.Undefined
// when no syntactic position is available (spec §7).
func New(code Kind, phase string, pos source.Pos, message string, data map[string]any) *Report {
	return &Report{
		Schema:  "classc.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    &source.Span{Start: pos, End: pos},
		Data:    data,
	}
}

// Newf is New with a printf-style message.
func Newf(code Kind, phase string, pos source.Pos, format string, args ...any) *Report {
	return New(code, phase, pos, fmt.Sprintf(format, args...), nil)
}

// ToJSON renders the report as JSON, indented unless compact is set.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
