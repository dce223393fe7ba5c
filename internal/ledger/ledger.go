// Package ledger implements the NamespaceLedger: a process-scoped
// registry of which value names are overloaded (class members) vs
// ordinary, consulted by the Elaborator to reject illegal rebindings
// (spec §4.6, I5). Grounded on the teacher's
// internal/types/instances.go InstanceEnv.Add overlap-rejection
// pattern (monotone map + typed error on conflicting re-assertion),
// applied here to value-name modes instead of instances, and
// re-architected per spec §9 "Global mutable state" as an explicitly
// threaded state object owned by the elaboration driver rather than a
// package-level global.
package ledger

import (
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// Mode is the mode a value name has been observed in.
type Mode int

const (
	Normal Mode = iota
	Overloaded
)

// Ledger is a monotone ValueName -> Mode map: entries may be added but
// never change mode (spec §3 Lifecycles). Reset per compilation run.
type Ledger struct {
	modes map[string]Mode
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{modes: map[string]Mode{}}
}

// BindScheme records a binding with qs/preds, asserting the name's mode
// stays consistent: empty predicates assert Normal, non-empty
// predicates assert Overloaded (spec §4.6).
func (l *Ledger) BindScheme(n name.ValueName, preds []types.ClassPredicate) *errs.Report {
	if len(preds) == 0 {
		return l.assert(n, Normal)
	}
	return l.assert(n, Overloaded)
}

// BindSimple always asserts Normal (spec §4.6).
func (l *Ledger) BindSimple(n name.ValueName) *errs.Report {
	return l.assert(n, Normal)
}

func (l *Ledger) assert(n name.ValueName, mode Mode) *errs.Report {
	if existing, seen := l.modes[n.String()]; seen {
		if existing != mode {
			return errs.Newf(errs.OverloadedSymbolCannotBeBound, "elaborate", source.Undefined,
				"%s cannot be used both as an overloaded class member and as an ordinary binding", n)
		}
		return nil
	}
	l.modes[n.String()] = mode
	return nil
}

// ModeOf returns the recorded mode for n, if any.
func (l *Ledger) ModeOf(n name.ValueName) (Mode, bool) {
	m, ok := l.modes[n.String()]
	return m, ok
}
