package inject

import (
	"go.viam.com/pathdecider/decision"
)

// Ledger is an injected decision ledger.
type Ledger struct {
	decision.Ledger
	AddLongitudinalDecisionFunc func(tag, id string, d decision.Longitudinal) error
	AddLateralDecisionFunc      func(tag, id string, d decision.Lateral) error
}

// AddLongitudinalDecision calls the injected AddLongitudinalDecision or the real version.
func (l *Ledger) AddLongitudinalDecision(tag, id string, d decision.Longitudinal) error {
	if l.AddLongitudinalDecisionFunc == nil {
		return l.Ledger.AddLongitudinalDecision(tag, id, d)
	}
	return l.AddLongitudinalDecisionFunc(tag, id, d)
}

// AddLateralDecision calls the injected AddLateralDecision or the real version.
func (l *Ledger) AddLateralDecision(tag, id string, d decision.Lateral) error {
	if l.AddLateralDecisionFunc == nil {
		return l.Ledger.AddLateralDecision(tag, id, d)
	}
	return l.AddLateralDecisionFunc(tag, id, d)
}
