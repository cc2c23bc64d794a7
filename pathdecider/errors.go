package pathdecider

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidVehicleGeometry is returned for a non-positive turning radius.
	ErrInvalidVehicleGeometry = errors.New("minimum turn radius must be positive")
	// ErrNullLedger is returned when the decider is called without a decision ledger.
	ErrNullLedger = errors.New("path decision is nil")
)

// ErrorCode classifies a failed decision pass.
type ErrorCode int

const (
	// PlanningErrorCode marks a failed decision pass for the current path candidate.
	PlanningErrorCode ErrorCode = iota + 1
)

func (c ErrorCode) String() string {
	if c == PlanningErrorCode {
		return "PLANNING_ERROR"
	}
	return fmt.Sprintf("ERROR_CODE_%d", int(c))
}

// PlanningError is the cycle level status returned by Process. The orchestrator should treat it
// as "no new decisions this cycle" for the path candidate.
type PlanningError struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func newPlanningError(msg string, err error) *PlanningError {
	return &PlanningError{Code: PlanningErrorCode, Msg: msg, Err: err}
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
}

// Unwrap exposes the cause so callers can use errors.Is.
func (e *PlanningError) Unwrap() error {
	return e.Err
}
