package frenet

import (
	"fmt"

	"github.com/pkg/errors"
)

// SLBoundary is an axis aligned box in the curvilinear frame.
type SLBoundary struct {
	StartS float64 `json:"start_s"`
	EndS   float64 `json:"end_s"`
	StartL float64 `json:"start_l"`
	EndL   float64 `json:"end_l"`
}

// Validate checks StartS <= EndS and StartL <= EndL.
func (b SLBoundary) Validate() error {
	if b.StartS > b.EndS {
		return errors.Errorf("start_s %.3f is after end_s %.3f", b.StartS, b.EndS)
	}
	if b.StartL > b.EndL {
		return errors.Errorf("start_l %.3f is left of end_l %.3f", b.StartL, b.EndL)
	}
	return nil
}

// Width is the lateral extent of the box.
func (b SLBoundary) Width() float64 {
	return b.EndL - b.StartL
}

// Length is the longitudinal extent of the box.
func (b SLBoundary) Length() float64 {
	return b.EndS - b.StartS
}

func (b SLBoundary) String() string {
	return fmt.Sprintf("s: [%.3f, %.3f], l: [%.3f, %.3f]", b.StartS, b.EndS, b.StartL, b.EndL)
}
