// Package frenet holds the curvilinear (s, l) representation of a planned path and of obstacle
// footprints. s is the distance along the reference line, l the signed lateral offset (positive
// to the left).
package frenet

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
)

// ErrEmptyPath is returned when a path has no samples. A decision pass cannot run without one.
var ErrEmptyPath = errors.New("path is empty")

// SLPoint is a single path sample in the curvilinear frame.
type SLPoint struct {
	S float64 `json:"s"`
	L float64 `json:"l"`
}

func (p SLPoint) String() string {
	return fmt.Sprintf("(s: %.3f, l: %.3f)", p.S, p.L)
}

// Path is an ordered, non-empty sequence of SLPoints with strictly increasing s.
type Path struct {
	points []SLPoint
	interp interp.PiecewiseLinear
}

// NewPath builds a Path. It fails if points is empty or if s does not strictly increase.
func NewPath(points []SLPoint) (*Path, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPath
	}
	for i := 1; i < len(points); i++ {
		if points[i].S <= points[i-1].S {
			return nil, errors.Errorf("path s must strictly increase, got %v after %v at index %d",
				points[i], points[i-1], i)
		}
	}

	p := &Path{points: append([]SLPoint(nil), points...)}
	if len(points) > 1 {
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for i, pt := range points {
			xs[i], ys[i] = pt.S, pt.L
		}
		if err := p.interp.Fit(xs, ys); err != nil {
			return nil, errors.Wrap(err, "cannot fit path")
		}
	}
	return p, nil
}

// Validate reports ErrEmptyPath for a nil or zero value Path.
func (p *Path) Validate() error {
	if p == nil || len(p.points) == 0 {
		return ErrEmptyPath
	}
	return nil
}

// Len returns the number of samples.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.points)
}

// Points returns a copy of the samples.
func (p *Path) Points() []SLPoint {
	return append([]SLPoint(nil), p.points...)
}

// Front returns the first sample. The path must not be empty.
func (p *Path) Front() SLPoint {
	return p.points[0]
}

// Back returns the last sample. The path must not be empty.
func (p *Path) Back() SLPoint {
	return p.points[len(p.points)-1]
}

// ContainsS reports whether s lies within [Front().S, Back().S].
func (p *Path) ContainsS(s float64) bool {
	return s >= p.Front().S && s <= p.Back().S
}

// EvaluateByS returns the lateral offset at s, linearly interpolated between the bracketing
// samples. Outside the path the nearest endpoint's l is returned.
func (p *Path) EvaluateByS(s float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if len(p.points) == 1 {
		return p.points[0].L, nil
	}
	return p.interp.Predict(s), nil
}
