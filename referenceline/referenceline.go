// Package referenceline maps distances along the reference line back to cartesian points.
package referenceline

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ReferencePoint is a cartesian point on the reference line with the line's heading there.
type ReferencePoint struct {
	Point   r3.Vector
	Heading float64
}

// Provider returns the reference point at a distance s along the line.
type Provider interface {
	GetReferencePoint(s float64) ReferencePoint
}

// Line is a piecewise linear reference line through a sequence of xy points. z is ignored.
type Line struct {
	points   []r3.Vector
	accumS   []float64
	headings []float64
}

// NewLine builds a Line. At least two points are required and consecutive points must differ.
func NewLine(points []r3.Vector) (*Line, error) {
	if len(points) < 2 {
		return nil, errors.Errorf("reference line needs at least 2 points, got %d", len(points))
	}

	segments := make([]float64, len(points))
	headings := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		d := flatten(points[i]).Sub(flatten(points[i-1]))
		segments[i] = d.Norm()
		if segments[i] == 0 {
			return nil, errors.Errorf("reference line points %d and %d coincide", i-1, i)
		}
		headings[i-1] = math.Atan2(d.Y, d.X)
	}

	return &Line{
		points:   append([]r3.Vector(nil), points...),
		accumS:   floats.CumSum(make([]float64, len(segments)), segments),
		headings: headings,
	}, nil
}

// Length is the total length of the line.
func (l *Line) Length() float64 {
	return l.accumS[len(l.accumS)-1]
}

// GetReferencePoint interpolates the point at s. Values outside [0, Length()] are clamped to
// the ends of the line.
func (l *Line) GetReferencePoint(s float64) ReferencePoint {
	s = math.Max(0, math.Min(s, l.Length()))

	// First segment whose end is at or beyond s.
	seg := sort.SearchFloat64s(l.accumS[1:], s)
	if seg >= len(l.headings) {
		seg = len(l.headings) - 1
	}

	start := flatten(l.points[seg])
	end := flatten(l.points[seg+1])
	ratio := (s - l.accumS[seg]) / (l.accumS[seg+1] - l.accumS[seg])
	return ReferencePoint{
		Point:   start.Add(end.Sub(start).Mul(ratio)),
		Heading: l.headings[seg],
	}
}

func flatten(v r3.Vector) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y}
}
