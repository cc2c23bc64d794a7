// Package vehicle holds the static geometry of the ego vehicle used by planning stages.
package vehicle

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/pathdecider/frenet"
)

// Params describe the vehicle footprint relative to its reference point, in meters.
type Params struct {
	Length            float64 `json:"length" mapstructure:"length"`
	Width             float64 `json:"width" mapstructure:"width"`
	FrontEdgeToCenter float64 `json:"front_edge_to_center" mapstructure:"front_edge_to_center"`
	BackEdgeToCenter  float64 `json:"back_edge_to_center" mapstructure:"back_edge_to_center"`
	LeftEdgeToCenter  float64 `json:"left_edge_to_center" mapstructure:"left_edge_to_center"`
	RightEdgeToCenter float64 `json:"right_edge_to_center" mapstructure:"right_edge_to_center"`
	MinTurnRadius     float64 `json:"min_turn_radius" mapstructure:"min_turn_radius"`
}

// DefaultParams is a mid-size passenger car.
func DefaultParams() Params {
	return Params{
		Length:            4.933,
		Width:             2.11,
		FrontEdgeToCenter: 3.89,
		BackEdgeToCenter:  1.043,
		LeftEdgeToCenter:  1.055,
		RightEdgeToCenter: 1.055,
		MinTurnRadius:     5.05386147161,
	}
}

// Validate ensures the geometry is usable; path is the config path used in error messages.
func (p Params) Validate(path string) error {
	var errs error
	if p.Width <= 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(path, "width"))
	}
	if p.MinTurnRadius <= 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(path, "min_turn_radius"))
	}
	for name, v := range map[string]float64{
		"length":               p.Length,
		"front_edge_to_center": p.FrontEdgeToCenter,
		"back_edge_to_center":  p.BackEdgeToCenter,
		"left_edge_to_center":  p.LeftEdgeToCenter,
		"right_edge_to_center": p.RightEdgeToCenter,
	} {
		if v < 0 {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path, errors.Errorf("%s cannot be negative", name)))
		}
	}
	return errs
}

// HalfWidth is half the vehicle width.
func (p Params) HalfWidth() float64 {
	return p.Width / 2.0
}

// MinSafeTurnRadius is the radius swept by the outermost corner of the vehicle when turning at
// MinTurnRadius.
func (p Params) MinSafeTurnRadius() float64 {
	lat := math.Max(p.LeftEdgeToCenter, p.RightEdgeToCenter)
	lon := math.Max(p.FrontEdgeToCenter, p.BackEdgeToCenter)
	return math.Hypot(lat+p.MinTurnRadius, lon)
}

// SLBoundaryAt is the vehicle footprint with its reference point at (s, l) and heading along the
// reference line.
func (p Params) SLBoundaryAt(s, l float64) frenet.SLBoundary {
	return frenet.SLBoundary{
		StartS: s - p.BackEdgeToCenter,
		EndS:   s + p.FrontEdgeToCenter,
		StartL: l - p.RightEdgeToCenter,
		EndL:   l + p.LeftEdgeToCenter,
	}
}
