// Package decision defines the per obstacle decisions produced by planning stages and the
// ledger that collects them over a planning cycle.
//
// Decisions are axis typed: a Longitudinal decision is Ignore or Stop, a Lateral decision is
// Ignore or Nudge. A lateral stop cannot be expressed.
package decision

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Longitudinal is a decision along the path direction.
type Longitudinal interface {
	fmt.Stringer
	isLongitudinal()
}

// Lateral is a decision across the path direction.
type Lateral interface {
	fmt.Stringer
	isLateral()
}

// Ignore means the stage does not need to react to the obstacle on that axis.
type Ignore struct{}

func (Ignore) isLongitudinal() {}
func (Ignore) isLateral()      {}

func (Ignore) String() string {
	return "ignore"
}

// StopReasonCode says why a stop was requested.
type StopReasonCode int

const (
	// StopReasonObstacle stops in front of an obstacle blocking the path.
	StopReasonObstacle StopReasonCode = iota + 1
	// StopReasonDestination stops at the end of the route.
	StopReasonDestination
)

func (c StopReasonCode) String() string {
	switch c {
	case StopReasonObstacle:
		return "STOP_REASON_OBSTACLE"
	case StopReasonDestination:
		return "STOP_REASON_DESTINATION"
	default:
		return fmt.Sprintf("STOP_REASON_%d", int(c))
	}
}

// Stop requests the vehicle stop before the obstacle.
type Stop struct {
	// DistanceS is the stop position relative to the obstacle's start s. It is never positive.
	DistanceS   float64
	StopPoint   r3.Vector
	StopHeading float64
	ReasonCode  StopReasonCode
}

func (Stop) isLongitudinal() {}

func (s Stop) String() string {
	return fmt.Sprintf("stop(%s, distance_s: %.3f, point: (%.3f, %.3f), heading: %.3f)",
		s.ReasonCode, s.DistanceS, s.StopPoint.X, s.StopPoint.Y, s.StopHeading)
}

// NudgeType is the side the path moves towards to pass the obstacle.
type NudgeType int

const (
	// LeftNudge passes with the obstacle on the vehicle's right.
	LeftNudge NudgeType = iota + 1
	// RightNudge passes with the obstacle on the vehicle's left.
	RightNudge
)

func (n NudgeType) String() string {
	switch n {
	case LeftNudge:
		return "LEFT_NUDGE"
	case RightNudge:
		return "RIGHT_NUDGE"
	default:
		return fmt.Sprintf("NUDGE_%d", int(n))
	}
}

// Nudge requests a lateral offset around the obstacle. DistanceL is signed: positive for
// LeftNudge, negative for RightNudge.
type Nudge struct {
	Type      NudgeType
	DistanceL float64
}

func (Nudge) isLateral() {}

func (n Nudge) String() string {
	return fmt.Sprintf("nudge(%s, distance_l: %.3f)", n.Type, n.DistanceL)
}

// IsIgnore reports whether a decision of either axis is Ignore.
func IsIgnore(d fmt.Stringer) bool {
	_, ok := d.(Ignore)
	return ok
}

// IsStop reports whether a longitudinal decision is a Stop.
func IsStop(d Longitudinal) bool {
	_, ok := d.(Stop)
	return ok
}
