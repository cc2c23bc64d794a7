package decision

import (
	"math"

	"github.com/pkg/errors"
)

// Priorities used when two stages decide the same axis. Higher wins.
var (
	longitudinalPriority = map[string]int{"ignore": 0, "stop": 500}
	lateralPriority      = map[string]int{"ignore": 0, "nudge": 100}
)

func longitudinalKind(d Longitudinal) string {
	if IsStop(d) {
		return "stop"
	}
	return "ignore"
}

func lateralKind(d Lateral) string {
	if _, ok := d.(Nudge); ok {
		return "nudge"
	}
	return "ignore"
}

// MergeLongitudinal combines an existing longitudinal decision with a new one. A stop is never
// replaced by an ignore; of two stops the one furthest before the obstacle is kept.
func MergeLongitudinal(existing, incoming Longitudinal) Longitudinal {
	if existing == nil {
		return incoming
	}
	lhs, rhs := longitudinalPriority[longitudinalKind(existing)], longitudinalPriority[longitudinalKind(incoming)]
	switch {
	case lhs > rhs:
		return existing
	case rhs > lhs:
		return incoming
	}

	existingStop, ok := existing.(Stop)
	if !ok {
		return existing
	}
	incomingStop := incoming.(Stop)
	if incomingStop.DistanceS < existingStop.DistanceS {
		return incomingStop
	}
	return existingStop
}

// MergeLateral combines an existing lateral decision with a new one. A nudge is never replaced
// by an ignore; of two nudges the larger offset is kept. Nudges in opposite directions cannot be
// merged.
func MergeLateral(existing, incoming Lateral) (Lateral, error) {
	if existing == nil {
		return incoming, nil
	}
	lhs, rhs := lateralPriority[lateralKind(existing)], lateralPriority[lateralKind(incoming)]
	switch {
	case lhs > rhs:
		return existing, nil
	case rhs > lhs:
		return incoming, nil
	}

	existingNudge, ok := existing.(Nudge)
	if !ok {
		return existing, nil
	}
	incomingNudge := incoming.(Nudge)
	if existingNudge.Type != incomingNudge.Type {
		return nil, errors.Wrapf(ErrIncompatibleNudge, "%s vs %s", existingNudge, incomingNudge)
	}
	if math.Abs(incomingNudge.DistanceL) > math.Abs(existingNudge.DistanceL) {
		return incomingNudge, nil
	}
	return existingNudge, nil
}
