package pathdecider

import (
	"go.viam.com/pathdecider/decision"
	"go.viam.com/pathdecider/frenet"
	"go.viam.com/pathdecider/obstacle"
	"go.viam.com/pathdecider/referenceline"
)

// GenerateObjectStopDecision builds the stop decision for an obstacle that blocks the path. The
// route destination stops at a fixed configured distance; anything else stops where a minimum
// radius turn could still clear it.
func (d *Decider) GenerateObjectStopDecision(
	o *obstacle.Obstacle,
	refLine referenceline.Provider,
	adcBoundary frenet.SLBoundary,
) (decision.Stop, error) {
	stop := decision.Stop{}

	var stopDistance float64
	if o.ID == d.cfg.DestinationObstacleID {
		stop.ReasonCode = decision.StopReasonDestination
		stopDistance = d.cfg.StopDistanceDestination
	} else {
		var err error
		stopDistance, err = MinimumRadiusStopDistance(
			o.SLBoundary,
			adcBoundary,
			d.vehicle.Width,
			d.vehicle.MinSafeTurnRadius(),
			d.cfg.StopDistanceBounds(),
		)
		if err != nil {
			return decision.Stop{}, err
		}
		stop.ReasonCode = decision.StopReasonObstacle
	}
	stop.DistanceS = -stopDistance

	ref := refLine.GetReferencePoint(o.SLBoundary.StartS - stopDistance)
	stop.StopPoint.X = ref.Point.X
	stop.StopPoint.Y = ref.Point.Y
	stop.StopHeading = ref.Heading
	return stop, nil
}
