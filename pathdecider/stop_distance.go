package pathdecider

import (
	"math"

	"go.viam.com/pathdecider/frenet"
	"go.viam.com/pathdecider/utils"
)

// stopDistanceBuffer is added to every geometric stop distance.
const stopDistanceBuffer = 0.5

// StopDistanceBounds clamps a computed stop distance.
type StopDistanceBounds struct {
	Min float64
	Max float64
}

// MinimumRadiusStopDistance is how far before an obstacle the vehicle must stop so that a turn at
// minTurnRadius still clears it laterally. obstacleBox and adcBox are the obstacle's and the
// vehicle's footprints in the same frame.
//
// The lateral offset to clear is the worst case edge separation, no smaller than the vehicle
// width and no larger than the vehicle width plus the obstacle width. For an arc of radius R
// that has moved sideways by d, the distance covered forward is sqrt(R^2 - (R-d)^2).
func MinimumRadiusStopDistance(
	obstacleBox, adcBox frenet.SLBoundary,
	vehicleWidth, minTurnRadius float64,
	bounds StopDistanceBounds,
) (float64, error) {
	if minTurnRadius <= 0 || math.IsNaN(minTurnRadius) {
		return 0, ErrInvalidVehicleGeometry
	}

	lateralDiff := math.Max(
		math.Abs(obstacleBox.StartL-adcBox.EndL),
		math.Abs(obstacleBox.EndL-adcBox.StartL),
	)
	lateralDiff = math.Max(lateralDiff, vehicleWidth)
	lateralDiff = math.Min(lateralDiff, vehicleWidth+obstacleBox.Width())
	// Past one radius sideways the arc has turned a full quarter; clamp so the radicand stays
	// non-negative.
	lateralDiff = math.Min(lateralDiff, minTurnRadius)

	radicand := utils.Square(minTurnRadius) - utils.Square(minTurnRadius-lateralDiff)
	stopDistance := math.Sqrt(math.Max(radicand, 0)) + stopDistanceBuffer

	return utils.Clamp(stopDistance, bounds.Min, bounds.Max), nil
}
