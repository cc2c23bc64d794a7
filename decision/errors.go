package decision

import "github.com/pkg/errors"

var (
	// ErrObstacleNotFound is returned when a decision targets an obstacle the ledger does not hold.
	ErrObstacleNotFound = errors.New("obstacle not found in path decision")
	// ErrIncompatibleNudge is returned when two stages nudge the same obstacle in opposite directions.
	ErrIncompatibleNudge = errors.New("incompatible lateral nudge decisions")
)

func newObstacleNotFoundError(id string) error {
	return errors.Wrapf(ErrObstacleNotFound, "obstacle %q", id)
}
