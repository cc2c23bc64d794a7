// Package obstacle describes perceived obstacles as seen by the path decision stages: identity,
// whether they move, the speed region they were classified into, and their footprint projected
// onto the reference line.
package obstacle

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/pathdecider/frenet"
)

// BoundaryType classifies the interaction region of an obstacle's ST boundary.
type BoundaryType int

// Known boundary types. KeepClear regions are reserved for a dedicated decision stage.
const (
	BoundaryUnknown BoundaryType = iota
	BoundaryStop
	BoundaryFollow
	BoundaryYield
	BoundaryOvertake
	BoundaryKeepClear
)

var boundaryTypeNames = map[BoundaryType]string{
	BoundaryUnknown:   "UNKNOWN",
	BoundaryStop:      "STOP",
	BoundaryFollow:    "FOLLOW",
	BoundaryYield:     "YIELD",
	BoundaryOvertake:  "OVERTAKE",
	BoundaryKeepClear: "KEEP_CLEAR",
}

func (bt BoundaryType) String() string {
	if name, ok := boundaryTypeNames[bt]; ok {
		return name
	}
	return "UNKNOWN"
}

// BoundaryTypeFromString parses names such as "KEEP_CLEAR" (case-insensitive). The empty string
// is BoundaryUnknown.
func BoundaryTypeFromString(name string) (BoundaryType, error) {
	if name == "" {
		return BoundaryUnknown, nil
	}
	for bt, btName := range boundaryTypeNames {
		if strings.EqualFold(btName, name) {
			return bt, nil
		}
	}
	return BoundaryUnknown, errors.Errorf("unknown boundary type %q", name)
}

// MarshalJSON encodes the boundary type by name.
func (bt BoundaryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(bt.String())
}

// UnmarshalJSON decodes a boundary type name.
func (bt *BoundaryType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := BoundaryTypeFromString(name)
	if err != nil {
		return err
	}
	*bt = parsed
	return nil
}

// Obstacle is the per-cycle static description of a perceived obstacle.
type Obstacle struct {
	ID           string            `json:"id"`
	Static       bool              `json:"is_static"`
	BoundaryType BoundaryType      `json:"boundary_type"`
	SLBoundary   frenet.SLBoundary `json:"perception_sl_boundary"`
}

// IsStatic reports whether the obstacle is not moving.
func (o *Obstacle) IsStatic() bool {
	return o.Static
}

// IsKeepClear reports whether the obstacle belongs to a keep-clear region.
func (o *Obstacle) IsKeepClear() bool {
	return o.BoundaryType == BoundaryKeepClear
}

// Validate checks the obstacle has an id and a well formed footprint.
func (o *Obstacle) Validate() error {
	if o.ID == "" {
		return errors.New("obstacle id is required")
	}
	return errors.Wrapf(o.SLBoundary.Validate(), "obstacle %q", o.ID)
}
