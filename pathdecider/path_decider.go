// Package pathdecider makes ignore, stop and nudge decisions for static obstacles along a planned
// path. It runs once per path candidate per planning cycle, after path generation and before
// speed planning, and leaves its results in the shared decision ledger.
package pathdecider

import (
	"reflect"

	"github.com/pkg/errors"

	"go.viam.com/pathdecider/decision"
	"go.viam.com/pathdecider/frenet"
	"go.viam.com/pathdecider/logging"
	"go.viam.com/pathdecider/obstacle"
	"go.viam.com/pathdecider/referenceline"
	"go.viam.com/pathdecider/vehicle"
)

// StageName tags every decision written by the decider.
const StageName = "PathDecider"

// ReferenceLineInfo bundles the inputs for one path candidate.
type ReferenceLineInfo struct {
	Path          *frenet.Path
	ReferenceLine referenceline.Provider
	// AdcSLBoundary is the vehicle's current footprint projected on the reference line.
	AdcSLBoundary frenet.SLBoundary
	PathDecision  decision.Ledger
}

// Decider is the static obstacle decision stage. It keeps no state between calls.
type Decider struct {
	cfg     Config
	vehicle vehicle.Params
	logger  logging.Logger
}

// NewDecider validates the configuration and vehicle geometry and returns a Decider.
func NewDecider(cfg Config, params vehicle.Params, logger logging.Logger) (*Decider, error) {
	if err := cfg.Validate("path_decider"); err != nil {
		return nil, err
	}
	if params.MinTurnRadius <= 0 {
		return nil, errors.Wrapf(ErrInvalidVehicleGeometry, "min_turn_radius %.3f", params.MinTurnRadius)
	}
	if err := params.Validate("vehicle"); err != nil {
		return nil, err
	}
	return &Decider{cfg: cfg, vehicle: params, logger: logger}, nil
}

// Name is the stage name.
func (d *Decider) Name() string {
	return StageName
}

// Execute runs the decider on a path candidate.
func (d *Decider) Execute(info *ReferenceLineInfo) error {
	if info == nil {
		return newPlanningError("reference line info is nil", ErrNullLedger)
	}
	return d.Process(info.Path, info.ReferenceLine, info.AdcSLBoundary, info.PathDecision)
}

// Process decides every static obstacle in ledger against path. A returned error is always a
// *PlanningError; the ledger may hold decisions for obstacles handled before the failure, but
// never a partial decision for any single obstacle axis.
func (d *Decider) Process(
	path *frenet.Path,
	refLine referenceline.Provider,
	adcBoundary frenet.SLBoundary,
	ledger decision.Ledger,
) error {
	if isNilLedger(ledger) {
		d.logger.Error("path decision is nil")
		return newPlanningError("path decider", ErrNullLedger)
	}
	if err := d.MakeStaticObstacleDecision(path, refLine, adcBoundary, ledger); err != nil {
		d.logger.Errorw("failed to make decisions for static obstacles", "error", err)
		return newPlanningError("dp_road_graph decision", err)
	}
	return nil
}

// MakeStaticObstacleDecision applies the static obstacle policy to each obstacle in ledger order.
func (d *Decider) MakeStaticObstacleDecision(
	path *frenet.Path,
	refLine referenceline.Provider,
	adcBoundary frenet.SLBoundary,
	ledger decision.Ledger,
) error {
	if isNilLedger(ledger) {
		return ErrNullLedger
	}
	if err := path.Validate(); err != nil {
		return err
	}
	if refLine == nil {
		return errors.New("reference line is nil")
	}

	halfWidth := d.vehicle.HalfWidth()
	lateralRadius := halfWidth + d.cfg.LateralIgnoreBuffer
	lateralStopRadius := halfWidth + d.cfg.StaticDecisionNudgeLBuffer

	for _, o := range ledger.Obstacles() {
		if skip, reason := d.shouldSkip(o, ledger); skip {
			d.logger.Debugw("skipping obstacle", "obstacle", o.ID, "reason", reason)
			continue
		}

		sl := o.SLBoundary
		if !path.ContainsS(sl.StartS) {
			if err := ledger.AddLongitudinalDecision(StageName, o.ID, decision.Ignore{}); err != nil {
				return err
			}
			if err := ledger.AddLateralDecision(StageName, o.ID, decision.Ignore{}); err != nil {
				return err
			}
			d.logger.Debugw("obstacle outside path", "obstacle", o.ID, "start_s", sl.StartS)
			continue
		}

		currL, err := path.EvaluateByS(sl.StartS)
		if err != nil {
			return err
		}

		switch {
		case currL-lateralRadius > sl.EndL || currL+lateralRadius < sl.StartL:
			if err := d.addLateral(ledger, o.ID, decision.Ignore{}); err != nil {
				return err
			}
		case currL-lateralStopRadius < sl.EndL && currL+lateralStopRadius > sl.StartL:
			stop, err := d.GenerateObjectStopDecision(o, refLine, adcBoundary)
			if err != nil {
				return errors.Wrapf(err, "obstacle %q", o.ID)
			}
			if err := ledger.AddLongitudinalDecision(StageName, o.ID, stop); err != nil {
				return err
			}
			d.logger.Debugw("stop for obstacle", "obstacle", o.ID, "decision", stop.String())
		case d.cfg.EnableNudgeDecision && currL-lateralStopRadius > sl.EndL:
			nudge := decision.Nudge{Type: decision.LeftNudge, DistanceL: d.cfg.NudgeDistanceObstacle}
			if err := d.addLateral(ledger, o.ID, nudge); err != nil {
				return err
			}
		case d.cfg.EnableNudgeDecision:
			nudge := decision.Nudge{Type: decision.RightNudge, DistanceL: -d.cfg.NudgeDistanceObstacle}
			if err := d.addLateral(ledger, o.ID, nudge); err != nil {
				return err
			}
		default:
			// Between the two corridors with nudging off: left undecided for other stages.
			d.logger.Debugw("no static decision, nudging disabled", "obstacle", o.ID, "curr_l", currL)
		}
	}
	return nil
}

// isNilLedger also catches a nil pointer stored in the interface.
func isNilLedger(ledger decision.Ledger) bool {
	if ledger == nil {
		return true
	}
	v := reflect.ValueOf(ledger)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// shouldSkip reports whether the obstacle is outside this stage's authority or already decided.
func (d *Decider) shouldSkip(o *obstacle.Obstacle, ledger decision.Ledger) (bool, string) {
	if !o.IsStatic() {
		return true, "not static"
	}
	lon, hasLon := ledger.LongitudinalDecision(o.ID)
	lat, hasLat := ledger.LateralDecision(o.ID)
	if hasLon && decision.IsIgnore(lon) && hasLat && decision.IsIgnore(lat) {
		return true, "already ignored"
	}
	if hasLon && decision.IsStop(lon) {
		return true, "already stopped"
	}
	if o.IsKeepClear() {
		return true, "keep clear"
	}
	return false, ""
}

// addLateral writes a lateral decision. A nudge that conflicts with another stage's nudge leaves
// the existing decision in place and is only logged.
func (d *Decider) addLateral(ledger decision.Ledger, id string, lat decision.Lateral) error {
	err := ledger.AddLateralDecision(StageName, id, lat)
	if errors.Is(err, decision.ErrIncompatibleNudge) {
		d.logger.Warnw("conflicting nudge left unchanged", "obstacle", id, "error", err)
		return nil
	}
	if err != nil {
		return err
	}
	d.logger.Debugw("lateral decision", "obstacle", id, "decision", lat.String())
	return nil
}
