package pathdecider

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// Config tunes the static obstacle decisions. Distances are in meters.
type Config struct {
	// LateralIgnoreBuffer widens the corridor outside of which an obstacle is ignored laterally.
	LateralIgnoreBuffer float64 `json:"lateral_ignore_buffer" mapstructure:"lateral_ignore_buffer"`

	// StaticDecisionNudgeLBuffer is the corridor inside which the vehicle must stop rather than nudge.
	StaticDecisionNudgeLBuffer float64 `json:"static_decision_nudge_l_buffer" mapstructure:"static_decision_nudge_l_buffer"`

	EnableNudgeDecision     bool    `json:"enable_nudge_decision" mapstructure:"enable_nudge_decision"`
	NudgeDistanceObstacle   float64 `json:"nudge_distance_obstacle" mapstructure:"nudge_distance_obstacle"`
	DestinationObstacleID   string  `json:"destination_obstacle_id" mapstructure:"destination_obstacle_id"`
	StopDistanceDestination float64 `json:"stop_distance_destination" mapstructure:"stop_distance_destination"`
	MaxStopDistanceObstacle float64 `json:"max_stop_distance_obstacle" mapstructure:"max_stop_distance_obstacle"`
	MinStopDistanceObstacle float64 `json:"min_stop_distance_obstacle" mapstructure:"min_stop_distance_obstacle"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		LateralIgnoreBuffer:        3.0,
		StaticDecisionNudgeLBuffer: 0.5,
		EnableNudgeDecision:        true,
		NudgeDistanceObstacle:      0.5,
		DestinationObstacleID:      "DEST",
		StopDistanceDestination:    0.5,
		MaxStopDistanceObstacle:    10.0,
		MinStopDistanceObstacle:    6.0,
	}
}

// StopDistanceBounds returns the configured clamp for obstacle stop distances.
func (cfg Config) StopDistanceBounds() StopDistanceBounds {
	return StopDistanceBounds{Min: cfg.MinStopDistanceObstacle, Max: cfg.MaxStopDistanceObstacle}
}

// Validate checks the tuning once at startup so the per obstacle loop never has to.
func (cfg Config) Validate(path string) error {
	var errs error
	if cfg.LateralIgnoreBuffer < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("lateral_ignore_buffer cannot be negative")))
	}
	if cfg.StaticDecisionNudgeLBuffer < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("static_decision_nudge_l_buffer cannot be negative")))
	}
	// A stop corridor wider than the ignore corridor leaves geometries where both or neither
	// branch applies.
	if cfg.StaticDecisionNudgeLBuffer > cfg.LateralIgnoreBuffer {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("static_decision_nudge_l_buffer (%.3f) must not exceed lateral_ignore_buffer (%.3f)",
				cfg.StaticDecisionNudgeLBuffer, cfg.LateralIgnoreBuffer)))
	}
	if cfg.NudgeDistanceObstacle < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("nudge_distance_obstacle cannot be negative")))
	}
	if cfg.StopDistanceDestination < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("stop_distance_destination cannot be negative")))
	}
	if cfg.MinStopDistanceObstacle <= 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("min_stop_distance_obstacle must be positive")))
	}
	if cfg.MaxStopDistanceObstacle < cfg.MinStopDistanceObstacle {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("max_stop_distance_obstacle (%.3f) is below min_stop_distance_obstacle (%.3f)",
				cfg.MaxStopDistanceObstacle, cfg.MinStopDistanceObstacle)))
	}
	return errs
}
