// Package config defines the file and attribute map configuration of the path decider tools.
package config

import (
	"go.uber.org/multierr"

	"go.viam.com/pathdecider/drivers/ultrasonic"
	"go.viam.com/pathdecider/logging"
	"go.viam.com/pathdecider/pathdecider"
	"go.viam.com/pathdecider/vehicle"
)

// A Config describes the decider tuning, the vehicle and the ambient settings.
type Config struct {
	Decider pathdecider.Config `json:"decider" mapstructure:"decider"`
	Vehicle vehicle.Params     `json:"vehicle" mapstructure:"vehicle"`
	Logging LoggingConfig      `json:"logging" mapstructure:"logging"`

	// Ultrasonic is only set on vehicles with an ultrasonic sensor array.
	Ultrasonic *ultrasonic.Config `json:"ultrasonic,omitempty" mapstructure:"ultrasonic"`

	ConfigFilePath string `json:"-" mapstructure:"-"`
}

// LoggingConfig controls the log output.
type LoggingConfig struct {
	Level logging.Level `json:"level" mapstructure:"level"`
	// File, if set, also writes logs to a size rotated file.
	File string `json:"file,omitempty" mapstructure:"file"`
}

// Default returns a config with the stock tuning and vehicle. Fields missing from a file or
// attribute map keep these values.
func Default() *Config {
	return &Config{
		Decider: pathdecider.DefaultConfig(),
		Vehicle: vehicle.DefaultParams(),
		Logging: LoggingConfig{Level: logging.INFO},
	}
}

// Validate checks every section and returns all of the errors found.
func (c *Config) Validate(path string) error {
	var errs error
	errs = multierr.Append(errs, c.Decider.Validate(joinPath(path, "decider")))
	errs = multierr.Append(errs, c.Vehicle.Validate(joinPath(path, "vehicle")))
	if c.Ultrasonic != nil {
		errs = multierr.Append(errs, c.Ultrasonic.Validate(joinPath(path, "ultrasonic")))
	}
	return errs
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
