// Package ultrasonic runs the receive side of an ultrasonic range sensor array on a CAN bus. It
// owns the bus client and keeps the latest range reported by each sensor entrance.
package ultrasonic

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

const defaultPollInterval = 20 * time.Millisecond

// CardParams selects and configures the CAN card.
type CardParams struct {
	Brand     string `json:"brand" mapstructure:"brand"`
	Type      string `json:"type,omitempty" mapstructure:"type"`
	ChannelID int    `json:"channel_id" mapstructure:"channel_id"`
}

// Config is the sensor array configuration.
type Config struct {
	CanCard           CardParams `json:"can_card_parameter" mapstructure:"can_card_parameter"`
	EntranceNum       int        `json:"entrance_num" mapstructure:"entrance_num"`
	EnableReceiverLog bool       `json:"enable_receiver_log" mapstructure:"enable_receiver_log"`
	// AverageSamples is the rolling average window per entrance. 0 means no averaging.
	AverageSamples int `json:"average_samples,omitempty" mapstructure:"average_samples"`
	// PollInterval is a Go duration string such as "20ms". Empty means the default.
	PollInterval string `json:"poll_interval,omitempty" mapstructure:"poll_interval"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var errs error
	if cfg.CanCard.Brand == "" {
		errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(path, "can_card_parameter.brand"))
	}
	if cfg.CanCard.ChannelID < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("can_card_parameter.channel_id cannot be negative")))
	}
	if cfg.EntranceNum <= 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("entrance_num must be positive, got %d", cfg.EntranceNum)))
	}
	if cfg.AverageSamples < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.New("average_samples cannot be negative")))
	}
	if cfg.PollInterval != "" {
		if d, err := time.ParseDuration(cfg.PollInterval); err != nil {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
				errors.Wrap(err, "poll_interval")))
		} else if d <= 0 {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
				errors.New("poll_interval must be positive")))
		}
	}
	return errs
}

// Interval returns the receiver polling period.
func (cfg *Config) Interval() time.Duration {
	if cfg.PollInterval == "" {
		return defaultPollInterval
	}
	d, err := time.ParseDuration(cfg.PollInterval)
	if err != nil || d <= 0 {
		return defaultPollInterval
	}
	return d
}
