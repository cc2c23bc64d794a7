package ultrasonic

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/pathdecider/logging"
)

// DriverName identifies the driver in logs.
const DriverName = "ultrasonic_radar"

// ErrCanbus marks every failure reported by the driver lifecycle.
var ErrCanbus = errors.New("canbus error")

// Driver ties a CAN card, the range message manager and the frame receiver together.
type Driver struct {
	cfg    Config
	clock  clock.Clock
	logger logging.Logger

	client   BusClient
	manager  *MessageManager
	receiver *receiver
}

// NewDriver validates cfg and returns an uninitialized driver. A nil clock means the wall clock.
func NewDriver(cfg Config, clk clock.Clock, logger logging.Logger) (*Driver, error) {
	if err := cfg.Validate(DriverName); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Driver{cfg: cfg, clock: clk, logger: logger}, nil
}

// Name is the driver name.
func (d *Driver) Name() string {
	return DriverName
}

// Init creates the can client, the message manager and the receiver.
func (d *Driver) Init(ctx context.Context) error {
	d.logger.CDebugw(ctx, "initializing driver", "config", d.cfg)

	client, err := NewClient(d.cfg.CanCard, d.logger.Sublogger("can_client"))
	if err != nil {
		return d.onError(errors.Wrap(err, "failed to create can client"))
	}
	d.client = client
	d.logger.Info("can client is successfully created")

	manager, err := NewMessageManager(d.cfg.EntranceNum, d.cfg.AverageSamples)
	if err != nil {
		return d.onError(errors.Wrap(err, "failed to create message manager"))
	}
	d.manager = manager
	d.logger.Info("sensor message manager is successfully created")

	rcv, err := newReceiver(d.client, d.manager, &d.cfg, d.clock, d.logger.Sublogger("receiver"))
	if err != nil {
		return d.onError(errors.Wrap(err, "failed to init can receiver"))
	}
	d.receiver = rcv
	d.logger.Info("the can receiver is successfully initialized")
	return nil
}

// Start opens the card and then starts receiving.
func (d *Driver) Start(ctx context.Context) error {
	if d.client == nil || d.receiver == nil {
		return d.onError(errors.New("driver is not initialized"))
	}
	if err := d.client.Start(ctx); err != nil {
		return d.onError(errors.Wrap(err, "failed to start can client"))
	}
	d.logger.Info("can client is started")

	if err := d.receiver.start(); err != nil {
		return d.onError(errors.Wrap(err, "failed to start can receiver"))
	}
	d.logger.Info("can receiver is started")
	return nil
}

// Stop stops receiving and then closes the card. It is safe to call more than once.
func (d *Driver) Stop(ctx context.Context) error {
	if d.receiver != nil {
		d.receiver.stop()
	}
	if d.client == nil {
		return nil
	}
	if err := d.client.Stop(ctx); err != nil {
		return d.onError(errors.Wrap(err, "failed to stop can client"))
	}
	return nil
}

// Readings returns the latest range of every entrance that has reported.
func (d *Driver) Readings() []Reading {
	if d.manager == nil {
		return nil
	}
	return d.manager.Readings()
}

// Stats reports how many frames were decoded and dropped since Start.
func (d *Driver) Stats() (received, dropped int64) {
	if d.receiver == nil {
		return 0, 0
	}
	return d.receiver.received.Load(), d.receiver.dropped.Load()
}

func (d *Driver) onError(err error) error {
	d.logger.Errorw("ultrasonic driver failure", "error", err)
	return &canbusError{cause: err}
}

// canbusError matches ErrCanbus and unwraps to the underlying failure.
type canbusError struct {
	cause error
}

func (e *canbusError) Error() string {
	return errors.Wrap(e.cause, ErrCanbus.Error()).Error()
}

func (e *canbusError) Is(target error) bool {
	return target == ErrCanbus
}

func (e *canbusError) Unwrap() error {
	return e.cause
}
