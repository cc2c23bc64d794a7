package ultrasonic

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/pathdecider/logging"
	"go.viam.com/pathdecider/utils"
)

// receiver polls the bus client on a ticker and hands every frame to the message manager.
type receiver struct {
	client    BusClient
	manager   *MessageManager
	logFrames bool
	interval  time.Duration
	clock     clock.Clock
	logger    logging.Logger

	workers  utils.StoppableWorkers
	running  atomic.Bool
	received atomic.Int64
	dropped  atomic.Int64
}

func newReceiver(
	client BusClient,
	manager *MessageManager,
	cfg *Config,
	clk clock.Clock,
	logger logging.Logger,
) (*receiver, error) {
	if client == nil {
		return nil, errors.New("receiver needs a can client")
	}
	if manager == nil {
		return nil, errors.New("receiver needs a message manager")
	}
	return &receiver{
		client:    client,
		manager:   manager,
		logFrames: cfg.EnableReceiverLog,
		interval:  cfg.Interval(),
		clock:     clk,
		logger:    logger,
	}, nil
}

func (r *receiver) start() error {
	if !r.running.CompareAndSwap(false, true) {
		return errors.New("receiver already started")
	}
	r.workers = utils.NewStoppableWorkers(r.receiveLoop)
	return nil
}

func (r *receiver) stop() {
	if !r.running.CompareAndSwap(true, false) {
		return
	}
	r.workers.Stop()
}

func (r *receiver) receiveLoop(ctx context.Context) {
	ticker := r.clock.Ticker(r.interval)
	defer ticker.Stop()

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frames, err := r.client.Receive(ctx)
		if err != nil {
			// Only log when the error changes so a dead bus does not flood the log.
			if lastErr == nil || err.Error() != lastErr.Error() {
				r.logger.Warnw("error receiving can frames", "error", err)
			}
			lastErr = err
			continue
		}
		lastErr = nil

		for _, frame := range frames {
			if err := r.manager.Parse(frame); err != nil {
				r.dropped.Inc()
				r.logger.CDebugw(ctx, "dropping can frame", "id", frame.ID, "error", err)
				continue
			}
			r.received.Inc()
			if r.logFrames {
				r.logger.Infow("received can frame", "id", frame.ID, "data", frame.Data)
			}
		}
	}
}
