package ultrasonic

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/pathdecider/logging"
)

// FakeBrand is the brand of the in-memory loopback card.
const FakeBrand = "FAKE_CAN"

func init() {
	RegisterClient(FakeBrand, func(params CardParams, logger logging.Logger) (BusClient, error) {
		return NewFakeClient(logger), nil
	})
}

// FakeClient is a loopback card. Frames pushed to it are returned by the next Receive.
type FakeClient struct {
	mu      sync.Mutex
	started bool
	pending []Frame
	logger  logging.Logger
}

// NewFakeClient returns a stopped loopback card.
func NewFakeClient(logger logging.Logger) *FakeClient {
	return &FakeClient{logger: logger}
}

// Start opens the card.
func (c *FakeClient) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	return nil
}

// Stop closes the card and drops any pending frames.
func (c *FakeClient) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = false
	c.pending = nil
	return nil
}

// Push queues frames for the next Receive.
func (c *FakeClient) Push(frames ...Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, frames...)
}

// Receive drains the queued frames.
func (c *FakeClient) Receive(ctx context.Context) ([]Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return nil, errors.New("fake can client not started")
	}
	frames := c.pending
	c.pending = nil
	return frames, nil
}
