package inject

import (
	"context"

	"go.viam.com/pathdecider/drivers/ultrasonic"
)

// BusClient is an injected CAN card.
type BusClient struct {
	ultrasonic.BusClient
	StartFunc   func(ctx context.Context) error
	StopFunc    func(ctx context.Context) error
	ReceiveFunc func(ctx context.Context) ([]ultrasonic.Frame, error)
}

// Start calls the injected Start or the real version.
func (c *BusClient) Start(ctx context.Context) error {
	if c.StartFunc == nil {
		return c.BusClient.Start(ctx)
	}
	return c.StartFunc(ctx)
}

// Stop calls the injected Stop or the real version.
func (c *BusClient) Stop(ctx context.Context) error {
	if c.StopFunc == nil {
		return c.BusClient.Stop(ctx)
	}
	return c.StopFunc(ctx)
}

// Receive calls the injected Receive or the real version.
func (c *BusClient) Receive(ctx context.Context) ([]ultrasonic.Frame, error) {
	if c.ReceiveFunc == nil {
		return c.BusClient.Receive(ctx)
	}
	return c.ReceiveFunc(ctx)
}
