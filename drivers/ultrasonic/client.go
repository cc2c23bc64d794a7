package ultrasonic

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/pathdecider/logging"
)

// Frame is one CAN frame.
type Frame struct {
	ID        uint32
	Data      []byte
	Timestamp time.Time
}

// BusClient is a CAN card.
type BusClient interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	// Receive returns the frames buffered since the last call. It may return no frames.
	Receive(ctx context.Context) ([]Frame, error)
}

// ClientFactory builds a BusClient for a card.
type ClientFactory func(params CardParams, logger logging.Logger) (BusClient, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]ClientFactory{}
)

// RegisterClient registers a factory for a card brand. Registering a brand twice panics.
func RegisterClient(brand string, factory ClientFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[brand]; ok {
		panic(errors.Errorf("can client brand %q already registered", brand))
	}
	registry[brand] = factory
}

// DeregisterClient removes a brand. Only meant for tests.
func DeregisterClient(brand string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, brand)
}

// RegisteredBrands lists the known card brands in sorted order.
func RegisteredBrands() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	brands := make([]string, 0, len(registry))
	for brand := range registry {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return brands
}

// NewClient creates a client for the configured card brand.
func NewClient(params CardParams, logger logging.Logger) (BusClient, error) {
	registryMu.RLock()
	factory, ok := registry[params.Brand]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("no can client registered for brand %q", params.Brand)
	}
	return factory(params, logger)
}
