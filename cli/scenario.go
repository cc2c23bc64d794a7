package cli

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/pathdecider/decision"
	"go.viam.com/pathdecider/frenet"
	"go.viam.com/pathdecider/obstacle"
	"go.viam.com/pathdecider/referenceline"
	"go.viam.com/pathdecider/vehicle"
)

// Point is an xy point of the reference line.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scenario is one planning cycle for a single path candidate, as read from a json file.
type Scenario struct {
	Path          []frenet.SLPoint `json:"path"`
	ReferenceLine []Point          `json:"reference_line"`
	// AdcSLBoundary defaults to the vehicle footprint at the start of the path.
	AdcSLBoundary *frenet.SLBoundary   `json:"adc_sl_boundary,omitempty"`
	Obstacles     []*obstacle.Obstacle `json:"obstacles"`
}

// readScenario loads and decodes a scenario file.
func readScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read scenario %q", path)
	}
	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, errors.Wrapf(err, "cannot parse scenario %q", path)
	}
	return &scenario, nil
}

// build turns the scenario into decider inputs.
func (sc *Scenario) build(params vehicle.Params) (
	*frenet.Path, *referenceline.Line, frenet.SLBoundary, *decision.PathDecision, error,
) {
	path, err := frenet.NewPath(sc.Path)
	if err != nil {
		return nil, nil, frenet.SLBoundary{}, nil, errors.Wrap(err, "path")
	}

	line, err := referenceline.NewLine(lo.Map(sc.ReferenceLine, func(p Point, _ int) r3.Vector {
		return r3.Vector{X: p.X, Y: p.Y}
	}))
	if err != nil {
		return nil, nil, frenet.SLBoundary{}, nil, errors.Wrap(err, "reference_line")
	}

	adc := params.SLBoundaryAt(path.Front().S, path.Front().L)
	if sc.AdcSLBoundary != nil {
		adc = *sc.AdcSLBoundary
	}

	ledger, err := decision.NewPathDecision(sc.Obstacles...)
	if err != nil {
		return nil, nil, frenet.SLBoundary{}, nil, errors.Wrap(err, "obstacles")
	}
	return path, line, adc, ledger, nil
}
