package decision

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/pathdecider/obstacle"
)

// Ledger is the shared record of obstacle decisions for one planning cycle. Every stage reads
// and adds to it; adds are tagged with the stage name for provenance.
type Ledger interface {
	// Obstacles returns the obstacles in the order they were added.
	Obstacles() []*obstacle.Obstacle

	HasLongitudinalDecision(id string) bool
	LongitudinalDecision(id string) (Longitudinal, bool)
	HasLateralDecision(id string) bool
	LateralDecision(id string) (Lateral, bool)

	// AddLongitudinalDecision merges d into the obstacle's longitudinal slot.
	AddLongitudinalDecision(tag, id string, d Longitudinal) error
	// AddLateralDecision merges d into the obstacle's lateral slot.
	AddLateralDecision(tag, id string, d Lateral) error
}

type record struct {
	obstacle         *obstacle.Obstacle
	longitudinal     Longitudinal
	lateral          Lateral
	longitudinalTags []string
	lateralTags      []string
}

// Entry is a read-only view of one obstacle's decisions.
type Entry struct {
	Obstacle         *obstacle.Obstacle
	Longitudinal     Longitudinal
	Lateral          Lateral
	LongitudinalTags []string
	LateralTags      []string
}

// PathDecision is the in-memory Ledger for a single path candidate.
type PathDecision struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*record
}

// NewPathDecision returns a ledger holding the given obstacles with no decisions.
func NewPathDecision(obstacles ...*obstacle.Obstacle) (*PathDecision, error) {
	pd := &PathDecision{records: make(map[string]*record, len(obstacles))}
	for _, o := range obstacles {
		if err := pd.AddObstacle(o); err != nil {
			return nil, err
		}
	}
	return pd, nil
}

// AddObstacle registers an obstacle. Ids must be unique within the ledger.
func (pd *PathDecision) AddObstacle(o *obstacle.Obstacle) error {
	if o == nil {
		return errors.New("cannot add nil obstacle")
	}
	if err := o.Validate(); err != nil {
		return err
	}

	pd.mu.Lock()
	defer pd.mu.Unlock()
	if _, ok := pd.records[o.ID]; ok {
		return errors.Errorf("obstacle %q already in path decision", o.ID)
	}
	pd.records[o.ID] = &record{obstacle: o}
	pd.order = append(pd.order, o.ID)
	return nil
}

// Obstacles returns the obstacles in insertion order.
func (pd *PathDecision) Obstacles() []*obstacle.Obstacle {
	pd.mu.RLock()
	defer pd.mu.RUnlock()
	return lo.Map(pd.order, func(id string, _ int) *obstacle.Obstacle {
		return pd.records[id].obstacle
	})
}

// Obstacle looks up an obstacle by id.
func (pd *PathDecision) Obstacle(id string) (*obstacle.Obstacle, bool) {
	pd.mu.RLock()
	defer pd.mu.RUnlock()
	rec, ok := pd.records[id]
	if !ok {
		return nil, false
	}
	return rec.obstacle, true
}

// HasLongitudinalDecision reports whether any stage has set the longitudinal axis.
func (pd *PathDecision) HasLongitudinalDecision(id string) bool {
	_, ok := pd.LongitudinalDecision(id)
	return ok
}

// LongitudinalDecision returns the merged longitudinal decision, if any.
func (pd *PathDecision) LongitudinalDecision(id string) (Longitudinal, bool) {
	pd.mu.RLock()
	defer pd.mu.RUnlock()
	rec, ok := pd.records[id]
	if !ok || rec.longitudinal == nil {
		return nil, false
	}
	return rec.longitudinal, true
}

// HasLateralDecision reports whether any stage has set the lateral axis.
func (pd *PathDecision) HasLateralDecision(id string) bool {
	_, ok := pd.LateralDecision(id)
	return ok
}

// LateralDecision returns the merged lateral decision, if any.
func (pd *PathDecision) LateralDecision(id string) (Lateral, bool) {
	pd.mu.RLock()
	defer pd.mu.RUnlock()
	rec, ok := pd.records[id]
	if !ok || rec.lateral == nil {
		return nil, false
	}
	return rec.lateral, true
}

// AddLongitudinalDecision merges d into the obstacle's longitudinal slot and records tag.
func (pd *PathDecision) AddLongitudinalDecision(tag, id string, d Longitudinal) error {
	if d == nil {
		return errors.Errorf("nil longitudinal decision from %q for obstacle %q", tag, id)
	}
	pd.mu.Lock()
	defer pd.mu.Unlock()
	rec, ok := pd.records[id]
	if !ok {
		return newObstacleNotFoundError(id)
	}
	rec.longitudinal = MergeLongitudinal(rec.longitudinal, d)
	rec.longitudinalTags = append(rec.longitudinalTags, tag)
	return nil
}

// AddLateralDecision merges d into the obstacle's lateral slot and records tag. On a merge
// conflict the slot is left unchanged.
func (pd *PathDecision) AddLateralDecision(tag, id string, d Lateral) error {
	if d == nil {
		return errors.Errorf("nil lateral decision from %q for obstacle %q", tag, id)
	}
	pd.mu.Lock()
	defer pd.mu.Unlock()
	rec, ok := pd.records[id]
	if !ok {
		return newObstacleNotFoundError(id)
	}
	merged, err := MergeLateral(rec.lateral, d)
	if err != nil {
		return errors.Wrapf(err, "obstacle %q, tag %q", id, tag)
	}
	rec.lateral = merged
	rec.lateralTags = append(rec.lateralTags, tag)
	return nil
}

// Entries returns a snapshot of every obstacle's decisions in insertion order.
func (pd *PathDecision) Entries() []Entry {
	pd.mu.RLock()
	defer pd.mu.RUnlock()
	return lo.Map(pd.order, func(id string, _ int) Entry {
		rec := pd.records[id]
		return Entry{
			Obstacle:         rec.obstacle,
			Longitudinal:     rec.longitudinal,
			Lateral:          rec.lateral,
			LongitudinalTags: append([]string(nil), rec.longitudinalTags...),
			LateralTags:      append([]string(nil), rec.lateralTags...),
		}
	})
}
