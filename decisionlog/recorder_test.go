package decisionlog

import (
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/pathdecider/decision"
	"go.viam.com/pathdecider/frenet"
	"go.viam.com/pathdecider/obstacle"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := NewRecorder(filepath.Join(t.TempDir(), "decisions.db"))
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() { test.That(t, r.Close(), test.ShouldBeNil) })
	return r
}

func testLedger(t *testing.T) *decision.PathDecision {
	t.Helper()
	box := func(id string) *obstacle.Obstacle {
		return &obstacle.Obstacle{
			ID:         id,
			Static:     true,
			SLBoundary: frenet.SLBoundary{StartS: 10, EndS: 11, StartL: -1, EndL: 1},
		}
	}
	ledger, err := decision.NewPathDecision(box("b"), box("a"), box("undecided"))
	test.That(t, err, test.ShouldBeNil)

	stop := decision.Stop{DistanceS: -6.5, StopPoint: r3.Vector{X: 3.5}, ReasonCode: decision.StopReasonObstacle}
	test.That(t, ledger.AddLongitudinalDecision("PathDecider", "b", stop), test.ShouldBeNil)
	test.That(t, ledger.AddLongitudinalDecision("PathDecider", "a", decision.Ignore{}), test.ShouldBeNil)
	test.That(t, ledger.AddLateralDecision("PathDecider", "a", decision.Ignore{}), test.ShouldBeNil)
	test.That(t, ledger.AddLateralDecision("SpeedDecider", "a", decision.Ignore{}), test.ShouldBeNil)
	return ledger
}

func TestRecordAndRead(t *testing.T) {
	r := newTestRecorder(t)
	ledger := testLedger(t)

	cycleID := NewCycleID()
	test.That(t, r.Record(cycleID, ledger), test.ShouldBeNil)

	rows, err := r.Decisions(cycleID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, 3)

	entries := ledger.Entries()
	test.That(t, rows[0], test.ShouldResemble, Row{
		CycleID:          cycleID,
		ObstacleID:       "b",
		Longitudinal:     entries[0].Longitudinal.String(),
		LongitudinalTags: []string{"PathDecider"},
		LateralTags:      []string{},
	})
	test.That(t, rows[1].ObstacleID, test.ShouldEqual, "a")
	test.That(t, rows[1].Lateral, test.ShouldEqual, "ignore")
	test.That(t, rows[1].LateralTags, test.ShouldResemble, []string{"PathDecider", "SpeedDecider"})
	test.That(t, rows[2].ObstacleID, test.ShouldEqual, "undecided")
	test.That(t, rows[2].Longitudinal, test.ShouldBeEmpty)
	test.That(t, rows[2].Lateral, test.ShouldBeEmpty)

	cycles, err := r.Cycles()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cycles, test.ShouldResemble, []string{cycleID})

	rows, err = r.Decisions("no-such-cycle")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldBeEmpty)
}

func TestRecordErrors(t *testing.T) {
	r := newTestRecorder(t)
	ledger := testLedger(t)

	test.That(t, r.Record("", ledger), test.ShouldNotBeNil)
	test.That(t, r.Record(NewCycleID(), nil), test.ShouldNotBeNil)

	cycleID := NewCycleID()
	test.That(t, r.Record(cycleID, ledger), test.ShouldBeNil)

	// A second write of the same cycle is rejected and leaves the first intact.
	err := r.Record(cycleID, ledger)
	test.That(t, err, test.ShouldNotBeNil)
	rows, err := r.Decisions(cycleID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, 3)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.db")
	r, err := NewRecorder(path)
	test.That(t, err, test.ShouldBeNil)
	cycleID := NewCycleID()
	test.That(t, r.Record(cycleID, testLedger(t)), test.ShouldBeNil)
	test.That(t, r.Close(), test.ShouldBeNil)

	r, err = NewRecorder(path)
	test.That(t, err, test.ShouldBeNil)
	defer r.Close()
	rows, err := r.Decisions(cycleID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, 3)
}
