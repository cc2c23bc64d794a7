package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"go.viam.com/test"

	"go.viam.com/pathdecider/testutils"
)

const straightScenario = "testdata/straight.json"

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"pathdecider"}, args...))
	return out.String(), errOut.String(), err
}

func decodeCycle(t *testing.T, out string) cycleOutput {
	t.Helper()
	var cycle cycleOutput
	test.That(t, json.Unmarshal([]byte(out), &cycle), test.ShouldBeNil)
	return cycle
}

func TestDecideJSON(t *testing.T) {
	out, _, err := runApp(t, "decide", "--scenario", straightScenario, "--format", "json")
	test.That(t, err, test.ShouldBeNil)

	cycle := decodeCycle(t, out)
	test.That(t, cycle.CycleID, test.ShouldNotBeEmpty)
	byID := lo.KeyBy(cycle.Decisions, func(d decisionOutput) string { return d.ID })
	test.That(t, byID, test.ShouldHaveLength, 7)

	test.That(t, byID["box"].Longitudinal, test.ShouldEqual,
		"stop(STOP_REASON_OBSTACLE, distance_s: -6.000, point: (24.000, 0.000), heading: 0.000)")
	test.That(t, byID["box"].LongitudinalTags, test.ShouldResemble, []string{"PathDecider"})
	test.That(t, byID["parked_left"].Lateral, test.ShouldEqual, "nudge(RIGHT_NUDGE, distance_l: -0.500)")
	test.That(t, byID["far"].Lateral, test.ShouldEqual, "ignore")
	test.That(t, byID["far"].Longitudinal, test.ShouldBeEmpty)
	test.That(t, byID["crosswalk"], test.ShouldResemble, decisionOutput{ID: "crosswalk"})
	test.That(t, byID["cyclist"], test.ShouldResemble, decisionOutput{ID: "cyclist"})
	test.That(t, byID["DEST"].Longitudinal, test.ShouldEqual,
		"stop(STOP_REASON_DESTINATION, distance_s: -0.500, point: (79.500, 0.000), heading: 0.000)")
	test.That(t, byID["beyond"].Longitudinal, test.ShouldEqual, "ignore")
	test.That(t, byID["beyond"].Lateral, test.ShouldEqual, "ignore")
}

func TestDecideTable(t *testing.T) {
	out, _, err := runApp(t, "decide", "-s", straightScenario)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "OBSTACLE")
	test.That(t, out, test.ShouldContainSubstring, "parked_left")
	test.That(t, out, test.ShouldContainSubstring, "RIGHT_NUDGE")
	test.That(t, out, test.ShouldContainSubstring, "PathDecider")
}

func TestDecideWithConfig(t *testing.T) {
	cfgPath := testutils.WriteJSONFile(t, "config.json", map[string]interface{}{
		"decider": map[string]interface{}{"enable_nudge_decision": false},
		"logging": map[string]interface{}{"level": "debug"},
	})
	logFile := filepath.Join(t.TempDir(), "decider.log")

	out, errOut, err := runApp(t, "decide", "-s", straightScenario, "-c", cfgPath,
		"--format", "json", "--log-file", logFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "no static decision, nudging disabled")

	byID := lo.KeyBy(decodeCycle(t, out).Decisions, func(d decisionOutput) string { return d.ID })
	test.That(t, byID["parked_left"].Lateral, test.ShouldBeEmpty)
}

func TestDecideRecordAndHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "decisions.db")

	out, errOut, err := runApp(t, "decide", "-s", straightScenario, "--format", "json", "--record", dbPath)
	test.That(t, err, test.ShouldBeNil)
	cycle := decodeCycle(t, out)
	test.That(t, errOut, test.ShouldContainSubstring, cycle.CycleID)

	out, _, err = runApp(t, "history", "--record", dbPath, "--cycle", cycle.CycleID, "--format", "json")
	test.That(t, err, test.ShouldBeNil)
	recorded := decodeCycle(t, out)
	test.That(t, recorded, test.ShouldResemble, cycle)

	out, _, err = runApp(t, "history", "--record", dbPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, cycle.CycleID)

	_, _, err = runApp(t, "history", "--record", dbPath, "--cycle", "missing")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDecidePlot(t *testing.T) {
	plotFile := filepath.Join(t.TempDir(), "decisions.png")
	_, _, err := runApp(t, "decide", "-s", straightScenario, "--plot", plotFile)
	test.That(t, err, test.ShouldBeNil)

	info, err := os.Stat(plotFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}

func TestDecideErrors(t *testing.T) {
	_, _, err := runApp(t, "decide")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "decide", "-s", "testdata/missing.json")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "decide", "-s", straightScenario, "--format", "yaml")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown output format")

	badScenario := testutils.WriteJSONFile(t, "scenario.json", Scenario{
		Path:          nil,
		ReferenceLine: []Point{{0, 0}, {10, 0}},
	})
	_, _, err = runApp(t, "decide", "-s", badScenario)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid scenario")
}

func TestValidate(t *testing.T) {
	good := testutils.WriteJSONFile(t, "good.json", map[string]interface{}{
		"decider": map[string]interface{}{"lateral_ignore_buffer": 2},
	})
	out, _, err := runApp(t, "validate", "--config", good)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "is valid")

	bad := testutils.WriteJSONFile(t, "bad.json", map[string]interface{}{
		"decider": map[string]interface{}{"lateral_ignore_buffer": 0.1},
	})
	_, _, err = runApp(t, "validate", "--config", bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "static_decision_nudge_l_buffer")
}
