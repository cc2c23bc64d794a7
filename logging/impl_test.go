package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

type stopPoint struct {
	X float64
	Y float64
	z float64
}

// assertLogMatches fuzzy matches a single log line. The timestamp is only checked for its
// length, and the caller for its filename.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))

	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])

	actualFilename, actualLineNumber, found := strings.Cut(actualParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[3], test.ShouldEqual, expectedParts[3])
	if len(actualParts) == 4 {
		return
	}

	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[4]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[4]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func TestConsoleOutputFormat(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"", NewAtomicLevelAt(DEBUG), true, []Appender{NewWriterAppender(notStdout)}}

	logger.Info("impl Info log")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:67	impl Info log`)

	logger.Infof("impl %s log", "infof")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:71	impl infof log`)

	logger.Infow("impl logw", "obstacle", "box1", "distance_s", -6.5)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:75	impl logw	{"obstacle":"box1","distance_s":-6.5}`)

	// Only exported fields are serialized.
	logger.Debugw("stop", "point", stopPoint{1, 2, 3})
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	DEBUG	logging/impl_test.go:80	stop	{"point":{"X":1,"Y":2}}`)

	logger.Warnw("unpaired", "dangling")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	WARN	logging/impl_test.go:84	unpaired	{"dangling":"unpaired log key"}`)
}

func TestLevelFiltering(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"", NewAtomicLevelAt(WARN), true, []Appender{NewWriterAppender(notStdout)}}

	logger.Debug("dropped")
	logger.Info("dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Error("kept")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	ERROR	logging/impl_test.go:97	kept`)

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debug("now kept")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	DEBUG	logging/impl_test.go:103	now kept`)
}

func TestSublogger(t *testing.T) {
	notStdout := &bytes.Buffer{}
	parent := &impl{"planning", NewAtomicLevelAt(INFO), true, []Appender{NewWriterAppender(notStdout)}}

	child := parent.Sublogger("path_decider")
	child.Info("hello")
	line := notStdout.String()
	test.That(t, line, test.ShouldContainSubstring, "\tplanning.path_decider\t")

	// Changing the child level does not affect the parent.
	child.SetLevel(ERROR)
	test.That(t, parent.GetLevel(), test.ShouldEqual, INFO)
}

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infow("decided", "id", "box1")
	logger.Debug("detail")

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	entry := logs.All()[0]
	test.That(t, entry.Message, test.ShouldEqual, "decided")
	test.That(t, entry.ContextMap()["id"], test.ShouldEqual, "box1")
	test.That(t, logs.FilterMessage("detail").Len(), test.ShouldEqual, 1)
}

func TestLevelFromString(t *testing.T) {
	for input, expected := range map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
	} {
		level, err := LevelFromString(input)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	out, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"error"`)
}

func TestDebugModeContext(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"", NewAtomicLevelAt(INFO), true, []Appender{NewWriterAppender(notStdout)}}

	ctx := context.Background()
	logger.CDebugw(ctx, "dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)
	test.That(t, IsDebugMode(ctx), test.ShouldBeFalse)

	ctx = EnableDebugMode(ctx, "")
	test.That(t, IsDebugMode(ctx), test.ShouldBeTrue)
	test.That(t, GetName(ctx), test.ShouldHaveLength, 6)
	logger.CDebugw(ctx, "kept", "cycle", 3)
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "kept")

	named := EnableDebugMode(context.Background(), "cycle-42")
	test.That(t, GetName(named), test.ShouldEqual, "cycle-42")
}

func TestAsZapTeesObserver(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.AsZap().Warnw("from zap", "obstacle", "box1")

	test.That(t, logs.FilterMessage("from zap").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("from zap").All()[0].ContextMap()["obstacle"], test.ShouldEqual, "box1")
}
