package config

import (
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/pathdecider/logging"
	"go.viam.com/pathdecider/pathdecider"
	"go.viam.com/pathdecider/testutils"
	"go.viam.com/pathdecider/utils"
	"go.viam.com/pathdecider/vehicle"
)

func TestRead(t *testing.T) {
	t.Setenv("PATHDECIDER_LOG_DIR", "/var/log/pathdecider")
	path := testutils.WriteFile(t, "config.json", []byte(`{
		"decider": {
			"lateral_ignore_buffer": 2.5,
			"enable_nudge_decision": false
		},
		"vehicle": {
			"width": 2.2,
			"left_edge_to_center": 1.1,
			"right_edge_to_center": 1.1
		},
		"logging": {
			"level": "debug",
			"file": "${PATHDECIDER_LOG_DIR}/decider.log"
		}
	}`))

	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)

	expectedDecider := pathdecider.DefaultConfig()
	expectedDecider.LateralIgnoreBuffer = 2.5
	expectedDecider.EnableNudgeDecision = false
	test.That(t, cfg.Decider, test.ShouldResemble, expectedDecider)

	expectedVehicle := vehicle.DefaultParams()
	expectedVehicle.Width = 2.2
	expectedVehicle.LeftEdgeToCenter = 1.1
	expectedVehicle.RightEdgeToCenter = 1.1
	test.That(t, cfg.Vehicle, test.ShouldResemble, expectedVehicle)

	test.That(t, cfg.Logging.Level, test.ShouldEqual, logging.DEBUG)
	test.That(t, cfg.Logging.File, test.ShouldEqual, "/var/log/pathdecider/decider.log")
	test.That(t, cfg.Ultrasonic, test.ShouldBeNil)
}

func TestReadErrors(t *testing.T) {
	_, err := Read("/does/not/exist.json")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read config file")

	_, err = FromReader("unknown", strings.NewReader(`{"decider": {"lateral_buffer": 1}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "lateral_buffer")

	_, err = FromReader("level", strings.NewReader(`{"logging": {"level": "loud"}}`))
	test.That(t, err, test.ShouldNotBeNil)

	// Every invalid section is reported at once.
	_, err = FromReader("invalid", strings.NewReader(`{
		"decider": {"lateral_ignore_buffer": 0.1, "static_decision_nudge_l_buffer": 0.4},
		"vehicle": {"min_turn_radius": 0},
		"ultrasonic": {"entrance_num": 0}
	}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "decider")
	test.That(t, err.Error(), test.ShouldContainSubstring, "min_turn_radius")
	test.That(t, err.Error(), test.ShouldContainSubstring, "ultrasonic")
}

func TestFromAttributes(t *testing.T) {
	cfg, err := FromAttributes(utils.AttributeMap{
		"decider": map[string]interface{}{
			"destination_obstacle_id":    "GOAL",
			"max_stop_distance_obstacle": 12,
		},
		"logging": map[string]interface{}{"level": "warn"},
		"ultrasonic": map[string]interface{}{
			"can_card_parameter": map[string]interface{}{"brand": "FAKE_CAN", "channel_id": 1},
			"entrance_num":       12,
			"poll_interval":      "50ms",
		},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Decider.DestinationObstacleID, test.ShouldEqual, "GOAL")
	test.That(t, cfg.Decider.MaxStopDistanceObstacle, test.ShouldEqual, 12.0)
	test.That(t, cfg.Decider.MinStopDistanceObstacle, test.ShouldEqual, 6.0)
	test.That(t, cfg.Logging.Level, test.ShouldEqual, logging.WARN)
	test.That(t, cfg.Vehicle, test.ShouldResemble, vehicle.DefaultParams())
	test.That(t, cfg.Ultrasonic, test.ShouldNotBeNil)
	test.That(t, cfg.Ultrasonic.CanCard.Brand, test.ShouldEqual, "FAKE_CAN")
	test.That(t, cfg.Ultrasonic.EntranceNum, test.ShouldEqual, 12)

	_, err = FromAttributes(utils.AttributeMap{"speed": 3})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromAttributes(utils.AttributeMap{
		"decider": map[string]interface{}{"min_stop_distance_obstacle": -1},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "min_stop_distance_obstacle")
}

func TestDefaultIsValid(t *testing.T) {
	test.That(t, Default().Validate(""), test.ShouldBeNil)
}

func TestLoggingSettings(t *testing.T) {
	defer logging.GlobalLogLevel.SetLevel(logging.INFO.AsZap())

	InitLoggingSettings(logging.NewTestLogger(t), false)
	test.That(t, logging.GlobalLogLevel.Level(), test.ShouldEqual, logging.INFO.AsZap())

	UpdateFileConfigDebug(true)
	test.That(t, logging.GlobalLogLevel.Level(), test.ShouldEqual, logging.DEBUG.AsZap())

	UpdateFileConfigDebug(false)
	test.That(t, logging.GlobalLogLevel.Level(), test.ShouldEqual, logging.INFO.AsZap())

	InitLoggingSettings(logging.NewTestLogger(t), true)
	UpdateFileConfigDebug(false)
	test.That(t, logging.GlobalLogLevel.Level(), test.ShouldEqual, logging.DEBUG.AsZap())
}
