package ultrasonic

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestMessageManager(t *testing.T) {
	_, err := NewMessageManager(0, 1)
	test.That(t, err, test.ShouldNotBeNil)

	m, err := NewMessageManager(4, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.EntranceNum(), test.ShouldEqual, 4)
	test.That(t, m.Readings(), test.ShouldBeEmpty)

	now := time.Unix(1700000000, 0)
	test.That(t, m.Parse(EncodeRange(2, 1.25, now)), test.ShouldBeNil)

	reading, ok := m.Reading(2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reading, test.ShouldResemble, Reading{Entrance: 2, Range: 1.25, Average: 1.25, Timestamp: now})

	test.That(t, m.Parse(EncodeRange(2, 1.75, now.Add(time.Second))), test.ShouldBeNil)
	reading, _ = m.Reading(2)
	test.That(t, reading.Range, test.ShouldEqual, 1.75)
	test.That(t, reading.Average, test.ShouldEqual, 1.5)

	_, ok = m.Reading(0)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = m.Reading(9)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, m.Readings(), test.ShouldHaveLength, 1)

	t.Run("rejects foreign ids", func(t *testing.T) {
		err := m.Parse(Frame{ID: BaseFrameID + 4, Data: []byte{0, 1}})
		test.That(t, err, test.ShouldNotBeNil)
		err = m.Parse(Frame{ID: 0x100, Data: []byte{0, 1}})
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("rejects short frames", func(t *testing.T) {
		err := m.Parse(Frame{ID: BaseFrameID, Data: []byte{1}})
		test.That(t, err, test.ShouldNotBeNil)
		_, ok := m.Reading(0)
		test.That(t, ok, test.ShouldBeFalse)
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{CanCard: CardParams{Brand: FakeBrand}, EntranceNum: 12}
	test.That(t, cfg.Validate("ultrasonic"), test.ShouldBeNil)
	test.That(t, cfg.Interval(), test.ShouldEqual, defaultPollInterval)

	cfg.PollInterval = "5ms"
	test.That(t, cfg.Validate("ultrasonic"), test.ShouldBeNil)
	test.That(t, cfg.Interval(), test.ShouldEqual, 5*time.Millisecond)

	bad := Config{CanCard: CardParams{ChannelID: -1}, PollInterval: "soon", AverageSamples: -1}
	err := bad.Validate("ultrasonic")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "brand")
	test.That(t, err.Error(), test.ShouldContainSubstring, "channel_id")
	test.That(t, err.Error(), test.ShouldContainSubstring, "entrance_num")
	test.That(t, err.Error(), test.ShouldContainSubstring, "poll_interval")
	test.That(t, err.Error(), test.ShouldContainSubstring, "average_samples")
}

func TestEncodeRangeSaturates(t *testing.T) {
	now := time.Unix(1700000000, 0)
	m, err := NewMessageManager(2, 1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, EncodeRange(0, 700, now).Data, test.ShouldResemble, []byte{0xff, 0xff})
	test.That(t, EncodeRange(1, -0.3, now).Data, test.ShouldResemble, []byte{0, 0})

	test.That(t, m.Parse(EncodeRange(0, 700, now)), test.ShouldBeNil)
	reading, ok := m.Reading(0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reading.Range, test.ShouldAlmostEqual, 655.35)
}
