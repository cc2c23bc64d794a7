package ultrasonic

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/pathdecider/utils"
)

// BaseFrameID is the CAN id of entrance 0. Entrance i reports on BaseFrameID+i.
const BaseFrameID uint32 = 0x301

// rangeFrameLen is the payload size of a range frame: a big endian range in centimeters.
const rangeFrameLen = 2

// Reading is the latest range reported by one entrance.
type Reading struct {
	Entrance int
	// Range is in meters.
	Range float64
	// Average is the rolling mean of the most recent ranges.
	Average   float64
	Timestamp time.Time
}

// MessageManager decodes range frames and keeps the latest reading per entrance.
type MessageManager struct {
	mu       sync.RWMutex
	readings []Reading
	averages []*utils.RollingAverage
	received []bool
}

// NewMessageManager tracks entranceNum sensors, averaging each over averageSamples frames.
func NewMessageManager(entranceNum, averageSamples int) (*MessageManager, error) {
	if entranceNum <= 0 {
		return nil, errors.Errorf("entrance_num must be positive, got %d", entranceNum)
	}
	readings := make([]Reading, entranceNum)
	averages := make([]*utils.RollingAverage, entranceNum)
	for i := range readings {
		readings[i].Entrance = i
		averages[i] = utils.NewRollingAverage(averageSamples)
	}
	return &MessageManager{readings: readings, averages: averages, received: make([]bool, entranceNum)}, nil
}

// EntranceNum is the number of tracked sensors.
func (m *MessageManager) EntranceNum() int {
	return len(m.readings)
}

// Parse decodes one frame. Frames for other ids return an error and change nothing.
func (m *MessageManager) Parse(frame Frame) error {
	if frame.ID < BaseFrameID || frame.ID >= BaseFrameID+uint32(len(m.readings)) {
		return errors.Errorf("unexpected frame id 0x%x", frame.ID)
	}
	if len(frame.Data) < rangeFrameLen {
		return errors.Errorf("frame 0x%x too short: %d bytes", frame.ID, len(frame.Data))
	}

	entrance := int(frame.ID - BaseFrameID)
	centimeters := binary.BigEndian.Uint16(frame.Data[:rangeFrameLen])

	meters := float64(centimeters) / 100

	m.mu.Lock()
	defer m.mu.Unlock()
	m.averages[entrance].Add(meters)
	m.readings[entrance] = Reading{
		Entrance:  entrance,
		Range:     meters,
		Average:   m.averages[entrance].Average(),
		Timestamp: frame.Timestamp,
	}
	m.received[entrance] = true
	return nil
}

// Reading returns the latest reading of an entrance and whether one has been received.
func (m *MessageManager) Reading(entrance int) (Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entrance < 0 || entrance >= len(m.readings) {
		return Reading{}, false
	}
	return m.readings[entrance], m.received[entrance]
}

// Readings returns a copy of the latest readings of every entrance that has reported.
func (m *MessageManager) Readings() []Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Reading, 0, len(m.readings))
	for i, r := range m.readings {
		if m.received[i] {
			out = append(out, r)
		}
	}
	return out
}

// EncodeRange builds the frame an entrance would send for a range in meters. Ranges outside
// what the payload can carry saturate at 0 or the largest encodable range.
func EncodeRange(entrance int, meters float64, ts time.Time) Frame {
	data := make([]byte, rangeFrameLen)
	centimeters := utils.Clamp(math.Round(meters*100), 0, math.MaxUint16)
	binary.BigEndian.PutUint16(data, uint16(centimeters))
	return Frame{ID: BaseFrameID + uint32(entrance), Data: data, Timestamp: ts}
}
