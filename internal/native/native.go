// Package native models the host's sensor service: the sensor types it knows,
// the sampling delay classes, and the listener contract through which it
// delivers events.
package native

//go:generate mockgen -source=native.go -destination=mock/manager_mock.go -package=mock

import (
	"fmt"
	"time"

	"github.com/CristiGvl/picoSensingKit/internal/platform"
)

// Type identifies a sensor on the host platform.
type Type int

// Sensor types, numbered the way the mobile platform numbers them.
const (
	TypeAccelerometer      Type = 1
	TypeMagneticField      Type = 2
	TypeGyroscope          Type = 4
	TypeLight              Type = 5
	TypeGravity            Type = 9
	TypeLinearAcceleration Type = 10
	TypeRotationVector     Type = 11
	TypeAmbientTemperature Type = 13
	TypeStepDetector       Type = 18
	TypeStepCounter        Type = 19
)

var typeNames = map[Type]string{
	TypeAccelerometer:      "accelerometer",
	TypeMagneticField:      "magnetic_field",
	TypeGyroscope:          "gyroscope",
	TypeLight:              "light",
	TypeGravity:            "gravity",
	TypeLinearAcceleration: "linear_acceleration",
	TypeRotationVector:     "rotation_vector",
	TypeAmbientTemperature: "ambient_temperature",
	TypeStepDetector:       "step_detector",
	TypeStepCounter:        "step_counter",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Delay is a sampling rate class.
type Delay int

const (
	DelayFastest Delay = iota
	DelayGame
	DelayUI
	DelayNormal
)

// Interval returns the sampling period of the delay class.
func (d Delay) Interval() time.Duration {
	switch d {
	case DelayFastest:
		return 5 * time.Millisecond
	case DelayGame:
		return 20 * time.Millisecond
	case DelayUI:
		return 66667 * time.Microsecond
	default:
		return 200 * time.Millisecond
	}
}

// Accuracy is the confidence the platform reports for a sensor's values.
type Accuracy int

const (
	AccuracyUnreliable Accuracy = iota
	AccuracyLow
	AccuracyMedium
	AccuracyHigh
)

// Sensor describes one physical or fused sensor exposed by the platform.
type Sensor struct {
	Type   Type   `json:"type"`
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
}

// Event is a single reading delivered by the platform.
type Event struct {
	Sensor   Sensor
	Accuracy Accuracy
	// Timestamp is in nanoseconds since the sensor service came up.
	Timestamp int64
	Values    []float32
}

// EventListener receives events for the sensors it was registered with.
// Calls arrive on a goroutine owned by the Manager.
type EventListener interface {
	OnSensorChanged(event Event)
	OnAccuracyChanged(sensor Sensor, accuracy Accuracy)
}

// Manager is the platform sensor service.
type Manager interface {
	// APILevel reports the sensor API revision of the host.
	APILevel() platform.APILevel
	// Sensors lists every sensor the host exposes.
	Sensors() []Sensor
	// DefaultSensor returns the default sensor of the given type.
	DefaultSensor(t Type) (Sensor, bool)
	// RegisterListener starts delivering events of sensor to l at the given
	// rate. It returns false when the platform declines.
	RegisterListener(l EventListener, sensor Sensor, delay Delay) bool
	// UnregisterListener stops delivery to l for every sensor. Events already
	// in flight may still arrive.
	UnregisterListener(l EventListener)
}
