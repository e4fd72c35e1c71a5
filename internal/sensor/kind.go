// Package sensor adapts the platform sensor service into typed readings. A
// Module owns one registration with the native.Manager, converts every event
// into the Reading of its Kind and fans it out to its listeners. A Kit keeps a
// Module per Kind.
package sensor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is an abstract category of measurement, independent of how the
// platform represents it.
type Kind int

const (
	Accelerometer Kind = iota
	Gravity
	LinearAcceleration
	Gyroscope
	Rotation
	Magnetometer
	AmbientTemperature
	StepDetector
	StepCounter
	Light
	Location
	Activity
	Battery

	kindCount
)

var kindNames = [kindCount]string{
	Accelerometer:      "accelerometer",
	Gravity:            "gravity",
	LinearAcceleration: "linear_acceleration",
	Gyroscope:          "gyroscope",
	Rotation:           "rotation",
	Magnetometer:       "magnetometer",
	AmbientTemperature: "ambient_temperature",
	StepDetector:       "step_detector",
	StepCounter:        "step_counter",
	Light:              "light",
	Location:           "location",
	Activity:           "activity",
	Battery:            "battery",
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is part of the enumeration.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// IsNative reports whether k is backed by a hardware or OS-fused sensor.
// Location, activity and battery come from other subsystems.
func (k Kind) IsNative() bool {
	return k.Valid() && k != Location && k != Activity && k != Battery
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Wrapf(ErrUnknownKind, "%d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind maps a name such as "gyroscope" or "linear-acceleration" to its
// Kind. Matching ignores case and treats '-' like '_'.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for k, n := range kindNames {
		if n == normalized {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}

// Kinds returns the whole enumeration in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// NativeKinds returns the kinds backed by a native sensor.
func NativeKinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for _, k := range Kinds() {
		if k.IsNative() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
