package sensor

import (
	"strconv"
	"strings"
)

// Field is one named scalar of a reading.
type Field struct {
	Name  string
	Value float64
}

// Reading is one immutable timestamped measurement. Implementations are
// value types, so every listener holds its own copy.
type Reading interface {
	Kind() Kind
	// Time is the reading timestamp. Most kinds carry the platform event
	// time in nanoseconds; gravity carries wall-clock milliseconds.
	Time() int64
	// Fields lists the measurements in their fixed order.
	Fields() []Field
}

// CSVHeader returns the CSV column names of r.
func CSVHeader(r Reading) string {
	fields := r.Fields()
	names := make([]string, 0, len(fields)+1)
	names = append(names, "timestamp")
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return strings.Join(names, ",")
}

// CSVRow returns r as one CSV line without the trailing newline.
func CSVRow(r Reading) string {
	fields := r.Fields()
	cols := make([]string, 0, len(fields)+1)
	cols = append(cols, strconv.FormatInt(r.Time(), 10))
	for _, f := range fields {
		cols = append(cols, strconv.FormatFloat(f.Value, 'g', -1, 32))
	}
	return strings.Join(cols, ",")
}

// Vector3 is a three-axis measurement.
type Vector3 struct {
	Timestamp int64   `json:"timestamp" msgpack:"timestamp"`
	X         float32 `json:"x" msgpack:"x"`
	Y         float32 `json:"y" msgpack:"y"`
	Z         float32 `json:"z" msgpack:"z"`
}

func (v Vector3) Time() int64 { return v.Timestamp }

func (v Vector3) Fields() []Field {
	return []Field{{"x", float64(v.X)}, {"y", float64(v.Y)}, {"z", float64(v.Z)}}
}

// AccelerometerData is acceleration including gravity, in m/s².
type AccelerometerData struct{ Vector3 }

func (AccelerometerData) Kind() Kind { return Accelerometer }

// GravityData is the gravity vector in m/s². Its timestamp is the wall-clock
// time in milliseconds at which the event was delivered.
type GravityData struct{ Vector3 }

func (GravityData) Kind() Kind { return Gravity }

// LinearAccelerationData is acceleration without gravity, in m/s².
type LinearAccelerationData struct{ Vector3 }

func (LinearAccelerationData) Kind() Kind { return LinearAcceleration }

// GyroscopeData is the rate of rotation around each axis, in rad/s.
type GyroscopeData struct{ Vector3 }

func (GyroscopeData) Kind() Kind { return Gyroscope }

// MagnetometerData is the ambient magnetic field, in µT.
type MagnetometerData struct{ Vector3 }

func (MagnetometerData) Kind() Kind { return Magnetometer }

// RotationData is the device orientation as a unit quaternion.
type RotationData struct {
	Timestamp int64   `json:"timestamp" msgpack:"timestamp"`
	X         float32 `json:"x" msgpack:"x"`
	Y         float32 `json:"y" msgpack:"y"`
	Z         float32 `json:"z" msgpack:"z"`
	W         float32 `json:"w" msgpack:"w"`
	// EstimatedAccuracy is the heading accuracy in radians.
	EstimatedAccuracy float32 `json:"estimated_accuracy" msgpack:"estimated_accuracy"`
}

func (RotationData) Kind() Kind    { return Rotation }
func (r RotationData) Time() int64 { return r.Timestamp }

func (r RotationData) Fields() []Field {
	return []Field{
		{"x", float64(r.X)},
		{"y", float64(r.Y)},
		{"z", float64(r.Z)},
		{"w", float64(r.W)},
		{"estimated_accuracy", float64(r.EstimatedAccuracy)},
	}
}

// AmbientTemperatureData is the room temperature in °C.
type AmbientTemperatureData struct {
	Timestamp   int64   `json:"timestamp" msgpack:"timestamp"`
	Temperature float32 `json:"temperature" msgpack:"temperature"`
}

func (AmbientTemperatureData) Kind() Kind    { return AmbientTemperature }
func (d AmbientTemperatureData) Time() int64 { return d.Timestamp }

func (d AmbientTemperatureData) Fields() []Field {
	return []Field{{"temperature", float64(d.Temperature)}}
}

// StepDetectorData marks a single detected step.
type StepDetectorData struct {
	Timestamp int64 `json:"timestamp" msgpack:"timestamp"`
}

func (StepDetectorData) Kind() Kind      { return StepDetector }
func (d StepDetectorData) Time() int64   { return d.Timestamp }
func (StepDetectorData) Fields() []Field { return nil }

// StepCounterData is the number of steps since the sensor was last activated
// after a reboot.
type StepCounterData struct {
	Timestamp int64   `json:"timestamp" msgpack:"timestamp"`
	Steps     float32 `json:"steps" msgpack:"steps"`
}

func (StepCounterData) Kind() Kind    { return StepCounter }
func (d StepCounterData) Time() int64 { return d.Timestamp }

func (d StepCounterData) Fields() []Field {
	return []Field{{"steps", float64(d.Steps)}}
}

// LightData is the illuminance in lux.
type LightData struct {
	Timestamp int64   `json:"timestamp" msgpack:"timestamp"`
	Light     float32 `json:"light" msgpack:"light"`
}

func (LightData) Kind() Kind    { return Light }
func (d LightData) Time() int64 { return d.Timestamp }

func (d LightData) Fields() []Field {
	return []Field{{"light", float64(d.Light)}}
}
