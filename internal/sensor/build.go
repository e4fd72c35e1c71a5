package sensor

import (
	"time"

	"github.com/CristiGvl/picoSensingKit/internal/native"
)

// buildFunc converts a platform event into the reading of one kind. now is the
// delivery wall-clock time.
type buildFunc func(ev native.Event, now time.Time) Reading

var builders = map[Kind]buildFunc{
	Accelerometer: func(ev native.Event, _ time.Time) Reading {
		return AccelerometerData{vector3(ev.Timestamp, ev.Values)}
	},
	// Gravity is stamped with the delivery time, unlike every other kind.
	Gravity: func(ev native.Event, now time.Time) Reading {
		return GravityData{vector3(now.UnixMilli(), ev.Values)}
	},
	LinearAcceleration: func(ev native.Event, _ time.Time) Reading {
		return LinearAccelerationData{vector3(ev.Timestamp, ev.Values)}
	},
	Gyroscope: func(ev native.Event, _ time.Time) Reading {
		return GyroscopeData{vector3(ev.Timestamp, ev.Values)}
	},
	Magnetometer: func(ev native.Event, _ time.Time) Reading {
		return MagnetometerData{vector3(ev.Timestamp, ev.Values)}
	},
	Rotation: func(ev native.Event, _ time.Time) Reading {
		return RotationData{
			Timestamp:         ev.Timestamp,
			X:                 value(ev.Values, 0),
			Y:                 value(ev.Values, 1),
			Z:                 value(ev.Values, 2),
			W:                 value(ev.Values, 3),
			EstimatedAccuracy: value(ev.Values, 4),
		}
	},
	AmbientTemperature: func(ev native.Event, _ time.Time) Reading {
		return AmbientTemperatureData{Timestamp: ev.Timestamp, Temperature: value(ev.Values, 0)}
	},
	StepDetector: func(ev native.Event, _ time.Time) Reading {
		return StepDetectorData{Timestamp: ev.Timestamp}
	},
	StepCounter: func(ev native.Event, _ time.Time) Reading {
		return StepCounterData{Timestamp: ev.Timestamp, Steps: value(ev.Values, 0)}
	},
	Light: func(ev native.Event, _ time.Time) Reading {
		return LightData{Timestamp: ev.Timestamp, Light: value(ev.Values, 0)}
	},
}

func vector3(ts int64, values []float32) Vector3 {
	return Vector3{
		Timestamp: ts,
		X:         value(values, 0),
		Y:         value(values, 1),
		Z:         value(values, 2),
	}
}

// value returns values[i], or zero when the platform sent fewer values.
func value(values []float32, i int) float32 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
