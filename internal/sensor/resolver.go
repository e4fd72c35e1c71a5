package sensor

import (
	"github.com/CristiGvl/picoSensingKit/internal/native"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
)

type nativeBinding struct {
	sensorType native.Type
	minLevel   platform.APILevel
}

var nativeTypes = map[Kind]nativeBinding{
	Accelerometer:      {sensorType: native.TypeAccelerometer},
	Gravity:            {sensorType: native.TypeGravity},
	LinearAcceleration: {sensorType: native.TypeLinearAcceleration},
	Gyroscope:          {sensorType: native.TypeGyroscope},
	Rotation:           {sensorType: native.TypeRotationVector},
	Magnetometer:       {sensorType: native.TypeMagneticField},
	AmbientTemperature: {sensorType: native.TypeAmbientTemperature},
	StepDetector:       {sensorType: native.TypeStepDetector, minLevel: platform.KitKat},
	StepCounter:        {sensorType: native.TypeStepCounter, minLevel: platform.KitKat},
	Light:              {sensorType: native.TypeLight},
}

// Resolve maps kind to the native sensor type on a host at the given API
// level. The error is always an *UnsupportedKindError.
func Resolve(kind Kind, level platform.APILevel) (native.Type, error) {
	if !kind.Valid() {
		return 0, &UnsupportedKindError{Kind: kind, Reason: ReasonUnknown}
	}
	if !kind.IsNative() {
		return 0, &UnsupportedKindError{Kind: kind, Reason: ReasonNotNative}
	}

	binding := nativeTypes[kind]
	if !level.AtLeast(binding.minLevel) {
		return 0, &UnsupportedKindError{
			Kind:     kind,
			Reason:   ReasonAPILevel,
			Required: binding.minLevel,
			Actual:   level,
		}
	}
	return binding.sensorType, nil
}
