package sensor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristiGvl/picoSensingKit/internal/native"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

func TestResolveNativeKinds(t *testing.T) {
	want := map[sensor.Kind]native.Type{
		sensor.Accelerometer:      native.TypeAccelerometer,
		sensor.Gravity:            native.TypeGravity,
		sensor.LinearAcceleration: native.TypeLinearAcceleration,
		sensor.Gyroscope:          native.TypeGyroscope,
		sensor.Rotation:           native.TypeRotationVector,
		sensor.Magnetometer:       native.TypeMagneticField,
		sensor.AmbientTemperature: native.TypeAmbientTemperature,
		sensor.Light:              native.TypeLight,
	}

	for _, level := range []platform.APILevel{1, platform.KitKat - 1, platform.KitKat, platform.CurrentAPILevel} {
		for kind, typ := range want {
			got, err := sensor.Resolve(kind, level)
			require.NoError(t, err, "%s at %d", kind, level)
			assert.Equal(t, typ, got, "%s at %d", kind, level)
		}
	}
}

func TestResolveStepKindsAreGatedByAPILevel(t *testing.T) {
	tests := []struct {
		kind sensor.Kind
		typ  native.Type
	}{
		{sensor.StepDetector, native.TypeStepDetector},
		{sensor.StepCounter, native.TypeStepCounter},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := sensor.Resolve(tt.kind, platform.KitKat)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, got)

			got, err = sensor.Resolve(tt.kind, platform.CurrentAPILevel)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, got)

			_, err = sensor.Resolve(tt.kind, platform.KitKat-1)
			require.ErrorIs(t, err, sensor.ErrUnsupportedKind)
			assert.NotErrorIs(t, err, sensor.ErrUnknownKind)

			var unsupported *sensor.UnsupportedKindError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, sensor.ReasonAPILevel, unsupported.Reason)
			assert.Equal(t, platform.KitKat, unsupported.Required)
			assert.Equal(t, platform.KitKat-1, unsupported.Actual)
			assert.Contains(t, err.Error(), "unsupported on this OS version")
		})
	}
}

func TestResolveNonNativeKindsAlwaysFail(t *testing.T) {
	for _, kind := range []sensor.Kind{sensor.Location, sensor.Activity, sensor.Battery} {
		for _, level := range []platform.APILevel{1, platform.KitKat, platform.CurrentAPILevel} {
			_, err := sensor.Resolve(kind, level)
			require.ErrorIs(t, err, sensor.ErrUnsupportedKind)

			var unsupported *sensor.UnsupportedKindError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, sensor.ReasonNotNative, unsupported.Reason)
			assert.Equal(t, "not a native sensor: "+kind.String(), err.Error())
		}
	}
}

func TestResolveUnknownKind(t *testing.T) {
	for _, kind := range []sensor.Kind{-1, 13, 200} {
		_, err := sensor.Resolve(kind, platform.CurrentAPILevel)
		assert.ErrorIs(t, err, sensor.ErrUnsupportedKind)
		assert.ErrorIs(t, err, sensor.ErrUnknownKind)
	}
}
