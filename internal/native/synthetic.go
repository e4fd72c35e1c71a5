package native

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/benbjohnson/clock"
)

const standardGravity = 9.80665

type syntheticSource struct {
	sensor Sensor
	clock  clock.Clock
	start  float64
	gen    func(elapsed float64) []float32
}

func (s *syntheticSource) Sensor() Sensor {
	return s.sensor
}

func (s *syntheticSource) Read(ctx context.Context) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	elapsed := float64(s.clock.Now().UnixNano())/1e9 - s.start
	return s.gen(elapsed), nil
}

// SyntheticSources returns a source for every sensor type, producing smoothly
// changing values. They back the synthetic platform used on hosts without
// motion hardware.
func SyntheticSources(clk clock.Clock) []Source {
	start := float64(clk.Now().UnixNano()) / 1e9
	var steps atomic.Int64

	mk := func(t Type, gen func(float64) []float32) Source {
		return &syntheticSource{
			sensor: Sensor{Type: t, Name: "Synthetic " + t.String(), Vendor: "picoSensingKit"},
			clock:  clk,
			start:  start,
			gen:    gen,
		}
	}

	return []Source{
		mk(TypeAccelerometer, func(e float64) []float32 {
			return vec3(0.3*math.Sin(e), 0.2*math.Cos(e*0.7), standardGravity+0.1*math.Sin(e*1.3))
		}),
		mk(TypeMagneticField, func(e float64) []float32 {
			return vec3(22*math.Cos(e*0.1), 5*math.Sin(e*0.1), -42)
		}),
		mk(TypeGyroscope, func(e float64) []float32 {
			return vec3(0.05*math.Sin(e), 0.04*math.Cos(e*0.7), 0.5*math.Cos(e*0.5))
		}),
		mk(TypeLight, func(e float64) []float32 {
			return []float32{float32(300 + 50*math.Sin(e*0.2))}
		}),
		mk(TypeGravity, func(e float64) []float32 {
			roll := 0.2 * math.Sin(e)
			return vec3(standardGravity*math.Sin(roll), 0, standardGravity*math.Cos(roll))
		}),
		mk(TypeLinearAcceleration, func(e float64) []float32 {
			return vec3(0.3*math.Sin(e), 0.2*math.Cos(e*0.7), 0.1*math.Sin(e*1.3))
		}),
		mk(TypeRotationVector, func(e float64) []float32 {
			half := math.Mod(e*0.5, 2*math.Pi) / 2
			return []float32{0, 0, float32(math.Sin(half)), float32(math.Cos(half)), 0.05}
		}),
		mk(TypeAmbientTemperature, func(e float64) []float32 {
			return []float32{float32(21 + 0.5*math.Sin(e/60))}
		}),
		mk(TypeStepDetector, func(float64) []float32 {
			return []float32{1}
		}),
		mk(TypeStepCounter, func(float64) []float32 {
			return []float32{float32(steps.Add(1))}
		}),
	}
}

func vec3(x, y, z float64) []float32 {
	return []float32{float32(x), float32(y), float32(z)}
}
