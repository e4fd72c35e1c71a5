package native

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoThermalZone is returned when the host reports no usable temperature.
var ErrNoThermalZone = errors.New("no ambient thermal zone")

// TemperatureStat is one host thermal reading in degrees Celsius.
type TemperatureStat struct {
	Key     string
	Celsius float64
}

// ambientHints are matched against sensor keys in preference order. CPU, GPU
// and drive probes are never taken as ambient.
var ambientHints = []string{"ambient", "acpitz", "thermal zone", "thermal_zone", "pch", "board", "sys"}

var componentHints = []string{"cpu", "core", "processor", "package", "gpu", "nvidia", "amdgpu", "radeon", "nvme", "drive", "disk"}

// pickAmbient chooses the reading closest to an ambient temperature.
func pickAmbient(stats []TemperatureStat) (TemperatureStat, bool) {
	valid := stats[:0:0]
	for _, s := range stats {
		// Skip unrealistic temperatures
		if s.Celsius < -50 || s.Celsius > 150 {
			continue
		}
		valid = append(valid, s)
	}

	for _, hint := range ambientHints {
		for _, s := range valid {
			if strings.Contains(strings.ToLower(s.Key), hint) {
				return s, true
			}
		}
	}
	for _, s := range valid {
		if !containsAny(strings.ToLower(s.Key), componentHints) {
			return s, true
		}
	}
	return TemperatureStat{}, false
}

func containsAny(str string, substrings []string) bool {
	for _, substr := range substrings {
		if strings.Contains(str, substr) {
			return true
		}
	}
	return false
}

// thermalSource exposes the host's ambient thermal zone as an ambient
// temperature sensor.
type thermalSource struct {
	sensor Sensor
	read   func(ctx context.Context) ([]TemperatureStat, error)
}

func newThermalSource(vendor string, read func(ctx context.Context) ([]TemperatureStat, error)) *thermalSource {
	return &thermalSource{
		sensor: Sensor{Type: TypeAmbientTemperature, Name: "Thermal zone", Vendor: vendor},
		read:   read,
	}
}

func (s *thermalSource) Sensor() Sensor {
	return s.sensor
}

func (s *thermalSource) Read(ctx context.Context) ([]float32, error) {
	stats, err := s.read(ctx)
	if err != nil && len(stats) == 0 {
		return nil, err
	}
	stat, ok := pickAmbient(stats)
	if !ok {
		return nil, ErrNoThermalZone
	}
	return []float32{float32(stat.Celsius)}, nil
}

// available reports whether the source currently yields a reading.
func (s *thermalSource) available(ctx context.Context) bool {
	_, err := s.Read(ctx)
	return err == nil
}
