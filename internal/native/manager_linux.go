//go:build linux

package native

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
)

// newPlatformManager exposes IIO motion/light devices and the gopsutil thermal
// zones of a Linux host
func newPlatformManager(level platform.APILevel, opts ...Option) Manager {
	sources, err := DiscoverIIO(DefaultIIORoot)
	if err != nil {
		logger.Warn("iio discovery failed", "root", DefaultIIORoot, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	thermal := newThermalSource("gopsutil", readHostTemperatures)
	if thermal.available(ctx) {
		sources = append(sources, thermal)
	}

	return NewPollingManager(level, sources, opts...)
}

// readHostTemperatures returns the hwmon/thermal readings gopsutil finds.
// Partial results come back together with a warnings error.
func readHostTemperatures(ctx context.Context) ([]TemperatureStat, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)

	stats := make([]TemperatureStat, 0, len(temps))
	for _, temp := range temps {
		stats = append(stats, TemperatureStat{Key: temp.SensorKey, Celsius: temp.Temperature})
	}
	return stats, err
}
