//go:build windows

package native

import (
	"context"
	"fmt"

	"github.com/StackExchange/wmi"

	"github.com/CristiGvl/picoSensingKit/internal/platform"
)

// Win32_PerfRawData_Counters_ThermalZoneInformation represents thermal zone data
type Win32_PerfRawData_Counters_ThermalZoneInformation struct {
	Name        string
	Temperature uint64
}

// Win32_TemperatureProbe represents WMI temperature probe data
type Win32_TemperatureProbe struct {
	DeviceID       string
	Name           string
	Description    string
	CurrentReading *uint32
}

// newPlatformManager exposes the WMI thermal zones of a Windows host. Windows
// has no motion sensor API reachable through WMI, so only the ambient
// temperature is backed.
func newPlatformManager(level platform.APILevel, opts ...Option) Manager {
	var sources []Source

	thermal := newThermalSource("wmi", readWMITemperatures)
	if thermal.available(context.Background()) {
		sources = append(sources, thermal)
	}

	return NewPollingManager(level, sources, opts...)
}

// readWMITemperatures tries temperature probes first and falls back to the
// thermal zone performance counters.
func readWMITemperatures(ctx context.Context) ([]TemperatureStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var probes []Win32_TemperatureProbe
	if err := wmi.Query("SELECT * FROM Win32_TemperatureProbe", &probes); err == nil {
		stats := make([]TemperatureStat, 0, len(probes))
		for _, probe := range probes {
			if probe.CurrentReading == nil {
				continue
			}
			// Convert from tenths of Kelvin to Celsius
			stats = append(stats, TemperatureStat{
				Key:     probe.Name,
				Celsius: float64(*probe.CurrentReading)/10.0 - 273.15,
			})
		}
		if len(stats) > 0 {
			return stats, nil
		}
	}

	var zones []Win32_PerfRawData_Counters_ThermalZoneInformation
	if err := wmi.Query("SELECT * FROM Win32_PerfRawData_Counters_ThermalZoneInformation", &zones); err != nil {
		return nil, err
	}

	stats := make([]TemperatureStat, 0, len(zones))
	for _, zone := range zones {
		stats = append(stats, TemperatureStat{
			Key:     fmt.Sprintf("Thermal Zone %s", zone.Name),
			Celsius: float64(zone.Temperature)/10.0 - 273.15,
		})
	}
	return stats, nil
}
