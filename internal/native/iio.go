package native

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultIIORoot is where the Linux industrial I/O subsystem lists devices.
const DefaultIIORoot = "/sys/bus/iio/devices"

// gaussToMicrotesla converts IIO magnetometer units to the platform's.
const gaussToMicrotesla = 100

type iioChannel struct {
	sensorType Type
	prefix     string
	axes       []string
	factor     float64
}

var iioChannels = []iioChannel{
	{sensorType: TypeAccelerometer, prefix: "accel", axes: []string{"x", "y", "z"}, factor: 1},
	{sensorType: TypeGyroscope, prefix: "anglvel", axes: []string{"x", "y", "z"}, factor: 1},
	{sensorType: TypeMagneticField, prefix: "magn", axes: []string{"x", "y", "z"}, factor: gaussToMicrotesla},
	{sensorType: TypeLight, prefix: "illuminance", factor: 1},
}

// iioSource reads one channel group of an IIO device from sysfs.
type iioSource struct {
	sensor  Sensor
	dir     string
	channel iioChannel
}

// DiscoverIIO scans root for IIO devices and returns a source for every
// motion or light channel group found. A missing root yields no sources.
func DiscoverIIO(root string) ([]Source, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", root)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "iio:device") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var sources []Source
	for _, name := range names {
		dir := filepath.Join(root, name)
		deviceName := readTrimmed(filepath.Join(dir, "name"))
		if deviceName == "" {
			deviceName = name
		}

		for _, ch := range iioChannels {
			if !hasChannel(dir, ch) {
				continue
			}
			sources = append(sources, &iioSource{
				sensor:  Sensor{Type: ch.sensorType, Name: deviceName, Vendor: "iio"},
				dir:     dir,
				channel: ch,
			})
		}
	}
	return sources, nil
}

func hasChannel(dir string, ch iioChannel) bool {
	if len(ch.axes) == 0 {
		return exists(filepath.Join(dir, "in_"+ch.prefix+"_input")) ||
			exists(filepath.Join(dir, "in_"+ch.prefix+"_raw"))
	}
	for _, axis := range ch.axes {
		if !exists(filepath.Join(dir, "in_"+ch.prefix+"_"+axis+"_raw")) {
			return false
		}
	}
	return true
}

func (s *iioSource) Sensor() Sensor {
	return s.sensor
}

func (s *iioSource) Read(ctx context.Context) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := s.channel
	if len(ch.axes) == 0 {
		if v, err := readFloat(filepath.Join(s.dir, "in_"+ch.prefix+"_input")); err == nil {
			return []float32{float32(v * ch.factor)}, nil
		}
		v, err := s.scaled(ch.prefix, "")
		if err != nil {
			return nil, err
		}
		return []float32{float32(v * ch.factor)}, nil
	}

	values := make([]float32, len(ch.axes))
	for i, axis := range ch.axes {
		v, err := s.scaled(ch.prefix, axis)
		if err != nil {
			return nil, err
		}
		values[i] = float32(v * ch.factor)
	}
	return values, nil
}

// scaled applies the IIO formula (raw + offset) * scale. Per-axis scale and
// offset files take precedence over the shared ones.
func (s *iioSource) scaled(prefix, axis string) (float64, error) {
	base := "in_" + prefix
	if axis != "" {
		base += "_" + axis
	}

	raw, err := readFloat(filepath.Join(s.dir, base+"_raw"))
	if err != nil {
		return 0, err
	}
	scale := s.attr(prefix, axis, "scale", 1)
	offset := s.attr(prefix, axis, "offset", 0)
	return (raw + offset) * scale, nil
}

func (s *iioSource) attr(prefix, axis, attr string, fallback float64) float64 {
	if axis != "" {
		if v, err := readFloat(filepath.Join(s.dir, "in_"+prefix+"_"+axis+"_"+attr)); err == nil {
			return v
		}
	}
	if v, err := readFloat(filepath.Join(s.dir, "in_"+prefix+"_"+attr)); err == nil {
		return v
	}
	return fallback
}

func readFloat(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", path)
	}
	return v, nil
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
