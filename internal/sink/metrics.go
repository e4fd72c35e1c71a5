package sink

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

const namespace = "picosensingkit"

// Metrics counts readings and exposes the last value of every field.
type Metrics struct {
	readings *prometheus.CounterVec
	values   *prometheus.GaugeVec
}

var _ sensor.Listener = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		readings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_total",
			Help:      "Number of sensor readings delivered, by kind.",
		}, []string{"kind"}),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reading_value",
			Help:      "Last value of each sensor reading field.",
		}, []string{"kind", "field"}),
	}

	for _, c := range []prometheus.Collector{m.readings, m.values} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering sensor metrics")
		}
	}
	return m, nil
}

func (m *Metrics) OnReading(kind sensor.Kind, reading sensor.Reading) {
	name := kind.String()
	m.readings.WithLabelValues(name).Inc()
	for _, f := range reading.Fields() {
		m.values.WithLabelValues(name, f.Name).Set(f.Value)
	}
}
