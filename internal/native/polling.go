package native

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
)

// Source produces the raw values of one sensor on demand.
type Source interface {
	Sensor() Sensor
	Read(ctx context.Context) ([]float32, error)
}

// PollingManager turns pull-based Sources into a push-based Manager: every
// registration gets its own goroutine that samples the source at the delay
// interval and hands the values to the listener.
type PollingManager struct {
	level   platform.APILevel
	clock   clock.Clock
	logger  logger.Logger
	boot    time.Time
	sources map[Type]Source

	mu   sync.Mutex
	regs map[EventListener][]*registration
}

type registration struct {
	sensorType Type
	cancel     context.CancelFunc
}

// Option configures a PollingManager.
type Option func(*PollingManager)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clk clock.Clock) Option {
	return func(m *PollingManager) {
		m.clock = clk
	}
}

// WithLogger sets the logger used for source read failures.
func WithLogger(l logger.Logger) Option {
	return func(m *PollingManager) {
		m.logger = l
	}
}

var _ Manager = (*PollingManager)(nil)

// NewPollingManager creates a manager exposing the given sources. When two
// sources share a type the first one is the default.
func NewPollingManager(level platform.APILevel, sources []Source, opts ...Option) *PollingManager {
	m := &PollingManager{
		level:   level,
		clock:   clock.New(),
		logger:  logger.Default(),
		sources: make(map[Type]Source, len(sources)),
		regs:    make(map[EventListener][]*registration),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.boot = m.clock.Now()

	for _, src := range sources {
		t := src.Sensor().Type
		if _, exists := m.sources[t]; !exists {
			m.sources[t] = src
		}
	}
	return m
}

// APILevel reports the API level the manager was created with.
func (m *PollingManager) APILevel() platform.APILevel {
	return m.level
}

// Sensors lists the default sensor of every available type, ordered by type.
func (m *PollingManager) Sensors() []Sensor {
	sensors := make([]Sensor, 0, len(m.sources))
	for _, src := range m.sources {
		sensors = append(sensors, src.Sensor())
	}
	sort.Slice(sensors, func(i, j int) bool { return sensors[i].Type < sensors[j].Type })
	return sensors
}

// DefaultSensor returns the sensor backing type t, if any.
func (m *PollingManager) DefaultSensor(t Type) (Sensor, bool) {
	src, ok := m.sources[t]
	if !ok {
		return Sensor{}, false
	}
	return src.Sensor(), true
}

// RegisterListener starts polling sensor for l. Registering the same listener
// twice for one sensor keeps the first registration.
func (m *PollingManager) RegisterListener(l EventListener, sensor Sensor, delay Delay) bool {
	if l == nil {
		return false
	}
	src, ok := m.sources[sensor.Type]
	if !ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, reg := range m.regs[l] {
		if reg.sensorType == sensor.Type {
			return true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.regs[l] = append(m.regs[l], &registration{sensorType: sensor.Type, cancel: cancel})

	// The ticker is created before returning so that a tick is never lost
	// between registration and the goroutine starting.
	ticker := m.clock.Ticker(delay.Interval())
	go m.poll(ctx, ticker, l, src)

	return true
}

// UnregisterListener cancels every registration of l. It does not wait for
// the polling goroutines, so it is safe to call from inside a callback.
func (m *PollingManager) UnregisterListener(l EventListener) {
	m.mu.Lock()
	regs := m.regs[l]
	delete(m.regs, l)
	m.mu.Unlock()

	for _, reg := range regs {
		reg.cancel()
	}
}

// Close cancels all registrations.
func (m *PollingManager) Close() {
	m.mu.Lock()
	regs := m.regs
	m.regs = make(map[EventListener][]*registration)
	m.mu.Unlock()

	for _, list := range regs {
		for _, reg := range list {
			reg.cancel()
		}
	}
}

func (m *PollingManager) poll(ctx context.Context, ticker *clock.Ticker, l EventListener, src Source) {
	defer ticker.Stop()
	sensor := src.Sensor()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		values, err := src.Read(ctx)
		if err != nil {
			m.logger.Debugw("sensor read failed", "sensor", sensor.Name, "type", sensor.Type.String(), "error", err)
			continue
		}
		if ctx.Err() != nil {
			return
		}

		l.OnSensorChanged(Event{
			Sensor:    sensor,
			Accuracy:  AccuracyHigh,
			Timestamp: m.clock.Since(m.boot).Nanoseconds(),
			Values:    values,
		})
	}
}
