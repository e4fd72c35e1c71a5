package sensor

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/native"
)

// Listener receives every reading a Module produces.
type Listener interface {
	OnReading(kind Kind, reading Reading)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(kind Kind, reading Reading)

func (f ListenerFunc) OnReading(kind Kind, reading Reading) {
	f(kind, reading)
}

// State is the lifecycle state of a Module.
type State int

const (
	Idle State = iota
	Sensing
)

func (s State) String() string {
	if s == Sensing {
		return "sensing"
	}
	return "idle"
}

type options struct {
	clock  clock.Clock
	logger logger.Logger
}

// Option configures a Module or a Kit.
type Option func(*options)

// WithClock sets the wall clock used to stamp gravity readings.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// WithLogger sets the logger of a Kit.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Default()
	}
	return o
}

type subscription struct {
	id       string
	listener Listener
}

// Module adapts one native sensor. It is either Idle, with no registration
// held, or Sensing, with its listener registered at the normal delay.
type Module struct {
	kind    Kind
	manager native.Manager
	clock   clock.Clock
	events  *eventListener

	mu    sync.Mutex
	state State

	// listeners is replaced, never mutated, so dispatch can range over
	// it without locking while Subscribe and Unsubscribe run.
	subMu     sync.Mutex
	listeners atomic.Pointer[[]subscription]
}

// NewModule creates an idle module for kind. Unsupported kinds are accepted
// here and rejected by Start.
func NewModule(kind Kind, manager native.Manager, opts ...Option) *Module {
	o := newOptions(opts)
	m := &Module{
		kind:    kind,
		manager: manager,
		clock:   o.clock,
	}
	m.events = &eventListener{module: m}
	m.listeners.Store(&[]subscription{})
	return m
}

// Kind returns the kind the module senses.
func (m *Module) Kind() Kind {
	return m.kind
}

// State returns the current lifecycle state.
func (m *Module) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsSensing reports whether the module holds a registration.
func (m *Module) IsSensing() bool {
	return m.State() == Sensing
}

// Start resolves the kind and registers with the platform. It is a no-op when
// already sensing. Resolution errors are returned as they come from Resolve;
// a declined registration yields a *RegistrationError. On error the module
// stays Idle.
func (m *Module) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Sensing {
		return nil
	}

	sensorType, err := Resolve(m.kind, m.manager.APILevel())
	if err != nil {
		return err
	}

	sensor, ok := m.manager.DefaultSensor(sensorType)
	if !ok {
		return &RegistrationError{Kind: m.kind, SensorType: sensorType, Absent: true}
	}
	if !m.manager.RegisterListener(m.events, sensor, native.DelayNormal) {
		return &RegistrationError{Kind: m.kind, SensorType: sensorType}
	}

	m.state = Sensing
	return nil
}

// Stop releases the registration. Readings already in flight may still be
// delivered. Stopping an idle module does nothing.
func (m *Module) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Idle {
		return
	}
	m.manager.UnregisterListener(m.events)
	m.state = Idle
}

// Subscribe adds l after the existing listeners and returns an id for
// Unsubscribe. It may be called at any time; an event in progress keeps
// fanning out to the listeners it started with.
func (m *Module) Subscribe(l Listener) string {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := uuid.NewString()
	current := *m.listeners.Load()
	next := make([]subscription, len(current), len(current)+1)
	copy(next, current)
	next = append(next, subscription{id: id, listener: l})
	m.listeners.Store(&next)
	return id
}

// Unsubscribe removes the listener registered under id.
func (m *Module) Unsubscribe(id string) error {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	current := *m.listeners.Load()
	index := slices.IndexFunc(current, func(s subscription) bool { return s.id == id })
	if index < 0 {
		return errors.Wrapf(ErrListenerNotFound, "%s listener %s", m.kind, id)
	}

	next := slices.Delete(slices.Clone(current), index, index+1)
	m.listeners.Store(&next)
	return nil
}

// ListenerCount returns the number of subscribed listeners.
func (m *Module) ListenerCount() int {
	return len(*m.listeners.Load())
}

func (m *Module) dispatch(ev native.Event) {
	build, ok := builders[m.kind]
	if !ok {
		return
	}

	reading := build(ev, m.clock.Now())
	for _, s := range *m.listeners.Load() {
		s.listener.OnReading(m.kind, reading)
	}
}

// eventListener is what the module registers with the platform, so the
// native callbacks stay off the Module's exported API.
type eventListener struct {
	module *Module
}

func (l *eventListener) OnSensorChanged(ev native.Event) {
	l.module.dispatch(ev)
}

// OnAccuracyChanged is ignored.
func (l *eventListener) OnAccuracyChanged(native.Sensor, native.Accuracy) {}
