package sensor

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/native"
)

// Status summarizes one kind on this host.
type Status struct {
	Kind       Kind   `json:"kind"`
	Native     bool   `json:"native"`
	SensorType string `json:"sensor_type,omitempty"`
	SensorName string `json:"sensor_name,omitempty"`
	// Available is true when the kind resolves and the host has the sensor.
	Available  bool   `json:"available"`
	Reason     string `json:"reason,omitempty"`
	Registered bool   `json:"registered"`
	Sensing    bool   `json:"sensing"`
	Listeners  int    `json:"listeners"`
}

// Kit keeps at most one Module per Kind on top of a single platform manager.
type Kit struct {
	manager native.Manager
	opts    []Option
	logger  logger.Logger

	mu      sync.RWMutex
	modules map[Kind]*Module
}

// NewKit creates an empty kit. The options are passed on to every module.
func NewKit(manager native.Manager, opts ...Option) *Kit {
	o := newOptions(opts)
	return &Kit{
		manager: manager,
		opts:    opts,
		logger:  o.logger,
		modules: make(map[Kind]*Module),
	}
}

// Manager returns the platform manager the kit was built on.
func (k *Kit) Manager() native.Manager {
	return k.manager
}

// Register creates the module for kind.
func (k *Kit) Register(kind Kind) error {
	if !kind.Valid() {
		return &UnsupportedKindError{Kind: kind, Reason: ReasonUnknown}
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.modules[kind]; ok {
		return errors.Wrap(ErrAlreadyRegistered, kind.String())
	}
	k.modules[kind] = NewModule(kind, k.manager, k.opts...)
	k.logger.Debugw("sensor module registered", "kind", kind.String())
	return nil
}

// Deregister stops and removes the module for kind.
func (k *Kit) Deregister(kind Kind) error {
	k.mu.Lock()
	module, ok := k.modules[kind]
	delete(k.modules, kind)
	k.mu.Unlock()

	if !ok {
		return errors.Wrap(ErrNotRegistered, kind.String())
	}
	module.Stop()
	k.logger.Debugw("sensor module deregistered", "kind", kind.String())
	return nil
}

// IsRegistered reports whether kind has a module.
func (k *Kit) IsRegistered(kind Kind) bool {
	_, err := k.Module(kind)
	return err == nil
}

// Module returns the module for kind.
func (k *Kit) Module(kind Kind) (*Module, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	module, ok := k.modules[kind]
	if !ok {
		return nil, errors.Wrap(ErrNotRegistered, kind.String())
	}
	return module, nil
}

// Subscribe adds l to the module for kind and returns the subscription id.
func (k *Kit) Subscribe(kind Kind, l Listener) (string, error) {
	module, err := k.Module(kind)
	if err != nil {
		return "", err
	}
	return module.Subscribe(l), nil
}

// Unsubscribe removes a listener from the module for kind.
func (k *Kit) Unsubscribe(kind Kind, id string) error {
	module, err := k.Module(kind)
	if err != nil {
		return err
	}
	return module.Unsubscribe(id)
}

// StartSensing starts the module for kind. Module errors are returned as is.
func (k *Kit) StartSensing(kind Kind) error {
	module, err := k.Module(kind)
	if err != nil {
		return err
	}
	if err := module.Start(); err != nil {
		k.logger.Warnw("failed to start sensing", "kind", kind.String(), "error", err)
		return err
	}
	k.logger.Infow("sensing started", "kind", kind.String())
	return nil
}

// StopSensing stops the module for kind.
func (k *Kit) StopSensing(kind Kind) error {
	module, err := k.Module(kind)
	if err != nil {
		return err
	}
	if module.IsSensing() {
		module.Stop()
		k.logger.Infow("sensing stopped", "kind", kind.String())
	}
	return nil
}

// IsSensing reports whether the module for kind is sensing.
func (k *Kit) IsSensing(kind Kind) (bool, error) {
	module, err := k.Module(kind)
	if err != nil {
		return false, err
	}
	return module.IsSensing(), nil
}

// StartAll starts every registered module and returns the combined errors of
// those that failed.
func (k *Kit) StartAll() error {
	var err error
	for _, module := range k.registered() {
		err = multierr.Append(err, k.StartSensing(module.Kind()))
	}
	return err
}

// StopAll stops every registered module.
func (k *Kit) StopAll() error {
	var err error
	for _, module := range k.registered() {
		err = multierr.Append(err, k.StopSensing(module.Kind()))
	}
	return err
}

// Close stops and deregisters every module.
func (k *Kit) Close() error {
	var err error
	for _, module := range k.registered() {
		err = multierr.Append(err, k.Deregister(module.Kind()))
	}
	return err
}

// Status describes kind, registered or not.
func (k *Kit) Status(kind Kind) (Status, error) {
	if !kind.Valid() {
		return Status{}, &UnsupportedKindError{Kind: kind, Reason: ReasonUnknown}
	}

	status := Status{Kind: kind, Native: kind.IsNative()}
	sensorType, err := Resolve(kind, k.manager.APILevel())
	if err != nil {
		status.Reason = err.Error()
	} else {
		status.SensorType = sensorType.String()
		if sensor, ok := k.manager.DefaultSensor(sensorType); ok {
			status.Available = true
			status.SensorName = sensor.Name
		} else {
			status.Reason = (&RegistrationError{Kind: kind, SensorType: sensorType, Absent: true}).Error()
		}
	}

	if module, err := k.Module(kind); err == nil {
		status.Registered = true
		status.Sensing = module.IsSensing()
		status.Listeners = module.ListenerCount()
	}
	return status, nil
}

// Statuses describes every kind in declaration order.
func (k *Kit) Statuses() []Status {
	statuses := make([]Status, 0, len(Kinds()))
	for _, kind := range Kinds() {
		status, _ := k.Status(kind)
		statuses = append(statuses, status)
	}
	return statuses
}

// registered returns the modules in kind order.
func (k *Kit) registered() []*Module {
	k.mu.RLock()
	defer k.mu.RUnlock()

	modules := make([]*Module, 0, len(k.modules))
	for _, kind := range Kinds() {
		if module, ok := k.modules[kind]; ok {
			modules = append(modules, module)
		}
	}
	return modules
}
