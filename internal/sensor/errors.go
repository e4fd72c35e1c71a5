package sensor

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/CristiGvl/picoSensingKit/internal/native"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
)

var (
	// ErrUnsupportedKind means the kind has no native backing on this host.
	ErrUnsupportedKind = errors.New("unsupported sensor kind")
	// ErrRegistrationFailed means the platform refused the listener.
	ErrRegistrationFailed = errors.New("sensor registration failed")
	// ErrUnknownKind is wrapped when a value is outside the enumeration.
	ErrUnknownKind = errors.New("unknown sensor kind")

	ErrNotRegistered     = errors.New("sensor module not registered")
	ErrAlreadyRegistered = errors.New("sensor module already registered")
	ErrListenerNotFound  = errors.New("listener not found")
)

// UnsupportedReason tells why a kind could not be resolved.
type UnsupportedReason int

const (
	ReasonNotNative UnsupportedReason = iota
	ReasonAPILevel
	ReasonUnknown
)

func (r UnsupportedReason) String() string {
	switch r {
	case ReasonNotNative:
		return "not a native sensor"
	case ReasonAPILevel:
		return "unsupported on this OS version"
	default:
		return "unknown sensor kind"
	}
}

// UnsupportedKindError is returned by Resolve. It matches ErrUnsupportedKind,
// and ErrUnknownKind too when the reason is ReasonUnknown.
type UnsupportedKindError struct {
	Kind   Kind
	Reason UnsupportedReason
	// Required and Actual are set for ReasonAPILevel.
	Required platform.APILevel
	Actual   platform.APILevel
}

func (e *UnsupportedKindError) Error() string {
	if e.Reason == ReasonAPILevel {
		return fmt.Sprintf("%s: %s requires API level %d, host has %d", e.Reason, e.Kind, e.Required, e.Actual)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Kind)
}

func (e *UnsupportedKindError) Is(target error) bool {
	if target == ErrUnsupportedKind {
		return true
	}
	return target == ErrUnknownKind && e.Reason == ReasonUnknown
}

// RegistrationError is returned by Module.Start when the platform declines
// the listener. It matches ErrRegistrationFailed.
type RegistrationError struct {
	Kind       Kind
	SensorType native.Type
	// Absent is true when the platform has no default sensor of the type.
	Absent bool
}

func (e *RegistrationError) Error() string {
	if e.Absent {
		return fmt.Sprintf("%s: no %s sensor on this device", ErrRegistrationFailed, e.SensorType)
	}
	return fmt.Sprintf("%s: platform declined %s listener for %s", ErrRegistrationFailed, e.SensorType, e.Kind)
}

func (e *RegistrationError) Is(target error) bool {
	return target == ErrRegistrationFailed
}
