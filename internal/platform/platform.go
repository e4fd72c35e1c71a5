package platform

import (
	"fmt"
	"runtime"
)

// SupportedOS represents operating systems with a native sensor backend
type SupportedOS string

const (
	Linux   SupportedOS = "linux"
	Windows SupportedOS = "windows"
)

// APILevel is the host sensor API revision. Some sensor types only exist
// from a given level onwards.
type APILevel int

const (
	// KitKat is the first level exposing the step detector and step counter.
	KitKat APILevel = 19

	// CurrentAPILevel is assumed when the configuration does not set one.
	CurrentAPILevel APILevel = 34
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported returns true if the current OS has a native sensor backend
func IsSupported() bool {
	os := GetOS()
	return os == Linux || os == Windows
}

// ValidateSupport returns an error if the current OS has no native sensor backend
func ValidateSupport() error {
	if !IsSupported() {
		return fmt.Errorf("unsupported operating system: %s. Supported: linux, windows", runtime.GOOS)
	}
	return nil
}

// AtLeast reports whether l is the same as or newer than min.
func (l APILevel) AtLeast(min APILevel) bool {
	return l >= min
}
