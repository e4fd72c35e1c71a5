package native

import "github.com/CristiGvl/picoSensingKit/internal/platform"

// NewManager creates the sensor manager for the current platform
func NewManager(level platform.APILevel, opts ...Option) Manager {
	return newPlatformManager(level, opts...)
}
