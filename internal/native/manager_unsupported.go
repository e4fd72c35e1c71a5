//go:build !linux && !windows

package native

import "github.com/CristiGvl/picoSensingKit/internal/platform"

// newPlatformManager returns a manager without sensors on unsupported platforms,
// so every registration is declined
func newPlatformManager(level platform.APILevel, opts ...Option) Manager {
	return NewPollingManager(level, nil, opts...)
}
