// Package sink holds sensor.Listener implementations that export readings
// out of the process or keep them for later queries.
package sink

import (
	"sync"

	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

// Latest keeps the most recent reading of every kind.
type Latest struct {
	readings sync.Map
}

var _ sensor.Listener = (*Latest)(nil)

func NewLatest() *Latest {
	return &Latest{}
}

func (l *Latest) OnReading(kind sensor.Kind, reading sensor.Reading) {
	l.readings.Store(kind, reading)
}

// Get returns the last reading of kind.
func (l *Latest) Get(kind sensor.Kind) (sensor.Reading, bool) {
	value, ok := l.readings.Load(kind)
	if !ok {
		return nil, false
	}
	return value.(sensor.Reading), true
}
