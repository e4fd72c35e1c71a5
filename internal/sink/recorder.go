package sink

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

// Recorder appends readings to one CSV file per kind under dir. The header
// row is written when a file is first created.
type Recorder struct {
	dir    string
	logger logger.Logger

	mu     sync.Mutex
	files  map[sensor.Kind]*os.File
	closed bool
}

var _ sensor.Listener = (*Recorder)(nil)

func NewRecorder(dir string, log logger.Logger) (*Recorder, error) {
	if log == nil {
		log = logger.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating recording directory %s", dir)
	}
	return &Recorder{
		dir:    dir,
		logger: log,
		files:  make(map[sensor.Kind]*os.File),
	}, nil
}

// Path returns the file readings of kind are written to.
func (r *Recorder) Path(kind sensor.Kind) string {
	return filepath.Join(r.dir, kind.String()+".csv")
}

func (r *Recorder) OnReading(kind sensor.Kind, reading sensor.Reading) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	f, err := r.open(kind, reading)
	if err != nil {
		r.logger.Errorw("failed to open recording", "kind", kind.String(), "error", err)
		return
	}
	if _, err := f.WriteString(sensor.CSVRow(reading) + "\n"); err != nil {
		r.logger.Errorw("failed to record reading", "kind", kind.String(), "error", err)
	}
}

func (r *Recorder) open(kind sensor.Kind, reading sensor.Reading) (*os.File, error) {
	if f, ok := r.files[kind]; ok {
		return f, nil
	}

	path := r.Path(kind)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if _, err := f.WriteString(sensor.CSVHeader(reading) + "\n"); err != nil {
			f.Close()
			return nil, err
		}
	}

	r.files[kind] = f
	return f, nil
}

// Close closes every open file. Readings delivered afterwards are dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for kind, f := range r.files {
		err = multierr.Append(err, errors.Wrapf(f.Close(), "closing %s recording", kind))
	}
	r.files = make(map[sensor.Kind]*os.File)
	r.closed = true
	return err
}
