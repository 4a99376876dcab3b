package sequencer

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"

	"go-voicings/debug"
)

// Autosaver mirrors the latest sequence to disk after edits settle.
type Autosaver struct {
	path      string
	debounced func(f func())

	mu      sync.Mutex
	pending Sequence
	lastErr error
}

func NewAutosaver(path string, delay time.Duration) *Autosaver {
	return &Autosaver{
		path:      path,
		debounced: debounce.New(delay),
	}
}

// Path returns the file being written.
func (a *Autosaver) Path() string {
	return a.path
}

// Touch records seq and schedules a write. Bursts of edits collapse into one.
func (a *Autosaver) Touch(seq Sequence) {
	a.mu.Lock()
	a.pending = seq.Clone()
	a.mu.Unlock()
	a.debounced(func() {
		if err := a.Flush(); err != nil {
			debug.Log("autosave", "write %s: %v", a.path, err)
		}
	})
}

// Flush writes any pending sequence now.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return a.lastErr
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		a.lastErr = err
		return err
	}
	a.lastErr = WriteSequence(a.path, a.pending)
	if a.lastErr == nil {
		a.pending = nil
	}
	return a.lastErr
}

// Restore reads the mirrored sequence. A missing file yields an empty grid.
func (a *Autosaver) Restore() (Sequence, error) {
	seq, err := ReadSequence(a.path)
	if os.IsNotExist(err) {
		return NewSequence(), nil
	}
	return seq, err
}
