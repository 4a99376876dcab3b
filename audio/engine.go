package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"go-voicings/debug"
	"go-voicings/voicing"
)

var ErrClosed = errors.New("audio engine closed")

// Engine is the live sound output. It is both the scheduler's clock and
// its output: time is the position of the stream the speaker is pulling.
// The speaker is opened on first use.
type Engine struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	tl      *timeline
	ctrl    *beep.Ctrl
	started bool
	closed  bool
	initErr error
}

func NewEngine(volume float64) *Engine {
	tl := newTimeline(SampleRate)
	return &Engine{
		rate:   SampleRate,
		volume: volume,
		tl:     tl,
		ctrl:   &beep.Ctrl{Streamer: tl},
	}
}

func (e *Engine) ensure() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.started || e.initErr != nil {
		return e.initErr
	}
	if err := speaker.Init(e.rate, e.rate.N(50*time.Millisecond)); err != nil {
		e.initErr = err
		debug.Log("audio", "speaker init: %v", err)
		return err
	}
	speaker.Play(e.ctrl)
	e.started = true
	debug.Log("audio", "speaker started at %d Hz", e.rate)
	return nil
}

// Start opens the speaker now instead of on first use.
func (e *Engine) Start() error {
	return e.ensure()
}

// Now is the audio clock.
func (e *Engine) Now() time.Duration {
	e.ensure()
	return e.tl.now()
}

func (e *Engine) PlayChord(at time.Duration, positions []voicing.FretPosition, duration time.Duration) {
	if e.ensure() != nil {
		return
	}
	e.tl.schedule(at, newVolume(Strum(positions, duration, e.rate), e.volume))
}

func (e *Engine) PlayClick(at time.Duration, accent bool) {
	if e.ensure() != nil {
		return
	}
	e.tl.schedule(at, newVolume(Click(accent, e.rate), e.volume))
}

// Preview strums a voicing right away.
func (e *Engine) Preview(v *voicing.Voicing) {
	if v == nil {
		return
	}
	e.PlayChord(e.Now(), v.Positions, 1500*time.Millisecond)
}

// Suspend pauses the stream, freezing the clock.
func (e *Engine) Suspend() {
	e.setPaused(true)
}

func (e *Engine) Resume() {
	e.setPaused(false)
}

func (e *Engine) setPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		e.ctrl.Paused = paused
		return
	}
	speaker.Lock()
	e.ctrl.Paused = paused
	speaker.Unlock()
}

// Close releases the speaker. The engine cannot be reused.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.started {
		speaker.Close()
	}
}
