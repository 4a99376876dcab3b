package sequencer

import (
	"time"

	"go-voicings/voicing"
)

// Clock is the audio timeline. Times handed to an Output are on this clock.
type Clock interface {
	Now() time.Duration
}

// Output receives fire-and-forget trigger calls stamped with Clock times.
type Output interface {
	PlayChord(at time.Duration, positions []voicing.FretPosition, duration time.Duration)
	PlayClick(at time.Duration, accent bool)
}

// WallClock measures time since it was created.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

// Discard is an Output that plays nothing.
var Discard Output = discard{}

type discard struct{}

func (discard) PlayChord(time.Duration, []voicing.FretPosition, time.Duration) {}
func (discard) PlayClick(time.Duration, bool)                                  {}
