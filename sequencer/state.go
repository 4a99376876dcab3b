package sequencer

import (
	"fmt"
	"time"

	"go-voicings/util"
)

const (
	DefaultTempo = 120
	MinTempo     = 40
	MaxTempo     = 160

	// CountInBeats of click precede step 0 on a fresh start.
	CountInBeats = 4

	// IdleStep is the highlighted step while stopped.
	IdleStep = -1
)

// Range is an inclusive span of steps.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Contains(step int) bool {
	return step >= r.Start && step <= r.End
}

func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// NewRange orders and clamps a range into the grid.
func NewRange(start, end int) Range {
	if start > end {
		start, end = end, start
	}
	return Range{
		Start: util.Clamp(start, 0, MaxSteps-1),
		End:   util.Clamp(end, 0, MaxSteps-1),
	}
}

// State is the transport as observed from outside. Step is negative during
// the count-in and IdleStep when stopped.
type State struct {
	Tempo   int    `json:"tempo"`
	Step    int    `json:"step"`
	Playing bool   `json:"playing"`
	Paused  bool   `json:"paused"`
	Repeat  *Range `json:"repeat,omitempty"`
}

func (s State) Stopped() bool {
	return !s.Playing && !s.Paused
}

// ClampTempo bounds bpm to the supported range.
func ClampTempo(bpm int) int {
	return util.Clamp(bpm, MinTempo, MaxTempo)
}

// BeatDuration is the length of one step at bpm.
func BeatDuration(bpm int) time.Duration {
	return time.Minute / time.Duration(ClampTempo(bpm))
}
