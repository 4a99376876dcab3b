package sequencer

import (
	"time"

	"go-voicings/rhythm"
)

// BounceOptions describe an offline render of a sequence.
type BounceOptions struct {
	Tempo     int
	Pattern   rhythm.Pattern
	Metronome bool
	CountIn   bool
	// Repeat limits the render to a range. Nil renders up to ContentEnd.
	Repeat *Range
	// Loops is the number of passes over the range, at least one.
	Loops int
}

// Bounce walks the sequence the same way the live scheduler does, starting
// at time zero, and returns the total length including a trailing beat so
// the last chord can ring.
func Bounce(seq Sequence, opts BounceOptions, out Output) time.Duration {
	pattern := opts.Pattern
	if pattern == nil {
		pattern = rhythm.Quarter
	}
	start, end := 0, seq.ContentEnd()
	if opts.Repeat != nil {
		start, end = opts.Repeat.Start, opts.Repeat.End
	}
	loops := max(opts.Loops, 1)
	beat := BeatDuration(opts.Tempo)

	st := stepper{out: out, pattern: pattern, metronome: opts.Metronome}
	var at time.Duration
	if opts.CountIn {
		for step := -CountInBeats; step < 0; step++ {
			st.dispatch(seq, step, at, beat)
			at += beat
		}
	}
	for n := 0; n < loops; n++ {
		for step := start; step <= end; step++ {
			st.dispatch(seq, step, at, beat)
			at += beat
		}
	}
	return at + beat
}
