package audio

import (
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"go-voicings/sequencer"
	"go-voicings/voicing"
)

// tail lets the last chord ring out after the sequence ends.
const tail = time.Second

// Renderer is an offline Output: scheduled sounds are mixed into a
// timeline that is pulled by the WAV encoder instead of a speaker.
type Renderer struct {
	rate   beep.SampleRate
	volume float64
	tl     *timeline
}

func NewRenderer(rate beep.SampleRate, volume float64) *Renderer {
	return &Renderer{rate: rate, volume: volume, tl: newTimeline(rate)}
}

func (r *Renderer) PlayChord(at time.Duration, positions []voicing.FretPosition, duration time.Duration) {
	r.tl.schedule(at, newVolume(Strum(positions, duration, r.rate), r.volume))
}

func (r *Renderer) PlayClick(at time.Duration, accent bool) {
	r.tl.schedule(at, newVolume(Click(accent, r.rate), r.volume))
}

// WriteWAV encodes length of audio as 16-bit stereo.
func (r *Renderer) WriteWAV(w io.WriteSeeker, length time.Duration) error {
	format := beep.Format{SampleRate: r.rate, NumChannels: 2, Precision: 2}
	return wav.Encode(w, beep.Take(r.rate.N(length), r.tl), format)
}

// RenderWAV bounces seq and writes the result.
func RenderWAV(w io.WriteSeeker, seq sequencer.Sequence, opts sequencer.BounceOptions, volume float64) (time.Duration, error) {
	r := NewRenderer(SampleRate, volume)
	length := sequencer.Bounce(seq, opts, r) + tail
	return length, r.WriteWAV(w, length)
}
