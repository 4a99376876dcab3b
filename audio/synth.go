package audio

import (
	"math"
	"sort"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"go-voicings/voicing"
)

const (
	SampleRate = beep.SampleRate(44100)

	strumGap     = 15 * time.Millisecond
	pluckAttack  = 3 * time.Millisecond
	pluckRelease = 60 * time.Millisecond
	clickLength  = 30 * time.Millisecond
)

// Frequency converts a MIDI note number to Hz (A4 = 440).
func Frequency(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// pluck is a decaying saw plus sine, a cheap stand-in for a plucked string.
type pluck struct {
	freq     float64
	phase    float64
	position int
	duration int
	decay    float64
	rate     beep.SampleRate
}

func newPluck(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &pluck{
		freq:     freq,
		duration: rate.N(duration),
		decay:    3.5,
		rate:     rate,
	}
}

func (p *pluck) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if p.position >= p.duration {
			return i, i > 0
		}
		t := float64(p.position) / float64(p.rate)
		saw := 2.0 * (p.phase - 0.5)
		sine := math.Sin(2 * math.Pi * p.phase)
		val := (0.35*saw + 0.65*sine) * math.Exp(-t*p.decay)

		samples[i][0] = val
		samples[i][1] = val

		p.phase += p.freq / float64(p.rate)
		p.phase -= math.Floor(p.phase)
		p.position++
	}
	return len(samples), true
}

func (p *pluck) Err() error { return nil }

// envelope fades a stream in and out to avoid clicks at the edges.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			vol = min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly. Log2(0) is -Inf so zero volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Strum sounds positions from the lowest string up, each note slightly
// after the previous one, ringing for duration.
func Strum(positions []voicing.FretPosition, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	sorted := append([]voicing.FretPosition(nil), positions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String < sorted[j].String })

	if len(sorted) == 0 {
		return beep.Silence(0)
	}
	ring := max(duration, pluckAttack+pluckRelease)
	gain := 1.0 / float64(len(sorted))

	notes := make([]beep.Streamer, 0, len(sorted))
	for i, p := range sorted {
		freq := Frequency(voicing.MIDIPitch(p.String, p.Fret))
		note := newEnvelope(newPluck(freq, ring, rate), ring, pluckAttack, pluckRelease, rate)
		delay := rate.N(time.Duration(i) * strumGap)
		notes = append(notes, beep.Seq(beep.Silence(delay), newVolume(note, gain)))
	}
	return beep.Mix(notes...)
}

// Click is a short blip, higher and louder on accented beats.
func Click(accent bool, rate beep.SampleRate) beep.Streamer {
	freq, vol := 1000.0, 0.4
	if accent {
		freq, vol = 1500.0, 0.7
	}
	osc := &pluck{freq: freq, duration: rate.N(clickLength), decay: 60, rate: rate}
	return newVolume(newEnvelope(osc, clickLength, time.Millisecond, 10*time.Millisecond, rate), vol)
}
