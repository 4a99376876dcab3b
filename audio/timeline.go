package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
)

type scheduled struct {
	start    int
	streamer beep.Streamer
}

// timeline is a mixer whose sources start at absolute sample positions.
// Its position is the audio clock: it only advances as samples are pulled.
type timeline struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	pos    int
	voices []scheduled
	buf    [][2]float64
}

func newTimeline(rate beep.SampleRate) *timeline {
	return &timeline{rate: rate}
}

func (t *timeline) now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rate.D(t.pos)
}

// schedule starts s at clock time at. Times already passed start at once.
func (t *timeline) schedule(at time.Duration, s beep.Streamer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.voices = append(t.voices, scheduled{start: max(t.rate.N(at), t.pos), streamer: s})
}

func (t *timeline) active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.voices)
}

func (t *timeline) Stream(samples [][2]float64) (n int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n = len(samples)
	clear(samples)
	if cap(t.buf) < n {
		t.buf = make([][2]float64, n)
	}

	keep := t.voices[:0]
	for _, v := range t.voices {
		offset := v.start - t.pos
		if offset >= n {
			keep = append(keep, v)
			continue
		}
		from := max(offset, 0)
		buf := t.buf[:n-from]
		m, more := v.streamer.Stream(buf)
		for j := 0; j < m; j++ {
			samples[from+j][0] += buf[j][0]
			samples[from+j][1] += buf[j][1]
		}
		if more && m == len(buf) {
			// still sounding, continues at the start of the next buffer
			keep = append(keep, scheduled{start: t.pos + n, streamer: v.streamer})
		}
	}
	clear(t.voices[len(keep):])
	t.voices = keep
	t.pos += n
	return n, true
}

func (t *timeline) Err() error { return nil }
