package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-voicings/rhythm"
	"go-voicings/sequencer"
	"go-voicings/voicing"
)

// dc streams a constant value for n samples.
type dc struct {
	val float64
	n   int
}

func (d *dc) Stream(samples [][2]float64) (int, bool) {
	if d.n <= 0 {
		return 0, false
	}
	m := min(len(samples), d.n)
	for i := 0; i < m; i++ {
		samples[i] = [2]float64{d.val, d.val}
	}
	d.n -= m
	return m, true
}

func (d *dc) Err() error { return nil }

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

var cmaj7 = []voicing.FretPosition{
	{String: 2, Fret: 10, Note: "C"},
	{String: 3, Fret: 9, Note: "E"},
	{String: 4, Fret: 8, Note: "G"},
	{String: 5, Fret: 7, Note: "B"},
}

func TestFrequency(t *testing.T) {
	assert.InDelta(t, 440.0, Frequency(69), 1e-9)
	assert.InDelta(t, 82.407, Frequency(40), 1e-3)
}

func TestTimelineStartsAtScheduledSample(t *testing.T) {
	rate := beep.SampleRate(1000)
	tl := newTimeline(rate)
	tl.schedule(100*time.Millisecond, &dc{val: 0.5, n: 150})

	buf := make([][2]float64, 200)
	n, ok := tl.Stream(buf)
	require.Equal(t, 200, n)
	require.True(t, ok)
	assert.Equal(t, 0.0, buf[99][0])
	assert.Equal(t, 0.5, buf[100][0])
	assert.Equal(t, 0.5, buf[199][1])
	assert.Equal(t, 1, tl.active())
	assert.Equal(t, 200*time.Millisecond, tl.now())

	tl.Stream(buf)
	assert.Equal(t, 0.5, buf[49][0])
	assert.Equal(t, 0.0, buf[50][0])
	assert.Equal(t, 0, tl.active())
}

func TestTimelineLateEventPlaysImmediately(t *testing.T) {
	rate := beep.SampleRate(1000)
	tl := newTimeline(rate)
	buf := make([][2]float64, 100)
	tl.Stream(buf)

	tl.schedule(10*time.Millisecond, &dc{val: 1, n: 10})
	tl.schedule(150*time.Millisecond, &dc{val: 1, n: 10})
	tl.Stream(buf)
	assert.Equal(t, 1.0, buf[0][0])
	assert.Equal(t, 0.0, buf[10][0])
	assert.Equal(t, 1.0, buf[50][0])
}

func TestStrumStaggersStrings(t *testing.T) {
	rate := beep.SampleRate(1000)
	length := drain(Strum(cmaj7, 500*time.Millisecond, rate))
	assert.Equal(t, 500+3*15, length)

	assert.Equal(t, 0, drain(Strum(nil, time.Second, rate)))
}

func TestStrumStaysInRange(t *testing.T) {
	s := Strum(cmaj7, 200*time.Millisecond, SampleRate)
	buf := make([][2]float64, 1024)
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		if !ok {
			break
		}
	}
	assert.Greater(t, peak, 0.01)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestClickAccentIsLouder(t *testing.T) {
	peak := func(accent bool) float64 {
		s := Click(accent, SampleRate)
		buf := make([][2]float64, SampleRate.N(clickLength))
		n, _ := s.Stream(buf)
		p := 0.0
		for i := 0; i < n; i++ {
			p = math.Max(p, math.Abs(buf[i][0]))
		}
		return p
	}
	assert.Greater(t, peak(true), peak(false))
}

func TestRenderWAV(t *testing.T) {
	seq := sequencer.NewSequence()
	seq.Place(0, 4, &voicing.Voicing{Name: "Cmaj7", Positions: cmaj7})

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	length, err := RenderWAV(f, seq, sequencer.BounceOptions{Tempo: 120, Pattern: rhythm.Quarter, CountIn: true}, 0.8)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, 4500*time.Millisecond+tail, length)

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	streamer, format, err := wav.Decode(f)
	require.NoError(t, err)
	defer streamer.Close()
	assert.Equal(t, SampleRate, format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	assert.Equal(t, SampleRate.N(length), streamer.Len())
}

func TestEngineLifecycleWithoutDevice(t *testing.T) {
	e := NewEngine(0.5)
	e.Suspend()
	assert.True(t, e.ctrl.Paused)
	e.Resume()
	assert.False(t, e.ctrl.Paused)
	e.Close()
	assert.ErrorIs(t, e.Start(), ErrClosed)
	e.PlayClick(0, true)
	assert.Equal(t, 0, e.tl.active())
}
