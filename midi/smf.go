package midi

import (
	"io"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"

	"go-voicings/sequencer"
	"go-voicings/voicing"
)

// TicksPerQuarter is the resolution of exported files.
const TicksPerQuarter = 960

// collector is an Output that keeps events instead of sending them.
type collector struct {
	cfg    OutputConfig
	events []Event
}

func (c *collector) PlayChord(at time.Duration, positions []voicing.FretPosition, duration time.Duration) {
	for _, p := range positions {
		n := uint8(voicing.MIDIPitch(p.String, p.Fret))
		c.events = append(c.events,
			Event{At: at, Type: NoteOn, Channel: c.cfg.Channel, Note: n, Velocity: c.cfg.Velocity},
			Event{At: at + duration, Type: NoteOff, Channel: c.cfg.Channel, Note: n},
		)
	}
}

func (c *collector) PlayClick(at time.Duration, accent bool) {
	note, vel := ClickNote, uint8(80)
	if accent {
		note, vel = ClickAccentNote, 120
	}
	c.events = append(c.events,
		Event{At: at, Type: NoteOn, Channel: c.cfg.ClickChannel, Note: note, Velocity: vel},
		Event{At: at + clickLength, Type: NoteOff, Channel: c.cfg.ClickChannel, Note: note},
	)
}

// ExportSMF bounces seq and writes it as a single-track standard MIDI file.
func ExportSMF(w io.Writer, seq sequencer.Sequence, opts sequencer.BounceOptions, cfg OutputConfig) error {
	c := &collector{cfg: cfg}
	sequencer.Bounce(seq, opts, c)
	sortEvents(c.events)

	beat := sequencer.BeatDuration(opts.Tempo)
	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(float64(sequencer.ClampTempo(opts.Tempo))))

	var last uint32
	for _, e := range c.events {
		tick := uint32(float64(e.At) / float64(beat) * TicksPerQuarter)
		tr.Add(tick-last, e.Message())
		last = tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(tr); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}
