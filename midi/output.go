package midi

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-voicings/debug"
	"go-voicings/sequencer"
	"go-voicings/voicing"
)

// OutputConfig routes chords and clicks.
type OutputConfig struct {
	Channel      uint8
	ClickChannel uint8
	Velocity     uint8
}

func DefaultOutputConfig() OutputConfig {
	return OutputConfig{Channel: 0, ClickChannel: PercussionChannel, Velocity: 90}
}

// Output plays scheduler events on a MIDI port. Event times are converted
// to delays against clock, which must be the scheduler's clock.
type Output struct {
	send  func(gomidi.Message) error
	clock sequencer.Clock
	cfg   OutputConfig

	// AfterFunc is replaceable for tests
	AfterFunc func(d time.Duration, f func())

	mu   sync.Mutex
	held map[[2]uint8]int // (channel, note) -> outstanding note-ons
}

func NewOutput(send func(gomidi.Message) error, clock sequencer.Clock, cfg OutputConfig) *Output {
	return &Output{
		send:      send,
		clock:     clock,
		cfg:       cfg,
		AfterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		held:      make(map[[2]uint8]int),
	}
}

func (o *Output) PlayChord(at time.Duration, positions []voicing.FretPosition, duration time.Duration) {
	notes := make([]uint8, 0, len(positions))
	for _, p := range positions {
		notes = append(notes, uint8(voicing.MIDIPitch(p.String, p.Fret)))
	}
	o.notes(at, o.cfg.Channel, notes, o.cfg.Velocity, duration)
}

func (o *Output) PlayClick(at time.Duration, accent bool) {
	note, vel := ClickNote, uint8(80)
	if accent {
		note, vel = ClickAccentNote, 120
	}
	o.notes(at, o.cfg.ClickChannel, []uint8{note}, vel, clickLength)
}

func (o *Output) notes(at time.Duration, ch uint8, notes []uint8, vel uint8, dur time.Duration) {
	delay := max(at-o.clock.Now(), 0)
	o.AfterFunc(delay, func() {
		for _, n := range notes {
			o.emit(Event{Type: NoteOn, Channel: ch, Note: n, Velocity: vel})
		}
	})
	o.AfterFunc(delay+dur, func() {
		for _, n := range notes {
			o.emit(Event{Type: NoteOff, Channel: ch, Note: n})
		}
	})
}

// emit counts strikes per key. A note-off is only sent once the last
// overlapping strike of that key has ended.
func (o *Output) emit(e Event) {
	key := [2]uint8{e.Channel, e.Note}
	o.mu.Lock()
	if e.Type == NoteOn {
		o.held[key]++
	} else {
		if o.held[key] == 0 {
			o.mu.Unlock()
			return
		}
		o.held[key]--
		if o.held[key] > 0 {
			o.mu.Unlock()
			return
		}
		delete(o.held, key)
	}
	o.mu.Unlock()

	if err := o.send(e.Message()); err != nil {
		debug.Log("midi", "send %v: %v", e, err)
	}
}

// Held returns how many notes are currently sounding.
func (o *Output) Held() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, c := range o.held {
		n += c
	}
	return n
}

// Panic releases every sounding note, e.g. on stop.
func (o *Output) Panic() {
	o.mu.Lock()
	held := o.held
	o.held = make(map[[2]uint8]int)
	o.mu.Unlock()

	for key := range held {
		if err := o.send(gomidi.NoteOff(key[0], key[1])); err != nil {
			debug.Log("midi", "panic note-off: %v", err)
		}
	}
}
