package midi

import (
	"sort"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// General MIDI percussion used for clicks
const (
	PercussionChannel uint8 = 9
	ClickAccentNote   uint8 = 76 // hi wood block
	ClickNote         uint8 = 77 // low wood block
	clickLength             = 50 * time.Millisecond
)

// Event is a timed note message on the scheduler clock.
type Event struct {
	At       time.Duration
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Message converts the event to a wire message.
func (e Event) Message() gomidi.Message {
	if e.Type == NoteOff {
		return gomidi.NoteOff(e.Channel, e.Note)
	}
	return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
}

// sortEvents orders by time with note-offs first, so a repeated note is
// released before it is struck again.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].At != events[j].At {
			return events[i].At < events[j].At
		}
		return events[i].Type == NoteOff && events[j].Type != NoteOff
	})
}
