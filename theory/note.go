package theory

import "fmt"

// Note is a pitch class spelled with a sharp or flat name. Octave is not
// carried; fretboard positions supply absolute pitch.
type Note string

var sharps = [12]Note{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flats = [12]Note{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// enharmonic spellings accepted as input but never produced
var extraSpellings = map[Note]int{"Cb": 11, "Fb": 4, "E#": 5, "B#": 0}

var noteIndex = func() map[Note]int {
	m := make(map[Note]int, 28)
	for i := range sharps {
		m[sharps[i]] = i
		m[flats[i]] = i
	}
	for n, i := range extraSpellings {
		m[n] = i
	}
	return m
}()

// PitchClass returns 0-11 for a note name (C = 0).
func PitchClass(n Note) (int, bool) {
	pc, ok := noteIndex[n]
	return pc, ok
}

// FromPitchClass spells a pitch class, wrapping values outside 0-11.
func FromPitchClass(pc int, preferFlats bool) Note {
	pc = mod12(pc)
	if preferFlats {
		return flats[pc]
	}
	return sharps[pc]
}

// Transpose moves root by semitones around the 12-tone circle. An unknown
// root yields the empty Note.
func Transpose(root Note, semitones int, preferFlats bool) Note {
	pc, ok := PitchClass(root)
	if !ok {
		return ""
	}
	return FromPitchClass(pc+semitones, preferFlats)
}

// SamePitch reports whether two spellings name the same pitch class.
func SamePitch(a, b Note) bool {
	pa, ok1 := PitchClass(a)
	pb, ok2 := PitchClass(b)
	return ok1 && ok2 && pa == pb
}

// PitchName formats a MIDI note number as name+octave, e.g. 60 -> C4.
func PitchName(midi int, preferFlats bool) string {
	return fmt.Sprintf("%s%d", FromPitchClass(midi, preferFlats), midi/12-1)
}

func mod12(v int) int {
	return ((v % 12) + 12) % 12
}
