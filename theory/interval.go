package theory

import "strings"

// Interval is a symbolic distance from the chord root: a degree number
// followed by a quality letter (m minor, M major, J perfect, d diminished,
// A augmented). "1" is the unison.
type Interval string

var semitones = map[Interval]int{
	"1":   0,
	"2m":  1,
	"2M":  2,
	"3m":  3,
	"3M":  4,
	"4J":  5,
	"4A":  6,
	"5d":  6,
	"5J":  7,
	"5A":  8,
	"6m":  8,
	"6M":  9,
	"7d":  9,
	"7m":  10,
	"7M":  11,
	"9m":  13,
	"9M":  14,
	"9A":  15,
	"11J": 17,
	"11A": 18,
	"13m": 20,
	"13M": 21,
}

var labels = map[Interval]string{
	"1":   "1",
	"2m":  "b2",
	"2M":  "2",
	"3m":  "b3",
	"3M":  "3",
	"4J":  "4",
	"4A":  "#4",
	"5d":  "b5",
	"5J":  "5",
	"5A":  "#5",
	"6m":  "b6",
	"6M":  "6",
	"7d":  "bb7",
	"7m":  "b7",
	"7M":  "7",
	"9m":  "b9",
	"9M":  "9",
	"9A":  "#9",
	"11J": "11",
	"11A": "#11",
	"13m": "b13",
	"13M": "13",
}

// Semitones returns the fixed semitone distance for an interval.
func (i Interval) Semitones() (int, bool) {
	s, ok := semitones[i]
	return s, ok
}

// Label is the display form used next to note names ("b9", "#11").
func (i Interval) Label() string {
	if l, ok := labels[i]; ok {
		return l
	}
	return string(i)
}

// Augmented intervals are always spelled with sharps.
func (i Interval) Augmented() bool {
	return strings.HasSuffix(string(i), "A")
}
