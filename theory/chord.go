package theory

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidChord is returned for symbols with no root or an unknown suffix.
var ErrInvalidChord = errors.New("invalid chord symbol")

// ChordComponents is a parsed chord symbol. Root is kept exactly as written.
type ChordComponents struct {
	Root      Note
	Quality   string
	Intervals []Interval
}

var rootPattern = regexp.MustCompile(`^([A-G][#b]?)(.*)$`)

var qualities = map[string][]Interval{
	"":        {"1", "3M", "5J"},
	"m":       {"1", "3m", "5J"},
	"dim":     {"1", "3m", "5d"},
	"aug":     {"1", "3M", "5A"},
	"sus2":    {"1", "2M", "5J"},
	"sus4":    {"1", "4J", "5J"},
	"maj7":    {"1", "3M", "5J", "7M"},
	"m7":      {"1", "3m", "5J", "7m"},
	"7":       {"1", "3M", "5J", "7m"},
	"m7b5":    {"1", "3m", "5d", "7m"},
	"dim7":    {"1", "3m", "5d", "7d"},
	"6":       {"1", "3M", "5J", "6M"},
	"m6":      {"1", "3m", "5J", "6M"},
	"maj9":    {"1", "3M", "5J", "7M", "9M"},
	"9":       {"1", "3M", "5J", "7m", "9M"},
	"m9":      {"1", "3m", "5J", "7m", "9M"},
	"7b9":     {"1", "3M", "5J", "7m", "9m"},
	"m7b9":    {"1", "3m", "5J", "7m", "9m"},
	"7#9":     {"1", "3M", "5J", "7m", "9A"},
	"mmaj7":   {"1", "3m", "5J", "7M"},
	"maj7#5":  {"1", "3M", "5A", "7M"},
	"7#5":     {"1", "3M", "5A", "7m"},
	"7b5":     {"1", "3M", "5d", "7m"},
	"7#11":    {"1", "3M", "7m", "11A"},
	"7sus4":   {"1", "4J", "5J", "7m"},
	"maj7#4":  {"1", "3M", "4A", "7M"},
	"maj7#11": {"1", "3M", "7M", "11A"},
	"13":      {"1", "3M", "7m", "13M"},
	"alt":     {"1", "3M", "5d", "5A", "7m", "9m", "9A"},
	"7alt":    {"1", "3M", "5d", "5A", "7m", "9m", "9A"},
}

var aliases = map[string]string{
	"M7":   "maj7",
	"min":  "m",
	"min7": "m7",
	"-7":   "m7",
	"-":    "m",
	"ø":    "m7b5",
	"ø7":   "m7b5",
	"o7":   "dim7",
	"°7":   "dim7",
	"mM7":  "mmaj7",
	"+":    "aug",
}

// AlteredSubstitute replaces the full altered palette when a concrete,
// four-voice alt dominant is needed: root, 3, b7, b9.
var AlteredSubstitute = []Interval{"1", "3M", "7m", "9m"}

// ParseChord splits a symbol such as "Bbmaj7" into root and suffix and
// resolves the suffix to its interval list.
func ParseChord(symbol string) (ChordComponents, error) {
	m := rootPattern.FindStringSubmatch(strings.TrimSpace(symbol))
	if m == nil {
		return ChordComponents{}, ErrInvalidChord
	}
	suffix := m[2]
	if a, ok := aliases[suffix]; ok {
		suffix = a
	}
	intervals, ok := qualities[suffix]
	if !ok {
		return ChordComponents{}, ErrInvalidChord
	}
	return ChordComponents{
		Root:      Note(m[1]),
		Quality:   suffix,
		Intervals: append([]Interval(nil), intervals...),
	}, nil
}

// Suffixes lists every recognised quality suffix.
func Suffixes() []string {
	res := make([]string, 0, len(qualities))
	for k := range qualities {
		res = append(res, k)
	}
	return res
}

// IsAltered reports whether a quality is the altered dominant.
func IsAltered(quality string) bool {
	return quality == "alt" || quality == "7alt"
}

// NotesFromIntervals resolves each interval against root. Spelling follows a
// fixed heuristic rather than a key signature: flat roots and F use flats,
// minor or diminished chords on D/G/C/F use flats, dominant C uses flats, and
// augmented intervals are always sharp. Returns nil on an unknown root or
// interval.
func NotesFromIntervals(root Note, intervals []Interval) []Note {
	if _, ok := PitchClass(root); !ok {
		return nil
	}
	useFlats := prefersFlats(root, intervals)
	res := make([]Note, 0, len(intervals))
	for _, iv := range intervals {
		semis, ok := iv.Semitones()
		if !ok {
			return nil
		}
		res = append(res, Transpose(root, semis, useFlats && !iv.Augmented()))
	}
	return res
}

// IntervalMap pairs each resolved note with its interval label. When two
// intervals land on the same pitch class the later one wins.
func IntervalMap(root Note, intervals []Interval) map[Note]string {
	notes := NotesFromIntervals(root, intervals)
	if notes == nil {
		return nil
	}
	res := make(map[Note]string, len(notes))
	for i, n := range notes {
		res[n] = intervals[i].Label()
	}
	return res
}

// Notes resolves a parsed chord.
func (c ChordComponents) Notes() []Note {
	return NotesFromIntervals(c.Root, c.Intervals)
}

func prefersFlats(root Note, intervals []Interval) bool {
	accidental := string(root[1:])
	if strings.Contains(accidental, "b") {
		return true
	}
	if strings.Contains(accidental, "#") {
		return false
	}
	letter := string(root[:1])
	if letter == "F" {
		return true
	}
	if has(intervals, "3m") && strings.Contains("DGCF", letter) {
		return true
	}
	if letter == "C" && has(intervals, "3M") && has(intervals, "7m") {
		return true
	}
	return false
}

func has(intervals []Interval, want Interval) bool {
	for _, iv := range intervals {
		if iv == want {
			return true
		}
	}
	return false
}
