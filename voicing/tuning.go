package voicing

import (
	"fmt"
	"strconv"
	"strings"
)

// NumStrings on a standard guitar
const NumStrings = 6

// OpenPitches are the MIDI pitches of the open strings in standard tuning,
// string 0 being the low E: E2 A2 D3 G3 B3 E4.
var OpenPitches = [NumStrings]int{40, 45, 50, 55, 59, 64}

// Fret search bounds. Open strings are never used.
const (
	MinFret      = 1
	MaxFret      = 18
	MaxShellFret = 16
)

// MIDIPitch returns the absolute pitch sounded at (string, fret).
func MIDIPitch(str, fret int) int {
	return OpenPitches[str] + fret
}

// PitchClassAt returns the 0-11 pitch class sounded at (string, fret).
func PitchClassAt(str, fret int) int {
	return MIDIPitch(str, fret) % 12
}

// fretsFor lists every fret in [MinFret, maxFret] on str producing pc.
func fretsFor(str, pc, maxFret int) []int {
	var res []int
	for f := MinFret; f <= maxFret; f++ {
		if PitchClassAt(str, f) == pc {
			res = append(res, f)
		}
	}
	return res
}

// ParseStrings reads a comma separated string set such as "1,2,3,4". The
// empty string yields nil, meaning the family default.
func ParseStrings(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	res := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 || n >= NumStrings {
			return nil, fmt.Errorf("invalid string %q: want 0-%d", f, NumStrings-1)
		}
		res = append(res, n)
	}
	return res, nil
}
