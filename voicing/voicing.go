package voicing

import (
	"fmt"
	"sort"
	"strings"

	"go-voicings/theory"
	"go-voicings/util"
)

// FretPosition is one fretted note.
type FretPosition struct {
	String int         `json:"string"`
	Fret   int         `json:"fret"`
	Note   theory.Note `json:"note"`
}

// Voicing is a playable fingering. Positions are ordered by voice, which for
// generated voicings is also ascending string order.
type Voicing struct {
	Name      string                 `json:"name"`
	Positions []FretPosition         `json:"positions"`
	Intervals map[theory.Note]string `json:"intervals,omitempty"`
}

// Frets returns the fret of every position.
func (v *Voicing) Frets() []int {
	res := make([]int, len(v.Positions))
	for i, p := range v.Positions {
		res[i] = p.Fret
	}
	return res
}

// Span is max fret minus min fret.
func (v *Voicing) Span() int {
	if len(v.Positions) == 0 {
		return 0
	}
	frets := v.Frets()
	return util.Max(frets...) - util.Min(frets...)
}

func (v *Voicing) MinFret() int {
	return util.Min(v.Frets()...)
}

func (v *Voicing) MeanFret() float64 {
	return util.Mean(v.Frets())
}

// SortedPositions returns a copy ordered by string index.
func (v *Voicing) SortedPositions() []FretPosition {
	res := append([]FretPosition(nil), v.Positions...)
	sort.Slice(res, func(i, j int) bool {
		return res[i].String < res[j].String
	})
	return res
}

// Signature identifies the physical shape: its (string, fret) pairs.
func (v *Voicing) Signature() string {
	var parts []string
	for _, p := range v.SortedPositions() {
		parts = append(parts, fmt.Sprintf("%d:%d", p.String, p.Fret))
	}
	return strings.Join(parts, ",")
}

// Pitches returns the MIDI pitches sounded, in position order.
func (v *Voicing) Pitches() []int {
	res := make([]int, len(v.Positions))
	for i, p := range v.Positions {
		res[i] = MIDIPitch(p.String, p.Fret)
	}
	return res
}

// Check verifies the physical invariants: strings in range and distinct,
// frets in range, and every note matching the pitch its position sounds.
func (v *Voicing) Check() error {
	used := make(map[int]bool, len(v.Positions))
	for _, p := range v.Positions {
		if p.String < 0 || p.String >= NumStrings {
			return fmt.Errorf("string %d out of range", p.String)
		}
		if used[p.String] {
			return fmt.Errorf("string %d used twice", p.String)
		}
		used[p.String] = true
		if p.Fret < MinFret || p.Fret > MaxFret {
			return fmt.Errorf("fret %d out of range", p.Fret)
		}
		pc, ok := theory.PitchClass(p.Note)
		if !ok || pc != PitchClassAt(p.String, p.Fret) {
			return fmt.Errorf("note %s does not sound at string %d fret %d", p.Note, p.String, p.Fret)
		}
	}
	return nil
}

// Clone returns a deep copy with a new name.
func (v *Voicing) Clone(name string) *Voicing {
	c := &Voicing{
		Name:      name,
		Positions: append([]FretPosition(nil), v.Positions...),
	}
	if v.Intervals != nil {
		c.Intervals = make(map[theory.Note]string, len(v.Intervals))
		for k, l := range v.Intervals {
			c.Intervals[k] = l
		}
	}
	return c
}
