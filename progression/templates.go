package progression

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-voicings/theory"
)

var (
	ErrUnknownProgression = errors.New("unknown progression")
	ErrInvalidKey         = errors.New("invalid key")
)

// Step is one chord of a template: a semitone offset from the key, a chord
// suffix and a length in measures.
type Step struct {
	Degree   int
	Suffix   string
	Measures float64
}

// Template is a named chord progression in no particular key.
type Template struct {
	Name  string
	Steps []Step
}

// Measures is the total length of the template.
func (t Template) Measures() float64 {
	total := 0.0
	for _, s := range t.Steps {
		total += s.Measures
	}
	return total
}

var (
	MajorIIVI = Template{"MajorIIVI", []Step{
		{2, "m7", 1}, {7, "7", 1}, {0, "maj7", 1}, {0, "maj7", 1},
	}}
	MinorIIVI = Template{"MinorIIVI", []Step{
		{2, "m7b5", 1}, {7, "7alt", 1}, {0, "m6", 1}, {0, "m6", 1},
	}}
	Blues = Template{"Blues", []Step{
		{0, "7", 1}, {5, "7", 1}, {0, "7", 1}, {0, "7", 1},
		{5, "7", 1}, {5, "7", 1}, {0, "7", 1}, {0, "7", 1},
		{7, "7", 1}, {5, "7", 1}, {0, "7", 1}, {7, "7", 1},
	}}
	MinorBlues = Template{"MinorBlues", []Step{
		{0, "m7", 1}, {0, "m7", 1}, {0, "m7", 1}, {0, "m7", 1},
		{5, "m7", 1}, {5, "m7", 1}, {0, "m7", 1}, {0, "m7", 1},
		{8, "7", 1}, {7, "7", 1}, {0, "m7", 1}, {7, "7", 1},
	}}
	RhythmChanges = Template{"RhythmChanges", []Step{
		{0, "maj7", .5}, {9, "m7", .5}, {2, "m7", .5}, {7, "7", .5},
		{4, "m7", .5}, {9, "7", .5}, {2, "m7", .5}, {7, "7", .5},
		{0, "maj7", .5}, {0, "7", .5}, {5, "maj7", .5}, {5, "m6", .5},
		{4, "m7", .5}, {9, "7", .5}, {2, "m7", .5}, {7, "7", .5},
	}}
	RhythmBridge = Template{"RhythmBridge", []Step{
		{4, "7", 2}, {9, "7", 2}, {2, "7", 2}, {7, "7", 2},
	}}
	IviIIV = Template{"IviIIV", []Step{
		{0, "maj7", 1}, {9, "m7", 1}, {2, "m7", 1}, {7, "7", 1},
	}}
	IIIviIIV = Template{"IIIviIIV", []Step{
		{4, "m7", 1}, {9, "m7", 1}, {2, "m7", 1}, {7, "7", 1},
	}}
	MinorTurnaround = Template{"MinorTurnaround", []Step{
		{0, "m7", 1}, {8, "maj7", 1}, {2, "m7b5", 1}, {7, "7b9", 1},
	}}
)

var templates = map[string]Template{}

func init() {
	for _, t := range []Template{
		MajorIIVI, MinorIIVI, Blues, MinorBlues, RhythmChanges,
		RhythmBridge, IviIIV, IIIviIIV, MinorTurnaround,
	} {
		templates[normalize(t.Name)] = t
	}
}

func normalize(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(name))
}

// Lookup finds a template by name, ignoring case, spaces, dashes and underscores.
func Lookup(name string) (Template, error) {
	t, ok := templates[normalize(name)]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownProgression, name)
	}
	return t, nil
}

// Names lists the templates in a stable order.
func Names() []string {
	res := make([]string, 0, len(templates))
	for _, t := range templates {
		res = append(res, t.Name)
	}
	sort.Strings(res)
	return res
}

// Chord is a template step resolved in a key and placed on the beat grid.
type Chord struct {
	Symbol string      `json:"symbol"`
	Root   theory.Note `json:"root"`
	Suffix string      `json:"suffix"`
	Start  int         `json:"start"`
	Beats  int         `json:"beats"`
}

// Expand resolves a template in key.
func Expand(name, key string) ([]Chord, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return t.In(key)
}

// In resolves the template in key, laying chords out back to back from
// step 0 at four beats per measure.
func (t Template) In(key string) ([]Chord, error) {
	root := theory.Note(strings.TrimSpace(key))
	if _, ok := theory.PitchClass(root); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	chords := make([]Chord, 0, len(t.Steps))
	start := 0
	for _, s := range t.Steps {
		r := theory.Transpose(root, s.Degree, flatDegree(root, s.Degree))
		beats := int(s.Measures * 4)
		chords = append(chords, Chord{
			Symbol: string(r) + s.Suffix,
			Root:   r,
			Suffix: s.Suffix,
			Start:  start,
			Beats:  beats,
		})
		start += beats
	}
	return chords, nil
}

// flatDegree picks the spelling of a chord root. Flat keys and F spell
// everything flat, sharp keys sharp, and natural keys flatten the
// chromatic degrees bII, bIII, bVI and bVII.
func flatDegree(key theory.Note, degree int) bool {
	k := string(key)
	switch {
	case strings.Contains(k[1:], "b"), k == "F":
		return true
	case strings.Contains(k[1:], "#"):
		return false
	}
	switch ((degree % 12) + 12) % 12 {
	case 1, 3, 8, 10:
		return true
	}
	return false
}
