package rhythm

import (
	"fmt"
	"sort"
	"strings"

	"go-voicings/voicing"
)

// Trigger is one strum within a beat. Offset and Duration are in beats.
type Trigger struct {
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration"`
}

// Pattern holds the triggers for each beat of one measure.
type Pattern [][]Trigger

// Fill is played on an otherwise silent beat when the chord changes.
var Fill = Trigger{Offset: 0, Duration: 1.0}

var (
	Quarter      = Pattern{{{0, 0.9}}, {{0, 0.9}}, {{0, 0.9}}, {{0, 0.9}}}
	Charleston   = Pattern{{{0, 1.2}}, {{0.5, 0.4}}, {}, {}}
	FreddieGreen = Pattern{{{0, 0.45}}, {{0, 0.45}}, {{0, 0.45}}, {{0, 0.45}}}
	Half         = Pattern{{{0, 1.9}}, {}, {{0, 1.9}}, {}}
	Whole        = Pattern{{{0, 3.8}}, {}, {}, {}}
)

var presets = map[string]Pattern{
	"quarter":      Quarter,
	"charleston":   Charleston,
	"freddiegreen": FreddieGreen,
	"half":         Half,
	"whole":        Whole,
}

// Lookup finds a preset by name, ignoring case and spaces.
func Lookup(name string) (Pattern, error) {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if p, ok := presets[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown rhythm %q", name)
}

// Names lists the presets.
func Names() []string {
	res := make([]string, 0, len(presets))
	for k := range presets {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Triggers decides what to strum on beat. The first beat of the pattern
// always plays its own triggers. A beat the pattern leaves empty plays a
// single fill only when the chord differs from the previous beat's chord.
func Triggers(p Pattern, beat int, current, previous *voicing.Voicing) []Trigger {
	if len(p) == 0 {
		return nil
	}
	idx := ((beat % len(p)) + len(p)) % len(p)
	if idx == 0 || len(p[idx]) > 0 {
		return p[idx]
	}
	if current == nil {
		return nil
	}
	if changed(current, previous) {
		return []Trigger{Fill}
	}
	return nil
}

func changed(current, previous *voicing.Voicing) bool {
	if previous == nil {
		return true
	}
	return current.Name != previous.Name || current.Signature() != previous.Signature()
}
