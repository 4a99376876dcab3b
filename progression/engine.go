package progression

import (
	"errors"
	"fmt"
	"math"

	"go-voicings/debug"
	"go-voicings/sequencer"
	"go-voicings/theory"
	"go-voicings/util"
	"go-voicings/voicing"
)

// ErrNoVoicing is returned in strict mode when a chord has no playable shape.
var ErrNoVoicing = errors.New("no voicing found")

const (
	// HomeFret anchors the first chord of a progression.
	HomeFret = 5.0
	// mismatchPenalty rules out pairing voicings of different sizes.
	mismatchPenalty = 100
)

var (
	shellPick = []int{0, 1, 3}
	dropPick  = []int{0, 1, 3, 4}
)

// Candidates voices one chord symbol. Altered dominants use a fixed
// four-note substitute, shells keep root, third and seventh, and five-note
// chords lose their fifth for the four-voice families. Every result carries
// the chord's interval map. An unvoiceable chord yields an empty slice.
func Candidates(symbol string, t voicing.Type, strings []int) ([]voicing.Voicing, error) {
	c, err := theory.ParseChord(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, symbol)
	}
	intervals := c.Intervals
	if theory.IsAltered(c.Quality) {
		intervals = theory.AlteredSubstitute
	}
	intervals = adapt(intervals, t)

	notes := theory.NotesFromIntervals(c.Root, intervals)
	labels := theory.IntervalMap(c.Root, intervals)

	res := voicing.Generate(notes, t, strings)
	for i := range res {
		res[i].Intervals = labels
	}
	return res, nil
}

func adapt(intervals []theory.Interval, t voicing.Type) []theory.Interval {
	switch {
	case t.Voices() == 3 && len(intervals) >= 4:
		return shellTones(intervals)
	case t.Voices() == 4 && len(intervals) == 5:
		return pick(intervals, dropPick)
	}
	return intervals
}

// Guide tones in order of preference. A sixth stands in for a missing
// seventh, a suspension for a missing third.
var (
	thirds   = []theory.Interval{"3M", "3m", "4J", "2M"}
	sevenths = []theory.Interval{"7m", "7M", "7d", "6M"}
)

// shellTones keeps root, third and seventh. Tables whose guide tones cannot
// be found fall back to positions 0, 1 and 3.
func shellTones(intervals []theory.Interval) []theory.Interval {
	third, ok3 := firstOf(intervals, thirds)
	seventh, ok7 := firstOf(intervals, sevenths)
	if intervals[0] != "1" || !ok3 || !ok7 {
		return pick(intervals, shellPick)
	}
	return []theory.Interval{"1", third, seventh}
}

func firstOf(intervals, wanted []theory.Interval) (theory.Interval, bool) {
	for _, w := range wanted {
		for _, iv := range intervals {
			if iv == w {
				return w, true
			}
		}
	}
	return "", false
}

func pick(intervals []theory.Interval, idx []int) []theory.Interval {
	res := make([]theory.Interval, len(idx))
	for i, j := range idx {
		res[i] = intervals[j]
	}
	return res
}

// Select picks one voicing per chord, greedily minimizing hand movement.
// The first voiced chord sits nearest HomeFret. Chords without candidates
// come back nil and do not break the chain.
func Select(candidates [][]voicing.Voicing) []*voicing.Voicing {
	res := make([]*voicing.Voicing, len(candidates))
	var prev *voicing.Voicing
	for i, cands := range candidates {
		if len(cands) == 0 {
			continue
		}
		best, bestScore := 0, math.Inf(1)
		for j := range cands {
			var score float64
			if prev == nil {
				score = math.Abs(cands[j].MeanFret() - HomeFret)
			} else {
				score = float64(Distance(prev, &cands[j]))
			}
			if score < bestScore {
				best, bestScore = j, score
			}
		}
		res[i] = &cands[best]
		prev = res[i]
	}
	return res
}

// Distance is the summed fret movement of voices paired by ascending string.
func Distance(a, b *voicing.Voicing) int {
	if len(a.Positions) != len(b.Positions) {
		return mismatchPenalty
	}
	pa, pb := a.SortedPositions(), b.SortedPositions()
	total := 0
	for i := range pa {
		total += util.Abs(pa[i].Fret - pb[i].Fret)
	}
	return total
}

// Options tune sequence generation.
type Options struct {
	// Strict aborts on the first chord with no voicing instead of resting.
	Strict bool
}

// Result is a generated progression.
type Result struct {
	Chords   []Chord            `json:"chords"`
	Voicings []*voicing.Voicing `json:"voicings"`
	Skipped  []string           `json:"skipped,omitempty"`
	Sequence sequencer.Sequence `json:"sequence"`
}

// GenerateSequence voices a progression in key and lays it on the beat grid,
// resting wherever a chord cannot be voiced.
func GenerateSequence(name, key string, t voicing.Type, strings []int) (sequencer.Sequence, error) {
	res, err := Generate(name, key, t, strings, Options{})
	if err != nil {
		return nil, err
	}
	return res.Sequence, nil
}

// GenerateSequenceWith is GenerateSequence with explicit options.
func GenerateSequenceWith(name, key string, t voicing.Type, strings []int, opts Options) (sequencer.Sequence, error) {
	res, err := Generate(name, key, t, strings, opts)
	if err != nil {
		return nil, err
	}
	return res.Sequence, nil
}

// Generate runs the whole pipeline and keeps the intermediate chords and
// picks alongside the sequence.
func Generate(name, key string, t voicing.Type, strings []int, opts Options) (*Result, error) {
	chords, err := Expand(name, key)
	if err != nil {
		return nil, err
	}

	res := &Result{Chords: chords}
	cands := make([][]voicing.Voicing, len(chords))
	for i, c := range chords {
		vs, err := Candidates(c.Symbol, t, strings)
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s as %s", ErrNoVoicing, c.Symbol, t.Label())
			}
			debug.Log("prog", "no %s voicing for %s, resting", t, c.Symbol)
			res.Skipped = append(res.Skipped, c.Symbol)
		}
		cands[i] = vs
	}

	res.Voicings = Select(cands)
	res.Sequence = sequencer.NewSequence()
	for i, c := range chords {
		v := res.Voicings[i]
		if v == nil {
			continue
		}
		res.Sequence.Place(c.Start, c.Beats, v.Clone(c.Symbol))
	}
	return res, nil
}
