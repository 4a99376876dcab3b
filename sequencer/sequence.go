package sequencer

import (
	"go-voicings/voicing"
)

const (
	// MaxSteps is the fixed sequence length: 40 measures of 4 beats.
	MaxSteps        = 160
	StepsPerMeasure = 4
)

// Sequence is the beat grid. A nil slot is a rest.
type Sequence []*voicing.Voicing

// NewSequence returns an empty grid of MaxSteps rests.
func NewSequence() Sequence {
	return make(Sequence, MaxSteps)
}

// Clone copies the grid and every voicing in it.
func (s Sequence) Clone() Sequence {
	res := make(Sequence, len(s))
	for i, v := range s {
		if v != nil {
			res[i] = v.Clone(v.Name)
		}
	}
	return res
}

// At returns the voicing at step, nil for rests and out-of-range steps.
func (s Sequence) At(step int) *voicing.Voicing {
	if step < 0 || step >= len(s) {
		return nil
	}
	return s[step]
}

// LastFilled returns the index of the last non-rest slot, or -1.
func (s Sequence) LastFilled() int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != nil {
			return i
		}
	}
	return -1
}

// Filled counts non-rest slots.
func (s Sequence) Filled() int {
	n := 0
	for _, v := range s {
		if v != nil {
			n++
		}
	}
	return n
}

// ContentEnd is the last step of the last measure holding any chord. An
// empty sequence still loops over one measure.
func (s Sequence) ContentEnd() int {
	last := s.LastFilled()
	if last < 0 {
		return StepsPerMeasure - 1
	}
	end := (last/StepsPerMeasure+1)*StepsPerMeasure - 1
	return min(end, MaxSteps-1)
}

// Place puts a copy of v on count steps starting at step, clipped to the
// grid. Returns the number of slots written.
func (s Sequence) Place(step, count int, v *voicing.Voicing) int {
	n := 0
	for i := step; i < step+count && i < len(s); i++ {
		if i < 0 {
			continue
		}
		if v == nil {
			s[i] = nil
		} else {
			s[i] = v.Clone(v.Name)
		}
		n++
	}
	return n
}

// Clear rests the slots in [from, to].
func (s Sequence) Clear(from, to int) {
	for i := max(from, 0); i <= to && i < len(s); i++ {
		s[i] = nil
	}
}

// padded returns s grown or cut to exactly MaxSteps.
func (s Sequence) padded() Sequence {
	if len(s) == MaxSteps {
		return s
	}
	res := NewSequence()
	copy(res, s)
	return res
}
