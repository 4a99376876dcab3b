package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranspose(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Note("A"), Transpose("C", 9, false))
	assert.Equal(Note("D"), Transpose("A", 5, true))
	assert.Equal(Note("Eb"), Transpose("E", -1, true))
	assert.Equal(Note("D#"), Transpose("E", -1, false))
	assert.Equal(Note("C"), Transpose("B#", 12, false))
	assert.Equal(Note("Ab"), Transpose("C", 8, true))
	assert.Equal(Note(""), Transpose("H", 1, false))
}

func TestPitchClass(t *testing.T) {
	pc, ok := PitchClass("Gb")
	assert.True(t, ok)
	assert.Equal(t, 6, pc)

	pc, ok = PitchClass("Cb")
	assert.True(t, ok)
	assert.Equal(t, 11, pc)

	_, ok = PitchClass("G##")
	assert.False(t, ok)
}

func TestPitchName(t *testing.T) {
	assert.Equal(t, "C4", PitchName(60, false))
	assert.Equal(t, "E2", PitchName(40, false))
	assert.Equal(t, "Bb3", PitchName(58, true))
}

func TestIntervalSemitones(t *testing.T) {
	s, ok := Interval("9A").Semitones()
	assert.True(t, ok)
	assert.Equal(t, 15, s)
	assert.True(t, Interval("11A").Augmented())
	assert.False(t, Interval("7M").Augmented())
	assert.Equal(t, "#11", Interval("11A").Label())
}
