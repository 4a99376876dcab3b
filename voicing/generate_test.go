package voicing

import (
	"sort"
	"testing"

	"go-voicings/theory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notesOf(t *testing.T, symbol string) []theory.Note {
	c, err := theory.ParseChord(symbol)
	require.NoError(t, err)
	return c.Notes()
}

func TestDrop2Cmaj7Shapes(t *testing.T) {
	res := Generate(notesOf(t, "Cmaj7"), Drop2, nil)
	require.Len(t, res, 5)

	expected := []struct {
		name  string
		frets []int
		bass  theory.Note
	}{
		{"Root Position", []int{10, 12, 12, 12}, "C"},
		{"1st Inversion", []int{2, 4, 1, 3}, "E"},
		{"2nd Inversion", []int{5, 5, 5, 7}, "G"},
		{"3rd Inversion", []int{9, 9, 8, 8}, "B"},
		{"Close Root Pos", []int{10, 9, 8, 7}, "C"},
	}
	for i, e := range expected {
		assert.Equal(t, e.name, res[i].Name)
		assert.Equal(t, e.frets, res[i].Frets(), e.name)
		assert.Equal(t, e.bass, res[i].Positions[0].Note, e.name)
		for j, p := range res[i].Positions {
			assert.Equal(t, 2+j, p.String)
		}
	}
}

func TestSortByPitchCompactsExtensions(t *testing.T) {
	notes := notesOf(t, "C7#11")
	assert.Equal(t, []theory.Note{"C", "E", "Bb", "F#"}, notes)
	assert.Equal(t, []theory.Note{"C", "E", "F#", "Bb"}, sortByPitch(notes))

	sorted := rotations(sortByPitch(notes))
	for _, rot := range rotations(notes) {
		assert.False(t, containsRotation(sorted, rot), "%v", rot)
	}
	assert.True(t, containsRotation(sorted, []theory.Note{"F#", "Bb", "C", "E"}))
}

func TestGlobalDedupAcrossPaths(t *testing.T) {
	res := Generate(notesOf(t, "C7#11"), Drop2, nil)
	require.NotEmpty(t, res)

	// the stacking-order close form F#-C-E-Bb is the same shape as the
	// sorted 2nd inversion, so only the first one survives
	byName := map[string]Voicing{}
	for _, v := range res {
		byName[v.Name] = v
	}
	second, ok := byName["2nd Inversion"]
	require.True(t, ok)
	assert.Equal(t, []int{4, 5, 5, 6}, second.Frets())
	assert.Equal(t, theory.Note("F#"), second.Positions[0].Note)
	_, dup := byName["Close Var 3rd Inv"]
	assert.False(t, dup)
}

func TestSortedInputHasNoVariants(t *testing.T) {
	for _, vt := range []Type{Drop2, Drop3, Drop2_4} {
		for _, v := range Generate(notesOf(t, "Dm7"), vt, nil) {
			assert.NotContains(t, v.Name, "Var")
		}
	}
}

func TestShellCmaj7(t *testing.T) {
	notes := notesOf(t, "Cmaj7")
	res := Generate([]theory.Note{notes[0], notes[1], notes[3]}, Shell, nil)
	require.Len(t, res, 3)

	assert.Equal(t, "Shell 6th String R-7-3", res[0].Name)
	assert.Equal(t, []int{8, 9, 9}, res[0].Frets())
	assert.Equal(t, "Shell 6th String R-3-7", res[1].Name)
	assert.Equal(t, []int{8, 7, 9}, res[1].Frets())
	assert.Equal(t, "Shell 5th String R-3-7", res[2].Name)
	assert.Equal(t, []int{3, 2, 4}, res[2].Frets())
}

func TestFreddieGreenStaysLow(t *testing.T) {
	for _, symbol := range []string{"C7", "Fmaj7", "Bbm7", "E7", "Abmaj7"} {
		notes := notesOf(t, symbol)
		res := Generate([]theory.Note{notes[0], notes[1], notes[3]}, FreddieGreen, nil)
		for _, v := range res {
			for _, p := range v.Positions {
				assert.LessOrEqual(t, p.String, 3, symbol)
			}
		}
	}
}

func TestCustomStringsOverrideDefault(t *testing.T) {
	res := Generate(notesOf(t, "Cmaj7"), Drop2, []int{4, 3, 2, 1})
	require.NotEmpty(t, res)
	assert.Equal(t, "Root Position", res[0].Name)
	assert.Equal(t, []int{3, 5, 4, 5}, res[0].Frets())
	for _, v := range res {
		for i, p := range v.Positions {
			assert.Equal(t, 1+i, p.String)
		}
	}
}

func TestGenerateReturnsEmptyOnBadInput(t *testing.T) {
	assert := assert.New(t)
	cmaj7 := notesOf(t, "Cmaj7")

	assert.Empty(Generate(cmaj7[:3], Drop2, nil))
	assert.Empty(Generate(cmaj7, Shell, nil))
	assert.Empty(Generate(cmaj7, Drop3, []int{0, 1, 2}))
	assert.Empty(Generate(cmaj7, Drop3, []int{0, 1, 1, 2}))
	assert.Empty(Generate(cmaj7, Drop3, []int{0, 1, 2, 6}))
	assert.Empty(Generate([]theory.Note{"C", "E", "G", "H"}, Drop2, nil))
}

func TestPlayabilityAndPitchFidelity(t *testing.T) {
	symbols := []string{
		"Cmaj7", "Dm7", "G7", "Bbmaj7", "F#m7b5", "Ebdim7", "A6", "Em6", "Dbmmaj7",
		"Gmaj7#5", "B7#5", "E7#11", "C7sus4", "Fmaj7#4", "Abmaj7#11", "D7b5",
	}
	for _, symbol := range symbols {
		notes := notesOf(t, symbol)
		for _, vt := range []Type{Drop2, Drop3, Drop2_4} {
			for _, v := range Generate(notes, vt, nil) {
				assertPlayable(t, v, vt, notes)
			}
		}
		shell := []theory.Note{notes[0], notes[1], notes[3]}
		for _, vt := range []Type{Shell, FreddieGreen} {
			for _, v := range Generate(shell, vt, nil) {
				assertPlayable(t, v, vt, shell)
			}
		}
	}
}

func TestNoDuplicateShapes(t *testing.T) {
	for _, vt := range []Type{Drop2, Drop3, Drop2_4} {
		seen := map[string]bool{}
		for _, v := range Generate(notesOf(t, "E7#11"), vt, nil) {
			sig := v.Signature()
			assert.False(t, seen[sig], sig)
			seen[sig] = true
		}
	}
}

func TestEveryDropFamilyFindsCommonChords(t *testing.T) {
	for _, symbol := range []string{"Cmaj7", "Dm7", "G7", "Am7b5"} {
		for _, vt := range []Type{Drop2, Drop3, Drop2_4} {
			assert.NotEmpty(t, Generate(notesOf(t, symbol), vt, nil), "%s %s", symbol, vt)
		}
	}
}

func assertPlayable(t *testing.T, v Voicing, vt Type, notes []theory.Note) {
	t.Helper()
	require.NoError(t, v.Check(), v.Name)
	assert.LessOrEqual(t, v.Span(), vt.SpanLimit(), v.Name)
	assert.Len(t, v.Positions, vt.Voices())

	want := pitchClasses(notes)
	var got []int
	for _, p := range v.Positions {
		assert.GreaterOrEqual(t, p.Fret, 1)
		got = append(got, PitchClassAt(p.String, p.Fret))
	}
	sort.Ints(got)
	assert.Equal(t, want, got, v.Name)
}

func pitchClasses(notes []theory.Note) []int {
	var res []int
	for _, n := range notes {
		pc, _ := theory.PitchClass(n)
		res = append(res, pc)
	}
	sort.Ints(res)
	return res
}
