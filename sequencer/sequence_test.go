package sequencer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-voicings/rhythm"
)

func TestPlaceClipsAndCopies(t *testing.T) {
	seq := NewSequence()
	v := cmaj7()
	assert.Equal(t, 2, seq.Place(158, 4, v))
	assert.Equal(t, 2, seq.Filled())

	v.Name = "changed"
	assert.Equal(t, "Cmaj7", seq[158].Name)

	seq.Clear(150, 200)
	assert.Equal(t, -1, seq.LastFilled())
	assert.Nil(t, seq.At(-1))
	assert.Nil(t, seq.At(MaxSteps))
}

func TestValidateAcceptsPersistedShape(t *testing.T) {
	seq := fillSeq(2)
	data, err := json.Marshal(seq[:3])
	require.NoError(t, err)

	got, err := Validate(data)
	require.NoError(t, err)
	assert.Len(t, got, MaxSteps)
	assert.Equal(t, "Cmaj7", got[1].Name)
	assert.Equal(t, seq[1].Positions, got[1].Positions)
	assert.Nil(t, got[2])
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"not json":        `[`,
		"object root":     `{"name":"C"}`,
		"scalar slot":     `[3]`,
		"missing name":    `[{"positions":[]}]`,
		"positions type":  `[{"name":"C","positions":{}}]`,
		"no positions":    `[null,{"name":"x","positions":[]}]`,
		"fractional fret": `[{"name":"C","positions":[{"string":1,"fret":2.5,"note":"C"}]}]`,
		"string range":    `[{"name":"C","positions":[{"string":6,"fret":2,"note":"C"}]}]`,
		"negative fret":   `[{"name":"C","positions":[{"string":1,"fret":-1,"note":"C"}]}]`,
		"note type":       `[{"name":"C","positions":[{"string":1,"fret":1,"note":1}]}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidSequence)
		})
	}

	long, err := json.Marshal(make([]any, MaxSteps+1))
	require.NoError(t, err)
	_, err = Validate(long)
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestValidateKeepsIntervals(t *testing.T) {
	body := `[{"name":"C7","positions":[{"string":2,"fret":10,"note":"C"}],"intervals":{"C":"1","E":"3"}}]`
	seq, err := Validate([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "3", seq[0].Intervals["E"])
}

func TestStoreSaveListLoad(t *testing.T) {
	st := NewStore(t.TempDir())
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return base }

	first, err := st.Save("blues in f", "", fillSeq(4))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01_12-00-00.json", first)

	st.now = func() time.Time { return base.Add(time.Minute) }
	second, err := st.Save("blues in f", "take two", fillSeq(8))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01_12-01-00_take-two.json", second)

	projects, err := st.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"blues-in-f"}, projects)

	saves, err := st.ListSaves("blues in f")
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "take-two", saves[0].Name)

	latest, err := st.Load("blues in f", "")
	require.NoError(t, err)
	assert.Equal(t, 8, latest.Filled())

	older, err := st.Load("blues in f", first)
	require.NoError(t, err)
	assert.Equal(t, 4, older.Filled())

	renamed, err := st.RenameSave("blues in f", first, "sketch")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01_12-00-00_sketch.json", renamed)

	require.NoError(t, st.DeleteSave("blues in f", second))
	saves, err = st.ListSaves("blues in f")
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "sketch", saves[0].Name)
}

func TestStoreEmptyAndErrors(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "missing"))
	projects, err := st.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = st.Load("nothing", "")
	assert.Error(t, err)
	_, err = st.RenameSave("nothing", "bogus.json", "x")
	assert.Error(t, err)

	require.NoError(t, st.CreateProject("a"))
	require.NoError(t, st.RenameProject("a", "b"))
	projects, err = st.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, projects)
	require.NoError(t, st.DeleteProject("b"))
}

func TestLoadRejectsCorruptSave(t *testing.T) {
	st := NewStore(t.TempDir())
	require.NoError(t, st.CreateProject("p"))
	path := filepath.Join(st.ProjectDir("p"), "2025-01-01_00-00-00.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"oops":true}`), 0644))

	_, err := st.Load("p", "")
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestAutosaverCollapsesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj", autosaveFile)
	a := NewAutosaver(path, 20*time.Millisecond)

	seq := NewSequence()
	restored, err := a.Restore()
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Filled())

	for i := 0; i < 5; i++ {
		seq[i] = cmaj7()
		a.Touch(seq)
	}

	assert.Eventually(t, func() bool {
		got, err := ReadSequence(path)
		return err == nil && got.Filled() == 5
	}, time.Second, 10*time.Millisecond)

	seq[10] = cmaj7()
	a.Touch(seq)
	require.NoError(t, a.Flush())
	got, err := a.Restore()
	require.NoError(t, err)
	assert.Equal(t, 6, got.Filled())
}

func TestBounceCharlestonWithCountIn(t *testing.T) {
	rec := &recorder{}
	total := Bounce(fillSeq(4), BounceOptions{
		Tempo:   120,
		Pattern: rhythm.Charleston,
		CountIn: true,
	}, rec)

	assert.Equal(t, 4500*time.Millisecond, total)
	require.Len(t, rec.clicks, 4)
	assert.Equal(t, 1500*time.Millisecond, rec.clicks[3].At)

	require.Len(t, rec.chords, 2)
	assert.Equal(t, chordCall{At: 2000 * time.Millisecond, Name: "C", Duration: 600 * time.Millisecond}, rec.chords[0])
	assert.Equal(t, chordCall{At: 2750 * time.Millisecond, Name: "C", Duration: 200 * time.Millisecond}, rec.chords[1])
}

func TestBounceLoopsRange(t *testing.T) {
	rec := &recorder{}
	r := NewRange(0, 1)
	total := Bounce(fillSeq(4), BounceOptions{Tempo: 60, Repeat: &r, Loops: 3}, rec)
	assert.Equal(t, 7*time.Second, total)
	assert.Len(t, rec.chords, 6)
	assert.Empty(t, rec.clicks)
}

func TestStoreRefusesNamesOutsideTheStore(t *testing.T) {
	root := t.TempDir()
	st := NewStore(filepath.Join(root, "projects"))
	require.NoError(t, st.CreateProject("keep"))
	sentinel := filepath.Join(root, "config.json")
	require.NoError(t, os.WriteFile(sentinel, []byte("{}"), 0644))

	for _, name := range []string{"", ".", ".."} {
		assert.ErrorIs(t, st.DeleteProject(name), ErrInvalidName, "%q", name)
		assert.ErrorIs(t, st.RenameProject(name, "x"), ErrInvalidName, "%q", name)
		assert.ErrorIs(t, st.RenameProject("keep", name), ErrInvalidName, "%q", name)
		assert.ErrorIs(t, st.CreateProject(name), ErrInvalidName, "%q", name)
	}
	assert.Equal(t, filepath.Join(st.Dir, "untitled"), st.ProjectDir(".."))
	assert.ErrorIs(t, st.DeleteSave("keep", ".."), ErrInvalidName)

	_, err := os.Stat(sentinel)
	assert.NoError(t, err)
	projects, err := st.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, projects)
}
