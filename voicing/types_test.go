package voicing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"Drop2":         Drop2,
		"drop3":         Drop3,
		"Drop2&4":       Drop2_4,
		"drop2_4":       Drop2_4,
		"Drop 2&4":      Drop2_4,
		"shell":         Shell,
		"Freddie Green": FreddieGreen,
		"fg":            FreddieGreen,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseType("drop5")
	assert.Error(t, err)
}

func TestTypeDefaults(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{2, 3, 4, 5}, Drop2.DefaultStrings())
	assert.Equal([]int{0, 2, 3, 4}, Drop3.DefaultStrings())
	assert.Equal([]int{0, 1, 2, 3}, Drop2_4.DefaultStrings())
	assert.Nil(Shell.DefaultStrings())
	assert.Equal(5, Drop2_4.SpanLimit())
	assert.Equal(4, FreddieGreen.SpanLimit())
	assert.Equal(3, Shell.Voices())
	assert.Equal(4, Drop3.Voices())
}

func TestTypeJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		T Type `json:"t"`
	}{Drop2_4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"Drop2_4"}`, string(b))

	var out struct {
		T Type `json:"t"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"t":"FreddieGreen"}`), &out))
	assert.Equal(t, FreddieGreen, out.T)
}

func TestVoicingHelpers(t *testing.T) {
	v := Voicing{Name: "x", Positions: []FretPosition{
		{String: 3, Fret: 5, Note: "C"},
		{String: 2, Fret: 5, Note: "G"},
	}}
	assert.Equal(t, "2:5,3:5", v.Signature())
	assert.Equal(t, 0, v.Span())
	assert.Equal(t, 5.0, v.MeanFret())
	assert.Equal(t, []int{60, 55}, v.Pitches())
	assert.NoError(t, v.Check())

	bad := Voicing{Positions: []FretPosition{{String: 2, Fret: 5, Note: "C"}}}
	assert.Error(t, bad.Check())

	c := v.Clone("y")
	c.Positions[0].Fret = 7
	assert.Equal(t, 5, v.Positions[0].Fret)
	assert.Equal(t, "y", c.Name)
}

func TestParseStrings(t *testing.T) {
	got, err := ParseStrings(" 1, 2,3,4 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	got, err = ParseStrings("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseStrings("1,6")
	assert.Error(t, err)
	_, err = ParseStrings("a")
	assert.Error(t, err)
}
