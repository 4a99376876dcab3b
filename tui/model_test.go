package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-voicings/sequencer"
	"go-voicings/theme"
	"go-voicings/voicing"
)

type stillClock struct{}

func (stillClock) Now() time.Duration { return 0 }

type previews struct{ names []string }

func (p *previews) Preview(v *voicing.Voicing) { p.names = append(p.names, v.Name) }

type saves struct{ n int }

func (s *saves) Touch(sequencer.Sequence) { s.n++ }

func newTestModel() (Model, *previews, *saves) {
	sched := sequencer.NewScheduler(stillClock{}, sequencer.Discard, sequencer.Options{
		Interval:  time.Hour,
		AfterFunc: func(time.Duration, func()) {},
	})
	m := NewModel(sched, theme.New(theme.Default()), voicing.Drop2, []int{2, 3, 4, 5})
	p, s := &previews{}, &saves{}
	m.Preview = p
	m.Saver = s
	return m, p, s
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestTempoKeysClamp(t *testing.T) {
	m, _, _ := newTestModel()
	m = press(m, "+", "+")
	assert.Equal(t, 130, m.Sched.State().Tempo)
	for i := 0; i < 30; i++ {
		m = press(m, "-")
	}
	assert.Equal(t, sequencer.MinTempo, m.Sched.State().Tempo)
}

func TestEnterChordPlacesMeasure(t *testing.T) {
	m, p, s := newTestModel()
	m = press(m, "l", "l", "l", "l", "enter", "D", "m", "7", "x", "backspace", "enter")

	seq := m.Sched.Sequence()
	for i := 4; i < 8; i++ {
		require.NotNil(t, seq[i], "slot %d", i)
		assert.Equal(t, "Dm7", seq[i].Name)
	}
	assert.Nil(t, seq[3])
	assert.Nil(t, seq[8])
	assert.Equal(t, []string{"Dm7"}, p.names)
	assert.Equal(t, 1, s.n)

	first := seq[4].Signature()
	m = press(m, "]")
	assert.NotEqual(t, first, m.Sched.Sequence()[4].Signature())
	assert.Equal(t, "Dm7", m.Sched.Sequence()[4].Name)
	m = press(m, "[")
	assert.Equal(t, first, m.Sched.Sequence()[4].Signature())
}

func TestUnknownChordReportsStatus(t *testing.T) {
	m, _, _ := newTestModel()
	m = press(m, "enter", "H", "7", "enter")
	assert.Contains(t, m.status, "unknown chord")
	assert.Equal(t, 0, m.Sched.Sequence().Filled())

	m = press(m, "c", "C", "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, 0, m.Sched.Sequence().Filled())
}

func TestClearSlot(t *testing.T) {
	m, _, s := newTestModel()
	m = press(m, "enter", "C", "7", "enter", "l", "x")
	seq := m.Sched.Sequence()
	assert.NotNil(t, seq[0])
	assert.Nil(t, seq[1])
	assert.Equal(t, 2, s.n)
}

func TestRepeatMarks(t *testing.T) {
	m, _, _ := newTestModel()
	m = press(m, "r", "j", "r")
	assert.Equal(t, &sequencer.Range{Start: 0, End: 16}, m.Sched.State().Repeat)
	m = press(m, "R")
	assert.Nil(t, m.Sched.State().Repeat)
}

func TestTransportKeys(t *testing.T) {
	m, _, _ := newTestModel()
	m = press(m, "space")
	assert.True(t, m.Sched.State().Playing)
	m = press(m, "space")
	assert.True(t, m.Sched.State().Paused)

	m = press(m, "l", "l")
	assert.Equal(t, 2, m.Sched.State().Step)

	m = press(m, "s")
	assert.True(t, m.Sched.State().Stopped())

	m = press(m, "m")
	assert.True(t, m.Sched.Metronome())
	m = press(m, "p")
	assert.NotEqual(t, "quarter", m.Sched.Rhythm())
}

func TestCycleVoicingType(t *testing.T) {
	m, _, _ := newTestModel()
	m = press(m, "t")
	assert.Equal(t, voicing.Drop3, m.vtype)
	assert.Nil(t, m.strings)
}

func TestViewRenders(t *testing.T) {
	m, _, _ := newTestModel()
	m = press(m, "enter", "G", "7", "enter")
	out := m.View()
	assert.Contains(t, out, "go-voicings")
	assert.Contains(t, out, "STOP")
	assert.Contains(t, out, "1: G7")
	assert.Contains(t, out, "quit")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestViewToleratesSlotWithoutPositions(t *testing.T) {
	m, _, _ := newTestModel()
	seq := sequencer.NewSequence()
	seq[1] = &voicing.Voicing{Name: "x"}
	m.Sched.SetSequence(seq)
	require.Equal(t, 0, m.cursor)

	assert.NotPanics(t, func() { m.View() })
}
