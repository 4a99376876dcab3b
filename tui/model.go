package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-voicings/debug"
	"go-voicings/progression"
	"go-voicings/rhythm"
	"go-voicings/sequencer"
	"go-voicings/theme"
	"go-voicings/theory"
	"go-voicings/voicing"
	"go-voicings/widgets"
)

const (
	tempoStep = 5
	gridRow   = 16
)

// Previewer sounds a voicing immediately.
type Previewer interface {
	Preview(v *voicing.Voicing)
}

// Saver persists the working sequence.
type Saver interface {
	Touch(seq sequencer.Sequence)
}

type mode int

const (
	modeNormal mode = iota
	modeChord
)

type Model struct {
	Sched   *sequencer.Scheduler
	Theme   *theme.Theme
	Preview Previewer
	Saver   Saver

	vtype    voicing.Type
	strings  []int
	cursor   int
	mode     mode
	input    string
	symbol   string
	cands    []voicing.Voicing
	candIdx  int
	mark     int // first end of a repeat range being set, -1 if none
	rhythmIx int
	status   string
	quitting bool
}

type UpdateMsg struct{}

func NewModel(sched *sequencer.Scheduler, th *theme.Theme, vtype voicing.Type, strs []int) Model {
	return Model{
		Sched:   sched,
		Theme:   th,
		vtype:   vtype,
		strings: strs,
		mark:    -1,
	}
}

func ListenForUpdates(sched *sequencer.Scheduler) tea.Cmd {
	return func() tea.Msg {
		<-sched.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Sched)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeChord {
			return m.updateChord(msg)
		}
		return m.updateNormal(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Sched)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Sched.Stop()
		return m, tea.Quit

	case " ", "space":
		m.Sched.Toggle()

	case "s":
		m.Sched.Stop()

	case "+", "=":
		m.Sched.SetTempo(m.Sched.State().Tempo + tempoStep)

	case "-", "_":
		m.Sched.SetTempo(m.Sched.State().Tempo - tempoStep)

	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-gridRow)
	case "j", "down":
		m.moveCursor(gridRow)

	case "r":
		if m.mark < 0 {
			m.mark = m.cursor
			m.status = fmt.Sprintf("loop from %d, press r again at the end", m.cursor+1)
		} else {
			r := m.Sched.SetRepeat(m.mark, m.cursor)
			m.mark = -1
			m.status = fmt.Sprintf("looping %d-%d", r.Start+1, r.End+1)
		}

	case "R":
		m.mark = -1
		m.Sched.ClearRepeat()
		m.status = "looping whole sequence"

	case "m":
		on := !m.Sched.Metronome()
		m.Sched.SetMetronome(on)
		m.status = fmt.Sprintf("metronome %v", on)

	case "p":
		names := rhythm.Names()
		m.rhythmIx = (m.rhythmIx + 1) % len(names)
		if err := m.Sched.SetRhythm(names[m.rhythmIx]); err == nil {
			m.status = "rhythm " + names[m.rhythmIx]
		}

	case "t":
		m.vtype = voicing.AllTypes[(indexOf(voicing.AllTypes, m.vtype)+1)%len(voicing.AllTypes)]
		m.strings = nil
		m.cands = nil
		m.status = "voicing type " + m.vtype.Label()

	case "enter", "c":
		m.mode = modeChord
		m.input = ""

	case "[":
		m.cycleCandidate(-1)
	case "]":
		m.cycleCandidate(1)

	case "x", "backspace", "delete":
		m.Sched.UpdateSequence(func(seq sequencer.Sequence) { seq.Clear(m.cursor, m.cursor) })
		m.touch()
	}
	return m, nil
}

func (m Model) updateChord(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		return m, nil

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case tea.KeyEnter:
		m.mode = modeNormal
		m.enterChord(strings.TrimSpace(m.input))
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// enterChord voices symbol and writes the first candidate over one measure
// from the cursor.
func (m *Model) enterChord(symbol string) {
	if symbol == "" {
		return
	}
	cands, err := progression.Candidates(symbol, m.vtype, m.strings)
	if err != nil {
		m.status = fmt.Sprintf("unknown chord %q", symbol)
		return
	}
	if len(cands) == 0 {
		m.status = fmt.Sprintf("no %s voicing for %s", m.vtype.Label(), symbol)
		return
	}
	m.symbol = symbol
	m.cands = cands
	m.candIdx = 0
	m.place()
	m.status = fmt.Sprintf("%s: %d voicings, [ ] to cycle", symbol, len(cands))
}

func (m *Model) cycleCandidate(delta int) {
	if len(m.cands) == 0 {
		return
	}
	m.candIdx = (m.candIdx + delta + len(m.cands)) % len(m.cands)
	m.place()
	m.status = fmt.Sprintf("%s (%d/%d)", m.cands[m.candIdx].Name, m.candIdx+1, len(m.cands))
}

func (m *Model) place() {
	v := m.cands[m.candIdx].Clone(m.symbol)
	start := m.cursor
	m.Sched.UpdateSequence(func(seq sequencer.Sequence) {
		seq.Place(start, sequencer.StepsPerMeasure, v)
	})
	if m.Preview != nil {
		m.Preview.Preview(v)
	}
	m.touch()
	debug.Log("tui", "placed %s at %d", m.symbol, start)
}

func (m *Model) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), sequencer.MaxSteps-1)
	m.Sched.Seek(m.cursor)
}

func (m *Model) touch() {
	if m.Saver != nil {
		m.Saver.Touch(m.Sched.Sequence())
	}
}

func indexOf(types []voicing.Type, t voicing.Type) int {
	for i, v := range types {
		if v == t {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Sched.State()
	seq := m.Sched.Sequence()
	start, end := m.Sched.LoopBounds()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	playState := "STOP"
	switch {
	case st.Playing && st.Step < 0:
		playState = fmt.Sprintf("COUNT %d", st.Step+sequencer.CountInBeats+1)
	case st.Playing:
		playState = "PLAY"
	case st.Paused:
		playState = "PAUSE"
	}
	loop := "all"
	if st.Repeat != nil {
		loop = st.Repeat.String()
	}
	header := headerStyle.Render(fmt.Sprintf("go-voicings  %s  %3dbpm  step:%03d  %s  %s  loop:%s",
		playState, st.Tempo, st.Step+1, m.Sched.Rhythm(), m.vtype.Label(), loop))

	cells := make([]widgets.Cell, len(seq))
	for i, v := range seq {
		cells[i] = widgets.Cell{
			Chord:    v != nil,
			Hold:     v != nil && i > 0 && seq[i-1] != nil && seq[i-1].Name == v.Name && seq[i-1].Signature() == v.Signature(),
			Playhead: st.Playing && i == st.Step,
			Cursor:   i == m.cursor,
			Outside:  i < start || i > end,
		}
	}
	grid := widgets.RenderGrid(cells, gridRow, sequencer.StepsPerMeasure, m.Theme, func(i int) lipgloss.Color {
		if len(seq[i].Positions) == 0 {
			return m.Theme.Muted()
		}
		pc, _ := theory.PitchClass(seq[i].Positions[0].Note)
		return m.Theme.ChordColor(pc)
	})

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(grid)
	out.WriteString("\n")

	if v := seq.At(m.cursor); v != nil {
		out.WriteString(fmt.Sprintf("%d: %s\n", m.cursor+1, v.Name))
		out.WriteString(widgets.RenderFretboard(v, m.Theme.Symbols))
		out.WriteString("\n")
	} else {
		out.WriteString(dimStyle.Render(fmt.Sprintf("%d: rest", m.cursor+1)))
		out.WriteString("\n")
	}

	if m.mode == modeChord {
		out.WriteString("\nchord: " + m.input + "█\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "space / s", Desc: "play-pause / stop"},
			{Key: "+ / -", Desc: "tempo"},
			{Key: "hjkl", Desc: "move cursor (seeks while paused)"},
			{Key: "enter", Desc: "enter a chord at the cursor"},
			{Key: "[ / ]", Desc: "cycle voicings"},
			{Key: "x", Desc: "clear slot"},
			{Key: "r / R", Desc: "set / clear loop"},
			{Key: "p / t / m", Desc: "rhythm / voicing type / metronome"},
			{Key: "q", Desc: "quit"},
		}},
	})))

	if m.status != "" {
		out.WriteString("\n\n")
		out.WriteString(statusStyle.Render(m.status))
	}
	return out.String()
}
