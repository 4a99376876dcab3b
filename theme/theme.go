package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Sequence grid (no cursor)
	StepRest     rune // · empty slot
	StepChord    rune // ● chord starts here
	StepHold     rune // ─ chord continues from the previous slot
	StepPlayhead rune // ▶ currently sounding
	StepOutside  rune // - outside the loop range

	// Sequence grid (with cursor)
	CursorRest     rune // ○ cursor on empty
	CursorChord    rune // ◉ cursor on chord
	CursorPlayhead rune // ▷ cursor on playhead

	// Fretboard diagram
	Fret   rune // ┼
	String rune // │
	Dot    rune // ●
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepRest:     '·',
			StepChord:    '●',
			StepHold:     '─',
			StepPlayhead: '▶',
			StepOutside:  '-',

			CursorRest:     '○',
			CursorChord:    '◉',
			CursorPlayhead: '▷',

			Fret:   '┼',
			String: '│',
			Dot:    '●',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// ChordColor spreads chord roots over the palette by pitch class so a
// change of chord is visible in the grid.
func (t *Theme) ChordColor(pitchClass int) lipgloss.Color {
	pc := ((pitchClass % 12) + 12) % 12
	return t.Color(0.3 + 0.7*float64(pc)/11)
}
