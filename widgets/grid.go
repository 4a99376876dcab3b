package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-voicings/theme"
	"go-voicings/voicing"
)

// Cell describes one slot of the sequence grid.
type Cell struct {
	Chord    bool // slot holds a voicing
	Hold     bool // same voicing as the slot before
	Playhead bool
	Cursor   bool
	Outside  bool // outside the active loop
}

// Glyph picks the symbol for a cell.
func Glyph(c Cell, sym theme.Symbols) rune {
	switch {
	case c.Playhead && c.Cursor:
		return sym.CursorPlayhead
	case c.Playhead:
		return sym.StepPlayhead
	case c.Cursor && c.Chord:
		return sym.CursorChord
	case c.Cursor:
		return sym.CursorRest
	case c.Chord && c.Hold:
		return sym.StepHold
	case c.Chord:
		return sym.StepChord
	case c.Outside:
		return sym.StepOutside
	default:
		return sym.StepRest
	}
}

// RenderGrid lays cells out in rows of perRow with a gap every group
// cells, prefixing each row with its first step number.
func RenderGrid(cells []Cell, perRow, group int, th *theme.Theme, color func(i int) lipgloss.Color) string {
	var out strings.Builder
	for row := 0; row*perRow < len(cells); row++ {
		out.WriteString(fmt.Sprintf("%3d ", row*perRow+1))
		for col := 0; col < perRow; col++ {
			i := row*perRow + col
			if i >= len(cells) {
				break
			}
			if col > 0 && col%group == 0 {
				out.WriteString(" ")
			}
			c := cells[i]
			style := lipgloss.NewStyle().Foreground(th.Muted())
			switch {
			case c.Playhead:
				style = style.Foreground(th.Success())
			case c.Cursor:
				style = style.Foreground(th.Cursor())
			case c.Chord && color != nil:
				style = style.Foreground(color(i))
			}
			out.WriteString(style.Render(string(Glyph(c, th.Symbols))))
		}
		out.WriteString("\n")
	}
	return out.String()
}

// fretWindow is how many frets a diagram shows.
const fretWindow = 5

// RenderFretboard draws a voicing as a horizontal neck, high E on top,
// starting at the lowest fretted position.
func RenderFretboard(v *voicing.Voicing, sym theme.Symbols) string {
	if v == nil || len(v.Positions) == 0 {
		return ""
	}
	base := v.MinFret()
	width := max(fretWindow, v.Span()+1)

	frets := map[int]voicing.FretPosition{}
	for _, p := range v.Positions {
		frets[p.String] = p
	}

	names := [voicing.NumStrings]string{"E", "A", "D", "G", "B", "e"}
	var out strings.Builder
	out.WriteString(fmt.Sprintf("    %-*d\n", width*3, base))
	for s := voicing.NumStrings - 1; s >= 0; s-- {
		out.WriteString(names[s])
		out.WriteString(" ")
		out.WriteRune(sym.String)
		p, ok := frets[s]
		for f := 0; f < width; f++ {
			if ok && p.Fret == base+f {
				out.WriteString("─")
				out.WriteRune(sym.Dot)
				out.WriteString("─")
			} else {
				out.WriteString("───")
			}
			out.WriteRune(sym.Fret)
		}
		if ok {
			out.WriteString(" " + string(p.Note))
		} else {
			out.WriteString(" x")
		}
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n")
}
