package voicing

import (
	"go-voicings/theory"
)

const shellSpan = 4

// shellShape assigns [root, 3rd, 7th] to three strings. order lists which
// chord tone sits on each string, low to high.
type shellShape struct {
	name    string
	order   [3]int
	strings [3]int
}

var shellShapes = []shellShape{
	{name: "Shell 6th String R-7-3", order: [3]int{0, 2, 1}, strings: [3]int{0, 2, 3}},
	{name: "Shell 6th String R-3-7", order: [3]int{0, 1, 2}, strings: [3]int{0, 1, 2}},
	{name: "Shell 5th String R-3-7", order: [3]int{0, 1, 2}, strings: [3]int{1, 2, 3}},
	{name: "Shell 5th String R-7-3", order: [3]int{0, 2, 1}, strings: [3]int{1, 2, 3}},
}

// Freddie Green comping keeps to the bottom strings.
var freddieShapes = []shellShape{
	{name: "Freddie Green 6th String R-7-3", order: [3]int{0, 2, 1}, strings: [3]int{0, 2, 3}},
	{name: "Freddie Green 6th String R-3-7", order: [3]int{0, 1, 2}, strings: [3]int{0, 1, 2}},
	{name: "Freddie Green 5th String R-7-3", order: [3]int{0, 2, 1}, strings: [3]int{1, 2, 3}},
}

func shapesFor(t Type, strs []int) []shellShape {
	if strs != nil {
		var set [3]int
		copy(set[:], strs)
		return []shellShape{
			{name: t.Label() + " R-3-7", order: [3]int{0, 1, 2}, strings: set},
			{name: t.Label() + " R-7-3", order: [3]int{0, 2, 1}, strings: set},
		}
	}
	if t == FreddieGreen {
		return freddieShapes
	}
	return shellShapes
}

// generateShell tries each catalog shape on [root, 3rd, 7th].
func generateShell(notes []theory.Note, t Type, strs []int) []Voicing {
	acc := newAccumulator()
	for _, shape := range shapesFor(t, strs) {
		target := make([]theory.Note, 3)
		for i, idx := range shape.order {
			target[i] = notes[idx]
		}
		acc.place(shape.name, target, shape.strings[:], MaxShellFret, shellSpan)
	}
	return acc.result
}
