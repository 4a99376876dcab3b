package voicing

import (
	"fmt"
	"sort"

	"go-voicings/theory"
)

// dropSpec describes how a close-position rotation becomes a drop voicing.
// order maps voice slots (low to high) to indices of the close rotation,
// inversions lists which rotation yields each named inversion.
type dropSpec struct {
	order      [4]int
	strings    [4]int
	inversions [4]int
	span       int
}

var drops = map[Type]dropSpec{
	Drop2:   {order: [4]int{2, 0, 1, 3}, strings: [4]int{2, 3, 4, 5}, inversions: [4]int{2, 3, 0, 1}, span: 4},
	Drop3:   {order: [4]int{1, 0, 2, 3}, strings: [4]int{0, 2, 3, 4}, inversions: [4]int{3, 0, 1, 2}, span: 4},
	Drop2_4: {order: [4]int{0, 2, 1, 3}, strings: [4]int{0, 1, 2, 3}, inversions: [4]int{0, 1, 2, 3}, span: 5},
}

var inversionNames = [4]string{"Root Position", "1st Inversion", "2nd Inversion", "3rd Inversion"}
var closeNames = [4]string{"Root Pos", "1st Inv", "2nd Inv", "3rd Inv"}

// Generate enumerates playable fingerings of notes for the family t.
// strings overrides the family's default string set; pass nil for the
// default. The result is empty, never an error, when the note count does not
// fit the family, the strings are invalid, or nothing fits the span limit.
func Generate(notes []theory.Note, t Type, strings []int) []Voicing {
	if len(notes) != t.Voices() {
		return nil
	}
	for _, n := range notes {
		if _, ok := theory.PitchClass(n); !ok {
			return nil
		}
	}
	if strings != nil {
		var ok bool
		if strings, ok = normalizeStrings(strings, t.Voices()); !ok {
			return nil
		}
	}

	if !t.IsDrop() {
		return generateShell(notes, t, strings)
	}
	return generateDrop(notes, t, strings)
}

func generateDrop(notes []theory.Note, t Type, strs []int) []Voicing {
	spec := drops[t]
	if strs == nil {
		strs = spec.strings[:]
	}

	sortedRots := rotations(sortByPitch(notes))
	stackRots := rotations(notes)

	acc := newAccumulator()

	for i, r := range spec.inversions {
		target := remap(sortedRots[r], spec.order)
		acc.place(inversionNames[i], target, strs, MaxFret, spec.span)
	}
	for k, rot := range sortedRots {
		acc.place("Close "+closeNames[k], rot, strs, MaxFret, spec.span)
	}

	// stacking-order rotations only add shapes the sorted ones missed
	for i, r := range spec.inversions {
		if containsRotation(sortedRots, stackRots[r]) {
			continue
		}
		target := remap(stackRots[r], spec.order)
		acc.place(fmt.Sprintf("%s Var (%s)", t.Label(), inversionNames[i]), target, strs, MaxFret, spec.span)
	}
	for k, rot := range stackRots {
		if containsRotation(sortedRots, rot) {
			continue
		}
		acc.place("Close Var "+closeNames[k], rot, strs, MaxFret, spec.span)
	}

	return acc.result
}

// accumulator collects voicings, discarding any whose (string, fret)
// signature is already present.
type accumulator struct {
	seen   map[string]bool
	result []Voicing
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]bool)}
}

func (a *accumulator) place(name string, notes []theory.Note, strs []int, maxFret, span int) {
	positions, ok := place(notes, strs, maxFret, span)
	if !ok {
		return
	}
	v := Voicing{Name: name, Positions: positions}
	sig := v.Signature()
	if a.seen[sig] {
		return
	}
	a.seen[sig] = true
	a.result = append(a.result, v)
}

// place assigns notes[i] to strs[i] and returns the fingering with the
// lowest minimum fret among those within span.
func place(notes []theory.Note, strs []int, maxFret, span int) ([]FretPosition, bool) {
	if len(notes) != len(strs) {
		return nil, false
	}
	candidates := make([][]int, len(notes))
	for i, n := range notes {
		pc, _ := theory.PitchClass(n)
		candidates[i] = fretsFor(strs[i], pc, maxFret)
		if len(candidates[i]) == 0 {
			return nil, false
		}
	}

	var best []int
	bestMin := maxFret + 1
	combo := make([]int, len(notes))

	var walk func(depth, lo, hi int)
	walk = func(depth, lo, hi int) {
		if depth > 0 && hi-lo > span {
			return
		}
		if depth == len(candidates) {
			if lo < bestMin {
				best = append(best[:0], combo...)
				bestMin = lo
			}
			return
		}
		for _, f := range candidates[depth] {
			combo[depth] = f
			nlo, nhi := f, f
			if depth > 0 {
				nlo, nhi = min(lo, f), max(hi, f)
			}
			walk(depth+1, nlo, nhi)
		}
	}
	walk(0, maxFret+1, 0)

	if best == nil {
		return nil, false
	}
	res := make([]FretPosition, len(notes))
	for i := range notes {
		res[i] = FretPosition{String: strs[i], Fret: best[i], Note: notes[i]}
	}
	return res, true
}

// sortByPitch orders notes by ascending distance above the first note, so
// extensions stacked above the seventh by letter name (a #11 say) fall into
// their compact close-position slot.
func sortByPitch(notes []theory.Note) []theory.Note {
	res := append([]theory.Note(nil), notes...)
	base, _ := theory.PitchClass(notes[0])
	rel := func(n theory.Note) int {
		pc, _ := theory.PitchClass(n)
		return ((pc-base)%12 + 12) % 12
	}
	sort.SliceStable(res, func(i, j int) bool {
		return rel(res[i]) < rel(res[j])
	})
	return res
}

func rotations(notes []theory.Note) [][]theory.Note {
	res := make([][]theory.Note, len(notes))
	for k := range notes {
		rot := make([]theory.Note, 0, len(notes))
		rot = append(rot, notes[k:]...)
		rot = append(rot, notes[:k]...)
		res[k] = rot
	}
	return res
}

func remap(rot []theory.Note, order [4]int) []theory.Note {
	res := make([]theory.Note, len(order))
	for i, idx := range order {
		res[i] = rot[idx]
	}
	return res
}

func containsRotation(set [][]theory.Note, rot []theory.Note) bool {
	for _, s := range set {
		if equalNotes(s, rot) {
			return true
		}
	}
	return false
}

func equalNotes(a, b []theory.Note) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalizeStrings validates a caller string set and sorts it ascending.
func normalizeStrings(strs []int, voices int) ([]int, bool) {
	if len(strs) != voices {
		return nil, false
	}
	res := append([]int(nil), strs...)
	sort.Ints(res)
	for i, s := range res {
		if s < 0 || s >= NumStrings {
			return nil, false
		}
		if i > 0 && res[i-1] == s {
			return nil, false
		}
	}
	return res, true
}
