package voicing

import (
	"fmt"
	"strings"
)

// Type is a voicing family.
type Type int

const (
	Drop2 Type = iota
	Drop3
	Drop2_4
	Shell
	FreddieGreen
)

var AllTypes = []Type{Drop2, Drop3, Drop2_4, Shell, FreddieGreen}

var typeNames = map[Type]string{
	Drop2:        "Drop2",
	Drop3:        "Drop3",
	Drop2_4:      "Drop2_4",
	Shell:        "Shell",
	FreddieGreen: "FreddieGreen",
}

var typeLabels = map[Type]string{
	Drop2:        "Drop 2",
	Drop3:        "Drop 3",
	Drop2_4:      "Drop 2&4",
	Shell:        "Shell",
	FreddieGreen: "Freddie Green",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Label is the human-readable family name.
func (t Type) Label() string {
	return typeLabels[t]
}

// ParseType accepts the enum names case-insensitively plus a few common
// spellings ("drop2&4", "drop24", "fg").
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "&", "_").Replace(s))
	switch key {
	case "drop2":
		return Drop2, nil
	case "drop3":
		return Drop3, nil
	case "drop2_4", "drop24":
		return Drop2_4, nil
	case "shell":
		return Shell, nil
	case "freddiegreen", "fg":
		return FreddieGreen, nil
	}
	return 0, fmt.Errorf("unknown voicing type %q", s)
}

// Voices is the note count the family requires.
func (t Type) Voices() int {
	if t == Shell || t == FreddieGreen {
		return 3
	}
	return 4
}

// IsDrop reports whether t is one of the four-voice drop families.
func (t Type) IsDrop() bool {
	_, ok := drops[t]
	return ok
}

// DefaultStrings is the string set used when the caller supplies none. Shell
// families carry their strings per shape and return nil.
func (t Type) DefaultStrings() []int {
	if d, ok := drops[t]; ok {
		return append([]int(nil), d.strings[:]...)
	}
	return nil
}

// SpanLimit is the widest fret stretch accepted for the family.
func (t Type) SpanLimit() int {
	if d, ok := drops[t]; ok {
		return d.span
	}
	return shellSpan
}

// MarshalText lets Type travel as its name in JSON.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
