package sequencer

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-voicings/theory"
	"go-voicings/voicing"
)

// ErrInvalidSequence wraps every reason a persisted sequence is rejected.
var ErrInvalidSequence = errors.New("invalid sequence")

const maxPersistedFret = 24

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSequence, fmt.Sprintf(format, args...))
}

// Validate checks raw JSON against the persisted shape, an array whose
// entries are null or {name, positions:[{string, fret, note}]}, and returns
// the decoded sequence padded to MaxSteps.
func Validate(raw []byte) (Sequence, error) {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, invalid("%v", err)
	}
	items, ok := root.([]any)
	if !ok {
		return nil, invalid("expected an array")
	}
	if len(items) > MaxSteps {
		return nil, invalid("%d slots, at most %d allowed", len(items), MaxSteps)
	}

	seq := NewSequence()
	for i, item := range items {
		if item == nil {
			continue
		}
		v, err := validateSlot(item)
		if err != nil {
			return nil, invalid("slot %d: %v", i, err)
		}
		seq[i] = v
	}
	return seq, nil
}

func validateSlot(item any) (*voicing.Voicing, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return nil, errors.New("expected an object or null")
	}
	name, ok := obj["name"].(string)
	if !ok {
		return nil, errors.New("name must be a string")
	}
	raw, ok := obj["positions"].([]any)
	if !ok {
		return nil, errors.New("positions must be an array")
	}
	if len(raw) == 0 {
		return nil, errors.New("positions must not be empty")
	}

	v := &voicing.Voicing{Name: name, Positions: make([]voicing.FretPosition, 0, len(raw))}
	for j, p := range raw {
		pos, err := validatePosition(p)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", j, err)
		}
		v.Positions = append(v.Positions, pos)
	}
	if im, ok := obj["intervals"].(map[string]any); ok {
		v.Intervals = make(map[theory.Note]string, len(im))
		for k, l := range im {
			if label, ok := l.(string); ok {
				v.Intervals[theory.Note(k)] = label
			}
		}
	}
	return v, nil
}

func validatePosition(p any) (voicing.FretPosition, error) {
	var pos voicing.FretPosition
	obj, ok := p.(map[string]any)
	if !ok {
		return pos, errors.New("expected an object")
	}
	str, ok := wholeNumber(obj["string"])
	if !ok || str < 0 || str >= voicing.NumStrings {
		return pos, errors.New("string must be an integer 0-5")
	}
	fret, ok := wholeNumber(obj["fret"])
	if !ok || fret < 0 || fret > maxPersistedFret {
		return pos, fmt.Errorf("fret must be an integer 0-%d", maxPersistedFret)
	}
	note, ok := obj["note"].(string)
	if !ok {
		return pos, errors.New("note must be a string")
	}
	return voicing.FretPosition{String: str, Fret: fret, Note: theory.Note(note)}, nil
}

func wholeNumber(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
