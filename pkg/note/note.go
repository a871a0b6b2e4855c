package note

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MidiMin = 0
	MidiMax = 127
)

// Event is a single entry in a parsed note sequence. Ordinal is the index of
// the token that produced it. Rest events carry no pitch.
type Event struct {
	Pitch   int
	Ordinal int

	Rest bool
}

type MalformedNoteError struct {
	Token string
	Index int

	Reason string
}

func (e *MalformedNoteError) Error() string {
	return fmt.Sprintf("malformed note %q at index %d: %s", e.Token, e.Index, e.Reason)
}

var noteOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Parse converts a token stream into an event sequence. Each token is a note
// name (C4, D#5, Bb3), a MIDI number (0-127), or the literal "rest".
func Parse(tokens []string) ([]Event, error) {
	if len(tokens) == 0 {
		return nil, &MalformedNoteError{Index: 0, Reason: "empty note sequence"}
	}

	events := make([]Event, 0, len(tokens))

	for i, token := range tokens {
		event, err := parseToken(token, i)

		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}

// ParseString splits a raw note string on whitespace and parses it.
func ParseString(text string) ([]Event, error) {
	return Parse(strings.Fields(text))
}

func parseToken(token string, index int) (Event, error) {
	if strings.EqualFold(token, "rest") {
		return Event{Ordinal: index, Rest: true}, nil
	}

	if pitch, err := strconv.Atoi(token); err == nil {
		if pitch < MidiMin || pitch > MidiMax {
			return Event{}, &MalformedNoteError{
				Token: token,
				Index: index,

				Reason: fmt.Sprintf("midi number out of range [%d,%d]", MidiMin, MidiMax),
			}
		}

		return Event{Pitch: pitch, Ordinal: index}, nil
	}

	pitch, err := parseName(token)

	if err != nil {
		return Event{}, &MalformedNoteError{
			Token: token,
			Index: index,

			Reason: err.Error(),
		}
	}

	return Event{Pitch: pitch, Ordinal: index}, nil
}

// parseName resolves a note name to its MIDI number using 12-tone equal
// temperament. C4 is middle C (60).
func parseName(name string) (int, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("note name too short")
	}

	offset, ok := noteOffsets[name[0]]

	if !ok {
		return 0, fmt.Errorf("unknown note letter %q", string(name[0]))
	}

	rest := name[1:]

	switch {
	case strings.HasPrefix(rest, "#"):
		offset++
		rest = rest[1:]

	case strings.HasPrefix(rest, "b"):
		offset--
		rest = rest[1:]
	}

	// octaves span -1 to 9, so C-1 is MIDI 0 and G9 is 127
	octave, err := strconv.Atoi(rest)

	if err != nil {
		return 0, fmt.Errorf("invalid octave %q", rest)
	}

	pitch := offset + (octave+1)*12

	if pitch < MidiMin || pitch > MidiMax {
		return 0, fmt.Errorf("pitch outside midi range")
	}

	return pitch, nil
}

// Name returns the note name for a MIDI pitch (60 -> "C4").
func Name(pitch int) string {
	if pitch < MidiMin || pitch > MidiMax {
		return strconv.Itoa(pitch)
	}

	return fmt.Sprintf("%s%d", pitchNames[pitch%12], pitch/12-1)
}

// Format re-serializes an event sequence to tokens. Parse(Format(events))
// yields an identical sequence.
func Format(events []Event) []string {
	tokens := make([]string, 0, len(events))

	for _, event := range events {
		if event.Rest {
			tokens = append(tokens, "rest")
			continue
		}

		tokens = append(tokens, Name(event.Pitch))
	}

	return tokens
}
