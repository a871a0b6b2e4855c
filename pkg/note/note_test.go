package note

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseBasic(t *testing.T) {
	events, err := Parse([]string{"C4", "rest", "E4"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Event{
		{Pitch: 60, Ordinal: 0},
		{Ordinal: 1, Rest: true},
		{Pitch: 64, Ordinal: 2},
	}

	if !reflect.DeepEqual(events, expected) {
		t.Fatalf("expected %v, got %v", expected, events)
	}
}

func TestParseMidiNumbers(t *testing.T) {
	events, err := Parse([]string{"60", "62", "64", "65", "67", "69", "71", "72"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 8 {
		t.Fatalf("expected 8 events, got %d", len(events))
	}

	if events[0].Pitch != 60 || events[7].Pitch != 72 {
		t.Errorf("unexpected pitches: %v", events)
	}
}

func TestParseAccidentals(t *testing.T) {
	cases := map[string]int{
		"C#4": 61,
		"Db4": 61,
		"Bb3": 58,
		"A0":  21,
		"G9":  127,
	}

	for token, pitch := range cases {
		events, err := Parse([]string{token})

		if err != nil {
			t.Fatalf("%s: unexpected error: %v", token, err)
		}

		if events[0].Pitch != pitch {
			t.Errorf("%s: expected pitch %d, got %d", token, pitch, events[0].Pitch)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		tokens []string
		index  int
	}{
		{[]string{"C4", "H4"}, 1},
		{[]string{"128"}, 0},
		{[]string{"-1"}, 0},
		{[]string{"C"}, 0},
		{[]string{"C4", "D4", "Dx4"}, 2},
		{[]string{"C44"}, 0},
	}

	for _, tc := range cases {
		_, err := Parse(tc.tokens)

		var malformed *MalformedNoteError

		if !errors.As(err, &malformed) {
			t.Fatalf("%v: expected MalformedNoteError, got %v", tc.tokens, err)
		}

		if malformed.Index != tc.index {
			t.Errorf("%v: expected index %d, got %d", tc.tokens, tc.index, malformed.Index)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for empty sequence")
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]string{
		{"C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5"},
		{"60", "62", "64", "65"},
		{"rest", "C4", "E4", "G4", "rest"},
		{"Bb3", "C#4", "rest", "127", "0"},
	}

	for _, tokens := range inputs {
		first, err := Parse(tokens)

		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tokens, err)
		}

		second, err := Parse(Format(first))

		if err != nil {
			t.Fatalf("%v: re-parse failed: %v", tokens, err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("%v: round trip mismatch: %v vs %v", tokens, first, second)
		}
	}
}

func TestName(t *testing.T) {
	if Name(60) != "C4" {
		t.Errorf("expected C4, got %s", Name(60))
	}

	if Name(61) != "C#4" {
		t.Errorf("expected C#4, got %s", Name(61))
	}
}
