package lyric

import (
	"strings"
)

type Granularity string

const (
	GranularityWord     Granularity = "word"
	GranularitySyllable Granularity = "syllable"
)

// Unit is one phonation unit of the lyric text. Text is kept verbatim so
// non-Latin scripts pass through untouched.
type Unit struct {
	Text    string
	Ordinal int
}

type EmptyLyricsError struct {
}

func (e *EmptyLyricsError) Error() string {
	return "lyrics are empty"
}

type Tokenizer struct {
	Granularity Granularity
}

func NewTokenizer() Tokenizer {
	return Tokenizer{
		Granularity: GranularityWord,
	}
}

// Tokenize splits lyric text into phonation units. Word granularity splits on
// whitespace only. Syllable granularity additionally splits hyphenated words
// ("Hel-lo" becomes two units).
func (t *Tokenizer) Tokenize(text string) ([]Unit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyLyricsError{}
	}

	var units []Unit

	for _, word := range strings.Fields(text) {
		for _, part := range t.split(word) {
			units = append(units, Unit{
				Text:    part,
				Ordinal: len(units),
			})
		}
	}

	return units, nil
}

func (t *Tokenizer) split(word string) []string {
	if t.Granularity != GranularitySyllable {
		return []string{word}
	}

	var parts []string

	for _, part := range strings.Split(word, "-") {
		if part == "" {
			continue
		}

		parts = append(parts, part)
	}

	if len(parts) == 0 {
		// a word of bare hyphens stays a single unit
		return []string{word}
	}

	return parts
}
