package plan

import (
	"fmt"

	"github.com/cantuslab/cantus/pkg/lyric"
	"github.com/cantuslab/cantus/pkg/note"
	"github.com/cantuslab/cantus/pkg/prompt"
)

type AlignmentMismatchError struct {
	Notes int
	Units int
}

func (e *AlignmentMismatchError) Error() string {
	return fmt.Sprintf("%d sung notes but only %d lyric units", e.Notes, e.Units)
}

type Planner struct {
	// BaseDuration is the per-note duration when no explicit durations are
	// supplied.
	BaseDuration float64
}

func NewPlanner() Planner {
	return Planner{
		BaseDuration: 0.4,
	}
}

// Plan aligns notes and lyric units into a frame sequence. Rests emit silence
// frames and consume no lyric unit. A non-rest note with no unit left sustains
// the prior unit when it repeats the previous note's pitch; otherwise the
// inputs are mismatched.
func (p *Planner) Plan(notes []note.Event, units []lyric.Unit, style *prompt.StyleDescriptor) (*Plan, error) {
	return p.PlanWithDurations(notes, units, style, nil)
}

// PlanWithDurations is Plan with one explicit duration per note event.
func (p *Planner) PlanWithDurations(notes []note.Event, units []lyric.Unit, style *prompt.StyleDescriptor, durations []float64) (*Plan, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("empty note sequence")
	}

	if durations != nil && len(durations) != len(notes) {
		return nil, fmt.Errorf("%d durations for %d notes", len(durations), len(notes))
	}

	sung := 0

	for _, event := range notes {
		if !event.Rest {
			sung++
		}
	}

	frames := make([]Frame, 0, len(notes))

	next := 0
	prev := -1 // pitch of the immediately preceding event, -1 after rests

	for i, event := range notes {
		duration := p.BaseDuration

		if durations != nil {
			duration = durations[i]
		}

		if duration <= 0 {
			return nil, fmt.Errorf("duration for note %d is not positive", i)
		}

		if event.Rest {
			frames = append(frames, Frame{
				Phoneme: PhonemeSilence,
				Rest:    true,

				DurationSeconds: duration,

				Style: style,
			})

			prev = -1
			continue
		}

		sustain := false

		if next >= len(units) {
			if event.Pitch != prev {
				return nil, &AlignmentMismatchError{
					Notes: sung,
					Units: len(units),
				}
			}

			sustain = true
		}

		text := ""

		if sustain {
			text = units[next-1].Text
		} else {
			text = units[next].Text
			next++
		}

		frames = append(frames, Frame{
			Phoneme: text,

			Pitch:   event.Pitch,
			Sustain: sustain,

			DurationSeconds: duration,

			Style: style,
		})

		prev = event.Pitch
	}

	return &Plan{
		Frames: frames,
	}, nil
}
