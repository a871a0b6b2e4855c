package plan

import (
	"github.com/cantuslab/cantus/pkg/prompt"
)

// PhonemeSilence marks frames produced by rests.
const PhonemeSilence = "sil"

// Frame is one synthesis step: what to sing, at which pitch, for how long.
// Frames are immutable once emitted by the planner.
type Frame struct {
	Phoneme string

	Pitch int
	Rest  bool

	// Sustain marks frames that reuse the previous frame's phonation unit.
	Sustain bool

	DurationSeconds float64

	Style *prompt.StyleDescriptor
}

// Plan is the ordered frame sequence handed to a synthesizer provider.
// RequestID back-references the originating request for logging and
// cancellation correlation only.
type Plan struct {
	RequestID string

	Frames []Frame
}

// DurationSeconds is the total content duration of the plan.
func (p *Plan) DurationSeconds() float64 {
	var total float64

	for _, frame := range p.Frames {
		total += frame.DurationSeconds
	}

	return total
}
