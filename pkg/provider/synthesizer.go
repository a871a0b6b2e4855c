package provider

import (
	"context"

	"github.com/cantuslab/cantus/pkg/plan"
)

// Synthesizer turns a finished synthesis plan into audio. The real generative
// model plugs in here; the placeholder provider stands in for it.
type Synthesizer interface {
	Synthesize(ctx context.Context, input *plan.Plan, options *SynthesizeOptions) (*Synthesis, error)
}

type SynthesizeOptions struct {
	SampleRate int

	// GuidanceScale is forwarded to model-backed providers and ignored by the
	// placeholder.
	GuidanceScale *float32
}

type Synthesis struct {
	ID    string
	Model string

	Content     []byte
	ContentType string
}
