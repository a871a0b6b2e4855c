// Package placeholder renders synthesis plans without a generative model: each
// frame becomes a plain tone at the frame pitch, shaped by the prompt's energy
// envelope. It keeps the demo runnable end to end until a real model provider
// is plugged in.
package placeholder

import (
	"context"
	"math"

	"github.com/cantuslab/cantus/pkg/audio"
	"github.com/cantuslab/cantus/pkg/plan"
	"github.com/cantuslab/cantus/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
}

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		model: model,

		sampleRate:  48000,
		normalizeDB: -20,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, input *plan.Plan, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	rate := s.sampleRate

	if options.SampleRate > 0 {
		rate = options.SampleRate
	}

	samples := s.render(input, rate)

	data, err := audio.EncodeWAV(audio.Normalize(samples, s.normalizeDB), rate)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: "audio/wav",
	}, nil
}

func (s *Synthesizer) render(input *plan.Plan, rate int) []float64 {
	total := int(input.DurationSeconds() * float64(rate))
	samples := make([]float64, 0, total)

	phase := 0.0

	for _, frame := range input.Frames {
		count := int(frame.DurationSeconds * float64(rate))

		if frame.Rest {
			samples = append(samples, make([]float64, count)...)
			phase = 0
			continue
		}

		hz := pitchHz(frame.Pitch)
		gain := frameGain(frame, input, len(samples), total)

		for i := 0; i < count; i++ {
			// short attack/release ramps avoid clicks at frame edges
			env := edgeRamp(i, count, rate)

			samples = append(samples, gain*env*math.Sin(phase))
			phase += 2 * math.Pi * hz / float64(rate)
		}

		phase = math.Mod(phase, 2*math.Pi)
	}

	return samples
}

// frameGain looks up the prompt energy envelope at the frame's relative
// position, so the rendered tone follows the prompt's dynamics.
func frameGain(frame plan.Frame, input *plan.Plan, position, total int) float64 {
	gain := 0.5

	if frame.Style == nil || len(frame.Style.EnergyEnvelope) == 0 || total == 0 {
		return gain
	}

	envelope := frame.Style.EnergyEnvelope
	bucket := position * len(envelope) / total

	if bucket >= len(envelope) {
		bucket = len(envelope) - 1
	}

	peak := 0.0

	for _, value := range envelope {
		if value > peak {
			peak = value
		}
	}

	if peak == 0 {
		return gain
	}

	return gain * (0.25 + 0.75*envelope[bucket]/peak)
}

func edgeRamp(i, count, rate int) float64 {
	ramp := rate / 100 // 10ms

	if ramp*2 > count {
		ramp = count / 2
	}

	if ramp == 0 {
		return 1
	}

	switch {
	case i < ramp:
		return float64(i) / float64(ramp)

	case i >= count-ramp:
		return float64(count-i) / float64(ramp)
	}

	return 1
}

func pitchHz(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}
