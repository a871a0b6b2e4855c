package placeholder

import (
	"context"
	"math"
	"testing"

	"github.com/cantuslab/cantus/pkg/audio"
	"github.com/cantuslab/cantus/pkg/plan"
	"github.com/cantuslab/cantus/pkg/prompt"
)

func testPlan() *plan.Plan {
	style := &prompt.StyleDescriptor{
		EnergyEnvelope: []float64{1, 1, 0.5, 0.5},
	}

	return &plan.Plan{
		RequestID: "req-1",

		Frames: []plan.Frame{
			{Phoneme: "la", Pitch: 69, DurationSeconds: 0.4, Style: style},
			{Phoneme: plan.PhonemeSilence, Rest: true, DurationSeconds: 0.2, Style: style},
			{Phoneme: "li", Pitch: 72, DurationSeconds: 0.4, Style: style},
		},
	}
}

func TestSynthesize(t *testing.T) {
	synthesizer, err := NewSynthesizer("placeholder", WithSampleRate(8000))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := synthesizer.Synthesize(context.Background(), testPlan(), nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ContentType != "audio/wav" {
		t.Fatalf("expected wav output, got %s", result.ContentType)
	}

	samples, rate, err := audio.DecodeWAV(result.Content)

	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if rate != 8000 {
		t.Fatalf("expected 8000Hz, got %d", rate)
	}

	expected := int(1.0 * 8000)

	if math.Abs(float64(len(samples)-expected)) > 10 {
		t.Fatalf("expected about %d samples, got %d", expected, len(samples))
	}

	// the rest frame must be silent, the tones must not be
	var toneEnergy, restEnergy float64

	for i, s := range samples {
		switch {
		case i < 3200:
			toneEnergy += s * s

		case i < 4800:
			restEnergy += s * s
		}
	}

	if toneEnergy == 0 {
		t.Error("tone frame is silent")
	}

	if restEnergy > 1e-9 {
		t.Errorf("rest frame carries energy %f", restEnergy)
	}
}
