package prompt

import (
	"context"
	"errors"
	"math"
	"testing"
)

const testRate = 8000

func sine(hz float64, seconds float64) []float64 {
	samples := make([]float64, int(seconds*testRate))

	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*hz*float64(i)/testRate)
	}

	return samples
}

func TestAnalyzeDuration(t *testing.T) {
	analyzer := NewAnalyzer()

	for _, seconds := range []float64{2, 11} {
		_, err := analyzer.Analyze(context.Background(), sine(220, seconds), testRate)

		var duration *PromptDurationError

		if !errors.As(err, &duration) {
			t.Fatalf("%gs: expected PromptDurationError, got %v", seconds, err)
		}

		if math.Abs(duration.Duration-seconds) > 0.01 {
			t.Errorf("%gs: error reports duration %.2f", seconds, duration.Duration)
		}
	}
}

func TestAnalyzeSilent(t *testing.T) {
	analyzer := NewAnalyzer()

	_, err := analyzer.Analyze(context.Background(), make([]float64, 5*testRate), testRate)

	var silent *SilentPromptError

	if !errors.As(err, &silent) {
		t.Fatalf("expected SilentPromptError, got %v", err)
	}
}

func TestAnalyzePitch(t *testing.T) {
	analyzer := NewAnalyzer()

	style, err := analyzer.Analyze(context.Background(), sine(220, 5), testRate)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if style.MeanPitchHz < 200 || style.MeanPitchHz > 240 {
		t.Errorf("expected mean pitch near 220Hz, got %.1f", style.MeanPitchHz)
	}

	if style.PitchVarianceHz > 100 {
		t.Errorf("expected stable pitch track, got variance %.1f", style.PitchVarianceHz)
	}

	if style.SpectralCentroidHz <= 0 || style.SpectralCentroidHz > 2000 {
		t.Errorf("unexpected centroid %.1f", style.SpectralCentroidHz)
	}

	if style.DurationSeconds < 4.99 || style.DurationSeconds > 5.01 {
		t.Errorf("unexpected duration %.2f", style.DurationSeconds)
	}
}

func TestAnalyzeEnvelope(t *testing.T) {
	analyzer := NewAnalyzer()

	// loud first half, quiet second half
	samples := sine(220, 6)

	for i := len(samples) / 2; i < len(samples); i++ {
		samples[i] *= 0.1
	}

	style, err := analyzer.Analyze(context.Background(), samples, testRate)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(style.EnergyEnvelope) != 32 {
		t.Fatalf("expected 32 buckets, got %d", len(style.EnergyEnvelope))
	}

	if style.EnergyEnvelope[0] <= style.EnergyEnvelope[31] {
		t.Errorf("expected decaying envelope, got %v", style.EnergyEnvelope)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	analyzer := NewAnalyzer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, sine(220, 5), testRate)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
