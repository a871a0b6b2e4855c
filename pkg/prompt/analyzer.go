package prompt

import (
	"context"
	"fmt"
	"math"
)

// StyleDescriptor is a bounded-size summary of a reference voice, used to
// condition synthesis. EnergyEnvelope always has a fixed number of buckets
// regardless of prompt length.
type StyleDescriptor struct {
	MeanPitchHz     float64
	PitchVarianceHz float64

	SpectralCentroidHz float64

	EnergyEnvelope []float64

	DurationSeconds float64
}

type PromptDurationError struct {
	Duration float64

	Min float64
	Max float64
}

func (e *PromptDurationError) Error() string {
	return fmt.Sprintf("prompt duration %.2fs outside [%.0fs,%.0fs]", e.Duration, e.Min, e.Max)
}

type SilentPromptError struct {
	Energy float64
	Floor  float64
}

func (e *SilentPromptError) Error() string {
	return fmt.Sprintf("prompt energy %.6f below floor %.6f", e.Energy, e.Floor)
}

type Analyzer struct {
	MinDuration float64
	MaxDuration float64

	EnergyFloor     float64
	EnvelopeBuckets int

	// FrameSize is the analysis window in samples at 48kHz, scaled for other
	// rates.
	FrameSize int

	PitchMinHz float64
	PitchMaxHz float64
}

func NewAnalyzer() Analyzer {
	return Analyzer{
		MinDuration: 3,
		MaxDuration: 10,

		EnergyFloor:     1e-4,
		EnvelopeBuckets: 32,

		FrameSize: 2048,

		PitchMinHz: 60,
		PitchMaxHz: 1000,
	}
}

// Analyze extracts a style descriptor from decoded mono PCM samples. It never
// truncates: prompts outside the duration window are rejected so the caller
// can make the cut explicitly.
func (a *Analyzer) Analyze(ctx context.Context, samples []float64, sampleRate int) (*StyleDescriptor, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	duration := float64(len(samples)) / float64(sampleRate)

	if duration < a.MinDuration || duration > a.MaxDuration {
		return nil, &PromptDurationError{
			Duration: duration,

			Min: a.MinDuration,
			Max: a.MaxDuration,
		}
	}

	energy := rms(samples)

	if energy < a.EnergyFloor {
		return nil, &SilentPromptError{
			Energy: energy,
			Floor:  a.EnergyFloor,
		}
	}

	envelope := a.energyEnvelope(samples)

	mean, variance, err := a.estimatePitch(ctx, samples, sampleRate)

	if err != nil {
		return nil, err
	}

	centroid, err := a.spectralCentroid(ctx, samples, sampleRate)

	if err != nil {
		return nil, err
	}

	return &StyleDescriptor{
		MeanPitchHz:     mean,
		PitchVarianceHz: variance,

		SpectralCentroidHz: centroid,

		EnergyEnvelope: envelope,

		DurationSeconds: duration,
	}, nil
}

func (a *Analyzer) frameSize(sampleRate int) int {
	size := a.FrameSize * sampleRate / 48000

	if size < 256 {
		size = 256
	}

	return size
}

// energyEnvelope downsamples the signal to a fixed number of RMS buckets.
func (a *Analyzer) energyEnvelope(samples []float64) []float64 {
	buckets := a.EnvelopeBuckets

	if buckets <= 0 {
		buckets = 32
	}

	envelope := make([]float64, buckets)

	for i := 0; i < buckets; i++ {
		lo := i * len(samples) / buckets
		hi := (i + 1) * len(samples) / buckets

		if hi > lo {
			envelope[i] = rms(samples[lo:hi])
		}
	}

	return envelope
}

// estimatePitch runs an autocorrelation pitch tracker over voiced frames and
// returns the mean and variance of the per-frame estimates in Hz.
func (a *Analyzer) estimatePitch(ctx context.Context, samples []float64, sampleRate int) (float64, float64, error) {
	size := a.frameSize(sampleRate)
	hop := size / 2

	minLag := sampleRate / int(a.PitchMaxHz)
	maxLag := sampleRate / int(a.PitchMinHz)

	if maxLag >= size {
		maxLag = size - 1
	}

	var estimates []float64

	for start := 0; start+size <= len(samples); start += hop {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		frame := samples[start : start+size]

		// unvoiced frames would only add octave noise
		if rms(frame) < a.EnergyFloor {
			continue
		}

		if hz := pitchAutocorrelation(frame, sampleRate, minLag, maxLag); hz > 0 {
			estimates = append(estimates, hz)
		}
	}

	if len(estimates) == 0 {
		return 0, 0, nil
	}

	var sum float64

	for _, hz := range estimates {
		sum += hz
	}

	mean := sum / float64(len(estimates))

	var variance float64

	for _, hz := range estimates {
		variance += (hz - mean) * (hz - mean)
	}

	variance /= float64(len(estimates))

	return mean, variance, nil
}

// pitchAutocorrelation returns the fundamental estimate for one frame, or 0
// when no clear periodicity is found.
func pitchAutocorrelation(frame []float64, sampleRate, minLag, maxLag int) float64 {
	var zero float64

	for _, s := range frame {
		zero += s * s
	}

	if zero == 0 {
		return 0
	}

	bestLag := 0
	bestValue := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		var value float64

		for i := 0; i+lag < len(frame); i++ {
			value += frame[i] * frame[i+lag]
		}

		value /= zero

		if value > bestValue {
			bestValue = value
			bestLag = lag
		}
	}

	// periodicity threshold keeps noise frames out of the track
	if bestLag == 0 || bestValue < 0.3 {
		return 0
	}

	return float64(sampleRate) / float64(bestLag)
}

// spectralCentroid computes a coarse magnitude-weighted mean frequency over a
// few frames spread across the prompt.
func (a *Analyzer) spectralCentroid(ctx context.Context, samples []float64, sampleRate int) (float64, error) {
	size := a.frameSize(sampleRate)

	if size > len(samples) {
		size = len(samples)
	}

	const frames = 8
	const bins = 128

	var weighted, total float64

	for f := 0; f < frames; f++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		start := f * (len(samples) - size) / frames
		frame := samples[start : start+size]

		for bin := 1; bin <= bins; bin++ {
			hz := float64(bin) * float64(sampleRate) / 2 / float64(bins)

			magnitude := goertzel(frame, hz, sampleRate)

			weighted += magnitude * hz
			total += magnitude
		}
	}

	if total == 0 {
		return 0, nil
	}

	return weighted / total, nil
}

// goertzel evaluates the magnitude of a single frequency component.
func goertzel(frame []float64, hz float64, sampleRate int) float64 {
	omega := 2 * math.Pi * hz / float64(sampleRate)
	coeff := 2 * math.Cos(omega)

	var s0, s1, s2 float64

	for _, sample := range frame {
		s0 = sample + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	power := s1*s1 + s2*s2 - coeff*s1*s2

	if power < 0 {
		power = 0
	}

	return math.Sqrt(power) / float64(len(frame))
}

func rms(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64

	for _, s := range samples {
		sum += s * s
	}

	return math.Sqrt(sum / float64(len(samples)))
}
