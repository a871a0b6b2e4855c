package api

// Frame mirrors plan.Frame on the wire.
type Frame struct {
	Phoneme string `json:"phoneme"`

	Pitch *int `json:"pitch,omitempty"`
	Rest  bool `json:"rest,omitempty"`

	Sustain bool `json:"sustain,omitempty"`

	Duration float64 `json:"duration"`
}

type Style struct {
	MeanPitchHz     float64 `json:"mean_pitch_hz"`
	PitchVarianceHz float64 `json:"pitch_variance_hz"`

	SpectralCentroidHz float64 `json:"spectral_centroid_hz"`

	EnergyEnvelope []float64 `json:"energy_envelope"`

	DurationSeconds float64 `json:"duration_seconds"`
}

type Plan struct {
	RequestID string `json:"request_id"`

	Frames []Frame `json:"frames"`

	Style *Style `json:"style,omitempty"`

	DurationSeconds float64 `json:"duration_seconds"`
}

type Model struct {
	ID string `json:"id"`
}
