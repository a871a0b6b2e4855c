package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cantuslab/cantus/pkg/audio"
	"github.com/cantuslab/cantus/pkg/orchestrator"
	"github.com/cantuslab/cantus/pkg/plan"
)

func valueModel(r *http.Request) string {
	return r.FormValue("model")
}

// readRequest assembles an orchestrator request from a multipart form:
// "lyrics" and "notes" text fields, a "prompt" WAV upload, and optional
// space-separated per-note "durations".
func readRequest(r *http.Request) (*orchestrator.Request, error) {
	request := &orchestrator.Request{
		Lyrics:     r.FormValue("lyrics"),
		NoteTokens: r.FormValue("notes"),
	}

	if value := r.FormValue("durations"); value != "" {
		for _, field := range strings.Fields(value) {
			duration, err := strconv.ParseFloat(field, 64)

			if err != nil {
				return nil, err
			}

			request.Durations = append(request.Durations, duration)
		}
	}

	file, _, err := r.FormFile("prompt")

	if err != nil {
		return nil, err
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	samples, sampleRate, err := audio.DecodeWAV(data)

	if err != nil {
		return nil, err
	}

	request.PromptSamples = samples
	request.SampleRate = sampleRate

	return request, nil
}

func convertPlan(input *plan.Plan) Plan {
	result := Plan{
		RequestID: input.RequestID,

		Frames: make([]Frame, 0, len(input.Frames)),

		DurationSeconds: input.DurationSeconds(),
	}

	for _, frame := range input.Frames {
		item := Frame{
			Phoneme: frame.Phoneme,

			Rest:    frame.Rest,
			Sustain: frame.Sustain,

			Duration: frame.DurationSeconds,
		}

		if !frame.Rest {
			pitch := frame.Pitch
			item.Pitch = &pitch
		}

		result.Frames = append(result.Frames, item)
	}

	if len(input.Frames) > 0 && input.Frames[0].Style != nil {
		style := input.Frames[0].Style

		result.Style = &Style{
			MeanPitchHz:     style.MeanPitchHz,
			PitchVarianceHz: style.PitchVarianceHz,

			SpectralCentroidHz: style.SpectralCentroidHz,

			EnergyEnvelope: style.EnergyEnvelope,

			DurationSeconds: style.DurationSeconds,
		}
	}

	return result
}
