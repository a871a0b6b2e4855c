package api

import (
	"net/http"
	"strconv"

	"github.com/cantuslab/cantus/pkg/provider"
)

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orchestrator(valueModel(r))

	if err != nil {
		writeError(w, err)
		return
	}

	request, err := readRequest(r)

	if err != nil {
		writeError(w, err)
		return
	}

	options := &provider.SynthesizeOptions{
		GuidanceScale: valueGuidanceScale(r),
	}

	synthesis, err := o.Synthesize(r.Context(), *request, options)

	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", synthesis.ContentType)
	w.Header().Set("X-Request-Id", synthesis.ID)

	w.WriteHeader(http.StatusOK)
	w.Write(synthesis.Content)
}

func valueGuidanceScale(r *http.Request) *float32 {
	if val := r.FormValue("guidance_scale"); val != "" {
		if val, err := strconv.ParseFloat(val, 32); err == nil {
			scale := float32(val)
			return &scale
		}
	}

	return nil
}
