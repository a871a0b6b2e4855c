package api

import (
	"net/http"
)

// handlePlan builds and returns the synthesis plan without invoking the
// synthesizer, so a front end can preview the alignment.
func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
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

	result, err := o.Submit(r.Context(), *request)

	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, convertPlan(result))
}

func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	result := make([]Model, 0)

	for _, model := range h.Models() {
		result = append(result, Model{
			ID: model.ID,
		})
	}

	writeJson(w, result)
}
