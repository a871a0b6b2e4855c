package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cantuslab/cantus/pkg/lyric"
	"github.com/cantuslab/cantus/pkg/note"
	"github.com/cantuslab/cantus/pkg/orchestrator"
	"github.com/cantuslab/cantus/pkg/plan"
	"github.com/cantuslab/cantus/pkg/prompt"
)

// Error is the structured payload the front end renders. Locator fields name
// the offending input where one exists.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`

	Token      string `json:"token,omitempty"`
	TokenIndex *int   `json:"token_index,omitempty"`

	Duration *float64 `json:"duration,omitempty"`

	Notes *int `json:"notes,omitempty"`
	Units *int `json:"units,omitempty"`
}

type errorResponse struct {
	Error Error `json:"error"`
}

// writeError maps the pipeline's typed errors to a stable wire shape. Unknown
// errors stay generic.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest

	payload := Error{
		Kind:    "invalid_request",
		Message: err.Error(),
	}

	var malformed *note.MalformedNoteError
	var empty *lyric.EmptyLyricsError
	var duration *prompt.PromptDurationError
	var silent *prompt.SilentPromptError
	var mismatch *plan.AlignmentMismatchError
	var timeout *orchestrator.AnalysisTimeoutError

	switch {
	case errors.As(err, &malformed):
		payload.Kind = "malformed_note"
		payload.Token = malformed.Token
		payload.TokenIndex = &malformed.Index

	case errors.As(err, &empty):
		payload.Kind = "empty_lyrics"

	case errors.As(err, &duration):
		payload.Kind = "prompt_duration"
		payload.Duration = &duration.Duration

	case errors.As(err, &silent):
		payload.Kind = "silent_prompt"

	case errors.As(err, &mismatch):
		payload.Kind = "alignment_mismatch"
		payload.Notes = &mismatch.Notes
		payload.Units = &mismatch.Units

	case errors.As(err, &timeout):
		payload.Kind = "analysis_timeout"
		status = http.StatusGatewayTimeout
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(errorResponse{Error: payload})
}
