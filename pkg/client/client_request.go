package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cantuslab/cantus/server/api"
)

// SynthesisRequest carries the demo's three inputs: lyric text, a note token
// string, and a WAV prompt payload.
type SynthesisRequest struct {
	Model string

	Lyrics string
	Notes  string

	Prompt     []byte
	PromptName string

	Durations []float64

	GuidanceScale *float32
}

func (r *SynthesisRequest) encode() (*bytes.Buffer, string, error) {
	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	if r.Model != "" {
		writer.WriteField("model", r.Model)
	}

	writer.WriteField("lyrics", r.Lyrics)
	writer.WriteField("notes", r.Notes)

	if len(r.Durations) > 0 {
		fields := make([]string, 0, len(r.Durations))

		for _, duration := range r.Durations {
			fields = append(fields, strconv.FormatFloat(duration, 'f', -1, 64))
		}

		writer.WriteField("durations", strings.Join(fields, " "))
	}

	if r.GuidanceScale != nil {
		writer.WriteField("guidance_scale", strconv.FormatFloat(float64(*r.GuidanceScale), 'f', -1, 32))
	}

	name := r.PromptName

	if name == "" {
		name = "prompt.wav"
	}

	file, err := writer.CreateFormFile("prompt", name)

	if err != nil {
		return nil, "", err
	}

	if _, err := file.Write(r.Prompt); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &body, writer.FormDataContentType(), nil
}

func post(ctx context.Context, cfg *RequestConfig, path string, input SynthesisRequest) (*http.Response, error) {
	body, contentType, err := input.encode()

	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(cfg.URL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)

	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := cfg.Client.Do(req)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		return nil, decodeError(resp)
	}

	return resp, nil
}

// Error is the server's structured failure payload.
type Error struct {
	StatusCode int

	Detail api.Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Detail.Kind, e.Detail.Message)
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error api.Error `json:"error"`
	}

	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Kind == "" {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return &Error{
		StatusCode: resp.StatusCode,

		Detail: payload.Error,
	}
}
