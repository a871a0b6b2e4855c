package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cantuslab/cantus/server/api"
)

type ModelService struct {
	Options []RequestOption
}

func NewModelService(opts ...RequestOption) ModelService {
	return ModelService{
		Options: opts,
	}
}

type Model = api.Model

func (s *ModelService) List(ctx context.Context, opts ...RequestOption) ([]Model, error) {
	cfg := newRequestConfig(append(s.Options, opts...)...)

	url := strings.TrimRight(cfg.URL, "/") + "/v1/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := cfg.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result []Model

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}
