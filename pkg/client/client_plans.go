package client

import (
	"context"
	"encoding/json"

	"github.com/cantuslab/cantus/server/api"
)

type PlanService struct {
	Options []RequestOption
}

func NewPlanService(opts ...RequestOption) PlanService {
	return PlanService{
		Options: opts,
	}
}

type Plan = api.Plan

func (s *PlanService) New(ctx context.Context, input SynthesisRequest, opts ...RequestOption) (*Plan, error) {
	cfg := newRequestConfig(append(s.Options, opts...)...)

	resp, err := post(ctx, cfg, "/v1/plan", input)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Plan

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
