package client

import (
	"context"
	"io"
)

type SynthesisService struct {
	Options []RequestOption
}

func NewSynthesisService(opts ...RequestOption) SynthesisService {
	return SynthesisService{
		Options: opts,
	}
}

type Synthesis struct {
	ID string

	Content     []byte
	ContentType string
}

func (s *SynthesisService) New(ctx context.Context, input SynthesisRequest, opts ...RequestOption) (*Synthesis, error) {
	cfg := newRequestConfig(append(s.Options, opts...)...)

	resp, err := post(ctx, cfg, "/v1/synthesize", input)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &Synthesis{
		ID: resp.Header.Get("X-Request-Id"),

		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
