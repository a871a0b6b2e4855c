package config

import (
	"errors"
	"strings"

	"github.com/cantuslab/cantus/pkg/limiter"
	"github.com/cantuslab/cantus/pkg/otel"
	"github.com/cantuslab/cantus/pkg/provider"
	"github.com/cantuslab/cantus/pkg/provider/placeholder"
)

type providerConfig struct {
	Type string `yaml:"type"`

	Limit *int `yaml:"limit"`

	Models map[string]modelConfig `yaml:"models"`
}

type modelConfig struct {
	SampleRate int `yaml:"sample_rate"`

	NormalizeDB *float64 `yaml:"normalize_db"`
}

func (cfg *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	cfg.RegisterModel(id)

	if cfg.synthesizer == nil {
		cfg.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := cfg.synthesizer[""]; !ok {
		cfg.synthesizer[""] = p
	}

	cfg.synthesizer[id] = p
}

func (cfg *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if cfg.synthesizer != nil {
		if s, ok := cfg.synthesizer[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (cfg *Config) registerProviders(file *configFile) error {
	for _, p := range file.Providers {
		for id, model := range p.Models {
			synthesizer, err := createSynthesizer(p, id, model)

			if err != nil {
				return err
			}

			if limit := createLimiter(p.Limit); limit != nil {
				synthesizer = limiter.NewSynthesizer(limit, synthesizer)
			}

			cfg.RegisterSynthesizer(id, otel.NewSynthesizer(p.Type, id, synthesizer))
		}
	}

	return nil
}

func createSynthesizer(cfg providerConfig, id string, model modelConfig) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "placeholder":
		return placeholderSynthesizer(id, model)

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}

func placeholderSynthesizer(id string, model modelConfig) (provider.Synthesizer, error) {
	var options []placeholder.Option

	if model.SampleRate > 0 {
		options = append(options, placeholder.WithSampleRate(model.SampleRate))
	}

	if model.NormalizeDB != nil {
		options = append(options, placeholder.WithNormalizeDB(*model.NormalizeDB))
	}

	return placeholder.NewSynthesizer(id, options...)
}
