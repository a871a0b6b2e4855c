package config

import (
	"errors"
	"time"
)

type promptConfig struct {
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`

	EnergyFloor     float64 `yaml:"energy_floor"`
	EnvelopeBuckets int     `yaml:"envelope_buckets"`

	AnalysisTimeout string `yaml:"analysis_timeout"`
}

func (cfg *Config) registerPrompt(file *configFile) error {
	if file.Prompt == nil {
		return nil
	}

	p := file.Prompt

	if p.MinDuration > 0 {
		cfg.analyzer.MinDuration = p.MinDuration
	}

	if p.MaxDuration > 0 {
		cfg.analyzer.MaxDuration = p.MaxDuration
	}

	if cfg.analyzer.MinDuration > cfg.analyzer.MaxDuration {
		return errors.New("prompt min_duration exceeds max_duration")
	}

	if p.EnergyFloor > 0 {
		cfg.analyzer.EnergyFloor = p.EnergyFloor
	}

	if p.EnvelopeBuckets > 0 {
		cfg.analyzer.EnvelopeBuckets = p.EnvelopeBuckets
	}

	if p.AnalysisTimeout != "" {
		timeout, err := time.ParseDuration(p.AnalysisTimeout)

		if err != nil {
			return err
		}

		if timeout <= 0 {
			return errors.New("prompt analysis_timeout must be positive")
		}

		cfg.analysisTimeout = timeout
	}

	return nil
}
