package config

import (
	"errors"
	"fmt"

	"github.com/cantuslab/cantus/pkg/lyric"
)

type plannerConfig struct {
	BaseDuration float64 `yaml:"base_duration"`

	LyricGranularity string `yaml:"lyric_granularity"`
}

func (cfg *Config) registerPlanner(file *configFile) error {
	if file.Planner == nil {
		return nil
	}

	if file.Planner.BaseDuration < 0 {
		return errors.New("planner base_duration must be positive")
	}

	if file.Planner.BaseDuration > 0 {
		cfg.planner.BaseDuration = file.Planner.BaseDuration
	}

	switch file.Planner.LyricGranularity {
	case "":

	case string(lyric.GranularityWord):
		cfg.tokenizer.Granularity = lyric.GranularityWord

	case string(lyric.GranularitySyllable):
		cfg.tokenizer.Granularity = lyric.GranularitySyllable

	default:
		return fmt.Errorf("invalid lyric_granularity %q", file.Planner.LyricGranularity)
	}

	return nil
}
