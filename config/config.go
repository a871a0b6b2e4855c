package config

import (
	"bytes"
	"os"
	"time"

	"github.com/cantuslab/cantus/pkg/auth"
	"github.com/cantuslab/cantus/pkg/lyric"
	"github.com/cantuslab/cantus/pkg/orchestrator"
	"github.com/cantuslab/cantus/pkg/plan"
	"github.com/cantuslab/cantus/pkg/prompt"
	"github.com/cantuslab/cantus/pkg/provider"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Config is built once at startup and immutable afterwards. One instance per
// server process.
type Config struct {
	Address string

	Authorizers []auth.Provider

	tokenizer lyric.Tokenizer
	analyzer  prompt.Analyzer
	planner   plan.Planner

	analysisTimeout time.Duration

	models      map[string]provider.Model
	synthesizer map[string]provider.Synthesizer
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",

		tokenizer: lyric.NewTokenizer(),
		analyzer:  prompt.NewAnalyzer(),
		planner:   plan.NewPlanner(),

		analysisTimeout: 10 * time.Second,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerPlanner(file); err != nil {
		return nil, err
	}

	if err := c.registerPrompt(file); err != nil {
		return nil, err
	}

	if err := c.registerProviders(file); err != nil {
		return nil, err
	}

	return c, nil
}

// Default returns a config that needs no file: placeholder synthesizer,
// stock pipeline settings.
func Default() *Config {
	c := &Config{
		Address: ":8080",

		tokenizer: lyric.NewTokenizer(),
		analyzer:  prompt.NewAnalyzer(),
		planner:   plan.NewPlanner(),

		analysisTimeout: 10 * time.Second,
	}

	if err := c.registerProviders(&configFile{
		Providers: []providerConfig{
			{
				Type: "placeholder",

				Models: map[string]modelConfig{
					"placeholder": {},
				},
			},
		},
	}); err != nil {
		panic(err)
	}

	return c
}

// Orchestrator assembles the pipeline for one synthesizer model. An empty id
// selects the default model.
func (cfg *Config) Orchestrator(model string) (*orchestrator.Orchestrator, error) {
	synthesizer, err := cfg.Synthesizer(model)

	if err != nil {
		return nil, err
	}

	return orchestrator.New(&orchestrator.Config{
		Tokenizer: &cfg.tokenizer,
		Analyzer:  &cfg.analyzer,
		Planner:   &cfg.planner,

		Synthesizer: synthesizer,

		AnalysisTimeout: cfg.analysisTimeout,
	}), nil
}

func (cfg *Config) RegisterModel(id string) {
	if cfg.models == nil {
		cfg.models = make(map[string]provider.Model)
	}

	cfg.models[id] = provider.Model{
		ID: id,
	}
}

func (cfg *Config) Models() []provider.Model {
	var result []provider.Model

	for _, model := range cfg.models {
		result = append(result, model)
	}

	return result
}

type configFile struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Planner *plannerConfig `yaml:"planner"`
	Prompt  *promptConfig  `yaml:"prompt"`

	Providers []providerConfig `yaml:"providers"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
