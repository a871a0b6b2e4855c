package config

import (
	"errors"
	"strings"

	"github.com/cantuslab/cantus/pkg/auth"
	"github.com/cantuslab/cantus/pkg/auth/static"
)

type authorizerConfig struct {
	Type string `yaml:"type"`

	Token string `yaml:"token"`
}

func (cfg *Config) registerAuthorizer(file *configFile) error {
	for _, a := range file.Authorizers {
		authorizer, err := createAuthorizer(a)

		if err != nil {
			return err
		}

		cfg.Authorizers = append(cfg.Authorizers, authorizer)
	}

	return nil
}

func createAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "static":
		return static.New(cfg.Token)

	default:
		return nil, errors.New("invalid authorizer type: " + cfg.Type)
	}
}
