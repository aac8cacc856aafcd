package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

func parseEnv() (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingEnvs, err)
	}

	return cfg, nil
}
