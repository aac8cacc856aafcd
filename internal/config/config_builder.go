package config

import (
	"errors"
	"os"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	cfg  *StructuredConfig
	errs []error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{cfg: &StructuredConfig{}}
}

// withEnv merges values from environment variables. Called first, so
// the environment has the highest priority.
func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := parseEnv()
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}

	b.merge(envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flagCfg, err := parseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}

	b.merge(flagCfg)
	return b
}

// withJSON merges the JSON file named by env or flags, if any. A missing
// path is not an error: the file is optional.
func (b *configBuilder) withJSON() *configBuilder {
	if b.cfg.JSONFilePath == "" {
		return b
	}

	jsonCfg, err := parseJSON(b.cfg.JSONFilePath)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}

	b.merge(jsonCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.merge(defaultConfig())
	return b
}

func (b *configBuilder) merge(src *StructuredConfig) {
	if err := mergo.Merge(b.cfg, src); err != nil {
		b.errs = append(b.errs, errors.Join(ErrMergingConfigs, err))
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return b.cfg, nil
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:     "password-manager",
			TokenDuration:   time.Hour,
			TOTPIssuer:      "password-manager",
			WordCount:       10,
			LoginTTL:        15 * time.Minute,
			RegistrationTTL: 30 * time.Minute,
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}
