package config

import "errors"

var (
	ErrParsingEnvs     = errors.New("error parsing environment variables")
	ErrParsingJSONFile = errors.New("error parsing JSON configuration file")
	ErrMergingConfigs  = errors.New("error merging configuration sources")

	ErrNoDatabaseURI   = errors.New("database URI is not set")
	ErrNoTokenSignKey  = errors.New("token signing key is not set")
	ErrInvalidTTL      = errors.New("transaction lifetimes must be positive")
	ErrOddWordCount    = errors.New("word count must be a positive even number")
	ErrNoListenAddress = errors.New("HTTP listen address is not set")
)
