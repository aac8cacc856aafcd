package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so JSON files can spell values like "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration value: %v", raw)
	}

	return nil
}

type jsonConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		TOTPIssuer      string   `json:"totp_issuer"`
		WordlistPath    string   `json:"wordlist_path"`
		WordCount       int      `json:"word_count"`
		LoginTTL        Duration `json:"login_ttl"`
		RegistrationTTL Duration `json:"registration_ttl"`
	} `json:"app"`
	Storage struct {
		DatabaseURI  string `json:"database_uri"`
		RedisAddress string `json:"redis_address"`
	} `json:"storage"`
	Server struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`
}

func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrParsingJSONFile, err)
	}

	var raw jsonConfig
	if err = json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrParsingJSONFile, err)
	}

	cfg := &StructuredConfig{}
	cfg.App.TokenSignKey = raw.App.TokenSignKey
	cfg.App.TokenIssuer = raw.App.TokenIssuer
	cfg.App.TokenDuration = raw.App.TokenDuration.Duration
	cfg.App.TOTPIssuer = raw.App.TOTPIssuer
	cfg.App.WordlistPath = raw.App.WordlistPath
	cfg.App.WordCount = raw.App.WordCount
	cfg.App.LoginTTL = raw.App.LoginTTL.Duration
	cfg.App.RegistrationTTL = raw.App.RegistrationTTL.Duration
	cfg.Storage.DB.DSN = raw.Storage.DatabaseURI
	cfg.Storage.Redis.Address = raw.Storage.RedisAddress
	cfg.Server.HTTPAddress = raw.Server.Address
	cfg.Server.RequestTimeout = raw.Server.RequestTimeout.Duration

	return cfg, nil
}
