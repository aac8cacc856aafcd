package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	content := `{
		"app": {
			"token_sign_key": "file-secret",
			"token_duration": "2h",
			"totp_issuer": "Keeper",
			"word_count": 10,
			"login_ttl": "15m",
			"registration_ttl": "30m"
		},
		"storage": {
			"database_uri": "postgres://localhost:5432/keeper",
			"redis_address": "localhost:6379"
		},
		"server": {
			"address": "localhost:8080",
			"request_timeout": "45s"
		}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "file-secret", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "Keeper", cfg.App.TOTPIssuer)
	assert.Equal(t, 15*time.Minute, cfg.App.LoginTTL)
	assert.Equal(t, 30*time.Minute, cfg.App.RegistrationTTL)
	assert.Equal(t, "postgres://localhost:5432/keeper", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSONMissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrParsingJSONFile)
}

func TestParseJSONInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app":{"login_ttl":"soon"}}`), 0o600))

	_, err := parseJSON(path)
	assert.ErrorIs(t, err, ErrParsingJSONFile)
}
