package config

import "time"

// StructuredConfig holds the full server configuration assembled from
// environment variables, command line flags and an optional JSON file.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`

	JSONFilePath string `env:"CONFIG"`
}

// App groups settings of the enrollment and authentication engine itself.
type App struct {
	TokenSignKey    string        `env:"TOKEN_SIGN_KEY"`
	TokenIssuer     string        `env:"TOKEN_ISSUER"`
	TokenDuration   time.Duration `env:"TOKEN_DURATION"`
	TOTPIssuer      string        `env:"TOTP_ISSUER"`
	WordlistPath    string        `env:"WORDLIST_PATH"`
	WordCount       int           `env:"WORD_COUNT"`
	LoginTTL        time.Duration `env:"LOGIN_TTL"`
	RegistrationTTL time.Duration `env:"REGISTRATION_TTL"`
}

// Storage groups connection settings of the persistent and ephemeral stores.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds PostgreSQL connection settings.
type DB struct {
	DSN string `env:"DATABASE_URI"`
}

// Redis holds the optional transaction store address. When empty the
// server keeps pending transactions in process memory.
type Redis struct {
	Address string `env:"ADDRESS"`
}

// Server holds HTTP listener settings.
type Server struct {
	HTTPAddress    string        `env:"ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig assembles the server configuration. Sources are
// merged in priority order: environment variables win over flags, flags
// win over the JSON file, and built-in defaults fill whatever is left.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
