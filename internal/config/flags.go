package config

import (
	"flag"
	"time"
)

func parseFlags(programName string, args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.StringVar(&cfg.Server.HTTPAddress, "a", "", "address and port of the HTTP server")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL connection URI")
	fs.StringVar(&cfg.Storage.Redis.Address, "r", "", "Redis address for the transaction store")
	fs.StringVar(&cfg.App.WordlistPath, "w", "", "path to the secret word list file")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "path to a JSON configuration file")
	fs.DurationVar(&cfg.Server.RequestTimeout, "t", time.Duration(0), "per-request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}
