package config

import "errors"

func (c *StructuredConfig) validate() error {
	var errs []error

	if c.Storage.DB.DSN == "" {
		errs = append(errs, ErrNoDatabaseURI)
	}
	if c.App.TokenSignKey == "" {
		errs = append(errs, ErrNoTokenSignKey)
	}
	if c.App.LoginTTL <= 0 || c.App.RegistrationTTL <= 0 || c.App.TokenDuration <= 0 {
		errs = append(errs, ErrInvalidTTL)
	}
	if c.App.WordCount <= 0 || c.App.WordCount%2 != 0 {
		errs = append(errs, ErrOddWordCount)
	}
	if c.Server.HTTPAddress == "" {
		errs = append(errs, ErrNoListenAddress)
	}

	return errors.Join(errs...)
}
