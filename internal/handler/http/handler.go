// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the JSON API. Session tracking, authentication, logging, tracing and
// panic recovery are all handled at this layer before requests are
// forwarded to the service layer. Binary values (fingerprints, wrapped
// keys, HMAC tags) cross the wire base64-encoded and are decoded here.
package http

import (
	"github.com/apmod1/password-manager/internal/config"
	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/service"
)

type Handler struct {
	services *service.Services

	// tokenSignKey and tokenIssuer validate vault access tokens.
	tokenSignKey string
	tokenIssuer  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}
