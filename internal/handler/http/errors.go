package http

import "errors"

var (
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not set")
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	ErrNoSessionKey               = errors.New("no session key in request context")
	ErrNoUserID                   = errors.New("no user ID in request context")
)
