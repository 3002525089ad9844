package service

import "errors"

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnknownPlan        = errors.New("unknown plan")
	ErrNotCancellable     = errors.New("only pending orders can be cancelled")
	ErrAlreadyVerified    = errors.New("email already verified")
)
