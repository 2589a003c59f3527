package service

import "errors"

// Outcomes a caller is expected to branch on. Anything else returned by a
// service is an internal failure and must not be shown to the client.
var (
	ErrInvalidInput       = errors.New("invalid_request")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")

	// ErrInvalidToken covers every session token failure: expired,
	// malformed, wrong signature, wrong issuer or no longer the live refresh token.
	ErrInvalidToken = errors.New("invalid_token")

	ErrResetTokenInvalid = errors.New("reset_token_invalid")
	ErrResetTokenExpired = errors.New("reset_token_expired")
)
