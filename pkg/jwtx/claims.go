package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes. Services may override them from configuration.
const (
	// DefaultAccessTokenTTL is the lifetime of a session access token.
	DefaultAccessTokenTTL = 10 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of a session refresh token.
	DefaultRefreshTokenTTL = 24 * time.Hour

	// DefaultResetTokenTTL is the lifetime of a password reset token.
	DefaultResetTokenTTL = 3 * time.Minute
)

// TokenUse says which half of a session pair a token is.
type TokenUse string

const (
	UseAccess  TokenUse = "access"
	UseRefresh TokenUse = "refresh"
)

// SessionClaims are carried by both access and refresh tokens. The two
// differ in their use, expiry and jti.
type SessionClaims struct {
	jwt.RegisteredClaims

	Use   TokenUse `json:"use"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
}

// NewSessionClaims builds session claims of the given use valid from now
// for ttl.
func NewSessionClaims(use TokenUse, email, name, issuer string, ttl time.Duration, now time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Use:   use,
		Email: email,
		Name:  name,
	}
}

// Validate is called by the parser after the registered claims pass.
func (c SessionClaims) Validate() error {
	if c.Email == "" {
		return ErrInvalidClaim
	}
	if c.Use != UseAccess && c.Use != UseRefresh {
		return ErrInvalidClaim
	}
	return nil
}

// ResetClaims are carried by password reset tokens. They bind the token to
// an email address and nothing else.
type ResetClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// NewResetClaims builds reset claims valid from now for ttl.
func NewResetClaims(email string, ttl time.Duration, now time.Time) ResetClaims {
	return ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
	}
}

func (c ResetClaims) Validate() error {
	if c.Email == "" {
		return ErrInvalidClaim
	}
	return nil
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two
// tokens minted in the same second for the same user still differ.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
