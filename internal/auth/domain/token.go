package domain

import "time"

// TokenPair is what a successful login hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string

	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RefreshToken models the single stored refresh token for a user.
// The table is keyed by UserEmail so a user can never hold two.
type RefreshToken struct {
	UserEmail string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ResetToken models an outstanding password reset grant. The row is the
// source of truth for single use; the JWT signature is a secondary check.
type ResetToken struct {
	TokenHash string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now. A token is
// still valid at exactly its expiry instant.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
