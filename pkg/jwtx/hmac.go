package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
)

// HMACSigner signs and verifies HS256 tokens with a single shared secret.
// Session tokens and reset tokens each get their own signer so a token of
// one kind can never verify as the other.
type HMACSigner struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewHMACSigner returns a signer for secret. When issuer is non-empty,
// Verify rejects tokens carrying any other iss.
func NewHMACSigner(secret []byte, issuer string) (*HMACSigner, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &HMACSigner{secret: secret, issuer: issuer, now: time.Now}, nil
}

// WithClock replaces the verification clock. Tests use it to step past expiry.
func (s *HMACSigner) WithClock(now func() time.Time) *HMACSigner {
	s.now = now
	return s
}

// WithLeeway tolerates clock skew of d when checking exp.
func (s *HMACSigner) WithLeeway(d time.Duration) *HMACSigner {
	s.leeway = d
	return s
}

// Issuer is the iss value this signer stamps and expects.
func (s *HMACSigner) Issuer() string { return s.issuer }

// Sign serialises claims into a compact HS256 JWT.
func (s *HMACSigner) Sign(claims jwt.Claims) (string, error) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return tok, nil
}

// Verify parses token into claims, checking algorithm, signature, expiry
// and issuer. Failures are reported as one of the package sentinels.
func (s *HMACSigner) Verify(token string, claims jwt.Claims) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(s.leeway),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %w", ErrIssuer, err)
	case errors.Is(err, ErrInvalidClaim):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}
