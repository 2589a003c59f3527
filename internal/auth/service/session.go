package service

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/domain"
	"github.com/project-nt/auth/internal/auth/observability"
	"github.com/project-nt/auth/internal/auth/store"
	"github.com/project-nt/auth/pkg/cryptox"
	"github.com/project-nt/auth/pkg/jwtx"
	"github.com/project-nt/auth/pkg/slogx"
)

// SessionService issues and checks the access/refresh token pair.
//
// Access tokens are never stored. The refresh token is stored by
// fingerprint, one row per user, so a new login replaces the previous
// session's refresh token.
type SessionService struct {
	Store      store.Store
	Signer     *jwtx.HMACSigner
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Metrics    *observability.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue mints a fresh token pair for the user and makes its refresh token
// the only live one for email. Nothing is returned if persisting fails.
func (s *SessionService) Issue(ctx context.Context, email, name string) (*domain.TokenPair, error) {
	now := s.now()
	access := jwtx.NewSessionClaims(jwtx.UseAccess, email, name, s.Signer.Issuer(), s.AccessTTL, now)
	refresh := jwtx.NewSessionClaims(jwtx.UseRefresh, email, name, s.Signer.Issuer(), s.RefreshTTL, now)

	accessToken, err := s.Signer.Sign(access)
	if err != nil {
		return nil, oops.Code("TOKEN_SIGN_FAILED").With("operation", "sign access token").Wrap(err)
	}
	refreshToken, err := s.Signer.Sign(refresh)
	if err != nil {
		return nil, oops.Code("TOKEN_SIGN_FAILED").With("operation", "sign refresh token").Wrap(err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.RefreshTokens().ReplaceRefreshToken(ctx, domain.RefreshToken{
			UserEmail: email,
			TokenHash: cryptox.FingerprintToken(refreshToken),
			ExpiresAt: refresh.ExpiresAt.Time,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, oops.Code("REFRESH_PERSIST_FAILED").
			With("operation", "replace refresh token").
			With("email", email).
			Wrap(err)
	}

	return &domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  access.ExpiresAt.Time,
		RefreshExpiresAt: refresh.ExpiresAt.Time,
	}, nil
}

// Authenticate checks email and password and, on success, issues a pair.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.Login(observability.OutcomeRejected)
		l.Info("login rejected", "reason", "user not found")
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.Metrics.Login(observability.OutcomeError)
		return nil, oops.Code("LOGIN_FAILED").With("operation", "lookup user").Wrap(err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			s.Metrics.Login(observability.OutcomeRejected)
			l.Info("login rejected", "reason", "password mismatch")
			return nil, ErrInvalidCredentials
		}
		s.Metrics.Login(observability.OutcomeError)
		return nil, oops.Code("LOGIN_FAILED").With("operation", "verify password").With("email", email).Wrap(err)
	}

	pair, err := s.Issue(ctx, user.Email, user.Name)
	if err != nil {
		s.Metrics.Login(observability.OutcomeError)
		return nil, err
	}

	s.Metrics.Login(observability.OutcomeSuccess)
	l.Info("login succeeded", "email", user.Email)
	return pair, nil
}

// VerifyAccess checks an access token. Every failure, including expiry or
// a refresh token in its place, is reported as ErrInvalidToken.
func (s *SessionService) VerifyAccess(token string) (jwtx.SessionClaims, error) {
	c, ok := s.verify(token, jwtx.UseAccess)
	if !ok {
		return jwtx.SessionClaims{}, ErrInvalidToken
	}
	return c, nil
}

func (s *SessionService) verify(token string, use jwtx.TokenUse) (jwtx.SessionClaims, bool) {
	var c jwtx.SessionClaims
	if err := s.Signer.Verify(token, &c); err != nil || c.Use != use {
		return jwtx.SessionClaims{}, false
	}
	return c, true
}

// Refresh mints a new access token from a refresh token. The refresh token
// must verify and must still be the live one stored for its user. It is
// not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, jwtx.SessionClaims, error) {
	rc, ok := s.verify(refreshToken, jwtx.UseRefresh)
	if !ok {
		s.Metrics.Refresh(observability.OutcomeRejected)
		return "", jwtx.SessionClaims{}, ErrInvalidToken
	}

	row, err := s.Store.RefreshTokens().GetRefreshTokenByEmail(ctx, rc.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.Refresh(observability.OutcomeRejected)
		return "", jwtx.SessionClaims{}, ErrInvalidToken
	}
	if err != nil {
		s.Metrics.Refresh(observability.OutcomeError)
		return "", jwtx.SessionClaims{}, oops.Code("REFRESH_FAILED").With("operation", "lookup refresh token").Wrap(err)
	}
	if !cryptox.MatchFingerprint(refreshToken, row.TokenHash) {
		s.Metrics.Refresh(observability.OutcomeRejected)
		slogx.FromContext(ctx).Info("refresh rejected", "reason", "superseded", "email", rc.Email)
		return "", jwtx.SessionClaims{}, ErrInvalidToken
	}

	ac := jwtx.NewSessionClaims(jwtx.UseAccess, rc.Email, rc.Name, s.Signer.Issuer(), s.AccessTTL, s.now())
	access, err := s.Signer.Sign(ac)
	if err != nil {
		s.Metrics.Refresh(observability.OutcomeError)
		return "", jwtx.SessionClaims{}, oops.Code("TOKEN_SIGN_FAILED").With("operation", "sign access token").Wrap(err)
	}

	s.Metrics.Refresh(observability.OutcomeSuccess)
	return access, ac, nil
}

// Revoke deletes the stored refresh row if refreshToken is still the live
// token for its user. Invalid or superseded tokens are ignored.
func (s *SessionService) Revoke(ctx context.Context, refreshToken string) error {
	c, ok := s.verify(refreshToken, jwtx.UseRefresh)
	if !ok {
		return nil
	}

	removed, err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, c.Email, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		return oops.Code("LOGOUT_FAILED").With("operation", "delete refresh token").Wrap(err)
	}
	if removed {
		slogx.FromContext(ctx).Info("refresh token revoked", "email", c.Email)
	}
	return nil
}
