package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/domain"
	"github.com/project-nt/auth/internal/auth/notify"
	"github.com/project-nt/auth/internal/auth/observability"
	"github.com/project-nt/auth/internal/auth/store"
	"github.com/project-nt/auth/pkg/cryptox"
	"github.com/project-nt/auth/pkg/jwtx"
	"github.com/project-nt/auth/pkg/slogx"
)

const defaultSendTimeout = 30 * time.Second

// ResetService runs the password reset flow: request, verify, update.
//
// A reset token is single use. Verification consumes it, and so does a
// successful password update.
type ResetService struct {
	Store    store.Store
	Signer   *jwtx.HMACSigner // must not share a secret with the session signer
	TTL      time.Duration
	Notifier notify.Notifier
	LinkBase string // token is appended, path escaped
	Metrics  *observability.Metrics

	// SendTimeout bounds one background email delivery.
	SendTimeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	wg sync.WaitGroup
}

func (s *ResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RequestReset mints and stores a reset token when exactly one account
// matches email and phone, then mails a link in the background. It returns
// the matched email, or "" when no unique account matched.
func (s *ResetService) RequestReset(ctx context.Context, email, phone string) (string, error) {
	l := slogx.FromContext(ctx)

	users, err := s.Store.Users().FindUsersByEmailAndPhone(ctx, email, phone)
	if err != nil {
		s.Metrics.ResetRequest(observability.OutcomeError)
		return "", oops.Code("RESET_REQUEST_FAILED").With("operation", "lookup users").Wrap(err)
	}
	if len(users) != 1 {
		s.Metrics.ResetRequest(observability.OutcomeRejected)
		l.Info("reset request matched no unique account", "matches", len(users))
		return "", nil
	}
	user := users[0]

	// JWT expiry has second precision; keep the row in step with it.
	now := s.now().Truncate(time.Second)
	token, err := s.Signer.Sign(jwtx.NewResetClaims(user.Email, s.TTL, now))
	if err != nil {
		s.Metrics.ResetRequest(observability.OutcomeError)
		return "", oops.Code("TOKEN_SIGN_FAILED").With("operation", "sign reset token").Wrap(err)
	}

	err = s.Store.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
		TokenHash: cryptox.FingerprintToken(token),
		Email:     user.Email,
		ExpiresAt: now.Add(s.TTL),
		CreatedAt: now,
	})
	if err != nil {
		s.Metrics.ResetRequest(observability.OutcomeError)
		return "", oops.Code("RESET_REQUEST_FAILED").With("operation", "persist reset token").With("email", user.Email).Wrap(err)
	}

	msg, err := notify.ResetEmail(user.Email, s.LinkBase+url.PathEscape(token), s.TTL)
	if err != nil {
		s.Metrics.ResetRequest(observability.OutcomeError)
		return "", oops.Code("RESET_REQUEST_FAILED").With("operation", "render reset email").Wrap(err)
	}
	s.send(ctx, msg)

	s.Metrics.ResetRequest(observability.OutcomeSuccess)
	l.Info("reset token issued", "email", user.Email, "expires_at", now.Add(s.TTL))
	return user.Email, nil
}

// send delivers msg without holding up the request. Failures are logged.
func (s *ResetService) send(ctx context.Context, msg notify.Message) {
	if s.Notifier == nil {
		return
	}
	l := slogx.FromContext(ctx)
	timeout := s.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		if err := s.Notifier.Send(sendCtx, msg); err != nil {
			l.Warn("reset email delivery failed", "to", msg.To, "error", err)
			return
		}
		l.Debug("reset email delivered", "to", msg.To)
	}()
}

// Wait blocks until every background delivery has finished.
func (s *ResetService) Wait() {
	s.wg.Wait()
}

// VerifyResetToken checks a reset token against its stored row and
// consumes it. It returns the email the token was issued for.
//
// An unknown or already consumed token is ErrResetTokenInvalid. A known
// token past its expiry is ErrResetTokenExpired and its row is left for
// housekeeping.
func (s *ResetService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	hash := cryptox.FingerprintToken(token)

	row, err := s.Store.ResetTokens().GetResetToken(ctx, hash)
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.ResetConsume(observability.OutcomeRejected)
		return "", ErrResetTokenInvalid
	}
	if err != nil {
		s.Metrics.ResetConsume(observability.OutcomeError)
		return "", oops.Code("RESET_VERIFY_FAILED").With("operation", "lookup reset token").Wrap(err)
	}
	if row.Expired(s.now()) {
		s.Metrics.ResetConsume(observability.OutcomeRejected)
		return "", ErrResetTokenExpired
	}

	var c jwtx.ResetClaims
	if err := s.Signer.Verify(token, &c); err != nil {
		s.Metrics.ResetConsume(observability.OutcomeError)
		return "", oops.Code("RESET_VERIFY_FAILED").With("operation", "decode reset token").Wrap(err)
	}

	claimed, err := s.Store.ResetTokens().ClaimResetToken(ctx, hash)
	if err != nil {
		s.Metrics.ResetConsume(observability.OutcomeError)
		return "", oops.Code("RESET_VERIFY_FAILED").With("operation", "claim reset token").Wrap(err)
	}
	if !claimed {
		s.Metrics.ResetConsume(observability.OutcomeRejected)
		return "", ErrResetTokenInvalid
	}

	s.Metrics.ResetConsume(observability.OutcomeSuccess)
	slogx.FromContext(ctx).Info("reset token verified", "email", c.Email)
	return c.Email, nil
}

// UpdatePassword sets a new password for the account a reset token was
// issued to. The token is checked cryptographically only, since verifying
// it has already consumed its row; any row still present is removed.
func (s *ResetService) UpdatePassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	var c jwtx.ResetClaims
	if err := s.Signer.Verify(token, &c); err != nil {
		return oops.Code("PASSWORD_UPDATE_FAILED").With("operation", "decode reset token").Wrap(err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return oops.Code("PASSWORD_UPDATE_FAILED").With("operation", "hash password").Wrap(err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Users().UpdatePasswordHash(ctx, c.Email, hash)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrResetTokenInvalid
		}
		_, err = tx.ResetTokens().ClaimResetToken(ctx, cryptox.FingerprintToken(token))
		return err
	})
	if errors.Is(err, ErrResetTokenInvalid) {
		return err
	}
	if err != nil {
		return oops.Code("PASSWORD_UPDATE_FAILED").With("operation", "update password").With("email", c.Email).Wrap(err)
	}

	slogx.FromContext(ctx).Info("password updated", "email", c.Email)
	return nil
}
