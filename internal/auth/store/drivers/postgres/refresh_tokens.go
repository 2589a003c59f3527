package postgres

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/domain"
)

type refreshTokensRepo struct {
	q querier
}

func (r *refreshTokensRepo) ReplaceRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO refresh_tokens (user_email, token_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_email) DO UPDATE SET
		   token_hash = EXCLUDED.token_hash,
		   expires_at = EXCLUDED.expires_at,
		   created_at = EXCLUDED.created_at`,
		t.UserEmail, t.TokenHash, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return oops.With("operation", "replace refresh token").With("email", t.UserEmail).Wrap(err)
	}
	return nil
}

func (r *refreshTokensRepo) GetRefreshTokenByEmail(ctx context.Context, email string) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.q.QueryRow(ctx,
		`SELECT user_email, token_hash, expires_at, created_at FROM refresh_tokens WHERE user_email = $1`,
		email,
	).Scan(&t.UserEmail, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err, "get refresh token")
	}
	return t, nil
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, email, hash string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE user_email = $1 AND token_hash = $2`, email, hash)
	if err != nil {
		return false, oops.With("operation", "delete refresh token").Wrap(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, oops.With("operation", "delete expired refresh tokens").Wrap(err)
	}
	return tag.RowsAffected(), nil
}
