package sqlite

import (
	"context"
	"time"

	"github.com/project-nt/auth/internal/auth/domain"
)

type refreshTokensRepo struct {
	q querier
}

func (r *refreshTokensRepo) ReplaceRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_email, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_email) DO UPDATE SET
			token_hash = excluded.token_hash,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		t.UserEmail, t.TokenHash, toMillis(t.ExpiresAt), toMillis(t.CreatedAt),
	)
	return err
}

func (r *refreshTokensRepo) GetRefreshTokenByEmail(ctx context.Context, email string) (domain.RefreshToken, error) {
	var (
		t                domain.RefreshToken
		expires, created int64
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT user_email, token_hash, expires_at, created_at FROM refresh_tokens WHERE user_email = ?`,
		email,
	).Scan(&t.UserEmail, &t.TokenHash, &expires, &created)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	t.ExpiresAt = fromMillis(expires)
	t.CreatedAt = fromMillis(created)
	return t, nil
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, email, hash string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_email = ? AND token_hash = ?`, email, hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
