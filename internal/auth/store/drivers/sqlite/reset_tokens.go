package sqlite

import (
	"context"
	"time"

	"github.com/project-nt/auth/internal/auth/domain"
)

type resetTokensRepo struct {
	q querier
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO reset_tokens (token_hash, email, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		t.TokenHash, t.Email, toMillis(t.ExpiresAt), toMillis(t.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetResetToken(ctx context.Context, hash string) (domain.ResetToken, error) {
	var (
		t                domain.ResetToken
		expires, created int64
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT token_hash, email, expires_at, created_at FROM reset_tokens WHERE token_hash = ?`,
		hash,
	).Scan(&t.TokenHash, &t.Email, &expires, &created)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	t.ExpiresAt = fromMillis(expires)
	t.CreatedAt = fromMillis(created)
	return t, nil
}

func (r *resetTokensRepo) ClaimResetToken(ctx context.Context, hash string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM reset_tokens WHERE token_hash = ?`, hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM reset_tokens WHERE expires_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
