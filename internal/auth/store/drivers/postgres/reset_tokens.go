package postgres

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/domain"
)

type resetTokensRepo struct {
	q querier
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO reset_tokens (token_hash, email, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		t.TokenHash, t.Email, t.ExpiresAt, t.CreatedAt)
	return mapConstraint(err, "create reset token")
}

func (r *resetTokensRepo) GetResetToken(ctx context.Context, hash string) (domain.ResetToken, error) {
	var t domain.ResetToken
	err := r.q.QueryRow(ctx,
		`SELECT token_hash, email, expires_at, created_at FROM reset_tokens WHERE token_hash = $1`,
		hash,
	).Scan(&t.TokenHash, &t.Email, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err, "get reset token")
	}
	return t, nil
}

// ClaimResetToken relies on the row lock taken by DELETE: a concurrent
// claimer blocks, then sees zero rows affected.
func (r *resetTokensRepo) ClaimResetToken(ctx context.Context, hash string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM reset_tokens WHERE token_hash = $1`, hash)
	if err != nil {
		return false, oops.With("operation", "claim reset token").Wrap(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM reset_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, oops.With("operation", "delete expired reset tokens").Wrap(err)
	}
	return tag.RowsAffected(), nil
}
