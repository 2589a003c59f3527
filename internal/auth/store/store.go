package store

import (
	"context"
	"errors"
	"time"

	"github.com/project-nt/auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through accessors so a Tx can
// hand out the same repos bound to the transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	ResetTokens() ResetTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail returns the user owning email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// FindUsersByEmailAndPhone returns every row matching both fields, oldest first.
	FindUsersByEmailAndPhone(ctx context.Context, email, phone string) ([]domain.User, error)

	// FindUsersByNameAndPhone returns every row matching both fields, oldest first.
	FindUsersByNameAndPhone(ctx context.Context, name, phone string) ([]domain.User, error)

	// UpdatePasswordHash sets password_hash for email and reports rows affected.
	UpdatePasswordHash(ctx context.Context, email, newHash string) (int64, error)
}

type RefreshTokens interface {
	// ReplaceRefreshToken writes t as the only refresh token for t.UserEmail
	// in a single statement.
	ReplaceRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByEmail returns the live row for email.
	GetRefreshTokenByEmail(ctx context.Context, email string) (domain.RefreshToken, error)

	// DeleteRefreshToken removes the row for email only if it still holds hash.
	// It reports whether a row was removed.
	DeleteRefreshToken(ctx context.Context, email, hash string) (bool, error)

	// DeleteExpiredRefreshTokens removes rows that expired before cutoff.
	DeleteExpiredRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

type ResetTokens interface {
	// CreateResetToken persists a freshly minted reset token.
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// GetResetToken looks a token up by fingerprint.
	GetResetToken(ctx context.Context, hash string) (domain.ResetToken, error)

	// ClaimResetToken deletes the row for hash and reports whether this call
	// removed it. Exactly one of several concurrent claims returns true.
	ClaimResetToken(ctx context.Context, hash string) (bool, error)

	// DeleteExpiredResetTokens removes rows that expired before cutoff.
	DeleteExpiredResetTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
