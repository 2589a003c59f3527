package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/project-nt/auth/internal/auth/store"
)

// ErrNestedTx is returned when a transaction is started from inside another.
var ErrNestedTx = errors.New("postgres: nested transactions are not supported")

type txStore struct {
	// ctx is the context the transaction was begun with; store.Tx has no
	// context on Commit/Rollback.
	ctx context.Context
	tx  pgx.Tx
}

func (t *txStore) Commit() error { return t.tx.Commit(t.ctx) }

func (t *txStore) Rollback() error {
	err := t.tx.Rollback(t.ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, ErrNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return ErrNestedTx
}

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{q: t.tx} }
func (t *txStore) ResetTokens() store.ResetTokens     { return &resetTokensRepo{q: t.tx} }
