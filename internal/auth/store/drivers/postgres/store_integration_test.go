//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/project-nt/auth/internal/auth/domain"
	"github.com/project-nt/auth/internal/auth/store"
	"github.com/project-nt/auth/internal/auth/store/drivers/postgres"
	"github.com/project-nt/auth/pkg/idx"
)

func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("auth_test"),
		tcpostgres.WithUsername("auth"),
		tcpostgres.WithPassword("auth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := postgres.Open(ctx, connStr, postgres.ConnectOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "second run is a no-op")
	return s
}

func TestPostgresStore_Integration(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, s.Users().CreateUser(ctx, domain.User{
		ID: idx.New().String(), Name: "Ada", Email: "ada@example.com", PasswordHash: "h",
		Phone: "010", OnOff: domain.ParseOnOff("offline"), CreatedAt: now, UpdatedAt: now,
	}))

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Email: "ada@example.com", CreatedAt: now, UpdatedAt: now})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("single refresh row", func(t *testing.T) {
		for _, fp := range []string{"one", "two"} {
			err := s.WithTx(ctx, func(tx store.Tx) error {
				return tx.RefreshTokens().ReplaceRefreshToken(ctx, domain.RefreshToken{
					UserEmail: "ada@example.com", TokenHash: fp, ExpiresAt: now.Add(time.Hour), CreatedAt: now,
				})
			})
			require.NoError(t, err)
		}
		got, err := s.RefreshTokens().GetRefreshTokenByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "two", got.TokenHash)
	})

	t.Run("concurrent claim", func(t *testing.T) {
		require.NoError(t, s.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
			TokenHash: "fp", Email: "ada@example.com", ExpiresAt: now.Add(3 * time.Minute), CreatedAt: now,
		}))

		var wg sync.WaitGroup
		wins := make(chan bool, 10)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.ResetTokens().ClaimResetToken(ctx, "fp")
				wins <- err == nil && ok
			}()
		}
		wg.Wait()
		close(wins)

		n := 0
		for ok := range wins {
			if ok {
				n++
			}
		}
		require.Equal(t, 1, n)
	})
}
