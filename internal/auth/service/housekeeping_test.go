package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/project-nt/auth/internal/auth/observability"
	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/pkg/cryptox"
	"github.com/project-nt/auth/pkg/slogx"
)

func TestHousekeeping_Sweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ada", "ada@example.com", "pw", "555")
	f.register(t, "Bob", "bob@example.com", "pw", "556")

	_, err := f.sessions.Authenticate(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	_, err = f.resets.RequestReset(ctx, "ada@example.com", "555")
	require.NoError(t, err)
	adaReset := f.lastResetToken(t)

	f.clock.Advance(23 * time.Hour)
	bob, err := f.sessions.Authenticate(ctx, "bob@example.com", "pw")
	require.NoError(t, err)
	_, err = f.resets.RequestReset(ctx, "bob@example.com", "556")
	require.NoError(t, err)
	bobReset := f.lastResetToken(t)

	f.clock.Advance(2 * time.Hour)

	m := observability.NewMetrics(observability.NewRegistry())
	hk := service.NewHousekeepingService(f.store, slogx.Discard(), time.Hour)
	hk.Metrics = m
	hk.Now = f.clock.Now

	// Ada's refresh row (24h) and her reset row are gone. Bob's refresh row
	// is live and his reset row (3m) has expired too.
	require.Equal(t, int64(3), hk.Sweep(ctx))
	require.InDelta(t, 1, testutil.ToFloat64(m.Swept.WithLabelValues("refresh_tokens")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.Swept.WithLabelValues("reset_tokens")), 0)

	_, err = f.store.ResetTokens().GetResetToken(ctx, cryptox.FingerprintToken(adaReset))
	require.Error(t, err)
	_, err = f.store.ResetTokens().GetResetToken(ctx, cryptox.FingerprintToken(bobReset))
	require.Error(t, err)

	_, _, err = f.sessions.Refresh(ctx, bob.RefreshToken)
	require.NoError(t, err)

	require.Equal(t, int64(0), hk.Sweep(ctx))
}

func TestHousekeeping_StartStop(t *testing.T) {
	f := newFixture(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hk := service.NewHousekeepingService(f.store, slogx.Discard(), 10*time.Millisecond)
	hk.Start()
	time.Sleep(30 * time.Millisecond)
	hk.Stop()
	hk.Stop()
}

func TestHousekeeping_ResetRetention(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ada", "ada@example.com", "pw", "555")

	_, err := f.resets.RequestReset(ctx, "ada@example.com", "555")
	require.NoError(t, err)
	hash := cryptox.FingerprintToken(f.lastResetToken(t))

	hk := service.NewHousekeepingService(f.store, slogx.Discard(), time.Hour)
	hk.ResetRetention = 10 * time.Minute
	hk.Now = f.clock.Now

	f.clock.Advance(5 * time.Minute)
	require.Equal(t, int64(0), hk.Sweep(ctx))
	_, err = f.store.ResetTokens().GetResetToken(ctx, hash)
	require.NoError(t, err)

	f.clock.Advance(10 * time.Minute)
	require.Equal(t, int64(1), hk.Sweep(ctx))
	_, err = f.store.ResetTokens().GetResetToken(ctx, hash)
	require.Error(t, err)
}

func TestHousekeeping_StopWithoutStart(t *testing.T) {
	hk := service.NewHousekeepingService(nil, slogx.Discard(), time.Hour)
	hk.Stop()
}

func TestNewHousekeepingService_DefaultInterval(t *testing.T) {
	hk := service.NewHousekeepingService(nil, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)
}
