//go:build e2e

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/project-nt/auth/pkg/authsdk"
)

// TestLivezEndpoint verifies the liveness check endpoint works.
func TestLivezEndpoint(t *testing.T) {
	svc := setupAuthContainer(t)
	client := authsdk.NewClient(svc.BaseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies the readiness check sees the database.
func TestReadyzEndpoint(t *testing.T) {
	svc := setupAuthContainer(t)
	client := authsdk.NewClient(svc.BaseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
