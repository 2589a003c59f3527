package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/project-nt/auth/pkg/cryptox"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	return Config{
		Issuer:               "Project-NT",
		AccessTTL:            10 * time.Minute,
		RefreshTTL:           24 * time.Hour,
		ResetTTL:             3 * time.Minute,
		LoginURL:             "/login",
		ResetLinkBase:        "http://localhost:3000/verifyToken/",
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "auth.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNew_WiresRoutes(t *testing.T) {
	application, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	for _, path := range []string{"/livez", "/readyz", "/metrics", "/v1/auth/session"} {
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	require.NotEmpty(t, cryptox.GetPepper())
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionSecret = "same"
	cfg.ResetSecret = "same"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}
