package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"AUTH_ISSUER", "AUTH_SESSION_SECRET", "AUTH_RESET_SECRET", "AUTH_ACCESS_TOKEN_TTL",
		"AUTH_REFRESH_TOKEN_TTL", "AUTH_RESET_TOKEN_TTL", "AUTH_COOKIE_SECURE", "AUTH_LOGIN_URL",
		"AUTH_DATABASE_DRIVER", "AUTH_DATABASE_FILE", "DATABASE_URL", "SMTP_HOST", "SMTP_PORT", "PORT", "ENV",
		"RESET_RETENTION",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "Project-NT", cfg.Issuer)
	require.Equal(t, 10*time.Minute, cfg.AccessTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 3*time.Minute, cfg.ResetTTL)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, "/login", cfg.LoginURL)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Equal(t, 8080, cfg.Port)
	require.Zero(t, cfg.ResetRetention)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "5m")
	t.Setenv("AUTH_RESET_TOKEN_TTL", "2") // bare integers are minutes
	t.Setenv("AUTH_COOKIE_SECURE", "true")
	t.Setenv("AUTH_DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://auth@localhost/auth")
	t.Setenv("PORT", "not-a-number")

	cfg := LoadConfig()
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 2*time.Minute, cfg.ResetTTL)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 8080, cfg.Port)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			AccessTTL:      10 * time.Minute,
			RefreshTTL:     24 * time.Hour,
			ResetTTL:       3 * time.Minute,
			DatabaseDriver: DriverSQLite,
			DatabaseFile:   "auth.db",
			Env:            "dev",
			Port:           8080,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"distinct secrets", func(c *Config) { c.SessionSecret, c.ResetSecret = "a", "b" }, false},
		{"shared secret", func(c *Config) { c.SessionSecret, c.ResetSecret = "a", "a" }, true},
		{"prod without secrets", func(c *Config) { c.Env = "prod" }, true},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, true},
		{"postgres without url", func(c *Config) { c.DatabaseDriver = DriverPostgres }, true},
		{"zero reset ttl", func(c *Config) { c.ResetTTL = 0 }, true},
		{"refresh shorter than access", func(c *Config) { c.RefreshTTL = time.Minute }, true},
		{"negative reset retention", func(c *Config) { c.ResetRetention = -time.Minute }, true},
		{"bad port", func(c *Config) { c.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
