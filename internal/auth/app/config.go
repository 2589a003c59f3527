package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer        string        // Optional: iss claim of session tokens (default: Project-NT)
	SessionSecret string        // Optional: HS256 secret for access/refresh tokens (generated when empty, dev only)
	ResetSecret   string        // Optional: HS256 secret for reset tokens, must differ from SessionSecret
	AccessTTL     time.Duration // Optional: access token lifetime (default: 10m)
	RefreshTTL    time.Duration // Optional: refresh token lifetime (default: 24h)
	ResetTTL      time.Duration // Optional: reset token lifetime (default: 3m)

	CookieSecure  bool   // Optional: Secure attribute on session cookies (default: false)
	LoginURL      string // Optional: redirect target after register/reset and for rejected sessions (default: /login)
	ResetLinkBase string // Optional: reset link prefix, the token is appended

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./auth.db)
	DatabaseURL    string // Required for postgres
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SMTPHost     string // Optional: relay host, reset mail is only logged when empty
	SMTPPort     int    // Optional: relay port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	ResetRetention       time.Duration // Keep expired reset rows this long (default: 0)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "Project-NT"),
		SessionSecret: os.Getenv("AUTH_SESSION_SECRET"),
		ResetSecret:   os.Getenv("AUTH_RESET_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		ResetTTL:      getEnvDurationOrDefault("AUTH_RESET_TOKEN_TTL", jwtx.DefaultResetTokenTTL),

		CookieSecure:  getEnvBoolOrDefault("AUTH_COOKIE_SECURE", false),
		LoginURL:      getEnvOrDefault("AUTH_LOGIN_URL", "/login"),
		ResetLinkBase: getEnvOrDefault("AUTH_RESET_LINK_BASE", "http://localhost:3000/verifyToken/"),

		DatabaseDriver: getEnvOrDefault("AUTH_DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:   getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PepperFile:     getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"), // Default to ./pepper

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		ResetRetention:       getEnvDurationOrDefault("RESET_RETENTION", 0),
	}
}

// Validate reports the first setting that cannot work. Empty secrets are
// accepted here outside prod; New generates them.
func (c Config) Validate() error {
	errb := oops.Code("CONFIG_INVALID")

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errb.Errorf("AUTH_DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errb.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errb.With("driver", c.DatabaseDriver).Errorf("unknown database driver %q", c.DatabaseDriver)
	}

	if c.Env == "prod" && (c.SessionSecret == "" || c.ResetSecret == "") {
		return errb.Errorf("AUTH_SESSION_SECRET and AUTH_RESET_SECRET must be set in prod")
	}
	if c.SessionSecret != "" && c.SessionSecret == c.ResetSecret {
		return errb.Errorf("session and reset tokens must use different secrets")
	}

	for name, d := range map[string]time.Duration{
		"AUTH_ACCESS_TOKEN_TTL":  c.AccessTTL,
		"AUTH_REFRESH_TOKEN_TTL": c.RefreshTTL,
		"AUTH_RESET_TOKEN_TTL":   c.ResetTTL,
	} {
		if d <= 0 {
			return errb.With("setting", name).Errorf("%s must be positive", name)
		}
	}
	if c.RefreshTTL < c.AccessTTL {
		return errb.Errorf("refresh token lifetime must not be shorter than the access token lifetime")
	}

	if c.ResetRetention < 0 {
		return errb.Errorf("RESET_RETENTION must not be negative")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errb.With("port", c.Port).Errorf("invalid port")
	}
	return nil
}

// SQLiteDSN builds the modernc DSN for DatabaseFile.
func (c Config) SQLiteDSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", c.DatabaseFile)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
