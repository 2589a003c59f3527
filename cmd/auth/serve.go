package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/project-nt/auth/internal/auth/app"
)

// bindConfigFlags registers flags that override cfg. Defaults come from
// the environment, so an unset flag leaves the env value in place.
func bindConfigFlags(fs *pflag.FlagSet, cfg *app.Config) {
	fs.StringVar(&cfg.DatabaseDriver, "db-driver", cfg.DatabaseDriver, "database driver (sqlite, postgres)")
	fs.StringVar(&cfg.DatabaseFile, "db-file", cfg.DatabaseFile, "sqlite database file")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection url")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (json, text)")
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cfg := app.LoadConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the auth HTTP server. Migrations are applied on startup and
expired tokens are swept in the background.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return oops.Code("STARTUP_FAILED").With("operation", "initialize application").Wrap(err)
			}
			return application.Run()
		},
	}

	bindConfigFlags(cmd.Flags(), &cfg)
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	cmd.Flags().BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "set the Secure attribute on session cookies")
	cmd.Flags().StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "redirect target for register, reset and rejected sessions")
	cmd.Flags().DurationVar(&cfg.HousekeepingInterval, "housekeeping-interval", cfg.HousekeepingInterval, "how often expired tokens are swept")

	return cmd
}
