package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the auth CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Project-NT authentication service",
		Long: `Session authentication for Project-NT: registration, login with
access/refresh token cookies, and password recovery by mailed reset link.

Configuration is read from the environment (AUTH_*, DATABASE_URL, SMTP_*)
and can be overridden with flags.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
