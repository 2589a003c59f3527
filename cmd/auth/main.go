// Package main is the entry point for the Project-NT auth service.
package main

import (
	"os"

	"github.com/project-nt/auth/internal/auth/app"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = app.BuildVersion

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
