// Package main provides the entry point for the dreamcrypt CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// Build information set via ldflags.
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "dreamcrypt",
		Usage:    "Encryption at rest for dream journal entries",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
