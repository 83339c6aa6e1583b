package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/dreamcrypt/cmd/app/commands"
	"github.com/allisson/dreamcrypt/internal/app"
	"github.com/allisson/dreamcrypt/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the configured storage driver",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.StorageDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "generate-seal-key",
			Usage: "Generate a local KEY_SEAL_URI for sealing stored user keys",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGenerateSealKey(ctx, container.Logger(), commands.DefaultIO().Writer)
			},
		},
	}
}
