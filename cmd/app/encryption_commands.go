package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/dreamcrypt/cmd/app/commands"
	"github.com/allisson/dreamcrypt/internal/app"
	"github.com/allisson/dreamcrypt/internal/config"
)

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Required: true,
		Usage:    "User ID that owns the device key",
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Sources: cli.EnvVars("DREAMCRYPT_PASSWORD"),
		Usage:   "Derive the key from this password instead of the device key",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// withContainer loads configuration and runs fn against a fresh container.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return fn(container)
}

func getEncryptionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "Encrypt a JSON document read from stdin and print the envelope",
			Flags: []cli.Flag{userFlag(), passwordFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.EncryptionUseCase()
					if err != nil {
						return err
					}
					return commands.RunEncrypt(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("user"),
						cmd.String("password"),
					)
				})
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt an envelope read from stdin and print the JSON document",
			Flags: []cli.Flag{userFlag(), passwordFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.EncryptionUseCase()
					if err != nil {
						return err
					}
					return commands.RunDecrypt(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("user"),
						cmd.String("password"),
					)
				})
			},
		},
		{
			Name:  "self-test",
			Usage: "Round-trip a probe through the user's device key",
			Flags: []cli.Flag{userFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.EncryptionUseCase()
					if err != nil {
						return err
					}
					return commands.RunSelfTest(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("user"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "info",
			Usage: "Show encryption algorithm parameters",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.EncryptionUseCase()
					if err != nil {
						return err
					}
					return commands.RunInfo(useCase, commands.DefaultIO(), cmd.String("format"))
				})
			},
		},
		{
			Name:  "clear-keys",
			Usage: "Erase the user's device key (device-key data becomes unreadable)",
			Flags: []cli.Flag{userFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.EncryptionUseCase()
					if err != nil {
						return err
					}
					return commands.RunClearKeys(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("user"),
					)
				})
			},
		},
	}
}
