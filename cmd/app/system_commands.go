package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/maasoft/sg-gateway/cmd/app/commands"
	"github.com/maasoft/sg-gateway/internal/app"
	"github.com/maasoft/sg-gateway/internal/config"
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
			Usage: "Create or upgrade the transacciones_agilpagos table",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				})
			},
		},
		{
			Name:  "encrypt-secret",
			Usage: "Encrypt a secret with the KMS key for use as SG_PASSWORD",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Usage:   "gocloud.dev secrets URI, defaults to KMS_KEY_URI (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://)",
				},
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Secret to encrypt (omit to read it from stdin)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					keyURI := cmd.String("kms-key-uri")
					if keyURI == "" {
						keyURI = cfg.KMSKeyURI
					}

					return commands.RunEncryptSecret(
						ctx,
						container.KMSService(),
						keyURI,
						cmd.String("value"),
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
