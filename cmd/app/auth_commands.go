package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/maasoft/sg-gateway/cmd/app/commands"
	"github.com/maasoft/sg-gateway/internal/app"
	"github.com/maasoft/sg-gateway/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login-payload",
			Usage: "Print a signed SG login body for manual testing",
			Flags: []cli.Flag{
				entityFlag(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Also write the payload to this file (e.g., login_payload.json)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					password, err := container.SGPassword(ctx)
					if err != nil {
						return err
					}

					entityID := cmd.String("entity")
					if entityID == "" {
						entityID = cfg.SGEntityID
					}

					return commands.RunLoginPayload(
						container.DigestSigner(),
						commands.LoginPayloadInput{
							UserName:    cfg.SGUserName,
							RawPassword: password,
							EntityID:    entityID,
							OutputPath:  cmd.String("output"),
						},
						time.Now(),
						commands.DefaultIO().Writer,
					)
				})
			},
		},
		{
			Name:  "auth-check",
			Usage: "Log in to SG and print a redacted summary of the response",
			Flags: []cli.Flag{
				entityFlag(),
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
					sessionUseCase, err := container.SessionUseCase()
					if err != nil {
						return err
					}

					return commands.RunAuthCheck(
						ctx,
						sessionUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("entity"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "rotate-inbound-token",
			Usage: "Generate a new AUTH_TOKEN for SG notifications and store it in the .env file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "env-file",
					Aliases: []string{"f"},
					Usage:   "Path of the .env file (defaults to the nearest .env)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				envPath := cmd.String("env-file")
				if envPath == "" {
					path, ok := config.FindDotEnv()
					if !ok {
						return fmt.Errorf("no .env file found, use --env-file")
					}
					envPath = path
				}

				return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
					return commands.RunRotateInboundToken(
						container.TokenService(),
						envPath,
						commands.DefaultIO().Writer,
					)
				})
			},
		},
	}
}
