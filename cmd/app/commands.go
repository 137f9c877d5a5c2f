package main

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/maasoft/sg-gateway/internal/app"
	"github.com/maasoft/sg-gateway/internal/config"
)

func getCommands(version string) []*cli.Command {
	return slices.Concat(getSystemCommands(version), getAuthCommands())
}

// withContainer runs action against a freshly configured container and
// releases it afterwards.
func withContainer(ctx context.Context, action func(cfg *config.Config, container *app.Container) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return action(cfg, container)
}

func entityFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "entity",
		Aliases: []string{"e"},
		Usage:   "Entity id (defaults to SG_ID_ENTIDAD)",
	}
}
