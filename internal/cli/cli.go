// Package cli wires the root command for the minver CLI.
package cli

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"minver/internal/commands/minimize"
	"minver/internal/commands/show"
	"minver/internal/config"
	"minver/internal/printer"
	"minver/internal/version"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the minver cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "minver",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Assign minimal dependency versions in TOML manifests",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "Path to the manifest file",
				Value:       cfg.Path,
				DefaultText: config.DefaultManifestPath,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			minimize.Run(cfg),
			show.Run(cfg),
		},
	}
}
