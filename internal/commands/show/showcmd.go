// Package show implements the "show" command, which displays the
// dependencies of a manifest and the minimal versions a minimize run
// would assign, without writing anything.
package show

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"minver/internal/config"
	"minver/internal/core"
	"minver/internal/dependencies"
	"minver/internal/manifest"
	"minver/internal/operations"
	"minver/internal/printer"
)

// OutputFormat controls how results are displayed.
type OutputFormat string

const (
	// FormatText outputs human-readable text.
	FormatText OutputFormat = "text"

	// FormatJSON outputs machine-readable JSON.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	if s == "json" {
		return FormatJSON
	}
	return FormatText
}

// depReport is one dependency in the JSON output.
type depReport struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Minimal string `json:"minimal"`
	Changed bool   `json:"changed"`
}

// report is the JSON output document.
type report struct {
	Path         string      `json:"path"`
	Group        string      `json:"group"`
	Dependencies []depReport `json:"dependencies"`
}

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show dependencies and the minimal versions they would be pinned to",
		UsageText: "minver show [--dev] [--format text|json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Operate on dev-dependencies instead of dependencies",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, cfg)
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	path := cmd.String("path")
	group := dependencies.Standard
	if cmd.Bool("dev") {
		group = dependencies.Dev
	}

	fs := core.NewOSFileSystem()
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}

	doc, err := manifest.Parse(data)
	if err != nil {
		return err
	}

	entries, err := dependencies.Fetch(doc, group)
	if err != nil {
		return fmt.Errorf("%s in %q: %w", group, path, err)
	}

	switch ParseOutputFormat(cmd.String("format")) {
	case FormatJSON:
		return printJSON(path, group, entries)
	default:
		printText(path, group, entries)
		return nil
	}
}

func printText(path string, group dependencies.Group, entries []dependencies.Entry) {
	printer.PrintBold(fmt.Sprintf("%s (%s)", path, group))
	for _, entry := range entries {
		current := entry.Handle.Version()
		minimal := operations.Minimize(current)
		if minimal == current {
			fmt.Printf("  %s %s\n", entry.Name, printer.Faint(current.String()))
			continue
		}
		fmt.Printf("  %s %s %s\n",
			entry.Name,
			printer.Faint(current.String()),
			printer.Info("-> "+minimal.String()),
		)
	}
}

func printJSON(path string, group dependencies.Group, entries []dependencies.Entry) error {
	out := report{Path: path, Group: group.String(), Dependencies: make([]depReport, 0, len(entries))}
	for _, entry := range entries {
		current := entry.Handle.Version()
		minimal := operations.Minimize(current)
		out.Dependencies = append(out.Dependencies, depReport{
			Name:    entry.Name,
			Version: current.String(),
			Minimal: minimal.String(),
			Changed: minimal != current,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
