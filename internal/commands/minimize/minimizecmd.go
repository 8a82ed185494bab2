// Package minimize implements the "minimize" command, which rewrites
// pinned dependency versions in the manifest to their minimal
// compatible versions.
package minimize

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"minver/internal/config"
	"minver/internal/core"
	"minver/internal/dependencies"
	"minver/internal/operations"
	"minver/internal/printer"
	"minver/internal/tui"
)

// Run returns the "minimize" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "minimize",
		Usage:     "Rewrite pinned dependency versions to their minimal compatible versions",
		UsageText: "minver minimize [--dev] [--yes] [--no-backup]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Operate on dev-dependencies instead of dependencies",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "no-backup",
				Usage: "Do not write a backup copy before rewriting",
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
	backup := cfg.BackupEnabled() && !cmd.Bool("no-backup")

	op := operations.NewMinimizeOperation(core.NewOSFileSystem(), group, backup, cfg.BackupSuffix)

	plan, err := op.Plan(ctx, path)
	if err != nil {
		return err
	}

	if len(plan.Changes) == 0 {
		printer.PrintSuccess(fmt.Sprintf("All %d %s in %s are already minimal.", plan.Total, group, path))
		return nil
	}

	printChanges(plan)

	if !cmd.Bool("yes") && tui.IsInteractive() {
		confirmed, err := tui.ConfirmFn(
			fmt.Sprintf("Rewrite %d of %d %s in %s?", len(plan.Changes), plan.Total, group, path),
			"The manifest is edited in place; only version literals change.",
		)
		if err != nil {
			return err
		}
		if !confirmed {
			printer.PrintFaint("Aborted, nothing written.")
			return nil
		}
	}

	result, err := op.Execute(ctx, path)
	if err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Updated %d of %d %s in %s.", len(result.Changes), result.Total, group, path))
	if result.BackupPath != "" {
		printer.PrintFaint("Backup written to " + result.BackupPath)
	}
	return nil
}

func printChanges(result *operations.Result) {
	fmt.Println("Minimize dependencies")
	for _, change := range result.Changes {
		fmt.Printf("  %s %s %s\n",
			printer.SuccessBadge("✓"),
			change.Name,
			printer.Faint(change.From.String()+" -> "+change.To.String()),
		)
	}
}
