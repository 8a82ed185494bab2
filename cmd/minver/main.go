package main

import (
	"context"
	"os"

	"minver/internal/cli"
	"minver/internal/config"
	"minver/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads configuration and runs the root command. Split from main
// for testability.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
