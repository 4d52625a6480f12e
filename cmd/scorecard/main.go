// Package main provides the entry point for the scorecard CLI tool.
package main

import (
	"context"
	"os"

	"github.com/sbmops/scorecard/cmd/scorecard/app"
	"github.com/sbmops/scorecard/cmd/scorecard/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := cmd.Execute(ctx, application, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
