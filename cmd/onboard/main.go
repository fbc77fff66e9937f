// Package main is the entry point for the onboard CLI.
//
// onboard walks a merchant through a short sequence of questions about
// their business, two products and how they get paid, then forwards the
// answers to the onboarding spreadsheet and any configured archives.
//
// Commands: run, serve, submit, steps, version, completion.
//
// For detailed usage information, run:
//
//	onboard --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/onboard/cmd/onboard/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
