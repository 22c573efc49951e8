// Package main is the entry point for the dock desktop backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/dock/cmd/dock/commands"
	"go.trai.ch/dock/internal/app"
	"go.trai.ch/dock/internal/core/domain"
	_ "go.trai.ch/dock/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		// Background runs outlive a command that returns early on Ctrl-C.
		return c, c.App.Close, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Flags the components depend on
	globals := commands.ParseGlobals(args)
	ctx = domain.WithConfigPath(ctx, globals.ConfigPath)

	// 2. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	if j, ok := components.Logger.(jsonSwitcher); ok && globals.JSONLogs {
		j.SetJSON(true)
	}

	// 3. Interface - CLI
	cli := commands.New(components.App, components.Config)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		// Already reported line by line.
		if errors.Is(err, domain.ErrManifestInvalid) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
