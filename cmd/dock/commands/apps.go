package commands

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/ui/output"
)

// monitorPoll is how often `open` checks on a login watch it started.
const monitorPoll = 500 * time.Millisecond

func (c *CLI) newAppsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List the launchable apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apps := c.app.ListApps()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(apps)
			}

			p := output.NewPrinter(cmd.OutOrStdout())
			for i := range apps {
				app := &apps[i]
				target := app.LaunchURL()
				if app.SpecialHandler != domain.HandlerNone {
					target = string(app.SpecialHandler)
				}
				if target == "" {
					target = "-"
				}
				p.Item("%s %-10s %-12s %s", app.Icon, app.Label(), app.Category, target)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func (c *CLI) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <app>",
		Short: "Open an app by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.NewPrinter(cmd.OutOrStdout())

			result, err := c.app.OpenApp(ctx, args[0])
			if err != nil {
				return err
			}
			if !result.Success {
				p.Failure("%s", result.Message)
				return nil
			}
			p.Success("%s", result.Message)

			// The login watch runs in the background; stay until it ends.
			if result.Action == domain.ActionOpenPopup {
				status := c.waitForMonitor(ctx)
				printRun(p, status)
			}
			return nil
		},
	}
}

func (c *CLI) waitForMonitor(ctx context.Context) domain.RunStatus {
	ticker := time.NewTicker(monitorPoll)
	defer ticker.Stop()

	for {
		status := c.app.MonitorStatus()
		if !status.Active {
			return status
		}
		select {
		case <-ctx.Done():
			return c.app.MonitorStatus()
		case <-ticker.C:
		}
	}
}

func printRun(p *output.Printer, status domain.RunStatus) {
	switch status.LastResult {
	case domain.RunResultSucceeded:
		p.Success("finished at %s", status.LastURL)
	case domain.RunResultNone:
		p.Item("still running")
	default:
		p.Failure("%s: %s", status.LastResult, status.LastError)
	}
}
