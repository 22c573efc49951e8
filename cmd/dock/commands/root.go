// Package commands implements the CLI commands for dock.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/dock/internal/build"
	"go.trai.ch/dock/internal/core/domain"
)

// CLI represents the command line interface for dock.
type CLI struct {
	app     Application
	cfg     *domain.Config
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Serve(ctx context.Context) error
	ListApps() []domain.App
	OpenApp(ctx context.Context, name string) (domain.OpenResult, error)
	MonitorStatus() domain.RunStatus
	WatchLogin(ctx context.Context) (*domain.LoginRecord, error)
	LoginStatus() domain.LoginStatus
	Logins() ([]domain.LoginSummary, error)
	Publish(ctx context.Context, job domain.PublishJob) (string, error)
	CheckManifest(path string) (*domain.Manifest, error)
	ReadManifest(path string) (*domain.Manifest, error)
	InitConfig(path string, force bool) error
}

// Globals are the root flags read before the application is built.
type Globals struct {
	ConfigPath string
	JSONLogs   bool
}

// ParseGlobals extracts the global flags from args, ignoring everything else.
func ParseGlobals(args []string) Globals {
	var g Globals
	fs := pflag.NewFlagSet("globals", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVarP(&g.ConfigPath, "config", "c", "", "")
	fs.BoolVar(&g.JSONLogs, "json-logs", false, "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return g
}

// New creates a new CLI instance with the given app.
// cfg is the configuration shared with the app; serve flags are applied to it.
func New(a Application, cfg *domain.Config) *CLI {
	rootCmd := &cobra.Command{
		Use:           "dock",
		Short:         "Backend for the desktop app launcher",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to "+domain.ConfigFileName)
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	c := &CLI{
		app:     a,
		cfg:     cfg,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newAppsCmd())
	rootCmd.AddCommand(c.newOpenCmd())
	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
