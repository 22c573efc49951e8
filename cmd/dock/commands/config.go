package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/ui/output"
	"go.trai.ch/zerr"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage " + domain.ConfigFileName,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			if path == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return zerr.Wrap(err, "failed to get working directory")
				}
				path = filepath.Join(cwd, domain.ConfigFileName)
			}

			if err := c.app.InitConfig(path, force); err != nil {
				return err
			}
			output.NewPrinter(cmd.OutOrStdout()).Success("wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
