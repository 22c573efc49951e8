package commands

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/ui/output"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Inspect the pinned dependency manifest",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [file]",
		Short: "Parse and validate the manifest (default " + domain.DefaultManifestFile + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := output.NewPrinter(cmd.OutOrStdout())

			m, err := c.app.CheckManifest(firstArg(args))
			if m == nil {
				return err
			}
			for _, d := range m.Dependencies() {
				p.Item("%s", d.String())
			}
			if err == nil {
				p.Success("%d dependencies pinned", len(m.Dependencies()))
				return nil
			}

			for _, problem := range problems(err) {
				p.Failure("%s", problem.Error())
			}
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list [file]",
		Short: "Print the active records in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.app.ReadManifest(firstArg(args))
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), m.Format())
			return err
		},
	})

	return cmd
}

// problems flattens joined validation errors, dropping the summary entry.
func problems(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		if errors.Is(e, domain.ErrManifestInvalid) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
