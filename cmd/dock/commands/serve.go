package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the desktop front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("host") {
				c.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				c.cfg.Server.Port = port
			}
			return c.app.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", c.cfg.Server.Host, "Address to listen on")
	cmd.Flags().IntVarP(&port, "port", "p", c.cfg.Server.Port, "Port to listen on")
	return cmd
}
