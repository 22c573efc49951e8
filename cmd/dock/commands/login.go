package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/ui/output"
)

func (c *CLI) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Open the creator center and wait for you to log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := c.app.WatchLogin(cmd.Context())
			if err != nil {
				return err
			}
			p := output.NewPrinter(cmd.OutOrStdout())
			p.Success("logged in as %s (%d cookies saved)", record.Username, len(record.Cookies))
			return nil
		},
	}
}

func (c *CLI) newStatusCmd() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := output.NewPrinter(cmd.OutOrStdout())

			status := c.app.LoginStatus()
			if status.LoggedIn {
				p.Success("logged in as %s since %s", status.Username, status.LoginTime.Format(time.DateTime))
			} else {
				p.Failure("not logged in")
			}

			if !history {
				return nil
			}
			logins, err := c.app.Logins()
			if err != nil {
				return err
			}
			for _, l := range logins {
				p.Item("%s  %s  %s (%d cookies)", l.LoginTime.Format(time.DateTime), l.Username, l.File, l.Cookies)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Also list every saved login")
	return cmd
}

func (c *CLI) newPublishCmd() *cobra.Command {
	var job domain.PublishJob

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a video with the saved login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := c.app.Publish(cmd.Context(), job)
			if err != nil {
				return err
			}
			output.NewPrinter(cmd.OutOrStdout()).Success("published, landed on %s", url)
			return nil
		},
	}

	cmd.Flags().StringVar(&job.VideoPath, "video", "", "Path of the video to upload")
	cmd.Flags().StringVar(&job.Title, "title", "", "Title of the post")
	_ = cmd.MarkFlagRequired("video")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
