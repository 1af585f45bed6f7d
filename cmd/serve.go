package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/server"
)

// NewServeCmd creates the `serve` command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the course locally and rebuild on changes",
		Long: `Builds the course and serves it over HTTP, watching the content, layouts
and static directories. Any change triggers a rebuild and reloads connected
browsers over a websocket.

Examples:
  # Serve on the default port (1313, or serve.port from course.yml)
  lectern serve

  # Serve on a specific port and open a browser
  lectern serve --port 8080 --open

  # Preview draft pages too
  lectern serve --drafts
`,
		RunE: runServeE,
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides serve.port)")
	cmd.Flags().Bool("open", false, "Open the site in the default browser")
	cmd.Flags().Bool("drafts", false, "Build pages marked as drafts")

	return cmd
}

func runServeE(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	open, _ := cmd.Flags().GetBool("open")
	drafts, _ := cmd.Flags().GetBool("drafts")

	// --open wins when given; otherwise serve.open from course.yml decides.
	if !cmd.Flags().Changed("open") {
		open = cfg.ServeOpen()
	}

	srv := server.New(cfg, server.Options{
		Port:   port,
		Open:   open,
		Drafts: drafts,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
