package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stsysd/calheat/api"
)

func newServeCmd(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				app.Config.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(app.Registry, app.Source, app.Config, app.Logger)
			return server.Run(ctx, app.Config.Addr())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides CALHEAT_SERVER_PORT)")
	return cmd
}
