package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/storefront"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Hydrate content and serve the storefront",
	Long: `serve starts the HTTP server. Content is fetched from the gateway in the
background; visitors see a loading notice until it arrives. The server shuts
down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := storefront.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return app.Start(ctx)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":3000", "listen address")
	f.String("url", "http://localhost:3000", "canonical site URL")
	f.String("apiBaseURL", "", "content gateway base URL")
	f.String("fallbackAPIBaseURL", "", "gateway used for collections when apiBaseURL is empty")
	f.Duration("refreshInterval", 0, "refetch content older than this")
	f.Bool("debug", false, "development logging")
}
