package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckpeek/deckpeek/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long: `Start the HTTP server hosting the display-surface websocket channel,
converted-artifact serving, and health probes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := loadLogger()

		cfg, err := server.LoadConfig()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load server config",
				"error", err,
			)
			os.Exit(1)
		}

		logger.InfoContext(ctx, "preview server starting",
			"port", cfg.Port,
			"scratch_root", cfg.ScratchRoot,
			"endpoints", []string{"/session", "/pdf/", "/health/live", "/health/ready"},
		)

		srv, err := server.NewServer(cfg, logger)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create preview server",
				"error", err,
			)
			os.Exit(1)
		}

		if err := srv.ListenAndServe(); err != nil {
			logger.ErrorContext(ctx, "failed to start preview server",
				"error", err,
			)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
