package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckpeek/deckpeek/internal/converter"
	"github.com/deckpeek/deckpeek/internal/server"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the LibreOffice installation",
	Long:  `Resolve the converter location for this platform and run the availability probe.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := loadLogger()

		cfg, err := server.LoadConfig()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load config",
				"error", err,
			)
			os.Exit(1)
		}

		binary := cfg.SofficePath
		if binary == "" {
			binary = converter.Resolve()
		}

		prober := converter.NewProber(converter.NewRunner(), binary, 0, logger)
		if prober.CheckInstalled(ctx) {
			fmt.Printf("LibreOffice is installed: %s\n", binary)
			return
		}

		fmt.Printf("LibreOffice not found (looked for %s)\n", binary)
		fmt.Println("Install it from https://www.libreoffice.org/download/")
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
