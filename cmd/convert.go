package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckpeek/deckpeek/internal/converter"
	"github.com/deckpeek/deckpeek/internal/scratch"
	"github.com/deckpeek/deckpeek/internal/server"
)

var convertToImages bool

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a presentation file once and print the output path",
	Args:  cobra.ExactArgs(1),
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

		source, err := filepath.Abs(args[0])
		if err != nil {
			logger.ErrorContext(ctx, "failed to resolve source path",
				"error", err,
				"source", args[0],
			)
			os.Exit(1)
		}

		pipeline, err := buildPipeline(cfg, logger)
		if err != nil {
			logger.ErrorContext(ctx, "failed to build pipeline",
				"error", err,
			)
			os.Exit(1)
		}

		if convertToImages {
			images, err := pipeline.ConvertToImages(ctx, source)
			if err != nil {
				logger.ErrorContext(ctx, "conversion failed",
					"error", err,
					"source", source,
				)
				os.Exit(1)
			}
			for _, path := range images {
				fmt.Println(path)
			}
			return
		}

		output, err := pipeline.ConvertToPDF(ctx, source)
		if err != nil {
			logger.ErrorContext(ctx, "conversion failed",
				"error", err,
				"source", source,
			)
			os.Exit(1)
		}
		fmt.Println(output)
	},
}

// buildPipeline assembles a conversion pipeline from the env config
func buildPipeline(cfg server.Config, logger *slog.Logger) (*converter.Pipeline, error) {
	probeTimeout, err := time.ParseDuration(cfg.ProbeTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse probe timeout: %w", err)
	}
	convertTimeout, err := time.ParseDuration(cfg.ConvertTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse convert timeout: %w", err)
	}

	dir, err := scratch.New(scratch.Config{
		Root:   cfg.ScratchRoot,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return converter.NewPipeline(converter.Config{
		Binary:         cfg.SofficePath,
		Scratch:        dir,
		ProbeTimeout:   probeTimeout,
		ConvertTimeout: convertTimeout,
		Logger:         logger,
	}), nil
}

func init() {
	convertCmd.Flags().BoolVar(&convertToImages, "images", false, "produce a page-image sequence instead of a PDF")
	rootCmd.AddCommand(convertCmd)
}
