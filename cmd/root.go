package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog"
	"github.com/spf13/cobra"
)

// cmdConfig holds all configuration for the command line
type cmdConfig struct {
	Format string `env:"LOG_FORMAT" env-default:"text" env-description:"Log output format (text or json)"`
	Level  string `env:"LOG_LEVEL" env-default:"info" env-description:"Log level (debug, info, warn, error)"`
}

// createLogger creates a slog logger from the configuration
func createLogger(conf cmdConfig) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch conf.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create zerolog logger
	var zerologLogger zerolog.Logger
	if conf.Format == "json" {
		zerologLogger = zerolog.New(os.Stderr)
	} else {
		zerologLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()
	}

	// Create slog handler
	loggerConfig := slogzerolog.Option{
		Level:  level,
		Logger: &zerologLogger,
	}.NewZerologHandler()

	logger := slog.New(loggerConfig)

	// Set as default logger
	log.SetFlags(0)
	slog.SetDefault(logger)

	return logger
}

// loadLogger reads the logging env config and builds the logger
func loadLogger() *slog.Logger {
	var conf cmdConfig
	if err := cleanenv.ReadEnv(&conf); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load command config: %v\n", err)
		os.Exit(1)
	}
	return createLogger(conf)
}

// rootCmd is the base command for the deckpeek CLI
var rootCmd = &cobra.Command{
	Use:   "deckpeek",
	Short: "Preview legacy presentation files via LibreOffice",
	Long: `deckpeek converts presentation files (ppt, pptx, odp, ...) to PDF by
delegating to a local LibreOffice installation, caches the results, and
serves them to a display surface.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
