package server

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the configuration for the preview server
type Config struct {
	Port           int    `env:"PORT" env-default:"8080" env-description:"HTTP server port"`
	ScratchRoot    string `env:"SCRATCH_ROOT" env-default:"" env-description:"Scratch/cache directory (defaults to <temp>/deckpeek)"`
	SofficePath    string `env:"SOFFICE_PATH" env-default:"" env-description:"LibreOffice executable override (defaults to platform resolution)"`
	ProbeTimeout   string `env:"PROBE_TIMEOUT" env-default:"5s" env-description:"Availability probe timeout (e.g. 5s)"`
	ConvertTimeout string `env:"CONVERT_TIMEOUT" env-default:"30s" env-description:"Per-conversion timeout (e.g. 30s)"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithPort sets the server port
func (c Config) WithPort(port int) Config {
	c.Port = port
	return c
}

// WithScratchRoot sets the scratch directory
func (c Config) WithScratchRoot(root string) Config {
	c.ScratchRoot = root
	return c
}

// WithSofficePath sets the converter executable override
func (c Config) WithSofficePath(path string) Config {
	c.SofficePath = path
	return c
}
