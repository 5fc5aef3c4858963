package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/caarlos0/env/v11"
)

// Config holds the global command configuration.
type Config struct {
	Project string `env:"ANIMEDIT_PROJECT" envDefault:"."`
	Verbose bool   `env:"ANIMEDIT_VERBOSE"`
}

// parseConfig reads the environment, then lets the
// global flags override it.
func parseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Project, "project", cfg.Project,
		"Path to the project directory.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose output.")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) logger(errOut io.Writer) *log.Logger {
	if !cfg.Verbose {
		errOut = io.Discard
	}

	return log.New(errOut, "", 0)
}
