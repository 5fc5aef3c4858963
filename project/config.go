package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the project descriptor
// at the root of every project.
const ConfigFile = "project.toml"

var (
	ErrInvalidProject = errors.New("invalid project")
	ErrNotEmpty       = errors.New("directory is not empty")
	ErrNotImage       = errors.New("not an image file")
)

// Config is the content of project.toml.
type Config struct {
	Name         string `toml:"name"`
	Version      string `toml:"version"`
	WindowTitle  string `toml:"window_title"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
}

// DefaultConfig returns the descriptor
// written for a new project.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		Version:      "0.1.0",
		WindowTitle:  name,
		WindowWidth:  1200,
		WindowHeight: 900,
	}
}

// LoadConfig reads a project descriptor. The
// descriptor must define both name and version.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)

	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidProject, path, err)
	}

	if !meta.IsDefined("name") || !meta.IsDefined("version") {
		return Config{}, fmt.Errorf("%w: %s: name and version are required",
			ErrInvalidProject, path)
	}

	return cfg, nil
}

// SaveConfig writes a project descriptor.
func SaveConfig(path string, cfg Config) error {
	var buf bytes.Buffer

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
