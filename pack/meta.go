package pack

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// SheetMeta is spritesheet metadata
// read from the manifest YAML file.
type SheetMeta struct {
	Name      string `yaml:"name"`
	Tag       string `yaml:"tag"`
	TextureID string `yaml:"textureID"`
	Sheet     string `yaml:"sheet"`
}

// ReadManifest parses the manifest contents.
func ReadManifest(contents []byte) ([]SheetMeta, error) {
	var sheets []SheetMeta

	if err := yaml.Unmarshal(contents, &sheets); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	names := map[string]bool{}

	for i, meta := range sheets {
		if meta.Name == "" {
			return nil, fmt.Errorf("manifest entry %d: name is required", i)
		}

		if meta.Sheet == "" {
			return nil, fmt.Errorf("manifest entry %q: sheet is required", meta.Name)
		}

		if names[meta.Name] {
			return nil, fmt.Errorf("manifest entry %q: defined twice", meta.Name)
		}

		names[meta.Name] = true
	}

	return sheets, nil
}

// LoadManifest reads the manifest at path. Sheet
// paths are resolved against the manifest directory.
func LoadManifest(path string) ([]SheetMeta, error) {
	contents, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	sheets, err := ReadManifest(contents)

	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)

	for i := range sheets {
		if !filepath.IsAbs(sheets[i].Sheet) {
			sheets[i].Sheet = filepath.Join(dir, filepath.FromSlash(sheets[i].Sheet))
		}
	}

	return sheets, nil
}
