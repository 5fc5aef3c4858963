// Package project manages the on-disk layout of a game
// project and the documents opened from it.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alacrity-engine/anim-editor/anim"
)

// Project directories.
const (
	AssetsDir       = "assets"
	GlobalDir       = "global"
	SpritesheetsDir = "spritesheets"
	StagesDir       = "stages"
	ActorsDir       = "actors"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// Project is an opened project directory.
type Project struct {
	dir    string
	config Config
	assets anim.AssetsRoot
}

// IsDirEmpty reports whether dir is a directory
// without entries.
func IsDirEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)

	if err != nil {
		return false, err
	}

	return len(entries) == 0, nil
}

// Create lays out a new project in dir, which must be
// missing or empty, and opens it.
func Create(dir string) (*Project, error) {
	empty, err := IsDirEmpty(dir)

	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("create project: %w", err)
	case !empty:
		return nil, fmt.Errorf("create project in %s: %w", dir, ErrNotEmpty)
	}

	for _, sub := range []string{AssetsDir, GlobalDir, SpritesheetsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
	}

	abs, err := filepath.Abs(dir)

	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	cfg := DefaultConfig(filepath.Base(abs))

	if err := SaveConfig(filepath.Join(dir, ConfigFile), cfg); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return Open(dir)
}

// Open opens the project located in dir.
func Open(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)

	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	cfg, err := LoadConfig(filepath.Join(abs, ConfigFile))

	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	assets, err := anim.NewAssetsRoot(filepath.Join(abs, AssetsDir))

	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	return &Project{
		dir:    abs,
		config: cfg,
		assets: assets,
	}, nil
}

// Dir returns the absolute project directory.
func (p *Project) Dir() string {
	return p.dir
}

// Config returns the descriptor read when
// the project was opened.
func (p *Project) Config() Config {
	return p.config
}

// Assets returns the boundary image references
// must resolve within.
func (p *Project) Assets() anim.AssetsRoot {
	return p.assets
}

// SheetPath returns where the animation document of
// an image is stored: assets/chars/hero.png maps to
// spritesheets/chars/hero.toml.
func (p *Project) SheetPath(imageRef string) string {
	name := strings.TrimSuffix(imageRef, path.Ext(imageRef)) + ".toml"

	return filepath.Join(p.dir, SpritesheetsDir, filepath.FromSlash(name))
}

// IsImage reports whether the file name
// has a known image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))

	for _, known := range imageExtensions {
		if ext == known {
			return true
		}
	}

	return false
}

// OpenSheet opens the animation document of an image
// inside the assets directory. The image may be given
// absolute or relative to the assets root.
func (p *Project) OpenSheet(image string) (*SheetDocument, error) {
	ref, err := p.assets.Rel(image)

	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}

	if !IsImage(ref) {
		return nil, fmt.Errorf("open sheet %s: %w", ref, ErrNotImage)
	}

	doc := NewSheetDocument(p.SheetPath(ref), anim.NewSet())

	if err := doc.set.LoadFile(doc.path); err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}

	if doc.set.ImageReference() == "" {
		if err := doc.set.SetImageReference(p.assets, ref); err != nil {
			return nil, fmt.Errorf("open sheet: %w", err)
		}
	}

	return doc, nil
}

// OpenConfig opens project.toml for editing.
func (p *Project) OpenConfig() (*ConfigDocument, error) {
	return OpenConfigDocument(filepath.Join(p.dir, ConfigFile))
}
