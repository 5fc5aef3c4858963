package project

import (
	"fmt"

	"github.com/alacrity-engine/anim-editor/anim"
)

// Document is a file opened for editing.
type Document interface {
	// Path returns the file the document saves to.
	Path() string
	IsModified() bool
	Save() error
}

// SheetDocument is the animation document of a spritesheet.
type SheetDocument struct {
	path string
	set  *anim.Set
}

// NewSheetDocument wraps a document stored at path.
func NewSheetDocument(path string, set *anim.Set) *SheetDocument {
	return &SheetDocument{path: path, set: set}
}

func (d *SheetDocument) Path() string {
	return d.path
}

// Set returns the edited animation set.
func (d *SheetDocument) Set() *anim.Set {
	return d.set
}

func (d *SheetDocument) IsModified() bool {
	return d.set.IsModified()
}

func (d *SheetDocument) Save() error {
	return d.set.SaveFile(d.path)
}

// ConfigDocument edits project.toml.
type ConfigDocument struct {
	path     string
	config   Config
	modified bool
}

// OpenConfigDocument loads the descriptor at path.
func OpenConfigDocument(path string) (*ConfigDocument, error) {
	cfg, err := LoadConfig(path)

	if err != nil {
		return nil, err
	}

	return &ConfigDocument{path: path, config: cfg}, nil
}

func (d *ConfigDocument) Path() string {
	return d.path
}

// Config returns the edited descriptor.
func (d *ConfigDocument) Config() Config {
	return d.config
}

func (d *ConfigDocument) IsModified() bool {
	return d.modified
}

func (d *ConfigDocument) Save() error {
	if err := SaveConfig(d.path, d.config); err != nil {
		return err
	}

	d.modified = false

	return nil
}

func (d *ConfigDocument) SetName(name string) {
	d.update(func(cfg *Config) { cfg.Name = name })
}

func (d *ConfigDocument) SetVersion(version string) {
	d.update(func(cfg *Config) { cfg.Version = version })
}

func (d *ConfigDocument) SetWindowTitle(title string) {
	d.update(func(cfg *Config) { cfg.WindowTitle = title })
}

// SetWindowSize changes the game window size.
// Both sizes must lie in [0, 2000].
func (d *ConfigDocument) SetWindowSize(width, height int) error {
	if width < 0 || width > maxWindowSize || height < 0 || height > maxWindowSize {
		return fmt.Errorf("set window size %dx%d: %w", width, height, anim.ErrOutOfRange)
	}

	d.update(func(cfg *Config) {
		cfg.WindowWidth = width
		cfg.WindowHeight = height
	})

	return nil
}

const maxWindowSize = 2000

func (d *ConfigDocument) update(change func(*Config)) {
	next := d.config
	change(&next)

	if next != d.config {
		d.config = next
		d.modified = true
	}
}
