package project

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ExportFile is the game data archive
// read by the engine at startup.
const ExportFile = "data.arpg"

// exportDirs lists the directories packed into the
// archive and the extension files must carry, if any.
var exportDirs = []struct {
	name string
	ext  string
}{
	{name: GlobalDir, ext: ".toml"},
	{name: StagesDir, ext: ".toml"},
	{name: ActorsDir, ext: ".toml"},
	{name: SpritesheetsDir, ext: ".toml"},
	{name: AssetsDir},
}

// Export packs the project into a game data archive
// written to out.
func (p *Project) Export(out string) (err error) {
	file, err := os.Create(out)

	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("export: %w", closeErr)
		}
	}()

	zw := zip.NewWriter(file)

	if err := addFile(zw, filepath.Join(p.dir, ConfigFile), ConfigFile); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	for _, dir := range exportDirs {
		if err := p.addDir(zw, dir.name, dir.ext); err != nil {
			return fmt.Errorf("export %s: %w", dir.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

func (p *Project) addDir(zw *zip.Writer, name, ext string) error {
	if _, err := zw.Create(name + "/"); err != nil {
		return err
	}

	root := filepath.Join(p.dir, name)

	err := filepath.WalkDir(root, func(filename string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		if ext != "" && !strings.EqualFold(filepath.Ext(filename), ext) {
			return nil
		}

		rel, err := filepath.Rel(p.dir, filename)

		if err != nil {
			return err
		}

		return addFile(zw, filename, filepath.ToSlash(rel))
	})

	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func addFile(zw *zip.Writer, filename, name string) error {
	src, err := os.Open(filename)

	if err != nil {
		return err
	}

	defer src.Close()

	dst, err := zw.Create(path.Clean(name))

	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)

	return err
}
