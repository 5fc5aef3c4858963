package anim

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// AssetsRoot is the directory all image
// references of a project must resolve within.
type AssetsRoot struct {
	dir string
}

// NewAssetsRoot returns the assets root located at dir.
func NewAssetsRoot(dir string) (AssetsRoot, error) {
	abs, err := filepath.Abs(dir)

	if err != nil {
		return AssetsRoot{}, fmt.Errorf("resolve assets root %q: %w", dir, err)
	}

	return AssetsRoot{dir: abs}, nil
}

// Dir returns the absolute path of the assets root.
func (root AssetsRoot) Dir() string {
	return root.dir
}

// Rel converts an absolute or root-relative path into
// a slash-separated path relative to the assets root.
func (root AssetsRoot) Rel(p string) (string, error) {
	if root.dir == "" {
		return "", fmt.Errorf("resolve %q: %w: no assets root", p, ErrPathOutsideAssets)
	}

	abs := p

	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root.dir, filepath.FromSlash(p))
	}

	rel, err := filepath.Rel(root.dir, filepath.Clean(abs))

	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", p, ErrPathOutsideAssets)
	}

	rel = filepath.ToSlash(rel)

	if !inside(rel) {
		return "", fmt.Errorf("resolve %q: %w", p, ErrPathOutsideAssets)
	}

	// Symlinks below the root must not lead out of it.
	resolved, err := filepath.Rel(resolveExisting(root.dir), resolveExisting(filepath.Clean(abs)))

	if err != nil || !inside(filepath.ToSlash(resolved)) {
		return "", fmt.Errorf("resolve %q: %w: links outside", p, ErrPathOutsideAssets)
	}

	return rel, nil
}

func inside(rel string) bool {
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, "../")
}

// resolveExisting evaluates the symlinks of the longest
// existing prefix of p and appends the missing rest.
func resolveExisting(p string) string {
	var rest []string

	for {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}

		parent := filepath.Dir(p)

		if parent == p {
			return filepath.Join(append([]string{p}, rest...)...)
		}

		rest = append([]string{filepath.Base(p)}, rest...)
		p = parent
	}
}

// Abs resolves a reference stored in a document
// to an absolute path on disk.
func (root AssetsRoot) Abs(rel string) string {
	return filepath.Join(root.dir, filepath.FromSlash(rel))
}

// validReference reports whether a persisted image
// reference is relative and stays within its root.
func validReference(rel string) bool {
	if rel == "" || path.IsAbs(rel) || filepath.IsAbs(rel) {
		return false
	}

	return inside(path.Clean(rel))
}
