package anim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Format is the on-disk syntax of a document.
type Format int

const (
	// FormatTOML is the syntax read by the engine.
	FormatTOML Format = iota
	// FormatYAML keeps states in insertion order.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"

	case FormatYAML:
		return "yaml"

	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor picks the format from the file extension.
// Unknown extensions are treated as TOML.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yml", ".yaml":
		return FormatYAML

	default:
		return FormatTOML
	}
}

// Document keys.
const (
	keyImagePath = "image_path"
	keyWidth     = "width"
	keyHeight    = "height"
	keyFPS       = "fps"
	keyStates    = "states"
	keyFrames    = "frames"
)

// field is one key of a decoded table,
// kept in document order.
type field struct {
	key   string
	value interface{}
}

// Encode writes the document to w.
func Encode(w io.Writer, s *Set, format Format) error {
	if s.imageRef == "" {
		return fmt.Errorf("encode document: %w", ErrNoImageReference)
	}

	switch format {
	case FormatTOML:
		return encodeTOML(w, s)

	case FormatYAML:
		return encodeYAML(w, s)

	default:
		return fmt.Errorf("encode document: unknown format %v", format)
	}
}

// Decode reads a document from r. Frames which are not
// a pair of integers are skipped; any other structural
// problem fails with ErrMalformedDocument.
func Decode(r io.Reader, format Format) (*Set, error) {
	data, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var top []field

	switch format {
	case FormatTOML:
		top, err = decodeTOML(data)

	case FormatYAML:
		top, err = decodeYAML(data)

	default:
		return nil, fmt.Errorf("decode document: unknown format %v", format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	s, err := build(top)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	return s, nil
}

// Save writes the document to w and clears
// the modified flag.
func (s *Set) Save(w io.Writer, format Format) error {
	if err := Encode(w, s, format); err != nil {
		return err
	}

	s.modified = false

	return nil
}

// Load replaces the document with the one read from r.
// On failure the document is left as it was.
func (s *Set) Load(r io.Reader, format Format) error {
	loaded, err := Decode(r, format)

	if err != nil {
		return err
	}

	*s = *loaded

	return nil
}

// SaveFile writes the document to filename, replacing
// the previous file only once the new one is complete.
func (s *Set) SaveFile(filename string) error {
	var buf bytes.Buffer

	if err := Encode(&buf, s, FormatFor(filename)); err != nil {
		return err
	}

	if err := writeFileAtomic(filename, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}

	s.modified = false

	return nil
}

// LoadFile loads the document from filename.
// A missing file is not an error and leaves
// the document unchanged.
func (s *Set) LoadFile(filename string) error {
	file, err := os.Open(filename)

	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}

	defer file.Close()

	if err := s.Load(file, FormatFor(filename)); err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}

	return nil
}

func writeFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")

	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	mode := fs.FileMode(0644)

	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode().Perm()
	}

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filename)
}

// build turns decoded top-level fields into a document.
func build(top []field) (*Set, error) {
	s := NewSet()
	var states interface{}

	for _, f := range top {
		if f.value == nil {
			continue
		}

		switch f.key {
		case keyImagePath:
			ref, ok := f.value.(string)

			if !ok {
				return nil, fmt.Errorf("%s: expected string, got %T", f.key, f.value)
			}

			if ref != "" {
				if !validReference(ref) {
					return nil, fmt.Errorf("%s: %q is not relative to the assets root", f.key, ref)
				}

				ref = path.Clean(ref)
			}

			s.imageRef = ref

		case keyWidth, keyHeight, keyFPS:
			n, ok := toInt(f.value)

			if !ok {
				return nil, fmt.Errorf("%s: expected integer, got %T", f.key, f.value)
			}

			if n <= 0 {
				return nil, fmt.Errorf("%s: must be positive, got %d", f.key, n)
			}

			switch f.key {
			case keyWidth:
				s.tileWidth = n

			case keyHeight:
				s.tileHeight = n

			default:
				s.defaultRate = n
			}

		case keyStates:
			states = f.value
		}
	}

	if states != nil {
		entries, ok := toFields(states)

		if !ok {
			return nil, fmt.Errorf("%s: expected table, got %T", keyStates, states)
		}

		for _, entry := range entries {
			st, err := buildState(entry, s.defaultRate)

			if err != nil {
				return nil, err
			}

			if _, ok := s.states[st.Name]; ok {
				return nil, fmt.Errorf("state %q defined twice", st.Name)
			}

			s.insert(st)
		}
	}

	s.bindFirst()
	s.modified = false

	return s, nil
}

func buildState(entry field, rate int) (*State, error) {
	if entry.key == "" {
		return nil, fmt.Errorf("state with empty name")
	}

	// A state without a body has no frames.
	var body []field
	ok := true

	if entry.value != nil {
		body, ok = toFields(entry.value)
	}

	if !ok {
		return nil, fmt.Errorf("state %q: expected table, got %T", entry.key, entry.value)
	}

	st := &State{
		Name:   entry.key,
		Rate:   rate,
		Frames: []TilePosition{},
	}

	for _, f := range body {
		if f.value == nil {
			continue
		}

		switch f.key {
		case keyFrames:
			items, ok := f.value.([]interface{})

			if !ok {
				return nil, fmt.Errorf("state %q: %s: expected array, got %T",
					entry.key, f.key, f.value)
			}

			for _, item := range items {
				if pos, ok := toTile(item); ok {
					st.Frames = append(st.Frames, pos)
				}
			}

		case keyFPS:
			n, ok := toInt(f.value)

			if !ok {
				return nil, fmt.Errorf("state %q: %s: expected integer, got %T",
					entry.key, f.key, f.value)
			}

			if n <= 0 {
				return nil, fmt.Errorf("state %q: %s: must be positive, got %d",
					entry.key, f.key, n)
			}

			st.Rate = n
		}
	}

	return st, nil
}

// toTile accepts exactly a pair of integers.
func toTile(v interface{}) (TilePosition, bool) {
	pair, ok := v.([]interface{})

	if !ok || len(pair) != 2 {
		return TilePosition{}, false
	}

	x, ok := toInt(pair[0])

	if !ok {
		return TilePosition{}, false
	}

	y, ok := toInt(pair[1])

	if !ok {
		return TilePosition{}, false
	}

	return Tile(x, y), true
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true

	case int64:
		if n < int64(minInt) || n > int64(maxInt) {
			return 0, false
		}

		return int(n), true

	case uint64:
		if n > uint64(maxInt) {
			return 0, false
		}

		return int(n), true

	default:
		return 0, false
	}
}

// toFields returns the keys of a decoded table. The
// format front ends turn every table into []field.
func toFields(v interface{}) ([]field, bool) {
	fields, ok := v.([]field)

	return fields, ok
}
