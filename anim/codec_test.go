package anim

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func sampleSet(t *testing.T) *Set {
	t.Helper()

	s := NewSet()
	s.imageRef = "chars/hero.png"

	if err := s.SetTileSize(32, 24); err != nil {
		t.Fatalf("set tile size: %v", err)
	}
	if err := s.SetDefaultRate(10); err != nil {
		t.Fatalf("set default rate: %v", err)
	}

	for _, name := range []string{"walk", "idle", "empty", "jump attack"} {
		if err := s.AddState(name); err != nil {
			t.Fatalf("add state: %v", err)
		}
	}

	_, _ = s.AddFrame("walk", Tile(0, 0))
	_, _ = s.AddFrame("walk", Tile(32, 0))
	_, _ = s.AddFrame("walk", Tile(64, 0))
	_, _ = s.AddFrame("idle", Tile(0, 24))
	_, _ = s.AddFrame("jump attack", Tile(96, 48))
	_, _ = s.AddFrame("jump attack", Tile(0, 24))
	_ = s.SetRate("idle", 4)
	_ = s.SetRate("jump attack", 240)

	return s
}

func assertSameDocument(t *testing.T, want, got *Set) {
	t.Helper()

	if got.ImageReference() != want.ImageReference() {
		t.Fatalf("image reference: want %q, got %q", want.ImageReference(), got.ImageReference())
	}
	if gw, gh := got.TileSize(); gw != want.tileWidth || gh != want.tileHeight {
		t.Fatalf("tile size: want %dx%d, got %dx%d", want.tileWidth, want.tileHeight, gw, gh)
	}
	if got.DefaultRate() != want.DefaultRate() {
		t.Fatalf("fps: want %d, got %d", want.DefaultRate(), got.DefaultRate())
	}
	if got.Len() != want.Len() {
		t.Fatalf("want %d states, got %d", want.Len(), got.Len())
	}

	for _, name := range want.StateNames() {
		ws, _ := want.State(name)
		gs, ok := got.State(name)

		if !ok {
			t.Fatalf("state %q missing", name)
		}
		if gs.Name != ws.Name || gs.Rate != ws.Rate || !slices.Equal(gs.Frames, ws.Frames) {
			t.Fatalf("state %q: want %+v, got %+v", name, ws, gs)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			want := sampleSet(t)

			var buf bytes.Buffer
			if err := want.Save(&buf, format); err != nil {
				t.Fatalf("save: %v", err)
			}
			if want.IsModified() {
				t.Fatal("save must clear modified")
			}

			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("decode: %v\n%s", err, buf.String())
			}

			assertSameDocument(t, want, got)

			if got.IsModified() {
				t.Fatal("decoded document must not be modified")
			}
		})
	}
}

func TestYAMLKeepsStateOrder(t *testing.T) {
	want := sampleSet(t)

	var buf bytes.Buffer
	if err := want.Save(&buf, FormatYAML); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Decode(&buf, FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !slices.Equal(got.StateNames(), want.StateNames()) {
		t.Fatalf("want order %v, got %v", want.StateNames(), got.StateNames())
	}
}

func TestDecodeTOMLKeepsDocumentOrder(t *testing.T) {
	doc := `
image_path = "hero.png"

[states.walk]
frames = [[0, 0]]

[states.attack]
frames = [[16, 0]]

[states.idle]
frames = []
`

	s, err := Decode(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got := s.StateNames(); !slices.Equal(got, []string{"walk", "attack", "idle"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestSaveWithoutImage(t *testing.T) {
	s := NewSet()
	_ = s.AddState("walk")

	var buf bytes.Buffer
	if err := s.Save(&buf, FormatTOML); !errors.Is(err, ErrNoImageReference) {
		t.Fatalf("expected ErrNoImageReference, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", buf.String())
	}
	if !s.IsModified() {
		t.Fatal("failed save must keep modified")
	}
}

func TestDecodeDefaults(t *testing.T) {
	s, err := Decode(strings.NewReader(`image_path = "a.png"`), FormatTOML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if w, h := s.TileSize(); w != 16 || h != 16 {
		t.Fatalf("expected 16x16, got %dx%d", w, h)
	}
	if s.DefaultRate() != 12 || s.Len() != 0 {
		t.Fatalf("unexpected document %+v", s)
	}
}

func TestDecodeStateRateDefaultsToDocument(t *testing.T) {
	doc := `
image_path = "a.png"
fps = 8

[states.walk]
frames = [[0, 0]]

[states.run]
frames = [[0, 0]]
fps = 20
`

	s, err := Decode(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if st, _ := s.State("walk"); st.Rate != 8 {
		t.Fatalf("walk: expected document rate 8, got %d", st.Rate)
	}
	if st, _ := s.State("run"); st.Rate != 20 {
		t.Fatalf("run: expected own rate 20, got %d", st.Rate)
	}
}

func TestDecodeSkipsMalformedFrames(t *testing.T) {
	docs := map[Format]string{
		FormatTOML: `
image_path = "a.png"

[states.walk]
frames = [[1, 2], [3, "x"], [4], [5, 6, 7], "8", [9.5, 1], [10, 11]]
`,
		FormatYAML: `
image_path: a.png
states:
  walk:
    frames: [[1, 2], [3, "x"], [4], [5, 6, 7], "8", [9.5, 1], [10, 11]]
`,
	}

	for format, doc := range docs {
		t.Run(format.String(), func(t *testing.T) {
			s, err := Decode(strings.NewReader(doc), format)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			st, ok := s.State("walk")
			want := []TilePosition{Tile(1, 2), Tile(10, 11)}

			if !ok || !slices.Equal(st.Frames, want) {
				t.Fatalf("expected %v, got %v", want, st.Frames)
			}
		})
	}
}

func TestDecodeEmptyStateBody(t *testing.T) {
	docs := map[Format]string{
		FormatTOML: `
image_path = "a.png"

[states.walk]

[states.idle]
`,
		FormatYAML: `
image_path: a.png
fps:
states:
  walk:
  idle: {}
`,
	}

	for format, doc := range docs {
		t.Run(format.String(), func(t *testing.T) {
			s, err := Decode(strings.NewReader(doc), format)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if got := s.StateNames(); !slices.Equal(got, []string{"walk", "idle"}) {
				t.Fatalf("expected states [walk idle], got %v", got)
			}
			if s.DefaultRate() != DefaultRate {
				t.Fatalf("null fps should fall back to %d, got %d", DefaultRate, s.DefaultRate())
			}

			st, _ := s.State("walk")
			if len(st.Frames) != 0 || st.Rate != DefaultRate {
				t.Fatalf("unexpected state %+v", st)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{name: "unparsable toml", format: FormatTOML, doc: `image_path = `},
		{name: "unparsable yaml", format: FormatYAML, doc: "image_path: [a\n"},
		{name: "yaml list", format: FormatYAML, doc: "- a\n- b\n"},
		{name: "width string", format: FormatTOML, doc: `width = "16"`},
		{name: "height zero", format: FormatTOML, doc: `height = 0`},
		{name: "fps float", format: FormatTOML, doc: `fps = 12.5`},
		{name: "image int", format: FormatTOML, doc: `image_path = 3`},
		{name: "image absolute", format: FormatTOML, doc: `image_path = "/tmp/a.png"`},
		{name: "image escapes", format: FormatTOML, doc: `image_path = "../a.png"`},
		{name: "states scalar", format: FormatTOML, doc: `states = 1`},
		{name: "state scalar", format: FormatTOML, doc: "[states]\nwalk = 1"},
		{name: "frames scalar", format: FormatTOML, doc: "[states.walk]\nframes = 1"},
		{name: "state fps string", format: FormatTOML, doc: "[states.walk]\nfps = \"x\""},
		{name: "duplicate yaml state", format: FormatYAML, doc: "states:\n  walk: {frames: []}\n  walk: {frames: []}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)

			if !errors.Is(err, ErrMalformedDocument) {
				t.Fatalf("expected ErrMalformedDocument, got %v", err)
			}
		})
	}
}

func TestLoadBindsFirstState(t *testing.T) {
	doc := `
image_path: a.png
states:
  idle:
    frames: [[8, 8], [16, 8]]
  walk:
    frames: [[0, 0]]
`

	s := NewSet()
	if err := s.Load(strings.NewReader(doc), FormatYAML); err != nil {
		t.Fatalf("load: %v", err)
	}

	c := s.Cursor()
	name, _ := c.State()
	frame, bound := c.Frame()

	if name != "idle" || !bound || frame != 0 || c.Position() != Tile(8, 8) {
		t.Fatalf("expected cursor on idle[0] at (8, 8), got %q[%d] %v at %v", name, frame, bound, c.Position())
	}
}

func TestLoadFailureKeepsDocument(t *testing.T) {
	s := sampleSet(t)

	err := s.Load(strings.NewReader(`width = "wide"`), FormatTOML)
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}

	assertSameDocument(t, sampleSet(t), s)

	if !s.IsModified() {
		t.Fatal("failed load must not clear modified")
	}
}

func TestLoadFileMissing(t *testing.T) {
	s := NewSet()

	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatalf("missing file should be a no-op, got %v", err)
	}
	if s.Len() != 0 || s.ImageReference() != "" {
		t.Fatal("missing file changed the document")
	}

	s = sampleSet(t)
	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatalf("missing file should be a no-op, got %v", err)
	}
	assertSameDocument(t, sampleSet(t), s)
}

func TestSaveFileLoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"hero.toml", "nested/hero.yml"} {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(dir, name)
			want := sampleSet(t)

			if err := want.SaveFile(filename); err != nil {
				t.Fatalf("save file: %v", err)
			}

			entries, err := os.ReadDir(filepath.Dir(filename))
			if err != nil {
				t.Fatalf("read dir: %v", err)
			}
			for _, entry := range entries {
				if strings.HasPrefix(entry.Name(), ".") {
					t.Fatalf("temporary file left behind: %s", entry.Name())
				}
			}

			got := NewSet()
			if err := got.LoadFile(filename); err != nil {
				t.Fatalf("load file: %v", err)
			}

			assertSameDocument(t, want, got)
		})
	}
}

func TestSaveFileKeepsMode(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "hero.toml")
	set := sampleSet(t)

	assertMode := func(want os.FileMode) {
		t.Helper()

		info, err := os.Stat(filename)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := info.Mode().Perm(); got != want {
			t.Fatalf("expected mode %v, got %v", want, got)
		}
	}

	if err := set.SaveFile(filename); err != nil {
		t.Fatalf("save file: %v", err)
	}
	assertMode(0644)

	if err := os.Chmod(filename, 0640); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := set.SaveFile(filename); err != nil {
		t.Fatalf("save file: %v", err)
	}
	assertMode(0640)
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"a.toml": FormatTOML,
		"a.yml":  FormatYAML,
		"a.YAML": FormatYAML,
		"a":      FormatTOML,
	}

	for name, want := range tests {
		if got := FormatFor(name); got != want {
			t.Errorf("FormatFor(%q) = %v, want %v", name, got, want)
		}
	}
}
