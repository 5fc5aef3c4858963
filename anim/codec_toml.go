package anim

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

type tomlDocument struct {
	ImagePath string               `toml:"image_path"`
	Width     int                  `toml:"width"`
	Height    int                  `toml:"height"`
	FPS       int                  `toml:"fps"`
	States    map[string]tomlState `toml:"states,omitempty"`
}

type tomlState struct {
	Frames [][]int `toml:"frames"`
	FPS    int     `toml:"fps"`
}

// encodeTOML writes the document. The encoder
// emits state tables sorted by name.
func encodeTOML(w io.Writer, s *Set) error {
	doc := tomlDocument{
		ImagePath: s.imageRef,
		Width:     s.tileWidth,
		Height:    s.tileHeight,
		FPS:       s.defaultRate,
		States:    make(map[string]tomlState, len(s.order)),
	}

	for _, name := range s.order {
		st := s.states[name]
		doc.States[name] = tomlState{
			Frames: framePairs(st.Frames),
			FPS:    st.Rate,
		}
	}

	enc := toml.NewEncoder(w)
	enc.Indent = ""

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}

	return nil
}

func decodeTOML(data []byte) ([]field, error) {
	var tree map[string]interface{}
	meta, err := toml.Decode(string(data), &tree)

	if err != nil {
		return nil, err
	}

	return tomlFields(tree, nil, meta.Keys()), nil
}

// tomlFields orders the keys of the table found at
// prefix the way they appear in the document.
func tomlFields(table map[string]interface{}, prefix toml.Key, keys []toml.Key) []field {
	fields := make([]field, 0, len(table))
	seen := make(map[string]bool, len(table))

	add := func(name string) {
		v, ok := table[name]

		if !ok || seen[name] {
			return
		}

		seen[name] = true
		fields = append(fields, field{
			key:   name,
			value: tomlValue(v, append(prefix[:len(prefix):len(prefix)], name), keys),
		})
	}

	for _, key := range keys {
		if len(key) > len(prefix) && hasPrefix(key, prefix) {
			add(key[len(prefix)])
		}
	}

	rest := make([]string, 0)

	for name := range table {
		if !seen[name] {
			rest = append(rest, name)
		}
	}

	sort.Strings(rest)

	for _, name := range rest {
		add(name)
	}

	return fields
}

func tomlValue(v interface{}, prefix toml.Key, keys []toml.Key) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		return tomlFields(value, prefix, keys)

	case []map[string]interface{}:
		items := make([]interface{}, len(value))

		for i, item := range value {
			items[i] = tomlFields(item, nil, nil)
		}

		return items

	default:
		return v
	}
}

func hasPrefix(key, prefix toml.Key) bool {
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}

	return true
}

func framePairs(frames []TilePosition) [][]int {
	pairs := make([][]int, len(frames))

	for i, pos := range frames {
		pairs[i] = []int{pos.X, pos.Y}
	}

	return pairs
}
