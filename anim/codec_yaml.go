package anim

import (
	"fmt"
	"io"
	"sort"

	yaml "gopkg.in/yaml.v2"
)

type yamlDocument struct {
	ImagePath string        `yaml:"image_path"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	FPS       int           `yaml:"fps"`
	States    yaml.MapSlice `yaml:"states"`
}

type yamlState struct {
	Frames [][]int `yaml:"frames,flow"`
	FPS    int     `yaml:"fps"`
}

func encodeYAML(w io.Writer, s *Set) error {
	doc := yamlDocument{
		ImagePath: s.imageRef,
		Width:     s.tileWidth,
		Height:    s.tileHeight,
		FPS:       s.defaultRate,
		States:    make(yaml.MapSlice, 0, len(s.order)),
	}

	for _, name := range s.order {
		st := s.states[name]
		doc.States = append(doc.States, yaml.MapItem{
			Key: name,
			Value: yamlState{
				Frames: framePairs(st.Frames),
				FPS:    st.Rate,
			},
		})
	}

	data, err := yaml.Marshal(doc)

	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}

	return nil
}

func decodeYAML(data []byte) ([]field, error) {
	var tree yaml.MapSlice

	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}

	return yamlFields(tree), nil
}

// yamlFields converts a mapping to fields. Null
// values are kept as nil.
func yamlFields(items yaml.MapSlice) []field {
	fields := make([]field, 0, len(items))

	for _, item := range items {
		fields = append(fields, field{
			key:   yamlKey(item.Key),
			value: yamlValue(item.Value),
		})
	}

	return fields
}

func yamlValue(v interface{}) interface{} {
	switch value := v.(type) {
	case yaml.MapSlice:
		return yamlFields(value)

	case map[interface{}]interface{}:
		items := make(yaml.MapSlice, 0, len(value))

		for key, item := range value {
			items = append(items, yaml.MapItem{Key: key, Value: item})
		}

		sort.Slice(items, func(i, j int) bool {
			return yamlKey(items[i].Key) < yamlKey(items[j].Key)
		})

		return yamlFields(items)

	case []interface{}:
		elems := make([]interface{}, len(value))

		for i, elem := range value {
			elems[i] = yamlValue(elem)
		}

		return elems

	default:
		return v
	}
}

func yamlKey(key interface{}) string {
	if s, ok := key.(string); ok {
		return s
	}

	return fmt.Sprint(key)
}
