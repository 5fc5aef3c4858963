// Package pack stores authored spritesheet animations
// in an engine resource file.
package pack

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alacrity-engine/anim-editor/anim"
	"github.com/alacrity-engine/core/math/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	bolt "go.etcd.io/bbolt"
)

// Resource file buckets.
const (
	AnimationsBucket = "animations"
	TagsBucket       = "tags"
)

// Sheet is a loaded spritesheet ready to be packed.
type Sheet struct {
	Meta SheetMeta
	Set  *anim.Set
}

// LoadSheets loads the documents the manifest refers to.
func LoadSheets(metas []SheetMeta) ([]Sheet, error) {
	sheets := make([]Sheet, 0, len(metas))

	for _, meta := range metas {
		if _, err := os.Stat(meta.Sheet); err != nil {
			return nil, fmt.Errorf("sheet '%s': %w", meta.Name, err)
		}

		set := anim.NewSet()

		if err := set.LoadFile(meta.Sheet); err != nil {
			return nil, fmt.Errorf("sheet '%s': %w", meta.Name, err)
		}

		sheets = append(sheets, Sheet{Meta: meta, Set: set})
	}

	return sheets, nil
}

// AnimationName is the resource key of a state.
func AnimationName(sheet, state string) string {
	return sheet + "/" + state
}

// FrameRect returns the image area of a frame.
func FrameRect(pos anim.TilePosition, width, height int) geometry.Rect {
	return geometry.R(
		float64(pos.X), float64(pos.Y),
		float64(pos.X+width), float64(pos.Y+height))
}

// FrameDuration is the duration of one frame in
// milliseconds. The rate is clamped to the editable
// range.
func FrameDuration(rate int) int32 {
	switch {
	case rate < anim.MinRate:
		rate = anim.MinRate

	case rate > anim.MaxRate:
		rate = anim.MaxRate
	}

	return int32(1000 / rate)
}

// Packer writes animations into a resource file.
type Packer struct {
	db     *bolt.DB
	logger *log.Logger
}

// NewPacker returns a packer writing to db.
// A nil logger discards messages.
func NewPacker(db *bolt.DB, logger *log.Logger) *Packer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Packer{db: db, logger: logger}
}

// Pack stores every state of every sheet as an animation
// and groups the animation names by tag.
func (p *Packer) Pack(sheets []Sheet) error {
	animTags := map[string][]string{}

	for _, sheet := range sheets {
		names, err := p.packSheet(sheet)

		if err != nil {
			return err
		}

		if sheet.Meta.Tag != "" {
			animTags[sheet.Meta.Tag] = append(animTags[sheet.Meta.Tag], names...)
		}
	}

	for tagID, tag := range animTags {
		err := p.db.Update(func(tx *bolt.Tx) error {
			buck, err := tx.CreateBucketIfNotExists([]byte(TagsBucket))

			if err != nil {
				return err
			}

			tagData, err := codec.EncodeTag(tag)

			if err != nil {
				return err
			}

			return buck.Put([]byte(tagID), tagData)
		})

		if err != nil {
			return fmt.Errorf("tag '%s': %w", tagID, err)
		}

		p.logger.Printf("tag %s: %d animations", tagID, len(tag))
	}

	return nil
}

func (p *Packer) packSheet(sheet Sheet) ([]string, error) {
	textureID := sheet.Meta.TextureID

	if textureID == "" {
		textureID = sheet.Set.ImageReference()
	}

	if textureID == "" {
		return nil, fmt.Errorf("sheet '%s': %w", sheet.Meta.Name, anim.ErrNoImageReference)
	}

	width, height := sheet.Set.TileSize()
	var names []string

	err := p.db.Update(func(tx *bolt.Tx) error {
		animBucket, err := tx.CreateBucketIfNotExists([]byte(AnimationsBucket))

		if err != nil {
			return err
		}

		for _, stateName := range sheet.Set.StateNames() {
			state, _ := sheet.Set.State(stateName)

			if len(state.Frames) == 0 {
				p.logger.Printf("skip %s: no frames",
					AnimationName(sheet.Meta.Name, stateName))
				continue
			}

			// Assemble the animation.
			data := &codec.AnimationData{
				TextureID: textureID,
				Frames:    make([]geometry.Rect, 0, len(state.Frames)),
				Durations: make([]int32, 0, len(state.Frames)),
			}

			for _, pos := range state.Frames {
				data.Frames = append(data.Frames, FrameRect(pos, width, height))
				data.Durations = append(data.Durations, FrameDuration(state.Rate))
			}

			contents, err := data.ToBytes()

			if err != nil {
				return err
			}

			name := AnimationName(sheet.Meta.Name, stateName)

			if err := animBucket.Put([]byte(name), contents); err != nil {
				return err
			}

			names = append(names, name)
			p.logger.Printf("packed %s: %d frames", name, len(state.Frames))
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("sheet '%s': %w", sheet.Meta.Name, err)
	}

	return names, nil
}
