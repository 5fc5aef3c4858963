package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alacrity-engine/anim-editor/anim"
	"github.com/alacrity-engine/anim-editor/pack"
	"github.com/alacrity-engine/anim-editor/project"
	bolt "go.etcd.io/bbolt"
)

func usageError(usage string) error {
	return fmt.Errorf("usage: animedit %s", usage)
}

func parseInts(values ...string) ([]int, error) {
	ints := make([]int, len(values))

	for i, value := range values {
		n, err := strconv.Atoi(value)

		if err != nil {
			return nil, fmt.Errorf("'%s' is not an integer", value)
		}

		ints[i] = n
	}

	return ints, nil
}

// editSheet loads a sheet, applies edit and saves
// it back if anything changed. A missing sheet
// starts as an empty document.
func (c *cli) editSheet(filename string, edit func(set *anim.Set) error) error {
	set := anim.NewSet()

	if err := set.LoadFile(filename); err != nil {
		return err
	}

	if err := edit(set); err != nil {
		return err
	}

	if !set.IsModified() {
		return nil
	}

	if err := set.SaveFile(filename); err != nil {
		return err
	}

	c.logger.Printf("saved %s", filename)

	return nil
}

func (c *cli) newProject(args []string) error {
	if len(args) != 1 {
		return usageError("new <dir>")
	}

	p, err := project.Create(args[0])

	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "created project '%s' in %s\n", p.Config().Name, p.Dir())

	return nil
}

func (c *cli) info(args []string) error {
	if len(args) != 1 {
		return usageError("info <sheet>")
	}

	set := anim.NewSet()

	if err := set.LoadFile(args[0]); err != nil {
		return err
	}

	width, height := set.TileSize()
	fmt.Fprintf(c.out, "image: %s\n", set.ImageReference())
	fmt.Fprintf(c.out, "tiles: %dx%d\n", width, height)
	fmt.Fprintf(c.out, "fps: %d\n", set.DefaultRate())

	for _, name := range set.StateNames() {
		state, _ := set.State(name)
		frames := make([]string, len(state.Frames))

		for i, pos := range state.Frames {
			frames[i] = pos.String()
		}

		fmt.Fprintf(c.out, "%s (%d fps): %s\n", name, state.Rate, strings.Join(frames, " "))
	}

	return nil
}

func (c *cli) image(args []string) error {
	if len(args) != 2 {
		return usageError("image <sheet> <image>")
	}

	p, err := project.Open(c.cfg.Project)

	if err != nil {
		return err
	}

	return c.editSheet(args[0], func(set *anim.Set) error {
		return set.SetImageReference(p.Assets(), args[1])
	})
}

func (c *cli) tiles(args []string) error {
	if len(args) != 3 {
		return usageError("tiles <sheet> <width> <height>")
	}

	size, err := parseInts(args[1:]...)

	if err != nil {
		return err
	}

	return c.editSheet(args[0], func(set *anim.Set) error {
		return set.SetTileSize(size[0], size[1])
	})
}

func (c *cli) fps(args []string) error {
	if len(args) != 2 {
		return usageError("fps <sheet> <rate>")
	}

	rate, err := parseInts(args[1])

	if err != nil {
		return err
	}

	return c.editSheet(args[0], func(set *anim.Set) error {
		return set.SetDefaultRate(rate[0])
	})
}

func (c *cli) state(args []string) error {
	const usage = "state add|rm <sheet> <name> | mv <sheet> <old> <new> | rate <sheet> <name> <rate>"

	if len(args) < 3 {
		return usageError(usage)
	}

	op, sheet, name := args[0], args[1], args[2]

	switch {
	case op == "add" && len(args) == 3:
		return c.editSheet(sheet, func(set *anim.Set) error {
			return set.AddState(name)
		})

	case op == "rm" && len(args) == 3:
		return c.editSheet(sheet, func(set *anim.Set) error {
			return set.RemoveState(name)
		})

	case op == "mv" && len(args) == 4:
		return c.editSheet(sheet, func(set *anim.Set) error {
			return set.RenameState(name, args[3])
		})

	case op == "rate" && len(args) == 4:
		rate, err := parseInts(args[3])

		if err != nil {
			return err
		}

		return c.editSheet(sheet, func(set *anim.Set) error {
			return set.SetRate(name, rate[0])
		})

	default:
		return usageError(usage)
	}
}

func (c *cli) frame(args []string) error {
	const usage = "frame add <sheet> <state> <x> <y> | rm <sheet> <state> <index> | move <sheet> <state> <index> <x> <y>"

	if len(args) < 4 {
		return usageError(usage)
	}

	op, sheet, name := args[0], args[1], args[2]

	switch {
	case op == "add" && len(args) == 5:
		pos, err := parseInts(args[3:]...)

		if err != nil {
			return err
		}

		return c.editSheet(sheet, func(set *anim.Set) error {
			index, err := set.AddFrame(name, anim.Tile(pos[0], pos[1]))

			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%s[%d] = %s\n", name, index, anim.Tile(pos[0], pos[1]))

			return nil
		})

	case op == "rm" && len(args) == 4:
		index, err := parseInts(args[3])

		if err != nil {
			return err
		}

		return c.editSheet(sheet, func(set *anim.Set) error {
			return set.RemoveFrame(name, index[0])
		})

	case op == "move" && len(args) == 6:
		index, err := parseInts(args[3])

		if err != nil {
			return err
		}

		x, errX := strconv.ParseFloat(args[4], 64)
		y, errY := strconv.ParseFloat(args[5], 64)

		if errX != nil || errY != nil {
			return fmt.Errorf("'%s, %s' is not a position", args[4], args[5])
		}

		return c.editSheet(sheet, func(set *anim.Set) error {
			if err := set.Select(name); err != nil {
				return err
			}

			if err := set.SelectFrame(index[0]); err != nil {
				return err
			}

			pos := set.Drag(x, y)
			fmt.Fprintf(c.out, "%s[%d] = %s\n", name, index[0], pos)

			return nil
		})

	default:
		return usageError(usage)
	}
}

func (c *cli) pack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	fs.SetOutput(c.errOut)

	manifestPath := fs.String("manifest", "./animations-meta.yml",
		"Path to the file listing the spritesheets to pack.")
	resourceFilePath := fs.String("out", "./stage.res",
		"Resource file to store animations.")

	if err := fs.Parse(args); err != nil {
		return err
	}

	metas, err := pack.LoadManifest(*manifestPath)

	if err != nil {
		return err
	}

	sheets, err := pack.LoadSheets(metas)

	if err != nil {
		return err
	}

	// Open the resource file.
	resourceFile, err := bolt.Open(*resourceFilePath, 0666, nil)

	if err != nil {
		return fmt.Errorf("open resource file: %w", err)
	}

	defer resourceFile.Close()

	if err := pack.NewPacker(resourceFile, c.logger).Pack(sheets); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "packed %d spritesheets into %s\n", len(sheets), *resourceFilePath)

	return nil
}

func (c *cli) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(c.errOut)

	out := fs.String("out", "", "Archive to write. Defaults to data.arpg in the project.")

	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := project.Open(c.cfg.Project)

	if err != nil {
		return err
	}

	if *out == "" {
		*out = filepath.Join(p.Dir(), project.ExportFile)
	}

	if err := p.Export(*out); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "exported %s\n", *out)

	return nil
}
