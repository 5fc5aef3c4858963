// Package anim holds the spritesheet animation document:
// named states of tile frames, the selection cursor bound
// to the frame being edited, and the document codec.
package anim

import (
	"fmt"
	"slices"
)

// Set is one editable spritesheet animation document.
// A Set is not safe for concurrent use.
type Set struct {
	imageRef    string
	tileWidth   int
	tileHeight  int
	defaultRate int

	order  []string
	states map[string]*State

	cursor   Cursor
	modified bool
}

// NewSet returns an empty document with default
// tile size and rate.
func NewSet() *Set {
	return &Set{
		tileWidth:   DefaultTileSize,
		tileHeight:  DefaultTileSize,
		defaultRate: DefaultRate,
		states:      map[string]*State{},
	}
}

// ImageReference returns the image path
// relative to the assets root.
func (s *Set) ImageReference() string {
	return s.imageRef
}

// TileSize returns the document-wide grid size.
func (s *Set) TileSize() (width, height int) {
	return s.tileWidth, s.tileHeight
}

// DefaultRate returns the rate given to new states.
func (s *Set) DefaultRate() int {
	return s.defaultRate
}

// IsModified reports whether the document changed
// since it was last saved or loaded.
func (s *Set) IsModified() bool {
	return s.modified
}

// Len returns the number of states.
func (s *Set) Len() int {
	return len(s.order)
}

// StateNames returns the state names in insertion order.
func (s *Set) StateNames() []string {
	return slices.Clone(s.order)
}

// State returns a copy of the named state.
func (s *Set) State(name string) (State, bool) {
	st, ok := s.states[name]

	if !ok {
		return State{}, false
	}

	return st.clone(), true
}

// AddState creates an empty state with the document rate.
func (s *Set) AddState(name string) error {
	if name == "" {
		return fmt.Errorf("add state: %w", ErrInvalidName)
	}

	if _, ok := s.states[name]; ok {
		return fmt.Errorf("add state %q: %w", name, ErrDuplicateName)
	}

	s.insert(&State{
		Name:   name,
		Rate:   s.defaultRate,
		Frames: []TilePosition{},
	})
	s.modified = true

	return nil
}

// RemoveState deletes the named state. A cursor
// bound to it is cleared.
func (s *Set) RemoveState(name string) error {
	if _, ok := s.states[name]; !ok {
		return fmt.Errorf("remove state %q: %w", name, ErrNotFound)
	}

	delete(s.states, name)
	s.order = slices.DeleteFunc(s.order, func(key string) bool {
		return key == name
	})

	if s.cursor.state == name {
		s.cursor.clear()
	}

	s.modified = true

	return nil
}

// RenameState re-keys a state, keeping its place in
// the order. A cursor bound to it follows the rename.
func (s *Set) RenameState(oldName, newName string) error {
	st, ok := s.states[oldName]

	if !ok {
		return fmt.Errorf("rename state %q: %w", oldName, ErrNotFound)
	}

	if newName == "" {
		return fmt.Errorf("rename state %q: %w", oldName, ErrInvalidName)
	}

	if newName == oldName {
		return nil
	}

	if _, ok := s.states[newName]; ok {
		return fmt.Errorf("rename state %q to %q: %w",
			oldName, newName, ErrDuplicateName)
	}

	delete(s.states, oldName)
	st.Name = newName
	s.states[newName] = st
	s.order[slices.Index(s.order, oldName)] = newName

	if s.cursor.state == oldName {
		s.cursor.state = newName
	}

	s.modified = true

	return nil
}

// SetRate changes the playback rate of a state.
func (s *Set) SetRate(name string, rate int) error {
	st, ok := s.states[name]

	if !ok {
		return fmt.Errorf("set rate of %q: %w", name, ErrNotFound)
	}

	if !validRate(rate) {
		return fmt.Errorf("set rate of %q to %d: %w", name, rate, ErrOutOfRange)
	}

	if st.Rate != rate {
		st.Rate = rate
		s.modified = true
	}

	return nil
}

// SetDefaultRate changes the document rate. Existing
// states keep their own rate.
func (s *Set) SetDefaultRate(rate int) error {
	if !validRate(rate) {
		return fmt.Errorf("set document rate to %d: %w", rate, ErrOutOfRange)
	}

	if s.defaultRate != rate {
		s.defaultRate = rate
		s.modified = true
	}

	return nil
}

// AddFrame appends a frame to the state and
// returns its index.
func (s *Set) AddFrame(name string, pos TilePosition) (int, error) {
	st, ok := s.states[name]

	if !ok {
		return 0, fmt.Errorf("add frame to %q: %w", name, ErrNotFound)
	}

	st.Frames = append(st.Frames, pos)
	s.modified = true

	return len(st.Frames) - 1, nil
}

// RemoveFrame deletes a frame, shifting the following
// ones down. The cursor is rebound accordingly: a cursor
// past the removed frame moves down by one, a cursor on
// it loses its frame but keeps the state.
func (s *Set) RemoveFrame(name string, index int) error {
	st, ok := s.states[name]

	if !ok {
		return fmt.Errorf("remove frame from %q: %w", name, ErrNotFound)
	}

	if index < 0 || index >= len(st.Frames) {
		return fmt.Errorf("remove frame %d from %q: %w",
			index, name, ErrIndexOutOfRange)
	}

	st.Frames = slices.Delete(st.Frames, index, index+1)

	if s.cursor.state == name && s.cursor.framed {
		switch {
		case s.cursor.frame == index:
			s.cursor.framed = false
			s.cursor.frame = 0

		case s.cursor.frame > index:
			s.cursor.frame--
		}
	}

	s.modified = true

	return nil
}

// SetTileSize changes the grid size of the document.
// Frame positions are left as they are.
func (s *Set) SetTileSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("set tile size %dx%d: %w", width, height, ErrInvalidSize)
	}

	if s.tileWidth != width || s.tileHeight != height {
		s.tileWidth = width
		s.tileHeight = height
		s.modified = true
	}

	return nil
}

// SetImageReference points the document at an image,
// which must lie within root. The reference is stored
// relative to root.
func (s *Set) SetImageReference(root AssetsRoot, path string) error {
	rel, err := root.Rel(path)

	if err != nil {
		return fmt.Errorf("set image reference: %w", err)
	}

	if s.imageRef != rel {
		s.imageRef = rel
		s.modified = true
	}

	return nil
}

func (s *Set) insert(st *State) {
	s.states[st.Name] = st
	s.order = append(s.order, st.Name)
}
