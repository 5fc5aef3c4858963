package anim

import "fmt"

// Cursor is the current editing position. It refers to
// a frame by state name and index and never owns frame
// data; the Set rebinds it on every structural change.
type Cursor struct {
	state    string
	frame    int
	framed   bool
	position TilePosition
}

// State returns the active state name.
func (c Cursor) State() (string, bool) {
	return c.state, c.state != ""
}

// Frame returns the index of the selected frame.
func (c Cursor) Frame() (int, bool) {
	return c.frame, c.framed
}

// Bound reports whether a frame is selected.
func (c Cursor) Bound() bool {
	return c.framed
}

// Position returns the displayed cursor position.
func (c Cursor) Position() TilePosition {
	return c.position
}

func (c *Cursor) clear() {
	c.state = ""
	c.frame = 0
	c.framed = false
}

// Cursor returns a snapshot of the selection. While a
// frame is selected its position reads through to the
// stored frame.
func (s *Set) Cursor() Cursor {
	c := s.cursor

	if pos, ok := s.selectedFrame(); ok {
		c.position = pos
	}

	return c
}

// CursorPosition returns the displayed cursor position.
func (s *Set) CursorPosition() TilePosition {
	return s.Cursor().Position()
}

// Select makes name the active state and selects its
// first frame. A state without frames leaves no frame
// selected.
func (s *Set) Select(name string) error {
	st, ok := s.states[name]

	if !ok {
		return fmt.Errorf("select state %q: %w", name, ErrNotFound)
	}

	s.cursor.state = name
	s.cursor.frame = 0
	s.cursor.framed = len(st.Frames) > 0

	if s.cursor.framed {
		s.cursor.position = st.Frames[0]
	}

	return nil
}

// SelectFrame selects a frame of the active state.
func (s *Set) SelectFrame(index int) error {
	st, ok := s.states[s.cursor.state]

	if !ok {
		return fmt.Errorf("select frame %d: no active state: %w", index, ErrNotFound)
	}

	if index < 0 || index >= len(st.Frames) {
		return fmt.Errorf("select frame %d of %q: %w",
			index, st.Name, ErrIndexOutOfRange)
	}

	s.cursor.frame = index
	s.cursor.framed = true
	s.cursor.position = st.Frames[index]

	return nil
}

// ClearSelection unbinds the cursor.
func (s *Set) ClearSelection() {
	s.cursor.clear()
}

// Drag moves the cursor to a continuous position. The
// position is snapped and, when a frame is selected,
// written through to that frame. Dragging with nothing
// selected never creates a frame. Non-finite positions and
// those beyond MaxCoordinate are ignored.
func (s *Set) Drag(x, y float64) TilePosition {
	if !snappable(x) || !snappable(y) {
		return s.CursorPosition()
	}

	pos := Snap(x, y)
	s.cursor.position = pos

	if !s.cursor.framed {
		return pos
	}

	st := s.states[s.cursor.state]

	if st.Frames[s.cursor.frame] != pos {
		st.Frames[s.cursor.frame] = pos
		s.modified = true
	}

	return pos
}

func (s *Set) selectedFrame() (TilePosition, bool) {
	if !s.cursor.framed {
		return TilePosition{}, false
	}

	st, ok := s.states[s.cursor.state]

	if !ok || s.cursor.frame >= len(st.Frames) {
		return TilePosition{}, false
	}

	return st.Frames[s.cursor.frame], true
}

// bindFirst selects the first frame of the first state.
func (s *Set) bindFirst() {
	s.cursor.clear()

	if len(s.order) > 0 {
		// The first state always exists.
		_ = s.Select(s.order[0])
	}
}
