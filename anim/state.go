package anim

// Rate bounds of a state, in frames per second.
const (
	MinRate     = 1
	MaxRate     = 240
	DefaultRate = 12
)

// DefaultTileSize is the grid size of a new document.
const DefaultTileSize = 16

// State is a named animation: an ordered
// sequence of frames played at Rate fps.
type State struct {
	Name   string
	Rate   int
	Frames []TilePosition
}

func (st *State) clone() State {
	frames := make([]TilePosition, len(st.Frames))
	copy(frames, st.Frames)

	return State{
		Name:   st.Name,
		Rate:   st.Rate,
		Frames: frames,
	}
}

func validRate(rate int) bool {
	return rate >= MinRate && rate <= MaxRate
}
