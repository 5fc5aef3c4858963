package anim

import (
	"fmt"
	"math"
)

// TilePosition is the top-left pixel of a frame
// within the spritesheet.
type TilePosition struct {
	X int
	Y int
}

// Tile returns the tile position at (x, y).
func Tile(x, y int) TilePosition {
	return TilePosition{X: x, Y: y}
}

// Snap rounds a continuous position to the nearest
// integral one. Halves round to even.
func Snap(x, y float64) TilePosition {
	return TilePosition{
		X: int(math.RoundToEven(x)),
		Y: int(math.RoundToEven(y)),
	}
}

// MaxCoordinate bounds the pixel coordinates
// a drag may snap to.
const MaxCoordinate = math.MaxInt32

// snappable reports whether v is finite and
// within [-MaxCoordinate, MaxCoordinate].
func snappable(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= MaxCoordinate
}

// Less reports whether p orders before o by (X, Y).
func (p TilePosition) Less(o TilePosition) bool {
	if p.X != o.X {
		return p.X < o.X
	}

	return p.Y < o.Y
}

func (p TilePosition) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
