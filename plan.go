package deepzoom

import (
	"fmt"
	"image"
)

// Level describes one level of the pyramid. Index 0 is the coarsest level
// and the highest index holds the full resolution image.
type Level struct {
	Index  int
	Width  int
	Height int
	Cols   int
	Rows   int
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func halve(dim int) int {
	return ceilDiv(dim, 2)
}

// MaxLevel returns the number of halving steps required to reduce an image
// of the given dimensions to 1x1, each step rounding up.
func MaxLevel(width, height int) int {
	var n int
	for width > 1 || height > 1 {
		width, height = halve(width), halve(height)
		n++
	}
	return n
}

// Plan computes the pyramid levels for an image of the given dimensions,
// ordered from the coarsest level to the finest.
func Plan(width, height, tileSize int) ([]Level, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidInput, width, height)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size %d", ErrInvalidInput, tileSize)
	}

	maxLevel := MaxLevel(width, height)
	levels := make([]Level, maxLevel+1)

	// Walk from the finest level down, filling in from the end
	w, h := width, height
	for i := maxLevel; i >= 0; i-- {
		levels[i] = Level{
			Index:  i,
			Width:  w,
			Height: h,
			Cols:   ceilDiv(w, tileSize),
			Rows:   ceilDiv(h, tileSize),
		}
		w, h = halve(w), halve(h)
	}

	return levels, nil
}

// Bounds returns the pixel rectangle of the whole level.
func (l Level) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// Tiles returns the number of tiles in the level.
func (l Level) Tiles() int {
	return l.Cols * l.Rows
}

// TileRect returns the crop rectangle of the tile at col, row. Interior
// edges are extended by overlap pixels, the outer edges of the level are
// never extended.
func (l Level) TileRect(col, row, tileSize, overlap int) image.Rectangle {
	x0, y0 := col*tileSize, row*tileSize
	x1, y1 := x0+tileSize+overlap, y0+tileSize+overlap
	if col > 0 {
		x0 -= overlap
	}
	if row > 0 {
		y0 -= overlap
	}
	return image.Rect(x0, y0, x1, y1).Intersect(l.Bounds())
}
