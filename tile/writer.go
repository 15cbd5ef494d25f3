package tile

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"
)

var errEmpty = errors.New("tile: image is empty")

// underlying is implemented by images that wrap an *image.RGBA, letting the
// JPEG encoder use its fast path.
type underlying interface {
	Underlying() *image.RGBA
}

// Encode writes the Image m to w as a tile.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Empty() {
		return errEmpty
	}

	if u, ok := m.(underlying); ok {
		m = u.Underlying()
	}

	// Adjust image so that top-left corner is at (0, 0)
	if rgba, ok := m.(*image.RGBA); ok && rgba.Rect.Min != (image.Point{}) {
		dup := *rgba
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		m = &dup
	}

	return jpeg.Encode(w, m, &jpeg.Options{Quality: Quality})
}

// Bytes encodes m as a tile and returns the result.
func Bytes(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
