package raster

import (
	"errors"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

var (
	errEmpty = errors.New("raster: image has no pixels")
	errNil   = errors.New("raster: nil image")
)

// RGBA is a Raster backed by an *image.RGBA. The pixel buffer is treated as
// read-only once constructed.
type RGBA struct {
	*image.RGBA
}

// New copies m into a new RGBA raster with its origin at (0, 0).
func New(m image.Image) (*RGBA, error) {
	if m == nil {
		return nil, errNil
	}
	b := m.Bounds()
	if b.Empty() {
		return nil, errEmpty
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return &RGBA{dst}, nil
}

// Decode reads an image in any registered format from r and returns it as
// a Raster along with the format name.
func Decode(r io.Reader) (*RGBA, string, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	rgba, err := New(m)
	if err != nil {
		return nil, "", err
	}
	return rgba, format, nil
}

// DecodeConfig returns the dimensions and format of an image without
// decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	c, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return image.Config{}, "", errEmpty
	}
	return c, format, nil
}

// Crop returns a read-only view of the region r, which must lie within the
// raster bounds. The view shares pixels with the receiver.
func (m *RGBA) Crop(r image.Rectangle) (Raster, error) {
	if r.Empty() || !r.In(m.Bounds()) {
		return nil, errors.New("raster: crop rectangle outside image")
	}
	return &RGBA{m.SubImage(r).(*image.RGBA)}, nil
}

// Underlying returns the wrapped *image.RGBA.
func (m *RGBA) Underlying() *image.RGBA {
	return m.RGBA
}
