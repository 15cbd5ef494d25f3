package deepzoom

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// Levels no larger than this are small enough to quantize cheaply
	swatchLimit  = 64
	swatchColors = 4
)

// swatch returns up to n representative colors of m.
func swatch(m image.Image, n int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), m)
}

// HexColor formats c as a CSS hex color, ignoring alpha.
func HexColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Background returns the color a viewer should fill untiled space with.
func (r *Result) Background() string {
	if len(r.Swatch) == 0 {
		return "#000000"
	}
	return HexColor(r.Swatch[0])
}
