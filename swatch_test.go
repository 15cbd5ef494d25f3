package deepzoom

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwatch(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i+0] = 0x10
		m.Pix[i+1] = 0x20
		m.Pix[i+2] = 0x30
		m.Pix[i+3] = 0xff
	}

	p := swatch(m, 4)
	if assert.NotEmpty(t, p) {
		assert.Equal(t, "#102030", HexColor(p[0]))
	}
	assert.LessOrEqual(t, len(p), 4)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#000000", HexColor(color.Black))
	assert.Equal(t, "#ff8000", HexColor(color.RGBA{0xff, 0x80, 0x00, 0xff}))
}

func TestBackground(t *testing.T) {
	assert.Equal(t, "#000000", (&Result{}).Background())
	assert.Equal(t, "#ffffff", (&Result{Swatch: color.Palette{color.White}}).Background())
}
