package tile

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wrapped struct {
	*image.RGBA
}

func (w wrapped) Underlying() *image.RGBA {
	return w.RGBA
}

func solid(r image.Rectangle, c color.Color) *image.RGBA {
	m := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func TestEncode(t *testing.T) {
	tests := map[string]struct {
		m      image.Image
		width  int
		height int
	}{
		"origin": {
			m:      solid(image.Rect(0, 0, DefaultSize, DefaultSize), color.White),
			width:  DefaultSize,
			height: DefaultSize,
		},
		"offset": {
			m:      solid(image.Rect(0, 0, 300, 200), color.Black).SubImage(image.Rect(256, 0, 300, 200)),
			width:  44,
			height: 200,
		},
		"wrapped": {
			m:      wrapped{solid(image.Rect(10, 10, 20, 15), color.White)},
			width:  10,
			height: 5,
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, Encode(b, table.m))

			c, err := jpeg.DecodeConfig(bytes.NewReader(b.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, table.width, c.Width)
			assert.Equal(t, table.height, c.Height)
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	assert.Error(t, Encode(new(bytes.Buffer), image.NewRGBA(image.Rectangle{})))
}

func TestBytesDeterministic(t *testing.T) {
	m := solid(image.Rect(0, 0, 32, 32), color.RGBA{0x20, 0x40, 0x60, 0xff})

	b1, err := Bytes(m)
	require.NoError(t, err)
	b2, err := Bytes(m)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}
