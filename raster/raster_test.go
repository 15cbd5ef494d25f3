package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.NRGBA{uint8(x), uint8(y), uint8(x ^ y), 0xff})
		}
	}
	return m
}

func TestNew(t *testing.T) {
	src := gradient(10, 6)
	sub := src.SubImage(image.Rect(2, 1, 7, 5))

	m, err := New(sub)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 4), m.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(src.At(2, 1)), m.At(0, 0))

	_, err = New(nil)
	assert.Error(t, err)

	_, err = New(image.NewRGBA(image.Rectangle{}))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, gradient(7, 3)))

	c, format, err := DecodeConfig(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 7, c.Width)
	assert.Equal(t, 3, c.Height)

	m, format, err := Decode(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 7, 3), m.Bounds())

	_, _, err = Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestCrop(t *testing.T) {
	m, err := New(gradient(10, 10))
	require.NoError(t, err)

	c, err := m.Crop(image.Rect(4, 4, 10, 7))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(4, 4, 10, 7), c.Bounds())
	assert.Equal(t, m.At(5, 5), c.At(5, 5))

	_, err = m.Crop(image.Rect(8, 8, 12, 12))
	assert.Error(t, err)

	_, err = m.Crop(image.Rectangle{})
	assert.Error(t, err)
}

func TestResample(t *testing.T) {
	m, err := New(gradient(9, 5))
	require.NoError(t, err)

	for _, f := range []Filter{CatmullRom, BiLinear} {
		r, err := m.Resample(5, 3, f)
		require.NoError(t, err, f.String())
		assert.Equal(t, image.Rect(0, 0, 5, 3), r.Bounds())

		// Same input, same output
		again, err := m.Resample(5, 3, f)
		require.NoError(t, err)
		assert.Equal(t, r.(*RGBA).Pix, again.(*RGBA).Pix)
	}

	_, err = m.Resample(0, 3, CatmullRom)
	assert.ErrorIs(t, err, ErrResample)

	_, err = m.Resample(3, 3, Filter(42))
	assert.ErrorIs(t, err, ErrResample)
}

func TestResampleUniform(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	m, err := New(src)
	require.NoError(t, err)

	r, err := m.Resample(8, 8, CatmullRom)
	require.NoError(t, err)
	for _, p := range r.(*RGBA).Pix {
		assert.Equal(t, uint8(0x80), p)
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("CatmullRom")
	require.NoError(t, err)
	assert.Equal(t, CatmullRom, f)

	f, err = ParseFilter("bilinear")
	require.NoError(t, err)
	assert.Equal(t, BiLinear, f)

	_, err = ParseFilter("nearest")
	assert.Error(t, err)

	assert.Equal(t, "Filter(7)", Filter(7).String())
}
