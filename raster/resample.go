package raster

import (
	"fmt"
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Filter selects the interpolation kernel used when resampling.
type Filter int

const (
	// CatmullRom is a bicubic kernel; the default.
	CatmullRom Filter = iota
	// BiLinear is a tent kernel.
	BiLinear
)

var filterNames = map[Filter]string{
	CatmullRom: "catmullrom",
	BiLinear:   "bilinear",
}

func (f Filter) String() string {
	if s, ok := filterNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

func (f Filter) kernel() (*xdraw.Kernel, bool) {
	switch f {
	case CatmullRom:
		return xdraw.CatmullRom, true
	case BiLinear:
		return xdraw.BiLinear, true
	}
	return nil, false
}

// ParseFilter returns the Filter with the given name. Nearest neighbour is
// not offered.
func ParseFilter(s string) (Filter, error) {
	for f, name := range filterNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("raster: unknown filter %q", s)
}

// Resample returns a new raster of the given dimensions scaled from m.
func (m *RGBA) Resample(width, height int, filter Filter) (Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", ErrResample, width, height)
	}
	k, ok := filter.kernel()
	if !ok {
		return nil, fmt.Errorf("%w: unsupported filter %v", ErrResample, filter)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	k.Scale(dst, dst.Bounds(), m.RGBA, m.Bounds(), xdraw.Src, nil)

	return &RGBA{dst}, nil
}
