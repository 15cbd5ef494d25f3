/*
Package raster implements the in-memory working image used while building a
pyramid.

A Raster is decoded once from the source file into an RGBA buffer which is
never written to again, so any number of goroutines may crop tiles from it
at the same time. Each coarser level is produced by resampling the previous
level into a new buffer.
*/
package raster

import (
	"errors"
	"image"
)

// ErrResample is returned when a raster cannot be resampled.
var ErrResample = errors.New("resample failed")

// Croppable is implemented by rasters that can return a rectangular region
// of themselves.
type Croppable interface {
	Crop(r image.Rectangle) (Raster, error)
}

// Resamplable is implemented by rasters that can be scaled to new
// dimensions.
type Resamplable interface {
	Resample(width, height int, filter Filter) (Raster, error)
}

// Raster is an image that supports both cropping and resampling.
type Raster interface {
	image.Image
	Croppable
	Resamplable
}
