/*
Package deepzoom is a library for generating Deep Zoom Image (DZI) tile
pyramids from a single large raster image.

The full resolution image is repeatedly halved until it is 1x1 pixel. Each
resulting level is sliced into tiles which are written to a sink as
{name}_files/{level}/{col}_{row}.jpg, with level 0 being the 1x1 level.
Finally a {name}.dzi descriptor is written so a viewer such as OpenSeadragon
can address the tiles.
*/
package deepzoom

import (
	"errors"
	"fmt"
	"log"
	"path"
	"runtime"
	"strings"

	"github.com/bodgit/deepzoom/descriptor"
	"github.com/bodgit/deepzoom/raster"
	"github.com/bodgit/deepzoom/sink"
)

// Options control pyramid generation.
type Options struct {
	// Name is the base name of the descriptor and tile container
	Name string
	// TileSize is the edge length of a tile, usually tile.DefaultSize
	TileSize int
	// Overlap is the number of pixels adjacent tiles share
	Overlap int
	// Workers is the number of tiles encoded at once, runtime.NumCPU() if zero
	Workers int
	// Filter is the kernel used to halve each level
	Filter raster.Filter
}

func (o Options) withDefaults() Options {
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.Name == "":
		return errors.New("empty name")
	case strings.ContainsAny(o.Name, `\`) || path.Clean(o.Name) != o.Name || !sink.ValidKey(descriptor.Key(o.Name)):
		return fmt.Errorf("bad name %q", o.Name)
	case o.TileSize <= 0:
		return fmt.Errorf("tile size %d", o.TileSize)
	case o.Overlap < 0:
		return fmt.Errorf("overlap %d", o.Overlap)
	case o.Overlap >= o.TileSize:
		return fmt.Errorf("overlap %d not less than tile size %d", o.Overlap, o.TileSize)
	case o.Workers < 0:
		return fmt.Errorf("workers %d", o.Workers)
	}
	return nil
}

// Tiler generates tile pyramids into a sink.
type Tiler struct {
	sink    sink.Sink
	logger  *log.Logger
	options Options
}

// New returns a Tiler writing to s. The options are validated immediately
// so a bad configuration fails before anything is read or written.
func New(s sink.Sink, logger *log.Logger, options Options) (*Tiler, error) {
	options = options.withDefaults()
	if err := options.validate(); err != nil {
		return nil, opError("options", fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	return &Tiler{
		sink:    s,
		logger:  logger,
		options: options,
	}, nil
}
