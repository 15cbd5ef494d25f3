package deepzoom

import (
	"context"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/bodgit/deepzoom/descriptor"
	"github.com/bodgit/deepzoom/raster"
	"github.com/bodgit/deepzoom/tile"
	"github.com/dustin/go-humanize"
)

// Result summarises a completed run.
type Result struct {
	Name       string
	Descriptor *descriptor.Descriptor
	Levels     []Level
	Tiles      int
	Bytes      int64
	// SHA1 is the hex digest of the source file, empty for GenerateImage
	SHA1   string
	Swatch color.Palette
}

// Generate builds a complete pyramid from the image file. The image
// dimensions are checked before any pixel data is decoded or anything is
// written.
func (t *Tiler) Generate(ctx context.Context, file string) (*Result, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, opError("open", kind(ErrInvalidInput, err))
	}
	defer f.Close()

	c, format, err := raster.DecodeConfig(f)
	if err != nil {
		return nil, opError("decode", kind(ErrInvalidInput, err))
	}
	if _, err := Plan(c.Width, c.Height, t.options.TileSize); err != nil {
		return nil, opError("plan", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, opError("open", kind(ErrInvalidInput, err))
	}

	h := sha1.New()
	m, _, err := raster.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, opError("decode", kind(ErrInvalidInput, err))
	}
	// The decoder may stop short of EOF
	if _, err := io.Copy(h, f); err != nil {
		return nil, opError("decode", kind(ErrInvalidInput, err))
	}
	t.logger.Printf("Decoded %s image %q, %dx%d\n", format, file, c.Width, c.Height)

	res, err := t.generate(ctx, m)
	if err != nil {
		return nil, err
	}
	res.SHA1 = fmt.Sprintf("%X", h.Sum(nil))

	return res, nil
}

// GenerateImage builds a complete pyramid from an already decoded image.
func (t *Tiler) GenerateImage(ctx context.Context, m image.Image) (*Result, error) {
	b := m.Bounds()
	if _, err := Plan(b.Dx(), b.Dy(), t.options.TileSize); err != nil {
		return nil, opError("plan", err)
	}

	// Tile rectangles assume the origin is at (0, 0)
	r, ok := m.(raster.Raster)
	if !ok || b.Min != (image.Point{}) {
		var err error
		if r, err = raster.New(m); err != nil {
			return nil, opError("decode", kind(ErrInvalidInput, err))
		}
	}

	return t.generate(ctx, r)
}

func (t *Tiler) generate(ctx context.Context, m raster.Raster) (*Result, error) {
	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	levels, err := Plan(width, height, t.options.TileSize)
	if err != nil {
		return nil, opError("plan", err)
	}
	t.logger.Printf("Creating %d pyramid levels\n", len(levels))

	res := &Result{
		Name:   t.options.Name,
		Levels: levels,
	}

	working := m
	for i := len(levels) - 1; i >= 0; i-- {
		level := levels[i]

		tiles, n, next, err := t.renderLevel(ctx, working, level)
		if err != nil {
			return nil, err
		}
		t.logger.Printf("Level %d: %dx%d -> %dx%d tiles, %s\n", level.Index, level.Width, level.Height, level.Cols, level.Rows, humanize.Bytes(uint64(n)))

		if res.Swatch == nil && level.Width <= swatchLimit && level.Height <= swatchLimit {
			res.Swatch = swatch(working, swatchColors)
		}

		res.Tiles += tiles
		res.Bytes += n
		working = next
	}

	res.Descriptor = descriptor.New(tile.Format, t.options.TileSize, t.options.Overlap, width, height)
	data, err := res.Descriptor.MarshalBinary()
	if err != nil {
		return nil, opError("descriptor", kind(ErrIO, err))
	}
	if err := t.sink.Put(ctx, descriptor.Key(t.options.Name), data); err != nil {
		return nil, opError("descriptor", kind(ErrIO, err))
	}
	res.Bytes += int64(len(data))

	t.logger.Printf("Wrote %d tiles for %q, %s\n", res.Tiles, t.options.Name, humanize.Bytes(uint64(res.Bytes)))

	return res, nil
}

// renderLevel writes every tile of level from working and returns the
// working image for the next coarser level, which is nil once level 0 has
// been written.
func (t *Tiler) renderLevel(ctx context.Context, working raster.Raster, level Level) (int, int64, raster.Raster, error) {
	if size := working.Bounds().Size(); size.X != level.Width || size.Y != level.Height {
		return 0, 0, nil, levelError("render", level.Index, fmt.Errorf("%w: working image is %dx%d, want %dx%d", ErrResample, size.X, size.Y, level.Width, level.Height))
	}

	tiles, n, err := t.emitTiles(ctx, working, level)
	if err != nil {
		return 0, 0, nil, err
	}

	if level.Index == 0 {
		return tiles, n, nil, nil
	}

	next, err := working.Resample(halve(level.Width), halve(level.Height), t.options.Filter)
	if err != nil {
		return 0, 0, nil, levelError("resample", level.Index, kind(ErrResample, err))
	}

	return tiles, n, next, nil
}
