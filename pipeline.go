package deepzoom

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bodgit/deepzoom/descriptor"
	"github.com/bodgit/deepzoom/raster"
	"github.com/bodgit/deepzoom/tile"
)

type tileAddr struct {
	col, row int
}

type tally struct {
	tiles int64
	bytes int64
}

func (t *tally) add(n int) {
	atomic.AddInt64(&t.tiles, 1)
	atomic.AddInt64(&t.bytes, int64(n))
}

func (t *Tiler) tileAddresses(ctx context.Context, level Level) (<-chan tileAddr, <-chan error, error) {
	out := make(chan tileAddr)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for row := 0; row < level.Rows; row++ {
			for col := 0; col < level.Cols; col++ {
				select {
				case out <- tileAddr{col, row}:
				case <-ctx.Done():
					errc <- levelError("emit", level.Index, ctx.Err())
					return
				}
			}
		}
	}()
	return out, errc, nil
}

func (t *Tiler) tileWorker(ctx context.Context, m raster.Raster, level Level, in <-chan tileAddr, count *tally) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for addr := range in {
			// Stop doing work once any other part of the pipeline has failed
			if ctx.Err() != nil {
				continue
			}

			r := level.TileRect(addr.col, addr.row, t.options.TileSize, t.options.Overlap)
			crop, err := m.Crop(r)
			if err != nil {
				errc <- tileError("crop", level.Index, addr.col, addr.row, kind(ErrResample, err))
				return
			}

			b, err := tile.Bytes(crop)
			if err != nil {
				errc <- tileError("encode", level.Index, addr.col, addr.row, kind(ErrResample, err))
				return
			}

			key := descriptor.TileKey(t.options.Name, tile.Format, level.Index, addr.col, addr.row)
			if err := t.sink.Put(ctx, key, b); err != nil {
				errc <- tileError("write", level.Index, addr.col, addr.row, kind(ErrIO, err))
				return
			}

			count.add(len(b))
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage. On error cancel
// is called and the remaining stages are drained so no goroutine is still
// writing once it returns.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// emitTiles crops and writes every tile of a level, fanning the work out to
// a bounded pool of workers.
func (t *Tiler) emitTiles(ctx context.Context, m raster.Raster, level Level) (int, int64, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error
	var count tally

	addrs, errc, err := t.tileAddresses(ctx, level)
	if err != nil {
		return 0, 0, err
	}
	errcList = append(errcList, errc)

	workers := t.options.Workers
	if n := level.Tiles(); n < workers {
		workers = n
	}

	for i := 0; i < workers; i++ {
		errc, err := t.tileWorker(ctx, m, level, addrs, &count)
		if err != nil {
			return 0, 0, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return 0, 0, err
	}

	// Workers skip silently once the parent context is cancelled
	if err := ctx.Err(); err != nil {
		return 0, 0, levelError("emit", level.Index, err)
	}

	return int(count.tiles), count.bytes, nil
}
