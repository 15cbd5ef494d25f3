package deepzoom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/deepzoom/raster"
)

var (
	// ErrInvalidInput is returned for non-positive dimensions, an
	// unreadable source image or invalid options.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIO is returned when a tile or the descriptor cannot be written.
	ErrIO = errors.New("i/o failure")
	// ErrResample is returned when a level cannot be downsampled or a tile
	// cannot be cropped or encoded from its pixels.
	ErrResample = raster.ErrResample
)

// Error records which stage of a run failed and, where relevant, the level
// and tile involved.
type Error struct {
	Op    string
	Level int // -1 if not applicable
	Col   int // -1 if not applicable
	Row   int // -1 if not applicable
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Level >= 0 {
		fmt.Fprintf(&b, " level %d", e.Level)
	}
	if e.Col >= 0 && e.Row >= 0 {
		fmt.Fprintf(&b, " tile %d_%d", e.Col, e.Row)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &Error{Op: op, Level: -1, Col: -1, Row: -1, Err: err}
}

func levelError(op string, level int, err error) error {
	return &Error{Op: op, Level: level, Col: -1, Row: -1, Err: err}
}

func tileError(op string, level, col, row int, err error) error {
	return &Error{Op: op, Level: level, Col: col, Row: row, Err: err}
}

// kind ensures err matches sentinel with errors.Is, wrapping it if not.
func kind(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
