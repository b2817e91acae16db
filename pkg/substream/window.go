// pkg/substream/window.go
package substream

import (
	"io"
)

// Window holds the enforced absolute bounds of a substream view and the
// current absolute cursor. All bounds and cursor arithmetic lives here;
// Window performs no I/O.
//
// The invariant enforceMin <= offset <= enforceMax holds at all times after
// construction. The cursor may sit at enforceMax (end of window), matching
// the usual seek convention of allowing a position just past the last byte.
type Window struct {
	enforceMin int64
	enforceMax int64
	offset     int64
}

// NewWindow creates a window over the absolute range [min, max) with the
// cursor at min.
func NewWindow(min, max int64) *Window {
	return &Window{
		enforceMin: min,
		enforceMax: max,
		offset:     min,
	}
}

// Size returns the fixed logical length of the view. It never changes after
// creation.
func (w *Window) Size() int64 {
	return w.enforceMax - w.enforceMin
}

// Absolute returns the current cursor in the underlying resource's
// coordinate space.
func (w *Window) Absolute() int64 {
	return w.offset
}

// Remaining returns the number of bytes between the cursor and the end of
// the window.
func (w *Window) Remaining() int64 {
	return w.enforceMax - w.offset
}

// EOF reports whether the cursor has reached the end of the window.
func (w *Window) EOF() bool {
	return w.offset >= w.enforceMax
}

// Position returns the cursor position relative to the start of the window.
// The second return value is false if the cursor is outside the enforced
// bounds, which cannot happen through this type's own methods.
func (w *Window) Position() (int64, bool) {
	if w.offset < w.enforceMin || w.offset > w.enforceMax {
		return 0, false
	}
	return w.offset - w.enforceMin, true
}

// Advance moves the cursor forward by n bytes, clamped to the end of the
// window.
func (w *Window) Advance(n int64) {
	w.offset += n
	if w.offset > w.enforceMax {
		w.offset = w.enforceMax
	}
}

// Seek computes a candidate absolute cursor from a relative offset and an
// io.Seek* whence value, rejects it with ErrInvalidSeek if it falls outside
// [enforceMin, enforceMax], and otherwise moves the cursor and returns the
// new relative position. On rejection the cursor is unchanged.
func (w *Window) Seek(offset int64, whence int) (int64, error) {
	var candidate int64
	switch whence {
	case io.SeekStart:
		candidate = w.enforceMin + offset
	case io.SeekCurrent:
		candidate = w.offset + offset
	case io.SeekEnd:
		candidate = w.enforceMax + offset
	default:
		return 0, ErrInvalidSeek
	}

	if candidate < w.enforceMin || candidate > w.enforceMax {
		return 0, ErrInvalidSeek
	}

	w.offset = candidate
	return candidate - w.enforceMin, nil
}
