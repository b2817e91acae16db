// pkg/substream/stream.go

// Package substream presents a read-only, bounded window onto a larger
// seekable resource. A window is addressed by a compact identifier of the
// form substream://offset:length/resourceId and re-bases the range
// [offset, offset+length) of the underlying resource so callers see
// positions [0, length).
package substream

import (
	"io"
)

type streamState int

const (
	stateUnopened streamState = iota
	stateOpen
	stateClosed
)

// Info is the metadata a window reports. Size is the window length; no
// other metadata exists for a window.
type Info struct {
	Size int64
}

// Stream is an open window. A Stream is not safe for concurrent use;
// distinct Streams over the same resource are fully independent.
type Stream struct {
	ident  *Identifier
	handle io.ReadSeekCloser
	window *Window
	state  streamState
}

// Open parses the identifier, resolves it against the registry, and returns
// an open stream positioned at the start of the window. On failure no
// resources remain held.
func Open(raw string, reg Registry) (*Stream, error) {
	ident, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}

	handle, window, err := Resolve(ident, reg)
	if err != nil {
		return nil, err
	}

	return &Stream{
		ident:  ident,
		handle: handle,
		window: window,
		state:  stateOpen,
	}, nil
}

// Read reads up to count bytes from the current position. It returns the
// bytes read, whether the end of the window has been reached, and any error.
// At the end of the window it returns no data and eof true, which is an
// expected outcome rather than a failure. Reads may return fewer than count
// bytes; callers resume by calling Read again.
func (s *Stream) Read(count int) ([]byte, bool, error) {
	if s.state != stateOpen {
		return nil, false, NewError("read", s.path(), ErrNotOpen)
	}

	remaining := s.window.Remaining()
	if remaining <= 0 {
		return []byte{}, true, nil
	}

	n := int64(count)
	if n > remaining {
		n = remaining
	}
	if n <= 0 {
		return []byte{}, s.window.EOF(), nil
	}

	// The handle is repositioned on every read so a window never depends
	// on where the previous operation left the handle's own cursor.
	if _, err := s.handle.Seek(s.window.Absolute(), io.SeekStart); err != nil {
		return nil, false, NewError("read", s.path(), ErrIO)
	}

	buf := make([]byte, n)
	got, err := s.handle.Read(buf)
	s.window.Advance(int64(got))

	// A backing resource shorter than the window surfaces as an early
	// end of data, not as a failure.
	eof := s.window.EOF() || err == io.EOF
	if err != nil && err != io.EOF {
		return buf[:got], eof, NewError("read", s.path(), ErrIO)
	}
	return buf[:got], eof, nil
}

// Seek repositions the cursor within the window. offset is interpreted
// against the start of the window, the current position, or the end of the
// window according to whence (io.SeekStart, io.SeekCurrent, io.SeekEnd).
// Positions outside [0, length] are rejected and leave the cursor unchanged.
func (s *Stream) Seek(offset int64, whence int) error {
	if s.state != stateOpen {
		return NewError("seek", s.path(), ErrNotOpen)
	}

	if _, err := s.window.Seek(offset, whence); err != nil {
		return NewError("seek", s.path(), err)
	}
	return nil
}

// Tell returns the current position relative to the start of the window.
func (s *Stream) Tell() (int64, error) {
	if s.state != stateOpen {
		return 0, NewError("tell", s.path(), ErrNotOpen)
	}

	pos, ok := s.window.Position()
	if !ok {
		return 0, NewError("tell", s.path(), ErrIO)
	}
	return pos, nil
}

// EOF reports whether the cursor is at the end of the window. A stream that
// is not open has nothing left to read and reports true.
func (s *Stream) EOF() bool {
	if s.state != stateOpen {
		return true
	}
	return s.window.EOF()
}

// Stat returns the window's metadata. Size is constant for the life of the
// stream, independent of the cursor.
func (s *Stream) Stat() (Info, error) {
	if s.state != stateOpen {
		return Info{}, NewError("stat", s.path(), ErrNotOpen)
	}
	return Info{Size: s.window.Size()}, nil
}

// Close releases the handle owned by this stream: the independent file
// handle for file-backed windows, the private materialized copy otherwise.
// Close is idempotent.
func (s *Stream) Close() error {
	if s.state != stateOpen {
		return nil
	}
	s.state = stateClosed

	if err := s.handle.Close(); err != nil {
		return NewError("close", s.path(), ErrIO)
	}
	return nil
}

// Identifier returns the parsed identifier this stream was opened with.
func (s *Stream) Identifier() *Identifier {
	return s.ident
}

func (s *Stream) path() string {
	if s.ident == nil {
		return ""
	}
	return s.ident.String()
}
