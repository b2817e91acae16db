// pkg/substream/resolver.go
package substream

import (
	"bytes"
	"io"
	"os"

	"github.com/discoverygarden/SubStream/pkg/registry"
)

// Registry is the lookup capability the resolver needs from the external
// resource registry. The registry serializes its own access.
type Registry interface {
	Lookup(id string) (*registry.Resource, bool)
}

// Resolve turns a parsed identifier into a handle and the window it must
// enforce. The returned handle is owned by the caller and must be closed:
// for file-backed resources it is an independent read-only handle on the
// same backing file, for everything else it is a private copy of the
// requested range.
func Resolve(ident *Identifier, reg Registry) (io.ReadSeekCloser, *Window, error) {
	path := ident.String()

	if ident.Scheme != Scheme {
		return nil, nil, NewError("resolve", path, ErrInvalidScheme)
	}

	res, ok := reg.Lookup(ident.ResourceID)
	if !ok {
		return nil, nil, NewError("resolve", path, ErrResourceNotFound)
	}

	if !res.Seekable {
		return nil, nil, NewError("resolve", path, ErrNotSeekable)
	}

	// Backing classification happens exactly once, here. File-backed
	// resources get a second independent handle so the window never
	// disturbs the original handle's cursor; anything without a stable
	// backing address is copied out instead.
	if res.Backing == registry.BackingFile && res.Path != "" {
		f, err := os.Open(res.Path)
		if err != nil {
			return nil, nil, NewError("resolve", path, ErrIO)
		}
		w := NewWindow(ident.Offset, ident.Offset+ident.Length)
		return f, w, nil
	}

	src, ok := res.Handle.(io.ReadSeeker)
	if !ok {
		return nil, nil, NewError("resolve", path, ErrNotSeekable)
	}

	handle, err := materialize(src, ident.Offset, ident.Length)
	if err != nil {
		return nil, nil, NewError("resolve", path, err)
	}

	// The copy starts at position 0, so the window is re-based to the
	// copy's coordinate space.
	return handle, NewWindow(0, ident.Length), nil
}

// materialize copies exactly length bytes starting at offset out of src into
// a private in-memory handle. The source's cursor is saved first and
// restored on every path, success or failure.
func materialize(src io.ReadSeeker, offset, length int64) (io.ReadSeekCloser, error) {
	saved, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, ErrIO
	}
	defer src.Seek(saved, io.SeekStart)

	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return nil, ErrIO
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, ErrIO
	}

	return &bufferHandle{r: bytes.NewReader(buf)}, nil
}

// bufferHandle is the materialized private copy. Close drops the buffer so
// the window's exclusive ownership has a defined release point.
type bufferHandle struct {
	r *bytes.Reader
}

func (b *bufferHandle) Read(p []byte) (int, error) {
	if b.r == nil {
		return 0, os.ErrClosed
	}
	return b.r.Read(p)
}

func (b *bufferHandle) Seek(offset int64, whence int) (int64, error) {
	if b.r == nil {
		return 0, os.ErrClosed
	}
	return b.r.Seek(offset, whence)
}

func (b *bufferHandle) Close() error {
	b.r = nil
	return nil
}
