// pkg/fuse/file.go
package fuse

import (
	"context"
	"io"
	"log"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/discoverygarden/SubStream/pkg/substream"
)

// File represents one exported window in the filesystem.
type File struct {
	fs     *SubFS
	export *export
}

// Attr sets the attributes of the file. The size is the window length,
// known from the identifier without opening the window.
func (f *File) Attr(ctx context.Context, attr *fuse.Attr) error {
	attr.Inode = f.export.inode
	attr.Mode = 0444
	attr.Size = uint64(f.export.ident.Length)
	attr.Mtime = time.Now()
	return nil
}

// Open opens a substream window for this export. Each FUSE handle owns its
// own window, so concurrent opens of the same export do not share a cursor.
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	if req.Flags&fuse.OpenAccessModeMask != fuse.OpenReadOnly {
		return nil, fuse.Errno(syscall.EACCES)
	}

	stream, err := substream.Open(f.export.ident.String(), f.fs.store)
	if err != nil {
		// This is the loud side of open failures; the core itself only
		// returns them.
		log.Printf("Open failed for export %q: %v", f.export.name, err)
		return nil, fuse.EIO
	}

	return &FileHandle{stream: stream, name: f.export.name}, nil
}

// FileHandle is an open window serving FUSE reads.
type FileHandle struct {
	// A stream has a single cursor; FUSE requests on one handle are not
	// guaranteed to arrive serialized.
	mu     sync.Mutex
	stream *substream.Stream
	name   string
}

// Read serves one FUSE read by repositioning the window and reading up to
// the requested size.
func (h *FileHandle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.stream.Seek(req.Offset, io.SeekStart); err != nil {
		// Reads at or past the end of the window return no data.
		resp.Data = nil
		return nil
	}

	data, _, err := h.stream.Read(req.Size)
	if err != nil {
		log.Printf("Read failed for export %q: %v", h.name, err)
		return fuse.EIO
	}

	resp.Data = data
	return nil
}

// Release closes the window when the FUSE handle is dropped.
func (h *FileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stream.Close()
}
