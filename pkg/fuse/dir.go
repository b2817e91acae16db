// pkg/fuse/dir.go
package fuse

import (
	"context"
	"os"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// Dir is the mount's root directory, listing one file per export.
type Dir struct {
	fs *SubFS
}

// Attr sets the attributes of the directory.
func (d *Dir) Attr(ctx context.Context, attr *fuse.Attr) error {
	attr.Inode = 1
	attr.Mode = os.ModeDir | 0555
	attr.Mtime = time.Now()
	return nil
}

// Lookup looks up a specific export in the directory.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if e, ok := d.fs.lookup(name); ok {
		return &File{fs: d.fs, export: e}, nil
	}
	return nil, fuse.ENOENT
}

// ReadDirAll returns all exports in the directory.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries := make([]fuse.Dirent, 0, len(d.fs.exports))
	for i := range d.fs.exports {
		e := &d.fs.exports[i]
		entries = append(entries, fuse.Dirent{
			Inode: e.inode,
			Name:  e.name,
			Type:  fuse.DT_File,
		})
	}
	return entries, nil
}
