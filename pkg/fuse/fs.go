// pkg/fuse/fs.go

// Package fuse exposes a registry's named substream exports as a read-only
// FUSE filesystem. Each export appears as one file in the mount's root
// directory; every FUSE open of that file gets its own substream window
// with an independent cursor.
package fuse

import (
	"log"

	"bazil.org/fuse/fs"

	"github.com/discoverygarden/SubStream/pkg/registry"
	"github.com/discoverygarden/SubStream/pkg/substream"
)

// SubFS implements the FUSE filesystem interface over a resource registry
// and a set of named exports.
type SubFS struct {
	store   *registry.Store
	exports []export
}

// export is a manifest export with its identifier parsed once up front.
type export struct {
	name  string
	ident *substream.Identifier
	inode uint64
}

// NewSubFS builds a filesystem from a registry and the manifest's exports.
// Exports whose identifier does not parse are logged and skipped.
func NewSubFS(store *registry.Store, exports []registry.ManifestExport) *SubFS {
	f := &SubFS{store: store}

	for _, e := range exports {
		ident, err := substream.ParseIdentifier(e.Identifier)
		if err != nil {
			log.Printf("Skipping export %q: %v", e.Name, err)
			continue
		}
		f.exports = append(f.exports, export{
			name:  e.Name,
			ident: ident,
			inode: uint64(len(f.exports)) + 2, // inode 1 is the root
		})
	}

	return f
}

// Root returns the root directory of the filesystem.
func (f *SubFS) Root() (fs.Node, error) {
	return &Dir{fs: f}, nil
}

// lookup finds an export by name.
func (f *SubFS) lookup(name string) (*export, bool) {
	for i := range f.exports {
		if f.exports[i].name == name {
			return &f.exports[i], true
		}
	}
	return nil, false
}
