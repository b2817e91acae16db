// pkg/fuse/mount.go
package fuse

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/discoverygarden/SubStream/pkg/registry"
)

// MountOptions contains options for mounting the filesystem.
type MountOptions struct {
	MountPoint   string
	ManifestPath string // YAML manifest of resources and exports
	Debug        bool
}

// Mount loads the manifest, opens its resources into a registry, and serves
// the exports at the mount point until interrupted.
func Mount(options MountOptions) error {
	manifest, err := registry.LoadManifest(options.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	store := registry.NewStore()
	if err := manifest.Apply(store); err != nil {
		store.Close()
		return fmt.Errorf("failed to open resources: %w", err)
	}
	defer store.Close()

	mountOpts := []fuse.MountOption{
		fuse.FSName("substream"),
		fuse.Subtype("substream"),
		fuse.ReadOnly(),
	}

	if options.Debug {
		fuse.Debug = func(msg interface{}) {
			fmt.Printf("FUSE: %v\n", msg)
		}
	}

	log.Printf("Mounting FUSE filesystem at %s", options.MountPoint)
	c, err := fuse.Mount(options.MountPoint, mountOpts...)
	if err != nil {
		return fmt.Errorf("failed to mount: %w", err)
	}
	defer c.Close()

	subFS := NewSubFS(store, manifest.Exports)

	// Serve the filesystem until unmounted
	go func() {
		log.Println("Starting FUSE server")
		if err := fs.Serve(c, subFS); err != nil {
			log.Printf("Error serving filesystem: %v", err)
		}
	}()

	// Wait for SIGINT or SIGTERM to unmount
	log.Printf("Serving %d exports, press Ctrl+C to unmount", len(subFS.exports))
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Unmounting filesystem...")
	if err := Unmount(options.MountPoint); err != nil {
		log.Printf("Warning: failed to unmount cleanly: %v", err)
	}

	return nil
}

// Unmount unmounts the filesystem.
func Unmount(mountPoint string) error {
	return fuse.Unmount(mountPoint)
}
