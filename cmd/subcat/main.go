// subcat opens substream identifiers against a manifest-populated registry
// and writes each window to stdout. With no identifier arguments it lists
// the manifest's named exports.
package main

import (
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/discoverygarden/SubStream/pkg/registry"
	"github.com/discoverygarden/SubStream/pkg/substream"
)

const readChunk = 32 * 1024

func main() {
	manifestPath := flag.String("manifest", "manifest.yaml", "YAML manifest of resources and exports")
	flag.Parse()

	manifest, err := registry.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	store := registry.NewStore()
	if err := manifest.Apply(store); err != nil {
		store.Close()
		log.Fatalf("Failed to open resources: %v", err)
	}
	defer store.Close()

	if flag.NArg() == 0 {
		for _, e := range manifest.Exports {
			fmt.Printf("%s\t%s\n", e.Name, e.Identifier)
		}
		return
	}

	for _, arg := range flag.Args() {
		if err := catWindow(arg, store); err != nil {
			log.Fatalf("Failed to read %s: %v", arg, err)
		}
	}
}

// catWindow streams one window to stdout in a short-read loop.
func catWindow(identifier string, store *registry.Store) error {
	stream, err := substream.Open(identifier, store)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		data, eof, err := stream.Read(readChunk)
		if err != nil {
			return err
		}
		if len(data) > 0 {
			if _, err := os.Stdout.Write(data); err != nil {
				return err
			}
		}
		if eof {
			return nil
		}
	}
}
