package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/discoverygarden/SubStream/pkg/fuse"
)

func main() {
	// Parse command line arguments
	mountPoint := flag.String("mount", "", "Mount point for the substream filesystem")
	manifestPath := flag.String("manifest", "manifest.yaml", "YAML manifest of resources and exports")
	debug := flag.Bool("debug", false, "Enable FUSE debug logging")
	flag.Parse()

	if *mountPoint == "" {
		fmt.Println("Error: Mount point is required")
		flag.Usage()
		os.Exit(1)
	}

	// Ensure mount point exists
	if _, err := os.Stat(*mountPoint); os.IsNotExist(err) {
		log.Printf("Creating mount point: %s", *mountPoint)
		if err := os.MkdirAll(*mountPoint, 0755); err != nil {
			log.Fatalf("Failed to create mount point: %v", err)
		}
	}

	options := fuse.MountOptions{
		MountPoint:   *mountPoint,
		ManifestPath: *manifestPath,
		Debug:        *debug,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nReceived interrupt, exiting...")
		exec.Command("fusermount", "-uz", *mountPoint).Run()
		os.Exit(0)
	}()

	fmt.Printf("Mounting substream filesystem at %s\n", *mountPoint)
	if err := fuse.Mount(options); err != nil {
		fmt.Printf("Error mounting filesystem: %v\n", err)
		os.Exit(1)
	}
}
