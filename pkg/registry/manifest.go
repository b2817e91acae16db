// pkg/registry/manifest.go
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes resources to open at startup and the named window
// exports built on top of them.
type Manifest struct {
	Resources []ManifestResource `yaml:"resources"`
	Exports   []ManifestExport   `yaml:"exports"`
}

// ManifestResource maps a resource ID to a file to open read-only.
type ManifestResource struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// ManifestExport names a substream identifier for presentation layers such
// as the FUSE mount.
type ManifestExport struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier"`
}

// LoadManifest reads and parses a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	for i, res := range m.Resources {
		if res.ID == "" || res.File == "" {
			return nil, fmt.Errorf("manifest %s: resource %d needs both id and file", path, i)
		}
	}
	for i, exp := range m.Exports {
		if exp.Name == "" || exp.Identifier == "" {
			return nil, fmt.Errorf("manifest %s: export %d needs both name and identifier", path, i)
		}
	}

	return &m, nil
}

// Apply opens every resource in the manifest read-only and registers it
// file-backed in the store under its declared ID. On failure, resources
// registered so far stay in the store; the caller's store Close releases
// them.
func (m *Manifest) Apply(store *Store) error {
	for _, res := range m.Resources {
		f, err := os.Open(res.File)
		if err != nil {
			return fmt.Errorf("open resource %s: %w", res.File, err)
		}

		err = store.Put(res.ID, &Resource{
			Handle:   f,
			Seekable: true,
			Backing:  BackingFile,
			Path:     res.File,
		})
		if err != nil {
			f.Close()
			return fmt.Errorf("register resource %s as %q: %w", res.File, res.ID, err)
		}
	}
	return nil
}
