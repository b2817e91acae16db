package registry

import (
	"os"
	"path/filepath"
	"testing"
)

// setupManifestDir creates a temp dir with a backing file and a manifest
// referring to it
func setupManifestDir(t *testing.T) (string, func()) {
	tempDir, err := os.MkdirTemp("", "manifest-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dataPath := filepath.Join(tempDir, "archive.bin")
	if err := os.WriteFile(dataPath, []byte("0123456789abcdef"), 0644); err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to write backing file: %v", err)
	}

	manifest := "resources:\n" +
		"  - id: \"1\"\n" +
		"    file: " + dataPath + "\n" +
		"exports:\n" +
		"  - name: header\n" +
		"    identifier: substream://0:8/1\n" +
		"  - name: tail\n" +
		"    identifier: substream://8:8/1\n"
	if err := os.WriteFile(filepath.Join(tempDir, "manifest.yaml"), []byte(manifest), 0644); err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to write manifest: %v", err)
	}

	return tempDir, func() { os.RemoveAll(tempDir) }
}

// TestLoadManifest tests parsing a well-formed manifest
func TestLoadManifest(t *testing.T) {
	tempDir, cleanup := setupManifestDir(t)
	defer cleanup()

	m, err := LoadManifest(filepath.Join(tempDir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}

	if len(m.Resources) != 1 {
		t.Fatalf("Wrong resource count: got %d, want 1", len(m.Resources))
	}
	if m.Resources[0].ID != "1" {
		t.Errorf("Wrong resource ID: got %q, want %q", m.Resources[0].ID, "1")
	}

	if len(m.Exports) != 2 {
		t.Fatalf("Wrong export count: got %d, want 2", len(m.Exports))
	}
	if m.Exports[0].Name != "header" || m.Exports[0].Identifier != "substream://0:8/1" {
		t.Errorf("Wrong first export: %+v", m.Exports[0])
	}
}

// TestLoadManifestErrors tests missing files and invalid entries
func TestLoadManifestErrors(t *testing.T) {
	tempDir, cleanup := setupManifestDir(t)
	defer cleanup()

	// Missing manifest file
	if _, err := LoadManifest(filepath.Join(tempDir, "nope.yaml")); err == nil {
		t.Error("LoadManifest should fail for a missing file")
	}

	// Invalid YAML
	badPath := filepath.Join(tempDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("resources: [qu{"), 0644); err != nil {
		t.Fatalf("Failed to write bad manifest: %v", err)
	}
	if _, err := LoadManifest(badPath); err == nil {
		t.Error("LoadManifest should fail for invalid YAML")
	}

	// Resource missing a field
	incompletePath := filepath.Join(tempDir, "incomplete.yaml")
	if err := os.WriteFile(incompletePath, []byte("resources:\n  - id: \"1\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write incomplete manifest: %v", err)
	}
	if _, err := LoadManifest(incompletePath); err == nil {
		t.Error("LoadManifest should fail for a resource without a file")
	}

	// Export missing a field
	noNamePath := filepath.Join(tempDir, "noname.yaml")
	if err := os.WriteFile(noNamePath, []byte("exports:\n  - identifier: substream://0:1/1\n"), 0644); err != nil {
		t.Fatalf("Failed to write export manifest: %v", err)
	}
	if _, err := LoadManifest(noNamePath); err == nil {
		t.Error("LoadManifest should fail for an export without a name")
	}
}

// TestManifestApply tests populating a store from the manifest
func TestManifestApply(t *testing.T) {
	tempDir, cleanup := setupManifestDir(t)
	defer cleanup()

	m, err := LoadManifest(filepath.Join(tempDir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}

	store := NewStore()
	defer store.Close()

	if err := m.Apply(store); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	res, ok := store.Lookup("1")
	if !ok {
		t.Fatal("Resource not registered by Apply")
	}
	if res.Backing != BackingFile {
		t.Errorf("Wrong backing kind: got %v, want %v", res.Backing, BackingFile)
	}
}

// TestManifestApplyMissingResource tests Apply with an unopenable resource
func TestManifestApplyMissingResource(t *testing.T) {
	tempDir, cleanup := setupManifestDir(t)
	defer cleanup()

	m := &Manifest{
		Resources: []ManifestResource{
			{ID: "1", File: filepath.Join(tempDir, "does-not-exist")},
		},
	}

	store := NewStore()
	defer store.Close()

	if err := m.Apply(store); err == nil {
		t.Error("Apply should fail when a resource cannot be opened")
	}
}
