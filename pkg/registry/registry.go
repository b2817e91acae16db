// pkg/registry/registry.go

// Package registry tracks the live, already-open resources that substream
// identifiers refer to. Resource IDs are decimal strings so they fit the
// identifier grammar unchanged.
package registry

import (
	"errors"
	"io"
	"os"
	"strconv"
	"sync"
)

// Common registry errors.
var (
	ErrInvalidID = errors.New("resource id must be a decimal number")
	ErrDuplicate = errors.New("resource id already registered")
)

// BackingKind classifies how a resource's bytes are held. Only file-backed
// resources can be independently reopened through a second handle; everything
// else must be copied to be windowed.
type BackingKind int

const (
	// BackingMemory is an in-memory resource with no external address.
	BackingMemory BackingKind = iota
	// BackingFile is a resource backed by a named file on disk.
	BackingFile
	// BackingOther is a resource whose backing cannot be reopened.
	BackingOther
)

// String returns a string representation of the backing kind.
func (k BackingKind) String() string {
	switch k {
	case BackingMemory:
		return "memory"
	case BackingFile:
		return "file"
	case BackingOther:
		return "other"
	default:
		return "unknown"
	}
}

// Resource is the registry's view of one underlying open resource: the live
// handle plus the metadata the resolver branches on.
type Resource struct {
	// Handle is the caller's open handle. The resolver never moves its
	// cursor without restoring it.
	Handle io.Reader

	// Seekable reports whether Handle supports absolute repositioning.
	// A window cannot be enforced on a non-seekable source.
	Seekable bool

	// Backing classifies the resource's storage.
	Backing BackingKind

	// Path is the backing address for file-backed resources, empty
	// otherwise.
	Path string
}

// Store is an in-memory resource registry. All methods are safe for
// concurrent use; the store serializes its own access as the substream core
// expects of its registry.
type Store struct {
	mu     sync.Mutex
	nextID int64
	byID   map[string]*Resource
}

// NewStore creates an empty registry.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		byID:   make(map[string]*Resource),
	}
}

// Register adds a resource under the next free numeric ID and returns that
// ID.
func (s *Store) Register(res *Resource) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		id := strconv.FormatInt(s.nextID, 10)
		s.nextID++
		if _, taken := s.byID[id]; !taken {
			s.byID[id] = res
			return id
		}
	}
}

// Put adds a resource under an explicit ID. The ID must be decimal digits
// and must not already be registered.
func (s *Store) Put(id string, res *Resource) error {
	if !validID(id) {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byID[id]; taken {
		return ErrDuplicate
	}
	s.byID[id] = res
	return nil
}

// RegisterFile opens the named file read-only and registers it as a
// file-backed resource, returning the assigned ID.
func (s *Store) RegisterFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}

	return s.Register(&Resource{
		Handle:   f,
		Seekable: true,
		Backing:  BackingFile,
		Path:     path,
	}), nil
}

// Lookup returns the resource registered under id, if any.
func (s *Store) Lookup(id string) (*Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	return res, ok
}

// Release removes the resource registered under id and closes its handle if
// the handle is a Closer. Releasing an unknown ID is a no-op.
func (s *Store) Release(id string) error {
	s.mu.Lock()
	res, ok := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return closeHandle(res)
}

// Len returns the number of registered resources.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Close releases every registered resource. The first close error is
// returned; remaining resources are still released.
func (s *Store) Close() error {
	s.mu.Lock()
	resources := s.byID
	s.byID = make(map[string]*Resource)
	s.mu.Unlock()

	var firstErr error
	for _, res := range resources {
		if err := closeHandle(res); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func closeHandle(res *Resource) error {
	if c, ok := res.Handle.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
