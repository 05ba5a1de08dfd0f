package tile

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Registry records which zone/layer combinations have been fully
// cached. Keys are "<zoneKey>_<layerKey>". Members are only ever added.
type Registry interface {
	Contains(key string) bool
	Add(key string) error
}

// FileRegistry persists the registry as one key per line. The file is
// read once at open; Add appends to both the in-memory set and the file.
type FileRegistry struct {
	mu   sync.Mutex
	path string
	keys map[string]bool
}

// OpenFileRegistry loads (or starts) a registry at path.
func OpenFileRegistry(path string) (*FileRegistry, error) {
	r := &FileRegistry{path: path, keys: make(map[string]bool)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache registry %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if key := scanner.Text(); key != "" {
			r.keys[key] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cache registry %s: %w", path, err)
	}
	return r, nil
}

func (r *FileRegistry) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[key]
}

// Add marks key cached. The in-memory set is updated even when the
// append fails, so a persistence error degrades to a re-download on the
// next run instead of blocking navigation.
func (r *FileRegistry) Add(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.keys[key] {
		return nil
	}
	r.keys[key] = true

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to persist cache registry: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, key); err != nil {
		return fmt.Errorf("failed to persist cache registry: %w", err)
	}
	return nil
}

// MemoryRegistry is a registry with no persistence, for tests and for
// hosts that supply their own storage.
type MemoryRegistry struct {
	mu   sync.Mutex
	keys map[string]bool
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{keys: make(map[string]bool)}
}

func (r *MemoryRegistry) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[key]
}

func (r *MemoryRegistry) Add(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[key] = true
	return nil
}
