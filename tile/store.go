package tile

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store receives fetched tile bytes. The render surface (or a caching
// proxy) owns the real storage; the prefetcher only puts.
type Store interface {
	Put(layerKey string, a Address, data []byte)
}

// MemoryStore keeps the most recently fetched tiles in an LRU so the
// map surface can draw freshly prefetched areas without re-requesting.
type MemoryStore struct {
	cache *lru.Cache[string, []byte]
}

// NewMemoryStore returns a store holding up to capacity tiles.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	c, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c}, nil
}

func storeKey(layerKey string, a Address) string {
	return layerKey + "/" + a.String()
}

func (s *MemoryStore) Put(layerKey string, a Address, data []byte) {
	s.cache.Add(storeKey(layerKey, a), data)
}

// Get returns the cached bytes for a tile, if still resident.
func (s *MemoryStore) Get(layerKey string, a Address) ([]byte, bool) {
	return s.cache.Get(storeKey(layerKey, a))
}

// Len returns the number of resident tiles.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
