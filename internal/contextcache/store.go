package contextcache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a durable small-value store holding the cache handle record per
// model. Implementations: in-memory (below) and Postgres (repository
// package). An empty value means "no record".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStore is a process-lifetime Store. Used when no durable backend is
// configured and by tests.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	value, found := s.cache.Get(key)
	if !found {
		return "", nil
	}
	str, ok := value.(string)
	if !ok {
		return "", nil
	}
	return str, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, gocache.NoExpiration)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
