package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"facultybot/internal/cache"
	"facultybot/pkg/domain"
)

// CachedStore memoizes ListMaterials and ListInstructors in front of another
// Store. Cache failures degrade to direct store reads; writes invalidate the
// affected keys so menu browsing is stale for at most one TTL window.
type CachedStore struct {
	Store
	cache *cache.Cache
}

// NewCachedStore wraps a store with the read cache.
func NewCachedStore(s Store, c *cache.Cache) *CachedStore {
	return &CachedStore{Store: s, cache: c}
}

func materialsKey(course string, ct domain.ContentType) string {
	return fmt.Sprintf("materials:%s:%s", course, ct)
}

func instructorsKey(course string, ct domain.ContentType) string {
	return fmt.Sprintf("instructors:%s:%s", course, ct)
}

// AddMaterial writes through and invalidates both read keys for the pair.
func (s *CachedStore) AddMaterial(m domain.Material) error {
	if err := s.Store.AddMaterial(m); err != nil {
		return err
	}
	if err := s.cache.Invalidate(materialsKey(m.Course, m.Type), instructorsKey(m.Course, m.Type)); err != nil {
		slog.Warn("cache invalidate failed", "course", m.Course, "type", m.Type, "err", err)
	}
	return nil
}

// ListMaterials serves from the cache when possible.
func (s *CachedStore) ListMaterials(course string, ct domain.ContentType) ([]domain.Material, error) {
	key := materialsKey(course, ct)
	if raw, hit, err := s.cache.Get(key); err == nil && hit {
		var cached []domain.Material
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	} else if err != nil {
		slog.Warn("cache get failed", "key", key, "err", err)
	}
	materials, err := s.Store.ListMaterials(course, ct)
	if err != nil {
		return nil, err
	}
	s.put(key, materials)
	return materials, nil
}

// ListInstructors serves from the cache when possible.
func (s *CachedStore) ListInstructors(course string, ct domain.ContentType) ([]string, error) {
	key := instructorsKey(course, ct)
	if raw, hit, err := s.cache.Get(key); err == nil && hit {
		var cached []string
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	} else if err != nil {
		slog.Warn("cache get failed", "key", key, "err", err)
	}
	names, err := s.Store.ListInstructors(course, ct)
	if err != nil {
		return nil, err
	}
	s.put(key, names)
	return names, nil
}

func (s *CachedStore) put(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Put(key, string(raw)); err != nil {
		slog.Warn("cache put failed", "key", key, "err", err)
	}
}
