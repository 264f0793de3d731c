package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"facultybot/internal/cache"
	"facultybot/pkg/domain"
)

func newCachedStore(t *testing.T) (*CachedStore, *MemoryStore, *miniredis.Miniredis) {
	t.Helper()
	redisSrv := miniredis.RunT(t)
	backing := NewMemoryStore()
	c := cache.New(redisSrv.Addr(), "", "test:cache", 30*time.Second)
	return NewCachedStore(backing, c), backing, redisSrv
}

func TestCachedStoreServesStaleReadUntilTTL(t *testing.T) {
	s, backing, _ := newCachedStore(t)
	mustAdd(t, s, domain.Material{Course: "Anatomy", Type: domain.TypePDF, FileID: "f1", Instructor: "Dr. Smith"})

	first, err := s.ListMaterials("Anatomy", domain.TypePDF)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("unexpected first read: %+v", first)
	}

	// Write to the backing store behind the cache's back: the cached value
	// stays visible, which the browsing flow tolerates.
	if err := backing.AddMaterial(domain.Material{Course: "Anatomy", Type: domain.TypePDF, FileID: "f2"}); err != nil {
		t.Fatalf("backing add: %v", err)
	}
	second, err := s.ListMaterials("Anatomy", domain.TypePDF)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached (stale) read, got %+v", second)
	}
}

func TestCachedStoreAddMaterialInvalidates(t *testing.T) {
	s, _, _ := newCachedStore(t)
	mustAdd(t, s, domain.Material{Course: "Anatomy", Type: domain.TypePDF, FileID: "f1", Instructor: "Dr. Smith"})

	if _, err := s.ListMaterials("Anatomy", domain.TypePDF); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if _, err := s.ListInstructors("Anatomy", domain.TypePDF); err != nil {
		t.Fatalf("prime instructor cache: %v", err)
	}

	mustAdd(t, s, domain.Material{Course: "Anatomy", Type: domain.TypePDF, FileID: "f2", Instructor: "Dr. Jones"})

	materials, err := s.ListMaterials("Anatomy", domain.TypePDF)
	if err != nil {
		t.Fatalf("list after write: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("write should invalidate the materials key, got %+v", materials)
	}
	names, err := s.ListInstructors("Anatomy", domain.TypePDF)
	if err != nil {
		t.Fatalf("instructors after write: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("write should invalidate the instructors key, got %v", names)
	}
}

func TestCachedStoreDegradesWhenRedisDown(t *testing.T) {
	s, _, redisSrv := newCachedStore(t)
	mustAdd(t, s, domain.Material{Course: "Anatomy", Type: domain.TypePDF, FileID: "f1"})

	redisSrv.Close()

	materials, err := s.ListMaterials("Anatomy", domain.TypePDF)
	if err != nil {
		t.Fatalf("list with cache down: %v", err)
	}
	if len(materials) != 1 {
		t.Fatalf("expected direct store read with cache down, got %+v", materials)
	}
}
