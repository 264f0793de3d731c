package session

import (
	"sync"
	"time"

	"facultybot/pkg/domain"
)

// Store keeps short-lived browsing state per chat: the last (course, type)
// the user picked, so the next free-text message can be read as an
// instructor choice. Sessions expire after a fixed idle window; an expired
// session is indistinguishable from an absent one. Losing sessions on
// restart is fine, the user just re-navigates the menus.
type Store interface {
	Set(chatID int64, course string, ct domain.ContentType) error
	Get(chatID int64) (domain.Session, bool, error)
	Clear(chatID int64) error
}

type memoryEntry struct {
	session domain.Session
	touched time.Time
}

// MemoryStore holds sessions in-process with lazy expiry on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-process session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set overwrites any existing session for the chat and resets its expiry.
func (s *MemoryStore) Set(chatID int64, course string, ct domain.ContentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = memoryEntry{
		session: domain.Session{ChatID: chatID, Course: course, Type: ct},
		touched: s.now(),
	}
	return nil
}

// Get returns the live session for a chat, dropping it when expired.
func (s *MemoryStore) Get(chatID int64) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[chatID]
	if !ok {
		return domain.Session{}, false, nil
	}
	if s.now().Sub(entry.touched) > s.ttl {
		delete(s.entries, chatID)
		return domain.Session{}, false, nil
	}
	return entry.session, true, nil
}

// Clear removes the chat's session.
func (s *MemoryStore) Clear(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chatID)
	return nil
}
