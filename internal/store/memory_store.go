package store

import (
	"sync"
	"time"

	"facultybot/internal/util"
	"facultybot/pkg/domain"
)

// MemoryStore keeps materials and waiting uploads in-process. A single
// coarse lock guards every read-modify-write sequence, which is the whole
// concurrency contract this service needs.
type MemoryStore struct {
	mu        sync.RWMutex
	materials []domain.Material
	waiting   map[int64]domain.WaitingUpload
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		waiting: make(map[int64]domain.WaitingUpload),
	}
}

// AddMaterial appends a material record in insertion order.
func (s *MemoryStore) AddMaterial(m domain.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = util.NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.materials = append(s.materials, m)
	return nil
}

// ListMaterials returns materials for a (course, type) pair in insertion order.
func (s *MemoryStore) ListMaterials(course string, ct domain.ContentType) ([]domain.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Material, 0)
	for _, m := range s.materials {
		if m.Course == course && m.Type == ct {
			res = append(res, m)
		}
	}
	return res, nil
}

// ListInstructors returns distinct non-empty instructor names for a pair.
func (s *MemoryStore) ListInstructors(course string, ct domain.ContentType) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, m := range s.materials {
		if m.Course != course || m.Type != ct || m.Instructor == "" {
			continue
		}
		if _, ok := seen[m.Instructor]; ok {
			continue
		}
		seen[m.Instructor] = struct{}{}
		names = append(names, m.Instructor)
	}
	return names, nil
}

// ListCoursePairs returns the distinct (course, type) pairs present.
func (s *MemoryStore) ListCoursePairs() ([]domain.CoursePair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[domain.CoursePair]struct{})
	pairs := make([]domain.CoursePair, 0)
	for _, m := range s.materials {
		pair := domain.CoursePair{Course: m.Course, Type: m.Type}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// GetWaitingUpload returns the in-progress upload record for a chat.
func (s *MemoryStore) GetWaitingUpload(chatID int64) (domain.WaitingUpload, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.waiting[chatID]
	return w, ok, nil
}

// BeginWaitingUpload marks a chat as mid-upload. No-op when already waiting.
func (s *MemoryStore) BeginWaitingUpload(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.waiting[chatID]; ok {
		return nil
	}
	s.waiting[chatID] = domain.WaitingUpload{ChatID: chatID, UpdatedAt: time.Now().UTC()}
	return nil
}

// SetWaitingFile records the received file and content type, creating the
// record when absent.
func (s *MemoryStore) SetWaitingFile(chatID int64, fileID string, ct domain.ContentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.waiting[chatID]
	w.ChatID = chatID
	w.FileID = fileID
	w.Type = ct
	w.UpdatedAt = time.Now().UTC()
	s.waiting[chatID] = w
	return nil
}

// SetWaitingInstructor stores the instructor name for the chat's upload.
func (s *MemoryStore) SetWaitingInstructor(chatID int64, instructor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.waiting[chatID]
	if !ok {
		return nil
	}
	w.Instructor = instructor
	w.UpdatedAt = time.Now().UTC()
	s.waiting[chatID] = w
	return nil
}

// SetWaitingCourse stores the chosen course for the chat's upload.
func (s *MemoryStore) SetWaitingCourse(chatID int64, course string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.waiting[chatID]
	if !ok {
		return nil
	}
	w.Course = course
	w.UpdatedAt = time.Now().UTC()
	s.waiting[chatID] = w
	return nil
}

// ClearWaitingUpload drops the chat's upload record.
func (s *MemoryStore) ClearWaitingUpload(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.waiting, chatID)
	return nil
}
