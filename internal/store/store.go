package store

import "facultybot/pkg/domain"

// Store defines persistence for materials and per-chat waiting uploads.
// Both record kinds are owned durably here; callers never talk to the
// backing database directly.
type Store interface {
	// materials (append-only; duplicate (course, type, instructor) tuples are legal)
	AddMaterial(m domain.Material) error
	ListMaterials(course string, ct domain.ContentType) ([]domain.Material, error)
	ListInstructors(course string, ct domain.ContentType) ([]string, error)
	ListCoursePairs() ([]domain.CoursePair, error)

	// waiting uploads (one record per chat; presence means "mid-upload")
	GetWaitingUpload(chatID int64) (domain.WaitingUpload, bool, error)
	BeginWaitingUpload(chatID int64) error
	SetWaitingFile(chatID int64, fileID string, ct domain.ContentType) error
	SetWaitingInstructor(chatID int64, instructor string) error
	SetWaitingCourse(chatID int64, course string) error
	ClearWaitingUpload(chatID int64) error
}
