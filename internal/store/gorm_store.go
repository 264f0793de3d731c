package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"facultybot/internal/util"
	"facultybot/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&MaterialModel{}, &WaitingUploadModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// AddMaterial appends a material record. Duplicates are not collapsed here;
// de-duplication, if any, happens at query time.
func (s *GormStore) AddMaterial(m domain.Material) error {
	model := materialToModel(m)
	if model.ID == "" {
		model.ID = util.NewID()
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	return s.db.Create(&model).Error
}

// ListMaterials returns materials for a (course, type) pair. An empty result
// is not an error.
func (s *GormStore) ListMaterials(course string, ct domain.ContentType) ([]domain.Material, error) {
	var models []MaterialModel
	err := s.db.
		Where("course = ? AND type = ?", course, string(ct)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Material, 0, len(models))
	for _, m := range models {
		res = append(res, materialFromModel(m))
	}
	return res, nil
}

// ListInstructors returns distinct non-empty instructor names for a pair.
func (s *GormStore) ListInstructors(course string, ct domain.ContentType) ([]string, error) {
	var names []string
	err := s.db.Model(&MaterialModel{}).
		Distinct("instructor").
		Where("course = ? AND type = ? AND instructor <> ''", course, string(ct)).
		Pluck("instructor", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListCoursePairs returns the distinct (course, type) pairs present.
func (s *GormStore) ListCoursePairs() ([]domain.CoursePair, error) {
	var models []MaterialModel
	err := s.db.Model(&MaterialModel{}).
		Distinct("course", "type").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.CoursePair, 0, len(models))
	for _, m := range models {
		res = append(res, domain.CoursePair{Course: m.Course, Type: domain.ContentType(m.Type)})
	}
	return res, nil
}

// GetWaitingUpload returns the in-progress upload record for a chat.
func (s *GormStore) GetWaitingUpload(chatID int64) (domain.WaitingUpload, bool, error) {
	var model WaitingUploadModel
	if err := s.db.First(&model, "chat_id = ?", chatID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.WaitingUpload{}, false, nil
		}
		return domain.WaitingUpload{}, false, err
	}
	return waitingFromModel(model), true, nil
}

// BeginWaitingUpload marks a chat as mid-upload. Idempotent: an existing
// record keeps its already-collected fields.
func (s *GormStore) BeginWaitingUpload(chatID int64) error {
	model := WaitingUploadModel{ChatID: chatID, UpdatedAt: time.Now().UTC()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoNothing: true,
	}).Create(&model).Error
}

// SetWaitingFile records the received file and its content type, creating the
// record when the admin sent an attachment without pressing the upload button.
func (s *GormStore) SetWaitingFile(chatID int64, fileID string, ct domain.ContentType) error {
	model := WaitingUploadModel{
		ChatID:    chatID,
		FileID:    fileID,
		Type:      string(ct),
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_id", "type", "updated_at"}),
	}).Create(&model).Error
}

// SetWaitingInstructor stores the instructor name for the chat's upload.
func (s *GormStore) SetWaitingInstructor(chatID int64, instructor string) error {
	return s.db.Model(&WaitingUploadModel{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]any{
			"instructor": instructor,
			"updated_at": time.Now().UTC(),
		}).Error
}

// SetWaitingCourse stores the chosen course for the chat's upload.
func (s *GormStore) SetWaitingCourse(chatID int64, course string) error {
	return s.db.Model(&WaitingUploadModel{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]any{
			"course":     course,
			"updated_at": time.Now().UTC(),
		}).Error
}

// ClearWaitingUpload drops the chat's upload record.
func (s *GormStore) ClearWaitingUpload(chatID int64) error {
	return s.db.Delete(&WaitingUploadModel{}, "chat_id = ?", chatID).Error
}

func materialToModel(m domain.Material) MaterialModel {
	return MaterialModel{
		ID:         m.ID,
		Course:     m.Course,
		Type:       string(m.Type),
		FileID:     m.FileID,
		Instructor: m.Instructor,
		Semester:   m.Semester,
		CreatedAt:  m.CreatedAt,
	}
}

func materialFromModel(m MaterialModel) domain.Material {
	return domain.Material{
		ID:         m.ID,
		Course:     m.Course,
		Type:       domain.ContentType(m.Type),
		FileID:     m.FileID,
		Instructor: m.Instructor,
		Semester:   m.Semester,
		CreatedAt:  m.CreatedAt,
	}
}

func waitingFromModel(m WaitingUploadModel) domain.WaitingUpload {
	return domain.WaitingUpload{
		ChatID:     m.ChatID,
		FileID:     m.FileID,
		Type:       domain.ContentType(m.Type),
		Instructor: m.Instructor,
		Course:     m.Course,
		UpdatedAt:  m.UpdatedAt,
	}
}
