package store

import "time"

// GORM models used for persistence.
type MaterialModel struct {
	ID         string `gorm:"primaryKey"`
	Course     string `gorm:"not null;index:idx_materials_course_type"`
	Type       string `gorm:"not null;index:idx_materials_course_type"`
	FileID     string `gorm:"not null"`
	Instructor string
	Semester   int
	CreatedAt  time.Time `gorm:"not null"`
}

func (MaterialModel) TableName() string { return "materials" }

type WaitingUploadModel struct {
	ChatID     int64 `gorm:"primaryKey"`
	FileID     string
	Type       string
	Instructor string
	Course     string
	UpdatedAt  time.Time `gorm:"not null"`
}

func (WaitingUploadModel) TableName() string { return "waiting_files" }
