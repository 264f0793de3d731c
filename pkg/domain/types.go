package domain

import (
	"strings"
	"time"
)

type ContentType string

const (
	TypePDF       ContentType = "pdf"
	TypeVideo     ContentType = "video"
	TypeReference ContentType = "reference"
)

// ParseContentType maps user-supplied text to a known content type.
func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypePDF):
		return TypePDF, true
	case string(TypeVideo):
		return TypeVideo, true
	case string(TypeReference):
		return TypeReference, true
	default:
		return "", false
	}
}

// Material is a stored, retrievable content record. The file itself stays on
// Telegram's servers; FileID is the opaque handle used to re-deliver it.
type Material struct {
	ID         string      `json:"id"`
	Course     string      `json:"course"`
	Type       ContentType `json:"type"`
	FileID     string      `json:"fileId"`
	Instructor string      `json:"instructor,omitempty"`
	Semester   int         `json:"semester,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// WaitingUpload tracks an admin chat's in-progress upload. Fields fill in
// strictly left to right: file+type, then instructor, then course. The record
// existing at all means the chat is mid-upload.
type WaitingUpload struct {
	ChatID     int64       `json:"chatId"`
	FileID     string      `json:"fileId,omitempty"`
	Type       ContentType `json:"type,omitempty"`
	Instructor string      `json:"instructor,omitempty"`
	Course     string      `json:"course,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// CoursePair identifies a (course, content type) bucket of materials.
type CoursePair struct {
	Course string      `json:"course"`
	Type   ContentType `json:"type"`
}

// Session remembers the last (course, type) a chat browsed so the next
// free-text message can be read as an instructor pick.
type Session struct {
	ChatID int64       `json:"chatId"`
	Course string      `json:"course"`
	Type   ContentType `json:"type"`
}
