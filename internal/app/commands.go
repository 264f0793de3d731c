package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"facultybot/pkg/domain"
)

// handleAddFile commits a material synchronously, bypassing the wizard:
//
//	/addfile <course> <type> <file_id>
//	/addfile <semester> <course> <type> <file_id>
//
// Malformed arguments get a usage reply and mutate nothing.
func (a *App) handleAddFile(ctx context.Context, chatID int64, text string) error {
	parts := strings.Fields(text)

	var semester int
	var course, rawType, fileID string
	switch len(parts) {
	case 4:
		course, rawType, fileID = parts[1], parts[2], parts[3]
	case 5:
		n, err := strconv.Atoi(parts[1])
		if err != nil || n <= 0 {
			return a.reply(ctx, chatID, msgAddFileUsage, nil)
		}
		semester, course, rawType, fileID = n, parts[2], parts[3], parts[4]
	default:
		return a.reply(ctx, chatID, msgAddFileUsage, nil)
	}

	ct, ok := domain.ParseContentType(rawType)
	if !ok {
		return a.reply(ctx, chatID, msgAddFileUsage, nil)
	}
	if !a.isKnownCourse(course) {
		return a.reply(ctx, chatID, msgPickCourseAgain, a.coursesKeyboard())
	}

	material := domain.Material{
		Course:   course,
		Type:     ct,
		FileID:   fileID,
		Semester: semester,
	}
	if err := a.store.AddMaterial(material); err != nil {
		return fmt.Errorf("add material via command: %w", err)
	}
	return a.reply(ctx, chatID, fmt.Sprintf("✅ تمت إضافة %s لمقرر %s بنجاح!", ct, course), nil)
}
