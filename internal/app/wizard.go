package app

import (
	"context"
	"fmt"

	"facultybot/pkg/domain"
)

// The upload wizard is a linear flow tracked entirely by which WaitingUpload
// fields are present: file+type, then instructor, then course, then a final
// type-button confirmation that commits the material. Unexpected input at any
// step re-prompts without touching state.
type wizardStage int

const (
	stageAwaitingFile wizardStage = iota
	stageAwaitingInstructor
	stageAwaitingCourse
	stageAwaitingType
)

func uploadStage(w domain.WaitingUpload) wizardStage {
	switch {
	case w.FileID == "":
		return stageAwaitingFile
	case w.Instructor == "":
		return stageAwaitingInstructor
	case w.Course == "":
		return stageAwaitingCourse
	default:
		return stageAwaitingType
	}
}

// beginUpload marks the admin chat as mid-upload and asks for the file.
// Idempotent: pressing the upload button twice keeps collected fields.
func (a *App) beginUpload(ctx context.Context, chatID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.BeginWaitingUpload(chatID); err != nil {
		return fmt.Errorf("begin waiting upload: %w", err)
	}
	return a.reply(ctx, chatID, msgSendFile, nil)
}

// handleAdminAttachment records the file reference and its content type.
// The attachment kind is the source of truth for the type; the later button
// press only confirms (or narrows document to reference).
func (a *App) handleAdminAttachment(ctx context.Context, chatID int64, fileID string, ct domain.ContentType) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok, err := a.store.GetWaitingUpload(chatID)
	if err != nil {
		return fmt.Errorf("get waiting upload: %w", err)
	}
	if ok && w.FileID != "" {
		// Already past the file step: re-prompt whatever is pending.
		return a.promptStage(ctx, chatID, w)
	}
	if err := a.store.SetWaitingFile(chatID, fileID, ct); err != nil {
		return fmt.Errorf("set waiting file: %w", err)
	}
	return a.reply(ctx, chatID, msgAskInstructor, nil)
}

// handleWizardText advances the wizard with an admin text message. It
// reports false when the chat is not mid-upload so normal dispatch continues.
func (a *App) handleWizardText(ctx context.Context, chatID int64, text string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok, err := a.store.GetWaitingUpload(chatID)
	if err != nil {
		return true, fmt.Errorf("get waiting upload: %w", err)
	}
	if !ok {
		return false, nil
	}

	switch uploadStage(w) {
	case stageAwaitingFile:
		return true, a.reply(ctx, chatID, msgFileFirst, nil)

	case stageAwaitingInstructor:
		// Any non-empty text counts as the instructor name.
		if err := a.store.SetWaitingInstructor(chatID, text); err != nil {
			return true, fmt.Errorf("set waiting instructor: %w", err)
		}
		return true, a.reply(ctx, chatID, msgPickCourse, a.coursesKeyboard())

	case stageAwaitingCourse:
		if !a.isKnownCourse(text) {
			return true, a.reply(ctx, chatID, msgPickCourseAgain, a.coursesKeyboard())
		}
		if err := a.store.SetWaitingCourse(chatID, text); err != nil {
			return true, fmt.Errorf("set waiting course: %w", err)
		}
		return true, a.reply(ctx, chatID, msgPickType(text), typesKeyboard(text))

	default: // stageAwaitingType
		course, picked, parsed := parseTypeButton(text)
		if !parsed || course != w.Course {
			return true, a.reply(ctx, chatID, msgTypeMismatch(w.Course), typesKeyboard(w.Course))
		}
		final, ok := confirmType(w.Type, picked)
		if !ok {
			return true, a.reply(ctx, chatID, msgTypeMismatch(w.Course), typesKeyboard(w.Course))
		}
		if err := a.commitUpload(ctx, chatID, w, final); err != nil {
			return true, err
		}
		return true, nil
	}
}

// confirmType checks the button pick against the type captured from the
// attachment. A video upload only commits as video; a document upload may
// commit as pdf or be narrowed to reference, both arrive as documents on
// the wire.
func confirmType(captured, picked domain.ContentType) (domain.ContentType, bool) {
	if captured == domain.TypeVideo {
		if picked == domain.TypeVideo {
			return domain.TypeVideo, true
		}
		return "", false
	}
	if picked == domain.TypeVideo {
		return "", false
	}
	return picked, true
}

func (a *App) commitUpload(ctx context.Context, chatID int64, w domain.WaitingUpload, ct domain.ContentType) error {
	material := domain.Material{
		Course:     w.Course,
		Type:       ct,
		FileID:     w.FileID,
		Instructor: w.Instructor,
	}
	if err := a.store.AddMaterial(material); err != nil {
		return fmt.Errorf("commit material: %w", err)
	}
	if err := a.store.ClearWaitingUpload(chatID); err != nil {
		return fmt.Errorf("clear waiting upload: %w", err)
	}
	return a.reply(ctx, chatID, msgCommitted(w.Course, ct, w.Instructor), a.mainKeyboard(true))
}

// cancelUpload drops any in-progress upload for the chat unconditionally.
func (a *App) cancelUpload(chatID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.ClearWaitingUpload(chatID); err != nil {
		return fmt.Errorf("clear waiting upload: %w", err)
	}
	return nil
}

func (a *App) promptStage(ctx context.Context, chatID int64, w domain.WaitingUpload) error {
	switch uploadStage(w) {
	case stageAwaitingInstructor:
		return a.reply(ctx, chatID, msgAskInstructor, nil)
	case stageAwaitingCourse:
		return a.reply(ctx, chatID, msgPickCourse, a.coursesKeyboard())
	case stageAwaitingType:
		return a.reply(ctx, chatID, msgPickType(w.Course), typesKeyboard(w.Course))
	default:
		return a.reply(ctx, chatID, msgSendFile, nil)
	}
}
