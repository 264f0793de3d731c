package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"facultybot/internal/telegram"
	"facultybot/internal/util"
	"facultybot/pkg/domain"
)

// HandleUpdate processes one inbound update. Every internal failure is
// caught here: logged with chat id and answered with a generic apology, so
// the webhook can always acknowledge and Telegram never retries a poison
// update forever.
func (a *App) HandleUpdate(ctx context.Context, upd telegram.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	logger := util.LoggerFromContext(ctx)

	if !a.limiter.Allow(strconv.FormatInt(chatID, 10)) {
		logger.Warn("chat over flood limit, update dropped", "chat_id", chatID)
		return
	}

	if err := a.dispatch(ctx, msg); err != nil {
		logger.Error("update processing failed", "chat_id", chatID, "err", err)
		_ = a.reply(ctx, chatID, msgApology, nil)
	}
}

// dispatch classifies the message in priority order: attachment while admin,
// wizard text while mid-upload, menu button, free-text instructor guess,
// unrecognized.
func (a *App) dispatch(ctx context.Context, msg *telegram.Message) error {
	chatID := msg.Chat.ID
	admin := a.isAdmin(msg.From)

	if msg.Document != nil || msg.Video != nil {
		if !admin {
			return a.reply(ctx, chatID, msgDefault, a.mainKeyboard(false))
		}
		fileID, ct := attachmentRef(msg)
		return a.handleAdminAttachment(ctx, chatID, fileID, ct)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return a.reply(ctx, chatID, msgEmptyMessage, nil)
	}

	if strings.HasPrefix(text, "/addfile") && admin {
		return a.handleAddFile(ctx, chatID, text)
	}
	if strings.HasPrefix(text, "/start") {
		return a.reply(ctx, chatID, msgGreeting, a.mainKeyboard(admin))
	}
	if text == btnHome {
		// Returning to the main menu cancels any upload in flight.
		if admin {
			if err := a.cancelUpload(chatID); err != nil {
				return err
			}
		}
		return a.reply(ctx, chatID, msgHome, a.mainKeyboard(admin))
	}

	if admin {
		if text == btnUpload {
			return a.beginUpload(ctx, chatID)
		}
		handled, err := a.handleWizardText(ctx, chatID, text)
		if handled || err != nil {
			return err
		}
	}

	switch text {
	case btnStart:
		return a.reply(ctx, chatID, msgPickCourse, a.coursesKeyboard())
	case btnBack:
		return a.reply(ctx, chatID, msgBackToCourses, a.coursesKeyboard())
	case btnContact:
		return a.reply(ctx, chatID, msgContact(a.adminUsername), nil)
	}

	if a.isKnownCourse(text) {
		return a.reply(ctx, chatID, msgPickType(text), typesKeyboard(text))
	}
	if course, ct, ok := parseTypeButton(text); ok {
		return a.browseType(ctx, chatID, course, ct)
	}
	return a.handleFreeText(ctx, chatID, text)
}

func attachmentRef(msg *telegram.Message) (string, domain.ContentType) {
	if msg.Video != nil {
		return msg.Video.FileID, domain.TypeVideo
	}
	return msg.Document.FileID, domain.TypePDF
}

// browseType handles a content-type button press from the menus. With known
// instructors for the pair, the user gets an instructor keyboard and a
// session remembering the pair. Materials tagged with no instructor at all
// are delivered directly, the way early uploads without the wizard were.
func (a *App) browseType(ctx context.Context, chatID int64, course string, ct domain.ContentType) error {
	if !a.isKnownCourse(course) {
		return a.reply(ctx, chatID, msgDefault, a.coursesKeyboard())
	}

	instructors, err := a.store.ListInstructors(course, ct)
	if err != nil {
		return fmt.Errorf("list instructors for %s/%s: %w", course, ct, err)
	}
	if len(instructors) > 0 {
		if err := a.sessions.Set(chatID, course, ct); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return a.reply(ctx, chatID, msgPickInstructor, instructorsKeyboard(instructors))
	}

	materials, err := a.store.ListMaterials(course, ct)
	if err != nil {
		return fmt.Errorf("list materials for %s/%s: %w", course, ct, err)
	}
	if len(materials) == 0 {
		return a.reply(ctx, chatID, msgNothingYet, nil)
	}
	return a.deliver(ctx, chatID, materials)
}

// handleFreeText interprets arbitrary text as an instructor pick. With a
// live session the match is scoped to the remembered pair; the session is
// consumed either way. Without one, a last-resort scan over every stored
// pair runs before giving up with the default reply.
func (a *App) handleFreeText(ctx context.Context, chatID int64, text string) error {
	sess, ok, err := a.sessions.Get(chatID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if ok {
		materials, err := a.store.ListMaterials(sess.Course, sess.Type)
		if err != nil {
			return fmt.Errorf("list materials for session: %w", err)
		}
		if err := a.sessions.Clear(chatID); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		matched := filterByInstructor(materials, text)
		if len(matched) == 0 {
			return a.reply(ctx, chatID, msgNoMatch, nil)
		}
		return a.deliver(ctx, chatID, matched)
	}

	matched, err := a.scanAllPairs(text)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return a.reply(ctx, chatID, msgDefault, nil)
	}
	return a.deliver(ctx, chatID, matched)
}

func (a *App) scanAllPairs(instructor string) ([]domain.Material, error) {
	pairs, err := a.store.ListCoursePairs()
	if err != nil {
		return nil, fmt.Errorf("list course pairs: %w", err)
	}
	var matched []domain.Material
	for _, pair := range pairs {
		names, err := a.store.ListInstructors(pair.Course, pair.Type)
		if err != nil {
			return nil, fmt.Errorf("list instructors for %s/%s: %w", pair.Course, pair.Type, err)
		}
		if !containsName(names, instructor) {
			continue
		}
		materials, err := a.store.ListMaterials(pair.Course, pair.Type)
		if err != nil {
			return nil, fmt.Errorf("list materials for %s/%s: %w", pair.Course, pair.Type, err)
		}
		matched = append(matched, filterByInstructor(materials, instructor)...)
	}
	return matched, nil
}

func filterByInstructor(materials []domain.Material, instructor string) []domain.Material {
	matched := make([]domain.Material, 0, len(materials))
	for _, m := range materials {
		if m.Instructor == instructor {
			matched = append(matched, m)
		}
	}
	return matched
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
