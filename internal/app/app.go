package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"facultybot/internal/ratelimit"
	"facultybot/internal/session"
	"facultybot/internal/store"
	"facultybot/internal/telegram"
	"facultybot/pkg/domain"
)

// Sender is the outbound side of the chat platform. Sends are fire-and-forget
// from the bot's perspective: their status gets logged, never acted upon.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *telegram.ReplyKeyboard) error
	SendDocument(ctx context.Context, chatID int64, fileID string) error
	SendVideo(ctx context.Context, chatID int64, fileID string) error
}

// Config wires required dependencies for the bot core.
type Config struct {
	Store         store.Store
	Sessions      session.Store
	Sender        Sender
	AdminUsername string
	Courses       []string
	Limiter       *ratelimit.FixedWindowLimiter
}

// App routes inbound chat updates to the upload wizard, the browsing flow,
// and the admin command path.
type App struct {
	store         store.Store
	sessions      session.Store
	sender        Sender
	adminUsername string
	courses       []string
	limiter       *ratelimit.FixedWindowLimiter

	// mu serializes wizard read-modify-write sequences across concurrent
	// webhook deliveries. Coarse on purpose: this bot optimizes for not
	// losing updates, not for throughput.
	mu sync.Mutex
}

// New constructs the bot core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.Sender == nil {
		return nil, errors.New("sender is required")
	}
	admin := strings.TrimPrefix(strings.TrimSpace(cfg.AdminUsername), "@")
	if admin == "" {
		return nil, errors.New("admin username is required")
	}
	courses := cfg.Courses
	if len(courses) == 0 {
		courses = []string{"Anatomy", "Physiology"}
	}
	return &App{
		store:         cfg.Store,
		sessions:      cfg.Sessions,
		sender:        cfg.Sender,
		adminUsername: admin,
		courses:       courses,
		limiter:       cfg.Limiter,
	}, nil
}

func (a *App) isAdmin(u *telegram.User) bool {
	return u != nil && strings.EqualFold(strings.TrimPrefix(u.Username, "@"), a.adminUsername)
}

func (a *App) isKnownCourse(name string) bool {
	for _, c := range a.courses {
		if c == name {
			return true
		}
	}
	return false
}

// reply sends a text message best-effort. Outbound failures are logged and
// swallowed so they never bubble into the webhook response.
func (a *App) reply(ctx context.Context, chatID int64, text string, keyboard *telegram.ReplyKeyboard) error {
	if err := a.sender.SendMessage(ctx, chatID, text, keyboard); err != nil {
		slog.Warn("send message failed", "chat_id", chatID, "err", err)
	}
	return nil
}

// deliver announces and re-sends each material by its stored file id.
func (a *App) deliver(ctx context.Context, chatID int64, materials []domain.Material) error {
	_ = a.reply(ctx, chatID, msgSending, nil)
	for _, m := range materials {
		var err error
		if m.Type == domain.TypeVideo {
			err = a.sender.SendVideo(ctx, chatID, m.FileID)
		} else {
			err = a.sender.SendDocument(ctx, chatID, m.FileID)
		}
		if err != nil {
			slog.Warn("send file failed", "chat_id", chatID, "file_id", m.FileID, "err", err)
		}
	}
	return nil
}
