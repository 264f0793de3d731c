package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"facultybot/internal/app"
	"facultybot/internal/session"
	"facultybot/internal/store"
	"facultybot/internal/telegram"
)

type nopSender struct{}

func (nopSender) SendMessage(context.Context, int64, string, *telegram.ReplyKeyboard) error {
	return nil
}
func (nopSender) SendDocument(context.Context, int64, string) error { return nil }
func (nopSender) SendVideo(context.Context, int64, string) error    { return nil }

func newTestServer(t *testing.T, secret string) *Server {
	t.Helper()
	bot, err := app.New(app.Config{
		Store:         store.NewMemoryStore(),
		Sessions:      session.NewMemoryStore(300 * time.Second),
		Sender:        nopSender{},
		AdminUsername: "@admin",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return New(Config{Bot: bot, WebhookSecret: secret})
}

const updateBody = `{"update_id":1,"message":{"message_id":5,"chat":{"id":42},"from":{"id":42,"username":"student"},"text":"/start"}}`

func TestWebhookAcknowledgesUpdate(t *testing.T) {
	srv := newTestServer(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(updateBody))
	req.Header.Set(secretTokenHeader, "s3cret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp["ok"] {
		t.Fatalf("response = %v, want ok ack", resp)
	}
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	srv := newTestServer(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(updateBody))
	req.Header.Set(secretTokenHeader, "wrong")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	srv := newTestServer(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(updateBody))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookNoSecretConfigured(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(updateBody))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when no secret is configured", rec.Code)
	}
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWebhookRejectsGet(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Request-Id"); got == "" {
		t.Fatalf("expected request id header on responses")
	}
}
