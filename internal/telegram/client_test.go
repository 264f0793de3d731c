package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendMessageWithKeyboard(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-123")
	kb := Rows([]string{"Anatomy", "Physiology"})
	if err := c.SendMessage(context.Background(), 42, "اختر المقرر:", kb); err != nil {
		t.Fatalf("send message: %v", err)
	}

	if gotPath != "/bottoken-123/sendMessage" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotBody.ChatID != 42 || gotBody.ParseMode != "Markdown" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if gotBody.ReplyMarkup == nil || len(gotBody.ReplyMarkup.Keyboard) != 1 || gotBody.ReplyMarkup.Keyboard[0][0].Text != "Anatomy" {
		t.Fatalf("unexpected keyboard: %+v", gotBody.ReplyMarkup)
	}
}

func TestClientSendDocumentAndVideo(t *testing.T) {
	paths := make([]string, 0, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body sendFileRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.ChatID != 7 {
			t.Fatalf("unexpected chat id: %d", body.ChatID)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if err := c.SendDocument(context.Background(), 7, "file-1"); err != nil {
		t.Fatalf("send document: %v", err)
	}
	if err := c.SendVideo(context.Background(), 7, "file-2"); err != nil {
		t.Fatalf("send video: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/bottok/sendDocument" || paths[1] != "/bottok/sendVideo" {
		t.Fatalf("unexpected paths: %v", paths)
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	err := c.SendMessage(context.Background(), 1, "hi", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Description != "chat not found" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}
