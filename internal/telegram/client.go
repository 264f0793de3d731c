package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client calls the Telegram Bot API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a Telegram API error response.
type APIError struct {
	Status      int
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram: %s (status %d)", e.Description, e.Status)
	}
	return fmt.Sprintf("telegram: status %d", e.Status)
}

// NewClient constructs a bot API client. apiBaseURL is normally
// https://api.telegram.org and is overridable for tests.
func NewClient(apiBaseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(apiBaseURL, "/") + "/bot" + token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID      int64          `json:"chat_id"`
	Text        string         `json:"text"`
	ParseMode   string         `json:"parse_mode,omitempty"`
	ReplyMarkup *ReplyKeyboard `json:"reply_markup,omitempty"`
}

type sendFileRequest struct {
	ChatID   int64  `json:"chat_id"`
	Document string `json:"document,omitempty"`
	Video    string `json:"video,omitempty"`
}

// SendMessage sends a Markdown text message, optionally with a reply keyboard.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, keyboard *ReplyKeyboard) error {
	return c.post(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "Markdown",
		ReplyMarkup: keyboard,
	})
}

// SendDocument re-delivers a stored document by its file id.
func (c *Client) SendDocument(ctx context.Context, chatID int64, fileID string) error {
	return c.post(ctx, "sendDocument", sendFileRequest{ChatID: chatID, Document: fileID})
}

// SendVideo re-delivers a stored video by its file id.
func (c *Client) SendVideo(ctx context.Context, chatID int64, fileID string) error {
	return c.post(ctx, "sendVideo", sendFileRequest{ChatID: chatID, Video: fileID})
}

func (c *Client) post(ctx context.Context, method string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description,omitempty"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&apiResp)
	if resp.StatusCode >= 400 || !apiResp.OK {
		return &APIError{Status: resp.StatusCode, Description: apiResp.Description}
	}
	return nil
}
