package server

import (
	"encoding/json"
	"io"
	"net/http"

	"facultybot/internal/app"
	"facultybot/internal/telegram"
	"facultybot/internal/util"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Config wires required dependencies for the HTTP server.
type Config struct {
	Bot           *app.App
	WebhookSecret string
}

// Server exposes the webhook endpoint Telegram delivers updates to.
type Server struct {
	bot           *app.App
	mux           *http.ServeMux
	webhookSecret string
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		bot:           cfg.Bot,
		mux:           http.NewServeMux(),
		webhookSecret: cfg.WebhookSecret,
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithRequestID(util.WithRequestLog(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/webhook", s.handleWebhook)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhook validates the delivery and hands it to the dispatcher.
// Once validation passes the response is always a success acknowledgement,
// even when processing fails, so Telegram does not redeliver in a storm.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.webhookSecret != "" && r.Header.Get(secretTokenHeader) != s.webhookSecret {
		util.LoggerFromContext(r.Context()).Warn("webhook secret mismatch")
		writeError(w, http.StatusUnauthorized, "invalid secret token")
		return
	}

	var upd telegram.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.bot.HandleUpdate(r.Context(), upd)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
