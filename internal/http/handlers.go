package http

import (
	"encoding/json"
	"net/http"
	"time"

	"spendbot/internal/bot"
	"spendbot/internal/log"
	"spendbot/internal/middleware/trace"
)

// webhookRequest is the inbound chat update payload.
type webhookRequest struct {
	ChatID int64  `json:"chat_id"`
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type webhookResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	clientIP := trace.ClientIP(r)
	if !s.rateLimiter.allow(clientIP) {
		s.logger.WarnContext(r.Context(), "Rate limit exceeded", log.FieldClientIP, clientIP)
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ChatID == 0 || req.UserID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "chat_id and user_id are required"})
		return
	}

	reply := s.dispatcher.Handle(r.Context(), bot.Message{
		ChatID: req.ChatID,
		UserID: req.UserID,
		Text:   req.Text,
	})

	writeJSON(w, http.StatusOK, webhookResponse{Reply: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
