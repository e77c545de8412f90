package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/DebasishDas1/HVAC-Lead/internal/conversation"
	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

// ChatService is the slice of the conversation service the handler needs.
type ChatService interface {
	HandleMessage(ctx context.Context, sessionID string, user conversation.UserInfo, message string) (*conversation.ChatResult, error)
}

// ChatRequest is the inbound POST /chat payload.
type ChatRequest struct {
	SessionID string                `json:"sessionId"`
	User      conversation.UserInfo `json:"user"`
	Message   string                `json:"message"`
}

// ChatHandler exposes the qualification conversation over HTTP.
type ChatHandler struct {
	service ChatService
	logger  *logging.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(service ChatService, logger *logging.Logger) *ChatHandler {
	if service == nil {
		panic("handlers: chat service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{service: service, logger: logger}
}

// Chat processes one user message and returns the assistant reply.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.service.HandleMessage(r.Context(), req.SessionID, req.User, req.Message)
	if err != nil {
		h.logger.Error("chat turn failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Health returns a simple health check response.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
