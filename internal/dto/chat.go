package dto

import (
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// ChatRequest is one inbound chat message.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionID"`
}

// ChatResponse is the chat reply envelope. Upstream failures are reported with
// Success=false and a message; callers must check the flag.
type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	SessionID string `json:"sessionID"`
}

// ChatHistoryEntry is one persisted exchange returned from the history listing.
type ChatHistoryEntry struct {
	ChatLogID string    `json:"chatLogID"`
	SessionID string    `json:"sessionID"`
	Message   string    `json:"message"`
	Response  string    `json:"response,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToChatHistory converts chat logs to history entries.
func ToChatHistory(logs []domain.ChatLog) []ChatHistoryEntry {
	res := make([]ChatHistoryEntry, len(logs))
	for i, l := range logs {
		res[i] = ChatHistoryEntry{
			ChatLogID: l.ChatLogID,
			SessionID: l.SessionID,
			Message:   l.Message,
			Response:  l.Response,
			CreatedAt: l.CreatedAt,
		}
	}
	return res
}

// ChatHistoryParams defines query parameters for chat history.
type ChatHistoryParams struct {
	SessionID string `form:"sessionID"`
	Limit     int    `form:"limit,default=20"`
}
