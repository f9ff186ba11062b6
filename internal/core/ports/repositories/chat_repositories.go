package repositories

import (
	"context"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// ChatLogRepository defines persistence operations for chat logs.
type ChatLogRepository interface {
	SaveChatLog(ctx context.Context, log domain.ChatLog) error
	FindChatLogsByUserID(ctx context.Context, userID, sessionID string, limit int) ([]domain.ChatLog, error)
	DeleteChatLogsByUserID(ctx context.Context, userID, sessionID string) error
}
