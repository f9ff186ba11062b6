package models

import (
	"database/sql"
	"time"
)

// ChatLog is the database row for one chat exchange.
type ChatLog struct {
	ChatLogID       string         `db:"chat_log_id"`
	UserID          sql.NullString `db:"user_id"`
	SessionID       string         `db:"session_id"`
	Message         string         `db:"message"`
	Response        string         `db:"response"`
	IsAuthenticated bool           `db:"is_authenticated"`
	CreatedAt       time.Time      `db:"created_at"`
}
