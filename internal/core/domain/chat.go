package domain

import "time"

// ChatLog is a persisted record of one chat exchange.
type ChatLog struct {
	ChatLogID       string    `json:"chatLogID"`
	UserID          *string   `json:"userID,omitempty"`
	SessionID       string    `json:"sessionID"`
	Message         string    `json:"message"`
	Response        string    `json:"response,omitempty"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ChatTurn is one request/reply pair kept in the in-flight session history.
type ChatTurn struct {
	UserMessage string `json:"userMessage"`
	Reply       string `json:"reply"`
}
