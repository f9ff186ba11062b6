package pgsql

import (
	"context"
	"fmt"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	"github.com/David2024patton/studio4-dance/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxChatLogRepository struct {
	BaseRepository
}

func newPgxChatLogRepository(pool *pgxpool.Pool) portsrepo.ChatLogRepository {
	return &PgxChatLogRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ChatLogRepository = (*PgxChatLogRepository)(nil)

func toDomainChatLog(m models.ChatLog) domain.ChatLog {
	return domain.ChatLog{
		ChatLogID:       m.ChatLogID,
		UserID:          stringPtr(m.UserID),
		SessionID:       m.SessionID,
		Message:         m.Message,
		Response:        m.Response,
		IsAuthenticated: m.IsAuthenticated,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *PgxChatLogRepository) SaveChatLog(ctx context.Context, log domain.ChatLog) error {
	query := `
        INSERT INTO chat_logs (chat_log_id, user_id, session_id, message, response, is_authenticated, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		log.ChatLogID,
		nullString(log.UserID),
		log.SessionID,
		log.Message,
		log.Response,
		log.IsAuthenticated,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}
	return nil
}

func (r *PgxChatLogRepository) FindChatLogsByUserID(ctx context.Context, userID, sessionID string, limit int) ([]domain.ChatLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT chat_log_id, user_id, session_id, message, response, is_authenticated, created_at
        FROM chat_logs
        WHERE user_id = $1
    `
	args := []interface{}{userID}
	if sessionID != "" {
		query += " AND session_id = $2 ORDER BY created_at DESC LIMIT $3;"
		args = append(args, sessionID, limit)
	} else {
		query += " ORDER BY created_at DESC LIMIT $2;"
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.ChatLog{}
	for rows.Next() {
		var m models.ChatLog
		err := rows.Scan(
			&m.ChatLogID,
			&m.UserID,
			&m.SessionID,
			&m.Message,
			&m.Response,
			&m.IsAuthenticated,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat log row: %w", err)
		}
		logs = append(logs, toDomainChatLog(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating chat log rows: %w", rows.Err())
	}

	return logs, nil
}

func (r *PgxChatLogRepository) DeleteChatLogsByUserID(ctx context.Context, userID, sessionID string) error {
	query := `DELETE FROM chat_logs WHERE user_id = $1`
	args := []interface{}{userID}
	if sessionID != "" {
		query += " AND session_id = $2"
		args = append(args, sessionID)
	}
	if _, err := r.Pool.Exec(ctx, query+";", args...); err != nil {
		return fmt.Errorf("failed to delete chat logs: %w", err)
	}
	return nil
}
