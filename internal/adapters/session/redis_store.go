package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps chat session history in Redis lists with a per-session TTL.
// Idle sessions expire server-side, so the store never grows without bound.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portssvc.ChatSessionStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "chat:session:" + sessionID
}

// AppendTurn pushes the turn onto the session list, trims it to maxTurns and
// refreshes the TTL.
func (s *RedisStore) AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn, maxTurns int) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal chat turn: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if maxTurns > 0 {
		pipe.LTrim(ctx, key, int64(-maxTurns), -1)
	}
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat turn: %w", err)
	}
	return nil
}

// GetTurns returns the session history, oldest first. A missing session yields
// an empty history.
func (s *RedisStore) GetTurns(ctx context.Context, sessionID string) ([]domain.ChatTurn, error) {
	items, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat session: %w", err)
	}

	turns := make([]domain.ChatTurn, 0, len(items))
	for _, item := range items {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
