package session

import (
	"context"
	"sync"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
)

type memorySession struct {
	turns    []domain.ChatTurn
	lastSeen time.Time
}

// MemoryStore is an in-process session store used when Redis is not
// configured. Sessions expire after the TTL and the store holds at most
// maxSessions entries; the stalest session is evicted when the cap is hit.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*memorySession
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

var _ portssvc.ChatSessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates a bounded in-memory session store.
func NewMemoryStore(ttl time.Duration, maxSessions int) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	return &MemoryStore{
		sessions:    make(map[string]*memorySession),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// AppendTurn records the turn for the session, trimming history to maxTurns.
func (s *MemoryStore) AppendTurn(_ context.Context, sessionID string, turn domain.ChatTurn, maxTurns int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		if len(s.sessions) >= s.maxSessions {
			s.evictStalestLocked()
		}
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}

	sess.turns = append(sess.turns, turn)
	if maxTurns > 0 && len(sess.turns) > maxTurns {
		sess.turns = sess.turns[len(sess.turns)-maxTurns:]
	}
	sess.lastSeen = now
	return nil
}

// GetTurns returns the session history, oldest first. Expired or unknown
// sessions yield an empty history.
func (s *MemoryStore) GetTurns(_ context.Context, sessionID string) ([]domain.ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(s.now())

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []domain.ChatTurn{}, nil
	}
	turns := make([]domain.ChatTurn, len(sess.turns))
	copy(turns, sess.turns)
	return turns, nil
}

// sweepLocked drops sessions idle past the TTL. Caller must hold mu.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// evictStalestLocked removes the least recently used session. Caller must hold mu.
func (s *MemoryStore) evictStalestLocked() {
	var stalestID string
	var stalest time.Time
	for id, sess := range s.sessions {
		if stalestID == "" || sess.lastSeen.Before(stalest) {
			stalestID = id
			stalest = sess.lastSeen
		}
	}
	if stalestID != "" {
		delete(s.sessions, stalestID)
	}
}
