package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-agent/pipeline"
)

type sessionEntry struct {
	session  *pipeline.Session
	mu       sync.Mutex
	lastSeen time.Time
}

// SessionService keeps per-visitor conversation state in memory. Each
// session serializes its own turns so a double-submitted clarification
// cannot race the pending-state handoff.
type SessionService struct {
	mu           sync.RWMutex
	sessions     map[uuid.UUID]*sessionEntry
	retentionAge time.Duration
	logger       *zap.Logger
}

func NewSessionService(retentionAge time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:     make(map[uuid.UUID]*sessionEntry),
		retentionAge: retentionAge,
		logger:       logger,
	}
}

// WithSession runs fn with exclusive access to the session's conversation
// state, creating the session on first use.
func (s *SessionService) WithSession(id uuid.UUID, fn func(sess *pipeline.Session)) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if !ok {
		entry = &sessionEntry{session: &pipeline.Session{ID: id}}
		s.sessions[id] = entry
	}
	entry.lastSeen = time.Now()
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
}

// Len returns the number of live sessions.
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupOldSessions drops sessions idle longer than the retention age and
// returns how many were removed.
func (s *SessionService) CleanupOldSessions() int {
	cutoff := time.Now().Add(-s.retentionAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("Cleaned up idle sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

// StartCleanup launches the periodic retention sweep. The returned stop
// function terminates it.
func (s *SessionService) StartCleanup(interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CleanupOldSessions()
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
