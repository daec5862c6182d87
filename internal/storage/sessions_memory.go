package storage

import (
	"context"
	"sync"
	"time"

	"foros-bot/internal/domain"
)

// MemorySessionStore is the in-process default when no redis is configured.
// Expiry is checked on read; a stale draft is dropped as if it never existed.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]memorySession
}

type memorySession struct {
	draft     domain.ReviewDraft
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[int64]memorySession),
	}
}

func (s *MemorySessionStore) Get(_ context.Context, userID int64) (*domain.ReviewDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(session.expiresAt) {
		delete(s.sessions, userID)
		return nil, nil
	}
	draft := session.draft
	return &draft, nil
}

func (s *MemorySessionStore) Set(_ context.Context, userID int64, draft *domain.ReviewDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = memorySession{
		draft:     *draft,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}
