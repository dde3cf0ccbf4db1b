package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/fanzone/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// MemorySessionStore is the in-process session store used when redis is not configured.
type MemorySessionStore struct {
	items *gocache.Cache
	ttl   time.Duration
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{items: gocache.New(ttl, 2*ttl), ttl: ttl}
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	stored := v.(domain.Session)
	stored.History = append([]domain.Turn(nil), stored.History...)
	return &stored, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	stored := *session
	stored.History = append([]domain.Turn(nil), session.History...)
	s.items.Set(session.ID, stored, s.ttl)
	return nil
}
